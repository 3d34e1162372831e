package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no script tag",
			input: "React patterns",
			want:  "React patterns",
		},
		{
			name:  "script tag",
			input: "<script>alert('Hello, World!');</script>",
			want:  "",
		},
		{
			name:  "mixed case and attributes",
			input: `Go To Statement <SCRIPT SRC="evil.js"></SCRIPT>Considered Harmful`,
			want:  "Go To Statement Considered Harmful",
		},
		{
			name:  "multiline script",
			input: "  Canonical string reduction <script>\nalert(1)\n</script>",
			want:  "Canonical string reduction",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sanitizeText(tc.input))
		})
	}
}
