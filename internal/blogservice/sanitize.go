package blogservice

import (
	"regexp"
	"strings"
)

var scriptTagPattern = regexp.MustCompile(`(?is)<\s*script[^>]*>.*?<\s*/\s*script\s*>`)

// sanitizeText drops script elements and surrounding whitespace from user supplied text.
func sanitizeText(s string) string {
	return strings.TrimSpace(scriptTagPattern.ReplaceAllString(s, ""))
}
