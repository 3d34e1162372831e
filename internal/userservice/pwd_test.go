package userservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestPassword_Compare(t *testing.T) {
	var p Password
	require.NoError(t, p.set("salainen"))
	assert.NotEqual(t, "salainen", string(p.hash))

	ok, err := p.compare("salainen")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.compare("wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPassword_BSON(t *testing.T) {
	u := User{Username: "root", Name: "Superuser"}
	require.NoError(t, u.Password.set("salainen"))

	data, err := bson.Marshal(u)
	require.NoError(t, err)

	var raw bson.M
	require.NoError(t, bson.Unmarshal(data, &raw))
	assert.Equal(t, string(u.Password.hash), raw["passwordHash"])
	assert.NotContains(t, raw, "Plain")

	var decoded User
	require.NoError(t, bson.Unmarshal(data, &decoded))
	assert.Empty(t, decoded.Password.Plain)

	ok, err := decoded.Password.compare("salainen")
	require.NoError(t, err)
	assert.True(t, ok)
}
