package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestDummyPasswordHash(t *testing.T) {
	cost, err := bcrypt.Cost([]byte(dummyPasswordHash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)

	// A well-formed hash makes the comparison run to a mismatch instead of
	// bailing out on a malformed input.
	err = bcrypt.CompareHashAndPassword([]byte(dummyPasswordHash), []byte("not-the-password"))
	assert.ErrorIs(t, err, bcrypt.ErrMismatchedHashAndPassword)
}

func TestLoginRedirectPath(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"local path", "/account/applications", "/account/applications"},
		{"root", "/", "/"},
		{"path with query", "/dashboard/pets?page=2", "/dashboard/pets?page=2"},
		{"absolute url", "https://evil.example/phish", "/"},
		{"protocol-relative", "//evil.example/phish", "/"},
		{"backslash variant", "/\\evil.example", "/"},
		{"empty", "", "/"},
		{"no leading slash", "account", "/"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, loginRedirectPath(tc.value))
		})
	}
}
