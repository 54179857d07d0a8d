package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Buddy", "buddy"},
		{"Mr. Whiskers Jr.", "mr-whiskers-jr"},
		{"  Luna   Belle  ", "luna-belle"},
		{"snake_case_name", "snake-case-name"},
		{"already-slugged", "already-slugged"},
		{"Pet #42!", "pet-42"},
		{"!!!", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}
