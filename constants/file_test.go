package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapExtToFormat(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{".JPG", IMAGE},
		{"png", IMAGE},
		{"heic", IMAGE},
		{".txt", TXT},
		{"pdf", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapExtToFormat(tt.ext), "ext %q", tt.ext)
	}
}

func TestIsHEICExt(t *testing.T) {
	assert.True(t, IsHEICExt(".HEIC"))
	assert.True(t, IsHEICExt("heif"))
	assert.False(t, IsHEICExt("png"))
}
