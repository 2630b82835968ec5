package framespec

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeqToRegex(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		matchHashLength bool
		wantPrefix      string
		wantPattern     string
		wantSuffix      string
	}{
		{
			name:        "hash_run",
			input:       "file.####.exr",
			wantPrefix:  "file",
			wantPattern: `\.\d+`,
			wantSuffix:  ".exr",
		},
		{
			name:            "hash_run_exact_length",
			input:           "file.####.exr",
			matchHashLength: true,
			wantPrefix:      "file",
			wantPattern:     `\.\d{4}`,
			wantSuffix:      ".exr",
		},
		{
			name:        "underscore_delimiter",
			input:       "file_##.exr",
			wantPrefix:  "file",
			wantPattern: `_\d+`,
			wantSuffix:  ".exr",
		},
		{
			name:        "printf_token",
			input:       "file.%04d.exr",
			wantPrefix:  "file.",
			wantPattern: `\d{4}`,
			wantSuffix:  ".exr",
		},
		{
			name:        "printf_wins_over_hashes",
			input:       "file.%03d.####.exr",
			wantPrefix:  "file.",
			wantPattern: `\d{3}`,
			wantSuffix:  ".####.exr",
		},
		{
			name:       "no_identifier",
			input:      "file.exr",
			wantPrefix: "file.exr",
		},
		{
			name:       "bare_hashes_need_delimiter",
			input:      "file####.exr",
			wantPrefix: "file####.exr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, pattern, suffix := SeqToRegex(tt.input, tt.matchHashLength)
			assert.Equal(t, tt.wantPrefix, prefix, "prefix")
			assert.Equal(t, tt.wantPattern, pattern, "pattern")
			assert.Equal(t, tt.wantSuffix, suffix, "suffix")
		})
	}
}

func TestUDIMToRegex(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		identifier  string
		loose       bool
		wantPrefix  string
		wantPattern string
		wantSuffix  string
	}{
		{
			name:        "strict",
			input:       "tex_<UDIM>.png",
			wantPrefix:  "tex_",
			wantPattern: `[1-9]\d{3}`,
			wantSuffix:  ".png",
		},
		{
			name:        "loose",
			input:       "tex_<UDIM>.png",
			loose:       true,
			wantPrefix:  "tex_",
			wantPattern: `[1-9]\d{3}.*`,
			wantSuffix:  ".png",
		},
		{
			name:        "custom_identifier",
			input:       "tex_{TILE}.png",
			identifier:  "{TILE}",
			wantPrefix:  "tex_",
			wantPattern: `[1-9]\d{3}`,
			wantSuffix:  ".png",
		},
		{
			name:       "absent",
			input:      "tex.png",
			wantPrefix: "tex.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, pattern, suffix := UDIMToRegex(tt.input, tt.identifier, tt.loose)
			assert.Equal(t, tt.wantPrefix, prefix, "prefix")
			assert.Equal(t, tt.wantPattern, pattern, "pattern")
			assert.Equal(t, tt.wantSuffix, suffix, "suffix")
		})
	}
}

func TestSeqAndUDIMToRegex(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		matchMatches []string
		matchMisses  []string
	}{
		{
			name:         "sequence_and_udim",
			input:        "file_<UDIM>.####.exr",
			matchMatches: []string{"file_1001.0001.exr", "file_1023.123.exr"},
			matchMisses:  []string{"file_0001.0001.exr", "file_1001.exr"},
		},
		{
			name:         "udim_only",
			input:        "tex_<UDIM>.png",
			matchMatches: []string{"tex_1001.png"},
			matchMisses:  []string{"tex_999.png", "tex_1001.png.bak"},
		},
		{
			name:         "literal_dots_escaped",
			input:        "a.b.exr",
			matchMatches: []string{"a.b.exr"},
			matchMisses:  []string{"aXbXexr"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern := SeqAndUDIMToRegex(tt.input, false, "", false)
			re, err := regexp.Compile("^" + pattern + "$")
			require.NoError(t, err, "generated pattern should compile")

			for _, s := range tt.matchMatches {
				assert.True(t, re.MatchString(s), "should match %q", s)
			}
			for _, s := range tt.matchMisses {
				assert.False(t, re.MatchString(s), "should not match %q", s)
			}
		})
	}
}
