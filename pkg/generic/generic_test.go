package generic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeUnique(t *testing.T) {
	tests := []struct {
		name          string
		list1         []string
		list2         []string
		caseSensitive bool
		want          []string
	}{
		{
			name:          "no_overlap",
			list1:         []string{"a", "b"},
			list2:         []string{"c"},
			caseSensitive: true,
			want:          []string{"a", "b", "c"},
		},
		{
			name:          "overlap_removed",
			list1:         []string{"a", "b"},
			list2:         []string{"b", "c"},
			caseSensitive: true,
			want:          []string{"a", "b", "c"},
		},
		{
			name:          "case_sensitive_keeps_both",
			list1:         []string{"Apple"},
			list2:         []string{"apple"},
			caseSensitive: true,
			want:          []string{"Apple", "apple"},
		},
		{
			name:          "case_insensitive_first_casing_wins",
			list1:         []string{"Apple"},
			list2:         []string{"apple", "Banana"},
			caseSensitive: false,
			want:          []string{"Apple", "Banana"},
		},
		{
			name:          "duplicates_within_one_list",
			list1:         []string{"a", "a", "b"},
			list2:         nil,
			caseSensitive: true,
			want:          []string{"a", "b"},
		},
		{
			name:          "both_empty",
			list1:         nil,
			list2:         nil,
			caseSensitive: true,
			want:          []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeUnique(tt.list1, tt.list2, tt.caseSensitive)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMultiLine(t *testing.T) {
	assert.Equal(t, "one\ntwo\nthree", MultiLine([]string{"one", "two", "three"}))
	assert.Equal(t, "solo", MultiLine([]string{"solo"}))
	assert.Empty(t, MultiLine(nil))
}
