// Package generic holds small helpers with no relationship to each other
// or to the rest of the library.
package generic

import "strings"

// MergeUnique merges two string lists so the result has no duplicates.
// Casing is always preserved; when caseSensitive is false, items differing
// only in case collide and the first list's casing wins. First-seen order
// is kept, list1 before list2.
func MergeUnique(list1, list2 []string, caseSensitive bool) []string {
	seen := make(map[string]struct{}, len(list1)+len(list2))
	output := make([]string, 0, len(list1)+len(list2))

	add := func(items []string) {
		for _, item := range items {
			key := item
			if !caseSensitive {
				key = strings.ToLower(item)
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			output = append(output, item)
		}
	}

	add(list1)
	add(list2)
	return output
}

// MultiLine joins a list of items into a string with one item per line.
func MultiLine(items []string) string {
	return strings.Join(items, "\n")
}
