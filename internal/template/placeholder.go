package template

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{\{(\d+)\}\}`)

func placeholder(index int) string {
	return fmt.Sprintf("{{%d}}", index)
}

// PlaceholderIndices returns the distinct placeholder indices found in
// text, in ascending order.
func PlaceholderIndices(text string) []int {
	seen := make(map[int]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		seen[idx] = true
	}
	out := make([]int, 0, len(seen))
	for idx := range seen {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// InsertVariable inserts the next placeholder token at cursor and appends
// the matching variable with an empty example. Category-specific maxima
// are the validator's concern, not enforced here.
func InsertVariable(text string, cursor int, vars []Variable) (string, []Variable) {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(text) {
		cursor = len(text)
	}
	next := len(vars) + 1
	out := text[:cursor] + placeholder(next) + text[cursor:]

	updated := make([]Variable, len(vars), len(vars)+1)
	copy(updated, vars)
	updated = append(updated, Variable{Index: next, Example: ""})
	return out, updated
}

// RemoveVariable deletes every occurrence of the placeholder for index and
// renumbers the higher variables down by one. The target token is removed
// before any renumbering, and shifts run in ascending order ({{n}} becomes
// {{n-1}} before {{n+1}} is touched) so a rewritten token is never
// rewritten again. Postcondition: tokens in the returned text are exactly
// {{1}}..{{N}} for the returned variable list.
func RemoveVariable(text string, vars []Variable, index int) (string, []Variable) {
	out := strings.ReplaceAll(text, placeholder(index), "")
	for i := index + 1; i <= len(vars); i++ {
		out = strings.ReplaceAll(out, placeholder(i), placeholder(i-1))
	}

	updated := make([]Variable, 0, len(vars))
	for _, v := range vars {
		if v.Index == index {
			continue
		}
		if v.Index > index {
			v.Index--
		}
		updated = append(updated, v)
	}
	return out, updated
}
