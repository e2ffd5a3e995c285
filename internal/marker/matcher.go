package marker

import (
	"fmt"
	"regexp"
	"sort"
)

// Span is a highlighted region of a line, in byte offsets.
type Span struct {
	Group int
	Start int
	End   int
}

// Matcher finds the spans a marker highlights.
type Matcher struct {
	groups []int
	res    []*regexp.Regexp
}

// Compile builds a Matcher for the specification.
func (s Spec) Compile() (*Matcher, error) {
	m := &Matcher{}
	for _, r := range s.Rules {
		pattern := r.Pattern
		if s.IgnoreCase {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile marker pattern %q: %w", r.Pattern, err)
		}
		m.groups = append(m.groups, r.Group)
		m.res = append(m.res, re)
	}
	return m, nil
}

// Find returns all non-empty spans in line, ordered by start offset.
// When rules overlap, the earlier rule wins.
func (m *Matcher) Find(line string) []Span {
	var spans []Span
	for i, re := range m.res {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			if loc[0] == loc[1] || overlaps(spans, loc[0], loc[1]) {
				continue
			}
			spans = append(spans, Span{Group: m.groups[i], Start: loc[0], End: loc[1]})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans
}

func overlaps(spans []Span, start, end int) bool {
	for _, s := range spans {
		if start < s.End && s.Start < end {
			return true
		}
	}
	return false
}
