// Package marker parses marker specifications: the KIND GROUP PATTERN ...
// token lists that tell a pane which text to highlight.
//
// A specification such as "text 1 ERROR 2 WARN" is split into a kind
// ("text") and pairs of (group, pattern). Text kinds match literally,
// regex kinds use Go regexp syntax, and an "i" prefix makes either
// case-insensitive.
package marker

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the way a marker interprets its patterns.
type Kind string

const (
	KindText   Kind = "text"
	KindIText  Kind = "itext"
	KindRegex  Kind = "regex"
	KindIRegex Kind = "iregex"
)

// Groups are clamped into [MinGroup, MaxGroup]; each group gets its own
// highlight color.
const (
	MinGroup = 1
	MaxGroup = 3
)

// Rule is a single (group, pattern) pair. Pattern is always a regular
// expression; literal text is quoted during parsing.
type Rule struct {
	Group   int
	Pattern string
}

// Spec is a parsed marker specification.
type Spec struct {
	Kind       Kind
	IgnoreCase bool
	Rules      []Rule
}

// SyntaxError reports a marker specification that does not follow the
// grammar. Args is the full offending token list.
type SyntaxError struct {
	Args   []string
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid marker specification %q: %s", strings.Join(e.Args, " "), e.Reason)
}

// Kinds returns the accepted kind tokens.
func Kinds() []Kind {
	return []Kind{KindText, KindIText, KindRegex, KindIRegex}
}

// Parse validates kind and the remaining tokens and returns the structured
// specification.
func Parse(kind string, parts []string) (Spec, error) {
	args := append([]string{kind}, parts...)
	fail := func(format string, a ...any) (Spec, error) {
		return Spec{}, &SyntaxError{Args: args, Reason: fmt.Sprintf(format, a...)}
	}

	k := Kind(kind)
	switch k {
	case KindText, KindIText, KindRegex, KindIRegex:
	default:
		return fail("unknown marker type %q", kind)
	}
	if len(parts) == 0 || len(parts)%2 != 0 {
		return fail("no group specified in marker: %s", strings.Join(parts, " "))
	}

	spec := Spec{
		Kind:       k,
		IgnoreCase: strings.HasPrefix(kind, "i"),
		Rules:      make([]Rule, 0, len(parts)/2),
	}
	literal := k == KindText || k == KindIText
	for i := 0; i < len(parts); i += 2 {
		group, err := strconv.Atoi(parts[i])
		if err != nil {
			return fail("group %q is not an integer", parts[i])
		}
		group = max(MinGroup, min(group, MaxGroup))

		pattern := parts[i+1]
		if literal {
			pattern = regexp.QuoteMeta(pattern)
		} else if _, err := regexp.Compile(pattern); err != nil {
			return fail("bad pattern %q: %v", pattern, err)
		}
		spec.Rules = append(spec.Rules, Rule{Group: group, Pattern: pattern})
	}
	return spec, nil
}

// ParseTokens is Parse over a single token list whose first element is the
// kind.
func ParseTokens(tokens []string) (Spec, error) {
	if len(tokens) < 2 {
		return Spec{}, &SyntaxError{Args: tokens, Reason: "need a type and at least one group and pattern"}
	}
	return Parse(tokens[0], tokens[1:])
}
