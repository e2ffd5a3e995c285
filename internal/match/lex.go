package match

import (
	"fmt"
	"strings"
	"unicode"
)

type token struct {
	text   string
	quoted bool
}

// is reports whether t is the bare keyword or parenthesis op.
func (t token) is(op string) bool {
	return !t.quoted && t.text == op
}

// lex splits an expression into words and parentheses. Double quotes
// group characters (including spaces and parentheses) into one word.
func lex(expr string) ([]token, error) {
	var (
		toks    []token
		cur     strings.Builder
		inWord  bool
		quoted  bool
		inQuote bool
	)
	flush := func() {
		if inWord {
			toks = append(toks, token{text: cur.String(), quoted: quoted})
		}
		cur.Reset()
		inWord, quoted = false, false
	}

	for _, r := range expr {
		switch {
		case inQuote:
			if r == '"' {
				inQuote = false
				continue
			}
			cur.WriteRune(r)
		case r == '"':
			inQuote, inWord, quoted = true, true, true
		case r == '(' || r == ')':
			flush()
			toks = append(toks, token{text: string(r)})
		case unicode.IsSpace(r):
			flush()
		default:
			inWord = true
			cur.WriteRune(r)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quote")
	}
	flush()
	return toks, nil
}
