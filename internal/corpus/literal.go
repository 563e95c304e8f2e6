package corpus

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	errNotList      = errors.New("not a list literal")
	numberLiteralRe = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?$`)
)

// parseLiteralList parses a bracketed list (or parenthesised tuple) of quoted
// strings and numbers, e.g. ['2 cups flour', "1 egg", 3].
func parseLiteralList(s string) ([]string, error) {
	sc := &literalScanner{src: []rune(s)}
	items, err := sc.list()
	if err != nil {
		return nil, err
	}
	sc.skipSpace()
	if !sc.eof() {
		return nil, fmt.Errorf("unexpected trailing input at offset %d", sc.pos)
	}
	return items, nil
}

type literalScanner struct {
	src []rune
	pos int
}

func (sc *literalScanner) eof() bool { return sc.pos >= len(sc.src) }

func (sc *literalScanner) peek() rune {
	if sc.eof() {
		return 0
	}
	return sc.src[sc.pos]
}

func (sc *literalScanner) skipSpace() {
	for !sc.eof() && strings.ContainsRune(" \t\r\n", sc.src[sc.pos]) {
		sc.pos++
	}
}

func (sc *literalScanner) list() ([]string, error) {
	sc.skipSpace()
	var closer rune
	switch sc.peek() {
	case '[':
		closer = ']'
	case '(':
		closer = ')'
	default:
		return nil, errNotList
	}
	sc.pos++

	items := []string{}
	for {
		sc.skipSpace()
		if sc.peek() == closer {
			sc.pos++
			return items, nil
		}
		item, err := sc.value(closer)
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		sc.skipSpace()
		switch {
		case sc.eof():
			return nil, errors.New("unterminated list literal")
		case sc.peek() == ',':
			sc.pos++
		case sc.peek() == closer:
			sc.pos++
			return items, nil
		default:
			return nil, fmt.Errorf("unexpected %q at offset %d", sc.peek(), sc.pos)
		}
	}
}

func (sc *literalScanner) value(closer rune) (string, error) {
	switch sc.peek() {
	case '\'', '"':
		// adjacent literals concatenate: 'a' 'b' == 'ab'
		var b strings.Builder
		for sc.peek() == '\'' || sc.peek() == '"' {
			s, err := sc.quoted()
			if err != nil {
				return "", err
			}
			b.WriteString(s)
			sc.skipSpace()
		}
		return b.String(), nil
	case 0:
		return "", errors.New("unterminated list literal")
	}
	start := sc.pos
	for !sc.eof() && sc.peek() != ',' && sc.peek() != closer && !strings.ContainsRune(" \t\r\n", sc.peek()) {
		sc.pos++
	}
	tok := string(sc.src[start:sc.pos])
	if !numberLiteralRe.MatchString(tok) {
		return "", fmt.Errorf("unsupported literal %q", tok)
	}
	return tok, nil
}

func (sc *literalScanner) quoted() (string, error) {
	quote := sc.src[sc.pos]
	sc.pos++
	var b strings.Builder
	for !sc.eof() {
		r := sc.src[sc.pos]
		sc.pos++
		switch {
		case r == quote:
			return b.String(), nil
		case r == '\\' && !sc.eof():
			next := sc.src[sc.pos]
			sc.pos++
			switch next {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case '\\', '\'', '"':
				b.WriteRune(next)
			default:
				b.WriteRune('\\')
				b.WriteRune(next)
			}
		default:
			b.WriteRune(r)
		}
	}
	return "", errors.New("unterminated string literal")
}
