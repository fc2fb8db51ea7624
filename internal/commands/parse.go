package commands

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseLine splits one command line into its invocations. A semicolon
// separates commands; a comma also separates commands but the new one
// inherits the criteria of the one before it, so
//
//	[class="^editor$"] focus, resize grow width 10 px
//
// resizes the same window it focused. Criteria values may be quoted
// with double quotes; backslash escapes the next rune inside quotes.
func ParseLine(line string) ([]Invocation, error) {
	p := &lineParser{in: []rune(line)}
	var out []Invocation
	var carried []Criterion
	for {
		p.skipSpace()
		if p.eof() {
			return out, nil
		}
		switch p.peek() {
		case ';':
			p.pos++
			carried = nil
			continue
		case ',':
			p.pos++
			continue
		}
		inv := Invocation{Criteria: carried}
		if p.peek() == '[' {
			crit, err := p.criteria()
			if err != nil {
				return nil, err
			}
			inv.Criteria = crit
		}
		for {
			p.skipSpace()
			if p.eof() || p.peek() == ';' || p.peek() == ',' {
				break
			}
			tok, err := p.token()
			if err != nil {
				return nil, err
			}
			inv.Args = append(inv.Args, tok)
		}
		if len(inv.Args) == 0 {
			return nil, fmt.Errorf("missing command after criteria")
		}
		inv.Verb = inv.Args[0]
		inv.Args = inv.Args[1:]
		out = append(out, inv)
		carried = inv.Criteria
	}
}

type lineParser struct {
	in  []rune
	pos int
}

func (p *lineParser) eof() bool  { return p.pos >= len(p.in) }
func (p *lineParser) peek() rune { return p.in[p.pos] }

func (p *lineParser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.pos++
	}
}

// criteria parses a [key="value" key=value] block, cursor on '['.
func (p *lineParser) criteria() ([]Criterion, error) {
	p.pos++
	var out []Criterion
	for {
		p.skipSpace()
		if p.eof() {
			return nil, fmt.Errorf("unterminated criteria block")
		}
		if p.peek() == ']' {
			p.pos++
			return out, nil
		}
		start := p.pos
		for !p.eof() && p.peek() != '=' && p.peek() != ']' && !unicode.IsSpace(p.peek()) {
			p.pos++
		}
		key := string(p.in[start:p.pos])
		if key == "" {
			return nil, fmt.Errorf("empty criterion key at column %d", p.pos+1)
		}
		if p.eof() || p.peek() != '=' {
			// bare key, value left empty
			out = append(out, Criterion{Key: key})
			continue
		}
		p.pos++
		val, err := p.value(']')
		if err != nil {
			return nil, err
		}
		out = append(out, Criterion{Key: key, Value: val})
	}
}

// value reads a criterion value: quoted, or bare up to space or close.
func (p *lineParser) value(close rune) (string, error) {
	if !p.eof() && p.peek() == '"' {
		return p.quoted()
	}
	start := p.pos
	for !p.eof() && p.peek() != close && !unicode.IsSpace(p.peek()) {
		p.pos++
	}
	return string(p.in[start:p.pos]), nil
}

// token reads one command argument: quoted, or bare up to space or a
// command separator.
func (p *lineParser) token() (string, error) {
	if p.peek() == '"' {
		return p.quoted()
	}
	start := p.pos
	for !p.eof() && !unicode.IsSpace(p.peek()) && p.peek() != ';' && p.peek() != ',' {
		p.pos++
	}
	return string(p.in[start:p.pos]), nil
}

// quoted reads a double-quoted string, cursor on the opening quote.
func (p *lineParser) quoted() (string, error) {
	p.pos++
	var b strings.Builder
	for {
		if p.eof() {
			return "", fmt.Errorf("unterminated quote")
		}
		switch p.peek() {
		case '\\':
			p.pos++
			if p.eof() {
				return "", fmt.Errorf("unterminated quote")
			}
			b.WriteRune(p.peek())
			p.pos++
		case '"':
			p.pos++
			return b.String(), nil
		default:
			b.WriteRune(p.peek())
			p.pos++
		}
	}
}
