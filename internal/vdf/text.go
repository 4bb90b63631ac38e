package vdf

import (
	"fmt"
	"strings"
)

// DecodeText parses the text KeyValues form:
//
//	"UserLocalConfigStore"
//	{
//		"friends" { "PersonaName" "player" }
//	}
//
// Values become KindString or KindMap. Line comments and platform
// conditionals such as [$WIN32] are skipped.
func DecodeText(data string) (*Map, error) {
	lx := &lexer{src: data}
	root, err := lx.parseMap(0, false)
	if err != nil {
		return nil, err
	}
	return root, nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokString
	tokOpen
	tokClose
)

type lexer struct {
	src string
	pos int
}

func (lx *lexer) fail(reason string) *FormatError {
	return &FormatError{Offset: lx.pos, Reason: reason}
}

func (lx *lexer) parseMap(depth int, nested bool) (*Map, error) {
	if depth > maxDepth {
		return nil, lx.fail("maps nested too deeply")
	}
	m := NewMap()
	for {
		kind, key, err := lx.next()
		if err != nil {
			return nil, err
		}
		switch kind {
		case tokEOF:
			if nested {
				return nil, lx.fail("unexpected end of input, missing '}'")
			}
			return m, nil
		case tokClose:
			if !nested {
				return nil, lx.fail("unbalanced '}'")
			}
			return m, nil
		case tokOpen:
			return nil, lx.fail("'{' without key")
		}

		kind, val, err := lx.next()
		if err != nil {
			return nil, err
		}
		switch kind {
		case tokString:
			m.Append(key, String(val))
		case tokOpen:
			child, err := lx.parseMap(depth+1, true)
			if err != nil {
				return nil, err
			}
			m.Append(key, MapValue(child))
		default:
			return nil, lx.fail(fmt.Sprintf("missing value for key %q", key))
		}
	}
}

func (lx *lexer) next() (tokenKind, string, error) {
	for {
		lx.skipSpace()
		if lx.pos >= len(lx.src) {
			return tokEOF, "", nil
		}
		c := lx.src[lx.pos]
		switch {
		case c == '{':
			lx.pos++
			return tokOpen, "", nil
		case c == '}':
			lx.pos++
			return tokClose, "", nil
		case c == '"':
			s, err := lx.quoted()
			return tokString, s, err
		case c == '[':
			end := strings.IndexByte(lx.src[lx.pos:], ']')
			if end < 0 {
				return tokEOF, "", lx.fail("unterminated conditional")
			}
			lx.pos += end + 1
		default:
			return tokString, lx.bare(), nil
		}
	}
}

func (lx *lexer) skipSpace() {
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			lx.pos++
		case c == '/' && strings.HasPrefix(lx.src[lx.pos:], "//"):
			nl := strings.IndexByte(lx.src[lx.pos:], '\n')
			if nl < 0 {
				lx.pos = len(lx.src)
				return
			}
			lx.pos += nl + 1
		default:
			return
		}
	}
}

func (lx *lexer) quoted() (string, error) {
	lx.pos++ // opening quote
	var b strings.Builder
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		lx.pos++
		switch c {
		case '"':
			return b.String(), nil
		case '\\':
			if lx.pos >= len(lx.src) {
				return "", lx.fail("unterminated escape")
			}
			esc := lx.src[lx.pos]
			lx.pos++
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(esc)
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", lx.fail("unterminated quoted string")
}

func (lx *lexer) bare() string {
	start := lx.pos
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '{' || c == '}' || c == '"' {
			break
		}
		lx.pos++
	}
	return lx.src[start:lx.pos]
}
