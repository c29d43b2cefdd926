package json

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocodec/gocodec/format"
)

// scanner walks a JSON document byte-by-byte and appends format.Event values
// directly as it recognizes each construct — a plain recursive-descent
// reader rather than a separate tokenizer-plus-sequencer pass. There is no
// intermediate token representation: every scanXxx method either emits an
// Event itself or delegates to one that does.
type scanner struct {
	src  []byte
	pos  int
	line int
	col  int
}

// parseStream scans data into a flat, unfinalized Event sequence. Callers
// run the result through format.Finalize before handing it to an
// format.EventReader.
func parseStream(data []byte) ([]format.Event, error) {
	s := &scanner{src: data, line: 1, col: 1}
	var events []format.Event
	s.skipSpace()
	if err := s.scanValue(&events); err != nil {
		return nil, err
	}
	s.skipSpace()
	if s.pos != len(s.src) {
		return nil, s.errorf("unexpected trailing data")
	}
	return events, nil
}

func (s *scanner) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("format/json: %s (line %d, column %d)", fmt.Sprintf(format, args...), s.line, s.col)
}

func (s *scanner) peekByte() (byte, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos], true
}

func (s *scanner) advance() byte {
	c := s.src[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.advance()
		default:
			return
		}
	}
}

// scanValue recognizes exactly one JSON value and appends its Event(s).
func (s *scanner) scanValue(events *[]format.Event) error {
	s.skipSpace()
	c, ok := s.peekByte()
	if !ok {
		return io.ErrUnexpectedEOF
	}
	switch {
	case c == '{':
		return s.scanObject(events)
	case c == '[':
		return s.scanArray(events)
	case c == '"':
		str, err := s.scanString()
		if err != nil {
			return err
		}
		*events = append(*events, format.Event{Type: format.EventString, Str: str})
		return nil
	case c == 't' || c == 'f':
		b, err := s.scanBool()
		if err != nil {
			return err
		}
		*events = append(*events, format.Event{Type: format.EventBool, Bool: b})
		return nil
	case c == 'n':
		if err := s.scanLiteral("null"); err != nil {
			return err
		}
		*events = append(*events, format.Event{Type: format.EventNull})
		return nil
	case c == '-' || (c >= '0' && c <= '9'):
		ev, err := s.scanNumber()
		if err != nil {
			return err
		}
		*events = append(*events, ev)
		return nil
	default:
		return s.errorf("unexpected character %q", c)
	}
}

func (s *scanner) scanObject(events *[]format.Event) error {
	s.advance() // '{'
	*events = append(*events, format.Event{Type: format.EventStartObject})
	s.skipSpace()
	if c, ok := s.peekByte(); ok && c == '}' {
		s.advance()
		*events = append(*events, format.Event{Type: format.EventEndObject})
		return nil
	}
	for {
		s.skipSpace()
		c, ok := s.peekByte()
		if !ok || c != '"' {
			return s.errorf("expected field name")
		}
		name, err := s.scanString()
		if err != nil {
			return err
		}
		*events = append(*events, format.Event{Type: format.EventFieldName, Name: name})

		s.skipSpace()
		c, ok = s.peekByte()
		if !ok || c != ':' {
			return s.errorf("expected ':' after field name")
		}
		s.advance()

		if err := s.scanValue(events); err != nil {
			return err
		}

		s.skipSpace()
		c, ok = s.peekByte()
		if !ok {
			return io.ErrUnexpectedEOF
		}
		switch c {
		case ',':
			s.advance()
			continue
		case '}':
			s.advance()
			*events = append(*events, format.Event{Type: format.EventEndObject})
			return nil
		default:
			return s.errorf("expected ',' or '}'")
		}
	}
}

func (s *scanner) scanArray(events *[]format.Event) error {
	s.advance() // '['
	*events = append(*events, format.Event{Type: format.EventStartArray})
	s.skipSpace()
	if c, ok := s.peekByte(); ok && c == ']' {
		s.advance()
		*events = append(*events, format.Event{Type: format.EventEndArray})
		return nil
	}
	for {
		if err := s.scanValue(events); err != nil {
			return err
		}
		s.skipSpace()
		c, ok := s.peekByte()
		if !ok {
			return io.ErrUnexpectedEOF
		}
		switch c {
		case ',':
			s.advance()
			continue
		case ']':
			s.advance()
			*events = append(*events, format.Event{Type: format.EventEndArray})
			return nil
		default:
			return s.errorf("expected ',' or ']'")
		}
	}
}

func (s *scanner) scanLiteral(word string) error {
	if s.pos+len(word) > len(s.src) || string(s.src[s.pos:s.pos+len(word)]) != word {
		return s.errorf("invalid literal, expected %q", word)
	}
	for range word {
		s.advance()
	}
	return nil
}

func (s *scanner) scanBool() (bool, error) {
	c, _ := s.peekByte()
	if c == 't' {
		return true, s.scanLiteral("true")
	}
	return false, s.scanLiteral("false")
}

// scanNumber consumes a JSON number literal and classifies it as an integer
// or floating-point Event based on whether it used a fraction or exponent.
// Unlike the teacher's arbitrary-precision number parts, gocodec only needs
// an int64 or a float64 out of this, so exponent-form integer literals
// (e.g. "1e2" read into an integer field) are not normalized back into
// digits — a documented gap from full RFC 7159 fidelity.
func (s *scanner) scanNumber() (format.Event, error) {
	start := s.pos
	if c, _ := s.peekByte(); c == '-' {
		s.advance()
	}
	if c, ok := s.peekByte(); !ok || c < '0' || c > '9' {
		return format.Event{}, s.errorf("invalid number")
	}
	if c, _ := s.peekByte(); c == '0' {
		s.advance()
	} else {
		for {
			c, ok := s.peekByte()
			if !ok || c < '0' || c > '9' {
				break
			}
			s.advance()
		}
	}

	isFloat := false
	if c, ok := s.peekByte(); ok && c == '.' {
		isFloat = true
		s.advance()
		if c, ok := s.peekByte(); !ok || c < '0' || c > '9' {
			return format.Event{}, s.errorf("invalid number: digit required after '.'")
		}
		for {
			c, ok := s.peekByte()
			if !ok || c < '0' || c > '9' {
				break
			}
			s.advance()
		}
	}
	if c, ok := s.peekByte(); ok && (c == 'e' || c == 'E') {
		isFloat = true
		s.advance()
		if c, ok := s.peekByte(); ok && (c == '+' || c == '-') {
			s.advance()
		}
		if c, ok := s.peekByte(); !ok || c < '0' || c > '9' {
			return format.Event{}, s.errorf("invalid number: digit required in exponent")
		}
		for {
			c, ok := s.peekByte()
			if !ok || c < '0' || c > '9' {
				break
			}
			s.advance()
		}
	}

	lit := string(s.src[start:s.pos])
	if isFloat {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return format.Event{}, s.errorf("invalid number %q: %v", lit, err)
		}
		return format.Event{Type: format.EventNumber, F64: f, IsFloat: true}, nil
	}
	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return format.Event{}, s.errorf("invalid integer %q: %v", lit, err)
	}
	return format.Event{Type: format.EventNumber, I64: n}, nil
}

// scanString consumes a double-quoted JSON string and decodes its escapes,
// including \uXXXX surrogate pairs, into a Go string.
func (s *scanner) scanString() (string, error) {
	if c, ok := s.peekByte(); !ok || c != '"' {
		return "", s.errorf("expected '\"'")
	}
	s.advance()

	var b strings.Builder
	for {
		c, ok := s.peekByte()
		if !ok {
			return "", io.ErrUnexpectedEOF
		}
		switch {
		case c == '"':
			s.advance()
			return b.String(), nil
		case c == '\\':
			s.advance()
			if err := s.scanEscape(&b); err != nil {
				return "", err
			}
		case c < 0x20:
			return "", s.errorf("invalid control character %#x in string", c)
		default:
			b.WriteByte(c)
			s.advance()
		}
	}
}

func (s *scanner) scanEscape(b *strings.Builder) error {
	c, ok := s.peekByte()
	if !ok {
		return io.ErrUnexpectedEOF
	}
	switch c {
	case '"', '\\', '/':
		b.WriteByte(c)
		s.advance()
	case 'b':
		b.WriteByte('\b')
		s.advance()
	case 'f':
		b.WriteByte('\f')
		s.advance()
	case 'n':
		b.WriteByte('\n')
		s.advance()
	case 'r':
		b.WriteByte('\r')
		s.advance()
	case 't':
		b.WriteByte('\t')
		s.advance()
	case 'u':
		s.advance()
		r, err := s.scanHex4()
		if err != nil {
			return err
		}
		if r >= 0xD800 && r <= 0xDBFF {
			if n, ok2 := s.peekByte(); !ok2 || n != '\\' {
				return s.errorf("unpaired surrogate escape")
			}
			s.advance()
			if n, ok2 := s.peekByte(); !ok2 || n != 'u' {
				return s.errorf("unpaired surrogate escape")
			}
			s.advance()
			low, err := s.scanHex4()
			if err != nil {
				return err
			}
			combined := ((r - 0xD800) << 10) | (low - 0xDC00)
			b.WriteRune(rune(combined) + 0x10000)
			return nil
		}
		b.WriteRune(rune(r))
	default:
		return s.errorf("invalid escape character %q", c)
	}
	return nil
}

func (s *scanner) scanHex4() (int32, error) {
	if s.pos+4 > len(s.src) {
		return 0, io.ErrUnexpectedEOF
	}
	v, err := strconv.ParseUint(string(s.src[s.pos:s.pos+4]), 16, 32)
	if err != nil {
		return 0, s.errorf("invalid \\u escape")
	}
	for i := 0; i < 4; i++ {
		s.advance()
	}
	return int32(v), nil
}
