package key

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrInvalidSpec is wrapped by every ParseError.
var ErrInvalidSpec = errors.New("invalid key definition")

// ParseError reports a malformed key definition.
type ParseError struct {
	Input string
	Pos   int
	Token string
	Msg   string
}

// Error implements error.
func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("key definition %q: %s at position %d near %q", e.Input, e.Msg, e.Pos, e.Token)
	}
	return fmt.Sprintf("key definition %q: %s at position %d", e.Input, e.Msg, e.Pos)
}

// Unwrap returns ErrInvalidSpec.
func (e *ParseError) Unwrap() error {
	return ErrInvalidSpec
}

// Parse parses a key definition.
//
// Supported forms:
//   - Name or literal: "shift", "enter", "a", "foo"
//   - Symbol with one action: "⇥:tab", "Ω:'omega'", "E:keyevent:33"
//   - Symbol with a macro: "C:ctrl,'c'"
//   - Attributed: ":str flags='dim,small' symbol='S':'text'",
//     ":char symbol='a':b", ":keyevent symbol='Up':19"
//
// Definitions without a colon never fail: they name a special key or type
// themselves literally.
func Parse(def string) (Value, error) {
	if strings.HasPrefix(def, ":") {
		p := &parser{input: def, pos: 1}
		return p.parseAttributed()
	}
	sep := strings.IndexByte(def, ':')
	if sep < 0 {
		return byNameOrString(def), nil
	}
	p := &parser{input: def, pos: sep + 1}
	return p.parseActions(def[:sep])
}

// MustParse is like Parse but panics on error. It is intended for
// definitions embedded in the program.
func MustParse(def string) Value {
	v, err := Parse(def)
	if err != nil {
		panic("invalid key definition: " + def + ": " + err.Error())
	}
	return v
}

type parser struct {
	input string
	pos   int
}

func (p *parser) fail(msg string) error {
	tok := ""
	if p.pos < len(p.input) {
		r, _ := utf8.DecodeRuneInString(p.input[p.pos:])
		tok = string(r)
	}
	return &ParseError{Input: p.input, Pos: p.pos, Token: tok, Msg: msg}
}

func (p *parser) eof() bool { return p.pos >= len(p.input) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) skipSpaces() {
	for !p.eof() && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func (p *parser) word() string {
	start := p.pos
	for !p.eof() && isWordByte(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

// quoted reads a single-quoted string. The opening quote must be at pos.
// Inside, a backslash escapes the following character.
func (p *parser) quoted() (string, error) {
	if p.peek() != '\'' {
		return "", p.fail("expected quoted string")
	}
	start := p.pos
	p.pos++
	var b strings.Builder
	for !p.eof() {
		c := p.input[p.pos]
		switch c {
		case '\\':
			if p.pos+1 >= len(p.input) {
				p.pos = start
				return "", p.fail("unterminated quoted string")
			}
			r, n := utf8.DecodeRuneInString(p.input[p.pos+1:])
			b.WriteRune(r)
			p.pos += 1 + n
		case '\'':
			p.pos++
			return b.String(), nil
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	p.pos = start
	return "", p.fail("unterminated quoted string")
}

func (p *parser) integer() (int, error) {
	start := p.pos
	w := p.word()
	n, err := strconv.Atoi(w)
	if err != nil {
		p.pos = start
		return 0, p.fail("expected an integer payload")
	}
	return n, nil
}

// parseActions parses "symbol:action[,action...]" with pos after the colon.
func (p *parser) parseActions(symbol string) (Value, error) {
	var keys []Value
	for {
		k, err := p.parseAction()
		if err != nil {
			return None, err
		}
		keys = append(keys, k)
		if p.eof() {
			break
		}
		if p.peek() != ',' {
			return None, p.fail("expected comma")
		}
		p.pos++
	}
	if len(keys) == 1 {
		return keys[0].WithSymbol(symbol), nil
	}
	return MakeMacro(symbol, keys, 0), nil
}

func (p *parser) parseAction() (Value, error) {
	switch c := p.peek(); {
	case p.eof():
		return None, p.fail("expected key definition")
	case c == ',':
		return None, p.fail("unexpected comma")
	case c == '\'':
		s, err := p.quoted()
		if err != nil {
			return None, err
		}
		return MakeString(s, 0), nil
	}
	if strings.HasPrefix(p.input[p.pos:], "keyevent:") {
		p.pos += len("keyevent:")
		code, err := p.integer()
		if err != nil {
			return None, err
		}
		return MakeKeyevent(strconv.Itoa(code), code, 0), nil
	}
	var b strings.Builder
	for !p.eof() {
		c := p.input[p.pos]
		if c == ',' || c == '\'' {
			break
		}
		if c == '\\' && p.pos+1 < len(p.input) {
			r, n := utf8.DecodeRuneInString(p.input[p.pos+1:])
			b.WriteRune(r)
			p.pos += 1 + n
			continue
		}
		b.WriteByte(c)
		p.pos++
	}
	return byNameOrString(b.String()), nil
}

type attributes struct {
	flags     Flags
	symbol    string
	hasSymbol bool
}

// parseAttributed parses ":kind attr='v'...:payload" with pos after the
// leading colon.
func (p *parser) parseAttributed() (Value, error) {
	kindPos := p.pos
	kind := p.word()
	if kind == "" {
		return None, p.fail("expected kind, for example \":str ...\"")
	}
	attrs, err := p.parseAttributes()
	if err != nil {
		return None, err
	}
	p.skipSpaces()
	if p.peek() != ':' {
		return None, p.fail("unexpected character")
	}
	p.pos++

	var v Value
	switch kind {
	case "str":
		s, err := p.quoted()
		if err != nil {
			return None, err
		}
		if attrs.hasSymbol {
			v = MakeStringSymbol(s, attrs.symbol, attrs.flags)
			attrs.hasSymbol = false
		} else {
			v = MakeString(s, attrs.flags)
		}
	case "char":
		r, n := utf8.DecodeRuneInString(p.input[p.pos:])
		if n == 0 || r == ' ' {
			return None, p.fail("expected a character payload")
		}
		p.pos += n
		v = MakeCharSymbol(r, string(r), attrs.flags)
	case "keyevent":
		code, err := p.integer()
		if err != nil {
			return None, err
		}
		v = MakeKeyevent(strconv.Itoa(code), code, attrs.flags)
	default:
		p.pos = kindPos
		return None, p.fail("unknown kind '" + kind + "'")
	}
	if !p.eof() {
		return None, p.fail("unexpected character after payload")
	}
	if attrs.hasSymbol {
		v = v.WithSymbol(attrs.symbol)
		v = v.WithFlags(v.Flags() | attrs.flags)
	}
	return v, nil
}

func (p *parser) parseAttributes() (attributes, error) {
	var a attributes
	for {
		save := p.pos
		p.skipSpaces()
		namePos := p.pos
		name := p.word()
		p.skipSpaces()
		if name == "" || p.peek() != '=' {
			p.pos = save
			return a, nil
		}
		p.pos++
		p.skipSpaces()
		val, err := p.quoted()
		if err != nil {
			return a, err
		}
		switch name {
		case "flags":
			f, err := parseFlags(val)
			if err != nil {
				p.pos = namePos
				return a, p.fail(err.Error())
			}
			a.flags |= f
		case "symbol":
			a.symbol = val
			a.hasSymbol = true
		default:
			p.pos = namePos
			return a, p.fail("unknown attribute '" + name + "'")
		}
	}
}

func parseFlags(s string) (Flags, error) {
	var f Flags
	for _, name := range strings.Split(s, ",") {
		switch strings.TrimSpace(name) {
		case "":
		case "dim":
			f |= FlagSecondary
		case "small":
			f |= FlagSmallerFont
		default:
			return 0, fmt.Errorf("unknown flag '%s'", name)
		}
	}
	return f, nil
}
