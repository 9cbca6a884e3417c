package ansi

import (
	"iter"
	"strings"
)

// Esc is the escape byte that introduces every control sequence.
const Esc = '\x1b'

// Kind identifies the type of a Token.
type Kind int

const (
	Literal Kind = iota
	BareEscape
	CursorUp
	CursorDown
	CursorForward
	CursorBack
	CursorNextLine
	CursorPrevLine
	CursorHorizontalAbs
	CursorPosition
	EraseDisplay
	EraseLine
	ScrollUp
	ScrollDown
	HorizontalVerticalPos
	SGR
	AuxPortOn
	AuxPortOff
	DeviceStatusReport
	SaveCursor
	RestoreCursor
	CursorShow
	CursorHide
	SetMode
	ResetMode
)

var kindNames = map[Kind]string{
	Literal:               "Literal",
	BareEscape:            "BareEscape",
	CursorUp:              "CursorUp",
	CursorDown:            "CursorDown",
	CursorForward:         "CursorForward",
	CursorBack:            "CursorBack",
	CursorNextLine:        "CursorNextLine",
	CursorPrevLine:        "CursorPrevLine",
	CursorHorizontalAbs:   "CursorHorizontalAbs",
	CursorPosition:        "CursorPosition",
	EraseDisplay:          "EraseDisplay",
	EraseLine:             "EraseLine",
	ScrollUp:              "ScrollUp",
	ScrollDown:            "ScrollDown",
	HorizontalVerticalPos: "HorizontalVerticalPos",
	SGR:                   "SGR",
	AuxPortOn:             "AuxPortOn",
	AuxPortOff:            "AuxPortOff",
	DeviceStatusReport:    "DeviceStatusReport",
	SaveCursor:            "SaveCursor",
	RestoreCursor:         "RestoreCursor",
	CursorShow:            "CursorShow",
	CursorHide:            "CursorHide",
	SetMode:               "SetMode",
	ResetMode:             "ResetMode",
}

// String makes Kind satisfy the fmt.Stringer interface.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsEscape reports whether the token kind originates from an escape sequence
// and therefore occupies no visible width.
func (k Kind) IsEscape() bool {
	return k != Literal
}

// Token is one element of a tokenized string.
type Token struct {
	Kind Kind
	// Text is the exact source span of the token.
	Text string
	// N is the count for movement and scroll kinds, the mode for erase and
	// set/reset mode kinds.
	N uint16
	// Row and Col are set for CursorPosition and HorizontalVerticalPos.
	Row, Col uint16
	// Params holds the SGR codes. An empty SGR sequence yields [0].
	Params []uint8
}

// Tokenizer is a lazy, restartable sequence of tokens over a string.
// The zero value is an exhausted tokenizer.
type Tokenizer struct {
	src string
	pos int
}

// NewTokenizer returns a tokenizer positioned at the start of s.
func NewTokenizer(s string) *Tokenizer {
	return &Tokenizer{src: s}
}

// Reset rewinds the tokenizer to the start of its input.
func (t *Tokenizer) Reset() {
	t.pos = 0
}

// Remaining returns the part of the input not consumed yet.
func (t *Tokenizer) Remaining() string {
	return t.src[t.pos:]
}

// Next returns the next token. The boolean is false once the input is
// exhausted. Every returned token is at least one byte long.
func (t *Tokenizer) Next() (Token, bool) {
	rest := t.src[t.pos:]
	if rest == "" {
		return Token{}, false
	}

	idx := strings.IndexByte(rest, Esc)
	switch {
	case idx < 0:
		t.pos = len(t.src)
		return Token{Kind: Literal, Text: rest}, true
	case idx > 0:
		t.pos += idx
		return Token{Kind: Literal, Text: rest[:idx]}, true
	}

	tok, n, ok := parseCSI(rest)
	if !ok {
		t.pos++
		return Token{Kind: BareEscape, Text: rest[:1]}, true
	}
	tok.Text = rest[:n]
	t.pos += n
	return tok, true
}

// All returns an iterator over the tokens of s.
func All(s string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		t := Tokenizer{src: s}
		for {
			tok, ok := t.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Tokenize returns all tokens of s.
func Tokenize(s string) []Token {
	var tokens []Token
	for tok := range All(s) {
		tokens = append(tokens, tok)
	}
	return tokens
}

// Strip returns s with every escape sequence removed.
func Strip(s string) string {
	if strings.IndexByte(s, Esc) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for tok := range All(s) {
		if tok.Kind == Literal {
			b.WriteString(tok.Text)
		}
	}
	return b.String()
}

// maxParam bounds a single numeric parameter. Larger values make the
// sequence malformed.
const maxParam = 65535

// parseCSI recognizes a complete CSI sequence at the start of s, which must
// begin with ESC. It returns the token (without Text), the number of bytes
// consumed and whether recognition succeeded.
func parseCSI(s string) (Token, int, bool) {
	if len(s) < 3 || s[0] != Esc || s[1] != '[' {
		return Token{}, 0, false
	}

	i := 2
	private := false
	if s[i] == '?' {
		private = true
		i++
	}

	// -1 marks an omitted parameter.
	var params []int
	cur, seen := 0, false
	for ; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			cur = cur*10 + int(c-'0')
			if cur > maxParam {
				return Token{}, 0, false
			}
			seen = true
			continue
		}
		if c == ';' {
			params = append(params, paramOrOmitted(cur, seen))
			cur, seen = 0, false
			continue
		}
		break
	}
	if i >= len(s) {
		return Token{}, 0, false
	}
	if seen || len(params) > 0 {
		params = append(params, paramOrOmitted(cur, seen))
	}

	final := s[i]
	n := i + 1

	if private {
		return parsePrivate(final, params, n)
	}

	switch final {
	case 'A':
		return single(CursorUp, params, 1, n)
	case 'B':
		return single(CursorDown, params, 1, n)
	case 'C':
		return single(CursorForward, params, 1, n)
	case 'D':
		return single(CursorBack, params, 1, n)
	case 'E':
		return single(CursorNextLine, params, 1, n)
	case 'F':
		return single(CursorPrevLine, params, 1, n)
	case 'G':
		return single(CursorHorizontalAbs, params, 1, n)
	case 'J':
		return single(EraseDisplay, params, 1, n)
	case 'K':
		return single(EraseLine, params, 1, n)
	case 'S':
		return single(ScrollUp, params, 1, n)
	case 'T':
		return single(ScrollDown, params, 1, n)
	case 'H':
		return position(CursorPosition, params, n)
	case 'f':
		return position(HorizontalVerticalPos, params, n)
	case 'm':
		return sgr(params, n)
	case 'i':
		if len(params) != 1 {
			return Token{}, 0, false
		}
		switch params[0] {
		case 5:
			return Token{Kind: AuxPortOn}, n, true
		case 4:
			return Token{Kind: AuxPortOff}, n, true
		}
	case 'n':
		if len(params) == 1 && params[0] == 6 {
			return Token{Kind: DeviceStatusReport}, n, true
		}
	case 's':
		if len(params) == 0 {
			return Token{Kind: SaveCursor}, n, true
		}
	case 'u':
		if len(params) == 0 {
			return Token{Kind: RestoreCursor}, n, true
		}
	case 'h':
		return mode(SetMode, params, n)
	case 'l':
		return mode(ResetMode, params, n)
	}
	return Token{}, 0, false
}

func paramOrOmitted(v int, seen bool) int {
	if !seen {
		return -1
	}
	return v
}

func parsePrivate(final byte, params []int, n int) (Token, int, bool) {
	if len(params) == 1 && params[0] == 25 {
		switch final {
		case 'h':
			return Token{Kind: CursorShow}, n, true
		case 'l':
			return Token{Kind: CursorHide}, n, true
		}
	}
	switch final {
	case 'h':
		return mode(SetMode, params, n)
	case 'l':
		return mode(ResetMode, params, n)
	}
	return Token{}, 0, false
}

func single(kind Kind, params []int, def uint16, n int) (Token, int, bool) {
	if len(params) > 1 {
		return Token{}, 0, false
	}
	v := def
	if len(params) == 1 && params[0] >= 0 {
		v = uint16(params[0])
	}
	return Token{Kind: kind, N: v}, n, true
}

func position(kind Kind, params []int, n int) (Token, int, bool) {
	if len(params) > 2 {
		return Token{}, 0, false
	}
	row, col := uint16(1), uint16(1)
	if len(params) > 0 && params[0] >= 0 {
		row = uint16(params[0])
	}
	if len(params) > 1 && params[1] >= 0 {
		col = uint16(params[1])
	}
	return Token{Kind: kind, Row: row, Col: col}, n, true
}

func mode(kind Kind, params []int, n int) (Token, int, bool) {
	if len(params) != 1 || params[0] < 0 || params[0] > 255 {
		return Token{}, 0, false
	}
	return Token{Kind: kind, N: uint16(params[0])}, n, true
}

func sgr(params []int, n int) (Token, int, bool) {
	if len(params) == 0 {
		return Token{Kind: SGR, Params: []uint8{0}}, n, true
	}
	codes := make([]uint8, len(params))
	for i, p := range params {
		switch {
		case p < 0:
			codes[i] = 0
		case p > 255:
			return Token{}, 0, false
		default:
			codes[i] = uint8(p)
		}
	}
	return Token{Kind: SGR, Params: codes}, n, true
}
