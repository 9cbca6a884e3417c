package ansi

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizer_Empty(t *testing.T) {
	_, ok := NewTokenizer("").Next()
	assert.False(t, ok)
}

func TestTokenizer_Sequences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "text only",
			input: "text",
			want:  []Token{{Kind: Literal, Text: "text"}},
		},
		{
			name:  "lone escape",
			input: "\x1b",
			want:  []Token{{Kind: BareEscape, Text: "\x1b"}},
		},
		{
			name:  "cursor up",
			input: "\x1b[1A",
			want:  []Token{{Kind: CursorUp, Text: "\x1b[1A", N: 1}},
		},
		{
			name:  "cursor up default count",
			input: "\x1b[A",
			want:  []Token{{Kind: CursorUp, Text: "\x1b[A", N: 1}},
		},
		{
			name:  "cursor up then down",
			input: "\x1b[1A\x1b[3B",
			want: []Token{
				{Kind: CursorUp, Text: "\x1b[1A", N: 1},
				{Kind: CursorDown, Text: "\x1b[3B", N: 3},
			},
		},
		{
			name:  "text around movement",
			input: "text\x1b[1Atext",
			want: []Token{
				{Kind: Literal, Text: "text"},
				{Kind: CursorUp, Text: "\x1b[1A", N: 1},
				{Kind: Literal, Text: "text"},
			},
		},
		{
			name:  "sgr list",
			input: "\x1b[1;2;3;4m",
			want:  []Token{{Kind: SGR, Text: "\x1b[1;2;3;4m", Params: []uint8{1, 2, 3, 4}}},
		},
		{
			name:  "empty sgr defaults to reset",
			input: "\x1b[m",
			want:  []Token{{Kind: SGR, Text: "\x1b[m", Params: []uint8{0}}},
		},
		{
			name:  "omitted sgr param is zero",
			input: "\x1b[;1m",
			want:  []Token{{Kind: SGR, Text: "\x1b[;1m", Params: []uint8{0, 1}}},
		},
		{
			name:  "cursor position",
			input: "\x1b[5;10H",
			want:  []Token{{Kind: CursorPosition, Text: "\x1b[5;10H", Row: 5, Col: 10}},
		},
		{
			name:  "cursor position defaults",
			input: "\x1b[H",
			want:  []Token{{Kind: CursorPosition, Text: "\x1b[H", Row: 1, Col: 1}},
		},
		{
			name:  "horizontal vertical position",
			input: "\x1b[2;3f",
			want:  []Token{{Kind: HorizontalVerticalPos, Text: "\x1b[2;3f", Row: 2, Col: 3}},
		},
		{
			name:  "erase display",
			input: "\x1b[2J",
			want:  []Token{{Kind: EraseDisplay, Text: "\x1b[2J", N: 2}},
		},
		{
			name:  "erase line default",
			input: "\x1b[K",
			want:  []Token{{Kind: EraseLine, Text: "\x1b[K", N: 1}},
		},
		{
			name:  "scroll",
			input: "\x1b[3S\x1b[T",
			want: []Token{
				{Kind: ScrollUp, Text: "\x1b[3S", N: 3},
				{Kind: ScrollDown, Text: "\x1b[T", N: 1},
			},
		},
		{
			name:  "aux port and status report",
			input: "\x1b[5i\x1b[4i\x1b[6n",
			want: []Token{
				{Kind: AuxPortOn, Text: "\x1b[5i"},
				{Kind: AuxPortOff, Text: "\x1b[4i"},
				{Kind: DeviceStatusReport, Text: "\x1b[6n"},
			},
		},
		{
			name:  "save restore cursor",
			input: "\x1b[s\x1b[u",
			want: []Token{
				{Kind: SaveCursor, Text: "\x1b[s"},
				{Kind: RestoreCursor, Text: "\x1b[u"},
			},
		},
		{
			name:  "cursor visibility",
			input: "\x1b[?25l\x1b[?25h",
			want: []Token{
				{Kind: CursorHide, Text: "\x1b[?25l"},
				{Kind: CursorShow, Text: "\x1b[?25h"},
			},
		},
		{
			name:  "set and reset mode",
			input: "\x1b[4h\x1b[?7l",
			want: []Token{
				{Kind: SetMode, Text: "\x1b[4h", N: 4},
				{Kind: ResetMode, Text: "\x1b[?7l", N: 7},
			},
		},
		{
			name:  "unsupported final byte",
			input: "\x1b[5zok",
			want: []Token{
				{Kind: BareEscape, Text: "\x1b"},
				{Kind: Literal, Text: "[5zok"},
			},
		},
		{
			name:  "truncated sequence",
			input: "a\x1b[12",
			want: []Token{
				{Kind: Literal, Text: "a"},
				{Kind: BareEscape, Text: "\x1b"},
				{Kind: Literal, Text: "[12"},
			},
		},
		{
			name:  "sgr param out of range",
			input: "\x1b[300m",
			want: []Token{
				{Kind: BareEscape, Text: "\x1b"},
				{Kind: Literal, Text: "[300m"},
			},
		},
		{
			name:  "escape not followed by bracket",
			input: "\x1b]0;title\x07",
			want: []Token{
				{Kind: BareEscape, Text: "\x1b"},
				{Kind: Literal, Text: "]0;title\x07"},
			},
		},
		{
			name:  "double escape",
			input: "\x1b\x1b[1m",
			want: []Token{
				{Kind: BareEscape, Text: "\x1b"},
				{Kind: SGR, Text: "\x1b[1m", Params: []uint8{1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestTokenizer_Restart(t *testing.T) {
	tz := NewTokenizer("ab\x1b[1mcd")

	first, ok := tz.Next()
	require.True(t, ok)
	assert.Equal(t, "ab", first.Text)
	assert.Equal(t, "\x1b[1mcd", tz.Remaining())

	tz.Reset()
	again, ok := tz.Next()
	require.True(t, ok)
	assert.Equal(t, first, again)
}

func TestTokenizer_Lossless(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"\x1b",
		"\x1b[",
		"\x1b[?",
		"\x1b[1;33mhoge\x1b[39m",
		"日本語\x1b[31m赤\x1b[0m",
		"\x1b[99999999A",
		"\x1b[1;2;3;4;5;6;7;8;9;10;11;12m\x1b[38;2;1;2",
		strings.Repeat("\x1b[", 50),
	}

	rng := rand.New(rand.NewPCG(1, 2))
	alphabet := []byte("\x1b[;?0123456789mABHJKhlsu aé")
	for range 500 {
		b := make([]byte, rng.IntN(40))
		for i := range b {
			b[i] = alphabet[rng.IntN(len(alphabet))]
		}
		inputs = append(inputs, string(b))
	}

	for _, input := range inputs {
		var sb strings.Builder
		steps := 0
		for tok := range All(input) {
			require.NotEmpty(t, tok.Text, "token must not be zero-length for %q", input)
			sb.WriteString(tok.Text)
			steps++
			require.LessOrEqual(t, steps, len(input), "tokenizer did not make progress on %q", input)
		}
		assert.Equal(t, input, sb.String())
	}
}

func TestStrip(t *testing.T) {
	assert.Equal(t, "hoge", Strip("\x1b[1;33mhoge\x1b[39m"))
	assert.Equal(t, "plain", Strip("plain"))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "SGR", SGR.String())
	assert.Equal(t, "Unknown", Kind(-1).String())
	assert.False(t, Literal.IsEscape())
	assert.True(t, BareEscape.IsEscape())
}
