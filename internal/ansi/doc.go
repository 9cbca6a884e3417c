// Package ansi tokenizes text containing terminal escape sequences and
// resolves Select Graphic Rendition (SGR) codes into styles.
//
// # Tokenizer
//
// A Tokenizer walks a string and yields one Token per step. Literal text
// between escape introducers becomes a Literal token; a recognized CSI
// sequence becomes a typed token (cursor movement, erase, SGR, mode set, ...).
// Anything that cannot be recognized yields a single-byte BareEscape token for
// the ESC byte and parsing resumes at the next byte, so the tokenizer never
// fails and always makes progress on untrusted input.
//
// The Text of every token is the exact source span it was parsed from.
// Concatenating the Text of all tokens reproduces the input.
//
//	for tok := range ansi.All("\x1b[1;33mhello\x1b[0m") {
//	    fmt.Printf("%s %q\n", tok.Kind, tok.Text)
//	}
//
// # Styles
//
// Style is a small value type holding an optional foreground and background
// Color and a set of Modifier flags. Style.Apply folds a list of SGR codes
// over the receiver and returns the new style; unknown codes are ignored.
package ansi
