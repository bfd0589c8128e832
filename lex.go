package precedence

import (
	"strconv"
)

// TokenKind is the type of a token. Single-character punctuation and
// operators use their own byte value as their kind, e.g. TokenKind('(').
type TokenKind int

const (
	// TokenNone is the kind of the end of input.
	TokenNone TokenKind = 0
)

// Named token kinds begin past the ASCII range.
const (
	// TokenIdent is reserved for identifiers. No dialect scans identifiers.
	TokenIdent TokenKind = 128 + iota
	// TokenInt is a decimal integer literal.
	TokenInt
	// TokenPow is the exponent operator **.
	TokenPow
	// TokenShl is the left shift operator <<.
	TokenShl
	// TokenShr is the right shift operator >>.
	TokenShr
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenIdent:
		return "Ident"
	case TokenInt:
		return "Int"
	case TokenPow:
		return "'**'"
	case TokenShl:
		return "'<<'"
	case TokenShr:
		return "'>>'"
	}
	if 0 < k && k < 128 {
		return "'" + string(rune(k)) + "'"
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Token is a single scanned token.
type Token struct {
	Kind TokenKind
	// Val is the value of an integer literal.
	Val int64
	// Text is the source text of the token. It is empty for TokenNone.
	Text string
	// Pos is the byte offset of the start of the token.
	Pos int
}

// End is the byte offset just past the token.
func (t Token) End() int {
	return t.Pos + len(t.Text)
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// describe names a token for error messages.
func describe(t Token) string {
	switch t.Kind {
	case TokenNone:
		return "end of input"
	case TokenInt:
		return "integer " + t.Text
	default:
		return t.Kind.String()
	}
}

// Scan scans the token at or after byte offset pos in src, skipping
// whitespace. The second result is the offset at which to resume scanning.
// At the end of input, the result is a TokenNone token. On error, the
// returned offset is past the offending bytes so that scanning can resume.
// Scan has no state besides its arguments; it is safe to call at any offset.
func (d *Dialect) Scan(src string, pos int) (Token, int, error) {
	for pos < len(src) && isSpace(src[pos]) {
		pos++
	}
	tok := Token{Pos: pos}
	if pos >= len(src) {
		return tok, pos, nil
	}
	c := src[pos]
	switch {
	case '0' <= c && c <= '9':
		end := pos + 1
		for end < len(src) && '0' <= src[end] && src[end] <= '9' {
			end++
		}
		text := src[pos:end]
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			// Only range errors are possible with a run of digits.
			return tok, end, &ScanError{Offset: pos, Text: text, Kind: "integer"}
		}
		tok.Kind, tok.Val, tok.Text = TokenInt, v, text
		return tok, end, nil
	case c == '*':
		end := pos + 1
		for end < len(src) && src[end] == '*' {
			end++
		}
		switch end - pos {
		case 1:
			tok.Kind = '*'
		case 2:
			tok.Kind = TokenPow
		default:
			return tok, end, &ScanError{Offset: pos, Text: src[pos:end], Kind: "operator"}
		}
		tok.Text = src[pos:end]
		return tok, end, nil
	case c == '(', c == ')', c == '+', c == '-', c == '/':
		return single(tok, src), pos + 1, nil
	case d.extended && (c == '<' || c == '>'):
		if pos+1 < len(src) && src[pos+1] == c {
			tok.Kind = TokenShl
			if c == '>' {
				tok.Kind = TokenShr
			}
			tok.Text = src[pos : pos+2]
			return tok, pos + 2, nil
		}
		return single(tok, src), pos + 1, nil
	case d.extended && (c == '~' || c == '&' || c == '|' || c == '^' || c == '%'):
		return single(tok, src), pos + 1, nil
	}
	return tok, pos + 1, &ScanError{Offset: pos, Text: src[pos : pos+1]}
}

// single fills tok as the one-byte token at tok.Pos.
func single(tok Token, src string) Token {
	tok.Kind = TokenKind(src[tok.Pos])
	tok.Text = src[tok.Pos : tok.Pos+1]
	return tok
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// ScanError indicates an invalid token. It implements InputError.
type ScanError struct {
	// Offset is the byte offset of the start of the invalid token.
	Offset int
	// Text is the invalid token text.
	Text string
	// Kind is the type of token the scanner was scanning. This may be
	// "integer" for a literal that does not fit in 64 bits, "operator" for a
	// malformed multi-character operator, or the empty string for a byte
	// that begins no token.
	Kind string
}

func (err *ScanError) Error() string {
	switch err.Kind {
	case "integer":
		return errpos(err.Offset, "integer literal out of range: "+err.Text)
	case "operator":
		return errpos(err.Offset, "malformed exponent operator "+strconv.Quote(err.Text))
	default:
		return errpos(err.Offset, "unknown token "+strconv.Quote(err.Text))
	}
}

func (err *ScanError) Pos() int {
	return err.Offset
}
