package omml

import "strings"

// TokenType represents the type of token
type TokenType int

const (
	TokenEOF        TokenType = iota
	TokenCommand              // \frac, \alpha, \left (leading backslash stripped)
	TokenLBrace               // {
	TokenRBrace               // }
	TokenLBracket             // [
	TokenRBracket             // ]
	TokenLParen               // (
	TokenRParen               // )
	TokenPipe                 // |
	TokenCaret                // ^
	TokenUnderscore           // _
	TokenAtom                 // a maximal alphanumeric run, or any other single character
)

func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenCommand:
		return "Command"
	case TokenLBrace:
		return "LBrace"
	case TokenRBrace:
		return "RBrace"
	case TokenLBracket:
		return "LBracket"
	case TokenRBracket:
		return "RBracket"
	case TokenLParen:
		return "LParen"
	case TokenRParen:
		return "RParen"
	case TokenPipe:
		return "Pipe"
	case TokenCaret:
		return "Caret"
	case TokenUnderscore:
		return "Underscore"
	case TokenAtom:
		return "Atom"
	default:
		return "Unknown"
	}
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
	Pos   int // rune offset in the source
}

// Lexer splits math markup into tokens. It never fails: any character it
// does not recognize becomes a single-character atom for the parser to
// deal with.
type Lexer struct {
	input []rune
	pos   int
}

// NewLexer creates a new lexer over the given markup
func NewLexer(input string) *Lexer {
	return &Lexer{input: []rune(input)}
}

// Tokenize returns all tokens in order. Whitespace is discarded.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.next()
		if tok.Type == TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// next returns the next token from the input
func (l *Lexer) next() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos}
	}

	start := l.pos
	r := l.input[l.pos]

	switch r {
	case '\\':
		return l.readCommand()
	case '{':
		l.pos++
		return Token{Type: TokenLBrace, Value: "{", Pos: start}
	case '}':
		l.pos++
		return Token{Type: TokenRBrace, Value: "}", Pos: start}
	case '[':
		l.pos++
		return Token{Type: TokenLBracket, Value: "[", Pos: start}
	case ']':
		l.pos++
		return Token{Type: TokenRBracket, Value: "]", Pos: start}
	case '(':
		l.pos++
		return Token{Type: TokenLParen, Value: "(", Pos: start}
	case ')':
		l.pos++
		return Token{Type: TokenRParen, Value: ")", Pos: start}
	case '|':
		l.pos++
		return Token{Type: TokenPipe, Value: "|", Pos: start}
	case '^':
		l.pos++
		return Token{Type: TokenCaret, Value: "^", Pos: start}
	case '_':
		l.pos++
		return Token{Type: TokenUnderscore, Value: "_", Pos: start}
	}

	if isAlnum(r) {
		return l.readAlnum()
	}

	// Any other single character is its own atom.
	l.pos++
	return Token{Type: TokenAtom, Value: string(r), Pos: start}
}

// readCommand reads a backslash command: \letters optionally ending in
// '*'. A backslash followed by a non-letter is a single-character command
// (\\, \{, \}, \, and friends).
func (l *Lexer) readCommand() Token {
	start := l.pos
	l.pos++ // consume backslash

	if l.pos >= len(l.input) {
		return Token{Type: TokenCommand, Value: "", Pos: start}
	}

	if !isLetter(l.input[l.pos]) {
		value := string(l.input[l.pos])
		l.pos++
		return Token{Type: TokenCommand, Value: value, Pos: start}
	}

	var sb strings.Builder
	for l.pos < len(l.input) && isLetter(l.input[l.pos]) {
		sb.WriteRune(l.input[l.pos])
		l.pos++
	}
	if l.pos < len(l.input) && l.input[l.pos] == '*' {
		sb.WriteRune('*')
		l.pos++
	}
	return Token{Type: TokenCommand, Value: sb.String(), Pos: start}
}

// readAlnum reads a maximal run of alphanumeric characters
func (l *Lexer) readAlnum() Token {
	start := l.pos
	var sb strings.Builder
	for l.pos < len(l.input) && isAlnum(l.input[l.pos]) {
		sb.WriteRune(l.input[l.pos])
		l.pos++
	}
	return Token{Type: TokenAtom, Value: sb.String(), Pos: start}
}

// skipWhitespace skips all whitespace characters
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
}

// Helper functions

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlnum(r rune) bool {
	return isLetter(r) || isDigit(r)
}
