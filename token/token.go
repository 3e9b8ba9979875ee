package token

import "github.com/scriptandcompile/vb6parse/source"

// Span locates a Token in its source file: the file name plus start/end
// byte offsets and the start line/column.
type Span struct {
	File       string
	Start, End int
	Line       int
	Column     int
}

// Token is a tagged slice of source text, mirroring the teacher's
// java/parser.Token (Kind + Span + Literal), generalized with a KeywordID
// for the keyword subcase.
type Token struct {
	Kind      Kind
	Keyword   KeywordID // valid when Kind == Keyword
	Span      Span
	Text      string // verbatim source slice, including quotes/delimiters
}

// Stream is an ordered, restartable, random-access sequence of Tokens plus
// the filename they came from.
type Stream struct {
	File   string
	Tokens []Token
	pos    int
}

// NewStream wraps a token slice produced by the lexer.
func NewStream(file string, tokens []Token) *Stream {
	return &Stream{File: file, Tokens: tokens}
}

// Reset rewinds iteration to the first token.
func (s *Stream) Reset() { s.pos = 0 }

// Len is the number of tokens, including the trailing EOF.
func (s *Stream) Len() int { return len(s.Tokens) }

// At returns the token at index i, or the final (EOF) token if i is out of
// range — random access never panics, even on an empty stream.
func (s *Stream) At(i int) Token {
	if len(s.Tokens) == 0 {
		return Token{Kind: EOF}
	}
	if i < 0 {
		i = 0
	}
	if i >= len(s.Tokens) {
		return s.Tokens[len(s.Tokens)-1]
	}
	return s.Tokens[i]
}

// Pos returns the current iteration index.
func (s *Stream) Pos() int { return s.pos }

// SetPos seeks iteration to index i, clamped to the valid range.
func (s *Stream) SetPos(i int) {
	if i < 0 {
		i = 0
	}
	if i > len(s.Tokens) {
		i = len(s.Tokens)
	}
	s.pos = i
}

// Peek returns the token at the current position without advancing.
func (s *Stream) Peek() Token { return s.At(s.pos) }

// Next returns the token at the current position and advances, unless
// already at EOF.
func (s *Stream) Next() Token {
	tok := s.At(s.pos)
	if s.pos < len(s.Tokens)-1 {
		s.pos++
	}
	return tok
}

// Significant returns the tokens with trivia (whitespace, comments,
// newlines, line continuations) filtered out, for components that don't
// need the CST.
func (s *Stream) Significant() []Token {
	out := make([]Token, 0, len(s.Tokens))
	for _, t := range s.Tokens {
		if !t.Kind.IsTrivia() {
			out = append(out, t)
		}
	}
	return out
}

// Text reconstructs the exact source text covered by tokens, by
// concatenating each token's Text field in order — spec.md §8 invariant 2.
func Text(tokens []Token) string {
	var n int
	for _, t := range tokens {
		n += len(t.Text)
	}
	buf := make([]byte, 0, n)
	for _, t := range tokens {
		buf = append(buf, t.Text...)
	}
	return string(buf)
}

// FromPositions builds a Span from a file name and two source.Position
// values, as produced by source.Stream.Save/Position.
func FromPositions(file string, start, end source.Position) Span {
	return Span{
		File:   file,
		Start:  start.Offset,
		End:    end.Offset,
		Line:   start.Line,
		Column: start.Column,
	}
}
