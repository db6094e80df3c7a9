package langparser

import (
	"strings"
	"unicode/utf8"

	"github.com/nulint/nulint/internal/span"
)

var keywords = map[string]TokenKind{
	"let":  TokKwLet,
	"mut":  TokKwMut,
	"if":   TokKwIf,
	"else": TokKwElse,
}

// lexer scans script-language source into a flat token stream. It never
// returns an error: unrecognized bytes are folded into the nearest ident
// token so that a partial/garbled buffer still produces a best-effort
// token stream for the parser to recover from.
type lexer struct {
	src  []byte
	pos  int
	toks []Token
}

func lex(src []byte) []Token {
	l := &lexer{src: src}
	l.run()
	l.toks = append(l.toks, Token{Kind: TokEOF, Span: span.Span{Start: len(src), End: len(src)}})
	return l.toks
}

func (l *lexer) run() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.emit1(TokNewline)
		case c == '\r':
			l.pos++
		case c == ';':
			l.emit1(TokSemicolon)
		case c == ' ' || c == '\t':
			l.pos++
		case c == '#':
			l.lexComment()
		case c == '|':
			l.emit1(TokPipe)
		case c == '^':
			l.emit1(TokCaret)
		case c == '$':
			l.emit1(TokDollar)
		case c == '.':
			l.emit1(TokDot)
		case c == ',':
			l.emit1(TokComma)
		case c == ':':
			l.emit1(TokColon)
		case c == '=':
			l.emit1(TokEquals)
		case c == '{':
			l.emit1(TokLBrace)
		case c == '}':
			l.emit1(TokRBrace)
		case c == '[':
			l.emit1(TokLBracket)
		case c == ']':
			l.emit1(TokRBracket)
		case c == '(':
			l.emit1(TokLParen)
		case c == ')':
			l.emit1(TokRParen)
		case c == '"':
			l.lexString('"')
		case c == '\'':
			l.lexString('\'')
		case c == '-' && l.peekIsDigit(1):
			l.lexNumber()
		case isDigit(c):
			l.lexNumber()
		default:
			l.lexWord()
		}
	}
}

func (l *lexer) peekIsDigit(offset int) bool {
	i := l.pos + offset
	return i < len(l.src) && isDigit(l.src[i])
}

func (l *lexer) emit1(kind TokenKind) {
	start := l.pos
	l.pos++
	l.toks = append(l.toks, Token{Kind: kind, Text: string(l.src[start:l.pos]), Span: span.Span{Start: start, End: l.pos}})
}

func (l *lexer) lexComment() {
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
	l.toks = append(l.toks, Token{Kind: TokComment, Text: string(l.src[start:l.pos]), Span: span.Span{Start: start, End: l.pos}})
}

func (l *lexer) lexString(quote byte) {
	start := l.pos
	l.pos++ // opening quote
	var val strings.Builder
	for l.pos < len(l.src) && l.src[l.pos] != quote {
		if quote == '"' && l.src[l.pos] == '\\' && l.pos+1 < len(l.src) {
			l.pos++
			switch l.src[l.pos] {
			case 'n':
				val.WriteByte('\n')
			case 't':
				val.WriteByte('\t')
			case 'r':
				val.WriteByte('\r')
			case '"':
				val.WriteByte('"')
			case '\\':
				val.WriteByte('\\')
			default:
				val.WriteByte(l.src[l.pos])
			}
			l.pos++
			continue
		}
		val.WriteByte(l.src[l.pos])
		l.pos++
	}
	if l.pos < len(l.src) {
		l.pos++ // closing quote
	}
	l.toks = append(l.toks, Token{
		Kind:  TokString,
		Text:  string(l.src[start:l.pos]),
		Value: val.String(),
		Span:  span.Span{Start: start, End: l.pos},
	})
}

func (l *lexer) lexNumber() {
	start := l.pos
	if l.src[l.pos] == '-' {
		l.pos++
	}
	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '.') {
		l.pos++
	}
	l.toks = append(l.toks, Token{Kind: TokNumber, Text: string(l.src[start:l.pos]), Span: span.Span{Start: start, End: l.pos}})
}

// wordBreakers are bytes that terminate a bare word/ident/flag token.
// A literal '.' is intentionally NOT a breaker: bare words commonly carry
// dots (filenames, decimals handled separately by lexNumber); the parser
// splits an identifier on '.' itself when it needs cell-path semantics
// (see parseVarRef / tryParseEnvAssignment), rather than the lexer
// guessing context it doesn't have.
const wordBreakers = " \t\r\n|^$,:={}[]()\"';"

func (l *lexer) lexWord() {
	start := l.pos
	for l.pos < len(l.src) && !strings.ContainsRune(wordBreakers, rune(l.src[l.pos])) {
		if l.src[l.pos] >= utf8.RuneSelf {
			// advance by full rune for non-ASCII text so identifiers can
			// carry unicode without corrupting spans.
			_, size := utf8.DecodeRune(l.src[l.pos:])
			if size == 0 {
				size = 1
			}
			l.pos += size
			continue
		}
		l.pos++
	}
	if l.pos == start {
		// Unrecognized single byte (e.g. stray control char): consume it
		// so the scanner always makes progress.
		l.pos++
	}
	text := string(l.src[start:l.pos])
	kind := TokIdent
	if k, ok := keywords[text]; ok {
		kind = k
	}
	l.toks = append(l.toks, Token{Kind: kind, Text: text, Span: span.Span{Start: start, End: l.pos}})
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
