package langparser

import "github.com/nulint/nulint/internal/span"

// TokenKind enumerates the lexical categories the scanner produces.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokNewline
	TokSemicolon
	TokPipe      // |
	TokCaret     // ^
	TokDollar    // $
	TokDot       // .
	TokComma     // ,
	TokColon     // :
	TokEquals    // =
	TokLBrace    // {
	TokRBrace    // }
	TokLBracket  // [
	TokRBracket  // ]
	TokLParen    // (
	TokRParen    // )
	TokIdent     // bare word / command name / flag
	TokVarName   // identifier following $, e.g. env, x
	TokString    // quoted string (single or double)
	TokNumber    // numeric literal
	TokComment   // # ...
	TokKwLet     // let
	TokKwMut     // mut
	TokKwIf      // if
	TokKwElse    // else
)

// Token is one lexical unit together with its byte span in the source.
type Token struct {
	Kind  TokenKind
	Text  string // literal text (decoded for strings: the raw source slice, quotes included)
	Value string // decoded value (for strings: without quotes, escapes resolved)
	Span  span.Span
}
