package langparser

import (
	"fmt"
	"strings"

	"github.com/nulint/nulint/internal/span"
)

// ParseError is a diagnostic the grammar itself raised (the source does
// not conform). ModuleNotFound marks errors that are meaningless for
// single-buffer analysis; the parse-error surface rule excludes them.
type ParseError struct {
	Span           span.Span
	Message        string
	ModuleNotFound bool
}

// ParseWarning is a deprecation notice the parser raises while still
// producing a usable tree, e.g. a renamed flag.
type ParseWarning struct {
	Span span.Span
	Label string
	Help  string
}

// ParseResult bundles everything the parse frontend produces: the tree,
// the symbol table, and the parser's own error/warning lists, verbatim
// and un-thrown.
type ParseResult struct {
	Program  *Program
	Symbols  *SymbolTable
	Errors   []ParseError
	Warnings []ParseWarning
}

// Parse lexes and parses src into a ParseResult. It never panics or
// returns a Go error: a malformed buffer yields a partial Program plus
// populated Errors.
func Parse(src []byte) *ParseResult {
	p := &parser{
		toks:    lex(src),
		symbols: newSymbolTable(),
	}
	prog := p.parseProgram(false)
	prog.Span = span.Span{Start: 0, End: len(src)}
	return &ParseResult{
		Program:  prog,
		Symbols:  p.symbols,
		Errors:   p.errors,
		Warnings: p.warnings,
	}
}

type parser struct {
	toks     []Token
	pos      int
	symbols  *SymbolTable
	errors   []ParseError
	warnings []ParseWarning
}

func (p *parser) cur() Token  { return p.toks[p.pos] }
func (p *parser) at(k TokenKind) bool { return p.cur().Kind == k }
func (p *parser) advance() Token {
	t := p.toks[p.pos]
	if t.Kind != TokEOF {
		p.pos++
	}
	return t
}

func (p *parser) skipTrivia() {
	for {
		switch p.cur().Kind {
		case TokComment:
			p.advance()
		default:
			return
		}
	}
}

func (p *parser) skipStatementSeparators() {
	for {
		switch p.cur().Kind {
		case TokNewline, TokSemicolon, TokComment:
			p.advance()
		default:
			return
		}
	}
}

func (p *parser) addError(sp span.Span, format string, args ...any) {
	p.errors = append(p.errors, ParseError{Span: sp, Message: fmt.Sprintf(format, args...)})
}

// parseProgram parses statements until EOF, or until RBrace if inBlock.
func (p *parser) parseProgram(inBlock bool) *Program {
	start := p.cur().Span.Start
	prog := &Program{}
	for {
		p.skipStatementSeparators()
		if p.at(TokEOF) {
			break
		}
		if inBlock && p.at(TokRBrace) {
			break
		}
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
		}
	}
	end := start
	if len(prog.Stmts) > 0 {
		end = prog.Stmts[len(prog.Stmts)-1].NodeSpan().End
	}
	prog.Span = span.Span{Start: start, End: end}
	return prog
}

func (p *parser) parseStatement() Node {
	if env, ok := p.tryParseEnvAssignment(); ok {
		return env
	}
	if p.at(TokKwLet) || p.at(TokKwMut) {
		return p.parseLetBinding()
	}
	return p.parsePipeline()
}

// tryParseEnvAssignment recognizes "$env.NAME = expr" at statement
// position without consuming tokens on mismatch. The lexer keeps
// "env.NAME" as one ident token (see wordBreakers); the split happens
// here.
func (p *parser) tryParseEnvAssignment() (*EnvAssignment, bool) {
	save := p.pos
	if !p.at(TokDollar) {
		return nil, false
	}
	start := p.advance().Span.Start
	if !p.at(TokIdent) {
		p.pos = save
		return nil, false
	}
	identTok := p.cur()
	parts := strings.SplitN(identTok.Text, ".", 2)
	if len(parts) != 2 || parts[0] != "env" || parts[1] == "" {
		p.pos = save
		return nil, false
	}
	p.advance()
	if !p.at(TokEquals) {
		p.pos = save
		return nil, false
	}
	p.advance()
	value := p.parseArgument()
	nameSpan := span.Span{Start: identTok.Span.Start + len("env."), End: identTok.Span.End}
	return &EnvAssignment{
		Span:     span.Span{Start: start, End: value.Span.End},
		Name:     parts[1],
		NameSpan: nameSpan,
		Value:    value,
	}, true
}

func (p *parser) parseLetBinding() Node {
	start := p.cur().Span
	mut := p.at(TokKwMut)
	p.advance()
	if !p.at(TokIdent) {
		p.addError(p.cur().Span, "expected binding name after let/mut")
		return nil
	}
	nameTok := p.advance()
	p.symbols.Variables[nameTok.Text] = VariableSymbol{Name: nameTok.Text, Mutable: mut, Span: nameTok.Span}
	if !p.at(TokEquals) {
		p.addError(p.cur().Span, "expected '=' in let/mut binding")
		return &LetBinding{Span: span.Span{Start: start.Start, End: nameTok.Span.End}, Mut: mut, Name: nameTok.Text}
	}
	p.advance()
	value := p.parseArgument()
	return &LetBinding{Span: span.Span{Start: start.Start, End: value.Span.End}, Mut: mut, Name: nameTok.Text, Value: value}
}

func (p *parser) parsePipeline() Node {
	start := p.cur().Span.Start
	var stages []Node
	stages = append(stages, p.parseStage())
	for p.at(TokPipe) {
		p.advance()
		p.skipTrivia()
		stages = append(stages, p.parseStage())
	}
	end := start
	if n := len(stages); n > 0 {
		end = stages[n-1].NodeSpan().End
	}
	if len(stages) == 1 {
		if c, ok := stages[0].(*Call); ok {
			return c
		}
	}
	return &Pipeline{Span: span.Span{Start: start, End: end}, Stages: stages}
}

// parseStage parses one pipeline stage: a Call (possibly external), or a
// bare literal value when the stage has no command name.
func (p *parser) parseStage() Node {
	if p.at(TokCaret) || p.at(TokIdent) {
		return p.parseCall()
	}
	arg := p.parseArgument()
	return &LiteralStage{Span: arg.Span, Value: arg}
}

func (p *parser) parseCall() *Call {
	start := p.cur().Span.Start
	external := false
	if p.at(TokCaret) {
		external = true
		p.advance()
	}
	var name string
	headSpan := span.Span{Start: start, End: start}
	if p.at(TokIdent) {
		nameTok := p.advance()
		name = nameTok.Text
		headSpan = nameTok.Span
	} else {
		p.addError(p.cur().Span, "expected command name")
	}
	if !external {
		p.symbols.Commands[name] = CommandSymbol{Name: name, External: false}
	} else {
		p.symbols.Commands[name] = CommandSymbol{Name: name, External: true}
	}

	var args []Argument
	for !p.atStageBoundary() {
		arg := p.parseArgument()
		if arg.Kind == ArgFlag && arg.Value == "ignore-errors" {
			p.warnings = append(p.warnings, ParseWarning{
				Span:  arg.Span,
				Label: fmt.Sprintf("`--ignore-errors` on `%s` is deprecated", name),
				Help:  "`--ignore-errors` has been renamed to `--optional (-o)`",
			})
		}
		args = append(args, arg)
	}
	end := headSpan.End
	if n := len(args); n > 0 {
		end = args[n-1].Span.End
	}
	return &Call{
		Span:     span.Span{Start: start, End: end},
		HeadSpan: headSpan,
		External: external,
		Name:     name,
		Args:     args,
	}
}

func (p *parser) atStageBoundary() bool {
	switch p.cur().Kind {
	case TokPipe, TokNewline, TokSemicolon, TokEOF, TokRBrace, TokRParen, TokRBracket, TokComma:
		return true
	default:
		return false
	}
}

// parseArgument parses one value expression: flags, literals, variables,
// blocks, records, or lists.
func (p *parser) parseArgument() Argument {
	tok := p.cur()
	switch tok.Kind {
	case TokIdent:
		if len(tok.Text) > 0 && tok.Text[0] == '-' {
			p.advance()
			long := len(tok.Text) > 1 && tok.Text[1] == '-'
			value := trimDashes(tok.Text)
			return Argument{Span: tok.Span, Kind: ArgFlag, Text: tok.Text, Value: value, Long: long}
		}
		p.advance()
		return Argument{Span: tok.Span, Kind: ArgBare, Text: tok.Text, Value: tok.Text}
	case TokString:
		p.advance()
		return Argument{Span: tok.Span, Kind: ArgString, Text: tok.Text, Value: tok.Value}
	case TokNumber:
		p.advance()
		return Argument{Span: tok.Span, Kind: ArgNumber, Text: tok.Text, Value: tok.Text}
	case TokDollar:
		return p.parseVarRef()
	case TokLBrace:
		return p.parseBraced()
	case TokLBracket:
		return p.parseList()
	default:
		p.addError(tok.Span, "unexpected token %q", tok.Text)
		p.advance()
		return Argument{Span: tok.Span, Kind: ArgBare, Text: tok.Text}
	}
}

func trimDashes(s string) string {
	i := 0
	for i < len(s) && s[i] == '-' {
		i++
	}
	return s[i:]
}

func (p *parser) parseVarRef() Argument {
	dollar := p.advance() // '$'
	if !p.at(TokIdent) {
		p.addError(p.cur().Span, "expected variable name after '$'")
		return Argument{Span: dollar.Span, Kind: ArgVar}
	}
	nameTok := p.advance()
	name := nameTok.Text
	if idx := strings.IndexByte(name, '.'); idx >= 0 {
		name = name[:idx]
	}
	return Argument{
		Span:  span.Span{Start: dollar.Span.Start, End: nameTok.Span.End},
		Kind:  ArgVar,
		Text:  nameTok.Text,
		Value: name,
	}
}

// parseBraced disambiguates "{ |params| body }" / "{ key: value }" /
// "{ body }" and delegates to the matching parser.
func (p *parser) parseBraced() Argument {
	if p.looksLikeRecord() {
		return p.parseRecord()
	}
	return p.parseBlock()
}

// looksLikeRecord peeks past the opening '{' for an "ident-or-string :"
// pattern before any '|', which distinguishes a record literal from a
// block/closure.
func (p *parser) looksLikeRecord() bool {
	i := p.pos + 1
	for i < len(p.toks) && (p.toks[i].Kind == TokNewline || p.toks[i].Kind == TokComment) {
		i++
	}
	if i >= len(p.toks) {
		return false
	}
	if p.toks[i].Kind == TokRBrace {
		return true // "{}" parses as an empty record
	}
	if p.toks[i].Kind != TokIdent && p.toks[i].Kind != TokString {
		return false
	}
	j := i + 1
	return j < len(p.toks) && p.toks[j].Kind == TokColon
}

func (p *parser) parseRecord() Argument {
	start := p.advance().Span.Start // '{'
	var fields []RecordField
	for {
		p.skipStatementSeparators()
		if p.at(TokRBrace) || p.at(TokEOF) {
			break
		}
		var key string
		keySpan := p.cur().Span
		if p.at(TokIdent) || p.at(TokString) {
			keyTok := p.advance()
			key = keyTok.Text
			if keyTok.Kind == TokString {
				key = keyTok.Value
			}
		} else {
			p.addError(p.cur().Span, "expected record key")
			p.advance()
			continue
		}
		if p.at(TokColon) {
			p.advance()
		} else {
			p.addError(p.cur().Span, "expected ':' after record key %q", key)
		}
		value := p.parseArgument()
		fields = append(fields, RecordField{Key: key, KeySpan: keySpan, Value: value})
		if p.at(TokComma) {
			p.advance()
		}
	}
	end := p.cur().Span.End
	if p.at(TokRBrace) {
		p.advance()
	}
	return Argument{Span: span.Span{Start: start, End: end}, Kind: ArgRecord, Node: &Record{Span: span.Span{Start: start, End: end}, Fields: fields}}
}

func (p *parser) parseBlock() Argument {
	start := p.advance().Span.Start // '{'
	var params []string
	if p.at(TokPipe) {
		p.advance()
		for !p.at(TokPipe) && !p.at(TokEOF) {
			if p.at(TokIdent) {
				params = append(params, p.advance().Text)
			} else {
				p.advance()
			}
			if p.at(TokComma) {
				p.advance()
			}
		}
		if p.at(TokPipe) {
			p.advance()
		}
	}
	body := p.parseProgram(true)
	end := p.cur().Span.End
	if p.at(TokRBrace) {
		end = p.advance().Span.End
	}
	blk := &Block{Span: span.Span{Start: start, End: end}, Params: params, Body: body}
	return Argument{Span: blk.Span, Kind: ArgBlock, Node: blk}
}

func (p *parser) parseList() Argument {
	start := p.advance().Span.Start // '['
	var items []Argument
	for {
		p.skipStatementSeparators()
		if p.at(TokRBracket) || p.at(TokEOF) {
			break
		}
		items = append(items, p.parseArgument())
		if p.at(TokComma) {
			p.advance()
		}
	}
	end := p.cur().Span.End
	if p.at(TokRBracket) {
		end = p.advance().Span.End
	}
	lst := &ListLit{Span: span.Span{Start: start, End: end}, Items: items}
	return Argument{Span: lst.Span, Kind: ArgList, Node: lst}
}
