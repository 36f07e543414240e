package omml

import (
	"fmt"
)

// Compile tokenizes and parses math markup into a Fragment. Unknown
// commands degrade to literal text and never fail the compile; a
// structural failure (unbalanced group, unterminated environment) returns
// the causal error together with a degraded fragment holding a visibly
// marked error run, so the caller always receives usable XML.
func Compile(src string) (*Fragment, error) {
	tokens := NewLexer(src).Tokenize()
	p := &parser{tokens: tokens}

	nodes, err := p.parseUntil(nil)
	if err != nil {
		return &Fragment{
			Math:     Math{Children: []Node{NewErrorRun(src)}},
			Justify:  "center",
			Degraded: true,
		}, err
	}
	return &Fragment{Math: Math{Children: nodes}, Justify: "center"}, nil
}

// stop identifies a token that ends the current parse scope. For command
// tokens the value is compared as well.
type stop struct {
	typ   TokenType
	value string
}

func (s stop) matches(tok Token) bool {
	if tok.Type != s.typ {
		return false
	}
	return s.value == "" || s.value == tok.Value
}

// parser is a cursor over the token stream.
type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) next() Token {
	tok := p.peek()
	if tok.Type != TokenEOF {
		p.pos++
	}
	return tok
}

// parseUntil parses atoms until EOF or one of the stop tokens is seen.
// The stop token itself is left in the stream.
func (p *parser) parseUntil(stops []stop) ([]Node, error) {
	nodes := make([]Node, 0, 4)
	for {
		tok := p.peek()
		if tok.Type == TokenEOF || matchesAny(tok, stops) {
			return nodes, nil
		}
		node, err := p.parseAtom(stops)
		if err != nil {
			return nil, err
		}
		if node != nil {
			nodes = append(nodes, node)
		}
	}
}

func matchesAny(tok Token, stops []stop) bool {
	for _, s := range stops {
		if s.matches(tok) {
			return true
		}
	}
	return false
}

// parseAtom parses one primary expression and any scripts attached to it.
func (p *parser) parseAtom(stops []stop) (Node, error) {
	var base Node
	if tok := p.peek(); tok.Type != TokenCaret && tok.Type != TokenUnderscore {
		var err error
		base, err = p.parsePrimary(stops)
		if err != nil {
			return nil, err
		}
	}
	return p.parseScripts(base)
}

// parseScripts attaches ^ and _ arguments to base. The two merge into a
// combined node regardless of which is written first; a repeated script
// in the same direction nests, with the earlier node becoming the base
// of the later one.
func (p *parser) parseScripts(base Node) (Node, error) {
	for {
		tok := p.peek()
		if tok.Type != TokenCaret && tok.Type != TokenUnderscore {
			return base, nil
		}
		p.next()

		var sub, sup []Node
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenCaret {
			sup = arg
		} else {
			sub = arg
		}

		// An immediately following complementary script merges.
		if other := p.peek(); (tok.Type == TokenCaret && other.Type == TokenUnderscore) ||
			(tok.Type == TokenUnderscore && other.Type == TokenCaret) {
			p.next()
			arg2, err := p.parseArgument()
			if err != nil {
				return nil, err
			}
			if other.Type == TokenCaret {
				sup = arg2
			} else {
				sub = arg2
			}
		}

		base = makeScript(base, sub, sup)
	}
}

// makeScript builds the script node for the collected sub/sup arguments.
func makeScript(base Node, sub, sup []Node) Node {
	e := Elem{}
	if base != nil {
		e.Children = []Node{base}
	}
	switch {
	case sub != nil && sup != nil:
		return &SSubSup{Elem: e, Sub: Sub{Children: sub}, Sup: Sup{Children: sup}}
	case sub != nil:
		return &SSub{Elem: e, Sub: Sub{Children: sub}}
	default:
		return &SSup{Elem: e, Sup: Sup{Children: sup}}
	}
}

// parseArgument parses one command or script argument: a braced group, a
// parenthesized group kept as an explicit delimiter node, or a single
// primary.
func (p *parser) parseArgument() ([]Node, error) {
	tok := p.peek()
	switch tok.Type {
	case TokenEOF:
		return nil, fmt.Errorf("missing argument at position %d", tok.Pos)
	case TokenLBrace:
		p.next()
		nodes, err := p.parseUntil([]stop{{typ: TokenRBrace}})
		if err != nil {
			return nil, err
		}
		if p.peek().Type != TokenRBrace {
			return nil, fmt.Errorf("unclosed group at position %d", tok.Pos)
		}
		p.next()
		return nodes, nil
	case TokenLParen:
		p.next()
		nodes, err := p.parseUntil([]stop{{typ: TokenRParen}})
		if err != nil {
			return nil, err
		}
		if p.peek().Type != TokenRParen {
			return nil, fmt.Errorf("unclosed parenthesis at position %d", tok.Pos)
		}
		p.next()
		return []Node{NewDelim("(", ")", nodes)}, nil
	default:
		node, err := p.parsePrimary(nil)
		if err != nil {
			return nil, err
		}
		if node == nil {
			return nil, nil
		}
		return []Node{node}, nil
	}
}

// parsePrimary parses a single expression unit without attached scripts.
func (p *parser) parsePrimary(stops []stop) (Node, error) {
	tok := p.next()

	switch tok.Type {
	case TokenCommand:
		return p.parseCommand(tok, stops)

	case TokenAtom:
		return NewRun(tok.Value), nil

	case TokenLBrace:
		nodes, err := p.parseUntil([]stop{{typ: TokenRBrace}})
		if err != nil {
			return nil, err
		}
		if p.peek().Type != TokenRBrace {
			return nil, fmt.Errorf("unclosed group at position %d", tok.Pos)
		}
		p.next()
		if len(nodes) == 1 {
			return nodes[0], nil
		}
		return Group{Children: nodes}, nil

	case TokenLParen:
		nodes, err := p.parseUntil([]stop{{typ: TokenRParen}})
		if err != nil {
			return nil, err
		}
		if p.peek().Type != TokenRParen {
			return nil, fmt.Errorf("unclosed parenthesis at position %d", tok.Pos)
		}
		p.next()
		return NewDelim("(", ")", nodes), nil

	case TokenRBrace:
		return nil, fmt.Errorf("unexpected '}' at position %d", tok.Pos)
	case TokenRParen:
		return NewRun(")"), nil
	case TokenLBracket:
		return NewRun("["), nil
	case TokenRBracket:
		return NewRun("]"), nil
	case TokenPipe:
		return NewRun("|"), nil

	default:
		return nil, fmt.Errorf("unexpected token %v at position %d", tok.Type, tok.Pos)
	}
}

// parseCommand dispatches a backslash command.
func (p *parser) parseCommand(tok Token, stops []stop) (Node, error) {
	name := tok.Value

	if ch, ok := symbols[name]; ok {
		return NewRun(ch), nil
	}
	if sp, ok := spacing[name]; ok {
		if sp == "" {
			return nil, nil
		}
		r := NewRun(sp)
		r.Text.Space = "preserve"
		return r, nil
	}
	if chr, ok := accents[name]; ok {
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		return &Acc{
			Props: AccProps{Chr: NewVal("m:chr", chr)},
			Elem:  Elem{Children: arg},
		}, nil
	}
	if op, ok := naryOps[name]; ok {
		return p.parseNary(op, stops)
	}

	switch name {
	case "frac", "dfrac", "tfrac":
		num, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		den, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		return &Frac{Num: Num{Children: num}, Den: Den{Children: den}}, nil

	case "sqrt":
		var deg []Node
		if p.peek().Type == TokenLBracket {
			p.next()
			var err error
			deg, err = p.parseUntil([]stop{{typ: TokenRBracket}})
			if err != nil {
				return nil, err
			}
			if p.peek().Type != TokenRBracket {
				return nil, fmt.Errorf("unclosed radical degree at position %d", tok.Pos)
			}
			p.next()
		}
		base, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		return NewRad(deg, base), nil

	case "overline":
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		return &Bar{Props: BarProps{Pos: NewVal("m:pos", "top")}, Elem: Elem{Children: arg}}, nil

	case "underline":
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		return &Bar{Props: BarProps{Pos: NewVal("m:pos", "bot")}, Elem: Elem{Children: arg}}, nil

	case "text", "mathrm", "textrm", "operatorname":
		return p.parseTextArgument()

	case "left":
		return p.parseLeftRight(tok.Pos)

	case "begin":
		return p.parseEnvironment(tok.Pos)

	case "right":
		return nil, fmt.Errorf(`unexpected \right at position %d`, tok.Pos)
	case "end":
		return nil, fmt.Errorf(`unexpected \end at position %d`, tok.Pos)

	case "\\":
		// A row break outside an environment has nothing to separate.
		return nil, nil
	}

	if functions[name] {
		return p.parseFunction(name, stops)
	}

	// Unknown command: degrade to its literal source form.
	return NewRun(`\` + name), nil
}

// parseNary parses an n-ary operator with optional bounds in either
// order, then one argument as the operand.
func (p *parser) parseNary(op naryOp, stops []stop) (Node, error) {
	var sub, sup []Node
	for {
		tok := p.peek()
		if tok.Type == TokenUnderscore && sub == nil {
			p.next()
			arg, err := p.parseArgument()
			if err != nil {
				return nil, err
			}
			sub = arg
			continue
		}
		if tok.Type == TokenCaret && sup == nil {
			p.next()
			arg, err := p.parseArgument()
			if err != nil {
				return nil, err
			}
			sup = arg
			continue
		}
		break
	}

	n := &Nary{
		Sub: Sub{Children: sub},
		Sup: Sup{Children: sup},
	}
	// The OMML default operator is the integral sign.
	if op.chr != "∫" {
		n.Props.Chr = NewVal("m:chr", op.chr)
	}
	n.Props.LimLoc = NewVal("m:limLoc", op.limLoc)
	if sub == nil {
		n.Props.SubHide = NewVal("m:subHide", "1")
	}
	if sup == nil {
		n.Props.SupHide = NewVal("m:supHide", "1")
	}

	if tok := p.peek(); tok.Type != TokenEOF && !matchesAny(tok, stops) {
		base, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		n.Elem = Elem{Children: base}
	}
	return n, nil
}

// parseFunction parses a named function. \lim with a subscript becomes
// an under-limit construct; all others render via m:func.
func (p *parser) parseFunction(name string, stops []stop) (Node, error) {
	if name == "lim" && p.peek().Type == TokenUnderscore {
		p.next()
		limArg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		return &LimLow{
			Elem: Elem{Children: []Node{NewFunctionNameRun("lim")}},
			Lim:  Lim{Children: limArg},
		}, nil
	}

	fn := &Func{FName: FName{Children: []Node{NewFunctionNameRun(name)}}}
	if tok := p.peek(); tok.Type != TokenEOF && !matchesAny(tok, stops) {
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		fn.Elem = Elem{Children: arg}
	}
	return fn, nil
}

// parseTextArgument reads a braced group as literal text. Tokenization
// already discarded whitespace, so the runs are joined bare.
func (p *parser) parseTextArgument() (Node, error) {
	if p.peek().Type != TokenLBrace {
		tok := p.next()
		if tok.Type == TokenEOF {
			return nil, fmt.Errorf("missing text argument at position %d", tok.Pos)
		}
		return NewRun(tok.Value), nil
	}
	open := p.next()
	var text string
	for {
		tok := p.next()
		switch tok.Type {
		case TokenEOF:
			return nil, fmt.Errorf("unclosed text group at position %d", open.Pos)
		case TokenRBrace:
			return NewFunctionNameRun(text), nil
		default:
			text += tok.Value
		}
	}
}

// parseLeftRight parses \left<delim> ... \right<delim> into an auto-sized
// delimiter node.
func (p *parser) parseLeftRight(startPos int) (Node, error) {
	beg, err := p.parseDelimChar()
	if err != nil {
		return nil, err
	}

	inner, err := p.parseUntil([]stop{{typ: TokenCommand, value: "right"}})
	if err != nil {
		return nil, err
	}
	if p.peek().Type == TokenEOF {
		return nil, fmt.Errorf(`\left without \right at position %d`, startPos)
	}
	p.next() // consume \right

	end, err := p.parseDelimChar()
	if err != nil {
		return nil, err
	}
	return NewDelim(beg, end, inner), nil
}

// parseDelimChar reads the delimiter character after \left or \right.
// "." is the invisible delimiter.
func (p *parser) parseDelimChar() (string, error) {
	tok := p.next()
	switch tok.Type {
	case TokenEOF:
		return "", fmt.Errorf("missing delimiter at position %d", tok.Pos)
	case TokenLParen:
		return "(", nil
	case TokenRParen:
		return ")", nil
	case TokenLBracket:
		return "[", nil
	case TokenRBracket:
		return "]", nil
	case TokenPipe:
		return "|", nil
	case TokenLBrace:
		return "{", nil
	case TokenRBrace:
		return "}", nil
	case TokenCommand:
		if ch, ok := leftRightDelims[tok.Value]; ok {
			return ch, nil
		}
		return "", fmt.Errorf(`unsupported delimiter \%s at position %d`, tok.Value, tok.Pos)
	case TokenAtom:
		if tok.Value == "." {
			return "", nil
		}
		if len(tok.Value) == 1 {
			return tok.Value, nil
		}
	}
	return "", fmt.Errorf("unsupported delimiter %q at position %d", tok.Value, tok.Pos)
}

// parseEnvironment parses \begin{name} ... \end{name} for the matrix
// family. Cells split on '&', rows split on '\\'.
func (p *parser) parseEnvironment(startPos int) (Node, error) {
	name, err := p.parseEnvName()
	if err != nil {
		return nil, err
	}
	env, ok := matrixEnvs[name]
	if !ok {
		return nil, fmt.Errorf("unsupported environment %q at position %d", name, startPos)
	}

	cellStops := []stop{
		{typ: TokenAtom, value: "&"},
		{typ: TokenCommand, value: "\\"},
		{typ: TokenCommand, value: "end"},
	}

	var rows []MatrixRow
	row := MatrixRow{}
	for {
		cell, err := p.parseUntil(cellStops)
		if err != nil {
			return nil, err
		}
		row.Cells = append(row.Cells, Elem{Children: cell})

		tok := p.next()
		switch {
		case tok.Type == TokenEOF:
			return nil, fmt.Errorf("unterminated environment %q at position %d", name, startPos)
		case tok.Type == TokenAtom && tok.Value == "&":
			continue
		case tok.Type == TokenCommand && tok.Value == "\\":
			rows = append(rows, row)
			row = MatrixRow{}
		case tok.Type == TokenCommand && tok.Value == "end":
			endName, err := p.parseEnvName()
			if err != nil {
				return nil, err
			}
			if endName != name {
				return nil, fmt.Errorf(`\begin{%s} closed by \end{%s}`, name, endName)
			}
			if !rowEmpty(row) || len(rows) == 0 {
				rows = append(rows, row)
			}
			m := &Matrix{Rows: rows}
			if env.beg == "" && env.end == "" {
				return m, nil
			}
			return NewDelim(env.beg, env.end, []Node{m}), nil
		}
	}
}

// parseEnvName reads the {name} group after \begin or \end.
func (p *parser) parseEnvName() (string, error) {
	if tok := p.next(); tok.Type != TokenLBrace {
		return "", fmt.Errorf("expected '{' after environment command at position %d", tok.Pos)
	}
	nameTok := p.next()
	if nameTok.Type != TokenAtom {
		return "", fmt.Errorf("expected environment name at position %d", nameTok.Pos)
	}
	if tok := p.next(); tok.Type != TokenRBrace {
		return "", fmt.Errorf("expected '}' after environment name at position %d", tok.Pos)
	}
	return nameTok.Value, nil
}

// rowEmpty reports whether every cell in the row is empty, as happens
// after a trailing row separator.
func rowEmpty(row MatrixRow) bool {
	for _, c := range row.Cells {
		if len(c.Children) > 0 {
			return false
		}
	}
	return true
}
