package dsl

import (
	"fmt"
	"strings"

	"github.com/statec-xyz/go-statec/machine"
)

// Parser parses machine definition text into an AST.
type Parser struct {
	input string
	lexer *Lexer
	cur   Token
	peek  Token
}

// NewParser creates a new parser for the given input.
func NewParser(input string) *Parser {
	p := &Parser{input: input, lexer: NewLexer(input)}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) syntaxError(format string, args ...any) error {
	return &machine.Error{
		Kind:   machine.ErrSyntax,
		Pos:    p.cur.Pos,
		Detail: fmt.Sprintf(format, args...) + fmt.Sprintf(" at offset %d", p.cur.Pos),
	}
}

func (p *Parser) expect(t TokenType) error {
	if p.cur.Type != t {
		return p.syntaxError("expected %v, got %v", t, p.cur.Type)
	}
	return nil
}

func (p *Parser) expectIdent() (string, error) {
	if p.cur.Type != TokenIdent {
		return "", p.syntaxError("expected identifier, got %v", p.cur.Type)
	}
	lit := p.cur.Literal
	p.nextToken()
	return lit, nil
}

// Parse parses a machine definition and returns its AST.
func Parse(input string) (*MachineNode, error) {
	p := NewParser(input)
	return p.parseMachine()
}

// parseMachine consumes the optional metadata entries (name, derive_states,
// derive_events) and the required transitions block.
func (p *Parser) parseMachine() (*MachineNode, error) {
	node := &MachineNode{}

	for {
		if p.cur.Type == TokenEOF {
			return nil, p.syntaxError("expected 'transitions' block")
		}
		if err := p.expect(TokenIdent); err != nil {
			return nil, err
		}
		keyword := p.cur.Literal
		p.nextToken()

		switch keyword {
		case "name":
			if err := p.consume(TokenColon); err != nil {
				return nil, err
			}
			name, err := p.expectIdent()
			if err != nil {
				return nil, fmt.Errorf("name: %w", err)
			}
			node.Name = name
			p.optionalComma()

		case "derive_states":
			list, err := p.parseDeriveList()
			if err != nil {
				return nil, fmt.Errorf("derive_states: %w", err)
			}
			node.DeriveStates = list
			p.optionalComma()

		case "derive_events":
			list, err := p.parseDeriveList()
			if err != nil {
				return nil, fmt.Errorf("derive_events: %w", err)
			}
			node.DeriveEvents = list
			p.optionalComma()

		case "transitions":
			clauses, err := p.parseTransitions()
			if err != nil {
				return nil, err
			}
			node.Clauses = clauses
			if p.cur.Type != TokenEOF {
				return nil, p.syntaxError("unexpected input after transitions block")
			}
			return node, nil

		default:
			return nil, p.syntaxError("expected 'name', 'derive_states', 'derive_events', or 'transitions', got %q", keyword)
		}
	}
}

func (p *Parser) consume(t TokenType) error {
	if err := p.expect(t); err != nil {
		return err
	}
	p.nextToken()
	return nil
}

func (p *Parser) optionalComma() {
	if p.cur.Type == TokenComma {
		p.nextToken()
	}
}

// parseDeriveList parses ": [Ident, Ident, ...]" with an optional trailing
// comma. An empty list is permitted and distinct from an omitted one.
func (p *Parser) parseDeriveList() ([]string, error) {
	if err := p.consume(TokenColon); err != nil {
		return nil, err
	}
	if err := p.consume(TokenLBracket); err != nil {
		return nil, err
	}
	list := []string{}
	for p.cur.Type == TokenIdent {
		list = append(list, p.cur.Literal)
		p.nextToken()
		if p.cur.Type != TokenComma {
			break
		}
		p.nextToken()
	}
	if err := p.consume(TokenRBracket); err != nil {
		return nil, err
	}
	return list, nil
}

// parseTransitions parses "{ clause, clause, ... }" with an optional
// trailing comma. An empty block is a compilation failure.
func (p *Parser) parseTransitions() ([]*ClauseNode, error) {
	if err := p.consume(TokenLBrace); err != nil {
		return nil, err
	}
	if p.cur.Type == TokenRBrace {
		return nil, &machine.Error{
			Kind:   machine.ErrSyntax,
			Pos:    p.cur.Pos,
			Detail: "transitions block is empty",
		}
	}

	var clauses []*ClauseNode
	for {
		clause, err := p.parseClause()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)

		if p.cur.Type == TokenComma {
			p.nextToken()
			if p.cur.Type == TokenRBrace {
				break
			}
			continue
		}
		break
	}
	if err := p.consume(TokenRBrace); err != nil {
		return nil, err
	}
	return clauses, nil
}

// parseClause parses one transition clause:
//
//	"*"? (ident ("|" ident)* | "_") "+" ident ("|" ident)* "=" (ident | "_")
func (p *Parser) parseClause() (*ClauseNode, error) {
	clause := &ClauseNode{Pos: p.cur.Pos}

	if p.cur.Type == TokenStar {
		clause.Initial = true
		p.nextToken()
	}

	switch p.cur.Type {
	case TokenUnderscore:
		clause.Wildcard = true
		p.nextToken()
		if clause.Initial {
			clause.Text = p.clauseText(clause.Pos)
			return nil, &machine.Error{
				Kind:   machine.ErrInitialState,
				Clause: clause.Text,
				Pos:    clause.Pos,
				Detail: "the wildcard source cannot be marked initial",
			}
		}
	case TokenIdent:
		for {
			state, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			clause.States = append(clause.States, state)
			if p.cur.Type != TokenPipe {
				break
			}
			p.nextToken()
			if p.cur.Type == TokenStar {
				return nil, p.syntaxError("'*' may only prefix the whole state pattern")
			}
		}
	default:
		return nil, p.syntaxError("expected state pattern, got %v", p.cur.Type)
	}

	if err := p.consume(TokenPlus); err != nil {
		return nil, err
	}

	for {
		event, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		clause.Events = append(clause.Events, event)
		if p.cur.Type != TokenPipe {
			break
		}
		p.nextToken()
	}

	if err := p.consume(TokenEq); err != nil {
		return nil, err
	}

	switch p.cur.Type {
	case TokenUnderscore:
		clause.Internal = true
		p.nextToken()
	case TokenIdent:
		clause.Target = p.cur.Literal
		p.nextToken()
	default:
		return nil, p.syntaxError("expected target state or '_', got %v", p.cur.Type)
	}

	clause.Text = p.clauseText(clause.Pos)
	return clause, nil
}

// clauseText slices the source text of the clause starting at start and
// ending before the current token.
func (p *Parser) clauseText(start int) string {
	end := p.cur.Pos
	if end > len(p.input) {
		end = len(p.input)
	}
	if start > end {
		return ""
	}
	return strings.TrimSpace(p.input[start:end])
}
