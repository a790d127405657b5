// Package parser turns a typed command line into a domain.SyntaxNode tree.
//
// Grammar:
//
//	line    = [prefix] command
//	command = { word | quoted | "(" [prefix] command ")" }
//	quoted  = '"' { char | '\"' | '\\' } '"'
//
// Problems never abort parsing; they are reported as domain.SyntaxError
// nodes at the place they occur, so the translator can reject the tree
// before anything runs.
package parser

import (
	"strings"
	"unicode"

	"github.com/aretw0/botcmd/pkg/domain"
)

// DefaultPrefix is the character that introduces a command in chat.
const DefaultPrefix = '!'

// Parser is the default command line parser.
type Parser struct {
	prefix rune
}

// Option configures the Parser.
type Option func(*Parser)

// WithPrefix sets the optional command prefix. A zero rune disables it.
func WithPrefix(prefix rune) Option {
	return func(p *Parser) {
		p.prefix = prefix
	}
}

// New creates a parser with the default prefix.
func New(opts ...Option) *Parser {
	p := &Parser{prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses one command line.
func (p *Parser) Parse(text string) domain.SyntaxNode {
	s := &scanner{input: []rune(text), prefix: p.prefix}
	s.skipSpace()
	s.skipPrefix()
	cmd := s.command(false)
	s.skipSpace()
	for !s.done() {
		// Only a stray ')' can stop a top-level command early.
		cmd.Children = append(cmd.Children, domain.SyntaxError{Message: "unexpected ')'", Position: s.pos})
		s.pos++
		rest := s.command(false)
		cmd.Children = append(cmd.Children, rest.Children...)
		s.skipSpace()
	}
	return cmd
}

// HasPrefix reports whether text starts with the command prefix.
func (p *Parser) HasPrefix(text string) bool {
	if p.prefix == 0 {
		return true
	}
	return strings.HasPrefix(strings.TrimLeftFunc(text, unicode.IsSpace), string(p.prefix))
}

type scanner struct {
	input  []rune
	pos    int
	prefix rune
}

func (s *scanner) done() bool { return s.pos >= len(s.input) }

func (s *scanner) peek() rune { return s.input[s.pos] }

func (s *scanner) skipSpace() {
	for !s.done() && unicode.IsSpace(s.peek()) {
		s.pos++
	}
}

func (s *scanner) skipPrefix() {
	if s.prefix != 0 && !s.done() && s.peek() == s.prefix {
		s.pos++
	}
}

// command reads children until the end of input, or until the closing ')'
// when nested.
func (s *scanner) command(nested bool) domain.SyntaxCommand {
	cmd := domain.SyntaxCommand{Children: []domain.SyntaxNode{}}
	start := s.pos
	for {
		s.skipSpace()
		if s.done() {
			if nested {
				cmd.Children = append(cmd.Children, domain.SyntaxError{Message: "missing ')'", Position: start})
			}
			return cmd
		}
		switch s.peek() {
		case ')':
			if nested {
				s.pos++
			}
			return cmd
		case '(':
			s.pos++
			s.skipSpace()
			s.skipPrefix()
			cmd.Children = append(cmd.Children, s.command(true))
		case '"':
			cmd.Children = append(cmd.Children, s.quoted())
		default:
			cmd.Children = append(cmd.Children, s.word())
		}
	}
}

func (s *scanner) quoted() domain.SyntaxNode {
	start := s.pos
	s.pos++ // opening quote
	var b strings.Builder
	for !s.done() {
		r := s.peek()
		s.pos++
		switch r {
		case '"':
			return domain.SyntaxValue{Value: b.String()}
		case '\\':
			if s.done() {
				return domain.SyntaxError{Message: "unterminated escape sequence", Position: s.pos - 1}
			}
			b.WriteRune(s.peek())
			s.pos++
		default:
			b.WriteRune(r)
		}
	}
	return domain.SyntaxError{Message: "unterminated quote", Position: start}
}

func (s *scanner) word() domain.SyntaxNode {
	start := s.pos
	for !s.done() {
		r := s.peek()
		if unicode.IsSpace(r) || r == '(' || r == ')' {
			break
		}
		s.pos++
	}
	return domain.SyntaxValue{Value: string(s.input[start:s.pos])}
}
