package gql

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/lexer"
)

type OperationInfo struct {
	Type ast.Operation
	Name string
}

// GetOperationInfo scans query for its operation keyword and name. It is a
// lexical best effort for log lines: it never fails, and anything it cannot
// make sense of comes back as empty fields. A shorthand `{ ... }` document is
// reported as an anonymous query.
func GetOperationInfo(query string) (info OperationInfo) {
	defer func() {
		if recover() != nil {
			info = OperationInfo{}
		}
	}()

	lex := lexer.New(&ast.Source{Input: query})
	depth := 0
	skipBlock := false

	for {
		tok, err := lex.ReadToken()
		if err != nil || tok.Kind == lexer.EOF {
			return info
		}

		switch tok.Kind {
		case lexer.BraceL:
			if depth == 0 && !skipBlock {
				info.Type = ast.Query
				return info
			}
			skipBlock = false
			depth++
		case lexer.BraceR:
			if depth > 0 {
				depth--
			}
		case lexer.Name:
			// Inside a fragment header every name, including one spelled
			// like a keyword, belongs to the fragment.
			if depth > 0 || skipBlock {
				continue
			}
			switch op := ast.Operation(tok.Value); op {
			case ast.Query, ast.Mutation, ast.Subscription:
				info.Type = op
				info.Name = readOperationName(&lex)
				return info
			case "fragment":
				skipBlock = true
			}
		}
	}
}

// readOperationName returns the Name token directly after an operation
// keyword, or "" when the operation is anonymous.
func readOperationName(lex *lexer.Lexer) string {
	for {
		tok, err := lex.ReadToken()
		if err != nil {
			return ""
		}
		switch tok.Kind {
		case lexer.Name:
			return tok.Value
		case lexer.EOF, lexer.ParenL, lexer.BraceL, lexer.At:
			return ""
		}
	}
}
