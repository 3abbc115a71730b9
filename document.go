package gql

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"
)

var ErrInvalidDocument = errors.New("invalid graphql document")

// Document is a GraphQL operation tagged with the Go types of its result and
// variables. The type parameters exist only for the compiler; at runtime a
// Document is its query text.
type Document[TResult any, TVariables any] struct {
	query string
}

// NoVariables is the variables type for operations that take none. Pass nil.
type NoVariables map[string]any

func NewDocument[TResult any, TVariables any](query string) Document[TResult, TVariables] {
	return Document[TResult, TVariables]{query: query}
}

// ParseDocument is NewDocument plus a syntax check that the text defines
// exactly one operation.
func ParseDocument[TResult any, TVariables any](query string) (Document[TResult, TVariables], error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: query})
	if err != nil {
		return Document[TResult, TVariables]{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if n := len(doc.Operations); n != 1 {
		return Document[TResult, TVariables]{}, fmt.Errorf("%w: expected exactly one operation, found %d", ErrInvalidDocument, n)
	}
	return Document[TResult, TVariables]{query: query}, nil
}

// MustParseDocument is like ParseDocument but panics on error. Intended for
// package-level document variables.
func MustParseDocument[TResult any, TVariables any](query string) Document[TResult, TVariables] {
	d, err := ParseDocument[TResult, TVariables](query)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Document[TResult, TVariables]) String() string {
	return d.query
}

func (d Document[TResult, TVariables]) OperationInfo() OperationInfo {
	return GetOperationInfo(d.query)
}

// NormalizeQuery returns the query text of document, which may be a string,
// a []byte, a parsed *ast.QueryDocument or any fmt.Stringer (every Document is
// one). Other shapes are a programming error and yield ErrInvalidDocument.
func NormalizeQuery(document any) (string, error) {
	switch d := document.(type) {
	case string:
		return d, nil
	case []byte:
		return string(d), nil
	case *ast.QueryDocument:
		if d == nil {
			break
		}
		var buf bytes.Buffer
		formatter.NewFormatter(&buf).FormatQueryDocument(d)
		return buf.String(), nil
	case fmt.Stringer:
		return d.String(), nil
	}
	return "", fmt.Errorf("%w: unsupported document type %T", ErrInvalidDocument, document)
}
