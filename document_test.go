package gql

import (
	"testing"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

func (suite *Tests) TestNormalizeQuery_shapesAgree() {
	queries := []string{
		`query Viewer { viewer { login } }`,
		`mutation AddReview($input: AddProductReviewInput!) { catalog { addProductReview(input: $input) { errors { message } } } }`,
		"{ site { settings { storeName } } }",
	}
	for _, q := range queries {
		fromString, err := NormalizeQuery(q)
		assert.NoError(err)

		fromBytes, err := NormalizeQuery([]byte(q))
		assert.NoError(err)

		fromDocument, err := NormalizeQuery(NewDocument[viewerResult, NoVariables](q))
		assert.NoError(err)

		assert.Equal(q, fromString)
		assert.Equal(fromString, fromBytes)
		assert.Equal(fromString, fromDocument)
	}
}

func (suite *Tests) TestNormalizeQuery_parsedDocument() {
	doc, err := parser.ParseQuery(&ast.Source{Input: `query Viewer { viewer { login } }`})
	assert.NoError(err)

	got, err := NormalizeQuery(doc)
	assert.NoError(err)
	assert.Contains(got, "query Viewer")
	assert.Contains(got, "login")
	assert.Equal(OperationInfo{Type: ast.Query, Name: "Viewer"}, GetOperationInfo(got))
}

func (suite *Tests) TestNormalizeQuery_unsupported() {
	for _, v := range []any{nil, 42, struct{}{}, (*ast.QueryDocument)(nil)} {
		_, err := NormalizeQuery(v)
		assert.ErrorIs(err, ErrInvalidDocument)
	}
}

func (suite *Tests) TestParseDocument() {
	suite.T().Run("single operation", func(t *testing.T) {
		doc, err := ParseDocument[viewerResult, NoVariables](`query Viewer { viewer { login } }`)
		assert.NoError(err)
		assert.Equal("Viewer", doc.OperationInfo().Name)
	})

	suite.T().Run("two operations", func(t *testing.T) {
		_, err := ParseDocument[viewerResult, NoVariables](`query A { a } query B { b }`)
		assert.ErrorIs(err, ErrInvalidDocument)
		assert.Contains(err.Error(), "found 2")
	})

	suite.T().Run("fragments only", func(t *testing.T) {
		_, err := ParseDocument[viewerResult, NoVariables](`fragment F on User { login }`)
		assert.ErrorIs(err, ErrInvalidDocument)
	})

	suite.T().Run("syntax error", func(t *testing.T) {
		_, err := ParseDocument[viewerResult, NoVariables](`query {`)
		assert.ErrorIs(err, ErrInvalidDocument)
	})

	suite.T().Run("must parse panics", func(t *testing.T) {
		assert.Panics(func() { MustParseDocument[viewerResult, NoVariables](`not graphql`) })
		assert.NotPanics(func() { MustParseDocument[viewerResult, NoVariables](`{ viewer { login } }`) })
	})
}
