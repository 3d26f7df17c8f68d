/*
 * Lumen - The protocol-oriented programming language
 *
 * Copyright Lumen Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-lang/lumen/ast"
	"github.com/lumen-lang/lumen/common"
	"github.com/lumen-lang/lumen/test_utils/common_utils"
)

func testEnclosingScope() *LexicalScope {
	scope := NewLexicalScope(nil)
	scope.Declare(&Variable{
		Identifier:      "expected",
		DeclarationKind: common.DeclarationKindConstant,
		Type:            IntType,
	})
	scope.Declare(&Variable{
		Identifier:      "threshold",
		DeclarationKind: common.DeclarationKindVariable,
		Type:            IntType,
	})
	scope.Declare(&Variable{
		Identifier:      "name",
		DeclarationKind: common.DeclarationKindConstant,
		Type:            StringType,
	})
	scope.Declare(&Variable{
		Identifier:      SelfIdentifier,
		DeclarationKind: common.DeclarationKindSelf,
		Type:            AnyStructType,
	})
	return scope
}

func identifierExpression(name string, pos ast.Position) *ast.IdentifierExpression {
	return ast.NewIdentifierExpression(
		nil,
		ast.NewIdentifier(nil, name, pos),
	)
}

func captureItem(name string, initializer ast.Expression, pos ast.Position) *ast.CaptureItem {
	return ast.NewCaptureItem(
		nil,
		nil,
		ast.VariableKindNotSpecified,
		false,
		ast.NewIdentifier(nil, name, pos),
		initializer,
		pos,
	)
}

func varCaptureItem(name string, initializer ast.Expression, pos ast.Position) *ast.CaptureItem {
	return ast.NewCaptureItem(
		nil,
		nil,
		ast.VariableKindVariable,
		false,
		ast.NewIdentifier(nil, name, pos),
		initializer,
		pos,
	)
}

func statementsBody(statements ...ast.Statement) *ast.StatementsBody {
	return ast.NewStatementsBody(
		nil,
		ast.NewBlock(
			nil,
			statements,
			ast.EmptyRange,
		),
	)
}

func closureLiteral(
	captureList []*ast.CaptureItem,
	parameterList *ast.ParameterList,
	body ast.ClosureBody,
) *ast.ClosureLiteralExpression {
	return ast.NewClosureLiteralExpression(
		nil,
		captureList,
		parameterList,
		nil,
		body,
		ast.EmptyRange,
	)
}

func TestCaptureCollectorExplicitOrder(t *testing.T) {

	t.Parallel()

	// { [a = expected, var b = threshold, name] in ... }

	literal := closureLiteral(
		[]*ast.CaptureItem{
			captureItem(
				"a",
				identifierExpression("expected", ast.Position{Offset: 3, Line: 1, Column: 3}),
				ast.Position{Offset: 3, Line: 1, Column: 3},
			),
			varCaptureItem(
				"b",
				identifierExpression("threshold", ast.Position{Offset: 16, Line: 1, Column: 16}),
				ast.Position{Offset: 12, Line: 1, Column: 12},
			),
			captureItem(
				"name",
				nil,
				ast.Position{Offset: 27, Line: 1, Column: 27},
			),
		},
		nil,
		nil,
	)

	collector := NewCaptureCollector(nil, testEnclosingScope())
	captures, err := collector.Collect(literal)
	require.NoError(t, err)

	require.Len(t, captures, 3)

	a := captures[0]
	assert.Equal(t, "a", a.Name)
	assert.Equal(t, "a", a.FieldName)
	assert.Equal(t, IntType, a.DeclaredType)
	assert.Equal(t, ast.VariableKindConstant, a.VariableKind)
	assert.Equal(t, CaptureSourceKindExplicit, a.SourceKind)
	assert.False(t, a.IsMutable())

	b := captures[1]
	assert.Equal(t, "b", b.Name)
	assert.Equal(t, ast.VariableKindVariable, b.VariableKind)
	assert.True(t, b.IsMutable())

	// the shorthand `name` is sugar for `name = name`
	name := captures[2]
	assert.Equal(t, "name", name.Name)
	assert.Equal(t, StringType, name.DeclaredType)
	require.IsType(t, &ast.IdentifierExpression{}, name.InitializerExpression)
	assert.Equal(t,
		"name",
		name.InitializerExpression.(*ast.IdentifierExpression).Identifier.Identifier,
	)
}

func TestCaptureCollectorImplicitFirstUseOrder(t *testing.T) {

	t.Parallel()

	// { x in x > threshold && expected > threshold }

	literal := closureLiteral(
		nil,
		ast.NewParameterList(
			nil,
			[]*ast.Parameter{
				ast.NewParameter(
					nil,
					"",
					ast.NewIdentifier(nil, "x", ast.Position{Offset: 2, Line: 1, Column: 2}),
					nil,
					ast.Position{Offset: 2, Line: 1, Column: 2},
				),
			},
			ast.EmptyRange,
		),
		statementsBody(
			ast.NewExpressionStatement(
				nil,
				ast.NewBinaryExpression(
					nil,
					ast.OperationAnd,
					ast.NewBinaryExpression(
						nil,
						ast.OperationGreater,
						identifierExpression("x", ast.Position{Offset: 7, Line: 1, Column: 7}),
						identifierExpression("threshold", ast.Position{Offset: 11, Line: 1, Column: 11}),
					),
					ast.NewBinaryExpression(
						nil,
						ast.OperationGreater,
						identifierExpression("expected", ast.Position{Offset: 24, Line: 1, Column: 24}),
						identifierExpression("threshold", ast.Position{Offset: 35, Line: 1, Column: 35}),
					),
				),
			),
		),
	)

	collector := NewCaptureCollector(nil, testEnclosingScope())
	captures, err := collector.Collect(literal)
	require.NoError(t, err)

	require.Len(t, captures, 2)

	// `x` is a parameter, not a capture.
	// `threshold` is used first, and only captured once.

	assert.Equal(t, "threshold", captures[0].Name)
	assert.Equal(t, CaptureSourceKindImplicit, captures[0].SourceKind)
	// implicit captures are constants, whatever the variable was
	assert.Equal(t, ast.VariableKindConstant, captures[0].VariableKind)

	assert.Equal(t, "expected", captures[1].Name)
}

func TestCaptureCollectorExplicitBeforeImplicit(t *testing.T) {

	t.Parallel()

	// { [limit = threshold] in expected > limit }

	literal := closureLiteral(
		[]*ast.CaptureItem{
			captureItem(
				"limit",
				identifierExpression("threshold", ast.Position{Offset: 11, Line: 1, Column: 11}),
				ast.Position{Offset: 3, Line: 1, Column: 3},
			),
		},
		nil,
		statementsBody(
			ast.NewExpressionStatement(
				nil,
				ast.NewBinaryExpression(
					nil,
					ast.OperationGreater,
					identifierExpression("expected", ast.Position{Offset: 25, Line: 1, Column: 25}),
					identifierExpression("limit", ast.Position{Offset: 36, Line: 1, Column: 36}),
				),
			),
		),
	)

	collector := NewCaptureCollector(nil, testEnclosingScope())
	captures, err := collector.Collect(literal)
	require.NoError(t, err)

	require.Len(t, captures, 2)

	// explicit items precede the body's free variables,
	// and `limit` is bound by the capture list, not captured twice

	assert.Equal(t, "limit", captures[0].Name)
	assert.Equal(t, CaptureSourceKindExplicit, captures[0].SourceKind)
	assert.Equal(t, IntType, captures[0].DeclaredType)

	assert.Equal(t, "expected", captures[1].Name)
	assert.Equal(t, CaptureSourceKindImplicit, captures[1].SourceKind)
}

func TestCaptureCollectorByReference(t *testing.T) {

	t.Parallel()

	item := ast.NewCaptureItem(
		nil,
		nil,
		ast.VariableKindNotSpecified,
		true,
		ast.NewIdentifier(nil, "expected", ast.Position{Offset: 4, Line: 1, Column: 4}),
		nil,
		ast.Position{Offset: 3, Line: 1, Column: 3},
	)

	literal := closureLiteral(
		[]*ast.CaptureItem{item},
		nil,
		nil,
	)

	collector := NewCaptureCollector(nil, testEnclosingScope())
	_, err := collector.Collect(literal)

	common_utils.RequireError(t, err)

	var byReferenceErr *CaptureByReferenceError
	require.ErrorAs(t, err, &byReferenceErr)
	assert.Equal(t, "expected", byReferenceErr.Name)
}

func TestCaptureCollectorNameCollision(t *testing.T) {

	t.Parallel()

	literal := closureLiteral(
		[]*ast.CaptureItem{
			captureItem(
				"expected",
				nil,
				ast.Position{Offset: 3, Line: 1, Column: 3},
			),
			captureItem(
				"expected",
				identifierExpression("threshold", ast.Position{Offset: 24, Line: 1, Column: 24}),
				ast.Position{Offset: 13, Line: 1, Column: 13},
			),
		},
		nil,
		nil,
	)

	collector := NewCaptureCollector(nil, testEnclosingScope())
	_, err := collector.Collect(literal)

	common_utils.RequireError(t, err)

	var collisionErr *CaptureNameCollisionError
	require.ErrorAs(t, err, &collisionErr)
	assert.Equal(t, "expected", collisionErr.Name)

	notes := collisionErr.ErrorNotes()
	require.Len(t, notes, 1)
	assert.Equal(t, "previously captured here", notes[0].Message())
}

func TestCaptureCollectorUnknownReference(t *testing.T) {

	t.Parallel()

	t.Run("implicit", func(t *testing.T) {

		t.Parallel()

		literal := closureLiteral(
			nil,
			nil,
			statementsBody(
				ast.NewExpressionStatement(
					nil,
					identifierExpression("expectd", ast.Position{Offset: 5, Line: 1, Column: 5}),
				),
			),
		)

		collector := NewCaptureCollector(nil, testEnclosingScope())
		_, err := collector.Collect(literal)

		common_utils.RequireError(t, err)

		var unknownErr *UnknownCaptureReferenceError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "expectd", unknownErr.Name)
		assert.Equal(t, "did you mean `expected`?", unknownErr.SecondaryError())
	})

	t.Run("explicit initializer", func(t *testing.T) {

		t.Parallel()

		literal := closureLiteral(
			[]*ast.CaptureItem{
				captureItem(
					"a",
					identifierExpression("nonexistent", ast.Position{Offset: 7, Line: 1, Column: 7}),
					ast.Position{Offset: 3, Line: 1, Column: 3},
				),
			},
			nil,
			nil,
		)

		collector := NewCaptureCollector(nil, testEnclosingScope())
		_, err := collector.Collect(literal)

		common_utils.RequireError(t, err)

		var unknownErr *UnknownCaptureReferenceError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "nonexistent", unknownErr.Name)
		// nothing in scope is close enough to suggest
		assert.Equal(t, "not declared in the enclosing scope", unknownErr.SecondaryError())
	})
}

func TestCaptureCollectorOuterSelfEscape(t *testing.T) {

	t.Parallel()

	literal := closureLiteral(
		nil,
		nil,
		statementsBody(
			ast.NewExpressionStatement(
				nil,
				identifierExpression(SelfIdentifier, ast.Position{Offset: 5, Line: 1, Column: 5}),
			),
		),
	)

	collector := NewCaptureCollector(nil, testEnclosingScope())
	captures, err := collector.Collect(literal)
	require.NoError(t, err)

	require.Len(t, captures, 1)
	assert.Equal(t, SelfIdentifier, captures[0].Name)
	assert.Equal(t, OuterSelfFieldName, captures[0].FieldName)
}

func TestCaptureCollectorLiteralInitializerTypes(t *testing.T) {

	t.Parallel()

	literal := closureLiteral(
		[]*ast.CaptureItem{
			captureItem(
				"flag",
				&ast.BoolExpression{Value: true},
				ast.Position{Offset: 3, Line: 1, Column: 3},
			),
			captureItem(
				"greater",
				ast.NewBinaryExpression(
					nil,
					ast.OperationGreater,
					identifierExpression("expected", ast.Position{Offset: 20, Line: 1, Column: 20}),
					identifierExpression("threshold", ast.Position{Offset: 31, Line: 1, Column: 31}),
				),
				ast.Position{Offset: 10, Line: 1, Column: 10},
			),
			captureItem(
				"maybe",
				ast.NewNilExpression(nil, ast.Position{Offset: 50, Line: 1, Column: 50}),
				ast.Position{Offset: 42, Line: 1, Column: 42},
			),
		},
		nil,
		nil,
	)

	collector := NewCaptureCollector(nil, testEnclosingScope())
	captures, err := collector.Collect(literal)
	require.NoError(t, err)

	require.Len(t, captures, 3)
	assert.Equal(t, BoolType, captures[0].DeclaredType)
	// comparisons produce Bool
	assert.Equal(t, BoolType, captures[1].DeclaredType)
	// nil stays untyped until the checker runs
	assert.Equal(t, AnyStructType, captures[2].DeclaredType)
	assert.IsType(t, &ast.NilExpression{}, captures[2].InitializerExpression)
}
