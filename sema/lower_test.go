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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lumen-lang/lumen/ast"
	"github.com/lumen-lang/lumen/common"
	"github.com/lumen-lang/lumen/test_utils/common_utils"
)

func predicateProtocol() *ProtocolType {
	return NewProtocolType(
		common_utils.TestLocation,
		"Predicate",
		[]*Requirement{
			NewRequirement(
				nil,
				"evaluate",
				RequirementKindMethod,
				&FunctionType{
					Parameters: []Parameter{
						{
							Label:          "_",
							Identifier:     "value",
							TypeAnnotation: IntTypeAnnotation,
						},
					},
					ReturnTypeAnnotation: BoolTypeAnnotation,
				},
				false,
				false,
			),
		},
	)
}

// predicateLiteral builds `{ [expected] x in x == expected }`
func predicateLiteral() *ast.ClosureLiteralExpression {
	return closureLiteral(
		[]*ast.CaptureItem{
			captureItem("expected", nil, ast.Position{Offset: 3, Line: 1, Column: 3}),
		},
		ast.NewParameterList(
			nil,
			[]*ast.Parameter{
				ast.NewParameter(
					nil,
					"",
					ast.NewIdentifier(nil, "x", ast.Position{Offset: 14, Line: 1, Column: 14}),
					nil,
					ast.Position{Offset: 14, Line: 1, Column: 14},
				),
			},
			ast.EmptyRange,
		),
		statementsBody(
			ast.NewExpressionStatement(
				nil,
				ast.NewBinaryExpression(
					nil,
					ast.OperationEqual,
					identifierExpression("x", ast.Position{Offset: 19, Line: 1, Column: 19}),
					identifierExpression("expected", ast.Position{Offset: 24, Line: 1, Column: 24}),
				),
			),
		),
	)
}

func newTestLowerer() *Lowerer {
	return NewLowerer(
		WithLocation(common_utils.TestLocation),
	)
}

func TestLowerSingleRequirementPredicate(t *testing.T) {

	t.Parallel()

	lowerer := newTestLowerer()
	literal := predicateLiteral()

	result, err := lowerer.LowerClosureLiteral(
		literal,
		TargetContext{
			Protocols:      []*ProtocolType{predicateProtocol()},
			EnclosingScope: testEnclosingScope(),
		},
	)
	require.NoError(t, err)

	assert.Equal(t, LoweringPathSingleRequirement, result.Resolution.Path)

	structType := result.StructType
	require.NotNil(t, structType)
	assert.Equal(t, "$AnonStruct1", structType.Identifier)
	assert.Equal(t, common_utils.TestLocation, structType.Location)
	assert.True(t, structType.ConformsTo(predicateProtocol()))

	declaration := result.Declaration
	require.NotNil(t, declaration)
	assert.True(t, declaration.IsSynthesized)
	assert.Equal(t, common.CompositeKindStructure, declaration.CompositeKind)
	assert.Equal(t, "$AnonStruct1", declaration.Identifier.Identifier)

	require.Len(t, declaration.Conformances, 1)
	assert.Equal(t, "Predicate", declaration.Conformances[0].Identifier.Identifier)

	// one stored field per capture, private
	fields := declaration.Members.Fields()
	require.Len(t, fields, 1)
	assert.Equal(t, "expected", fields[0].Identifier.Identifier)
	assert.Equal(t, ast.AccessPrivate, fields[0].Access)
	assert.Equal(t, "Int", fields[0].TypeAnnotation.Type.String())

	// the initializer takes one value per field
	initializers := declaration.Members.Initializers()
	require.Len(t, initializers, 1)
	initializer := initializers[0].FunctionDeclaration
	require.Len(t, initializer.ParameterList.Parameters, 1)
	assert.Equal(t,
		"expected",
		initializer.ParameterList.Parameters[0].Identifier.Identifier,
	)

	// the literal's parameters and body become the witness
	functions := declaration.Members.Functions()
	require.Len(t, functions, 1)
	witness := functions[0]
	assert.Equal(t, "evaluate", witness.Identifier.Identifier)
	assert.Equal(t, ast.AccessPublic, witness.Access)
	assert.False(t, witness.IsStatic)
	assert.False(t, witness.IsMutating)
	assert.Same(t, literal.ParameterList, witness.ParameterList)

	// the replacement constructs the synthesized type,
	// passing each capture's initializer as a labeled argument
	replacement := result.Replacement
	require.NotNil(t, replacement)

	invoked, ok := replacement.InvokedExpression.(*ast.IdentifierExpression)
	require.True(t, ok)
	assert.Equal(t, "$AnonStruct1", invoked.Identifier.Identifier)

	require.Len(t, replacement.Arguments, 1)
	argument := replacement.Arguments[0]
	assert.Equal(t, "expected", argument.Label)
	argumentValue, ok := argument.Expression.(*ast.IdentifierExpression)
	require.True(t, ok)
	assert.Equal(t, "expected", argumentValue.Identifier.Identifier)

	// the elaboration records the result under the literal
	elaboration := lowerer.Elaboration()
	assert.Same(t, structType, elaboration.ClosureLiteralStructType(literal))
	assert.Same(t, replacement, elaboration.ClosureLiteralReplacement(literal))
	resolution, ok := elaboration.ClosureLiteralResolution(literal)
	require.True(t, ok)
	assert.Equal(t, LoweringPathSingleRequirement, resolution.Path)
}

func TestLowerBodylessWithCaptureFulfilledProperties(t *testing.T) {

	t.Parallel()

	protocol := NewProtocolType(
		common_utils.TestLocation,
		"Counter",
		[]*Requirement{
			NewRequirement(
				nil,
				"count",
				RequirementKindReadProperty,
				&FunctionType{
					ReturnTypeAnnotation: IntTypeAnnotation,
				},
				false,
				false,
			),
			NewRequirement(
				nil,
				"describe",
				RequirementKindMethod,
				&FunctionType{
					ReturnTypeAnnotation: StringTypeAnnotation,
				},
				false,
				false,
			).WithDefaultImplementation(nil),
		},
	)

	// { [count = threshold] } : the capture fulfills `count`,
	// `describe` is defaulted, so no body is needed

	literal := closureLiteral(
		[]*ast.CaptureItem{
			captureItem(
				"count",
				identifierExpression("threshold", ast.Position{Offset: 11, Line: 1, Column: 11}),
				ast.Position{Offset: 3, Line: 1, Column: 3},
			),
		},
		nil,
		nil,
	)

	lowerer := newTestLowerer()
	result, err := lowerer.LowerClosureLiteral(
		literal,
		TargetContext{
			Protocols:      []*ProtocolType{protocol},
			EnclosingScope: testEnclosingScope(),
		},
	)
	require.NoError(t, err)

	assert.Equal(t, LoweringPathBodyless, result.Resolution.Path)
	assert.Nil(t, result.Resolution.FulfilledRequirement)

	// only the field and the initializer: covered requirements
	// are inherited, never re-emitted
	declaration := result.Declaration
	assert.Len(t, declaration.Members.Fields(), 1)
	assert.Len(t, declaration.Members.Initializers(), 1)
	assert.Empty(t, declaration.Members.Functions())
	assert.Empty(t, declaration.Members.Properties())
}

func TestLowerAccessorPath(t *testing.T) {

	t.Parallel()

	protocol := NewProtocolType(
		common_utils.TestLocation,
		"Adjustable",
		[]*Requirement{
			NewRequirement(
				nil,
				"value",
				RequirementKindMutableProperty,
				&FunctionType{
					ReturnTypeAnnotation: IntTypeAnnotation,
				},
				false,
				false,
			),
		},
	)

	// { [var current = threshold] get { current } set { current = newValue } }

	getBlock := ast.NewFunctionBlock(
		nil,
		ast.NewBlock(
			nil,
			[]ast.Statement{
				ast.NewExpressionStatement(
					nil,
					identifierExpression("current", ast.Position{Offset: 34, Line: 1, Column: 34}),
				),
			},
			ast.EmptyRange,
		),
	)
	setBlock := ast.NewFunctionBlock(
		nil,
		ast.NewBlock(
			nil,
			[]ast.Statement{
				ast.NewAssignmentStatement(
					nil,
					identifierExpression("current", ast.Position{Offset: 50, Line: 1, Column: 50}),
					identifierExpression("newValue", ast.Position{Offset: 60, Line: 1, Column: 60}),
				),
			},
			ast.EmptyRange,
		),
	)

	literal := closureLiteral(
		[]*ast.CaptureItem{
			varCaptureItem(
				"current",
				identifierExpression("threshold", ast.Position{Offset: 17, Line: 1, Column: 17}),
				ast.Position{Offset: 3, Line: 1, Column: 3},
			),
		},
		nil,
		ast.NewAccessorsBody(
			nil,
			&ast.Accessors{
				Get: getBlock,
				Set: setBlock,
			},
		),
	)

	lowerer := newTestLowerer()
	result, err := lowerer.LowerClosureLiteral(
		literal,
		TargetContext{
			Protocols:      []*ProtocolType{protocol},
			EnclosingScope: testEnclosingScope(),
		},
	)
	require.NoError(t, err)

	assert.Equal(t, LoweringPathAccessor, result.Resolution.Path)

	properties := result.Declaration.Members.Properties()
	require.Len(t, properties, 1)
	property := properties[0]
	assert.Equal(t, "value", property.Identifier.Identifier)
	assert.Equal(t, ast.AccessPublic, property.Access)
	require.NotNil(t, property.Accessors)
	assert.NotNil(t, property.Accessors.Get)
	assert.NotNil(t, property.Accessors.Set)
}

func TestLowerMultiDeclarationPath(t *testing.T) {

	t.Parallel()

	protocol := NewProtocolType(
		common_utils.TestLocation,
		"Shape",
		[]*Requirement{
			NewRequirement(
				nil,
				"area",
				RequirementKindMethod,
				&FunctionType{
					ReturnTypeAnnotation: IntTypeAnnotation,
				},
				false,
				false,
			),
			NewRequirement(
				nil,
				"name",
				RequirementKindReadProperty,
				&FunctionType{
					ReturnTypeAnnotation: StringTypeAnnotation,
				},
				false,
				false,
			),
		},
	)

	areaDeclaration := ast.NewFunctionDeclaration(
		nil,
		ast.AccessPublic,
		false,
		false,
		ast.NewIdentifier(nil, "area", ast.Position{Offset: 10, Line: 2, Column: 4}),
		ast.NewParameterList(nil, nil, ast.EmptyRange),
		nil,
		ast.NewFunctionBlock(
			nil,
			ast.NewBlock(
				nil,
				[]ast.Statement{
					ast.NewExpressionStatement(
						nil,
						identifierExpression("side", ast.Position{Offset: 25, Line: 2, Column: 19}),
					),
				},
				ast.EmptyRange,
			),
		),
		ast.Position{Offset: 10, Line: 2, Column: 4},
		"",
	)

	nameDeclaration := ast.NewPropertyDeclaration(
		nil,
		ast.AccessPublic,
		false,
		ast.NewIdentifier(nil, "name", ast.Position{Offset: 40, Line: 3, Column: 4}),
		nil,
		&ast.Accessors{
			Get: ast.NewFunctionBlock(
				nil,
				ast.NewBlock(nil, nil, ast.EmptyRange),
			),
		},
		"",
		ast.Position{Offset: 40, Line: 3, Column: 4},
	)

	t.Run("valid", func(t *testing.T) {

		t.Parallel()

		scope := NewLexicalScope(nil)
		scope.Declare(&Variable{
			Identifier:      "side",
			DeclarationKind: common.DeclarationKindConstant,
			Type:            IntType,
		})

		literal := closureLiteral(
			nil,
			nil,
			declarationsBody(areaDeclaration, nameDeclaration),
		)

		lowerer := newTestLowerer()
		result, err := lowerer.LowerClosureLiteral(
			literal,
			TargetContext{
				Protocols:      []*ProtocolType{protocol},
				EnclosingScope: scope,
			},
		)
		require.NoError(t, err)

		assert.Equal(t, LoweringPathMultiDeclaration, result.Resolution.Path)

		declaration := result.Declaration
		// `side` is captured implicitly from the method body
		require.Len(t, declaration.Members.Fields(), 1)
		assert.Equal(t, "side", declaration.Members.Fields()[0].Identifier.Identifier)
		require.Len(t, declaration.Members.Functions(), 1)
		assert.Equal(t, "area", declaration.Members.Functions()[0].Identifier.Identifier)
		require.Len(t, declaration.Members.Properties(), 1)
		assert.Equal(t, "name", declaration.Members.Properties()[0].Identifier.Identifier)
	})

	t.Run("stored property", func(t *testing.T) {

		t.Parallel()

		storedProperty := ast.NewVariableDeclaration(
			nil,
			ast.AccessNotSpecified,
			ast.VariableKindVariable,
			ast.NewIdentifier(nil, "cached", ast.Position{Offset: 60, Line: 4, Column: 4}),
			nil,
			identifierExpression("side", ast.Position{Offset: 70, Line: 4, Column: 14}),
			"",
			ast.Position{Offset: 60, Line: 4, Column: 4},
		)

		scope := NewLexicalScope(nil)
		scope.Declare(&Variable{
			Identifier:      "side",
			DeclarationKind: common.DeclarationKindConstant,
			Type:            IntType,
		})

		literal := closureLiteral(
			nil,
			nil,
			declarationsBody(areaDeclaration, nameDeclaration, storedProperty),
		)

		lowerer := newTestLowerer()
		_, err := lowerer.LowerClosureLiteral(
			literal,
			TargetContext{
				Protocols:      []*ProtocolType{protocol},
				EnclosingScope: scope,
			},
		)

		common_utils.RequireError(t, err)

		var storedErr *StoredPropertyInMultiDeclarationBodyError
		require.ErrorAs(t, err, &storedErr)
		assert.Equal(t, "cached", storedErr.Name)
	})
}

func TestLowerMetatypePath(t *testing.T) {

	t.Parallel()

	protocol := NewProtocolType(
		common_utils.TestLocation,
		"Makeable",
		[]*Requirement{
			NewRequirement(
				nil,
				"make",
				RequirementKindStaticMethod,
				&FunctionType{
					ReturnTypeAnnotation: IntTypeAnnotation,
				},
				false,
				false,
			),
		},
	)

	literal := closureLiteral(
		nil,
		nil,
		statementsBody(
			ast.NewReturnStatement(
				nil,
				ast.NewIntegerExpression(nil, "0", nil, 10, ast.EmptyRange),
				ast.EmptyRange,
			),
		),
	)

	lowerer := newTestLowerer()
	result, err := lowerer.LowerClosureLiteral(
		literal,
		TargetContext{
			Protocols:      []*ProtocolType{protocol},
			IsMetatype:     true,
			EnclosingScope: NewLexicalScope(nil),
		},
	)
	require.NoError(t, err)

	assert.Equal(t, LoweringPathMetatype, result.Resolution.Path)

	declaration := result.Declaration
	assert.Empty(t, declaration.Members.Fields())
	assert.Empty(t, declaration.Members.Initializers())

	functions := declaration.Members.Functions()
	require.Len(t, functions, 1)
	witness := functions[0]
	assert.Equal(t, "make", witness.Identifier.Identifier)
	assert.True(t, witness.IsStatic)

	// a type construction takes no arguments
	assert.Empty(t, result.Replacement.Arguments)
}

func TestLowerMetatypePathRejectsImplicitCapture(t *testing.T) {

	t.Parallel()

	protocol := NewProtocolType(
		common_utils.TestLocation,
		"Makeable",
		[]*Requirement{
			NewRequirement(
				nil,
				"make",
				RequirementKindStaticMethod,
				&FunctionType{
					ReturnTypeAnnotation: IntTypeAnnotation,
				},
				false,
				false,
			),
		},
	)

	// `{ return threshold }` with `threshold` free in the enclosing scope:
	// the body captures it implicitly, so the literal would need
	// construction-time state, which a type cannot carry

	literal := closureLiteral(
		nil,
		nil,
		statementsBody(
			ast.NewReturnStatement(
				nil,
				identifierExpression(
					"threshold",
					ast.Position{Offset: 9, Line: 1, Column: 9},
				),
				ast.EmptyRange,
			),
		),
	)

	lowerer := newTestLowerer()
	_, err := lowerer.LowerClosureLiteral(
		literal,
		TargetContext{
			Protocols:      []*ProtocolType{protocol},
			IsMetatype:     true,
			EnclosingScope: testEnclosingScope(),
		},
	)

	var captureErr *CaptureListOnMetatypePathError
	require.ErrorAs(t, err, &captureErr)
}

func TestLowerIdempotence(t *testing.T) {

	t.Parallel()

	lowerer := newTestLowerer()
	literal := predicateLiteral()
	target := TargetContext{
		Protocols:      []*ProtocolType{predicateProtocol()},
		EnclosingScope: testEnclosingScope(),
	}

	first, err := lowerer.LowerClosureLiteral(literal, target)
	require.NoError(t, err)

	second, err := lowerer.LowerClosureLiteral(literal, target)
	require.NoError(t, err)

	// repeated passes over the same literal reuse the registered type
	assert.Same(t, first.StructType, second.StructType)
	assert.Len(t, lowerer.Registry().Declarations(), 1)
}

func TestLowerFieldOrderMatchesCaptureOrder(t *testing.T) {

	t.Parallel()

	// { [a = expected, b = name] in a > threshold }

	literal := closureLiteral(
		[]*ast.CaptureItem{
			captureItem(
				"a",
				identifierExpression("expected", ast.Position{Offset: 7, Line: 1, Column: 7}),
				ast.Position{Offset: 3, Line: 1, Column: 3},
			),
			captureItem(
				"b",
				identifierExpression("name", ast.Position{Offset: 21, Line: 1, Column: 21}),
				ast.Position{Offset: 17, Line: 1, Column: 17},
			),
		},
		nil,
		statementsBody(
			ast.NewExpressionStatement(
				nil,
				ast.NewBinaryExpression(
					nil,
					ast.OperationGreater,
					identifierExpression("a", ast.Position{Offset: 30, Line: 1, Column: 30}),
					identifierExpression("threshold", ast.Position{Offset: 34, Line: 1, Column: 34}),
				),
			),
		),
	)

	lowerer := newTestLowerer()
	result, err := lowerer.LowerClosureLiteral(
		literal,
		TargetContext{
			Protocols:      []*ProtocolType{predicateProtocol()},
			EnclosingScope: testEnclosingScope(),
		},
	)
	require.NoError(t, err)

	// explicit captures in declaration order,
	// then implicit captures in first-use order

	fields := result.Declaration.Members.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, "a", fields[0].Identifier.Identifier)
	assert.Equal(t, "b", fields[1].Identifier.Identifier)
	assert.Equal(t, "threshold", fields[2].Identifier.Identifier)

	// constructor arguments follow field order,
	// passing each capture's initializer by value

	arguments := result.Replacement.Arguments
	require.Len(t, arguments, 3)

	assert.Equal(t, "a", arguments[0].Label)
	value, ok := arguments[0].Expression.(*ast.IdentifierExpression)
	require.True(t, ok)
	assert.Equal(t, "expected", value.Identifier.Identifier)

	assert.Equal(t, "b", arguments[1].Label)
	assert.Equal(t, "threshold", arguments[2].Label)
}

func TestLowerOuterSelfRewriting(t *testing.T) {

	t.Parallel()

	// { in self.describe() } inside type `Outer`:
	// `self` is captured and rewritten to the escaped field

	literal := closureLiteral(
		nil,
		nil,
		statementsBody(
			ast.NewExpressionStatement(
				nil,
				ast.NewInvocationExpression(
					nil,
					ast.NewMemberExpression(
						nil,
						identifierExpression(SelfIdentifier, ast.Position{Offset: 5, Line: 1, Column: 5}),
						ast.Position{Offset: 9, Line: 1, Column: 9},
						ast.NewIdentifier(nil, "describe", ast.Position{Offset: 10, Line: 1, Column: 10}),
					),
					nil,
					ast.Position{Offset: 18, Line: 1, Column: 18},
					ast.Position{Offset: 19, Line: 1, Column: 19},
				),
			),
		),
	)

	lowerer := newTestLowerer()
	result, err := lowerer.LowerClosureLiteral(
		literal,
		TargetContext{
			Protocols:         []*ProtocolType{predicateProtocol()},
			EnclosingScope:    testEnclosingScope(),
			EnclosingTypeName: "Outer",
		},
	)
	require.NoError(t, err)

	// the captured outer `self` is stored under the escaped field name

	fields := result.Declaration.Members.Fields()
	require.Len(t, fields, 1)
	assert.Equal(t, OuterSelfFieldName, fields[0].Identifier.Identifier)

	// in the witness body, `self` now reaches through the field

	functions := result.Declaration.Members.Functions()
	require.Len(t, functions, 1)
	statements := functions[0].FunctionBlock.Block.Statements
	require.Len(t, statements, 1)

	invocation := statements[0].(*ast.ExpressionStatement).
		Expression.(*ast.InvocationExpression)
	member := invocation.InvokedExpression.(*ast.MemberExpression)
	assert.Equal(t, "describe", member.Identifier.Identifier)

	inner, ok := member.Expression.(*ast.MemberExpression)
	require.True(t, ok)
	assert.Equal(t, OuterSelfFieldName, inner.Identifier.Identifier)

	base, ok := inner.Expression.(*ast.IdentifierExpression)
	require.True(t, ok)
	assert.Equal(t, SelfIdentifier, base.Identifier.Identifier)
}

func TestLowerMutationChecking(t *testing.T) {

	t.Parallel()

	mutatingBody := func() *ast.StatementsBody {
		return statementsBody(
			ast.NewAssignmentStatement(
				nil,
				identifierExpression("count", ast.Position{Offset: 20, Line: 1, Column: 20}),
				ast.NewIntegerExpression(nil, "1", nil, 10, ast.EmptyRange),
			),
		)
	}

	newProtocol := func(mutating bool) *ProtocolType {
		return NewProtocolType(
			common_utils.TestLocation,
			"Mutator",
			[]*Requirement{
				NewRequirement(
					nil,
					"bump",
					RequirementKindMethod,
					&FunctionType{
						ReturnTypeAnnotation: VoidTypeAnnotation,
					},
					mutating,
					false,
				),
			},
		)
	}

	t.Run("assignment to constant capture", func(t *testing.T) {

		t.Parallel()

		literal := closureLiteral(
			[]*ast.CaptureItem{
				captureItem(
					"count",
					identifierExpression("threshold", ast.Position{Offset: 11, Line: 1, Column: 11}),
					ast.Position{Offset: 3, Line: 1, Column: 3},
				),
			},
			nil,
			mutatingBody(),
		)

		lowerer := newTestLowerer()
		_, err := lowerer.LowerClosureLiteral(
			literal,
			TargetContext{
				Protocols:      []*ProtocolType{newProtocol(true)},
				EnclosingScope: testEnclosingScope(),
			},
		)

		common_utils.RequireError(t, err)

		var constantErr *AssignmentToConstantCaptureError
		require.ErrorAs(t, err, &constantErr)
		assert.Equal(t, "count", constantErr.Name)
	})

	t.Run("mutation via non-mutating requirement", func(t *testing.T) {

		t.Parallel()

		literal := closureLiteral(
			[]*ast.CaptureItem{
				varCaptureItem(
					"count",
					identifierExpression("threshold", ast.Position{Offset: 15, Line: 1, Column: 15}),
					ast.Position{Offset: 3, Line: 1, Column: 3},
				),
			},
			nil,
			mutatingBody(),
		)

		lowerer := newTestLowerer()
		_, err := lowerer.LowerClosureLiteral(
			literal,
			TargetContext{
				Protocols:      []*ProtocolType{newProtocol(false)},
				EnclosingScope: testEnclosingScope(),
			},
		)

		common_utils.RequireError(t, err)

		var mutatingErr *MutatingRequirementViaBodyError
		require.ErrorAs(t, err, &mutatingErr)
		assert.Equal(t, "bump", mutatingErr.RequirementIdentifier)
		assert.Equal(t, "count", mutatingErr.CaptureName)
	})

	t.Run("mutation via mutating requirement", func(t *testing.T) {

		t.Parallel()

		literal := closureLiteral(
			[]*ast.CaptureItem{
				varCaptureItem(
					"count",
					identifierExpression("threshold", ast.Position{Offset: 15, Line: 1, Column: 15}),
					ast.Position{Offset: 3, Line: 1, Column: 3},
				),
			},
			nil,
			mutatingBody(),
		)

		lowerer := newTestLowerer()
		result, err := lowerer.LowerClosureLiteral(
			literal,
			TargetContext{
				Protocols:      []*ProtocolType{newProtocol(true)},
				EnclosingScope: testEnclosingScope(),
			},
		)
		require.NoError(t, err)

		functions := result.Declaration.Members.Functions()
		require.Len(t, functions, 1)
		assert.True(t, functions[0].IsMutating)
	})
}

func TestLowerAllParallel(t *testing.T) {

	defer goleak.VerifyNone(t)

	const literalCount = 32

	protocol := predicateProtocol()
	scope := testEnclosingScope()

	requests := make([]LoweringRequest, 0, literalCount)
	for i := 0; i < literalCount; i++ {
		requests = append(
			requests,
			LoweringRequest{
				Literal: predicateLiteral(),
				Target: TargetContext{
					Protocols:      []*ProtocolType{protocol},
					EnclosingScope: scope,
				},
			},
		)
	}

	lowerer := newTestLowerer()
	results, err := lowerer.LowerAll(requests)
	require.NoError(t, err)
	require.Len(t, results, literalCount)

	// every literal gets its own distinct generated name

	names := map[string]struct{}{}
	for _, result := range results {
		require.NotNil(t, result)
		names[result.StructType.Identifier] = struct{}{}
	}
	assert.Len(t, names, literalCount)

	assert.Len(t, lowerer.Registry().Declarations(), literalCount)
}

func TestLowerAllCollectsFailures(t *testing.T) {

	defer goleak.VerifyNone(t)

	protocol := predicateProtocol()
	scope := testEnclosingScope()

	valid := LoweringRequest{
		Literal: predicateLiteral(),
		Target: TargetContext{
			Protocols:      []*ProtocolType{protocol},
			EnclosingScope: scope,
		},
	}

	// missing body
	invalid := LoweringRequest{
		Literal: closureLiteral(nil, nil, nil),
		Target: TargetContext{
			Protocols:      []*ProtocolType{protocol},
			EnclosingScope: scope,
		},
	}

	lowerer := newTestLowerer()
	results, err := lowerer.LowerAll([]LoweringRequest{valid, invalid, valid})

	common_utils.RequireError(t, err)

	var loweringErr LoweringError
	require.ErrorAs(t, err, &loweringErr)
	require.Len(t, loweringErr.ChildErrors(), 1)

	var notSingleErr *NotSingleRequirementError
	require.ErrorAs(t, loweringErr.Errors[0], &notSingleErr)

	// one literal's failure never invalidates its siblings
	require.Len(t, results, 3)
	assert.NotNil(t, results[0])
	assert.Nil(t, results[1])
	assert.NotNil(t, results[2])
}

func TestDeclarationRegistryNames(t *testing.T) {

	t.Parallel()

	registry := NewDeclarationRegistry()

	for i := 1; i <= 3; i++ {
		assert.Equal(t,
			fmt.Sprintf("$AnonStruct%d", i),
			registry.ReserveName(),
		)
	}
}

func TestRenderDeclaration(t *testing.T) {

	t.Parallel()

	lowerer := newTestLowerer()
	result, err := lowerer.LowerClosureLiteral(
		predicateLiteral(),
		TargetContext{
			Protocols:      []*ProtocolType{predicateProtocol()},
			EnclosingScope: testEnclosingScope(),
		},
	)
	require.NoError(t, err)

	rendered := RenderDeclaration(result.Declaration)
	assert.Contains(t, rendered, "struct $AnonStruct1")
	assert.Contains(t, rendered, "Predicate")
	assert.Contains(t, rendered, "init(expected: Int)")
	assert.Contains(t, rendered, "fun evaluate")
}
