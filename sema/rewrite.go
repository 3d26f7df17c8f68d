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
	"github.com/lumen-lang/lumen/ast"
	"github.com/lumen-lang/lumen/common"
	"github.com/lumen-lang/lumen/errors"
)

// RegionTag

// RegionTag marks the origin of a source region inside
// a synthesized structure. The meaning of `self` and `Self`
// depends on it, and the two meanings coexist in one declaration:
// the tag flips exactly at the boundary between code supplied
// by the literal and code adopted from protocol defaults or synthesis.
type RegionTag uint

const (
	RegionTagUnknown RegionTag = iota
	// RegionTagLiteralBody : code written in the closure literal.
	// `self` refers to the enclosing scope's `self`,
	// which is a captured field of the synthesized structure.
	RegionTagLiteralBody
	// RegionTagAdopted : code adopted from protocol defaults,
	// compiler synthesis, or generated members such as the initializer.
	// `self` refers to the synthesized structure itself,
	// matching ordinary type semantics.
	RegionTagAdopted
)

func (t RegionTag) Name() string {
	switch t {
	case RegionTagLiteralBody:
		return "literal-body"
	case RegionTagAdopted:
		return "adopted"
	}

	panic(errors.NewUnreachableError())
}

// ContextRewriter

// ContextRewriter remaps identifier resolution inside bodies copied
// into a synthesized structure: in literal-body regions, a reference
// to the enclosing scope's `self` becomes a reference to the captured
// field holding that value, and `Self` becomes the enclosing type's
// name. Adopted regions are left untouched.
//
// The binding is fixed per region when the region is rewritten,
// never re-evaluated at call time.
type ContextRewriter struct {
	gauge common.MemoryGauge
	// outerSelfCaptured is true if the literal captures
	// the enclosing scope's `self`
	outerSelfCaptured bool
	// enclosingTypeName is the name `Self` resolves to
	// in literal-body regions, if known
	enclosingTypeName string
}

func NewContextRewriter(
	gauge common.MemoryGauge,
	outerSelfCaptured bool,
	enclosingTypeName string,
) *ContextRewriter {
	return &ContextRewriter{
		gauge:             gauge,
		outerSelfCaptured: outerSelfCaptured,
		enclosingTypeName: enclosingTypeName,
	}
}

// SelfMetatypeIdentifier is the reserved identifier
// referring to the current type
const SelfMetatypeIdentifier = "Self"

func (r *ContextRewriter) RewriteFunctionBlock(
	functionBlock *ast.FunctionBlock,
	tag RegionTag,
) *ast.FunctionBlock {
	if functionBlock == nil {
		return nil
	}
	if tag == RegionTagAdopted || !r.needsRewriting() {
		return functionBlock
	}
	return ast.NewFunctionBlock(
		r.gauge,
		r.rewriteBlock(functionBlock.Block),
	)
}

func (r *ContextRewriter) RewriteBlock(
	block *ast.Block,
	tag RegionTag,
) *ast.Block {
	if block == nil {
		return nil
	}
	if tag == RegionTagAdopted || !r.needsRewriting() {
		return block
	}
	return r.rewriteBlock(block)
}

func (r *ContextRewriter) needsRewriting() bool {
	return r.outerSelfCaptured || r.enclosingTypeName != ""
}

func (r *ContextRewriter) rewriteBlock(block *ast.Block) *ast.Block {
	statements := make([]ast.Statement, 0, len(block.Statements))
	for _, statement := range block.Statements {
		statements = append(statements, r.rewriteStatement(statement))
	}
	return ast.NewBlock(r.gauge, statements, block.Range)
}

func (r *ContextRewriter) rewriteStatement(statement ast.Statement) ast.Statement {
	switch statement := statement.(type) {
	case *ast.ReturnStatement:
		return ast.NewReturnStatement(
			r.gauge,
			r.rewriteExpression(statement.Expression),
			statement.Range,
		)

	case *ast.ExpressionStatement:
		return ast.NewExpressionStatement(
			r.gauge,
			r.rewriteExpression(statement.Expression),
		)

	case *ast.AssignmentStatement:
		return ast.NewAssignmentStatement(
			r.gauge,
			r.rewriteExpression(statement.Target),
			r.rewriteExpression(statement.Value),
		)

	case *ast.VariableDeclaration:
		return ast.NewVariableDeclaration(
			r.gauge,
			statement.Access,
			statement.VariableKind,
			statement.Identifier,
			statement.TypeAnnotation,
			r.rewriteExpression(statement.Value),
			statement.DocString,
			statement.StartPos,
		)

	default:
		return statement
	}
}

func (r *ContextRewriter) rewriteExpression(expression ast.Expression) ast.Expression {
	if expression == nil {
		return nil
	}

	switch expression := expression.(type) {
	case *ast.IdentifierExpression:
		return r.rewriteIdentifierExpression(expression)

	case *ast.UnaryExpression:
		return ast.NewUnaryExpression(
			r.gauge,
			expression.Operation,
			r.rewriteExpression(expression.Expression),
			expression.StartPos,
		)

	case *ast.BinaryExpression:
		return ast.NewBinaryExpression(
			r.gauge,
			expression.Operation,
			r.rewriteExpression(expression.Left),
			r.rewriteExpression(expression.Right),
		)

	case *ast.MemberExpression:
		return ast.NewMemberExpression(
			r.gauge,
			r.rewriteExpression(expression.Expression),
			expression.AccessPos,
			expression.Identifier,
		)

	case *ast.IndexExpression:
		return ast.NewIndexExpression(
			r.gauge,
			r.rewriteExpression(expression.TargetExpression),
			r.rewriteExpression(expression.IndexingExpression),
			expression.Range,
		)

	case *ast.InvocationExpression:
		arguments := make([]*ast.Argument, 0, len(expression.Arguments))
		for _, argument := range expression.Arguments {
			arguments = append(
				arguments,
				ast.NewArgument(
					r.gauge,
					argument.Label,
					argument.LabelStartPos,
					argument.LabelEndPos,
					r.rewriteExpression(argument.Expression),
				),
			)
		}
		return ast.NewInvocationExpression(
			r.gauge,
			r.rewriteExpression(expression.InvokedExpression),
			arguments,
			expression.ArgumentsStartPos,
			expression.EndPos,
		)

	case *ast.DictionaryExpression:
		entries := make([]ast.DictionaryEntry, 0, len(expression.Entries))
		for _, entry := range expression.Entries {
			entries = append(
				entries,
				ast.DictionaryEntry{
					Key:   r.rewriteExpression(entry.Key),
					Value: r.rewriteExpression(entry.Value),
				},
			)
		}
		return ast.NewDictionaryExpression(
			r.gauge,
			entries,
			expression.Range,
		)

	default:
		// literals and closure literals are left as-is.
		// Nested closure literals get their own lowering.
		return expression
	}
}

func (r *ContextRewriter) rewriteIdentifierExpression(
	expression *ast.IdentifierExpression,
) ast.Expression {
	switch expression.Identifier.Identifier {
	case SelfIdentifier:
		if !r.outerSelfCaptured {
			break
		}
		// the enclosing scope's `self` lives in the escaped field
		return ast.NewMemberExpression(
			r.gauge,
			ast.NewIdentifierExpression(
				r.gauge,
				ast.NewIdentifier(
					r.gauge,
					SelfIdentifier,
					expression.Identifier.Pos,
				),
			),
			expression.Identifier.Pos,
			ast.NewIdentifier(
				r.gauge,
				OuterSelfFieldName,
				expression.Identifier.Pos,
			),
		)

	case SelfMetatypeIdentifier:
		if r.enclosingTypeName == "" {
			break
		}
		return ast.NewIdentifierExpression(
			r.gauge,
			ast.NewIdentifier(
				r.gauge,
				r.enclosingTypeName,
				expression.Identifier.Pos,
			),
		)
	}

	return expression
}
