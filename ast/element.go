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

// Package ast contains the AST nodes of the Lumen front end
// that the closure lowering consumes and produces.
// All nodes implement the Element interface,
// so have position information and can be traversed using Walk.
// Nodes also implement the json.Marshaler interface,
// so can be serialized to a standardized/stable JSON format.
package ast

// ElementType

type ElementType uint64

const (
	ElementTypeUnknown ElementType = iota

	ElementTypeBoolExpression
	ElementTypeNilExpression
	ElementTypeIntegerExpression
	ElementTypeStringExpression
	ElementTypeIdentifierExpression
	ElementTypeBinaryExpression
	ElementTypeUnaryExpression
	ElementTypeMemberExpression
	ElementTypeIndexExpression
	ElementTypeInvocationExpression
	ElementTypeDictionaryExpression
	ElementTypeClosureLiteralExpression

	ElementTypeReturnStatement
	ElementTypeExpressionStatement
	ElementTypeAssignmentStatement
	ElementTypeVariableDeclaration

	ElementTypeBlock
	ElementTypeFunctionBlock

	ElementTypeFieldDeclaration
	ElementTypeFunctionDeclaration
	ElementTypeSpecialFunctionDeclaration
	ElementTypePropertyDeclaration
	ElementTypeSubscriptDeclaration
	ElementTypeCompositeDeclaration
)

// Element

type Element interface {
	HasPosition
	ElementType() ElementType
	Walk(walkChild func(Element))
}

// Walk traverses the element and all of its children, depth-first
func Walk(element Element, walkChild func(Element)) {
	walkChild(element)
	element.Walk(func(child Element) {
		if child == nil {
			return
		}
		Walk(child, walkChild)
	})
}

func walkExpressions(walkChild func(Element), expressions []Expression) {
	for _, expression := range expressions {
		walkChild(expression)
	}
}

func walkStatements(walkChild func(Element), statements []Statement) {
	for _, statement := range statements {
		walkChild(statement)
	}
}

func walkDeclarations(walkChild func(Element), declarations []Declaration) {
	for _, declaration := range declarations {
		walkChild(declaration)
	}
}
