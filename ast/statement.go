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

package ast

import (
	"encoding/json"

	"github.com/turbolent/prettier"

	"github.com/lumen-lang/lumen/common"
)

type Statement interface {
	Element
	isStatement()
	Doc() prettier.Doc
}

// ReturnStatement

type ReturnStatement struct {
	Expression Expression
	Range
}

var _ Statement = &ReturnStatement{}

func NewReturnStatement(
	gauge common.MemoryGauge,
	expression Expression,
	stmtRange Range,
) *ReturnStatement {
	common.UseMemory(gauge, common.StatementMemoryUsage)
	return &ReturnStatement{
		Expression: expression,
		Range:      stmtRange,
	}
}

func (*ReturnStatement) isStatement() {}

func (*ReturnStatement) ElementType() ElementType {
	return ElementTypeReturnStatement
}

func (s *ReturnStatement) Walk(walkChild func(Element)) {
	if s.Expression != nil {
		walkChild(s.Expression)
	}
}

var returnStatementKeywordDoc prettier.Doc = prettier.Text("return")
var returnStatementKeywordSpaceDoc prettier.Doc = prettier.Text("return ")

func (s *ReturnStatement) Doc() prettier.Doc {
	if s.Expression == nil {
		return returnStatementKeywordDoc
	}
	return prettier.Concat{
		returnStatementKeywordSpaceDoc,
		s.Expression.Doc(),
	}
}

func (s *ReturnStatement) MarshalJSON() ([]byte, error) {
	type Alias ReturnStatement
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "ReturnStatement",
		Alias: (*Alias)(s),
	})
}

// ExpressionStatement

type ExpressionStatement struct {
	Expression Expression
}

var _ Statement = &ExpressionStatement{}

func NewExpressionStatement(gauge common.MemoryGauge, expression Expression) *ExpressionStatement {
	common.UseMemory(gauge, common.StatementMemoryUsage)
	return &ExpressionStatement{
		Expression: expression,
	}
}

func (*ExpressionStatement) isStatement() {}

func (*ExpressionStatement) ElementType() ElementType {
	return ElementTypeExpressionStatement
}

func (s *ExpressionStatement) Walk(walkChild func(Element)) {
	walkChild(s.Expression)
}

func (s *ExpressionStatement) StartPosition() Position {
	return s.Expression.StartPosition()
}

func (s *ExpressionStatement) EndPosition(memoryGauge common.MemoryGauge) Position {
	return s.Expression.EndPosition(memoryGauge)
}

func (s *ExpressionStatement) Doc() prettier.Doc {
	return s.Expression.Doc()
}

func (s *ExpressionStatement) MarshalJSON() ([]byte, error) {
	type Alias ExpressionStatement
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "ExpressionStatement",
		Range: NewUnmeteredRangeFromPositioned(s),
		Alias: (*Alias)(s),
	})
}

// AssignmentStatement

type AssignmentStatement struct {
	Target Expression
	Value  Expression
}

var _ Statement = &AssignmentStatement{}

func NewAssignmentStatement(
	gauge common.MemoryGauge,
	target Expression,
	value Expression,
) *AssignmentStatement {
	common.UseMemory(gauge, common.StatementMemoryUsage)
	return &AssignmentStatement{
		Target: target,
		Value:  value,
	}
}

func (*AssignmentStatement) isStatement() {}

func (*AssignmentStatement) ElementType() ElementType {
	return ElementTypeAssignmentStatement
}

func (s *AssignmentStatement) Walk(walkChild func(Element)) {
	walkChild(s.Target)
	walkChild(s.Value)
}

func (s *AssignmentStatement) StartPosition() Position {
	return s.Target.StartPosition()
}

func (s *AssignmentStatement) EndPosition(memoryGauge common.MemoryGauge) Position {
	return s.Value.EndPosition(memoryGauge)
}

var assignmentStatementEqualsSpaceDoc prettier.Doc = prettier.Text(" = ")

func (s *AssignmentStatement) Doc() prettier.Doc {
	return prettier.Group{
		Doc: prettier.Concat{
			s.Target.Doc(),
			assignmentStatementEqualsSpaceDoc,
			s.Value.Doc(),
		},
	}
}

func (s *AssignmentStatement) MarshalJSON() ([]byte, error) {
	type Alias AssignmentStatement
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "AssignmentStatement",
		Range: NewUnmeteredRangeFromPositioned(s),
		Alias: (*Alias)(s),
	})
}

// VariableDeclaration

type VariableDeclaration struct {
	Access         Access
	VariableKind   VariableKind
	Identifier     Identifier
	TypeAnnotation *TypeAnnotation `json:",omitempty"`
	Value          Expression
	DocString      string
	StartPos       Position `json:"-"`
}

var _ Statement = &VariableDeclaration{}
var _ Declaration = &VariableDeclaration{}

func NewVariableDeclaration(
	gauge common.MemoryGauge,
	access Access,
	variableKind VariableKind,
	identifier Identifier,
	typeAnnotation *TypeAnnotation,
	value Expression,
	docString string,
	startPos Position,
) *VariableDeclaration {
	common.UseMemory(gauge, common.StatementMemoryUsage)
	return &VariableDeclaration{
		Access:         access,
		VariableKind:   variableKind,
		Identifier:     identifier,
		TypeAnnotation: typeAnnotation,
		Value:          value,
		DocString:      docString,
		StartPos:       startPos,
	}
}

func (*VariableDeclaration) isStatement() {}

func (*VariableDeclaration) isDeclaration() {}

func (*VariableDeclaration) ElementType() ElementType {
	return ElementTypeVariableDeclaration
}

func (d *VariableDeclaration) Walk(walkChild func(Element)) {
	if d.Value != nil {
		walkChild(d.Value)
	}
}

func (d *VariableDeclaration) StartPosition() Position {
	return d.StartPos
}

func (d *VariableDeclaration) EndPosition(memoryGauge common.MemoryGauge) Position {
	if d.Value != nil {
		return d.Value.EndPosition(memoryGauge)
	}
	if d.TypeAnnotation != nil {
		return d.TypeAnnotation.EndPosition(memoryGauge)
	}
	return d.Identifier.EndPosition(memoryGauge)
}

func (d *VariableDeclaration) DeclarationIdentifier() *Identifier {
	return &d.Identifier
}

func (d *VariableDeclaration) DeclarationKind() common.DeclarationKind {
	if d.VariableKind == VariableKindConstant {
		return common.DeclarationKindConstant
	}
	return common.DeclarationKindVariable
}

func (d *VariableDeclaration) DeclarationAccess() Access {
	return d.Access
}

func (d *VariableDeclaration) DeclarationMembers() *Members {
	return nil
}

func (d *VariableDeclaration) DeclarationDocString() string {
	return d.DocString
}

func (d *VariableDeclaration) Doc() prettier.Doc {
	doc := prettier.Concat{
		prettier.Text(d.VariableKind.Keyword()),
		prettier.Space,
		prettier.Text(d.Identifier.Identifier),
	}

	if d.TypeAnnotation != nil {
		doc = append(
			doc,
			parameterTypeSeparatorDoc,
			d.TypeAnnotation.Doc(),
		)
	}

	if d.Value != nil {
		doc = append(
			doc,
			assignmentStatementEqualsSpaceDoc,
			d.Value.Doc(),
		)
	}

	return prettier.Group{
		Doc: doc,
	}
}

func (d *VariableDeclaration) MarshalJSON() ([]byte, error) {
	type Alias VariableDeclaration
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "VariableDeclaration",
		Range: NewUnmeteredRangeFromPositioned(d),
		Alias: (*Alias)(d),
	})
}
