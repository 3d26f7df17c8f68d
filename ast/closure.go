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
	"github.com/lumen-lang/lumen/errors"
)

// ClosureBodyKind is the syntactic shape of a closure literal's body.
// The four-way distinction is part of the surface syntax:
// the parser preserves it bit-for-bit, and the lowering's
// applicability resolution depends on it.
type ClosureBodyKind uint

const (
	ClosureBodyKindNone ClosureBodyKind = iota
	ClosureBodyKindStatements
	ClosureBodyKindAccessors
	ClosureBodyKindDeclarations
)

func (k ClosureBodyKind) Name() string {
	switch k {
	case ClosureBodyKindNone:
		return "none"
	case ClosureBodyKindStatements:
		return "statement body"
	case ClosureBodyKindAccessors:
		return "get/set accessor body"
	case ClosureBodyKindDeclarations:
		return "multi-declaration body"
	}

	panic(errors.NewUnreachableError())
}

func (k ClosureBodyKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k ClosureBodyKind) String() string {
	switch k {
	case ClosureBodyKindNone:
		return "ClosureBodyKindNone"
	case ClosureBodyKindStatements:
		return "ClosureBodyKindStatements"
	case ClosureBodyKindAccessors:
		return "ClosureBodyKindAccessors"
	case ClosureBodyKindDeclarations:
		return "ClosureBodyKindDeclarations"
	}

	panic(errors.NewUnreachableError())
}

// ClosureBody

type ClosureBody interface {
	HasPosition
	isClosureBody()
	Kind() ClosureBodyKind
	Doc() prettier.Doc
}

// StatementsBody is a closure body consisting of a statement block

type StatementsBody struct {
	Block *Block
}

var _ ClosureBody = &StatementsBody{}

func NewStatementsBody(memoryGauge common.MemoryGauge, block *Block) *StatementsBody {
	common.UseMemory(memoryGauge, common.BlockMemoryUsage)
	return &StatementsBody{
		Block: block,
	}
}

func (*StatementsBody) isClosureBody() {}

func (*StatementsBody) Kind() ClosureBodyKind {
	return ClosureBodyKindStatements
}

func (b *StatementsBody) StartPosition() Position {
	return b.Block.StartPos
}

func (b *StatementsBody) EndPosition(common.MemoryGauge) Position {
	return b.Block.EndPos
}

func (b *StatementsBody) Doc() prettier.Doc {
	return StatementsDoc(b.Block.Statements)
}

func (b *StatementsBody) MarshalJSON() ([]byte, error) {
	type Alias StatementsBody
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "StatementsBody",
		Alias: (*Alias)(b),
	})
}

// AccessorsBody is a closure body consisting of a get/set accessor pair

type AccessorsBody struct {
	Accessors *Accessors
}

var _ ClosureBody = &AccessorsBody{}

func NewAccessorsBody(memoryGauge common.MemoryGauge, accessors *Accessors) *AccessorsBody {
	common.UseMemory(memoryGauge, common.BlockMemoryUsage)
	return &AccessorsBody{
		Accessors: accessors,
	}
}

func (*AccessorsBody) isClosureBody() {}

func (*AccessorsBody) Kind() ClosureBodyKind {
	return ClosureBodyKindAccessors
}

func (b *AccessorsBody) StartPosition() Position {
	return b.Accessors.StartPos
}

func (b *AccessorsBody) EndPosition(common.MemoryGauge) Position {
	return b.Accessors.EndPos
}

func (b *AccessorsBody) Doc() prettier.Doc {
	return b.Accessors.Doc()
}

func (b *AccessorsBody) MarshalJSON() ([]byte, error) {
	type Alias AccessorsBody
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "AccessorsBody",
		Alias: (*Alias)(b),
	})
}

// DeclarationsBody is a struct-style multi-declaration closure body.
// The literal explicitly opts into fulfilling multiple requirements
// by using this form.

type DeclarationsBody struct {
	Declarations []Declaration
	Range
}

var _ ClosureBody = &DeclarationsBody{}

func NewDeclarationsBody(
	memoryGauge common.MemoryGauge,
	declarations []Declaration,
	astRange Range,
) *DeclarationsBody {
	common.UseMemory(memoryGauge, common.BlockMemoryUsage)
	return &DeclarationsBody{
		Declarations: declarations,
		Range:        astRange,
	}
}

func (*DeclarationsBody) isClosureBody() {}

func (*DeclarationsBody) Kind() ClosureBodyKind {
	return ClosureBodyKindDeclarations
}

func (b *DeclarationsBody) Doc() prettier.Doc {
	var doc prettier.Concat
	for _, declaration := range b.Declarations {
		doc = append(
			doc,
			prettier.HardLine{},
			declaration.Doc(),
		)
	}
	return doc
}

func (b *DeclarationsBody) MarshalJSON() ([]byte, error) {
	type Alias DeclarationsBody
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "DeclarationsBody",
		Alias: (*Alias)(b),
	})
}

// CaptureItem is one item of a closure literal's capture list:
// `name`, `name = expr`, or `var name = expr`,
// optionally preceded by attributes.
//
// A `&` by-reference marker is representable so the parser can
// preserve it, but it is always rejected during lowering:
// captures copy values, they never alias the enclosing scope.
type CaptureItem struct {
	Attributes   []*Attribute `json:",omitempty"`
	VariableKind VariableKind
	ByReference  bool
	Identifier   Identifier
	// InitializerExpression is nil for the shorthand form `name`,
	// which is sugar for `name = name`
	InitializerExpression Expression `json:",omitempty"`
	StartPos              Position   `json:"-"`
}

var _ HasPosition = &CaptureItem{}

func NewCaptureItem(
	memoryGauge common.MemoryGauge,
	attributes []*Attribute,
	variableKind VariableKind,
	byReference bool,
	identifier Identifier,
	initializerExpression Expression,
	startPos Position,
) *CaptureItem {
	common.UseMemory(memoryGauge, common.CaptureItemMemoryUsage)
	return &CaptureItem{
		Attributes:            attributes,
		VariableKind:          variableKind,
		ByReference:           byReference,
		Identifier:            identifier,
		InitializerExpression: initializerExpression,
		StartPos:              startPos,
	}
}

func (c *CaptureItem) StartPosition() Position {
	return c.StartPos
}

func (c *CaptureItem) EndPosition(memoryGauge common.MemoryGauge) Position {
	if c.InitializerExpression != nil {
		return c.InitializerExpression.EndPosition(memoryGauge)
	}
	return c.Identifier.EndPosition(memoryGauge)
}

var captureItemVarKeywordSpaceDoc prettier.Doc = prettier.Text("var ")
var captureItemByReferenceDoc prettier.Doc = prettier.Text("&")

func (c *CaptureItem) Doc() prettier.Doc {
	var doc prettier.Concat

	for _, attribute := range c.Attributes {
		doc = append(
			doc,
			attribute.Doc(),
			prettier.Space,
		)
	}

	if c.VariableKind == VariableKindVariable {
		doc = append(doc, captureItemVarKeywordSpaceDoc)
	}

	if c.ByReference {
		doc = append(doc, captureItemByReferenceDoc)
	}

	doc = append(
		doc,
		prettier.Text(c.Identifier.Identifier),
	)

	if c.InitializerExpression != nil {
		doc = append(
			doc,
			assignmentStatementEqualsSpaceDoc,
			c.InitializerExpression.Doc(),
		)
	}

	return doc
}

func (c *CaptureItem) MarshalJSON() ([]byte, error) {
	type Alias CaptureItem
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "CaptureItem",
		Range: NewUnmeteredRangeFromPositioned(c),
		Alias: (*Alias)(c),
	})
}

// ClosureLiteralExpression is a closure literal,
// e.g. `{ [expected] x in x == expected }`.
//
// When the literal appears in a type context expecting a protocol value,
// the lowering may replace it with the construction
// of a synthesized anonymous structure.
type ClosureLiteralExpression struct {
	CaptureList          []*CaptureItem `json:",omitempty"`
	ParameterList        *ParameterList `json:",omitempty"`
	ReturnTypeAnnotation *TypeAnnotation `json:",omitempty"`
	Body                 ClosureBody    `json:",omitempty"`
	Range
}

var _ Expression = &ClosureLiteralExpression{}

func NewClosureLiteralExpression(
	gauge common.MemoryGauge,
	captureList []*CaptureItem,
	parameterList *ParameterList,
	returnTypeAnnotation *TypeAnnotation,
	body ClosureBody,
	exprRange Range,
) *ClosureLiteralExpression {
	common.UseMemory(gauge, common.ClosureLiteralExpressionMemoryUsage)

	return &ClosureLiteralExpression{
		CaptureList:          captureList,
		ParameterList:        parameterList,
		ReturnTypeAnnotation: returnTypeAnnotation,
		Body:                 body,
		Range:                exprRange,
	}
}

func (*ClosureLiteralExpression) isExpression() {}

func (*ClosureLiteralExpression) ElementType() ElementType {
	return ElementTypeClosureLiteralExpression
}

func (e *ClosureLiteralExpression) BodyKind() ClosureBodyKind {
	if e.Body == nil {
		return ClosureBodyKindNone
	}
	return e.Body.Kind()
}

func (e *ClosureLiteralExpression) Walk(walkChild func(Element)) {
	for _, captureItem := range e.CaptureList {
		if captureItem.InitializerExpression != nil {
			walkChild(captureItem.InitializerExpression)
		}
	}

	switch body := e.Body.(type) {
	case *StatementsBody:
		walkChild(body.Block)
	case *AccessorsBody:
		if body.Accessors.Get != nil {
			walkChild(body.Accessors.Get)
		}
		if body.Accessors.Set != nil {
			walkChild(body.Accessors.Set)
		}
	case *DeclarationsBody:
		walkDeclarations(walkChild, body.Declarations)
	}
}

var closureCaptureSeparatorDoc prettier.Doc = prettier.Concat{
	prettier.Text(","),
	prettier.Line{},
}
var closureInKeywordDoc prettier.Doc = prettier.Text(" in")

func (e *ClosureLiteralExpression) Doc() prettier.Doc {
	var headerDoc prettier.Concat

	if len(e.CaptureList) > 0 {
		captureDocs := make([]prettier.Doc, 0, len(e.CaptureList))
		for _, captureItem := range e.CaptureList {
			captureDocs = append(captureDocs, captureItem.Doc())
		}
		headerDoc = append(
			headerDoc,
			prettier.WrapBrackets(
				prettier.Join(closureCaptureSeparatorDoc, captureDocs...),
				prettier.SoftLine{},
			),
		)
	}

	if e.ParameterList != nil {
		if headerDoc != nil {
			headerDoc = append(headerDoc, prettier.Space)
		}
		headerDoc = append(headerDoc, e.ParameterList.Doc())

		if e.ReturnTypeAnnotation != nil {
			headerDoc = append(
				headerDoc,
				typeSeparatorSpaceDoc,
				e.ReturnTypeAnnotation.Doc(),
			)
		}
	}

	var doc prettier.Concat

	doc = append(doc, blockStartDoc)

	var innerDoc prettier.Concat

	if headerDoc != nil {
		innerDoc = append(
			innerDoc,
			prettier.Space,
			headerDoc,
		)
		if e.Body != nil {
			innerDoc = append(innerDoc, closureInKeywordDoc)
		}
	}

	if e.Body != nil {
		innerDoc = append(
			innerDoc,
			prettier.Indent{
				Doc: e.Body.Doc(),
			},
			prettier.HardLine{},
		)
	} else {
		innerDoc = append(innerDoc, prettier.Space)
	}

	doc = append(doc, innerDoc, blockEndDoc)

	return doc
}

func (e *ClosureLiteralExpression) String() string {
	return Prettier(e)
}

func (e *ClosureLiteralExpression) MarshalJSON() ([]byte, error) {
	type Alias ClosureLiteralExpression
	return json.Marshal(&struct {
		Type     string
		BodyKind ClosureBodyKind
		*Alias
	}{
		Type:     "ClosureLiteralExpression",
		BodyKind: e.BodyKind(),
		Alias:    (*Alias)(e),
	})
}
