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

type FunctionDeclaration struct {
	Access               Access
	IsStatic             bool
	IsMutating           bool
	Identifier           Identifier
	ParameterList        *ParameterList
	ReturnTypeAnnotation *TypeAnnotation
	FunctionBlock        *FunctionBlock
	DocString            string
	StartPos             Position `json:"-"`
}

var _ Element = &FunctionDeclaration{}
var _ Declaration = &FunctionDeclaration{}
var _ Statement = &FunctionDeclaration{}

func NewFunctionDeclaration(
	gauge common.MemoryGauge,
	access Access,
	isStatic bool,
	isMutating bool,
	identifier Identifier,
	parameterList *ParameterList,
	returnTypeAnnotation *TypeAnnotation,
	functionBlock *FunctionBlock,
	startPos Position,
	docString string,
) *FunctionDeclaration {
	common.UseMemory(gauge, common.FunctionDeclarationMemoryUsage)

	return &FunctionDeclaration{
		Access:               access,
		IsStatic:             isStatic,
		IsMutating:           isMutating,
		Identifier:           identifier,
		ParameterList:        parameterList,
		ReturnTypeAnnotation: returnTypeAnnotation,
		FunctionBlock:        functionBlock,
		StartPos:             startPos,
		DocString:            docString,
	}
}

func (*FunctionDeclaration) isDeclaration() {}

func (*FunctionDeclaration) isStatement() {}

func (*FunctionDeclaration) ElementType() ElementType {
	return ElementTypeFunctionDeclaration
}

func (d *FunctionDeclaration) StartPosition() Position {
	return d.StartPos
}

func (d *FunctionDeclaration) EndPosition(memoryGauge common.MemoryGauge) Position {
	if d.FunctionBlock != nil {
		return d.FunctionBlock.EndPosition(memoryGauge)
	}
	if d.ReturnTypeAnnotation != nil {
		return d.ReturnTypeAnnotation.EndPosition(memoryGauge)
	}
	return d.ParameterList.EndPosition(memoryGauge)
}

func (d *FunctionDeclaration) Walk(walkChild func(Element)) {
	// TODO: walk parameters
	// TODO: walk return type
	if d.FunctionBlock != nil {
		walkChild(d.FunctionBlock)
	}
}

func (d *FunctionDeclaration) DeclarationIdentifier() *Identifier {
	return &d.Identifier
}

func (d *FunctionDeclaration) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindFunction
}

func (d *FunctionDeclaration) DeclarationAccess() Access {
	return d.Access
}

func (d *FunctionDeclaration) DeclarationMembers() *Members {
	return nil
}

func (d *FunctionDeclaration) DeclarationDocString() string {
	return d.DocString
}

var functionFunKeywordSpaceDoc prettier.Doc = prettier.Text("fun ")
var functionStaticKeywordSpaceDoc prettier.Doc = prettier.Text("static ")
var functionMutatingKeywordSpaceDoc prettier.Doc = prettier.Text("mutating ")
var functionExpressionEmptyBlockDoc prettier.Doc = prettier.Text(" {}")
var typeSeparatorSpaceDoc prettier.Doc = prettier.Text(": ")

func FunctionDocument(
	access Access,
	isStatic bool,
	isMutating bool,
	includeKeyword bool,
	identifier string,
	parameterList *ParameterList,
	returnTypeAnnotation *TypeAnnotation,
	block *FunctionBlock,
) prettier.Doc {

	var signatureDoc prettier.Concat
	if parameterList != nil {
		signatureDoc = append(
			signatureDoc,
			parameterList.Doc(),
		)

		if returnTypeAnnotation != nil {
			signatureDoc = append(
				signatureDoc,
				typeSeparatorSpaceDoc,
				returnTypeAnnotation.Doc(),
			)
		}
	}

	var doc prettier.Concat

	if access != AccessNotSpecified {
		doc = append(
			doc,
			prettier.Text(access.Keyword()),
			prettier.Space,
		)
	}

	if isStatic {
		doc = append(
			doc,
			functionStaticKeywordSpaceDoc,
		)
	}

	if isMutating {
		doc = append(
			doc,
			functionMutatingKeywordSpaceDoc,
		)
	}

	if includeKeyword {
		doc = append(
			doc,
			functionFunKeywordSpaceDoc,
		)
	}

	if identifier != "" {
		doc = append(
			doc,
			prettier.Text(identifier),
		)
	}

	if signatureDoc != nil {
		doc = append(
			doc,
			prettier.Group{
				Doc: signatureDoc,
			},
		)
	}

	if block.IsEmpty() {
		return append(doc, functionExpressionEmptyBlockDoc)
	}

	return append(
		doc,
		prettier.Space,
		block.Doc(),
	)
}

func (d *FunctionDeclaration) Doc() prettier.Doc {
	return FunctionDocument(
		d.Access,
		d.IsStatic,
		d.IsMutating,
		true,
		d.Identifier.Identifier,
		d.ParameterList,
		d.ReturnTypeAnnotation,
		d.FunctionBlock,
	)
}

func (d *FunctionDeclaration) MarshalJSON() ([]byte, error) {
	type Alias FunctionDeclaration
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "FunctionDeclaration",
		Range: NewUnmeteredRangeFromPositioned(d),
		Alias: (*Alias)(d),
	})
}

// SpecialFunctionDeclaration is a special function declaration,
// e.g. an initializer
type SpecialFunctionDeclaration struct {
	Kind                common.DeclarationKind
	FunctionDeclaration *FunctionDeclaration
}

var _ Element = &SpecialFunctionDeclaration{}
var _ Declaration = &SpecialFunctionDeclaration{}

func NewSpecialFunctionDeclaration(
	gauge common.MemoryGauge,
	kind common.DeclarationKind,
	functionDeclaration *FunctionDeclaration,
) *SpecialFunctionDeclaration {
	common.UseMemory(gauge, common.SpecialFunctionDeclarationMemoryUsage)

	return &SpecialFunctionDeclaration{
		Kind:                kind,
		FunctionDeclaration: functionDeclaration,
	}
}

func (*SpecialFunctionDeclaration) isDeclaration() {}

func (*SpecialFunctionDeclaration) ElementType() ElementType {
	return ElementTypeSpecialFunctionDeclaration
}

func (d *SpecialFunctionDeclaration) StartPosition() Position {
	return d.FunctionDeclaration.StartPosition()
}

func (d *SpecialFunctionDeclaration) EndPosition(memoryGauge common.MemoryGauge) Position {
	return d.FunctionDeclaration.EndPosition(memoryGauge)
}

func (d *SpecialFunctionDeclaration) Walk(walkChild func(Element)) {
	d.FunctionDeclaration.Walk(walkChild)
}

func (d *SpecialFunctionDeclaration) DeclarationIdentifier() *Identifier {
	return d.FunctionDeclaration.DeclarationIdentifier()
}

func (d *SpecialFunctionDeclaration) DeclarationKind() common.DeclarationKind {
	return d.Kind
}

func (d *SpecialFunctionDeclaration) DeclarationAccess() Access {
	return d.FunctionDeclaration.DeclarationAccess()
}

func (d *SpecialFunctionDeclaration) DeclarationMembers() *Members {
	return d.FunctionDeclaration.DeclarationMembers()
}

func (d *SpecialFunctionDeclaration) DeclarationDocString() string {
	return d.FunctionDeclaration.DeclarationDocString()
}

func (d *SpecialFunctionDeclaration) Doc() prettier.Doc {
	return FunctionDocument(
		d.FunctionDeclaration.Access,
		d.FunctionDeclaration.IsStatic,
		d.FunctionDeclaration.IsMutating,
		false,
		d.Kind.Keywords(),
		d.FunctionDeclaration.ParameterList,
		d.FunctionDeclaration.ReturnTypeAnnotation,
		d.FunctionDeclaration.FunctionBlock,
	)
}

func (d *SpecialFunctionDeclaration) MarshalJSON() ([]byte, error) {
	type Alias SpecialFunctionDeclaration
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "SpecialFunctionDeclaration",
		Range: NewUnmeteredRangeFromPositioned(d),
		Alias: (*Alias)(d),
	})
}
