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

// CompositeDeclaration

type CompositeDeclaration struct {
	Access        Access
	CompositeKind common.CompositeKind
	// IsSynthesized is true for compiler-generated declarations,
	// e.g. the anonymous structure produced by closure lowering
	IsSynthesized bool
	Identifier    Identifier
	Conformances  []*NominalType
	Members       *Members
	DocString     string
	Range
}

var _ Element = &CompositeDeclaration{}
var _ Declaration = &CompositeDeclaration{}

func NewCompositeDeclaration(
	memoryGauge common.MemoryGauge,
	access Access,
	compositeKind common.CompositeKind,
	identifier Identifier,
	conformances []*NominalType,
	members *Members,
	docString string,
	declarationRange Range,
) *CompositeDeclaration {
	common.UseMemory(memoryGauge, common.CompositeDeclarationMemoryUsage)

	return &CompositeDeclaration{
		Access:        access,
		CompositeKind: compositeKind,
		Identifier:    identifier,
		Conformances:  conformances,
		Members:       members,
		DocString:     docString,
		Range:         declarationRange,
	}
}

func (*CompositeDeclaration) isDeclaration() {}

func (*CompositeDeclaration) ElementType() ElementType {
	return ElementTypeCompositeDeclaration
}

func (d *CompositeDeclaration) Walk(walkChild func(Element)) {
	walkDeclarations(walkChild, d.Members.Declarations)
}

func (d *CompositeDeclaration) DeclarationIdentifier() *Identifier {
	return &d.Identifier
}

func (d *CompositeDeclaration) DeclarationKind() common.DeclarationKind {
	return d.CompositeKind.DeclarationKind()
}

func (d *CompositeDeclaration) DeclarationAccess() Access {
	return d.Access
}

func (d *CompositeDeclaration) DeclarationMembers() *Members {
	return d.Members
}

func (d *CompositeDeclaration) DeclarationDocString() string {
	return d.DocString
}

var compositeConformancesSeparatorDoc prettier.Doc = prettier.Text(":")
var compositeConformanceSeparatorDoc prettier.Doc = prettier.Concat{
	prettier.Text(","),
	prettier.Line{},
}

func (d *CompositeDeclaration) Doc() prettier.Doc {
	var doc prettier.Concat

	if d.Access != AccessNotSpecified {
		doc = append(
			doc,
			prettier.Text(d.Access.Keyword()),
			prettier.Space,
		)
	}

	doc = append(
		doc,
		prettier.Text(d.CompositeKind.Keyword()),
		prettier.Space,
		prettier.Text(d.Identifier.Identifier),
	)

	if len(d.Conformances) > 0 {

		conformancesDoc := prettier.Concat{
			prettier.Line{},
		}

		for i, conformance := range d.Conformances {
			if i > 0 {
				conformancesDoc = append(
					conformancesDoc,
					compositeConformanceSeparatorDoc,
				)
			}
			conformancesDoc = append(
				conformancesDoc,
				conformance.Doc(),
			)
		}

		conformancesDoc = append(
			conformancesDoc,
			prettier.Dedent{
				Doc: prettier.Concat{
					prettier.Line{},
					d.Members.Doc(),
				},
			},
		)

		doc = append(
			doc,
			compositeConformancesSeparatorDoc,
			prettier.Group{
				Doc: prettier.Indent{
					Doc: conformancesDoc,
				},
			},
		)

	} else {
		doc = append(
			doc,
			prettier.Space,
			d.Members.Doc(),
		)
	}

	return doc
}

func (d *CompositeDeclaration) MarshalJSON() ([]byte, error) {
	type Alias CompositeDeclaration
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "CompositeDeclaration",
		Alias: (*Alias)(d),
	})
}

// FieldDeclaration

type FieldDeclaration struct {
	Access         Access
	VariableKind   VariableKind
	Attributes     []*Attribute `json:",omitempty"`
	Identifier     Identifier
	TypeAnnotation *TypeAnnotation
	DocString      string
	Range
}

var _ Element = &FieldDeclaration{}
var _ Declaration = &FieldDeclaration{}

func NewFieldDeclaration(
	memoryGauge common.MemoryGauge,
	access Access,
	variableKind VariableKind,
	attributes []*Attribute,
	identifier Identifier,
	typeAnnotation *TypeAnnotation,
	docString string,
	declRange Range,
) *FieldDeclaration {
	common.UseMemory(memoryGauge, common.FieldDeclarationMemoryUsage)

	return &FieldDeclaration{
		Access:         access,
		VariableKind:   variableKind,
		Attributes:     attributes,
		Identifier:     identifier,
		TypeAnnotation: typeAnnotation,
		DocString:      docString,
		Range:          declRange,
	}
}

func (*FieldDeclaration) isDeclaration() {}

func (*FieldDeclaration) ElementType() ElementType {
	return ElementTypeFieldDeclaration
}

func (d *FieldDeclaration) Walk(_ func(Element)) {
	// NO-OP
	// TODO: walk type
}

func (d *FieldDeclaration) DeclarationIdentifier() *Identifier {
	return &d.Identifier
}

func (d *FieldDeclaration) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindField
}

func (d *FieldDeclaration) DeclarationAccess() Access {
	return d.Access
}

func (d *FieldDeclaration) DeclarationMembers() *Members {
	return nil
}

func (d *FieldDeclaration) DeclarationDocString() string {
	return d.DocString
}

func (d *FieldDeclaration) Doc() prettier.Doc {
	var doc prettier.Concat

	for _, attribute := range d.Attributes {
		doc = append(
			doc,
			attribute.Doc(),
			prettier.HardLine{},
		)
	}

	if d.Access != AccessNotSpecified {
		doc = append(
			doc,
			prettier.Text(d.Access.Keyword()),
			prettier.Space,
		)
	}

	keyword := d.VariableKind.Keyword()
	if keyword != "" {
		doc = append(
			doc,
			prettier.Text(keyword),
			prettier.Space,
		)
	}

	doc = append(
		doc,
		prettier.Text(d.Identifier.Identifier),
		typeSeparatorSpaceDoc,
		d.TypeAnnotation.Doc(),
	)

	return doc
}

func (d *FieldDeclaration) MarshalJSON() ([]byte, error) {
	type Alias FieldDeclaration
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "FieldDeclaration",
		Alias: (*Alias)(d),
	})
}
