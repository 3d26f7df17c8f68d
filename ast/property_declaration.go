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

// Accessors is a get/set accessor pair of a computed property or subscript.
// The setter is optional: a read-only member only declares a getter.
type Accessors struct {
	Get *FunctionBlock
	Set *FunctionBlock `json:",omitempty"`
	Range
}

var _ HasPosition = &Accessors{}

func (a *Accessors) IsReadOnly() bool {
	return a.Set == nil
}

var accessorsGetKeywordSpaceDoc prettier.Doc = prettier.Text("get ")
var accessorsSetKeywordSpaceDoc prettier.Doc = prettier.Text("set ")

func (a *Accessors) Doc() prettier.Doc {
	var accessorsDoc prettier.Concat

	accessorsDoc = append(
		accessorsDoc,
		prettier.HardLine{},
		prettier.Concat{
			accessorsGetKeywordSpaceDoc,
			a.Get.Doc(),
		},
	)

	if a.Set != nil {
		accessorsDoc = append(
			accessorsDoc,
			prettier.HardLine{},
			prettier.Concat{
				accessorsSetKeywordSpaceDoc,
				a.Set.Doc(),
			},
		)
	}

	return prettier.Concat{
		blockStartDoc,
		prettier.Indent{
			Doc: accessorsDoc,
		},
		prettier.HardLine{},
		blockEndDoc,
	}
}

// PropertyDeclaration is a computed property member of a composite declaration.
// Stored properties are field declarations; a synthesized structure only ever
// stores captures.
type PropertyDeclaration struct {
	Access         Access
	IsStatic       bool
	Identifier     Identifier
	TypeAnnotation *TypeAnnotation
	Accessors      *Accessors
	DocString      string
	StartPos       Position `json:"-"`
}

var _ Element = &PropertyDeclaration{}
var _ Declaration = &PropertyDeclaration{}

func NewPropertyDeclaration(
	gauge common.MemoryGauge,
	access Access,
	isStatic bool,
	identifier Identifier,
	typeAnnotation *TypeAnnotation,
	accessors *Accessors,
	docString string,
	startPos Position,
) *PropertyDeclaration {
	common.UseMemory(gauge, common.PropertyDeclarationMemoryUsage)

	return &PropertyDeclaration{
		Access:         access,
		IsStatic:       isStatic,
		Identifier:     identifier,
		TypeAnnotation: typeAnnotation,
		Accessors:      accessors,
		DocString:      docString,
		StartPos:       startPos,
	}
}

func (*PropertyDeclaration) isDeclaration() {}

func (*PropertyDeclaration) ElementType() ElementType {
	return ElementTypePropertyDeclaration
}

func (d *PropertyDeclaration) StartPosition() Position {
	return d.StartPos
}

func (d *PropertyDeclaration) EndPosition(memoryGauge common.MemoryGauge) Position {
	if d.Accessors != nil {
		return d.Accessors.EndPosition(memoryGauge)
	}
	return d.TypeAnnotation.EndPosition(memoryGauge)
}

func (d *PropertyDeclaration) Walk(walkChild func(Element)) {
	if d.Accessors == nil {
		return
	}
	if d.Accessors.Get != nil {
		walkChild(d.Accessors.Get)
	}
	if d.Accessors.Set != nil {
		walkChild(d.Accessors.Set)
	}
}

func (d *PropertyDeclaration) DeclarationIdentifier() *Identifier {
	return &d.Identifier
}

func (d *PropertyDeclaration) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindProperty
}

func (d *PropertyDeclaration) DeclarationAccess() Access {
	return d.Access
}

func (d *PropertyDeclaration) DeclarationMembers() *Members {
	return nil
}

func (d *PropertyDeclaration) DeclarationDocString() string {
	return d.DocString
}

var propertyVarKeywordSpaceDoc prettier.Doc = prettier.Text("var ")

func (d *PropertyDeclaration) Doc() prettier.Doc {
	var doc prettier.Concat

	if d.Access != AccessNotSpecified {
		doc = append(
			doc,
			prettier.Text(d.Access.Keyword()),
			prettier.Space,
		)
	}

	if d.IsStatic {
		doc = append(
			doc,
			functionStaticKeywordSpaceDoc,
		)
	}

	doc = append(
		doc,
		propertyVarKeywordSpaceDoc,
		prettier.Text(d.Identifier.Identifier),
		typeSeparatorSpaceDoc,
		d.TypeAnnotation.Doc(),
	)

	if d.Accessors != nil {
		doc = append(
			doc,
			prettier.Space,
			d.Accessors.Doc(),
		)
	}

	return doc
}

func (d *PropertyDeclaration) MarshalJSON() ([]byte, error) {
	type Alias PropertyDeclaration
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "PropertyDeclaration",
		Range: NewUnmeteredRangeFromPositioned(d),
		Alias: (*Alias)(d),
	})
}

// SubscriptDeclaration is a subscript member of a composite declaration,
// e.g. `subscript(key: String): Int { get { … } set { … } }`

type SubscriptDeclaration struct {
	Access         Access
	Identifier     Identifier
	ParameterList  *ParameterList
	TypeAnnotation *TypeAnnotation
	Accessors      *Accessors
	DocString      string
	StartPos       Position `json:"-"`
}

var _ Element = &SubscriptDeclaration{}
var _ Declaration = &SubscriptDeclaration{}

func NewSubscriptDeclaration(
	gauge common.MemoryGauge,
	access Access,
	identifier Identifier,
	parameterList *ParameterList,
	typeAnnotation *TypeAnnotation,
	accessors *Accessors,
	docString string,
	startPos Position,
) *SubscriptDeclaration {
	common.UseMemory(gauge, common.SubscriptDeclarationMemoryUsage)

	return &SubscriptDeclaration{
		Access:         access,
		Identifier:     identifier,
		ParameterList:  parameterList,
		TypeAnnotation: typeAnnotation,
		Accessors:      accessors,
		DocString:      docString,
		StartPos:       startPos,
	}
}

func (*SubscriptDeclaration) isDeclaration() {}

func (*SubscriptDeclaration) ElementType() ElementType {
	return ElementTypeSubscriptDeclaration
}

func (d *SubscriptDeclaration) StartPosition() Position {
	return d.StartPos
}

func (d *SubscriptDeclaration) EndPosition(memoryGauge common.MemoryGauge) Position {
	if d.Accessors != nil {
		return d.Accessors.EndPosition(memoryGauge)
	}
	return d.TypeAnnotation.EndPosition(memoryGauge)
}

func (d *SubscriptDeclaration) Walk(walkChild func(Element)) {
	if d.Accessors == nil {
		return
	}
	if d.Accessors.Get != nil {
		walkChild(d.Accessors.Get)
	}
	if d.Accessors.Set != nil {
		walkChild(d.Accessors.Set)
	}
}

func (d *SubscriptDeclaration) DeclarationIdentifier() *Identifier {
	return &d.Identifier
}

func (d *SubscriptDeclaration) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindSubscript
}

func (d *SubscriptDeclaration) DeclarationAccess() Access {
	return d.Access
}

func (d *SubscriptDeclaration) DeclarationMembers() *Members {
	return nil
}

func (d *SubscriptDeclaration) DeclarationDocString() string {
	return d.DocString
}

var subscriptKeywordDoc prettier.Doc = prettier.Text("subscript")

func (d *SubscriptDeclaration) Doc() prettier.Doc {
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
		subscriptKeywordDoc,
		d.ParameterList.Doc(),
		typeSeparatorSpaceDoc,
		d.TypeAnnotation.Doc(),
	)

	if d.Accessors != nil {
		doc = append(
			doc,
			prettier.Space,
			d.Accessors.Doc(),
		)
	}

	return doc
}

func (d *SubscriptDeclaration) MarshalJSON() ([]byte, error) {
	type Alias SubscriptDeclaration
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "SubscriptDeclaration",
		Range: NewUnmeteredRangeFromPositioned(d),
		Alias: (*Alias)(d),
	})
}
