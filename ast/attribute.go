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

// Attribute is an annotation attached to a declaration or capture item,
// e.g. `@Clamped`. Attributes are carried verbatim through lowering:
// an attribute on a capture item ends up on the synthesized field.
type Attribute struct {
	Identifier Identifier
	Arguments  []*Argument
	StartPos   Position `json:"-"`
}

var _ HasPosition = &Attribute{}

func NewAttribute(
	memoryGauge common.MemoryGauge,
	identifier Identifier,
	arguments []*Argument,
	startPos Position,
) *Attribute {
	common.UseMemory(memoryGauge, common.AttributeMemoryUsage)
	return &Attribute{
		Identifier: identifier,
		Arguments:  arguments,
		StartPos:   startPos,
	}
}

func (a *Attribute) StartPosition() Position {
	return a.StartPos
}

func (a *Attribute) EndPosition(memoryGauge common.MemoryGauge) Position {
	count := len(a.Arguments)
	if count > 0 {
		return a.Arguments[count-1].EndPosition(memoryGauge)
	}
	return a.Identifier.EndPosition(memoryGauge)
}

const attributeAtSymbolDoc = prettier.Text("@")

func (a *Attribute) Doc() prettier.Doc {
	doc := prettier.Concat{
		attributeAtSymbolDoc,
		prettier.Text(a.Identifier.Identifier),
	}

	if len(a.Arguments) > 0 {
		argumentDocs := make([]prettier.Doc, 0, len(a.Arguments))
		for _, argument := range a.Arguments {
			argumentDocs = append(argumentDocs, argument.Doc())
		}
		doc = append(
			doc,
			prettier.WrapParentheses(
				prettier.Join(argumentSeparatorDoc, argumentDocs...),
				prettier.SoftLine{},
			),
		)
	}

	return doc
}

func (a *Attribute) MarshalJSON() ([]byte, error) {
	type Alias Attribute
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "Attribute",
		Range: NewUnmeteredRangeFromPositioned(a),
		Alias: (*Alias)(a),
	})
}
