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

type Parameter struct {
	Label          string
	Identifier     Identifier
	TypeAnnotation *TypeAnnotation
	StartPos       Position `json:"-"`
}

var _ HasPosition = &Parameter{}

func NewParameter(
	gauge common.MemoryGauge,
	label string,
	identifier Identifier,
	typeAnnotation *TypeAnnotation,
	startPos Position,
) *Parameter {
	common.UseMemory(gauge, common.ParameterMemoryUsage)
	return &Parameter{
		Label:          label,
		Identifier:     identifier,
		TypeAnnotation: typeAnnotation,
		StartPos:       startPos,
	}
}

// EffectiveArgumentLabel returns the effective argument label that
// an argument in a call must use:
// If no argument label is declared for parameter,
// the parameter name is used as the argument label
func (p *Parameter) EffectiveArgumentLabel() string {
	if p.Label != "" {
		return p.Label
	}
	return p.Identifier.Identifier
}

func (p *Parameter) StartPosition() Position {
	return p.StartPos
}

func (p *Parameter) EndPosition(memoryGauge common.MemoryGauge) Position {
	if p.TypeAnnotation != nil {
		return p.TypeAnnotation.EndPosition(memoryGauge)
	}
	return p.Identifier.EndPosition(memoryGauge)
}

const parameterTypeSeparatorDoc = prettier.Text(": ")

func (p *Parameter) Doc() prettier.Doc {
	var doc prettier.Concat

	if p.Label != "" {
		doc = append(
			doc,
			prettier.Text(p.Label),
			prettier.Space,
		)
	}

	doc = append(
		doc,
		prettier.Text(p.Identifier.Identifier),
	)

	if p.TypeAnnotation != nil {
		doc = append(
			doc,
			parameterTypeSeparatorDoc,
			p.TypeAnnotation.Doc(),
		)
	}

	return doc
}

func (p *Parameter) MarshalJSON() ([]byte, error) {
	type Alias Parameter
	return json.Marshal(&struct {
		Range
		*Alias
	}{
		Range: NewUnmeteredRangeFromPositioned(p),
		Alias: (*Alias)(p),
	})
}

// ParameterList

type ParameterList struct {
	Parameters []*Parameter
	Range
	// Use `ParametersByIdentifier()` instead
	_parametersByIdentifier map[string]*Parameter
}

func NewParameterList(
	gauge common.MemoryGauge,
	parameters []*Parameter,
	astRange Range,
) *ParameterList {
	common.UseMemory(gauge, common.ParameterListMemoryUsage)
	return &ParameterList{
		Parameters: parameters,
		Range:      astRange,
	}
}

func (l *ParameterList) ParametersByIdentifier() map[string]*Parameter {
	parametersByIdentifier := l._parametersByIdentifier
	if parametersByIdentifier == nil {
		parametersByIdentifier = make(map[string]*Parameter, len(l.Parameters))
		for _, parameter := range l.Parameters {
			parametersByIdentifier[parameter.Identifier.Identifier] = parameter
		}
		l._parametersByIdentifier = parametersByIdentifier
	}
	return parametersByIdentifier
}

func (l *ParameterList) IsEmpty() bool {
	return l == nil || len(l.Parameters) == 0
}

var parameterSeparatorDoc prettier.Doc = prettier.Concat{
	prettier.Text(","),
	prettier.Line{},
}

func (l *ParameterList) Doc() prettier.Doc {
	if l.IsEmpty() {
		return prettier.Text("()")
	}

	parameterDocs := make([]prettier.Doc, 0, len(l.Parameters))
	for _, parameter := range l.Parameters {
		parameterDocs = append(parameterDocs, parameter.Doc())
	}

	return prettier.WrapParentheses(
		prettier.Join(parameterSeparatorDoc, parameterDocs...),
		prettier.SoftLine{},
	)
}

func (l *ParameterList) MarshalJSON() ([]byte, error) {
	type Alias ParameterList
	return json.Marshal(&struct {
		Range
		*Alias
	}{
		Range: l.Range,
		Alias: (*Alias)(l),
	})
}
