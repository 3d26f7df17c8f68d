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
	"fmt"
	"strings"

	"github.com/turbolent/prettier"

	"github.com/lumen-lang/lumen/common"
)

// TypeAnnotation

type TypeAnnotation struct {
	Type     Type     `json:"AnnotatedType"`
	StartPos Position `json:"-"`
}

var _ HasPosition = &TypeAnnotation{}

func NewTypeAnnotation(
	memoryGauge common.MemoryGauge,
	ty Type,
	startPos Position,
) *TypeAnnotation {
	common.UseMemory(memoryGauge, common.TypeAnnotationMemoryUsage)

	return &TypeAnnotation{
		Type:     ty,
		StartPos: startPos,
	}
}

func (t *TypeAnnotation) String() string {
	return fmt.Sprint(t.Type)
}

func (t *TypeAnnotation) StartPosition() Position {
	return t.StartPos
}

func (t *TypeAnnotation) EndPosition(memoryGauge common.MemoryGauge) Position {
	return t.Type.EndPosition(memoryGauge)
}

func (t *TypeAnnotation) Doc() prettier.Doc {
	return t.Type.Doc()
}

func (t *TypeAnnotation) MarshalJSON() ([]byte, error) {
	type Alias TypeAnnotation
	return json.Marshal(&struct {
		Range
		*Alias
	}{
		Range: NewUnmeteredRangeFromPositioned(t),
		Alias: (*Alias)(t),
	})
}

// Type

type Type interface {
	HasPosition
	fmt.Stringer
	isType()
	Doc() prettier.Doc
}

// NominalType represents a named type, e.g. the name of a structure or protocol

type NominalType struct {
	Identifier Identifier
	// NestedIdentifiers are the identifiers of nested types,
	// e.g. `T.U` has the nested identifier `U`
	NestedIdentifiers []Identifier `json:",omitempty"`
}

var _ Type = &NominalType{}

func NewNominalType(
	memoryGauge common.MemoryGauge,
	identifier Identifier,
	nestedIdentifiers []Identifier,
) *NominalType {
	common.UseMemory(memoryGauge, common.TypeAnnotationMemoryUsage)
	return &NominalType{
		Identifier:        identifier,
		NestedIdentifiers: nestedIdentifiers,
	}
}

func (*NominalType) isType() {}

func (t *NominalType) String() string {
	var sb strings.Builder
	sb.WriteString(t.Identifier.String())
	for _, identifier := range t.NestedIdentifiers {
		sb.WriteRune('.')
		sb.WriteString(identifier.String())
	}
	return sb.String()
}

func (t *NominalType) StartPosition() Position {
	return t.Identifier.StartPosition()
}

func (t *NominalType) EndPosition(memoryGauge common.MemoryGauge) Position {
	nestedCount := len(t.NestedIdentifiers)
	if nestedCount == 0 {
		return t.Identifier.EndPosition(memoryGauge)
	}
	lastIdentifier := t.NestedIdentifiers[nestedCount-1]
	return lastIdentifier.EndPosition(memoryGauge)
}

func (t *NominalType) Doc() prettier.Doc {
	return prettier.Text(t.String())
}

func (t *NominalType) MarshalJSON() ([]byte, error) {
	type Alias NominalType
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "NominalType",
		Range: NewUnmeteredRangeFromPositioned(t),
		Alias: (*Alias)(t),
	})
}

// DictionaryType

type DictionaryType struct {
	KeyType   Type
	ValueType Type
	Range
}

var _ Type = &DictionaryType{}

func NewDictionaryType(
	memoryGauge common.MemoryGauge,
	keyType, valueType Type,
	astRange Range,
) *DictionaryType {
	common.UseMemory(memoryGauge, common.TypeAnnotationMemoryUsage)
	return &DictionaryType{
		KeyType:   keyType,
		ValueType: valueType,
		Range:     astRange,
	}
}

func (*DictionaryType) isType() {}

func (t *DictionaryType) String() string {
	return fmt.Sprintf("{%s: %s}", t.KeyType, t.ValueType)
}

const dictionaryTypeSeparatorDoc = prettier.Text(": ")

func (t *DictionaryType) Doc() prettier.Doc {
	return prettier.Concat{
		prettier.Text("{"),
		t.KeyType.Doc(),
		dictionaryTypeSeparatorDoc,
		t.ValueType.Doc(),
		prettier.Text("}"),
	}
}

func (t *DictionaryType) MarshalJSON() ([]byte, error) {
	type Alias DictionaryType
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "DictionaryType",
		Range: t.Range,
		Alias: (*Alias)(t),
	})
}
