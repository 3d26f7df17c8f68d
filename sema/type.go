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
	"fmt"
	"strings"
	"sync"

	"github.com/lumen-lang/lumen/ast"
	"github.com/lumen-lang/lumen/common"
	"github.com/lumen-lang/lumen/common/orderedmap"
)

// TypeID is a type's globally unique identifier,
// e.g. `S.test.Predicate`
type TypeID string

type Type interface {
	fmt.Stringer
	IsType()
	ID() TypeID
	Equal(other Type) bool
}

// SimpleType

// SimpleType represents a non-composite type, e.g. `Int`
type SimpleType struct {
	Name   string
	TypeID TypeID
}

var _ Type = &SimpleType{}

func (*SimpleType) IsType() {}

func (t *SimpleType) String() string {
	return t.Name
}

func (t *SimpleType) ID() TypeID {
	return t.TypeID
}

func (t *SimpleType) Equal(other Type) bool {
	otherSimple, ok := other.(*SimpleType)
	if !ok {
		return false
	}
	return otherSimple.TypeID == t.TypeID
}

var VoidType = &SimpleType{
	Name:   "Void",
	TypeID: "Void",
}

var BoolType = &SimpleType{
	Name:   "Bool",
	TypeID: "Bool",
}

var IntType = &SimpleType{
	Name:   "Int",
	TypeID: "Int",
}

var StringType = &SimpleType{
	Name:   "String",
	TypeID: "String",
}

var AnyStructType = &SimpleType{
	Name:   "AnyStruct",
	TypeID: "AnyStruct",
}

// DictionaryType

type DictionaryType struct {
	KeyType   Type
	ValueType Type
}

var _ Type = &DictionaryType{}

func (*DictionaryType) IsType() {}

func (t *DictionaryType) String() string {
	return fmt.Sprintf(
		"[%s: %s]",
		t.KeyType,
		t.ValueType,
	)
}

func (t *DictionaryType) ID() TypeID {
	return TypeID(fmt.Sprintf(
		"[%s:%s]",
		t.KeyType.ID(),
		t.ValueType.ID(),
	))
}

func (t *DictionaryType) Equal(other Type) bool {
	otherDictionary, ok := other.(*DictionaryType)
	if !ok {
		return false
	}

	return otherDictionary.KeyType.Equal(t.KeyType) &&
		otherDictionary.ValueType.Equal(t.ValueType)
}

// TypeAnnotation

type TypeAnnotation struct {
	Type Type
}

func NewTypeAnnotation(ty Type) TypeAnnotation {
	return TypeAnnotation{
		Type: ty,
	}
}

func (a TypeAnnotation) String() string {
	return a.Type.String()
}

func (a TypeAnnotation) Equal(other TypeAnnotation) bool {
	return a.Type.Equal(other.Type)
}

var VoidTypeAnnotation = NewTypeAnnotation(VoidType)
var BoolTypeAnnotation = NewTypeAnnotation(BoolType)
var IntTypeAnnotation = NewTypeAnnotation(IntType)
var StringTypeAnnotation = NewTypeAnnotation(StringType)

// Parameter

type Parameter struct {
	Label          string
	Identifier     string
	TypeAnnotation TypeAnnotation
}

func (p Parameter) String() string {
	if p.Label != "" {
		return fmt.Sprintf(
			"%s %s: %s",
			p.Label,
			p.Identifier,
			p.TypeAnnotation,
		)
	}

	return fmt.Sprintf(
		"%s: %s",
		p.Identifier,
		p.TypeAnnotation,
	)
}

// EffectiveArgumentLabel returns the effective argument label that
// an argument in a call must use:
// If no argument label is declared for parameter,
// the parameter name is used as the argument label
func (p Parameter) EffectiveArgumentLabel() string {
	if p.Label != "" {
		return p.Label
	}
	return p.Identifier
}

// FunctionType

type FunctionType struct {
	Parameters           []Parameter
	ReturnTypeAnnotation TypeAnnotation
}

var _ Type = &FunctionType{}

func (*FunctionType) IsType() {}

func (t *FunctionType) String() string {
	var sb strings.Builder
	sb.WriteRune('(')
	for i, parameter := range t.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(parameter.String())
	}
	sb.WriteString("): ")
	sb.WriteString(t.ReturnTypeAnnotation.String())
	return sb.String()
}

func (t *FunctionType) ID() TypeID {
	var sb strings.Builder
	sb.WriteRune('(')
	for i, parameter := range t.Parameters {
		if i > 0 {
			sb.WriteRune(',')
		}
		sb.WriteString(string(parameter.TypeAnnotation.Type.ID()))
	}
	sb.WriteString("):")
	sb.WriteString(string(t.ReturnTypeAnnotation.Type.ID()))
	return TypeID(sb.String())
}

func (t *FunctionType) Equal(other Type) bool {
	otherFunction, ok := other.(*FunctionType)
	if !ok {
		return false
	}

	if len(t.Parameters) != len(otherFunction.Parameters) {
		return false
	}

	for i, parameter := range t.Parameters {
		otherParameter := otherFunction.Parameters[i]
		if !parameter.TypeAnnotation.Equal(otherParameter.TypeAnnotation) {
			return false
		}
	}

	return t.ReturnTypeAnnotation.Equal(otherFunction.ReturnTypeAnnotation)
}

// ProtocolType

// ProtocolType is the type of a protocol declaration.
// The requirements a conforming type must fulfill
// are ordered by declaration order.
type ProtocolType struct {
	Location     common.Location
	Identifier   string
	Requirements []*Requirement

	cachedID     TypeID
	cachedIDOnce sync.Once
}

var _ Type = &ProtocolType{}

func NewProtocolType(
	location common.Location,
	identifier string,
	requirements []*Requirement,
) *ProtocolType {
	protocolType := &ProtocolType{
		Location:     location,
		Identifier:   identifier,
		Requirements: requirements,
	}

	for _, requirement := range requirements {
		requirement.ProtocolType = protocolType
	}

	return protocolType
}

func (*ProtocolType) IsType() {}

func (t *ProtocolType) String() string {
	return t.Identifier
}

func (t *ProtocolType) ID() TypeID {
	t.cachedIDOnce.Do(func() {
		if t.Location == nil {
			t.cachedID = TypeID(t.Identifier)
		} else {
			t.cachedID = TypeID(fmt.Sprintf(
				"%s.%s",
				t.Location.ID(),
				t.Identifier,
			))
		}
	})
	return t.cachedID
}

func (t *ProtocolType) Equal(other Type) bool {
	otherProtocol, ok := other.(*ProtocolType)
	if !ok {
		return false
	}
	return otherProtocol.ID() == t.ID()
}

// SynthesizedStructType

// SynthesizedStructType is the type of the anonymous structure
// a closure literal is lowered to.
//
// The field order equals the capture collection order.
// This is externally observable: the instantiation emitter
// passes constructor arguments in field order.
//
// The conformance list is the requested protocol set,
// fixed permanently once the type is emitted.
type SynthesizedStructType struct {
	Location     common.Location
	Identifier   string
	Conformances []*ProtocolType
	Fields       *orderedmap.OrderedMap[string, *CaptureDescriptor]
	Declaration  *ast.CompositeDeclaration
}

var _ Type = &SynthesizedStructType{}

func NewSynthesizedStructType(
	gauge common.MemoryGauge,
	location common.Location,
	identifier string,
	conformances []*ProtocolType,
	captures []*CaptureDescriptor,
) *SynthesizedStructType {
	common.UseMemory(gauge, common.SynthesizedStructTypeMemoryUsage)

	fields := orderedmap.New[string, *CaptureDescriptor](len(captures))
	for _, capture := range captures {
		fields.Set(capture.FieldName, capture)
	}

	return &SynthesizedStructType{
		Location:     location,
		Identifier:   identifier,
		Conformances: conformances,
		Fields:       fields,
	}
}

func (*SynthesizedStructType) IsType() {}

func (t *SynthesizedStructType) String() string {
	return t.Identifier
}

func (t *SynthesizedStructType) ID() TypeID {
	if t.Location == nil {
		return TypeID(t.Identifier)
	}
	return TypeID(fmt.Sprintf(
		"%s.%s",
		t.Location.ID(),
		t.Identifier,
	))
}

func (t *SynthesizedStructType) Equal(other Type) bool {
	otherStruct, ok := other.(*SynthesizedStructType)
	if !ok {
		return false
	}
	return otherStruct.ID() == t.ID()
}

// ConformsTo returns true if the synthesized type's conformance list
// contains the given protocol
func (t *SynthesizedStructType) ConformsTo(protocolType *ProtocolType) bool {
	for _, conformance := range t.Conformances {
		if conformance.Equal(protocolType) {
			return true
		}
	}
	return false
}
