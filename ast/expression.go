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
	"math/big"
	"strconv"
	"strings"

	"github.com/turbolent/prettier"

	"github.com/lumen-lang/lumen/common"
)

const NilConstant = "nil"

type Expression interface {
	Element
	isExpression()
	Doc() prettier.Doc
	String() string
}

// BoolExpression

type BoolExpression struct {
	Value bool
	Range
}

var _ Expression = &BoolExpression{}

func NewBoolExpression(gauge common.MemoryGauge, value bool, exprRange Range) *BoolExpression {
	common.UseMemory(gauge, common.ExpressionMemoryUsage)
	return &BoolExpression{
		Value: value,
		Range: exprRange,
	}
}

func (*BoolExpression) isExpression() {}

func (*BoolExpression) ElementType() ElementType {
	return ElementTypeBoolExpression
}

func (*BoolExpression) Walk(_ func(Element)) {
	// NO-OP
}

var boolExpressionTrueDoc prettier.Doc = prettier.Text("true")
var boolExpressionFalseDoc prettier.Doc = prettier.Text("false")

func (e *BoolExpression) Doc() prettier.Doc {
	if e.Value {
		return boolExpressionTrueDoc
	}
	return boolExpressionFalseDoc
}

func (e *BoolExpression) String() string {
	return strconv.FormatBool(e.Value)
}

func (e *BoolExpression) MarshalJSON() ([]byte, error) {
	type Alias BoolExpression
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "BoolExpression",
		Alias: (*Alias)(e),
	})
}

// NilExpression

type NilExpression struct {
	Pos Position `json:"-"`
}

var _ Expression = &NilExpression{}

func NewNilExpression(gauge common.MemoryGauge, pos Position) *NilExpression {
	common.UseMemory(gauge, common.ExpressionMemoryUsage)
	return &NilExpression{
		Pos: pos,
	}
}

func (*NilExpression) isExpression() {}

func (*NilExpression) ElementType() ElementType {
	return ElementTypeNilExpression
}

func (*NilExpression) Walk(_ func(Element)) {
	// NO-OP
}

var nilExpressionDoc prettier.Doc = prettier.Text(NilConstant)

func (*NilExpression) Doc() prettier.Doc {
	return nilExpressionDoc
}

func (*NilExpression) String() string {
	return NilConstant
}

func (e *NilExpression) StartPosition() Position {
	return e.Pos
}

func (e *NilExpression) EndPosition(memoryGauge common.MemoryGauge) Position {
	return e.Pos.Shifted(memoryGauge, len(NilConstant)-1)
}

func (e *NilExpression) MarshalJSON() ([]byte, error) {
	type Alias NilExpression
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "NilExpression",
		Range: NewUnmeteredRangeFromPositioned(e),
		Alias: (*Alias)(e),
	})
}

// IntegerExpression

type IntegerExpression struct {
	PositiveLiteral string
	Value           *big.Int
	Base            int
	Range
}

var _ Expression = &IntegerExpression{}

func NewIntegerExpression(
	gauge common.MemoryGauge,
	literal string,
	value *big.Int,
	base int,
	exprRange Range,
) *IntegerExpression {
	common.UseMemory(gauge, common.ExpressionMemoryUsage)
	return &IntegerExpression{
		PositiveLiteral: literal,
		Value:           value,
		Base:            base,
		Range:           exprRange,
	}
}

func (*IntegerExpression) isExpression() {}

func (*IntegerExpression) ElementType() ElementType {
	return ElementTypeIntegerExpression
}

func (*IntegerExpression) Walk(_ func(Element)) {
	// NO-OP
}

func (e *IntegerExpression) Doc() prettier.Doc {
	return prettier.Text(e.String())
}

func (e *IntegerExpression) String() string {
	literal := e.PositiveLiteral
	if literal != "" {
		if e.Value != nil && e.Value.Sign() < 0 {
			return "-" + literal
		}
		return literal
	}
	return e.Value.String()
}

func (e *IntegerExpression) MarshalJSON() ([]byte, error) {
	type Alias IntegerExpression
	return json.Marshal(&struct {
		Type  string
		Value string
		*Alias
	}{
		Type:  "IntegerExpression",
		Value: e.Value.String(),
		Alias: (*Alias)(e),
	})
}

// StringExpression

type StringExpression struct {
	Value string
	Range
}

var _ Expression = &StringExpression{}

func NewStringExpression(gauge common.MemoryGauge, value string, exprRange Range) *StringExpression {
	common.UseMemory(gauge, common.ExpressionMemoryUsage)
	return &StringExpression{
		Value: value,
		Range: exprRange,
	}
}

func (*StringExpression) isExpression() {}

func (*StringExpression) ElementType() ElementType {
	return ElementTypeStringExpression
}

func (*StringExpression) Walk(_ func(Element)) {
	// NO-OP
}

func (e *StringExpression) Doc() prettier.Doc {
	return prettier.Text(QuoteString(e.Value))
}

func (e *StringExpression) String() string {
	return QuoteString(e.Value)
}

// QuoteString quotes a string as a Lumen string literal
func QuoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case 0:
			sb.WriteString(`\0`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func (e *StringExpression) MarshalJSON() ([]byte, error) {
	type Alias StringExpression
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "StringExpression",
		Alias: (*Alias)(e),
	})
}

// IdentifierExpression

type IdentifierExpression struct {
	Identifier Identifier
}

var _ Expression = &IdentifierExpression{}

func NewIdentifierExpression(gauge common.MemoryGauge, identifier Identifier) *IdentifierExpression {
	common.UseMemory(gauge, common.ExpressionMemoryUsage)
	return &IdentifierExpression{
		Identifier: identifier,
	}
}

func (*IdentifierExpression) isExpression() {}

func (*IdentifierExpression) ElementType() ElementType {
	return ElementTypeIdentifierExpression
}

func (*IdentifierExpression) Walk(_ func(Element)) {
	// NO-OP
}

func (e *IdentifierExpression) Doc() prettier.Doc {
	return prettier.Text(e.Identifier.Identifier)
}

func (e *IdentifierExpression) String() string {
	return e.Identifier.Identifier
}

func (e *IdentifierExpression) StartPosition() Position {
	return e.Identifier.StartPosition()
}

func (e *IdentifierExpression) EndPosition(memoryGauge common.MemoryGauge) Position {
	return e.Identifier.EndPosition(memoryGauge)
}

func (e *IdentifierExpression) MarshalJSON() ([]byte, error) {
	type Alias IdentifierExpression
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "IdentifierExpression",
		Range: NewUnmeteredRangeFromPositioned(e),
		Alias: (*Alias)(e),
	})
}

// UnaryExpression

type UnaryExpression struct {
	Operation  Operation
	Expression Expression
	StartPos   Position `json:"-"`
}

var _ Expression = &UnaryExpression{}

func NewUnaryExpression(
	gauge common.MemoryGauge,
	operation Operation,
	expression Expression,
	startPos Position,
) *UnaryExpression {
	common.UseMemory(gauge, common.ExpressionMemoryUsage)
	return &UnaryExpression{
		Operation:  operation,
		Expression: expression,
		StartPos:   startPos,
	}
}

func (*UnaryExpression) isExpression() {}

func (*UnaryExpression) ElementType() ElementType {
	return ElementTypeUnaryExpression
}

func (e *UnaryExpression) Walk(walkChild func(Element)) {
	walkChild(e.Expression)
}

func (e *UnaryExpression) Doc() prettier.Doc {
	return prettier.Concat{
		prettier.Text(e.Operation.Symbol()),
		e.Expression.Doc(),
	}
}

func (e *UnaryExpression) String() string {
	return e.Operation.Symbol() + e.Expression.String()
}

func (e *UnaryExpression) StartPosition() Position {
	return e.StartPos
}

func (e *UnaryExpression) EndPosition(memoryGauge common.MemoryGauge) Position {
	return e.Expression.EndPosition(memoryGauge)
}

func (e *UnaryExpression) MarshalJSON() ([]byte, error) {
	type Alias UnaryExpression
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "UnaryExpression",
		Range: NewUnmeteredRangeFromPositioned(e),
		Alias: (*Alias)(e),
	})
}

// BinaryExpression

type BinaryExpression struct {
	Operation Operation
	Left      Expression
	Right     Expression
}

var _ Expression = &BinaryExpression{}

func NewBinaryExpression(
	gauge common.MemoryGauge,
	operation Operation,
	left, right Expression,
) *BinaryExpression {
	common.UseMemory(gauge, common.ExpressionMemoryUsage)
	return &BinaryExpression{
		Operation: operation,
		Left:      left,
		Right:     right,
	}
}

func (*BinaryExpression) isExpression() {}

func (*BinaryExpression) ElementType() ElementType {
	return ElementTypeBinaryExpression
}

func (e *BinaryExpression) Walk(walkChild func(Element)) {
	walkChild(e.Left)
	walkChild(e.Right)
}

func (e *BinaryExpression) Doc() prettier.Doc {
	return prettier.Group{
		Doc: prettier.Concat{
			e.Left.Doc(),
			prettier.Space,
			prettier.Text(e.Operation.Symbol()),
			prettier.Line{},
			e.Right.Doc(),
		},
	}
}

func (e *BinaryExpression) String() string {
	return e.Left.String() +
		" " + e.Operation.Symbol() + " " +
		e.Right.String()
}

func (e *BinaryExpression) StartPosition() Position {
	return e.Left.StartPosition()
}

func (e *BinaryExpression) EndPosition(memoryGauge common.MemoryGauge) Position {
	return e.Right.EndPosition(memoryGauge)
}

func (e *BinaryExpression) MarshalJSON() ([]byte, error) {
	type Alias BinaryExpression
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "BinaryExpression",
		Range: NewUnmeteredRangeFromPositioned(e),
		Alias: (*Alias)(e),
	})
}

// MemberExpression

type MemberExpression struct {
	Expression Expression
	// The position of the `.`
	AccessPos  Position `json:"-"`
	Identifier Identifier
}

var _ Expression = &MemberExpression{}

func NewMemberExpression(
	gauge common.MemoryGauge,
	expression Expression,
	accessPos Position,
	identifier Identifier,
) *MemberExpression {
	common.UseMemory(gauge, common.ExpressionMemoryUsage)
	return &MemberExpression{
		Expression: expression,
		AccessPos:  accessPos,
		Identifier: identifier,
	}
}

func (*MemberExpression) isExpression() {}

func (*MemberExpression) ElementType() ElementType {
	return ElementTypeMemberExpression
}

func (e *MemberExpression) Walk(walkChild func(Element)) {
	walkChild(e.Expression)
}

const memberExpressionSeparatorDoc = prettier.Text(".")

func (e *MemberExpression) Doc() prettier.Doc {
	return prettier.Concat{
		e.Expression.Doc(),
		memberExpressionSeparatorDoc,
		prettier.Text(e.Identifier.Identifier),
	}
}

func (e *MemberExpression) String() string {
	return e.Expression.String() + "." + e.Identifier.Identifier
}

func (e *MemberExpression) StartPosition() Position {
	return e.Expression.StartPosition()
}

func (e *MemberExpression) EndPosition(memoryGauge common.MemoryGauge) Position {
	return e.Identifier.EndPosition(memoryGauge)
}

func (e *MemberExpression) MarshalJSON() ([]byte, error) {
	type Alias MemberExpression
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "MemberExpression",
		Range: NewUnmeteredRangeFromPositioned(e),
		Alias: (*Alias)(e),
	})
}

// IndexExpression

type IndexExpression struct {
	TargetExpression   Expression
	IndexingExpression Expression
	Range
}

var _ Expression = &IndexExpression{}

func NewIndexExpression(
	gauge common.MemoryGauge,
	target, index Expression,
	exprRange Range,
) *IndexExpression {
	common.UseMemory(gauge, common.ExpressionMemoryUsage)
	return &IndexExpression{
		TargetExpression:   target,
		IndexingExpression: index,
		Range:              exprRange,
	}
}

func (*IndexExpression) isExpression() {}

func (*IndexExpression) ElementType() ElementType {
	return ElementTypeIndexExpression
}

func (e *IndexExpression) Walk(walkChild func(Element)) {
	walkChild(e.TargetExpression)
	walkChild(e.IndexingExpression)
}

func (e *IndexExpression) Doc() prettier.Doc {
	return prettier.Concat{
		e.TargetExpression.Doc(),
		prettier.WrapBrackets(
			e.IndexingExpression.Doc(),
			prettier.SoftLine{},
		),
	}
}

func (e *IndexExpression) String() string {
	return e.TargetExpression.String() +
		"[" + e.IndexingExpression.String() + "]"
}

func (e *IndexExpression) MarshalJSON() ([]byte, error) {
	type Alias IndexExpression
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "IndexExpression",
		Alias: (*Alias)(e),
	})
}

// InvocationExpression

type InvocationExpression struct {
	InvokedExpression Expression
	Arguments         []*Argument
	ArgumentsStartPos Position `json:"-"`
	EndPos            Position `json:"-"`
}

var _ Expression = &InvocationExpression{}

func NewInvocationExpression(
	gauge common.MemoryGauge,
	invokedExpression Expression,
	arguments []*Argument,
	argumentsStartPos Position,
	endPos Position,
) *InvocationExpression {
	common.UseMemory(gauge, common.ExpressionMemoryUsage)
	return &InvocationExpression{
		InvokedExpression: invokedExpression,
		Arguments:         arguments,
		ArgumentsStartPos: argumentsStartPos,
		EndPos:            endPos,
	}
}

func (*InvocationExpression) isExpression() {}

func (*InvocationExpression) ElementType() ElementType {
	return ElementTypeInvocationExpression
}

func (e *InvocationExpression) Walk(walkChild func(Element)) {
	walkChild(e.InvokedExpression)
	for _, argument := range e.Arguments {
		walkChild(argument.Expression)
	}
}

var argumentSeparatorDoc prettier.Doc = prettier.Concat{
	prettier.Text(","),
	prettier.Line{},
}

func (e *InvocationExpression) Doc() prettier.Doc {
	result := prettier.Concat{
		e.InvokedExpression.Doc(),
	}

	if len(e.Arguments) == 0 {
		return append(result, prettier.Text("()"))
	}

	argumentDocs := make([]prettier.Doc, 0, len(e.Arguments))
	for _, argument := range e.Arguments {
		argumentDocs = append(argumentDocs, argument.Doc())
	}

	return append(
		result,
		prettier.WrapParentheses(
			prettier.Join(argumentSeparatorDoc, argumentDocs...),
			prettier.SoftLine{},
		),
	)
}

func (e *InvocationExpression) String() string {
	var sb strings.Builder
	sb.WriteString(e.InvokedExpression.String())
	sb.WriteByte('(')
	for i, argument := range e.Arguments {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(argument.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (e *InvocationExpression) StartPosition() Position {
	return e.InvokedExpression.StartPosition()
}

func (e *InvocationExpression) EndPosition(common.MemoryGauge) Position {
	return e.EndPos
}

func (e *InvocationExpression) MarshalJSON() ([]byte, error) {
	type Alias InvocationExpression
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "InvocationExpression",
		Range: NewUnmeteredRangeFromPositioned(e),
		Alias: (*Alias)(e),
	})
}

// DictionaryExpression

type DictionaryEntry struct {
	Key   Expression
	Value Expression
}

func (e DictionaryEntry) MarshalJSON() ([]byte, error) {
	type Alias DictionaryEntry
	return json.Marshal(&struct {
		Type string
		Alias
	}{
		Type:  "DictionaryEntry",
		Alias: (Alias)(e),
	})
}

type DictionaryExpression struct {
	Entries []DictionaryEntry
	Range
}

var _ Expression = &DictionaryExpression{}

func NewDictionaryExpression(
	gauge common.MemoryGauge,
	entries []DictionaryEntry,
	exprRange Range,
) *DictionaryExpression {
	common.UseMemory(gauge, common.ExpressionMemoryUsage)
	return &DictionaryExpression{
		Entries: entries,
		Range:   exprRange,
	}
}

func (*DictionaryExpression) isExpression() {}

func (*DictionaryExpression) ElementType() ElementType {
	return ElementTypeDictionaryExpression
}

func (e *DictionaryExpression) Walk(walkChild func(Element)) {
	for _, entry := range e.Entries {
		walkChild(entry.Key)
		walkChild(entry.Value)
	}
}

var dictionaryExpressionSeparatorDoc prettier.Doc = prettier.Concat{
	prettier.Text(","),
	prettier.Line{},
}

const dictionaryKeyValueSeparatorDoc = prettier.Text(": ")

func (e *DictionaryExpression) Doc() prettier.Doc {
	if len(e.Entries) == 0 {
		return prettier.Text("{}")
	}

	entryDocs := make([]prettier.Doc, 0, len(e.Entries))
	for _, entry := range e.Entries {
		entryDocs = append(
			entryDocs,
			prettier.Concat{
				entry.Key.Doc(),
				dictionaryKeyValueSeparatorDoc,
				entry.Value.Doc(),
			},
		)
	}

	return prettier.WrapBraces(
		prettier.Join(dictionaryExpressionSeparatorDoc, entryDocs...),
		prettier.SoftLine{},
	)
}

func (e *DictionaryExpression) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, entry := range e.Entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(entry.Key.String())
		sb.WriteString(": ")
		sb.WriteString(entry.Value.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (e *DictionaryExpression) MarshalJSON() ([]byte, error) {
	type Alias DictionaryExpression
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "DictionaryExpression",
		Alias: (*Alias)(e),
	})
}
