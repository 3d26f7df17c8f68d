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

package common

// MemoryKind is the type of memory tracked for a MemoryUsage.
type MemoryKind uint

const (
	MemoryKindUnknown MemoryKind = iota
	MemoryKindIdentifier
	MemoryKindPosition
	MemoryKindRange
	MemoryKindAttribute
	MemoryKindParameter
	MemoryKindParameterList
	MemoryKindTypeAnnotation
	MemoryKindExpression
	MemoryKindArgument
	MemoryKindStatement
	MemoryKindBlock
	MemoryKindCaptureItem
	MemoryKindClosureLiteralExpression
	MemoryKindFieldDeclaration
	MemoryKindFunctionDeclaration
	MemoryKindSpecialFunctionDeclaration
	MemoryKindPropertyDeclaration
	MemoryKindSubscriptDeclaration
	MemoryKindCompositeDeclaration
	MemoryKindMembers
	MemoryKindCaptureDescriptor
	MemoryKindRequirement
	MemoryKindRequirementSet
	MemoryKindSynthesizedStructType
)

// MemoryUsage is a memory usage report, e.g. for an AST node constructed
// on behalf of a user-provided program.
type MemoryUsage struct {
	Kind   MemoryKind
	Amount uint64
}

// MemoryGauge is an interface for tracking memory usage during compilation.
type MemoryGauge interface {
	MeterMemory(usage MemoryUsage) error
}

func NewConstantMemoryUsage(kind MemoryKind) MemoryUsage {
	return MemoryUsage{
		Kind:   kind,
		Amount: 1,
	}
}

var (
	IdentifierMemoryUsage                 = NewConstantMemoryUsage(MemoryKindIdentifier)
	PositionMemoryUsage                   = NewConstantMemoryUsage(MemoryKindPosition)
	RangeMemoryUsage                      = NewConstantMemoryUsage(MemoryKindRange)
	AttributeMemoryUsage                  = NewConstantMemoryUsage(MemoryKindAttribute)
	ParameterMemoryUsage                  = NewConstantMemoryUsage(MemoryKindParameter)
	ParameterListMemoryUsage              = NewConstantMemoryUsage(MemoryKindParameterList)
	TypeAnnotationMemoryUsage             = NewConstantMemoryUsage(MemoryKindTypeAnnotation)
	ExpressionMemoryUsage                 = NewConstantMemoryUsage(MemoryKindExpression)
	ArgumentMemoryUsage                   = NewConstantMemoryUsage(MemoryKindArgument)
	StatementMemoryUsage                  = NewConstantMemoryUsage(MemoryKindStatement)
	BlockMemoryUsage                      = NewConstantMemoryUsage(MemoryKindBlock)
	CaptureItemMemoryUsage                = NewConstantMemoryUsage(MemoryKindCaptureItem)
	ClosureLiteralExpressionMemoryUsage   = NewConstantMemoryUsage(MemoryKindClosureLiteralExpression)
	FieldDeclarationMemoryUsage           = NewConstantMemoryUsage(MemoryKindFieldDeclaration)
	FunctionDeclarationMemoryUsage        = NewConstantMemoryUsage(MemoryKindFunctionDeclaration)
	SpecialFunctionDeclarationMemoryUsage = NewConstantMemoryUsage(MemoryKindSpecialFunctionDeclaration)
	PropertyDeclarationMemoryUsage        = NewConstantMemoryUsage(MemoryKindPropertyDeclaration)
	SubscriptDeclarationMemoryUsage       = NewConstantMemoryUsage(MemoryKindSubscriptDeclaration)
	CompositeDeclarationMemoryUsage       = NewConstantMemoryUsage(MemoryKindCompositeDeclaration)
	MembersMemoryUsage                    = NewConstantMemoryUsage(MemoryKindMembers)
	CaptureDescriptorMemoryUsage          = NewConstantMemoryUsage(MemoryKindCaptureDescriptor)
	RequirementMemoryUsage                = NewConstantMemoryUsage(MemoryKindRequirement)
	RequirementSetMemoryUsage             = NewConstantMemoryUsage(MemoryKindRequirementSet)
	SynthesizedStructTypeMemoryUsage      = NewConstantMemoryUsage(MemoryKindSynthesizedStructType)
)

// UseMemory reports the given memory usage to the gauge, if any.
// If the limit is exceeded, the gauge's error is thrown (panicked),
// so it can unwind the compilation of the current program.
func UseMemory(gauge MemoryGauge, usage MemoryUsage) {
	if gauge == nil {
		return
	}

	err := gauge.MeterMemory(usage)
	if err != nil {
		panic(err)
	}
}
