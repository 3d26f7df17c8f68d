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
	"github.com/lumen-lang/lumen/ast"
	"github.com/lumen-lang/lumen/errors"
)

// LoweringPath

// LoweringPath is the way a closure literal fulfills
// the target requirement set
type LoweringPath uint

const (
	LoweringPathUnknown LoweringPath = iota
	// LoweringPathBodyless applies when all requirements are covered
	// by defaults or synthesis: the literal needs no explicit fulfillment
	LoweringPathBodyless
	// LoweringPathSingleRequirement applies when exactly one
	// function-like requirement is uncovered: the literal's parameters
	// and statement body become its witness
	LoweringPathSingleRequirement
	// LoweringPathAccessor applies when exactly one mutable property or
	// subscript requirement is uncovered: the literal supplies
	// a paired get/set accessor body
	LoweringPathAccessor
	// LoweringPathMultiDeclaration applies when multiple requirements
	// are uncovered and the literal explicitly opts in
	// with a struct-style multi-declaration body
	LoweringPathMultiDeclaration
	// LoweringPathMetatype applies when the literal is expected
	// to produce a type, fulfilling exactly one static requirement
	LoweringPathMetatype
)

func (p LoweringPath) Name() string {
	switch p {
	case LoweringPathBodyless:
		return "bodyless"
	case LoweringPathSingleRequirement:
		return "single-requirement"
	case LoweringPathAccessor:
		return "accessor"
	case LoweringPathMultiDeclaration:
		return "multi-declaration"
	case LoweringPathMetatype:
		return "metatype"
	}

	panic(errors.NewUnreachableError())
}

func (p LoweringPath) String() string {
	switch p {
	case LoweringPathUnknown:
		return "LoweringPathUnknown"
	case LoweringPathBodyless:
		return "LoweringPathBodyless"
	case LoweringPathSingleRequirement:
		return "LoweringPathSingleRequirement"
	case LoweringPathAccessor:
		return "LoweringPathAccessor"
	case LoweringPathMultiDeclaration:
		return "LoweringPathMultiDeclaration"
	case LoweringPathMetatype:
		return "LoweringPathMetatype"
	}

	panic(errors.NewUnreachableError())
}

// ClosureLiteralContext

// ClosureLiteralContext bundles everything applicability resolution
// needs to know about one literal in one type context.
// Transient: created when the literal is visited in a type context
// requiring a protocol value, dropped once lowering completes
// or is abandoned.
type ClosureLiteralContext struct {
	Literal        *ast.ClosureLiteralExpression
	Captures       []*CaptureDescriptor
	RequirementSet *RequirementSet
	// IsMetatype is true if the type context expects the literal
	// to produce a type, not a value
	IsMetatype bool
}

func (ctx ClosureLiteralContext) BodyKind() ast.ClosureBodyKind {
	return ctx.Literal.BodyKind()
}

// Resolution

// Resolution is a successful applicability verdict
type Resolution struct {
	Path LoweringPath
	// FulfilledRequirement is the single requirement the literal's body
	// fulfills, on the single-requirement, accessor, and metatype paths.
	// Nil on the bodyless and multi-declaration paths.
	FulfilledRequirement *Requirement
}

// ResolveApplicability decides whether lowering applies to the literal,
// and if so, which requirement(s) the body must fulfill.
//
// Resolution is a single pure function of the requirement set
// and the literal's shape. No backtracking across paths:
// ambiguous cases are rejected, never guessed.
func ResolveApplicability(ctx ClosureLiteralContext) (Resolution, error) {

	uncovered := withoutCaptureFulfilled(
		ctx.RequirementSet.UncoveredRequirements(),
		ctx.Captures,
	)
	uncoveredStatics := ctx.RequirementSet.UncoveredStaticRequirements()

	switch {
	case ctx.IsMetatype:
		return resolveMetatype(ctx, uncovered, uncoveredStatics)

	case len(uncoveredStatics) > 0:
		// a static requirement is only fulfillable on the metatype path
		return Resolution{}, &NotSingleRequirementError{
			Uncovered: append(uncovered[:len(uncovered):len(uncovered)], uncoveredStatics...),
			Range:     ast.NewUnmeteredRangeFromPositioned(ctx.Literal),
		}

	case len(uncovered) == 0:
		return resolveBodyless(ctx)

	case len(uncovered) == 1:
		return resolveSingleUncovered(ctx, uncovered[0])

	default:
		return resolveMultipleUncovered(ctx, uncovered)
	}
}

// withoutCaptureFulfilled filters out the property requirements
// a capture fulfills directly as a stored field:
// a capture with the requirement's name satisfies a read-only property,
// and a `var` capture satisfies a mutable property
func withoutCaptureFulfilled(
	uncovered []*Requirement,
	captures []*CaptureDescriptor,
) []*Requirement {
	if len(captures) == 0 {
		return uncovered
	}

	capturesByName := make(map[string]*CaptureDescriptor, len(captures))
	for _, capture := range captures {
		capturesByName[capture.Name] = capture
	}

	result := make([]*Requirement, 0, len(uncovered))
	for _, requirement := range uncovered {
		capture, ok := capturesByName[requirement.Identifier]
		if ok {
			switch requirement.Kind {
			case RequirementKindReadProperty:
				continue

			case RequirementKindMutableProperty:
				if capture.IsMutable() {
					continue
				}
			}
		}
		result = append(result, requirement)
	}
	return result
}

func resolveMetatype(
	ctx ClosureLiteralContext,
	uncovered []*Requirement,
	uncoveredStatics []*Requirement,
) (Resolution, error) {

	if len(uncovered) != 0 || len(uncoveredStatics) != 1 {
		return Resolution{}, &NotSingleRequirementError{
			IsMetatype: true,
			Uncovered:  append(uncovered[:len(uncovered):len(uncovered)], uncoveredStatics...),
			Range:      ast.NewUnmeteredRangeFromPositioned(ctx.Literal),
		}
	}

	// a type has no construction-time state to capture into.
	// ctx.Captures also covers free variables the body captures implicitly
	if len(ctx.Captures) > 0 || len(ctx.Literal.CaptureList) > 0 {
		return Resolution{}, &CaptureListOnMetatypePathError{
			Range: ast.NewUnmeteredRangeFromPositioned(ctx.Literal),
		}
	}

	if ctx.BodyKind() != ast.ClosureBodyKindStatements {
		return Resolution{}, &NotSingleRequirementError{
			IsMetatype: true,
			Uncovered:  uncoveredStatics,
			Range:      ast.NewUnmeteredRangeFromPositioned(ctx.Literal),
		}
	}

	return Resolution{
		Path:                 LoweringPathMetatype,
		FulfilledRequirement: uncoveredStatics[0],
	}, nil
}

func resolveBodyless(ctx ClosureLiteralContext) (Resolution, error) {

	// with nothing left to fulfill, a body has nothing to bind to

	if ctx.BodyKind() != ast.ClosureBodyKindNone {
		return Resolution{}, &SuperfluousBodyError{
			BodyKind: ctx.BodyKind(),
			Range:    ast.NewUnmeteredRangeFromPositioned(ctx.Literal),
		}
	}

	return Resolution{
		Path: LoweringPathBodyless,
	}, nil
}

func resolveSingleUncovered(
	ctx ClosureLiteralContext,
	requirement *Requirement,
) (Resolution, error) {

	switch {
	case requirement.Kind.IsFunctionLike():
		if ctx.BodyKind() != ast.ClosureBodyKindStatements {
			return Resolution{}, &NotSingleRequirementError{
				Uncovered: []*Requirement{requirement},
				Range:     ast.NewUnmeteredRangeFromPositioned(ctx.Literal),
			}
		}

		return Resolution{
			Path:                 LoweringPathSingleRequirement,
			FulfilledRequirement: requirement,
		}, nil

	case requirement.Kind.IsAccessorBased():
		if ctx.BodyKind() != ast.ClosureBodyKindAccessors {
			return Resolution{}, &NotSingleRequirementError{
				Uncovered: []*Requirement{requirement},
				Range:     ast.NewUnmeteredRangeFromPositioned(ctx.Literal),
			}
		}

		return Resolution{
			Path:                 LoweringPathAccessor,
			FulfilledRequirement: requirement,
		}, nil

	default:
		return Resolution{}, &NotSingleRequirementError{
			Uncovered: []*Requirement{requirement},
			Range:     ast.NewUnmeteredRangeFromPositioned(ctx.Literal),
		}
	}
}

func resolveMultipleUncovered(
	ctx ClosureLiteralContext,
	uncovered []*Requirement,
) (Resolution, error) {

	// multiple uncovered requirements need the explicit opt-in
	// of the struct-style body form

	if ctx.BodyKind() != ast.ClosureBodyKindDeclarations {
		return Resolution{}, &NotSingleRequirementError{
			Uncovered: uncovered,
			Range:     ast.NewUnmeteredRangeFromPositioned(ctx.Literal),
		}
	}

	return Resolution{
		Path: LoweringPathMultiDeclaration,
	}, nil
}
