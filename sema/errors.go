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

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/lumen-lang/lumen/ast"
	"github.com/lumen-lang/lumen/common"
	"github.com/lumen-lang/lumen/errors"
)

// SemanticError is a lowering error in a user-provided program
type SemanticError interface {
	errors.UserError
	ast.HasPosition
	isSemanticError()
}

// LoweringError

// LoweringError is the parent error
// for all errors of one lowering run
type LoweringError struct {
	Location common.Location
	Errors   []error
}

var _ errors.UserError = LoweringError{}
var _ errors.ParentError = LoweringError{}

func (LoweringError) IsUserError() {}

func (e LoweringError) Error() string {
	var sb strings.Builder
	sb.WriteString("lowering failed:\n")
	for _, err := range e.Errors {
		sb.WriteString(errors.UnrollChildErrors(err))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (e LoweringError) ChildErrors() []error {
	return e.Errors
}

func (e LoweringError) Unwrap() []error {
	return e.Errors
}

// NotSingleRequirementError

// NotSingleRequirementError is reported when the target protocol set's
// uncovered requirements do not match the literal's shape:
// zero or multiple uncovered requirements without an explicit
// multi-declaration opt-in, or a single one of an unfulfillable kind
type NotSingleRequirementError struct {
	IsMetatype bool
	Uncovered  []*Requirement
	ast.Range
}

var _ SemanticError = &NotSingleRequirementError{}
var _ errors.UserError = &NotSingleRequirementError{}
var _ errors.SecondaryError = &NotSingleRequirementError{}

func (*NotSingleRequirementError) isSemanticError() {}

func (*NotSingleRequirementError) IsUserError() {}

func (e *NotSingleRequirementError) Error() string {
	if e.IsMetatype {
		return "cannot lower closure literal: not a single static requirement"
	}
	return "cannot lower closure literal: not a single-requirement protocol set"
}

func (e *NotSingleRequirementError) SecondaryError() string {
	if len(e.Uncovered) == 0 {
		return "all requirements are covered by defaults or synthesis"
	}

	var sb strings.Builder
	sb.WriteString("uncovered requirements: ")
	for i, requirement := range e.Uncovered {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf(
			"`%s` (%s)",
			requirement.Identifier,
			requirement.Kind.Name(),
		))
	}
	return sb.String()
}

// CaptureByReferenceError

// CaptureByReferenceError is reported when a capture item attempts
// to share storage with the enclosing scope.
// Captures always copy; they are never silently boxed.
type CaptureByReferenceError struct {
	Name string
	ast.Range
}

var _ SemanticError = &CaptureByReferenceError{}
var _ errors.UserError = &CaptureByReferenceError{}
var _ errors.SecondaryError = &CaptureByReferenceError{}

func (*CaptureByReferenceError) isSemanticError() {}

func (*CaptureByReferenceError) IsUserError() {}

func (e *CaptureByReferenceError) Error() string {
	return fmt.Sprintf(
		"cannot capture `%s` by reference",
		e.Name,
	)
}

func (e *CaptureByReferenceError) SecondaryError() string {
	return "captures copy their initial value; remove the `&`"
}

// CaptureNameCollisionError

type CaptureNameCollisionError struct {
	Name          string
	PreviousRange ast.Range
	ast.Range
}

var _ SemanticError = &CaptureNameCollisionError{}
var _ errors.UserError = &CaptureNameCollisionError{}
var _ errors.ErrorNotes = &CaptureNameCollisionError{}

func (*CaptureNameCollisionError) isSemanticError() {}

func (*CaptureNameCollisionError) IsUserError() {}

func (e *CaptureNameCollisionError) Error() string {
	return fmt.Sprintf(
		"cannot capture `%s`: a capture with the same name already exists",
		e.Name,
	)
}

func (e *CaptureNameCollisionError) ErrorNotes() []errors.ErrorNote {
	return []errors.ErrorNote{
		&PreviousCaptureNote{
			Range: e.PreviousRange,
		},
	}
}

type PreviousCaptureNote struct {
	ast.Range
}

func (*PreviousCaptureNote) Message() string {
	return "previously captured here"
}

// UnknownCaptureReferenceError

// UnknownCaptureReferenceError is reported when a literal's body
// references a name which is neither bound inside the literal
// nor declared in the enclosing scope
type UnknownCaptureReferenceError struct {
	Name       string
	suggestion string
	ast.Range
}

var _ SemanticError = &UnknownCaptureReferenceError{}
var _ errors.UserError = &UnknownCaptureReferenceError{}
var _ errors.SecondaryError = &UnknownCaptureReferenceError{}

func (*UnknownCaptureReferenceError) isSemanticError() {}

func (*UnknownCaptureReferenceError) IsUserError() {}

func (e *UnknownCaptureReferenceError) Error() string {
	return fmt.Sprintf(
		"cannot find `%s` in the enclosing scope",
		e.Name,
	)
}

func (e *UnknownCaptureReferenceError) SecondaryError() string {
	if e.suggestion != "" {
		return fmt.Sprintf("did you mean `%s`?", e.suggestion)
	}
	return "not declared in the enclosing scope"
}

// MutatingRequirementViaBodyError

// MutatingRequirementViaBodyError is reported when a literal's body
// mutates captured state while fulfilling a non-mutating requirement.
// A lowered literal must behave like a value-semantics closure:
// invocation never mutates the closure value itself.
type MutatingRequirementViaBodyError struct {
	RequirementIdentifier string
	CaptureName           string
	ast.Range
}

var _ SemanticError = &MutatingRequirementViaBodyError{}
var _ errors.UserError = &MutatingRequirementViaBodyError{}
var _ errors.SecondaryError = &MutatingRequirementViaBodyError{}

func (*MutatingRequirementViaBodyError) isSemanticError() {}

func (*MutatingRequirementViaBodyError) IsUserError() {}

func (e *MutatingRequirementViaBodyError) Error() string {
	return fmt.Sprintf(
		"cannot mutate capture `%s` in the body fulfilling non-mutating requirement `%s`",
		e.CaptureName,
		e.RequirementIdentifier,
	)
}

func (e *MutatingRequirementViaBodyError) SecondaryError() string {
	return fmt.Sprintf(
		"requirement `%s` is not declared `mutating`",
		e.RequirementIdentifier,
	)
}

// AssignmentToConstantCaptureError

type AssignmentToConstantCaptureError struct {
	Name string
	ast.Range
}

var _ SemanticError = &AssignmentToConstantCaptureError{}
var _ errors.UserError = &AssignmentToConstantCaptureError{}
var _ errors.SecondaryError = &AssignmentToConstantCaptureError{}

func (*AssignmentToConstantCaptureError) isSemanticError() {}

func (*AssignmentToConstantCaptureError) IsUserError() {}

func (e *AssignmentToConstantCaptureError) Error() string {
	return fmt.Sprintf(
		"cannot assign to constant capture `%s`",
		e.Name,
	)
}

func (e *AssignmentToConstantCaptureError) SecondaryError() string {
	return fmt.Sprintf(
		"capture `%s` with `var` to make it mutable",
		e.Name,
	)
}

// StoredPropertyInMultiDeclarationBodyError

// StoredPropertyInMultiDeclarationBodyError is reported for a stored
// property declared inside a multi-declaration body.
// Captures are the only storage-declaration mechanism.
type StoredPropertyInMultiDeclarationBodyError struct {
	Name string
	ast.Range
}

var _ SemanticError = &StoredPropertyInMultiDeclarationBodyError{}
var _ errors.UserError = &StoredPropertyInMultiDeclarationBodyError{}
var _ errors.SecondaryError = &StoredPropertyInMultiDeclarationBodyError{}

func (*StoredPropertyInMultiDeclarationBodyError) isSemanticError() {}

func (*StoredPropertyInMultiDeclarationBodyError) IsUserError() {}

func (e *StoredPropertyInMultiDeclarationBodyError) Error() string {
	return fmt.Sprintf(
		"cannot declare stored property `%s` in a multi-declaration body",
		e.Name,
	)
}

func (e *StoredPropertyInMultiDeclarationBodyError) SecondaryError() string {
	return fmt.Sprintf(
		"declare `%s` in the capture list instead",
		e.Name,
	)
}

// CaptureListOnMetatypePathError

type CaptureListOnMetatypePathError struct {
	ast.Range
}

var _ SemanticError = &CaptureListOnMetatypePathError{}
var _ errors.UserError = &CaptureListOnMetatypePathError{}
var _ errors.SecondaryError = &CaptureListOnMetatypePathError{}

func (*CaptureListOnMetatypePathError) isSemanticError() {}

func (*CaptureListOnMetatypePathError) IsUserError() {}

func (e *CaptureListOnMetatypePathError) Error() string {
	return "cannot capture values from the enclosing scope when fulfilling a static requirement"
}

func (e *CaptureListOnMetatypePathError) SecondaryError() string {
	return "the literal produces a type, which has no construction-time state"
}

// SuperfluousBodyError

// SuperfluousBodyError is reported when all requirements are covered
// but the literal declares a body: there is no requirement
// the body could bind to
type SuperfluousBodyError struct {
	BodyKind ast.ClosureBodyKind
	ast.Range
}

var _ SemanticError = &SuperfluousBodyError{}
var _ errors.UserError = &SuperfluousBodyError{}
var _ errors.SecondaryError = &SuperfluousBodyError{}

func (*SuperfluousBodyError) isSemanticError() {}

func (*SuperfluousBodyError) IsUserError() {}

func (e *SuperfluousBodyError) Error() string {
	return fmt.Sprintf(
		"superfluous %s: all requirements are covered by defaults or synthesis",
		e.BodyKind.Name(),
	)
}

func (e *SuperfluousBodyError) SecondaryError() string {
	return "remove the body, or capture the values the type needs"
}

// FindClosestIdentifier finds the identifier
// with the smallest edit distance to the target,
// for "did you mean" suggestions
func FindClosestIdentifier(target string, identifiers []string) string {
	closestDistance := -1
	closest := ""

	targetRunes := []rune(target)

	for _, identifier := range identifiers {
		distance := levenshtein.DistanceForStrings(
			targetRunes,
			[]rune(identifier),
			levenshtein.DefaultOptions,
		)

		if closestDistance < 0 || distance < closestDistance {
			closestDistance = distance
			closest = identifier
		}
	}

	// suggestions further away than half the target's length
	// are more confusing than helpful
	if closestDistance > len(targetRunes)/2 {
		return ""
	}

	return closest
}
