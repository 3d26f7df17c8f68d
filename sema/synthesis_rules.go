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
	"github.com/lumen-lang/lumen/errors"
)

// CoverageState

// CoverageState classifies how a requirement is satisfied
// on a synthesized structure
type CoverageState uint

const (
	CoverageStateUnknown CoverageState = iota
	// CoverageStateUncovered : the requirement must be fulfilled
	// by the literal's body
	CoverageStateUncovered
	// CoverageStateDefaulted : the protocol declares
	// a default implementation
	CoverageStateDefaulted
	// CoverageStateSynthesized : the compiler derives the member,
	// e.g. equatable/hashable-style synthesis
	CoverageStateSynthesized
)

func (s CoverageState) Name() string {
	switch s {
	case CoverageStateUncovered:
		return "uncovered"
	case CoverageStateDefaulted:
		return "defaulted"
	case CoverageStateSynthesized:
		return "synthesized"
	}

	panic(errors.NewUnreachableError())
}

// GenerationStrategy

// GenerationStrategy is how the struct synthesizer produces the member
// satisfying one requirement
type GenerationStrategy uint

const (
	GenerationStrategyUnknown GenerationStrategy = iota
	// GenerationStrategyWitnessFunction emits a function declaration
	// from the literal's parameters and statement body
	GenerationStrategyWitnessFunction
	// GenerationStrategyWitnessProperty emits a read-only property
	// whose getter is the literal's statement body
	GenerationStrategyWitnessProperty
	// GenerationStrategyWitnessSubscript emits a read-only subscript
	// whose getter is the literal's statement body
	GenerationStrategyWitnessSubscript
	// GenerationStrategyWitnessAccessors emits a property or subscript
	// with the literal's paired get/set accessor bodies
	GenerationStrategyWitnessAccessors
	// GenerationStrategyWitnessStaticFunction emits a static function
	// declaration from the literal's parameters and statement body
	GenerationStrategyWitnessStaticFunction
	// GenerationStrategyInherit emits nothing: the requirement
	// is satisfied by the protocol's default implementation
	// or by compiler synthesis, which are inherited, not re-emitted
	GenerationStrategyInherit
)

func (s GenerationStrategy) Name() string {
	switch s {
	case GenerationStrategyWitnessFunction:
		return "witness function"
	case GenerationStrategyWitnessProperty:
		return "witness property"
	case GenerationStrategyWitnessSubscript:
		return "witness subscript"
	case GenerationStrategyWitnessAccessors:
		return "witness accessors"
	case GenerationStrategyWitnessStaticFunction:
		return "witness static function"
	case GenerationStrategyInherit:
		return "inherit"
	}

	panic(errors.NewUnreachableError())
}

type generationKey struct {
	kind     RequirementKind
	coverage CoverageState
}

// generationStrategies is the declarative rule table mapping
// a requirement's kind and coverage to the member generation strategy.
// Keeping this a table keeps the applicability state machine
// exhaustive and testable.
var generationStrategies = map[generationKey]GenerationStrategy{
	{RequirementKindMethod, CoverageStateUncovered}:            GenerationStrategyWitnessFunction,
	{RequirementKindReadProperty, CoverageStateUncovered}:      GenerationStrategyWitnessProperty,
	{RequirementKindReadSubscript, CoverageStateUncovered}:     GenerationStrategyWitnessSubscript,
	{RequirementKindMutableProperty, CoverageStateUncovered}:   GenerationStrategyWitnessAccessors,
	{RequirementKindMutableSubscript, CoverageStateUncovered}:  GenerationStrategyWitnessAccessors,
	{RequirementKindStaticMethod, CoverageStateUncovered}:      GenerationStrategyWitnessStaticFunction,
	{RequirementKindMethod, CoverageStateDefaulted}:            GenerationStrategyInherit,
	{RequirementKindReadProperty, CoverageStateDefaulted}:      GenerationStrategyInherit,
	{RequirementKindReadSubscript, CoverageStateDefaulted}:     GenerationStrategyInherit,
	{RequirementKindMutableProperty, CoverageStateDefaulted}:   GenerationStrategyInherit,
	{RequirementKindMutableSubscript, CoverageStateDefaulted}:  GenerationStrategyInherit,
	{RequirementKindStaticMethod, CoverageStateDefaulted}:      GenerationStrategyInherit,
	{RequirementKindMethod, CoverageStateSynthesized}:          GenerationStrategyInherit,
	{RequirementKindReadProperty, CoverageStateSynthesized}:    GenerationStrategyInherit,
	{RequirementKindReadSubscript, CoverageStateSynthesized}:   GenerationStrategyInherit,
	{RequirementKindMutableProperty, CoverageStateSynthesized}: GenerationStrategyInherit,
	{RequirementKindMutableSubscript, CoverageStateSynthesized}: GenerationStrategyInherit,
	{RequirementKindStaticMethod, CoverageStateSynthesized}:     GenerationStrategyInherit,
}

// GenerationStrategyFor returns the member generation strategy
// for the given requirement kind and coverage state
func GenerationStrategyFor(kind RequirementKind, coverage CoverageState) GenerationStrategy {
	strategy, ok := generationStrategies[generationKey{kind, coverage}]
	if !ok {
		panic(errors.NewUnreachableError())
	}
	return strategy
}

// CoverageStateOf classifies how a requirement is covered
// under the given synthesis rules
func CoverageStateOf(requirement *Requirement, rules SynthesisRules) CoverageState {
	switch {
	case requirement.HasDefaultImplementation:
		return CoverageStateDefaulted
	case rules.IsSynthesizable(requirement):
		return CoverageStateSynthesized
	default:
		return CoverageStateUncovered
	}
}
