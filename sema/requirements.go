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
	"sort"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bitset"

	"github.com/lumen-lang/lumen/ast"
	"github.com/lumen-lang/lumen/common"
	"github.com/lumen-lang/lumen/errors"
)

// RequirementKind

type RequirementKind uint

const (
	RequirementKindUnknown RequirementKind = iota
	RequirementKindMethod
	RequirementKindReadProperty
	RequirementKindReadSubscript
	RequirementKindMutableProperty
	RequirementKindMutableSubscript
	RequirementKindStaticMethod
)

func (k RequirementKind) Name() string {
	switch k {
	case RequirementKindMethod:
		return "method"
	case RequirementKindReadProperty:
		return "read-only property"
	case RequirementKindReadSubscript:
		return "read-only subscript"
	case RequirementKindMutableProperty:
		return "mutable property"
	case RequirementKindMutableSubscript:
		return "mutable subscript"
	case RequirementKindStaticMethod:
		return "static method"
	}

	panic(errors.NewUnreachableError())
}

// IsFunctionLike returns true for the kinds a literal's parameters and
// statement body can fulfill directly as a single witness:
// a method, a read-only property, or a read-only subscript
func (k RequirementKind) IsFunctionLike() bool {
	switch k {
	case RequirementKindMethod,
		RequirementKindReadProperty,
		RequirementKindReadSubscript:

		return true
	}
	return false
}

// IsAccessorBased returns true for the kinds fulfilled
// by a paired get/set accessor body
func (k RequirementKind) IsAccessorBased() bool {
	switch k {
	case RequirementKindMutableProperty,
		RequirementKindMutableSubscript:

		return true
	}
	return false
}

func (k RequirementKind) IsStatic() bool {
	return k == RequirementKindStaticMethod
}

// Requirement

// Requirement is one protocol member a conforming type must provide,
// directly or via a default implementation or compiler synthesis.
// Immutable once extracted from a protocol declaration.
type Requirement struct {
	ProtocolType *ProtocolType
	Identifier   string
	Kind         RequirementKind
	// FunctionType is the signature for method-like requirements,
	// and the accessor signature for property/subscript requirements
	// (parameters = subscript indices, return type = element type)
	FunctionType *FunctionType
	Mutating     bool
	Throwing     bool
	// HasDefaultImplementation is true if the protocol declares
	// a default implementation for this requirement
	HasDefaultImplementation bool
	// DefaultImplementation is the adopted member declaration,
	// if HasDefaultImplementation is true
	DefaultImplementation ast.Declaration
}

func NewRequirement(
	gauge common.MemoryGauge,
	identifier string,
	kind RequirementKind,
	functionType *FunctionType,
	mutating bool,
	throwing bool,
) *Requirement {
	common.UseMemory(gauge, common.RequirementMemoryUsage)
	return &Requirement{
		Identifier:   identifier,
		Kind:         kind,
		FunctionType: functionType,
		Mutating:     mutating,
		Throwing:     throwing,
	}
}

func (r *Requirement) WithDefaultImplementation(declaration ast.Declaration) *Requirement {
	r.HasDefaultImplementation = true
	r.DefaultImplementation = declaration
	return r
}

// SynthesisRules

// SynthesisRules decides which requirements the compiler can derive
// without an explicit witness, e.g. equatable/hashable-style members.
// It is a collaborator of the requirement analyzer:
// the analyzer only classifies, the rules say what is derivable.
type SynthesisRules interface {
	IsSynthesizable(requirement *Requirement) bool
}

// defaultSynthesisRules derives the equality and hashing members
// all-value-typed structures support
type defaultSynthesisRules struct{}

var DefaultSynthesisRules SynthesisRules = defaultSynthesisRules{}

var synthesizableRequirementIdentifiers = map[string]RequirementKind{
	"equals":    RequirementKindMethod,
	"hashValue": RequirementKindReadProperty,
}

func (defaultSynthesisRules) IsSynthesizable(requirement *Requirement) bool {
	kind, ok := synthesizableRequirementIdentifiers[requirement.Identifier]
	return ok && kind == requirement.Kind
}

// RequirementSet

// RequirementSet is the ordered set of requirements of a protocol
// or protocol conjunction. Coverage (defaulted or synthesizable)
// and staticness are tracked as bit masks over the requirement order.
//
// Safe for concurrent read access once computed:
// the analyzer computes a set at most once per distinct protocol set
// and never mutates it afterwards.
type RequirementSet struct {
	requirements []*Requirement
	covered      *bitset.BitSet
	statics      *bitset.BitSet
}

func NewRequirementSet(
	gauge common.MemoryGauge,
	requirements []*Requirement,
	rules SynthesisRules,
) *RequirementSet {
	common.UseMemory(gauge, common.RequirementSetMemoryUsage)

	count := uint(len(requirements))
	covered := bitset.New(count)
	statics := bitset.New(count)

	for i, requirement := range requirements {
		if requirement.Kind.IsStatic() {
			statics.Set(uint(i))
		}
		if requirement.HasDefaultImplementation ||
			rules.IsSynthesizable(requirement) {

			covered.Set(uint(i))
		}
	}

	return &RequirementSet{
		requirements: requirements,
		covered:      covered,
		statics:      statics,
	}
}

func (s *RequirementSet) Requirements() []*Requirement {
	return s.requirements
}

func (s *RequirementSet) Len() int {
	return len(s.requirements)
}

// IsCovered returns true if the requirement at the given index
// has a default implementation or a synthesis rule
func (s *RequirementSet) IsCovered(index int) bool {
	return s.covered.Test(uint(index))
}

// UncoveredRequirements returns the non-static requirements which have
// no default implementation and no synthesis rule.
// These must be explicitly fulfilled by a literal's body.
func (s *RequirementSet) UncoveredRequirements() []*Requirement {
	uncovered := s.covered.Clone().Complement()
	uncovered.InPlaceDifference(s.statics)

	result := make([]*Requirement, 0, uncovered.Count())
	for i, ok := uncovered.NextSet(0); ok && i < uint(len(s.requirements)); i, ok = uncovered.NextSet(i + 1) {
		result = append(result, s.requirements[i])
	}
	return result
}

// UncoveredStaticRequirements returns the static requirements
// lacking a default implementation and a synthesis rule.
// Tracked separately: they are only fulfillable on the metatype path.
func (s *RequirementSet) UncoveredStaticRequirements() []*Requirement {
	uncovered := s.covered.Clone().Complement()
	uncovered.InPlaceIntersection(s.statics)

	result := make([]*Requirement, 0, uncovered.Count())
	for i, ok := uncovered.NextSet(0); ok && i < uint(len(s.requirements)); i, ok = uncovered.NextSet(i + 1) {
		result = append(result, s.requirements[i])
	}
	return result
}

// CoveredRequirements returns the requirements satisfied by defaults
// or synthesis. They are inherited by a synthesized structure,
// never re-emitted.
func (s *RequirementSet) CoveredRequirements() []*Requirement {
	result := make([]*Requirement, 0, s.covered.Count())
	for i, ok := s.covered.NextSet(0); ok && i < uint(len(s.requirements)); i, ok = s.covered.NextSet(i + 1) {
		result = append(result, s.requirements[i])
	}
	return result
}

// RequirementAnalyzer

// RequirementAnalyzer classifies protocol sets into RequirementSets.
// It never fails: a verdict such as "not single-requirement"
// is rendered later, by the applicability resolver.
//
// Analysis is memoized per distinct protocol set for the compilation,
// with a compute-once-then-publish discipline: the first caller
// computes and publishes, concurrent callers wait on the entry.
type RequirementAnalyzer struct {
	gauge   common.MemoryGauge
	rules   SynthesisRules
	entries map[string]*requirementSetEntry
	mutex   sync.Mutex
}

type requirementSetEntry struct {
	once sync.Once
	set  *RequirementSet
}

func NewRequirementAnalyzer(
	gauge common.MemoryGauge,
	rules SynthesisRules,
) *RequirementAnalyzer {
	if rules == nil {
		rules = DefaultSynthesisRules
	}
	return &RequirementAnalyzer{
		gauge:   gauge,
		rules:   rules,
		entries: map[string]*requirementSetEntry{},
	}
}

// Analyze returns the RequirementSet of the given protocol conjunction.
// The requirement order is the protocols' declaration order,
// then each protocol's requirement declaration order.
func (a *RequirementAnalyzer) Analyze(protocolTypes []*ProtocolType) *RequirementSet {
	key := protocolSetKey(protocolTypes)

	a.mutex.Lock()
	entry, ok := a.entries[key]
	if !ok {
		entry = &requirementSetEntry{}
		a.entries[key] = entry
	}
	a.mutex.Unlock()

	entry.once.Do(func() {
		entry.set = a.analyze(protocolTypes)
	})

	return entry.set
}

func (a *RequirementAnalyzer) analyze(protocolTypes []*ProtocolType) *RequirementSet {
	var requirements []*Requirement
	for _, protocolType := range protocolTypes {
		requirements = append(requirements, protocolType.Requirements...)
	}

	return NewRequirementSet(a.gauge, requirements, a.rules)
}

// protocolSetKey derives the cache key of a protocol conjunction:
// the sorted type IDs, so `P & Q` and `Q & P` share one entry
func protocolSetKey(protocolTypes []*ProtocolType) string {
	ids := make([]string, 0, len(protocolTypes))
	for _, protocolType := range protocolTypes {
		ids = append(ids, string(protocolType.ID()))
	}
	sort.Strings(ids)
	return strings.Join(ids, "&")
}
