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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestRequirementSetClassification(t *testing.T) {

	t.Parallel()

	evaluate := NewRequirement(
		nil,
		"evaluate",
		RequirementKindMethod,
		&FunctionType{
			Parameters: []Parameter{
				{
					Label:          "_",
					Identifier:     "value",
					TypeAnnotation: StringTypeAnnotation,
				},
			},
			ReturnTypeAnnotation: BoolTypeAnnotation,
		},
		false,
		false,
	)

	description := NewRequirement(
		nil,
		"description",
		RequirementKindReadProperty,
		&FunctionType{
			ReturnTypeAnnotation: StringTypeAnnotation,
		},
		false,
		false,
	).WithDefaultImplementation(nil)

	equals := NewRequirement(
		nil,
		"equals",
		RequirementKindMethod,
		&FunctionType{
			ReturnTypeAnnotation: BoolTypeAnnotation,
		},
		false,
		false,
	)

	make_ := NewRequirement(
		nil,
		"make",
		RequirementKindStaticMethod,
		&FunctionType{
			ReturnTypeAnnotation: IntTypeAnnotation,
		},
		false,
		false,
	)

	set := NewRequirementSet(
		nil,
		[]*Requirement{
			evaluate,
			description,
			equals,
			make_,
		},
		DefaultSynthesisRules,
	)

	assert.Equal(t, 4, set.Len())

	assert.Equal(t,
		[]*Requirement{evaluate},
		set.UncoveredRequirements(),
	)

	assert.Equal(t,
		[]*Requirement{make_},
		set.UncoveredStaticRequirements(),
	)

	// `description` has a default implementation,
	// `equals` is synthesizable
	assert.Equal(t,
		[]*Requirement{description, equals},
		set.CoveredRequirements(),
	)
}

func TestRequirementAnalyzerMemoization(t *testing.T) {

	t.Parallel()

	p := NewProtocolType(
		nil,
		"P",
		[]*Requirement{
			NewRequirement(
				nil,
				"run",
				RequirementKindMethod,
				&FunctionType{
					ReturnTypeAnnotation: VoidTypeAnnotation,
				},
				false,
				false,
			),
		},
	)

	q := NewProtocolType(
		nil,
		"Q",
		[]*Requirement{
			NewRequirement(
				nil,
				"count",
				RequirementKindReadProperty,
				&FunctionType{
					ReturnTypeAnnotation: IntTypeAnnotation,
				},
				false,
				false,
			),
		},
	)

	analyzer := NewRequirementAnalyzer(nil, nil)

	first := analyzer.Analyze([]*ProtocolType{p, q})
	second := analyzer.Analyze([]*ProtocolType{p, q})

	assert.Same(t, first, second)

	// the conjunction is order-independent

	reversed := analyzer.Analyze([]*ProtocolType{q, p})
	assert.Same(t, first, reversed)

	other := analyzer.Analyze([]*ProtocolType{p})
	assert.NotSame(t, first, other)
}

func TestRequirementAnalyzerConcurrentAccess(t *testing.T) {

	defer goleak.VerifyNone(t)

	protocol := NewProtocolType(
		nil,
		"Task",
		[]*Requirement{
			NewRequirement(
				nil,
				"execute",
				RequirementKindMethod,
				&FunctionType{
					ReturnTypeAnnotation: VoidTypeAnnotation,
				},
				false,
				false,
			),
		},
	)

	analyzer := NewRequirementAnalyzer(nil, nil)

	const goroutineCount = 16

	results := make([]*RequirementSet, goroutineCount)

	var wg sync.WaitGroup
	for i := 0; i < goroutineCount; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = analyzer.Analyze([]*ProtocolType{protocol})
		}(i)
	}
	wg.Wait()

	// compute-once-then-publish:
	// every caller observes the same published set

	first := results[0]
	require.NotNil(t, first)
	for _, result := range results[1:] {
		assert.Same(t, first, result)
	}
}

func TestDefaultSynthesisRules(t *testing.T) {

	t.Parallel()

	synthesizableEquals := NewRequirement(
		nil,
		"equals",
		RequirementKindMethod,
		nil,
		false,
		false,
	)
	assert.True(t, DefaultSynthesisRules.IsSynthesizable(synthesizableEquals))

	synthesizableHashValue := NewRequirement(
		nil,
		"hashValue",
		RequirementKindReadProperty,
		nil,
		false,
		false,
	)
	assert.True(t, DefaultSynthesisRules.IsSynthesizable(synthesizableHashValue))

	// same name, wrong kind
	equalsProperty := NewRequirement(
		nil,
		"equals",
		RequirementKindReadProperty,
		nil,
		false,
		false,
	)
	assert.False(t, DefaultSynthesisRules.IsSynthesizable(equalsProperty))

	other := NewRequirement(
		nil,
		"evaluate",
		RequirementKindMethod,
		nil,
		false,
		false,
	)
	assert.False(t, DefaultSynthesisRules.IsSynthesizable(other))
}
