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
	"runtime"
	"sync"

	"github.com/lumen-lang/lumen/ast"
	"github.com/lumen-lang/lumen/common"
)

// TargetContext

// TargetContext is the resolved expected type context a closure literal
// appears in, as determined by the type-checking front end:
// a constrained generic parameter with its protocol bound set,
// an existential protocol composition, or a metatype expectation.
// All three are treated uniformly as a requirement set source.
type TargetContext struct {
	Protocols []*ProtocolType
	// IsMetatype is true if the literal is expected to produce a type,
	// not a value
	IsMetatype bool
	// EnclosingScope is the lexical scope enclosing the literal
	EnclosingScope *LexicalScope
	// EnclosingTypeName is the name of the type whose member
	// the literal appears in, if any. `Self` in the literal's body
	// resolves to it.
	EnclosingTypeName string
}

// LoweringResult

// LoweringResult is the outcome of successfully lowering one literal
type LoweringResult struct {
	Resolution Resolution
	StructType *SynthesizedStructType
	// Declaration is the synthesized structure declaration,
	// consumed by the general type checker like any other declaration
	Declaration *ast.CompositeDeclaration
	// Replacement is the expression replacing the literal
	// in the surrounding expression tree
	Replacement *ast.InvocationExpression
}

// Lowerer

// Lowerer runs the closure-literal-to-anonymous-struct lowering:
// requirement analysis, capture collection, applicability resolution,
// struct synthesis, context rewriting, and instantiation emission,
// strictly in that order per literal.
//
// Independent literals may be lowered concurrently:
// the requirement cache and the declaration registry are shared
// and safe for concurrent use, and one literal's failure
// never invalidates sibling literals.
type Lowerer struct {
	gauge       common.MemoryGauge
	location    common.Location
	rules       SynthesisRules
	analyzer    *RequirementAnalyzer
	registry    *DeclarationRegistry
	elaboration *LoweringElaboration
	emitter     *InstantiationEmitter
}

type Option func(*Lowerer)

func WithMemoryGauge(gauge common.MemoryGauge) Option {
	return func(l *Lowerer) {
		l.gauge = gauge
	}
}

func WithLocation(location common.Location) Option {
	return func(l *Lowerer) {
		l.location = location
	}
}

func WithSynthesisRules(rules SynthesisRules) Option {
	return func(l *Lowerer) {
		l.rules = rules
	}
}

func WithElaboration(elaboration *LoweringElaboration) Option {
	return func(l *Lowerer) {
		l.elaboration = elaboration
	}
}

func WithDeclarationRegistry(registry *DeclarationRegistry) Option {
	return func(l *Lowerer) {
		l.registry = registry
	}
}

func NewLowerer(options ...Option) *Lowerer {
	lowerer := &Lowerer{
		rules: DefaultSynthesisRules,
	}

	for _, option := range options {
		option(lowerer)
	}

	if lowerer.registry == nil {
		lowerer.registry = NewDeclarationRegistry()
	}
	if lowerer.elaboration == nil {
		lowerer.elaboration = NewLoweringElaboration()
	}

	lowerer.analyzer = NewRequirementAnalyzer(lowerer.gauge, lowerer.rules)
	lowerer.emitter = NewInstantiationEmitter(lowerer.gauge)

	return lowerer
}

func (l *Lowerer) Elaboration() *LoweringElaboration {
	return l.elaboration
}

func (l *Lowerer) Registry() *DeclarationRegistry {
	return l.registry
}

// LowerClosureLiteral lowers one closure literal against its target
// type context. On success, the synthesized declaration is registered
// and the result is recorded in the elaboration.
//
// All failures are static and local to the literal. A failed literal
// is not retried as an ordinary closure: the mismatch is reported as-is.
func (l *Lowerer) LowerClosureLiteral(
	literal *ast.ClosureLiteralExpression,
	target TargetContext,
) (*LoweringResult, error) {

	requirementSet := l.analyzer.Analyze(target.Protocols)

	collector := NewCaptureCollector(l.gauge, target.EnclosingScope)
	captures, err := collector.Collect(literal)
	if err != nil {
		return nil, err
	}

	ctx := ClosureLiteralContext{
		Literal:        literal,
		Captures:       captures,
		RequirementSet: requirementSet,
		IsMetatype:     target.IsMetatype,
	}

	resolution, err := ResolveApplicability(ctx)
	if err != nil {
		return nil, err
	}

	rewriter := NewContextRewriter(
		l.gauge,
		capturesOuterSelf(captures),
		target.EnclosingTypeName,
	)

	synthesizer := NewStructSynthesizer(
		l.gauge,
		l.registry,
		rewriter,
		l.location,
	)

	structType, err := synthesizer.Synthesize(resolution, ctx, target.Protocols)
	if err != nil {
		return nil, err
	}

	replacement := l.emitter.Emit(structType, literal)

	l.elaboration.SetClosureLiteralResolution(literal, resolution)
	l.elaboration.SetClosureLiteralStructType(literal, structType)
	l.elaboration.SetClosureLiteralReplacement(literal, replacement)

	return &LoweringResult{
		Resolution:  resolution,
		StructType:  structType,
		Declaration: structType.Declaration,
		Replacement: replacement,
	}, nil
}

// LoweringRequest pairs one literal with its target type context
type LoweringRequest struct {
	Literal *ast.ClosureLiteralExpression
	Target  TargetContext
}

// LowerAll lowers independent literals in parallel on worker
// goroutines. No literal's result depends on another literal's result,
// so there is no ordering requirement between them.
//
// Results are in request order. If any literal failed,
// the returned error is a LoweringError carrying all failures.
func (l *Lowerer) LowerAll(requests []LoweringRequest) ([]*LoweringResult, error) {

	results := make([]*LoweringResult, len(requests))
	errs := make([]error, len(requests))

	workerCount := runtime.NumCPU()
	if workerCount > len(requests) {
		workerCount = len(requests)
	}

	indices := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range indices {
				request := requests[index]
				results[index], errs[index] =
					l.LowerClosureLiteral(request.Literal, request.Target)
			}
		}()
	}

	for index := range requests {
		indices <- index
	}
	close(indices)

	wg.Wait()

	var loweringErrors []error
	for _, err := range errs {
		if err != nil {
			loweringErrors = append(loweringErrors, err)
		}
	}

	if len(loweringErrors) > 0 {
		return results, LoweringError{
			Location: l.location,
			Errors:   loweringErrors,
		}
	}

	return results, nil
}

func capturesOuterSelf(captures []*CaptureDescriptor) bool {
	for _, capture := range captures {
		if capture.FieldName == OuterSelfFieldName {
			return true
		}
	}
	return false
}

// RenderDeclaration renders the synthesized structure declaration
// as source, for diagnostics and tooling
func RenderDeclaration(declaration *ast.CompositeDeclaration) string {
	return ast.Prettier(declaration)
}
