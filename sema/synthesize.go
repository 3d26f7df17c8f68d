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
	"sync"

	"github.com/lumen-lang/lumen/ast"
	"github.com/lumen-lang/lumen/common"
	"github.com/lumen-lang/lumen/errors"
)

// SynthesizedStructNamePrefix is the prefix of generated type names.
// The `$` keeps them out of the user's namespace.
const SynthesizedStructNamePrefix = "$AnonStruct"

// InitializerIdentifier is the name of a type's initializer
const InitializerIdentifier = "init"

// DeclarationRegistry

// DeclarationRegistry is the compilation unit's set of synthesized
// declarations. Registration is a serialized append:
// generated names are reserved under mutual exclusion from
// a monotonically increasing counter, so two concurrently lowered
// literals never collide on a name.
//
// Names are counter-based, not content-hashed, so structurally
// identical but distinct literals never accidentally merge.
type DeclarationRegistry struct {
	mutex        sync.Mutex
	counter      uint64
	declarations []*ast.CompositeDeclaration
	byLiteral    map[*ast.ClosureLiteralExpression]*SynthesizedStructType
}

func NewDeclarationRegistry() *DeclarationRegistry {
	return &DeclarationRegistry{
		byLiteral: map[*ast.ClosureLiteralExpression]*SynthesizedStructType{},
	}
}

// ReserveName reserves the next generated type name
func (r *DeclarationRegistry) ReserveName() string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.counter++
	return fmt.Sprintf("%s%d", SynthesizedStructNamePrefix, r.counter)
}

// StructTypeForLiteral returns the synthesized type
// already registered for the given literal, if any
func (r *DeclarationRegistry) StructTypeForLiteral(
	literal *ast.ClosureLiteralExpression,
) (*SynthesizedStructType, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	structType, ok := r.byLiteral[literal]
	return structType, ok
}

// Register registers the synthesized type for the given literal.
// Each literal is registered exactly once:
// if another registration won the race, the earlier one is returned.
func (r *DeclarationRegistry) Register(
	literal *ast.ClosureLiteralExpression,
	structType *SynthesizedStructType,
) *SynthesizedStructType {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if existing, ok := r.byLiteral[literal]; ok {
		return existing
	}

	r.byLiteral[literal] = structType
	r.declarations = append(r.declarations, structType.Declaration)
	return structType
}

// Declarations returns a snapshot of all registered declarations,
// in registration order
func (r *DeclarationRegistry) Declarations() []*ast.CompositeDeclaration {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	result := make([]*ast.CompositeDeclaration, len(r.declarations))
	copy(result, r.declarations)
	return result
}

// StructSynthesizer

// StructSynthesizer builds the synthesized structure declaration
// for an accepted lowering: stored fields from the captures
// in collection order, conformances = the requested protocol set,
// an initializer taking one value per field, and the members
// fulfilling the resolved requirement(s).
//
// Requirements satisfiable by defaults or synthesis are inherited,
// never re-emitted.
type StructSynthesizer struct {
	gauge    common.MemoryGauge
	registry *DeclarationRegistry
	rewriter *ContextRewriter
	location common.Location
}

func NewStructSynthesizer(
	gauge common.MemoryGauge,
	registry *DeclarationRegistry,
	rewriter *ContextRewriter,
	location common.Location,
) *StructSynthesizer {
	return &StructSynthesizer{
		gauge:    gauge,
		registry: registry,
		rewriter: rewriter,
		location: location,
	}
}

func (s *StructSynthesizer) Synthesize(
	resolution Resolution,
	ctx ClosureLiteralContext,
	protocolTypes []*ProtocolType,
) (*SynthesizedStructType, error) {

	// repeated passes over the same literal are idempotent

	if existing, ok := s.registry.StructTypeForLiteral(ctx.Literal); ok {
		return existing, nil
	}

	err := s.checkMutations(resolution, ctx)
	if err != nil {
		return nil, err
	}

	name := s.registry.ReserveName()

	declarations, err := s.synthesizeMembers(resolution, ctx)
	if err != nil {
		return nil, err
	}

	conformances := make([]*ast.NominalType, 0, len(protocolTypes))
	for _, protocolType := range protocolTypes {
		conformances = append(
			conformances,
			ast.NewNominalType(
				s.gauge,
				ast.NewIdentifier(
					s.gauge,
					protocolType.Identifier,
					ast.Position{},
				),
				nil,
			),
		)
	}

	declaration := ast.NewCompositeDeclaration(
		s.gauge,
		ast.AccessNotSpecified,
		common.CompositeKindStructure,
		ast.NewIdentifier(s.gauge, name, ast.Position{}),
		conformances,
		ast.NewMembers(s.gauge, declarations),
		"",
		ast.NewRangeFromPositioned(s.gauge, ctx.Literal),
	)
	declaration.IsSynthesized = true

	structType := NewSynthesizedStructType(
		s.gauge,
		s.location,
		name,
		protocolTypes,
		ctx.Captures,
	)
	structType.Declaration = declaration

	return s.registry.Register(ctx.Literal, structType), nil
}

// synthesizeMembers builds the member declarations:
// fields, the initializer, and the requirement witnesses
func (s *StructSynthesizer) synthesizeMembers(
	resolution Resolution,
	ctx ClosureLiteralContext,
) (
	[]ast.Declaration,
	error,
) {
	var declarations []ast.Declaration

	for _, capture := range ctx.Captures {
		declarations = append(
			declarations,
			s.synthesizeField(capture),
		)
	}

	if len(ctx.Captures) > 0 {
		declarations = append(
			declarations,
			s.synthesizeInitializer(ctx.Captures),
		)
	}

	witnesses, err := s.synthesizeWitnesses(resolution, ctx)
	if err != nil {
		return nil, err
	}

	return append(declarations, witnesses...), nil
}

// synthesizeField builds the stored field for one capture.
// Field visibility is the most restrictive level expressible,
// and attributes on the capture item carry over verbatim.
func (s *StructSynthesizer) synthesizeField(capture *CaptureDescriptor) *ast.FieldDeclaration {
	return ast.NewFieldDeclaration(
		s.gauge,
		ast.AccessPrivate,
		capture.VariableKind,
		capture.Attributes,
		ast.NewIdentifier(s.gauge, capture.FieldName, ast.Position{}),
		s.typeAnnotation(capture.DeclaredType),
		"",
		ast.NewRange(s.gauge, capture.StartPos, capture.EndPos),
	)
}

// synthesizeInitializer builds the initializer taking one value
// per field, in field order, and assigning it to the field.
// Generated code: `self` is the synthesized structure's own self.
func (s *StructSynthesizer) synthesizeInitializer(
	captures []*CaptureDescriptor,
) *ast.SpecialFunctionDeclaration {

	parameters := make([]*ast.Parameter, 0, len(captures))
	statements := make([]ast.Statement, 0, len(captures))

	for _, capture := range captures {
		parameters = append(
			parameters,
			ast.NewParameter(
				s.gauge,
				"",
				ast.NewIdentifier(s.gauge, capture.FieldName, ast.Position{}),
				s.typeAnnotation(capture.DeclaredType),
				ast.Position{},
			),
		)

		statements = append(
			statements,
			ast.NewAssignmentStatement(
				s.gauge,
				ast.NewMemberExpression(
					s.gauge,
					ast.NewIdentifierExpression(
						s.gauge,
						ast.NewIdentifier(s.gauge, SelfIdentifier, ast.Position{}),
					),
					ast.Position{},
					ast.NewIdentifier(s.gauge, capture.FieldName, ast.Position{}),
				),
				ast.NewIdentifierExpression(
					s.gauge,
					ast.NewIdentifier(s.gauge, capture.FieldName, ast.Position{}),
				),
			),
		)
	}

	return ast.NewSpecialFunctionDeclaration(
		s.gauge,
		common.DeclarationKindInitializer,
		ast.NewFunctionDeclaration(
			s.gauge,
			ast.AccessNotSpecified,
			false,
			false,
			ast.NewIdentifier(s.gauge, InitializerIdentifier, ast.Position{}),
			ast.NewParameterList(s.gauge, parameters, ast.EmptyRange),
			nil,
			ast.NewFunctionBlock(
				s.gauge,
				ast.NewBlock(s.gauge, statements, ast.EmptyRange),
			),
			ast.Position{},
			"",
		),
	)
}

func (s *StructSynthesizer) synthesizeWitnesses(
	resolution Resolution,
	ctx ClosureLiteralContext,
) (
	[]ast.Declaration,
	error,
) {
	switch resolution.Path {
	case LoweringPathBodyless:
		return nil, nil

	case LoweringPathSingleRequirement:
		witness, err := s.synthesizeSingleWitness(resolution.FulfilledRequirement, ctx)
		if err != nil {
			return nil, err
		}
		return []ast.Declaration{witness}, nil

	case LoweringPathAccessor:
		witness := s.synthesizeAccessorWitness(resolution.FulfilledRequirement, ctx)
		return []ast.Declaration{witness}, nil

	case LoweringPathMetatype:
		witness := s.synthesizeStaticWitness(resolution.FulfilledRequirement, ctx)
		return []ast.Declaration{witness}, nil

	case LoweringPathMultiDeclaration:
		return s.synthesizeMultiDeclarationWitnesses(ctx)
	}

	panic(errors.NewUnreachableError())
}

func (s *StructSynthesizer) synthesizeSingleWitness(
	requirement *Requirement,
	ctx ClosureLiteralContext,
) (
	ast.Declaration,
	error,
) {
	body := ctx.Literal.Body.(*ast.StatementsBody)
	functionBlock := s.rewriter.RewriteFunctionBlock(
		ast.NewFunctionBlock(s.gauge, body.Block),
		RegionTagLiteralBody,
	)

	strategy := GenerationStrategyFor(requirement.Kind, CoverageStateUncovered)
	switch strategy {
	case GenerationStrategyWitnessFunction:
		return ast.NewFunctionDeclaration(
			s.gauge,
			ast.AccessPublic,
			false,
			requirement.Mutating,
			ast.NewIdentifier(s.gauge, requirement.Identifier, ast.Position{}),
			s.witnessParameterList(requirement, ctx),
			s.witnessReturnTypeAnnotation(requirement, ctx),
			functionBlock,
			ctx.Literal.StartPos,
			"",
		), nil

	case GenerationStrategyWitnessProperty:
		return ast.NewPropertyDeclaration(
			s.gauge,
			ast.AccessPublic,
			false,
			ast.NewIdentifier(s.gauge, requirement.Identifier, ast.Position{}),
			s.witnessReturnTypeAnnotation(requirement, ctx),
			&ast.Accessors{
				Get:   functionBlock,
				Range: ast.NewUnmeteredRangeFromPositioned(body),
			},
			"",
			ctx.Literal.StartPos,
		), nil

	case GenerationStrategyWitnessSubscript:
		return ast.NewSubscriptDeclaration(
			s.gauge,
			ast.AccessPublic,
			ast.NewIdentifier(s.gauge, requirement.Identifier, ast.Position{}),
			s.witnessParameterList(requirement, ctx),
			s.witnessReturnTypeAnnotation(requirement, ctx),
			&ast.Accessors{
				Get:   functionBlock,
				Range: ast.NewUnmeteredRangeFromPositioned(body),
			},
			"",
			ctx.Literal.StartPos,
		), nil
	}

	panic(errors.NewUnreachableError())
}

func (s *StructSynthesizer) synthesizeAccessorWitness(
	requirement *Requirement,
	ctx ClosureLiteralContext,
) ast.Declaration {

	body := ctx.Literal.Body.(*ast.AccessorsBody)

	accessors := &ast.Accessors{
		Get: s.rewriter.RewriteFunctionBlock(
			body.Accessors.Get,
			RegionTagLiteralBody,
		),
		Set: s.rewriter.RewriteFunctionBlock(
			body.Accessors.Set,
			RegionTagLiteralBody,
		),
		Range: body.Accessors.Range,
	}

	if requirement.Kind == RequirementKindMutableSubscript {
		return ast.NewSubscriptDeclaration(
			s.gauge,
			ast.AccessPublic,
			ast.NewIdentifier(s.gauge, requirement.Identifier, ast.Position{}),
			s.witnessParameterList(requirement, ctx),
			s.witnessReturnTypeAnnotation(requirement, ctx),
			accessors,
			"",
			ctx.Literal.StartPos,
		)
	}

	return ast.NewPropertyDeclaration(
		s.gauge,
		ast.AccessPublic,
		false,
		ast.NewIdentifier(s.gauge, requirement.Identifier, ast.Position{}),
		s.witnessReturnTypeAnnotation(requirement, ctx),
		accessors,
		"",
		ctx.Literal.StartPos,
	)
}

func (s *StructSynthesizer) synthesizeStaticWitness(
	requirement *Requirement,
	ctx ClosureLiteralContext,
) ast.Declaration {

	body := ctx.Literal.Body.(*ast.StatementsBody)

	return ast.NewFunctionDeclaration(
		s.gauge,
		ast.AccessPublic,
		true,
		false,
		ast.NewIdentifier(s.gauge, requirement.Identifier, ast.Position{}),
		s.witnessParameterList(requirement, ctx),
		s.witnessReturnTypeAnnotation(requirement, ctx),
		s.rewriter.RewriteFunctionBlock(
			ast.NewFunctionBlock(s.gauge, body.Block),
			RegionTagLiteralBody,
		),
		ctx.Literal.StartPos,
		"",
	)
}

// synthesizeMultiDeclarationWitnesses copies the declarations of
// a struct-style body as members. Stored properties are rejected:
// captures are the only storage-declaration mechanism.
func (s *StructSynthesizer) synthesizeMultiDeclarationWitnesses(
	ctx ClosureLiteralContext,
) (
	[]ast.Declaration,
	error,
) {
	body := ctx.Literal.Body.(*ast.DeclarationsBody)

	declarations := make([]ast.Declaration, 0, len(body.Declarations))

	for _, declaration := range body.Declarations {
		switch declaration := declaration.(type) {
		case *ast.FieldDeclaration:
			return nil, &StoredPropertyInMultiDeclarationBodyError{
				Name:  declaration.Identifier.Identifier,
				Range: ast.NewRangeFromPositioned(s.gauge, declaration),
			}

		case *ast.VariableDeclaration:
			return nil, &StoredPropertyInMultiDeclarationBodyError{
				Name:  declaration.Identifier.Identifier,
				Range: ast.NewRangeFromPositioned(s.gauge, declaration),
			}

		case *ast.FunctionDeclaration:
			declarations = append(
				declarations,
				ast.NewFunctionDeclaration(
					s.gauge,
					declaration.Access,
					declaration.IsStatic,
					declaration.IsMutating,
					declaration.Identifier,
					declaration.ParameterList,
					declaration.ReturnTypeAnnotation,
					s.rewriter.RewriteFunctionBlock(
						declaration.FunctionBlock,
						RegionTagLiteralBody,
					),
					declaration.StartPos,
					declaration.DocString,
				),
			)

		case *ast.PropertyDeclaration:
			declarations = append(
				declarations,
				ast.NewPropertyDeclaration(
					s.gauge,
					declaration.Access,
					declaration.IsStatic,
					declaration.Identifier,
					declaration.TypeAnnotation,
					s.rewriteAccessors(declaration.Accessors),
					declaration.DocString,
					declaration.StartPos,
				),
			)

		case *ast.SubscriptDeclaration:
			declarations = append(
				declarations,
				ast.NewSubscriptDeclaration(
					s.gauge,
					declaration.Access,
					declaration.Identifier,
					declaration.ParameterList,
					declaration.TypeAnnotation,
					s.rewriteAccessors(declaration.Accessors),
					declaration.DocString,
					declaration.StartPos,
				),
			)

		default:
			declarations = append(declarations, declaration)
		}
	}

	return declarations, nil
}

func (s *StructSynthesizer) rewriteAccessors(accessors *ast.Accessors) *ast.Accessors {
	if accessors == nil {
		return nil
	}
	return &ast.Accessors{
		Get:   s.rewriter.RewriteFunctionBlock(accessors.Get, RegionTagLiteralBody),
		Set:   s.rewriter.RewriteFunctionBlock(accessors.Set, RegionTagLiteralBody),
		Range: accessors.Range,
	}
}

// witnessParameterList returns the witness member's parameter list:
// the literal's own parameters when declared,
// the requirement's signature otherwise
func (s *StructSynthesizer) witnessParameterList(
	requirement *Requirement,
	ctx ClosureLiteralContext,
) *ast.ParameterList {
	if ctx.Literal.ParameterList != nil {
		return ctx.Literal.ParameterList
	}

	if requirement.FunctionType == nil {
		return nil
	}

	parameters := make([]*ast.Parameter, 0, len(requirement.FunctionType.Parameters))
	for _, parameter := range requirement.FunctionType.Parameters {
		parameters = append(
			parameters,
			ast.NewParameter(
				s.gauge,
				parameter.Label,
				ast.NewIdentifier(s.gauge, parameter.Identifier, ast.Position{}),
				s.typeAnnotation(parameter.TypeAnnotation.Type),
				ast.Position{},
			),
		)
	}
	return ast.NewParameterList(s.gauge, parameters, ast.EmptyRange)
}

func (s *StructSynthesizer) witnessReturnTypeAnnotation(
	requirement *Requirement,
	ctx ClosureLiteralContext,
) *ast.TypeAnnotation {
	if ctx.Literal.ReturnTypeAnnotation != nil {
		return ctx.Literal.ReturnTypeAnnotation
	}

	if requirement.FunctionType == nil {
		return nil
	}

	return s.typeAnnotation(requirement.FunctionType.ReturnTypeAnnotation.Type)
}

// typeAnnotation converts a type to its syntactic annotation
func (s *StructSynthesizer) typeAnnotation(ty Type) *ast.TypeAnnotation {
	if ty == nil {
		ty = AnyStructType
	}

	return ast.NewTypeAnnotation(
		s.gauge,
		s.astType(ty),
		ast.Position{},
	)
}

func (s *StructSynthesizer) astType(ty Type) ast.Type {
	switch ty := ty.(type) {
	case *DictionaryType:
		return ast.NewDictionaryType(
			s.gauge,
			s.astType(ty.KeyType),
			s.astType(ty.ValueType),
			ast.EmptyRange,
		)

	default:
		return ast.NewNominalType(
			s.gauge,
			ast.NewIdentifier(s.gauge, ty.String(), ast.Position{}),
			nil,
		)
	}
}

// Mutation checking

// checkMutations enforces mutation legality of captured fields:
// only the body resolved to a mutating member may mutate
// a `var` capture, and `let` captures are never mutable
func (s *StructSynthesizer) checkMutations(
	resolution Resolution,
	ctx ClosureLiteralContext,
) error {
	switch resolution.Path {
	case LoweringPathBodyless,
		LoweringPathMetatype:
		// no capturing body

		return nil

	case LoweringPathSingleRequirement:
		requirement := resolution.FulfilledRequirement
		body := ctx.Literal.Body.(*ast.StatementsBody)
		return s.checkBlockMutations(
			body.Block,
			ctx.Captures,
			requirement.Mutating,
			requirement.Identifier,
		)

	case LoweringPathAccessor:
		requirement := resolution.FulfilledRequirement
		body := ctx.Literal.Body.(*ast.AccessorsBody)

		// only the set block may mutate

		if body.Accessors.Get != nil {
			err := s.checkBlockMutations(
				body.Accessors.Get.Block,
				ctx.Captures,
				false,
				requirement.Identifier,
			)
			if err != nil {
				return err
			}
		}
		if body.Accessors.Set != nil {
			err := s.checkBlockMutations(
				body.Accessors.Set.Block,
				ctx.Captures,
				true,
				requirement.Identifier,
			)
			if err != nil {
				return err
			}
		}
		return nil

	case LoweringPathMultiDeclaration:
		return s.checkMultiDeclarationMutations(ctx)
	}

	panic(errors.NewUnreachableError())
}

func (s *StructSynthesizer) checkMultiDeclarationMutations(
	ctx ClosureLiteralContext,
) error {
	body := ctx.Literal.Body.(*ast.DeclarationsBody)

	for _, declaration := range body.Declarations {
		switch declaration := declaration.(type) {
		case *ast.FunctionDeclaration:
			if declaration.FunctionBlock == nil {
				continue
			}
			err := s.checkBlockMutations(
				declaration.FunctionBlock.Block,
				ctx.Captures,
				declaration.IsMutating,
				declaration.Identifier.Identifier,
			)
			if err != nil {
				return err
			}

		case *ast.PropertyDeclaration:
			err := s.checkAccessorMutations(
				declaration.Accessors,
				ctx.Captures,
				declaration.Identifier.Identifier,
			)
			if err != nil {
				return err
			}

		case *ast.SubscriptDeclaration:
			err := s.checkAccessorMutations(
				declaration.Accessors,
				ctx.Captures,
				declaration.Identifier.Identifier,
			)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *StructSynthesizer) checkAccessorMutations(
	accessors *ast.Accessors,
	captures []*CaptureDescriptor,
	memberIdentifier string,
) error {
	if accessors == nil {
		return nil
	}

	if accessors.Get != nil {
		err := s.checkBlockMutations(
			accessors.Get.Block,
			captures,
			false,
			memberIdentifier,
		)
		if err != nil {
			return err
		}
	}
	if accessors.Set != nil {
		err := s.checkBlockMutations(
			accessors.Set.Block,
			captures,
			true,
			memberIdentifier,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *StructSynthesizer) checkBlockMutations(
	block *ast.Block,
	captures []*CaptureDescriptor,
	mutationAllowed bool,
	memberIdentifier string,
) error {
	if block == nil {
		return nil
	}

	capturesByName := make(map[string]*CaptureDescriptor, len(captures))
	for _, capture := range captures {
		capturesByName[capture.Name] = capture
		capturesByName[capture.FieldName] = capture
	}

	var checkErr error

	var walkElement func(element ast.Element)
	walkElement = func(element ast.Element) {
		if checkErr != nil {
			return
		}

		if assignment, ok := element.(*ast.AssignmentStatement); ok {
			name := assignmentBaseIdentifier(assignment.Target)
			if capture, ok := capturesByName[name]; ok {
				switch {
				case !capture.IsMutable():
					checkErr = &AssignmentToConstantCaptureError{
						Name:  capture.Name,
						Range: ast.NewRangeFromPositioned(s.gauge, assignment),
					}

				case !mutationAllowed:
					checkErr = &MutatingRequirementViaBodyError{
						RequirementIdentifier: memberIdentifier,
						CaptureName:           capture.Name,
						Range:                 ast.NewRangeFromPositioned(s.gauge, assignment),
					}
				}
			}
		}

		element.Walk(walkElement)
	}

	walkElement(block)

	return checkErr
}

// assignmentBaseIdentifier resolves the name an assignment target
// ultimately refers to: the identifier itself, the base of a member
// or index access chain, or the field for a `self.<field>` access
func assignmentBaseIdentifier(target ast.Expression) string {
	switch target := target.(type) {
	case *ast.IdentifierExpression:
		return target.Identifier.Identifier

	case *ast.MemberExpression:
		if base, ok := target.Expression.(*ast.IdentifierExpression); ok &&
			base.Identifier.Identifier == SelfIdentifier {

			return target.Identifier.Identifier
		}
		return assignmentBaseIdentifier(target.Expression)

	case *ast.IndexExpression:
		return assignmentBaseIdentifier(target.TargetExpression)
	}

	return ""
}
