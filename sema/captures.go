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
	"github.com/lumen-lang/lumen/common"
	"github.com/lumen-lang/lumen/common/orderedmap"
)

// SelfIdentifier is the reserved identifier
// referring to the current type's value
const SelfIdentifier = "self"

// OuterSelfFieldName is the reserved internal field name under which
// a captured outer `self` is stored in a synthesized structure,
// escaped so it never collides with the structure's own `self`
const OuterSelfFieldName = "$outerSelf"

// CaptureSourceKind

type CaptureSourceKind uint

const (
	CaptureSourceKindUnknown CaptureSourceKind = iota
	// CaptureSourceKindExplicit is a capture listed
	// in the literal's capture list
	CaptureSourceKindExplicit
	// CaptureSourceKindImplicit is a free variable of the literal's body,
	// captured in first-use order
	CaptureSourceKindImplicit
)

// CaptureDescriptor

// CaptureDescriptor describes one value flowing from the enclosing scope
// into a field of the synthesized structure.
//
// Captures copy their initial value at construction time.
// They never reference the enclosing scope by address:
// by-reference capture is rejected at collection time, not silently boxed.
type CaptureDescriptor struct {
	// Name is the capture's name as written, unique within the capture list
	Name string
	// FieldName is the name of the synthesized field.
	// Equal to Name, except for a captured outer `self`,
	// which is stored under OuterSelfFieldName
	FieldName             string
	DeclaredType          Type
	VariableKind          ast.VariableKind
	InitializerExpression ast.Expression
	Attributes            []*ast.Attribute
	SourceKind            CaptureSourceKind
	StartPos              ast.Position
	EndPos                ast.Position
}

var _ ast.HasPosition = &CaptureDescriptor{}

func (d *CaptureDescriptor) StartPosition() ast.Position {
	return d.StartPos
}

func (d *CaptureDescriptor) EndPosition(common.MemoryGauge) ast.Position {
	return d.EndPos
}

func (d *CaptureDescriptor) IsMutable() bool {
	return d.VariableKind == ast.VariableKindVariable
}

// CaptureCollector

// CaptureCollector walks a closure literal's capture list and body
// and produces the ordered capture sequence:
// explicit capture-list items first, in declaration order,
// then the body's free variables, in first-use order.
type CaptureCollector struct {
	gauge          common.MemoryGauge
	enclosingScope *LexicalScope
}

func NewCaptureCollector(
	gauge common.MemoryGauge,
	enclosingScope *LexicalScope,
) *CaptureCollector {
	return &CaptureCollector{
		gauge:          gauge,
		enclosingScope: enclosingScope,
	}
}

func (c *CaptureCollector) Collect(
	literal *ast.ClosureLiteralExpression,
) (
	[]*CaptureDescriptor,
	error,
) {
	captures := orderedmap.New[string, *CaptureDescriptor](len(literal.CaptureList))

	for _, item := range literal.CaptureList {
		descriptor, err := c.collectExplicit(item, captures)
		if err != nil {
			return nil, err
		}
		captures.Set(descriptor.Name, descriptor)
	}

	err := c.collectImplicit(literal, captures)
	if err != nil {
		return nil, err
	}

	result := make([]*CaptureDescriptor, 0, captures.Len())
	captures.Foreach(func(_ string, descriptor *CaptureDescriptor) {
		result = append(result, descriptor)
	})
	return result, nil
}

func (c *CaptureCollector) collectExplicit(
	item *ast.CaptureItem,
	captures *orderedmap.OrderedMap[string, *CaptureDescriptor],
) (
	*CaptureDescriptor,
	error,
) {
	name := item.Identifier.Identifier

	if item.ByReference {
		return nil, &CaptureByReferenceError{
			Name:  name,
			Range: ast.NewRangeFromPositioned(c.gauge, item),
		}
	}

	if previous, ok := captures.Get(name); ok {
		return nil, &CaptureNameCollisionError{
			Name:          name,
			PreviousRange: ast.NewRange(c.gauge, previous.StartPos, previous.EndPos),
			Range:         ast.NewRangeFromPositioned(c.gauge, item),
		}
	}

	variableKind := item.VariableKind
	if variableKind == ast.VariableKindNotSpecified {
		variableKind = ast.VariableKindConstant
	}

	initializer := item.InitializerExpression
	if initializer == nil {
		// `name` is sugar for `name = name`
		initializer = ast.NewIdentifierExpression(
			c.gauge,
			ast.NewIdentifier(
				c.gauge,
				name,
				item.Identifier.Pos,
			),
		)
	}

	declaredType, err := c.inferType(initializer, item)
	if err != nil {
		return nil, err
	}

	common.UseMemory(c.gauge, common.CaptureDescriptorMemoryUsage)

	return &CaptureDescriptor{
		Name:                  name,
		FieldName:             escapeCaptureFieldName(name),
		DeclaredType:          declaredType,
		VariableKind:          variableKind,
		InitializerExpression: initializer,
		Attributes:            item.Attributes,
		SourceKind:            CaptureSourceKindExplicit,
		StartPos:              item.StartPosition(),
		EndPos:                item.EndPosition(c.gauge),
	}, nil
}

// collectImplicit appends the body's free variables as immutable captures,
// in first-use order, unless already listed explicitly
func (c *CaptureCollector) collectImplicit(
	literal *ast.ClosureLiteralExpression,
	captures *orderedmap.OrderedMap[string, *CaptureDescriptor],
) error {
	if literal.Body == nil {
		return nil
	}

	bound := c.locallyBoundNames(literal)

	var collectionErr error

	c.walkBodyIdentifiers(literal.Body, func(expression *ast.IdentifierExpression) {
		if collectionErr != nil {
			return
		}

		name := expression.Identifier.Identifier

		if _, ok := bound[name]; ok {
			return
		}
		if captures.Contains(name) {
			return
		}

		variable := c.enclosingScope.Resolve(name)
		if variable == nil {
			collectionErr = &UnknownCaptureReferenceError{
				Name:       name,
				suggestion: c.closestIdentifier(name),
				Range:      ast.NewRangeFromPositioned(c.gauge, expression),
			}
			return
		}

		common.UseMemory(c.gauge, common.CaptureDescriptorMemoryUsage)

		captures.Set(
			name,
			&CaptureDescriptor{
				Name:         name,
				FieldName:    escapeCaptureFieldName(name),
				DeclaredType: variable.Type,
				VariableKind: ast.VariableKindConstant,
				InitializerExpression: ast.NewIdentifierExpression(
					c.gauge,
					ast.NewIdentifier(
						c.gauge,
						name,
						expression.Identifier.Pos,
					),
				),
				SourceKind: CaptureSourceKindImplicit,
				StartPos:   expression.StartPosition(),
				EndPos:     expression.EndPosition(c.gauge),
			},
		)
	})

	return collectionErr
}

// locallyBoundNames returns the names which are bound inside the literal
// and therefore not free: parameters, local variable declarations,
// and the members a multi-declaration body declares
func (c *CaptureCollector) locallyBoundNames(
	literal *ast.ClosureLiteralExpression,
) map[string]struct{} {
	bound := map[string]struct{}{}

	if literal.ParameterList != nil {
		for _, parameter := range literal.ParameterList.Parameters {
			bound[parameter.Identifier.Identifier] = struct{}{}
		}
	}

	if literal.Body == nil {
		return bound
	}

	var bindElement func(element ast.Element)
	bindElement = func(element ast.Element) {
		switch element := element.(type) {
		case *ast.VariableDeclaration:
			bound[element.Identifier.Identifier] = struct{}{}

		case *ast.FunctionDeclaration:
			bound[element.Identifier.Identifier] = struct{}{}
			if element.ParameterList != nil {
				for _, parameter := range element.ParameterList.Parameters {
					bound[parameter.Identifier.Identifier] = struct{}{}
				}
			}

		case *ast.PropertyDeclaration:
			bound[element.Identifier.Identifier] = struct{}{}

		case *ast.SubscriptDeclaration:
			bound[element.Identifier.Identifier] = struct{}{}
			if element.ParameterList != nil {
				for _, parameter := range element.ParameterList.Parameters {
					bound[parameter.Identifier.Identifier] = struct{}{}
				}
			}
		}
		element.Walk(bindElement)
	}

	switch body := literal.Body.(type) {
	case *ast.StatementsBody:
		bindElement(body.Block)

	case *ast.AccessorsBody:
		// the implicit set accessor parameter
		bound["newValue"] = struct{}{}
		if body.Accessors.Get != nil {
			bindElement(body.Accessors.Get)
		}
		if body.Accessors.Set != nil {
			bindElement(body.Accessors.Set)
		}

	case *ast.DeclarationsBody:
		for _, declaration := range body.Declarations {
			bindElement(declaration)
		}
	}

	// subscript parameters declared on the literal itself
	// are visible in an accessor body via the parameter list,
	// already handled above

	return bound
}

// walkBodyIdentifiers visits the identifier expressions of the body
// in source order
func (c *CaptureCollector) walkBodyIdentifiers(
	body ast.ClosureBody,
	visit func(*ast.IdentifierExpression),
) {
	var walkElement func(element ast.Element)
	walkElement = func(element ast.Element) {
		if identifierExpression, ok := element.(*ast.IdentifierExpression); ok {
			visit(identifierExpression)
		}
		element.Walk(walkElement)
	}

	switch body := body.(type) {
	case *ast.StatementsBody:
		walkElement(body.Block)

	case *ast.AccessorsBody:
		if body.Accessors.Get != nil {
			walkElement(body.Accessors.Get)
		}
		if body.Accessors.Set != nil {
			walkElement(body.Accessors.Set)
		}

	case *ast.DeclarationsBody:
		for _, declaration := range body.Declarations {
			walkElement(declaration)
		}
	}
}

func (c *CaptureCollector) closestIdentifier(name string) string {
	if c.enclosingScope == nil {
		return ""
	}
	return FindClosestIdentifier(name, c.enclosingScope.Identifiers())
}

// inferType determines the capture's declared type
// from its initializer expression.
// Identifier initializers take the referenced variable's type.
func (c *CaptureCollector) inferType(
	initializer ast.Expression,
	item *ast.CaptureItem,
) (Type, error) {
	switch initializer := initializer.(type) {
	case *ast.IdentifierExpression:
		name := initializer.Identifier.Identifier
		variable := c.enclosingScope.Resolve(name)
		if variable == nil {
			return nil, &UnknownCaptureReferenceError{
				Name:       name,
				suggestion: c.closestIdentifier(name),
				Range:      ast.NewRangeFromPositioned(c.gauge, item),
			}
		}
		return variable.Type, nil

	case *ast.BoolExpression:
		return BoolType, nil

	case *ast.IntegerExpression:
		return IntType, nil

	case *ast.StringExpression:
		return StringType, nil

	case *ast.NilExpression:
		// no optional inference before type checking
		return AnyStructType, nil

	case *ast.BinaryExpression:
		return c.inferBinaryType(initializer, item)

	case *ast.UnaryExpression:
		return c.inferType(initializer.Expression, item)

	case *ast.DictionaryExpression:
		return c.inferDictionaryType(initializer, item)

	default:
		return AnyStructType, nil
	}
}

func (c *CaptureCollector) inferBinaryType(
	expression *ast.BinaryExpression,
	item *ast.CaptureItem,
) (Type, error) {
	switch expression.Operation {
	case ast.OperationOr,
		ast.OperationAnd,
		ast.OperationEqual,
		ast.OperationNotEqual,
		ast.OperationLess,
		ast.OperationGreater,
		ast.OperationLessEqual,
		ast.OperationGreaterEqual:

		return BoolType, nil

	default:
		return c.inferType(expression.Left, item)
	}
}

func (c *CaptureCollector) inferDictionaryType(
	expression *ast.DictionaryExpression,
	item *ast.CaptureItem,
) (Type, error) {
	if len(expression.Entries) == 0 {
		return &DictionaryType{
			KeyType:   AnyStructType,
			ValueType: AnyStructType,
		}, nil
	}

	entry := expression.Entries[0]
	keyType, err := c.inferType(entry.Key, item)
	if err != nil {
		return nil, err
	}
	valueType, err := c.inferType(entry.Value, item)
	if err != nil {
		return nil, err
	}
	return &DictionaryType{
		KeyType:   keyType,
		ValueType: valueType,
	}, nil
}

// escapeCaptureFieldName maps a capture name to its field name.
// Only the reserved name `self` is escaped.
func escapeCaptureFieldName(name string) string {
	if name == SelfIdentifier {
		return OuterSelfFieldName
	}
	return name
}
