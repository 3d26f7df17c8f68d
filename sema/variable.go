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

// Variable is a named value binding in a lexical scope:
// a local, a parameter, or the enclosing type's `self`
type Variable struct {
	Identifier      string
	DeclarationKind common.DeclarationKind
	Type            Type
	// InitializerExpression is the expression the variable was bound to,
	// if any. The capture collector copies it into the capture's
	// initializer when the variable is captured implicitly.
	InitializerExpression ast.Expression
}

// LexicalScope is a chain of identifier-to-variable bindings.
// The capture collector resolves a literal's free variables
// against the scope enclosing the literal.
type LexicalScope struct {
	parent    *LexicalScope
	variables *orderedmap.OrderedMap[string, *Variable]
}

func NewLexicalScope(parent *LexicalScope) *LexicalScope {
	return &LexicalScope{
		parent:    parent,
		variables: orderedmap.New[string, *Variable](8),
	}
}

func (s *LexicalScope) Declare(variable *Variable) {
	s.variables.Set(variable.Identifier, variable)
}

// Resolve looks up an identifier in this scope and its ancestors,
// innermost first
func (s *LexicalScope) Resolve(identifier string) *Variable {
	for scope := s; scope != nil; scope = scope.parent {
		variable, ok := scope.variables.Get(identifier)
		if ok {
			return variable
		}
	}
	return nil
}

// Identifiers returns all identifiers declared in this scope
// and its ancestors, in declaration order, innermost scope first.
// Used for suggestions in diagnostics.
func (s *LexicalScope) Identifiers() []string {
	var identifiers []string
	seen := map[string]struct{}{}
	for scope := s; scope != nil; scope = scope.parent {
		for _, identifier := range scope.variables.Keys() {
			if _, ok := seen[identifier]; ok {
				continue
			}
			seen[identifier] = struct{}{}
			identifiers = append(identifiers, identifier)
		}
	}
	return identifiers
}
