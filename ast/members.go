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

package ast

import (
	"encoding/json"

	"github.com/turbolent/prettier"

	"github.com/lumen-lang/lumen/common"
)

// Members

type Members struct {
	Declarations []Declaration
	// Use `Fields()` instead
	_fields []*FieldDeclaration
	// Use `FieldsByIdentifier()` instead
	_fieldsByIdentifier map[string]*FieldDeclaration
	// All special functions, such as initializers.
	// Use `SpecialFunctions()` to get all special functions instead,
	// or `Initializers()` to get a subset
	_specialFunctions []*SpecialFunctionDeclaration
	// Use `Initializers()` instead
	_initializers []*SpecialFunctionDeclaration
	// Use `Functions()` instead
	_functions []*FunctionDeclaration
	// Use `FunctionsByIdentifier()` instead
	_functionsByIdentifier map[string]*FunctionDeclaration
	// Use `Properties()` instead
	_properties []*PropertyDeclaration
	// Use `Subscripts()` instead
	_subscripts []*SubscriptDeclaration
}

func NewMembers(memoryGauge common.MemoryGauge, declarations []Declaration) *Members {
	common.UseMemory(memoryGauge, common.MembersMemoryUsage)
	return &Members{
		Declarations: declarations,
	}
}

func (m *Members) Fields() []*FieldDeclaration {
	if m._fields == nil {
		m.updateDeclarations()
	}
	return m._fields
}

func (m *Members) FieldsByIdentifier() map[string]*FieldDeclaration {
	fieldsByIdentifier := m._fieldsByIdentifier
	if fieldsByIdentifier == nil {
		fields := m.Fields()
		fieldsByIdentifier = make(map[string]*FieldDeclaration, len(fields))
		for _, field := range fields {
			fieldsByIdentifier[field.Identifier.Identifier] = field
		}
		m._fieldsByIdentifier = fieldsByIdentifier
	}
	return fieldsByIdentifier
}

func (m *Members) Functions() []*FunctionDeclaration {
	if m._functions == nil {
		m.updateDeclarations()
	}
	return m._functions
}

func (m *Members) FunctionsByIdentifier() map[string]*FunctionDeclaration {
	functionsByIdentifier := m._functionsByIdentifier
	if functionsByIdentifier == nil {
		functions := m.Functions()
		functionsByIdentifier = make(map[string]*FunctionDeclaration, len(functions))
		for _, function := range functions {
			functionsByIdentifier[function.Identifier.Identifier] = function
		}
		m._functionsByIdentifier = functionsByIdentifier
	}
	return functionsByIdentifier
}

func (m *Members) SpecialFunctions() []*SpecialFunctionDeclaration {
	if m._specialFunctions == nil {
		m.updateDeclarations()
	}
	return m._specialFunctions
}

func (m *Members) Initializers() []*SpecialFunctionDeclaration {
	if m._initializers == nil {
		m.updateDeclarations()
	}
	return m._initializers
}

func (m *Members) Properties() []*PropertyDeclaration {
	if m._properties == nil {
		m.updateDeclarations()
	}
	return m._properties
}

func (m *Members) Subscripts() []*SubscriptDeclaration {
	if m._subscripts == nil {
		m.updateDeclarations()
	}
	return m._subscripts
}

func (m *Members) updateDeclarations() {
	// Important: allocate instead of nil swaps,
	// so the `nil` checks of the accessors work
	m._fields = make([]*FieldDeclaration, 0)
	m._functions = make([]*FunctionDeclaration, 0)
	m._specialFunctions = make([]*SpecialFunctionDeclaration, 0)
	m._initializers = make([]*SpecialFunctionDeclaration, 0)
	m._properties = make([]*PropertyDeclaration, 0)
	m._subscripts = make([]*SubscriptDeclaration, 0)

	for _, declaration := range m.Declarations {
		switch declaration := declaration.(type) {
		case *FieldDeclaration:
			m._fields = append(m._fields, declaration)

		case *FunctionDeclaration:
			m._functions = append(m._functions, declaration)

		case *SpecialFunctionDeclaration:
			m._specialFunctions = append(m._specialFunctions, declaration)

			if declaration.Kind == common.DeclarationKindInitializer {
				m._initializers = append(m._initializers, declaration)
			}

		case *PropertyDeclaration:
			m._properties = append(m._properties, declaration)

		case *SubscriptDeclaration:
			m._subscripts = append(m._subscripts, declaration)
		}
	}
}

var membersStartDoc prettier.Doc = prettier.Text("{")
var membersEndDoc prettier.Doc = prettier.Text("}")
var membersEmptyDoc prettier.Doc = prettier.Text("{}")

func (m *Members) Doc() prettier.Doc {
	if len(m.Declarations) == 0 {
		return membersEmptyDoc
	}

	var declarationsDoc prettier.Concat

	for _, declaration := range m.Declarations {
		declarationsDoc = append(
			declarationsDoc,
			prettier.HardLine{},
			declaration.Doc(),
		)
	}

	return prettier.Concat{
		membersStartDoc,
		prettier.Indent{
			Doc: declarationsDoc,
		},
		prettier.HardLine{},
		membersEndDoc,
	}
}

func (m *Members) MarshalJSON() ([]byte, error) {
	type Alias Members
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "Members",
		Alias: (*Alias)(m),
	})
}
