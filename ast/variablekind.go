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

	"github.com/lumen-lang/lumen/errors"
)

type VariableKind uint

const (
	VariableKindNotSpecified VariableKind = iota
	VariableKindVariable
	VariableKindConstant
)

var VariableKinds = []VariableKind{
	VariableKindConstant,
	VariableKindVariable,
}

func (k VariableKind) Name() string {
	switch k {
	case VariableKindVariable:
		return "variable"
	case VariableKindConstant:
		return "constant"
	default:
		return ""
	}
}

func (k VariableKind) Keyword() string {
	switch k {
	case VariableKindVariable:
		return "var"
	case VariableKindConstant:
		return "let"
	default:
		return ""
	}
}

func (k VariableKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k VariableKind) String() string {
	switch k {
	case VariableKindNotSpecified:
		return "VariableKindNotSpecified"
	case VariableKindVariable:
		return "VariableKindVariable"
	case VariableKindConstant:
		return "VariableKindConstant"
	}

	panic(errors.NewUnreachableError())
}
