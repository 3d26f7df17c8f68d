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

package common

import (
	"encoding/json"

	"github.com/lumen-lang/lumen/errors"
)

type DeclarationKind uint

const (
	DeclarationKindUnknown DeclarationKind = iota
	DeclarationKindValue
	DeclarationKindFunction
	DeclarationKindVariable
	DeclarationKindConstant
	DeclarationKindParameter
	DeclarationKindArgumentLabel
	DeclarationKindStructure
	DeclarationKindProtocol
	DeclarationKindField
	DeclarationKindProperty
	DeclarationKindSubscript
	DeclarationKindInitializer
	DeclarationKindCapture
	DeclarationKindSelf
)

func (k DeclarationKind) IsTypeDeclaration() bool {
	switch k {
	case DeclarationKindStructure,
		DeclarationKindProtocol:

		return true

	default:
		return false
	}
}

func (k DeclarationKind) Name() string {
	switch k {
	case DeclarationKindValue:
		return "value"
	case DeclarationKindFunction:
		return "function"
	case DeclarationKindVariable:
		return "variable"
	case DeclarationKindConstant:
		return "constant"
	case DeclarationKindParameter:
		return "parameter"
	case DeclarationKindArgumentLabel:
		return "argument label"
	case DeclarationKindStructure:
		return "structure"
	case DeclarationKindProtocol:
		return "protocol"
	case DeclarationKindField:
		return "field"
	case DeclarationKindProperty:
		return "property"
	case DeclarationKindSubscript:
		return "subscript"
	case DeclarationKindInitializer:
		return "initializer"
	case DeclarationKindCapture:
		return "capture"
	case DeclarationKindSelf:
		return "self"
	case DeclarationKindUnknown:
		return "unknown"
	}

	panic(errors.NewUnreachableError())
}

func (k DeclarationKind) Keywords() string {
	switch k {
	case DeclarationKindVariable:
		return "var"
	case DeclarationKindConstant:
		return "let"
	case DeclarationKindFunction:
		return "fun"
	case DeclarationKindStructure:
		return "struct"
	case DeclarationKindProtocol:
		return "protocol"
	case DeclarationKindInitializer:
		return "init"
	case DeclarationKindSubscript:
		return "subscript"
	case DeclarationKindSelf:
		return "self"
	default:
		return ""
	}
}

func (k DeclarationKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k DeclarationKind) String() string {
	switch k {
	case DeclarationKindUnknown:
		return "DeclarationKindUnknown"
	case DeclarationKindValue:
		return "DeclarationKindValue"
	case DeclarationKindFunction:
		return "DeclarationKindFunction"
	case DeclarationKindVariable:
		return "DeclarationKindVariable"
	case DeclarationKindConstant:
		return "DeclarationKindConstant"
	case DeclarationKindParameter:
		return "DeclarationKindParameter"
	case DeclarationKindArgumentLabel:
		return "DeclarationKindArgumentLabel"
	case DeclarationKindStructure:
		return "DeclarationKindStructure"
	case DeclarationKindProtocol:
		return "DeclarationKindProtocol"
	case DeclarationKindField:
		return "DeclarationKindField"
	case DeclarationKindProperty:
		return "DeclarationKindProperty"
	case DeclarationKindSubscript:
		return "DeclarationKindSubscript"
	case DeclarationKindInitializer:
		return "DeclarationKindInitializer"
	case DeclarationKindCapture:
		return "DeclarationKindCapture"
	case DeclarationKindSelf:
		return "DeclarationKindSelf"
	}

	panic(errors.NewUnreachableError())
}
