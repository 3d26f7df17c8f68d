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

type CompositeKind uint

const (
	CompositeKindUnknown CompositeKind = iota
	CompositeKindStructure
	CompositeKindEnum
)

func (k CompositeKind) Keyword() string {
	switch k {
	case CompositeKindStructure:
		return "struct"
	case CompositeKindEnum:
		return "enum"
	default:
		return ""
	}
}

func (k CompositeKind) Name() string {
	switch k {
	case CompositeKindStructure:
		return "structure"
	case CompositeKindEnum:
		return "enum"
	case CompositeKindUnknown:
		return "unknown"
	}

	panic(errors.NewUnreachableError())
}

func (k CompositeKind) DeclarationKind() DeclarationKind {
	switch k {
	case CompositeKindStructure, CompositeKindEnum:
		return DeclarationKindStructure
	default:
		return DeclarationKindUnknown
	}
}

func (k CompositeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k CompositeKind) String() string {
	switch k {
	case CompositeKindUnknown:
		return "CompositeKindUnknown"
	case CompositeKindStructure:
		return "CompositeKindStructure"
	case CompositeKindEnum:
		return "CompositeKindEnum"
	}

	panic(errors.NewUnreachableError())
}
