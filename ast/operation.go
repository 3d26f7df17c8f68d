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

type Operation uint

const (
	OperationUnknown Operation = iota
	OperationOr
	OperationAnd
	OperationEqual
	OperationNotEqual
	OperationLess
	OperationGreater
	OperationLessEqual
	OperationGreaterEqual
	OperationPlus
	OperationMinus
	OperationMul
	OperationDiv
	OperationMod
	OperationNegate
)

func (s Operation) Symbol() string {
	switch s {
	case OperationOr:
		return "||"
	case OperationAnd:
		return "&&"
	case OperationEqual:
		return "=="
	case OperationNotEqual:
		return "!="
	case OperationLess:
		return "<"
	case OperationGreater:
		return ">"
	case OperationLessEqual:
		return "<="
	case OperationGreaterEqual:
		return ">="
	case OperationPlus:
		return "+"
	case OperationMinus:
		return "-"
	case OperationMul:
		return "*"
	case OperationDiv:
		return "/"
	case OperationMod:
		return "%"
	case OperationNegate:
		return "!"
	}

	panic(errors.NewUnreachableError())
}

func (s Operation) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s Operation) String() string {
	switch s {
	case OperationUnknown:
		return "OperationUnknown"
	case OperationOr:
		return "OperationOr"
	case OperationAnd:
		return "OperationAnd"
	case OperationEqual:
		return "OperationEqual"
	case OperationNotEqual:
		return "OperationNotEqual"
	case OperationLess:
		return "OperationLess"
	case OperationGreater:
		return "OperationGreater"
	case OperationLessEqual:
		return "OperationLessEqual"
	case OperationGreaterEqual:
		return "OperationGreaterEqual"
	case OperationPlus:
		return "OperationPlus"
	case OperationMinus:
		return "OperationMinus"
	case OperationMul:
		return "OperationMul"
	case OperationDiv:
		return "OperationDiv"
	case OperationMod:
		return "OperationMod"
	case OperationNegate:
		return "OperationNegate"
	}

	panic(errors.NewUnreachableError())
}
