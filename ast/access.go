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

type Access uint

const (
	AccessNotSpecified Access = iota
	// AccessPrivate is the most restrictive access level:
	// the declaration is only accessible from the declaring type
	// and its enclosing scope
	AccessPrivate
	AccessPublic
)

func (a Access) Keyword() string {
	switch a {
	case AccessNotSpecified:
		return ""
	case AccessPrivate:
		return "priv"
	case AccessPublic:
		return "pub"
	}

	panic(errors.NewUnreachableError())
}

func (a Access) IsLessPermissiveThan(other Access) bool {
	if a == AccessNotSpecified || other == AccessNotSpecified {
		return false
	}
	return a < other
}

func (a Access) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a Access) String() string {
	switch a {
	case AccessNotSpecified:
		return "AccessNotSpecified"
	case AccessPrivate:
		return "AccessPrivate"
	case AccessPublic:
		return "AccessPublic"
	}

	panic(errors.NewUnreachableError())
}
