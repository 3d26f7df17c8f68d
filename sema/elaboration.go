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
	"sync"

	"github.com/lumen-lang/lumen/ast"
)

// LoweringElaboration records the results of lowering
// for consumption by later compilation stages:
// the synthesized type of each lowered literal,
// and the expression replacing the literal in the expression tree.
//
// Safe for concurrent use: literals are lowered in parallel.
type LoweringElaboration struct {
	mutex sync.RWMutex

	structTypes  map[*ast.ClosureLiteralExpression]*SynthesizedStructType
	replacements map[*ast.ClosureLiteralExpression]*ast.InvocationExpression
	resolutions  map[*ast.ClosureLiteralExpression]Resolution
}

func NewLoweringElaboration() *LoweringElaboration {
	return &LoweringElaboration{}
}

func (e *LoweringElaboration) ClosureLiteralStructType(
	literal *ast.ClosureLiteralExpression,
) *SynthesizedStructType {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.structTypes[literal]
}

func (e *LoweringElaboration) SetClosureLiteralStructType(
	literal *ast.ClosureLiteralExpression,
	structType *SynthesizedStructType,
) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.structTypes == nil {
		e.structTypes = map[*ast.ClosureLiteralExpression]*SynthesizedStructType{}
	}
	e.structTypes[literal] = structType
}

func (e *LoweringElaboration) ClosureLiteralReplacement(
	literal *ast.ClosureLiteralExpression,
) *ast.InvocationExpression {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.replacements[literal]
}

func (e *LoweringElaboration) SetClosureLiteralReplacement(
	literal *ast.ClosureLiteralExpression,
	replacement *ast.InvocationExpression,
) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.replacements == nil {
		e.replacements = map[*ast.ClosureLiteralExpression]*ast.InvocationExpression{}
	}
	e.replacements[literal] = replacement
}

func (e *LoweringElaboration) ClosureLiteralResolution(
	literal *ast.ClosureLiteralExpression,
) (Resolution, bool) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	resolution, ok := e.resolutions[literal]
	return resolution, ok
}

func (e *LoweringElaboration) SetClosureLiteralResolution(
	literal *ast.ClosureLiteralExpression,
	resolution Resolution,
) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.resolutions == nil {
		e.resolutions = map[*ast.ClosureLiteralExpression]Resolution{}
	}
	e.resolutions[literal] = resolution
}
