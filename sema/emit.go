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
)

// InstantiationEmitter

// InstantiationEmitter produces the expression replacing the original
// closure literal: a construction of the synthesized type,
// with one labeled argument per stored field, in field order,
// each passing the field's capture initializer by value.
//
// The original literal node is discarded; no residual closure value
// exists. This stage is total given a valid resolution:
// errors are detected by the earlier stages.
type InstantiationEmitter struct {
	gauge common.MemoryGauge
}

func NewInstantiationEmitter(gauge common.MemoryGauge) *InstantiationEmitter {
	return &InstantiationEmitter{
		gauge: gauge,
	}
}

func (e *InstantiationEmitter) Emit(
	structType *SynthesizedStructType,
	literal *ast.ClosureLiteralExpression,
) *ast.InvocationExpression {

	arguments := make([]*ast.Argument, 0, structType.Fields.Len())

	structType.Fields.Foreach(func(fieldName string, capture *CaptureDescriptor) {
		arguments = append(
			arguments,
			ast.NewArgument(
				e.gauge,
				fieldName,
				nil,
				nil,
				capture.InitializerExpression,
			),
		)
	})

	startPos := literal.StartPosition()

	return ast.NewInvocationExpression(
		e.gauge,
		ast.NewIdentifierExpression(
			e.gauge,
			ast.NewIdentifier(
				e.gauge,
				structType.Identifier,
				startPos,
			),
		),
		arguments,
		startPos,
		literal.EndPosition(e.gauge),
	)
}
