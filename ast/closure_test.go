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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turbolent/prettier"
)

func TestClosureLiteralExpression_BodyKind(t *testing.T) {

	t.Parallel()

	assert.Equal(t,
		ClosureBodyKindNone,
		(&ClosureLiteralExpression{}).BodyKind(),
	)

	assert.Equal(t,
		ClosureBodyKindStatements,
		(&ClosureLiteralExpression{
			Body: &StatementsBody{
				Block: &Block{},
			},
		}).BodyKind(),
	)

	assert.Equal(t,
		ClosureBodyKindAccessors,
		(&ClosureLiteralExpression{
			Body: &AccessorsBody{
				Accessors: &Accessors{},
			},
		}).BodyKind(),
	)

	assert.Equal(t,
		ClosureBodyKindDeclarations,
		(&ClosureLiteralExpression{
			Body: &DeclarationsBody{},
		}).BodyKind(),
	)
}

func TestCaptureItem_Doc(t *testing.T) {

	t.Parallel()

	t.Run("shorthand", func(t *testing.T) {
		t.Parallel()

		item := &CaptureItem{
			Identifier: Identifier{Identifier: "count"},
		}

		require.Equal(t,
			prettier.Concat{
				prettier.Text("count"),
			},
			item.Doc(),
		)
	})

	t.Run("var with initializer", func(t *testing.T) {
		t.Parallel()

		item := &CaptureItem{
			VariableKind: VariableKindVariable,
			Identifier:   Identifier{Identifier: "count"},
			InitializerExpression: &IdentifierExpression{
				Identifier: Identifier{Identifier: "limit"},
			},
		}

		require.Equal(t,
			prettier.Concat{
				prettier.Text("var "),
				prettier.Text("count"),
				prettier.Text(" = "),
				prettier.Text("limit"),
			},
			item.Doc(),
		)
	})

	t.Run("nil initializer", func(t *testing.T) {
		t.Parallel()

		item := &CaptureItem{
			Identifier:            Identifier{Identifier: "maybe"},
			InitializerExpression: &NilExpression{},
		}

		require.Equal(t,
			prettier.Concat{
				prettier.Text("maybe"),
				prettier.Text(" = "),
				prettier.Text("nil"),
			},
			item.Doc(),
		)
	})

	t.Run("by reference", func(t *testing.T) {
		t.Parallel()

		item := &CaptureItem{
			ByReference: true,
			Identifier:  Identifier{Identifier: "count"},
		}

		require.Equal(t,
			prettier.Concat{
				prettier.Text("&"),
				prettier.Text("count"),
			},
			item.Doc(),
		)
	})
}

func TestCaptureItem_EndPosition(t *testing.T) {

	t.Parallel()

	t.Run("shorthand", func(t *testing.T) {
		t.Parallel()

		item := &CaptureItem{
			Identifier: Identifier{
				Identifier: "count",
				Pos:        Position{Offset: 3, Line: 1, Column: 3},
			},
			StartPos: Position{Offset: 3, Line: 1, Column: 3},
		}

		assert.Equal(t,
			Position{Offset: 7, Line: 1, Column: 7},
			item.EndPosition(nil),
		)
	})

	t.Run("with initializer", func(t *testing.T) {
		t.Parallel()

		item := &CaptureItem{
			Identifier: Identifier{
				Identifier: "count",
				Pos:        Position{Offset: 3, Line: 1, Column: 3},
			},
			InitializerExpression: &IdentifierExpression{
				Identifier: Identifier{
					Identifier: "limit",
					Pos:        Position{Offset: 11, Line: 1, Column: 11},
				},
			},
			StartPos: Position{Offset: 3, Line: 1, Column: 3},
		}

		assert.Equal(t,
			Position{Offset: 15, Line: 1, Column: 15},
			item.EndPosition(nil),
		)
	})
}

func TestClosureLiteralExpression_String(t *testing.T) {

	t.Parallel()

	t.Run("statement body", func(t *testing.T) {
		t.Parallel()

		literal := &ClosureLiteralExpression{
			CaptureList: []*CaptureItem{
				{
					Identifier: Identifier{Identifier: "expected"},
				},
			},
			ParameterList: &ParameterList{
				Parameters: []*Parameter{
					{
						Identifier: Identifier{Identifier: "x"},
					},
				},
			},
			Body: &StatementsBody{
				Block: &Block{
					Statements: []Statement{
						&ExpressionStatement{
							Expression: &BinaryExpression{
								Operation: OperationEqual,
								Left: &IdentifierExpression{
									Identifier: Identifier{Identifier: "x"},
								},
								Right: &IdentifierExpression{
									Identifier: Identifier{Identifier: "expected"},
								},
							},
						},
					},
				},
			},
		}

		assert.Equal(t,
			"{ [expected] (x) in\n"+
				"    x == expected\n"+
				"}",
			literal.String(),
		)
	})

	t.Run("bodyless", func(t *testing.T) {
		t.Parallel()

		literal := &ClosureLiteralExpression{
			CaptureList: []*CaptureItem{
				{
					Identifier: Identifier{Identifier: "count"},
					InitializerExpression: &IdentifierExpression{
						Identifier: Identifier{Identifier: "limit"},
					},
				},
			},
		}

		assert.Equal(t,
			"{ [count = limit] }",
			literal.String(),
		)
	})
}

func TestClosureLiteralExpression_MarshalJSON(t *testing.T) {

	t.Parallel()

	literal := &ClosureLiteralExpression{
		CaptureList: []*CaptureItem{
			{
				Identifier: Identifier{
					Identifier: "count",
					Pos:        Position{Offset: 3, Line: 1, Column: 3},
				},
				StartPos: Position{Offset: 3, Line: 1, Column: 3},
			},
		},
		Range: Range{
			StartPos: Position{Offset: 0, Line: 1, Column: 0},
			EndPos:   Position{Offset: 9, Line: 1, Column: 9},
		},
	}

	actual, err := json.Marshal(literal)
	require.NoError(t, err)

	assert.JSONEq(t,
		// language=json
		`
        {
            "Type": "ClosureLiteralExpression",
            "BodyKind": "ClosureBodyKindNone",
            "CaptureList": [
                {
                    "Type": "CaptureItem",
                    "VariableKind": "VariableKindNotSpecified",
                    "ByReference": false,
                    "Identifier": {
                        "Identifier": "count",
                        "StartPos": {"Offset": 3, "Line": 1, "Column": 3},
                        "EndPos": {"Offset": 7, "Line": 1, "Column": 7}
                    },
                    "StartPos": {"Offset": 3, "Line": 1, "Column": 3},
                    "EndPos": {"Offset": 7, "Line": 1, "Column": 7}
                }
            ],
            "StartPos": {"Offset": 0, "Line": 1, "Column": 0},
            "EndPos": {"Offset": 9, "Line": 1, "Column": 9}
        }
        `,
		string(actual),
	)
}
