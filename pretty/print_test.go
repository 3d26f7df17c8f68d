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

package pretty

import (
	"strings"
	"testing"

	"github.com/logrusorgru/aurora/v4"
	"github.com/stretchr/testify/require"

	"github.com/lumen-lang/lumen/ast"
	"github.com/lumen-lang/lumen/common"
	"github.com/lumen-lang/lumen/errors"
)

type testError struct {
	ast.Range
}

func (testError) Error() string {
	return "test error"
}

type testSecondaryError struct {
	ast.Range
}

func (testSecondaryError) Error() string {
	return "test error"
}

func (testSecondaryError) SecondaryError() string {
	return "remove this"
}

type testNote struct {
	ast.Range
}

func (testNote) Message() string {
	return "related value defined here"
}

type testNotedError struct {
	ast.Range
	note testNote
}

func (testNotedError) Error() string {
	return "test error"
}

func (e testNotedError) ErrorNotes() []errors.ErrorNote {
	return []errors.ErrorNote{e.note}
}

type testParentError struct {
	errs []error
}

func (testParentError) Error() string {
	return "parent error"
}

func (e testParentError) ChildErrors() []error {
	return e.errs
}

func TestPrintError(t *testing.T) {

	t.Parallel()

	const code = `let x = 1`

	location := common.StringLocation("test")

	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, false)
	err := printer.PrettyPrintError(
		testError{
			Range: ast.Range{
				StartPos: ast.Position{Line: 1, Column: 4},
				EndPos:   ast.Position{Line: 1, Column: 4},
			},
		},
		location,
		map[common.Location]string{
			location: code,
		},
	)
	require.NoError(t, err)
	require.Equal(t,
		"error: test error\n"+
			" --> test:1:4\n"+
			"1 | let x = 1\n"+
			"  |     ^\n",
		sb.String(),
	)
}

func TestPrintErrorWithSecondaryMessage(t *testing.T) {

	t.Parallel()

	const code = `let x = y`

	location := common.StringLocation("test")

	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, false)
	err := printer.PrettyPrintError(
		testSecondaryError{
			Range: ast.Range{
				StartPos: ast.Position{Line: 1, Column: 8},
				EndPos:   ast.Position{Line: 1, Column: 8},
			},
		},
		location,
		map[common.Location]string{
			location: code,
		},
	)
	require.NoError(t, err)
	require.Equal(t,
		"error: test error\n"+
			" --> test:1:8\n"+
			"1 | let x = y\n"+
			"  |         ^ remove this\n",
		sb.String(),
	)
}

func TestPrintErrorWithNotes(t *testing.T) {

	t.Parallel()

	const code = "let x = 1\n" +
		"let y = x + x"

	location := common.StringLocation("test")

	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, false)
	err := printer.PrettyPrintError(
		testNotedError{
			Range: ast.Range{
				StartPos: ast.Position{Line: 2, Column: 8},
				EndPos:   ast.Position{Line: 2, Column: 12},
			},
			note: testNote{
				Range: ast.Range{
					StartPos: ast.Position{Line: 1, Column: 4},
					EndPos:   ast.Position{Line: 1, Column: 4},
				},
			},
		},
		location,
		map[common.Location]string{
			location: code,
		},
	)
	require.NoError(t, err)
	require.Equal(t,
		"error: test error\n"+
			" --> test:2:8\n"+
			"2 | let y = x + x\n"+
			"  |         ^^^^^\n"+
			"1 | let x = 1\n"+
			"  |     - related value defined here\n",
		sb.String(),
	)
}

func TestPrintBrokenCode(t *testing.T) {

	t.Parallel()

	const code = `let x = 1`
	lineCount := len(strings.Split(code, "\n"))

	location := common.StringLocation("test")

	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, false)
	err := printer.PrettyPrintError(
		testError{
			Range: ast.Range{
				StartPos: ast.Position{
					// NOTE: line number is after end of code
					Line:   lineCount + 2,
					Column: 0,
				},
				EndPos: ast.Position{
					Line:   lineCount,
					Column: 2,
				},
			},
		},
		location,
		map[common.Location]string{
			location: code,
		},
	)
	require.NoError(t, err)
	require.Equal(t,
		"error: test error\n"+
			" --> test:3:0\n",
		sb.String(),
	)
}

func TestPrintParentError(t *testing.T) {

	t.Parallel()

	const code = `let x = 1`

	location := common.StringLocation("test")

	parentErr := testParentError{
		errs: []error{
			testError{
				Range: ast.Range{
					StartPos: ast.Position{Line: 1, Column: 0},
					EndPos:   ast.Position{Line: 1, Column: 2},
				},
			},
			testError{
				Range: ast.Range{
					StartPos: ast.Position{Line: 1, Column: 4},
					EndPos:   ast.Position{Line: 1, Column: 4},
				},
			},
		},
	}

	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, false)
	err := printer.PrettyPrintError(
		parentErr,
		location,
		map[common.Location]string{
			location: code,
		},
	)
	require.NoError(t, err)
	require.Equal(t,
		"error: test error\n"+
			" --> test:1:0\n"+
			"1 | let x = 1\n"+
			"  | ^^^\n"+
			"\n"+
			"error: test error\n"+
			" --> test:1:4\n"+
			"1 | let x = 1\n"+
			"  |     ^\n",
		sb.String(),
	)
}

func TestFormatErrorMessage(t *testing.T) {

	t.Parallel()

	t.Run("plain", func(t *testing.T) {
		t.Parallel()

		require.Equal(t,
			"error: something failed\n",
			FormatErrorMessage("error", "something failed", false),
		)
	})

	t.Run("empty message", func(t *testing.T) {
		t.Parallel()

		require.Equal(t,
			"error\n",
			FormatErrorMessage("error", "", false),
		)
	})

	t.Run("colored", func(t *testing.T) {
		t.Parallel()

		expected := aurora.Colorize("error", aurora.RedFg|aurora.BrightFg|aurora.BoldFm).String() +
			": " +
			aurora.Colorize("something failed", aurora.BoldFm).String() +
			"\n"

		require.Equal(t,
			expected,
			FormatErrorMessage("error", "something failed", true),
		)
	})
}
