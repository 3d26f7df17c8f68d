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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora/v4"

	"github.com/lumen-lang/lumen/ast"
	"github.com/lumen-lang/lumen/common"
	"github.com/lumen-lang/lumen/errors"
)

const errorPrefix = "error"
const excerptArrow = "--> "
const excerptDots = "... "

func FormatErrorMessage(prefix string, message string, useColor bool) string {
	var builder strings.Builder

	if useColor {
		builder.WriteString(aurora.Colorize(prefix, aurora.RedFg|aurora.BrightFg|aurora.BoldFm).String())
	} else {
		builder.WriteString(prefix)
	}

	if message != "" {
		builder.WriteString(": ")
		if useColor {
			builder.WriteString(aurora.Colorize(message, aurora.BoldFm).String())
		} else {
			builder.WriteString(message)
		}
	}

	builder.WriteString("\n")

	return builder.String()
}

type excerpt struct {
	startPos *ast.Position
	endPos   *ast.Position
	message  string
	isError  bool
}

func newExcerpt(obj any, message string, isError bool) excerpt {
	result := excerpt{
		message: message,
		isError: isError,
	}
	if positioned, hasPosition := obj.(ast.HasPosition); hasPosition {
		startPos := positioned.StartPosition()
		result.startPos = &startPos

		endPos := positioned.EndPosition(nil)
		result.endPos = &endPos
	}
	return result
}

// ErrorPrettyPrinter prints errors with the source excerpt
// the error's position information refers to, e.g.:
//
//	error: capture of `storage` is by reference
//	 --> test:3:9
type ErrorPrettyPrinter struct {
	writer   io.Writer
	useColor bool
}

func NewErrorPrettyPrinter(writer io.Writer, useColor bool) ErrorPrettyPrinter {
	return ErrorPrettyPrinter{
		writer:   writer,
		useColor: useColor,
	}
}

func (p ErrorPrettyPrinter) writeString(str string) error {
	_, err := p.writer.Write([]byte(str))
	return err
}

func (p ErrorPrettyPrinter) PrettyPrintError(
	err error,
	location common.Location,
	codes map[common.Location]string,
) error {
	// writeString sets the error, so it can be checked once at the end
	var writeErr error
	write := func(str string) {
		if writeErr != nil {
			return
		}
		writeErr = p.writeString(str)
	}

	printErr := p.prettyPrintError(write, err, location, codes)
	if printErr != nil {
		return printErr
	}

	return writeErr
}

func (p ErrorPrettyPrinter) prettyPrintError(
	write func(string),
	err error,
	location common.Location,
	codes map[common.Location]string,
) error {

	// If the error is a parent error, print each of its child errors instead

	if parentErr, ok := err.(errors.ParentError); ok {
		for i, childErr := range parentErr.ChildErrors() {
			if i > 0 {
				write("\n")
			}
			printErr := p.prettyPrintError(write, childErr, location, codes)
			if printErr != nil {
				return printErr
			}
		}
		return nil
	}

	write(FormatErrorMessage(errorPrefix, err.Error(), p.useColor))

	message := ""
	if secondaryError, ok := err.(errors.SecondaryError); ok {
		message = secondaryError.SecondaryError()
	}

	excerpts := []excerpt{
		newExcerpt(err, message, true),
	}

	if errorNotes, ok := err.(errors.ErrorNotes); ok {
		for _, errorNote := range errorNotes.ErrorNotes() {
			excerpts = append(
				excerpts,
				newExcerpt(errorNote, errorNote.Message(), false),
			)
		}
	}

	p.writeCodeExcerpts(write, excerpts, location, codes)

	return nil
}

func (p ErrorPrettyPrinter) writeCodeExcerpts(
	write func(string),
	excerpts []excerpt,
	location common.Location,
	codes map[common.Location]string,
) {
	var code string
	if location != nil {
		code = codes[location]
	}

	lines := strings.Split(code, "\n")

	var lastLineNumber int

	for i, exc := range excerpts {

		lineNumberString := ""
		lineNumberLength := 0
		if exc.startPos != nil {
			plainLineNumberString := strconv.Itoa(exc.startPos.Line)
			lineNumberLength = len(plainLineNumberString)

			lineNumberString = plainLineNumberString
			if p.useColor {
				lineNumberString = aurora.Colorize(plainLineNumberString, aurora.CyanFg).String()
			}
		}

		// location, e.g. ` --> test:2:9`
		if i == 0 && location != nil {
			write(" ")
			write(excerptArrow)
			write(location.String())
			if exc.startPos != nil {
				write(fmt.Sprintf(
					":%d:%d",
					exc.startPos.Line,
					exc.startPos.Column,
				))
			}
			write("\n")
		}

		if exc.startPos == nil ||
			exc.startPos.Line <= 0 ||
			exc.startPos.Line > len(lines) {

			continue
		}

		if i > 0 && exc.startPos.Line > lastLineNumber+1 {
			write(strings.Repeat(" ", lineNumberLength))
			write(excerptDots)
			write("\n")
		}
		lastLineNumber = exc.startPos.Line

		// code line, e.g. `2 | let y = x + 1`
		write(lineNumberString)
		write(" | ")
		write(lines[exc.startPos.Line-1])
		write("\n")

		// indicator line, e.g. `  |     ^^^^^`
		write(strings.Repeat(" ", lineNumberLength))
		write(" | ")
		write(strings.Repeat(" ", exc.startPos.Column))

		columns := 1
		if exc.endPos != nil && exc.endPos.Line == exc.startPos.Line {
			columns = exc.endPos.Column - exc.startPos.Column + 1
		}

		indicator := "-"
		if exc.isError {
			indicator = "^"
		}

		indicators := strings.Repeat(indicator, columns)
		if p.useColor {
			color := aurora.YellowFg
			if exc.isError {
				color = aurora.RedFg | aurora.BrightFg
			}
			indicators = aurora.Colorize(indicators, color).String()
		}
		write(indicators)

		if exc.message != "" {
			write(" ")
			write(exc.message)
		}

		write("\n")
	}
}
