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

	"github.com/turbolent/prettier"

	"github.com/lumen-lang/lumen/common"
)

// Block

type Block struct {
	Statements []Statement
	Range
}

var _ Element = &Block{}

func NewBlock(
	memoryGauge common.MemoryGauge,
	statements []Statement,
	astRange Range,
) *Block {
	common.UseMemory(memoryGauge, common.BlockMemoryUsage)

	return &Block{
		Statements: statements,
		Range:      astRange,
	}
}

func (b *Block) IsEmpty() bool {
	return b == nil || len(b.Statements) == 0
}

func (*Block) ElementType() ElementType {
	return ElementTypeBlock
}

func (b *Block) Walk(walkChild func(Element)) {
	walkStatements(walkChild, b.Statements)
}

var blockStartDoc prettier.Doc = prettier.Text("{")
var blockEndDoc prettier.Doc = prettier.Text("}")
var blockEmptyDoc prettier.Doc = prettier.Text("{}")

func (b *Block) Doc() prettier.Doc {
	if b.IsEmpty() {
		return blockEmptyDoc
	}

	return prettier.Concat{
		blockStartDoc,
		prettier.Indent{
			Doc: StatementsDoc(b.Statements),
		},
		prettier.HardLine{},
		blockEndDoc,
	}
}

func StatementsDoc(statements []Statement) prettier.Doc {
	var doc prettier.Concat

	for _, statement := range statements {
		doc = append(
			doc,
			prettier.HardLine{},
			statement.Doc(),
		)
	}
	return doc
}

func (b *Block) MarshalJSON() ([]byte, error) {
	type Alias Block
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "Block",
		Alias: (*Alias)(b),
	})
}

// FunctionBlock

type FunctionBlock struct {
	Block *Block
}

var _ Element = &FunctionBlock{}

func NewFunctionBlock(
	memoryGauge common.MemoryGauge,
	block *Block,
) *FunctionBlock {
	common.UseMemory(memoryGauge, common.BlockMemoryUsage)
	return &FunctionBlock{
		Block: block,
	}
}

func (b *FunctionBlock) IsEmpty() bool {
	return b == nil || b.Block.IsEmpty()
}

func (*FunctionBlock) ElementType() ElementType {
	return ElementTypeFunctionBlock
}

func (b *FunctionBlock) Walk(walkChild func(Element)) {
	walkChild(b.Block)
}

func (b *FunctionBlock) StartPosition() Position {
	return b.Block.StartPos
}

func (b *FunctionBlock) EndPosition(common.MemoryGauge) Position {
	return b.Block.EndPos
}

func (b *FunctionBlock) Doc() prettier.Doc {
	return b.Block.Doc()
}

func (b *FunctionBlock) MarshalJSON() ([]byte, error) {
	type Alias FunctionBlock
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "FunctionBlock",
		Range: NewUnmeteredRangeFromPositioned(b),
		Alias: (*Alias)(b),
	})
}
