// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package label

import (
	"errors"
	"fmt"
	"strings"
)

// A small PVL reader, enough for PDS3 labels and ISIS cube labels. Values are kept as text,
// interpretation happens in the capabilities reading them

type pvlTokenKind int

const (
	tokWord pvlTokenKind = iota
	tokString
	tokUnit
	tokEquals
	tokOpen
	tokClose
	tokComma
)

type pvlToken struct {
	kind pvlTokenKind
	text string
	line int
}

type pvlKeyword struct {
	name  string
	value Value
}

type pvlBlock struct {
	kind     string // GROUP, OBJECT or ROOT
	name     string
	entries  []pvlEntry
	parent   *pvlBlock
	keywords map[string]int // upper-cased keyword name -> first entry index
}

// Each entry is either a keyword or a nested block, kept in document order
type pvlEntry struct {
	keyword *pvlKeyword
	block   *pvlBlock
}

func isWordChar(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '=', '(', ')', '{', '}', ',', '<', '>', '"', '\'':
		return false
	}
	return true
}

func tokenisePVL(text string) ([]pvlToken, error) {
	tokens := []pvlToken{}
	line := 1

	for i := 0; i < len(text); {
		c := text[i]

		switch {
		case c == '\n':
			line++
			i++
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				return nil, fmt.Errorf("unterminated comment on line %v", line)
			}
			line += strings.Count(text[i:i+2+end], "\n")
			i += end + 4
		case c == '=':
			tokens = append(tokens, pvlToken{tokEquals, "=", line})
			i++
		case c == '(' || c == '{':
			tokens = append(tokens, pvlToken{tokOpen, string(c), line})
			i++
		case c == ')' || c == '}':
			tokens = append(tokens, pvlToken{tokClose, string(c), line})
			i++
		case c == ',':
			tokens = append(tokens, pvlToken{tokComma, ",", line})
			i++
		case c == '"' || c == '\'':
			end := strings.IndexByte(text[i+1:], c)
			if end < 0 {
				return nil, fmt.Errorf("unterminated string on line %v", line)
			}
			str := text[i+1 : i+1+end]
			tokens = append(tokens, pvlToken{tokString, strings.Join(strings.Fields(str), " "), line})
			line += strings.Count(str, "\n")
			i += end + 2
		case c == '<':
			end := strings.IndexByte(text[i+1:], '>')
			if end < 0 {
				return nil, fmt.Errorf("unterminated unit on line %v", line)
			}
			unit := strings.TrimSpace(text[i+1 : i+1+end])
			if strings.ContainsAny(unit, "\n<") {
				return nil, fmt.Errorf("malformed unit on line %v", line)
			}
			tokens = append(tokens, pvlToken{tokUnit, unit, line})
			i += end + 2
		case c == '>':
			return nil, fmt.Errorf("unexpected '>' on line %v", line)
		default:
			start := i
			for i < len(text) && isWordChar(text[i]) && !(text[i] == '/' && i+1 < len(text) && text[i+1] == '*') {
				i++
			}
			tokens = append(tokens, pvlToken{tokWord, text[start:i], line})
		}
	}

	return tokens, nil
}

type pvlParser struct {
	tokens []pvlToken
	pos    int
}

func (p *pvlParser) peek() (pvlToken, bool) {
	if p.pos >= len(p.tokens) {
		return pvlToken{}, false
	}
	return p.tokens[p.pos], true
}

func (p *pvlParser) next() (pvlToken, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

func (p *pvlParser) expect(kind pvlTokenKind, what string) (pvlToken, error) {
	tok, ok := p.next()
	if !ok {
		return tok, fmt.Errorf("expected %v, got end of label", what)
	}
	if tok.kind != kind {
		return tok, fmt.Errorf("expected %v on line %v, got \"%v\"", what, tok.line, tok.text)
	}
	return tok, nil
}

func parsePVL(text string) (*pvlBlock, error) {
	tokens, err := tokenisePVL(text)
	if err != nil {
		return nil, err
	}

	if len(tokens) == 0 {
		return nil, errors.New("label is empty")
	}

	root := newBlock("ROOT", "", nil)
	current := root
	p := &pvlParser{tokens: tokens}

	for {
		tok, ok := p.next()
		if !ok {
			break
		}

		if tok.kind != tokWord {
			return nil, fmt.Errorf("expected keyword on line %v, got \"%v\"", tok.line, tok.text)
		}

		name := strings.ToUpper(tok.text)
		nextTok, hasNext := p.peek()
		hasEquals := hasNext && nextTok.kind == tokEquals

		if name == "END" && !hasEquals {
			break
		}

		switch name {
		case "END_GROUP", "END_OBJECT":
			if hasEquals {
				p.next()
				if _, ok := p.next(); !ok {
					return nil, fmt.Errorf("expected block name after %v on line %v", tok.text, tok.line)
				}
			}
			wantKind := strings.TrimPrefix(name, "END_")
			if current.parent == nil || current.kind != wantKind {
				return nil, fmt.Errorf("unbalanced %v on line %v", tok.text, tok.line)
			}
			current = current.parent
			continue
		}

		if !hasEquals {
			return nil, fmt.Errorf("expected '=' after \"%v\" on line %v", tok.text, tok.line)
		}
		p.next()

		switch name {
		case "GROUP", "BEGIN_GROUP", "OBJECT", "BEGIN_OBJECT":
			blockName, ok := p.next()
			if !ok || (blockName.kind != tokWord && blockName.kind != tokString) {
				return nil, fmt.Errorf("expected block name after %v on line %v", tok.text, tok.line)
			}
			kind := strings.TrimPrefix(name, "BEGIN_")
			child := newBlock(kind, blockName.text, current)
			current.entries = append(current.entries, pvlEntry{block: child})
			current = child
			continue
		}

		value, err := p.parseValue()
		if err != nil {
			return nil, fmt.Errorf("keyword \"%v\": %v", tok.text, err)
		}
		current.addKeyword(&pvlKeyword{name: tok.text, value: value})
	}

	if current != root {
		return nil, fmt.Errorf("%v \"%v\" is never closed", current.kind, current.name)
	}

	return root, nil
}

func (p *pvlParser) parseValue() (Value, error) {
	tok, ok := p.next()
	if !ok {
		return Value{}, errors.New("missing value")
	}

	result := Value{}
	switch tok.kind {
	case tokWord, tokString:
		result.Text = tok.text
	case tokOpen:
		items, unit, err := p.parseSequence()
		if err != nil {
			return result, err
		}
		result.Items = items
		result.Unit = unit
		if len(items) > 0 {
			result.Text = items[0]
		}
		return result, nil
	default:
		return result, fmt.Errorf("unexpected \"%v\" on line %v", tok.text, tok.line)
	}

	if unitTok, ok := p.peek(); ok && unitTok.kind == tokUnit {
		p.next()
		result.Unit = unitTok.text
	}
	return result, nil
}

// Reads sequence items up to the matching close bracket. Nested sequences are flattened,
// and the first unit seen applies to the whole sequence
func (p *pvlParser) parseSequence() ([]string, string, error) {
	items := []string{}
	unit := ""
	depth := 1

	for depth > 0 {
		tok, ok := p.next()
		if !ok {
			return nil, "", errors.New("unterminated sequence")
		}

		switch tok.kind {
		case tokOpen:
			depth++
		case tokClose:
			depth--
		case tokWord, tokString:
			items = append(items, tok.text)
		case tokUnit:
			if len(unit) == 0 {
				unit = tok.text
			}
		case tokComma:
		default:
			return nil, "", fmt.Errorf("unexpected \"%v\" in sequence on line %v", tok.text, tok.line)
		}
	}

	// A unit may also follow the closing bracket
	if unitTok, ok := p.peek(); ok && unitTok.kind == tokUnit {
		p.next()
		if len(unit) == 0 {
			unit = unitTok.text
		}
	}

	return items, unit, nil
}

func newBlock(kind string, name string, parent *pvlBlock) *pvlBlock {
	return &pvlBlock{kind: kind, name: name, parent: parent, keywords: map[string]int{}}
}

func (b *pvlBlock) addKeyword(kw *pvlKeyword) {
	key := strings.ToUpper(kw.name)
	if _, exists := b.keywords[key]; !exists {
		b.keywords[key] = len(b.entries)
	}
	b.entries = append(b.entries, pvlEntry{keyword: kw})
}

func (b *pvlBlock) keyword(name string) (*pvlKeyword, bool) {
	idx, ok := b.keywords[strings.ToUpper(name)]
	if !ok {
		return nil, false
	}
	return b.entries[idx].keyword, true
}

// Finds a keyword in this block or any nested block, in document order
func (b *pvlBlock) findKeyword(name string) (*pvlKeyword, bool) {
	if kw, ok := b.keyword(name); ok {
		return kw, true
	}
	for _, entry := range b.entries {
		if entry.block != nil {
			if kw, ok := entry.block.findKeyword(name); ok {
				return kw, true
			}
		}
	}
	return nil, false
}

// Segment is "Name" or "Name[Selector]", where Selector matches the block's Name keyword
func (b *pvlBlock) matches(segment string) bool {
	name, selector := splitSegment(segment)
	if !strings.EqualFold(b.name, name) {
		return false
	}
	if len(selector) == 0 {
		return true
	}
	kw, ok := b.keyword("Name")
	return ok && strings.EqualFold(kw.value.Text, selector)
}

func (b *pvlBlock) child(segment string) (*pvlBlock, bool) {
	for _, entry := range b.entries {
		if entry.block != nil && entry.block.matches(segment) {
			return entry.block, true
		}
	}
	return nil, false
}

func (b *pvlBlock) findBlock(segment string) (*pvlBlock, bool) {
	if c, ok := b.child(segment); ok {
		return c, true
	}
	for _, entry := range b.entries {
		if entry.block != nil {
			if c, ok := entry.block.findBlock(segment); ok {
				return c, true
			}
		}
	}
	return nil, false
}

func splitSegment(segment string) (string, string) {
	open := strings.IndexByte(segment, '[')
	if open < 0 || !strings.HasSuffix(segment, "]") {
		return segment, ""
	}
	return segment[:open], segment[open+1 : len(segment)-1]
}

// Paths are slash separated block names ending in a keyword. A 1 segment path finds the keyword
// anywhere. Otherwise the first block is searched for anywhere and the rest is relative to it
func (b *pvlBlock) lookup(path string) (*pvlKeyword, bool) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) == 1 {
		return b.findKeyword(segments[0])
	}

	block, ok := b.findBlock(segments[0])
	if !ok {
		return nil, false
	}

	for _, segment := range segments[1 : len(segments)-1] {
		block, ok = block.child(segment)
		if !ok {
			return nil, false
		}
	}

	return block.keyword(segments[len(segments)-1])
}

// keywordsOf - every keyword directly in the block at path, in order
func (b *pvlBlock) keywordsOf(path string) ([]*pvlKeyword, bool) {
	block := b
	if len(path) > 0 {
		segments := strings.Split(strings.Trim(path, "/"), "/")
		var ok bool
		block, ok = b.findBlock(segments[0])
		if !ok {
			return nil, false
		}
		for _, segment := range segments[1:] {
			block, ok = block.child(segment)
			if !ok {
				return nil, false
			}
		}
	}

	result := []*pvlKeyword{}
	for _, entry := range block.entries {
		if entry.keyword != nil {
			result = append(result, entry.keyword)
		}
	}
	return result, true
}
