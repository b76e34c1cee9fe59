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
	"strings"
)

// Keyword - a named value directly inside a PVL group or object
type Keyword struct {
	Name  string
	Value Value
}

// PVLLabel - a PDS3 or ISIS cube label. Both are PVL, they only differ in what must be present
// for the text to count as that format
type PVLLabel struct {
	format Format
	root   *pvlBlock
}

func (l *PVLLabel) Format() Format {
	return l.format
}

// Find looks up a keyword by path. Examples:
//
//	INSTRUMENT_ID                                 (anywhere in the label)
//	IsisCube/Instrument/SpacecraftClockStartCount
//	Table[InstrumentPointing]/CkTableStartTime    (the Table object whose Name is InstrumentPointing)
func (l *PVLLabel) Find(path string) (Value, error) {
	kw, ok := l.root.lookup(path)
	if !ok {
		return Value{}, notFound(path)
	}
	return kw.value, nil
}

// Keywords returns every keyword directly inside the group or object at path, in label order
func (l *PVLLabel) Keywords(path string) ([]Keyword, error) {
	kws, ok := l.root.keywordsOf(path)
	if !ok {
		return nil, notFound(path)
	}

	result := make([]Keyword, 0, len(kws))
	for _, kw := range kws {
		result = append(result, Keyword{Name: kw.name, Value: kw.value})
	}
	return result, nil
}

// OpenPDS3 parses PDS3 label text. The label must carry PDS_VERSION_ID at the top level
func OpenPDS3(name string, raw []byte) (*PVLLabel, error) {
	root, err := parsePVL(string(raw))
	if err != nil {
		return nil, &InvalidLabelError{Format: FormatPDS3, Input: name, Err: err}
	}

	if _, ok := root.keyword("PDS_VERSION_ID"); !ok {
		return nil, &InvalidLabelError{Format: FormatPDS3, Input: name, Err: errors.New("missing PDS_VERSION_ID")}
	}

	return &PVLLabel{format: FormatPDS3, root: root}, nil
}

// OpenISIS parses an ISIS cube label. The label must contain an IsisCube object
func OpenISIS(name string, raw []byte) (*PVLLabel, error) {
	root, err := parsePVL(string(raw))
	if err != nil {
		return nil, &InvalidLabelError{Format: FormatISIS, Input: name, Err: err}
	}

	found := false
	for _, entry := range root.entries {
		if entry.block != nil && entry.block.kind == "OBJECT" && strings.EqualFold(entry.block.name, "IsisCube") {
			found = true
			break
		}
	}

	if !found {
		return nil, &InvalidLabelError{Format: FormatISIS, Input: name, Err: errors.New("missing IsisCube object")}
	}

	return &PVLLabel{format: FormatISIS, root: root}, nil
}
