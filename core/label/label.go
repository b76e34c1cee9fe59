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

// Read-only views over parsed mission labels (PDS3, PDS4, ISIS cube). Every format is queried
// the same way: Find a path, get back text with an optional unit, or ErrNotFound
package label

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Format - which label grammar a Label was parsed from
type Format string

const (
	FormatPDS3 Format = "PDS3"
	FormatPDS4 Format = "PDS4"
	FormatISIS Format = "ISIS"
)

// ErrNotFound is returned (possibly wrapped) by Find when a path doesn't exist in the label.
// Callers probing optional fields check for it with errors.Is
var ErrNotFound = errors.New("not found in label")

// Label - a parsed label. Implementations are immutable after parsing
type Label interface {
	Format() Format
	Find(path string) (Value, error)
}

// Value - what a path lookup returns. Unit is empty if the label didn't annotate the value
type Value struct {
	Text  string
	Unit  string
	Items []string // Set only for sequence values, Text then holds the first item
}

func (v Value) HasUnit() bool {
	return len(v.Unit) > 0
}

func (v Value) Float() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
}

func (v Value) Int() (int, error) {
	return strconv.Atoi(strings.TrimSpace(v.Text))
}

// Floats - all items of a sequence as numbers. A scalar is returned as a 1 item slice
func (v Value) Floats() ([]float64, error) {
	items := v.Items
	if items == nil {
		items = []string{v.Text}
	}

	result := make([]float64, 0, len(items))
	for _, item := range items {
		f, err := strconv.ParseFloat(strings.TrimSpace(item), 64)
		if err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	return result, nil
}

// InvalidLabelError - the label content can't be parsed as the given format, or a value the
// caller needed from it is missing or unreadable (Property is set in that case)
type InvalidLabelError struct {
	Format   Format
	Input    string
	Property string
	Err      error
}

func (e *InvalidLabelError) Error() string {
	if len(e.Property) > 0 {
		return fmt.Sprintf("%v label \"%v\" can't supply %v: %v", e.Format, e.Input, e.Property, e.Err)
	}
	return fmt.Sprintf("\"%v\" is not a valid %v label: %v", e.Input, e.Format, e.Err)
}

func (e *InvalidLabelError) Unwrap() error {
	return e.Err
}

func notFound(path string) error {
	return fmt.Errorf("%v: %w", path, ErrNotFound)
}
