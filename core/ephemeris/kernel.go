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

package ephemeris

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Text kernels (IK, FK, SCLK, LSK, PCK) hold data sections between \begindata and \begintext
// markers. Everything else is commentary

type kernelValue struct {
	number   float64
	text     string
	isString bool
}

type assignment struct {
	name   string
	append bool
	values []kernelValue
}

func parseKernel(raw string) ([]assignment, error) {
	data := strings.Builder{}
	inData := false

	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, `\begindata`):
			inData = true
			continue
		case strings.HasPrefix(trimmed, `\begintext`):
			inData = false
			continue
		}

		if inData {
			data.WriteString(line)
			data.WriteString("\n")
		}
	}

	return parseAssignments(data.String())
}

type kernelScanner struct {
	text string
	pos  int
}

func (s *kernelScanner) skipSpace() {
	for s.pos < len(s.text) && (s.text[s.pos] == ' ' || s.text[s.pos] == '\t' || s.text[s.pos] == '\n' || s.text[s.pos] == '\r' || s.text[s.pos] == ',') {
		s.pos++
	}
}

func (s *kernelScanner) done() bool {
	s.skipSpace()
	return s.pos >= len(s.text)
}

func (s *kernelScanner) line() int {
	return strings.Count(s.text[:s.pos], "\n") + 1
}

func parseAssignments(text string) ([]assignment, error) {
	result := []assignment{}
	s := &kernelScanner{text: text}

	for !s.done() {
		start := s.pos
		for s.pos < len(s.text) && !strings.ContainsRune(" \t\r\n=", rune(s.text[s.pos])) && !strings.HasPrefix(s.text[s.pos:], "+=") {
			s.pos++
		}
		name := s.text[start:s.pos]
		if len(name) == 0 {
			return nil, fmt.Errorf("expected variable name on data line %v", s.line())
		}

		s.skipSpace()
		op := assignment{name: name}
		switch {
		case strings.HasPrefix(s.text[s.pos:], "+="):
			op.append = true
			s.pos += 2
		case strings.HasPrefix(s.text[s.pos:], "="):
			s.pos++
		default:
			return nil, fmt.Errorf("expected = or += after %v on data line %v", name, s.line())
		}

		s.skipSpace()
		if s.pos < len(s.text) && s.text[s.pos] == '(' {
			s.pos++
			for {
				s.skipSpace()
				if s.pos >= len(s.text) {
					return nil, fmt.Errorf("unterminated value list for %v", name)
				}
				if s.text[s.pos] == ')' {
					s.pos++
					break
				}
				v, err := s.value()
				if err != nil {
					return nil, fmt.Errorf("%v: %v", name, err)
				}
				op.values = append(op.values, v)
			}
		} else {
			if s.pos >= len(s.text) {
				return nil, fmt.Errorf("missing value for %v", name)
			}
			v, err := s.value()
			if err != nil {
				return nil, fmt.Errorf("%v: %v", name, err)
			}
			op.values = append(op.values, v)
		}

		result = append(result, op)
	}

	return result, nil
}

func (s *kernelScanner) value() (kernelValue, error) {
	if s.text[s.pos] == '\'' {
		// Quoted string, '' is an embedded quote
		str := strings.Builder{}
		s.pos++
		for {
			if s.pos >= len(s.text) {
				return kernelValue{}, errors.New("unterminated string")
			}
			c := s.text[s.pos]
			s.pos++
			if c == '\'' {
				if s.pos < len(s.text) && s.text[s.pos] == '\'' {
					str.WriteByte('\'')
					s.pos++
					continue
				}
				break
			}
			str.WriteByte(c)
		}
		return kernelValue{text: str.String(), isString: true}, nil
	}

	start := s.pos
	for s.pos < len(s.text) && !strings.ContainsRune(" \t\r\n,)", rune(s.text[s.pos])) {
		s.pos++
	}
	token := s.text[start:s.pos]

	if strings.HasPrefix(token, "@") {
		secs, err := parseKernelDate(token[1:])
		if err != nil {
			return kernelValue{}, err
		}
		return kernelValue{number: secs, text: token}, nil
	}

	num, err := strconv.ParseFloat(strings.NewReplacer("D", "E", "d", "e").Replace(token), 64)
	if err != nil {
		return kernelValue{}, fmt.Errorf("bad number \"%v\"", token)
	}
	return kernelValue{number: num, text: token}, nil
}

var kernelDateLayouts = []string{
	"2006-Jan-2/15:04:05.999999999",
	"2006-Jan-2/15:04",
	"2006-Jan-2",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// Kernel dates (@1972-JAN-1, @2009-APR-06/00:00:00) are stored as seconds past J2000 with no
// leap second adjustment, which is what the leap second table is compared against
func parseKernelDate(text string) (float64, error) {
	// Go's month parsing wants Jan, kernels write JAN
	normalised := text
	if len(text) >= 9 && text[4] == '-' && text[8] == '-' {
		normalised = text[:5] + text[5:6] + strings.ToLower(text[6:8]) + text[8:]
	}

	for _, layout := range kernelDateLayouts {
		if t, err := time.Parse(layout, normalised); err == nil {
			return secondsPastJ2000(t), nil
		}
	}
	return 0, fmt.Errorf("bad date \"@%v\"", text)
}
