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
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pixlise/isd-generator/core/label"
)

// KeywordLister - labels that can list the keywords of one of their groups/objects (ISIS cubes)
type KeywordLister interface {
	Keywords(path string) ([]label.Keyword, error)
}

// KeywordProvider answers Provider queries from the NaifKeywords object ISIS writes into a
// cube label when the cube is spiceinit'ed, so no kernels need loading
type KeywordProvider struct {
	values map[string]label.Value
}

// LabelKeywords builds a KeywordProvider over the label's NaifKeywords object
func LabelKeywords(lbl KeywordLister) (*KeywordProvider, error) {
	kws, err := lbl.Keywords("NaifKeywords")
	if err != nil {
		return nil, err
	}

	values := map[string]label.Value{}
	for _, kw := range kws {
		values[strings.ToUpper(kw.Name)] = kw.Value
	}
	return &KeywordProvider{values: values}, nil
}

func (p *KeywordProvider) Pool(keyword string) ([]float64, error) {
	v, ok := p.values[strings.ToUpper(keyword)]
	if !ok {
		return nil, fmt.Errorf("%v: %w", keyword, ErrNotLoaded)
	}

	result, err := v.Floats()
	if err != nil {
		return nil, fmt.Errorf("%v holds text, not numbers", keyword)
	}
	return result, nil
}

// BodyCode knows the built in bodies, BODY_CODE isn't named so can't be matched
func (p *KeywordProvider) BodyCode(name string) (int, error) {
	if code, ok := builtinBodies[normaliseName(name)]; ok {
		return code, nil
	}
	if code, ok := integerName(name); ok {
		return code, nil
	}
	return 0, fmt.Errorf("body \"%v\": %w", name, ErrNotLoaded)
}

func (p *KeywordProvider) FrameCode(name string) (int, error) {
	want := normaliseName(name)
	if v, ok := p.values["FRAME_"+want]; ok {
		if code, err := v.Int(); err == nil {
			return code, nil
		}
	}
	if code, ok := builtinFrames[want]; ok {
		return code, nil
	}
	return 0, fmt.Errorf("frame \"%v\": %w", name, ErrNotLoaded)
}

// SclkToEt reads the conversions ISIS cached as CLOCK_ET_<id>_<clock>_COMPUTED (a hex encoded
// little endian double), falling back to any type 1 clock coefficients in the keywords
func (p *KeywordProvider) SclkToEt(spacecraftID int, clock string) (float64, error) {
	key := fmt.Sprintf("CLOCK_ET_%v_%v_COMPUTED", spacecraftID, strings.TrimSpace(clock))
	if v, ok := p.values[key]; ok {
		return decodeHexDouble(v.Text)
	}

	return sclkToEt(spacecraftID, clock, p.Pool)
}

func (p *KeywordProvider) UtcToEt(utc string) (float64, error) {
	return utcToEt(utc, p.Pool)
}

func decodeHexDouble(text string) (float64, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(text))
	if err != nil || len(raw) != 8 {
		return 0, fmt.Errorf("bad computed clock value \"%v\"", text)
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(raw)), nil
}

// Integer keyword values, for example BODY_FRAME_CODE
func (p *KeywordProvider) Int(keyword string) (int, error) {
	v, ok := p.values[strings.ToUpper(keyword)]
	if !ok {
		return 0, fmt.Errorf("%v: %w", keyword, ErrNotLoaded)
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.Text))
	if err != nil {
		return 0, fmt.Errorf("%v is not an integer: %v", keyword, v.Text)
	}
	return n, nil
}
