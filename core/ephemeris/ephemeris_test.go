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
	"testing"

	"github.com/pixlise/isd-generator/core/fileaccess"
	"github.com/pixlise/isd-generator/core/label"
	"github.com/pixlise/isd-generator/core/logger"
	"github.com/pixlise/isd-generator/internal/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kernelBucket = "kernels"

func makeKernelStore(names ...string) fileaccess.FileAccess {
	fs := fileaccess.NewMemoryAccess()
	for _, name := range names {
		fs.WriteObject(kernelBucket, "naif/"+name, fixtures.Read(name))
	}
	return fs
}

func kernelPaths(names []string) []string {
	result := []string{}
	for _, name := range names {
		result = append(result, "naif/"+name)
	}
	return result
}

func Example_kernelPoolQueries() {
	pool := NewKernelPool(&logger.NullLogger{})
	fs := makeKernelStore(fixtures.KaguyaKernels...)

	s, err := pool.Furnish(fs, kernelBucket, kernelPaths(fixtures.KaguyaKernels)...)
	fmt.Printf("Furnish: %v, loaded: %v\n", err, pool.Loaded())

	ikid, err := s.BodyCode("LISM_TC1")
	fmt.Printf("ikid: %v|%v\n", ikid, err)

	moon, err := s.BodyCode(" moon ")
	fmt.Printf("moon: %v|%v\n", moon, err)

	frame, err := s.FrameCode("LISM_TC1_HEAD")
	fmt.Printf("frame: %v|%v\n", frame, err)

	focal, err := s.Pool(InstrumentKeyword(ikid, "FOCAL_LENGTH"))
	fmt.Printf("focal: %v|%v\n", focal, err)

	odkx, err := s.Pool(InstrumentKeyword(ikid, "DISTORTION_COEF_X"))
	fmt.Printf("odkx: %v|%v\n", odkx, err)

	et, err := s.SclkToEt(-131, "922997380.174174")
	fmt.Printf("sclk: %.6f|%v\n", et, err)

	et, err = s.UtcToEt("2009-04-05T20:09:53.607478Z")
	fmt.Printf("utc: %.3f|%v\n", et, err)

	_, err = s.Pool("INS-131351_NOT_THERE")
	fmt.Printf("missing: %v|%v\n", err, errors.Is(err, ErrNotLoaded))

	s.Close()
	fmt.Printf("After close: %v\n", pool.Loaded())

	_, err = s.Pool(InstrumentKeyword(ikid, "FOCAL_LENGTH"))
	fmt.Println(err)

	// Output:
	// Furnish: <nil>, loaded: [naif0012.tls selene.tf selene_tc_mi.ti selene.tsc]
	// ikid: -131351|<nil>
	// moon: 301|<nil>
	// frame: -131350|<nil>
	// focal: [72.45]|<nil>
	// odkx: [-0.00096499 0.00098441 8.5773e-06 -3.7438e-06]|<nil>
	// sclk: 292234259.791174|<nil>
	// utc: 292234259.791|<nil>
	// missing: INS-131351_NOT_THERE: not defined by loaded kernels|true
	// After close: []
	// INS-131351_FOCAL_LENGTH: session closed
}

func Example_kernelShadowing() {
	pool := NewKernelPool(&logger.NullLogger{})

	base := pool.Open()
	fmt.Println(base.Load("base.ti", []byte("\\begindata\nINS-1_FOCAL_LENGTH = 10.0\nNAIF_BODY_NAME = 'CAM'\nNAIF_BODY_CODE = -1\n")))

	over := pool.Open()
	fmt.Println(over.Load("update.ti", []byte("\\begindata\nINS-1_FOCAL_LENGTH = 12.5D0\nNAIF_BODY_NAME += 'CAM'\nNAIF_BODY_CODE += -2\n\\begintext\nINS-1_FOCAL_LENGTH = 99\n")))

	focal, _ := base.Pool("INS-1_FOCAL_LENGTH")
	code, _ := base.BodyCode("cam")
	fmt.Printf("%v|%v\n", focal, code)

	over.Close()
	focal, _ = base.Pool("INS-1_FOCAL_LENGTH")
	code, _ = base.BodyCode("cam")
	fmt.Printf("%v|%v\n", focal, code)

	base.Close()
	base.Close()
	fmt.Println(pool.Loaded())

	// Output:
	// <nil>
	// <nil>
	// [12.5]|-2
	// [10]|-1
	// []
}

func Example_withKernels() {
	pool := NewKernelPool(&logger.NullLogger{})
	fs := makeKernelStore(fixtures.CassiniKernels...)

	err := pool.WithKernels(fs, kernelBucket, kernelPaths(fixtures.CassiniKernels), func(p Provider) error {
		sc, err := p.BodyCode("CASSINI ORBITER")
		fmt.Printf("spacecraft: %v|%v\n", sc, err)

		et, err := p.SclkToEt(sc, "1/1563716738.128")
		fmt.Printf("sclk: %.3f|%v\n", et, err)

		et, err = p.(UtcConverter).UtcToEt("2007-205T13:06:25.473")
		fmt.Printf("utc: %.3f|%v\n", et, err)
		return errors.New("assembly failed")
	})

	fmt.Printf("%v, loaded after: %v\n", err, pool.Loaded())

	err = pool.WithKernels(fs, kernelBucket, []string{"naif/naif0012.tls", "naif/missing.tsc"}, func(p Provider) error {
		fmt.Println("not called")
		return nil
	})
	fmt.Printf("%v, loaded after: %v\n", err != nil, pool.Loaded())

	// Output:
	// spacecraft: -82|<nil>
	// sclk: 238554450.657|<nil>
	// utc: 238554450.657|<nil>
	// assembly failed, loaded after: []
	// true, loaded after: []
}

func Test_ClockFormats(t *testing.T) {
	pool := NewKernelPool(&logger.NullLogger{})
	s := pool.Open()
	defer s.Close()

	require.NoError(t, s.Load("juice.tsc", fixtures.Read(fixtures.JuiceClock)))

	et, err := s.SclkToEt(-28, "1/1096977600.00000")
	require.NoError(t, err)
	assert.InDelta(t, 1096934469.184, et, 1e-6)

	// 32768 ticks of 65536 is half a second
	et, err = s.SclkToEt(-28, "1096977610:32768")
	require.NoError(t, err)
	assert.InDelta(t, 1096934479.684, et, 1e-6)

	_, err = s.SclkToEt(-28, "not a clock")
	assert.Error(t, err)

	_, err = s.SclkToEt(-99, "1")
	assert.ErrorIs(t, err, ErrNotLoaded)

	// No leap seconds loaded
	_, err = s.UtcToEt("2034-10-05T12:00:00Z")
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func Test_ClockPiecewise(t *testing.T) {
	pool := NewKernelPool(&logger.NullLogger{})
	s := pool.Open()
	defer s.Close()

	require.NoError(t, s.Load("selene.tsc", fixtures.Read(fixtures.SeleneClock)))

	// First segment covers the MI observation, second the TC one
	et, err := s.SclkToEt(-131, "905631021.135959")
	require.NoError(t, err)
	assert.InDelta(t, 274867895.665009, et, 1e-6)

	et, err = s.SclkToEt(-131, "922997410.431674")
	require.NoError(t, err)
	assert.InDelta(t, 292234290.048674, et, 1e-6)

	// Before the first segment extrapolates from it
	et, err = s.SclkToEt(-131, "905630000")
	require.NoError(t, err)
	assert.InDelta(t, 274866874.529050, et, 1e-6)
}

func Test_KernelSyntax(t *testing.T) {
	bad := map[string]string{
		"no equals":      "\\begindata\nINS-1_X 10\n",
		"bad number":     "\\begindata\nINS-1_X = 1.2.3\n",
		"unclosed list":  "\\begindata\nINS-1_X = ( 1 2\n",
		"unclosed text":  "\\begindata\nNAME = 'abc\n",
		"bad date":       "\\begindata\nWHEN = @2009-XYZ-1\n",
		"missing value":  "\\begindata\nINS-1_X =\n",
		"truncated date": "\\begindata\nDELTET/DELTA_AT = ( 10, @1972-JAN )\n",
		"short date":     "\\begindata\nWHEN = ( 0 @0000-000\n",
	}

	for name, text := range bad {
		_, err := parseKernel(text)
		assert.Error(t, err, name)
	}

	pool := NewKernelPool(&logger.NullLogger{})
	assert.Error(t, pool.Open().Load("leapseconds.tls", []byte(bad["truncated date"])))
	assert.Empty(t, pool.Loaded())

	ops, err := parseKernel("KPL/FK\ncomment = ignored\n\\begindata\nA = ( 'it''s', @1972-JAN-1, 1.5d2 )\nB+=3\n\\begintext\n")
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, "it's", ops[0].values[0].text)
	assert.InDelta(t, -883656000.0, ops[0].values[1].number, 1e-6)
	assert.Equal(t, 150.0, ops[0].values[2].number)
	assert.Equal(t, "B", ops[1].name)
	assert.True(t, ops[1].append)
}

func Test_ParseUTC(t *testing.T) {
	for _, text := range []string{"2009-04-05T20:09:53.607478Z", "2009-04-05T20:09:53.607478", "2009-095T20:09:53.607478", " 2009-095T20:09:53.607478Z "} {
		ts, err := ParseUTC(text)
		require.NoError(t, err, text)
		assert.Equal(t, "2009-04-05T20:09:53.607478Z", ts.Format("2006-01-02T15:04:05.999999Z07:00"), text)
	}

	_, err := ParseUTC("yesterday")
	assert.Error(t, err)
}

func Test_LabelKeywords(t *testing.T) {
	lbl, err := label.OpenISIS(fixtures.KaguyaTcIsis, fixtures.Read(fixtures.KaguyaTcIsis))
	require.NoError(t, err)

	p, err := LabelKeywords(lbl)
	require.NoError(t, err)

	focal, err := p.Pool("INS-131351_FOCAL_LENGTH")
	require.NoError(t, err)
	assert.Equal(t, []float64{72.45}, focal)

	center, err := p.Pool("ins-131351_center")
	require.NoError(t, err)
	assert.Equal(t, []float64{2048.0, 1.0}, center)

	_, err = p.Pool("INS-131351_LIGHTTIME_CORRECTION")
	assert.Error(t, err)

	_, err = p.Pool("INS-131351_NOPE")
	assert.ErrorIs(t, err, ErrNotLoaded)

	et, err := p.SclkToEt(-131, "922997380.174174")
	require.NoError(t, err)
	assert.InDelta(t, 292234259.791174, et, 1e-6)

	_, err = p.SclkToEt(-131, "922997410.431674")
	assert.ErrorIs(t, err, ErrNotLoaded)

	code, err := p.BodyCode("MOON")
	require.NoError(t, err)
	assert.Equal(t, 301, code)

	bodyCode, err := p.Int("BODY_CODE")
	require.NoError(t, err)
	assert.Equal(t, 301, bodyCode)

	_, err = p.FrameCode("LISM_TC1_HEAD")
	assert.ErrorIs(t, err, ErrNotLoaded)

	// PDS3 labels have no NaifKeywords
	pds3, err := label.OpenPDS3(fixtures.KaguyaTcPds3, fixtures.Read(fixtures.KaguyaTcPds3))
	require.NoError(t, err)
	_, err = LabelKeywords(pds3)
	assert.ErrorIs(t, err, label.ErrNotFound)
}
