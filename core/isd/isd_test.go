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

package isd

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/pixlise/isd-generator/core/capability"
	"github.com/pixlise/isd-generator/core/driver"
	"github.com/pixlise/isd-generator/core/ephemeris"
	"github.com/pixlise/isd-generator/core/logger"
	"github.com/pixlise/isd-generator/core/missions"
	"github.com/pixlise/isd-generator/internal/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func furnished(names []string) *ephemeris.Session {
	s := ephemeris.NewKernelPool(&logger.NullLogger{}).Open()
	for c, raw := range fixtures.ReadAll(names) {
		if err := s.Load(names[c], raw); err != nil {
			panic(err)
		}
	}
	return s
}

func cassiniDriver(comp *driver.Composition, kernels ephemeris.Provider) *driver.Driver {
	return comp.NewDriver(fixtures.CassiniIssPds3, fixtures.Read(fixtures.CassiniIssPds3), kernels)
}

func Example_cassiniDocument() {
	kernels := furnished(fixtures.CassiniKernels)
	defer kernels.Close()

	doc, err := Assemble(cassiniDriver(missions.GenericPds3Framer(), kernels))
	fmt.Printf("%v\n", err)

	for _, section := range []interface{}{
		doc.NameModel,
		doc.Instrument,
		doc.Platform,
		doc.Image,
		doc.Summing,
		doc.Exposure,
		doc.ClockCounts,
		doc.Target,
		doc.DetectorCenter,
		doc.DetectorStart,
		doc.FocalLength,
		doc.Focal2Pixel,
		doc.OpticalDistortion,
	} {
		b, err := json.Marshal(section)
		fmt.Printf("%v|%v\n", string(b), err)
	}

	b, _ := json.Marshal(doc)
	sections := map[string]interface{}{}
	fmt.Printf("%v\n", json.Unmarshal(b, &sections))
	keys := maps.Keys(sections)
	slices.Sort(keys)
	fmt.Printf("%v\n", keys)

	// Output:
	// <nil>
	// "USGS_ASTRO_FRAME_SENSOR_MODEL"|<nil>
	// {"id":"ISSNA","name":"IMAGING SCIENCE SUBSYSTEM NARROW ANGLE","sensor_name":"IMAGING SCIENCE SUBSYSTEM NARROW ANGLE","ikid":-82360,"sensor_frame_id":-82360,"filter_number":1}|<nil>
	// {"name":"CASSINI ORBITER","spacecraft_name":"CASSINI ORBITER","spacecraft_id":-82,"instrument_host_id":"CO","instrument_host_name":"CASSINI ORBITER"}|<nil>
	// {"lines":512,"samples":512}|<nil>
	// {"sampling_factor":2,"line":2,"sample":2,"downtrack":1,"crosstrack":1}|<nil>
	// {"exposure_duration":6}|<nil>
	// {"start":"1/1563716738.128","stop":"1/1563716744.118"}|<nil>
	// {"name":"SATURN","id":699}|<nil>
	// {"line":512.5,"sample":512.5}|<nil>
	// {"line":0,"sample":0}|<nil>
	// {"focal_length":2002.703}|<nil>
	// {"lines":[0,0,83.33333333],"samples":[0,83.33333333,0]}|<nil>
	// {"radial":{"coefficients":[0,-0.000008,0]}}|<nil>
	// <nil>
	// [clock_counts detector_center detector_start ephemeris_time exposure focal2pixel focal_length image instrument name_model optical_distortion platform sensor_model_version summing target]
}

func Test_CassiniTimes(t *testing.T) {
	kernels := furnished(fixtures.CassiniKernels)
	defer kernels.Close()

	doc, err := Assemble(cassiniDriver(missions.GenericPds3Framer(), kernels))
	require.NoError(t, err)

	times := doc.EphemerisTime
	assert.InDelta(t, 238554450.657, times.Start, 1e-6)
	assert.InDelta(t, times.Start+6, times.Stop, 1e-6)
	assert.Equal(t, []float64{times.Center}, times.Times)
	require.NotNil(t, times.UtcStart)
	assert.Equal(t, "2007-07-24T13:06:25.473Z", *times.UtcStart)

	// Framing camera, so none of the other geometries' sections
	assert.Nil(t, doc.LineScanRate)
	assert.Nil(t, doc.PushFrame)
	assert.Nil(t, doc.SpacecraftDirection)
	assert.Nil(t, doc.LineTimes)
	assert.Nil(t, doc.Exposure.LineDuration)
}

func Test_AssembleEveryFixture(t *testing.T) {
	inputs := []struct {
		comp    *driver.Composition
		name    string
		kernels []string
		model   string
		times   int
	}{
		{missions.JuiceJanusFramer(), fixtures.JanusFramer, fixtures.JanusKernels, capability.FrameSensorModel, 1},
		{missions.JuiceJanusPushFrame(), fixtures.JanusPush, fixtures.JanusKernels, capability.PushFrameSensorModel, 201},
		{missions.KaguyaTcPds3(), fixtures.KaguyaTcPds3, fixtures.KaguyaKernels, capability.LineScannerSensorModel, 4657},
		{missions.KaguyaTcIsis(), fixtures.KaguyaTcIsis, nil, capability.LineScannerSensorModel, 4657},
		{missions.KaguyaMiIsis(), fixtures.KaguyaMiIsis, fixtures.KaguyaKernels, capability.LineScannerSensorModel, 241},
		{missions.GenericPds3Framer(), fixtures.CassiniIssPds3, fixtures.CassiniKernels, capability.FrameSensorModel, 1},
	}

	for _, input := range inputs {
		t.Run(input.name, func(t *testing.T) {
			kernels := furnished(input.kernels)
			defer kernels.Close()

			result := input.comp.TryAdopt(input.name, fixtures.Read(input.name), kernels)
			require.NoError(t, result.Err)

			doc, err := Assemble(result.Driver)
			require.NoError(t, err)
			assert.Equal(t, input.model, doc.NameModel)
			assert.Len(t, doc.EphemerisTime.Times, input.times)
			assert.Len(t, doc.Focal2Pixel.Lines, 3)
			assert.Len(t, doc.Focal2Pixel.Samples, 3)
			assert.Len(t, doc.OpticalDistortion, 1)
			assert.Less(t, doc.EphemerisTime.Start, doc.EphemerisTime.Stop)

			_, err = json.Marshal(doc)
			assert.NoError(t, err)
		})
	}
}

func Test_KaguyaTcDocument(t *testing.T) {
	kernels := furnished(fixtures.KaguyaKernels)
	defer kernels.Close()

	result := missions.KaguyaTcPds3().TryAdopt(fixtures.KaguyaTcPds3, fixtures.Read(fixtures.KaguyaTcPds3), kernels)
	require.NoError(t, result.Err)
	doc, err := Assemble(result.Driver)
	require.NoError(t, err)

	assert.Equal(t, "LISM_TC1_STF", doc.Instrument.ID)
	assert.Nil(t, doc.Instrument.FilterNumber)
	require.NotNil(t, doc.SpacecraftDirection)
	assert.Equal(t, 1, *doc.SpacecraftDirection)

	require.Len(t, doc.LineScanRate, 1)
	assert.Equal(t, 0.5, doc.LineScanRate[0][0])
	assert.InDelta(t, doc.EphemerisTime.Start-doc.EphemerisTime.Center, doc.LineScanRate[0][1], 1e-9)

	lism := doc.OpticalDistortion["kaguyalism"]
	keys := maps.Keys(lism)
	slices.Sort(keys)
	assert.Equal(t, []string{"boresight_x", "boresight_y", "x", "y"}, keys)
	assert.Equal(t, -0.0725, lism["boresight_x"])
}

func Test_JanusPushFrameDocument(t *testing.T) {
	kernels := furnished(fixtures.JanusKernels)
	defer kernels.Close()

	result := missions.JuiceJanusPushFrame().TryAdopt(fixtures.JanusPush, fixtures.Read(fixtures.JanusPush), kernels)
	require.NoError(t, result.Err)
	doc, err := Assemble(result.Driver)
	require.NoError(t, err)

	assert.Equal(t, &PushFrame{FrameletHeight: 1, NumFrames: 200}, doc.PushFrame)
	require.NotNil(t, doc.Exposure.InterframeDelay)
	assert.InDelta(t, 0.02, *doc.Exposure.InterframeDelay, 1e-12)
	assert.Nil(t, doc.ClockCounts.Stop)
	assert.Equal(t, "1/1096977600.00000", doc.ClockCounts.Start)
	assert.Equal(t, "JUICE_JANUS", doc.Instrument.ID)
	assert.Equal(t, "JUICE_SPACECRAFT", doc.Platform.Name)
}

func rollingShutter(overrides driver.PropertySet) *driver.Composition {
	return &driver.Composition{
		Name:       "rolling",
		Label:      capability.Pds3Label{},
		Ephemeris:  capability.NaifSpice{},
		Geometry:   capability.RollingShutter{},
		Distortion: capability.Radial{},
		Overrides: driver.PropertySet{
			driver.LineExposureDuration: driver.Constant(0.01),
			driver.SpacecraftDirection:  driver.Constant(1),
		}.Merge(overrides),
	}
}

func Test_UnsupportedRequiredPropertyIsFatal(t *testing.T) {
	kernels := furnished(fixtures.CassiniKernels)
	defer kernels.Close()

	doc, err := Assemble(cassiniDriver(rollingShutter(nil), kernels))
	assert.Nil(t, doc)

	var assembly *AssemblyError
	require.True(t, errors.As(err, &assembly))
	assert.Equal(t, "rolling", assembly.Driver)
	assert.Equal(t, "line_times", assembly.Property)

	var unsupported *driver.UnsupportedPropertyError
	assert.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "driver rolling can't assemble ISD, line_times failed: driver rolling does not support line_times", err.Error())
}

func Test_RollingShutterWithMissionLineTimes(t *testing.T) {
	kernels := furnished(fixtures.CassiniKernels)
	defer kernels.Close()

	doc, err := Assemble(cassiniDriver(rollingShutter(driver.PropertySet{
		driver.LineTimes:                driver.Constant([][]float64{{0.5, -2.56, 0.01}}),
		driver.SampleJitterCoefficients: driver.Constant([]float64{0, 0}),
		driver.LineJitterCoefficients:   driver.Constant([]float64{0, 0}),
	}), kernels))
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{0.5, -2.56, 0.01}}, doc.LineTimes)
	assert.Equal(t, capability.LineScannerSensorModel, doc.NameModel)
	assert.Len(t, doc.EphemerisTime.Times, 513)
}

func Test_RequiredPropertyWithoutKernels(t *testing.T) {
	_, err := Assemble(cassiniDriver(missions.GenericPds3Framer(), nil))

	var assembly *AssemblyError
	require.True(t, errors.As(err, &assembly))
	assert.Equal(t, "ikid", assembly.Property)
	assert.True(t, errors.Is(err, driver.ErrNoKernels))
}

func Test_OptionalPropertyFailure(t *testing.T) {
	kernels := furnished(fixtures.CassiniKernels)
	defer kernels.Close()

	comp := missions.GenericPds3Framer()
	comp.Overrides = driver.PropertySet{
		// Unparseable, rather than missing
		driver.FilterNumber: capability.LabelInt(driver.FilterNumber, "TARGET_NAME"),
		// Missing from the label
		driver.InstrumentHostID: capability.LabelText(driver.InstrumentHostID, "NO_SUCH_KEYWORD"),
	}

	_, err := Assemble(cassiniDriver(comp, kernels))
	var assembly *AssemblyError
	require.True(t, errors.As(err, &assembly))
	assert.Equal(t, "filter_number", assembly.Property)

	delete(comp.Overrides, driver.FilterNumber)
	doc, err := Assemble(cassiniDriver(comp, kernels))
	require.NoError(t, err)
	assert.Nil(t, doc.Platform.HostID)
}

func Test_Required(t *testing.T) {
	d := cassiniDriver(missions.KaguyaTcPds3(), nil)
	required := Required(d)

	for _, p := range []driver.Property{driver.InstrumentID, driver.LineScanRate, driver.SpacecraftDirection, driver.DistortionX, driver.BoresightY} {
		assert.Contains(t, required, p)
	}
	assert.NotContains(t, required, driver.FilterNumber)
	assert.NotContains(t, required, driver.InterframeDelay)
}
