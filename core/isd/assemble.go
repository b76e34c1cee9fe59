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
	"errors"

	"github.com/pixlise/isd-generator/core/driver"
	"github.com/pixlise/isd-generator/core/label"
)

// Properties every ISD needs, whatever the sensor
var commonRequired = []driver.Property{
	driver.NameModel,
	driver.SensorModelVersion,
	driver.InstrumentID,
	driver.SensorName,
	driver.Ikid,
	driver.SensorFrameID,
	driver.PlatformName,
	driver.SpacecraftName,
	driver.SpacecraftID,
	driver.ImageLines,
	driver.ImageSamples,
	driver.SamplingFactor,
	driver.LineSumming,
	driver.SampleSumming,
	driver.DowntrackSumming,
	driver.CrosstrackSumming,
	driver.SpacecraftClockStartCount,
	driver.TargetName,
	driver.TargetID,
}

// Required lists what an ISD from d must contain: the common properties, then whatever its
// sensor geometry and distortion model require
func Required(d *driver.Driver) []driver.Property {
	result := append([]driver.Property{}, commonRequired...)
	comp := d.Composition()
	if comp.Geometry != nil {
		result = append(result, comp.Geometry.Required()...)
	}
	if comp.Distortion != nil {
		result = append(result, comp.Distortion.Required()...)
	}
	return result
}

// Reads properties into a document. The first failure of a required property sticks and
// stops further reads. Optional properties that are absent, unsupported or missing from the
// label are left out, any other failure of theirs is fatal too
type reader struct {
	d        *driver.Driver
	required map[driver.Property]bool
	err      *AssemblyError
}

func (r *reader) failed(p driver.Property, err error) bool {
	if err == nil {
		return false
	}
	if !r.required[p] && tolerated(err) {
		return true
	}
	if r.err == nil {
		r.err = &AssemblyError{Driver: r.d.Name(), Property: string(p), Err: err}
	}
	return true
}

func tolerated(err error) bool {
	var unsupported *driver.UnsupportedPropertyError
	var absent *driver.AbsentPropertyError
	return errors.As(err, &unsupported) || errors.As(err, &absent) || errors.Is(err, label.ErrNotFound)
}

func (r *reader) read(p driver.Property) (interface{}, bool) {
	if r.err != nil {
		return nil, false
	}
	v, err := r.d.Value(p)
	if r.failed(p, err) {
		return nil, false
	}
	if v == nil {
		if r.required[p] {
			r.failed(p, &driver.AbsentPropertyError{Driver: r.d.Name(), Property: p})
		}
		return nil, false
	}
	return v, true
}

func (r *reader) text(p driver.Property) string {
	if v := r.optText(p); v != nil {
		return *v
	}
	return ""
}

func (r *reader) optText(p driver.Property) *string {
	if _, ok := r.read(p); !ok {
		return nil
	}
	v, err := r.d.Text(p)
	if r.failed(p, err) {
		return nil
	}
	return &v
}

func (r *reader) integer(p driver.Property) int {
	if v := r.optInt(p); v != nil {
		return *v
	}
	return 0
}

func (r *reader) optInt(p driver.Property) *int {
	if _, ok := r.read(p); !ok {
		return nil
	}
	v, err := r.d.Int(p)
	if r.failed(p, err) {
		return nil
	}
	return &v
}

func (r *reader) number(p driver.Property) float64 {
	if v := r.optNumber(p); v != nil {
		return *v
	}
	return 0
}

func (r *reader) optNumber(p driver.Property) *float64 {
	if _, ok := r.read(p); !ok {
		return nil
	}
	v, err := r.d.Float(p)
	if r.failed(p, err) {
		return nil
	}
	return &v
}

func (r *reader) numbers(p driver.Property) []float64 {
	if _, ok := r.read(p); !ok {
		return nil
	}
	v, err := r.d.Floats(p)
	if r.failed(p, err) {
		return nil
	}
	return v
}

func (r *reader) flag(p driver.Property) bool {
	if _, ok := r.read(p); !ok {
		return false
	}
	v, err := r.d.Bool(p)
	if r.failed(p, err) {
		return false
	}
	return v
}

func (r *reader) raw(p driver.Property) interface{} {
	v, _ := r.read(p)
	return v
}

// Assemble reads the driver's normalised properties into an ISD. Any required property that
// fails, including one a capability left unsupported, fails the whole document with an
// AssemblyError naming it
func Assemble(d *driver.Driver) (*Document, error) {
	r := &reader{d: d, required: map[driver.Property]bool{}}
	for _, p := range Required(d) {
		r.required[p] = true
	}

	doc := &Document{
		NameModel:          r.text(driver.NameModel),
		SensorModelVersion: r.integer(driver.SensorModelVersion),
		Instrument: Instrument{
			ID:            r.text(driver.InstrumentID),
			Name:          r.optText(driver.InstrumentName),
			SensorName:    r.text(driver.SensorName),
			Ikid:          r.integer(driver.Ikid),
			SensorFrameID: r.integer(driver.SensorFrameID),
			FilterNumber:  r.optInt(driver.FilterNumber),
		},
		Platform: Platform{
			Name:           r.text(driver.PlatformName),
			SpacecraftName: r.text(driver.SpacecraftName),
			SpacecraftID:   r.integer(driver.SpacecraftID),
			HostID:         r.optText(driver.InstrumentHostID),
			HostName:       r.optText(driver.InstrumentHostName),
		},
		Image: Image{
			Lines:   r.integer(driver.ImageLines),
			Samples: r.integer(driver.ImageSamples),
		},
		Summing: Summing{
			SamplingFactor: r.integer(driver.SamplingFactor),
			Line:           r.integer(driver.LineSumming),
			Sample:         r.integer(driver.SampleSumming),
			Downtrack:      r.integer(driver.DowntrackSumming),
			Crosstrack:     r.integer(driver.CrosstrackSumming),
		},
		ClockCounts: ClockCounts{
			Start: r.text(driver.SpacecraftClockStartCount),
			Stop:  r.optText(driver.SpacecraftClockStopCount),
		},
		Target: Target{
			Name: r.text(driver.TargetName),
			ID:   r.integer(driver.TargetID),
		},
		FocalLength: FocalLength{FocalLength: r.number(driver.FocalLength)},
		DetectorCenter: DetectorPoint{
			Line:   r.number(driver.DetectorCenterLine),
			Sample: r.number(driver.DetectorCenterSample),
		},
		DetectorStart: DetectorPoint{
			Line:   r.number(driver.DetectorStartLine),
			Sample: r.number(driver.DetectorStartSample),
		},
		Focal2Pixel: Focal2Pixel{
			Lines:   r.numbers(driver.Focal2PixelLines),
			Samples: r.numbers(driver.Focal2PixelSamples),
		},
		Exposure: Exposure{
			Duration:        r.number(driver.ExposureDuration),
			LineDuration:    r.optNumber(driver.LineExposureDuration),
			InterframeDelay: r.optNumber(driver.InterframeDelay),
		},
		EphemerisTime: EphemerisTime{
			Start:    r.number(driver.EphemerisStartTime),
			Stop:     r.number(driver.EphemerisStopTime),
			Center:   r.number(driver.CenterEphemerisTime),
			Times:    r.numbers(driver.EphemerisTimes),
			UtcStart: r.optText(driver.UtcStartTime),
			UtcStop:  r.optText(driver.UtcStopTime),
		},
		SpacecraftDirection: r.optInt(driver.SpacecraftDirection),
	}

	doc.OpticalDistortion = assembleDistortion(r)
	doc.LineScanRate = lineScanRate(r)
	doc.PushFrame = assemblePushFrame(r)
	doc.LineTimes = r.raw(driver.LineTimes)
	doc.SampleJitterCoefficients = r.raw(driver.SampleJitterCoefficients)
	doc.LineJitterCoefficients = r.raw(driver.LineJitterCoefficients)

	if r.err != nil {
		return nil, r.err
	}
	return doc, nil
}

func assembleDistortion(r *reader) map[string]map[string]interface{} {
	model := r.d.Composition().Distortion
	if model == nil {
		return map[string]map[string]interface{}{}
	}

	fields := map[string]interface{}{}
	for key, p := range model.Fields() {
		if v, ok := r.read(p); ok {
			fields[key] = v
		}
	}
	return map[string]map[string]interface{}{model.Kind(): fields}
}

func lineScanRate(r *reader) [][]float64 {
	v, ok := r.read(driver.LineScanRate)
	if !ok {
		return nil
	}
	rate, isRate := v.([][]float64)
	if !isRate {
		r.failed(driver.LineScanRate, &driver.WrongTypeError{Driver: r.d.Name(), Property: driver.LineScanRate, Value: v, Want: "rows of numbers"})
		return nil
	}
	return rate
}

func assemblePushFrame(r *reader) *PushFrame {
	frames := r.optInt(driver.NumFrames)
	if frames == nil {
		return nil
	}
	return &PushFrame{
		FrameletHeight:        r.integer(driver.FrameletHeight),
		NumFrames:             *frames,
		FrameletOrderReversed: r.flag(driver.FrameletOrderReversed),
		FrameletsFlipped:      r.flag(driver.FrameletsFlipped),
		NumLinesOverlap:       r.integer(driver.NumLinesOverlap),
	}
}
