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

package driver

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Property - name of one attribute of the normalised property surface. Names match the keys
// written into ISD documents where a property maps to a single ISD field
type Property string

const (
	InstrumentID       Property = "instrument_id"
	InstrumentName     Property = "instrument_name"
	InstrumentHostID   Property = "instrument_host_id"
	InstrumentHostName Property = "instrument_host_name"
	SpacecraftName     Property = "spacecraft_name"
	PlatformName       Property = "platform_name"
	SensorName         Property = "sensor_name"
	TargetName         Property = "target_name"

	UtcStartTime Property = "utc_start_time"
	UtcStopTime  Property = "utc_stop_time"

	ImageLines   Property = "image_lines"
	ImageSamples Property = "image_samples"

	SamplingFactor    Property = "sampling_factor"
	LineSumming       Property = "line_summing"
	SampleSumming     Property = "sample_summing"
	DowntrackSumming  Property = "downtrack_summing"
	CrosstrackSumming Property = "crosstrack_summing"

	ExposureDuration     Property = "exposure_duration"
	LineExposureDuration Property = "line_exposure_duration"
	InterframeDelay      Property = "interframe_delay"

	SpacecraftClockStartCount Property = "spacecraft_clock_start_count"
	SpacecraftClockStopCount  Property = "spacecraft_clock_stop_count"

	FilterNumber Property = "filter_number"

	FocalLength          Property = "focal_length"
	PixelSize            Property = "pixel_size"
	DetectorCenterLine   Property = "detector_center_line"
	DetectorCenterSample Property = "detector_center_sample"
	DetectorStartLine    Property = "detector_start_line"
	DetectorStartSample  Property = "detector_start_sample"
	Focal2PixelLines     Property = "focal2pixel_lines"
	Focal2PixelSamples   Property = "focal2pixel_samples"
	SpacecraftDirection  Property = "spacecraft_direction"

	Ikid          Property = "ikid"
	SpacecraftID  Property = "spacecraft_id"
	TargetID      Property = "target_id"
	SensorFrameID Property = "sensor_frame_id"

	EphemerisStartTime  Property = "ephemeris_start_time"
	EphemerisStopTime   Property = "ephemeris_stop_time"
	CenterEphemerisTime Property = "center_ephemeris_time"
	EphemerisTimes      Property = "ephemeris_times"

	NameModel          Property = "name_model"
	SensorModelVersion Property = "sensor_model_version"

	LineScanRate             Property = "line_scan_rate"
	LineTimes                Property = "line_times"
	SampleJitterCoefficients Property = "sample_jitter_coefficients"
	LineJitterCoefficients   Property = "line_jitter_coefficients"

	FrameletHeight        Property = "framelet_height"
	NumFrames             Property = "num_frames"
	FrameletOrderReversed Property = "framelet_order_reversed"
	FrameletsFlipped      Property = "framelets_flipped"
	NumLinesOverlap       Property = "num_lines_overlap"

	RadialCoefficients Property = "odk"
	DistortionX        Property = "odt_x"
	DistortionY        Property = "odt_y"
	BoresightX         Property = "boresight_x"
	BoresightY         Property = "boresight_y"
)

// PropertyFunc computes one property for a driver. Values are string, int, float64, bool,
// []float64 or [][]float64. A nil value with no error means the property is absent
type PropertyFunc func(d *Driver) (interface{}, error)

// PropertySet - the properties one capability (or an override table) implements
type PropertySet map[Property]PropertyFunc

// Names lists the properties in the set, sorted
func (s PropertySet) Names() []Property {
	result := maps.Keys(s)
	slices.Sort(result)
	return result
}

// Merge returns a new set holding s, with other's entries replacing any with the same name
func (s PropertySet) Merge(other PropertySet) PropertySet {
	result := PropertySet{}
	maps.Copy(result, s)
	maps.Copy(result, other)
	return result
}

// Constant makes a PropertyFunc that always returns value
func Constant(value interface{}) PropertyFunc {
	return func(d *Driver) (interface{}, error) {
		return value, nil
	}
}

// Unsupported marks a property as deliberately left unimplemented. Lookups stop there instead
// of falling through to lower layers, and fail with UnsupportedPropertyError
func Unsupported(p Property) PropertyFunc {
	return func(d *Driver) (interface{}, error) {
		return nil, &UnsupportedPropertyError{Driver: d.Name(), Property: p}
	}
}

// SameAs makes a property read the value of another one
func SameAs(other Property) PropertyFunc {
	return func(d *Driver) (interface{}, error) {
		return d.Value(other)
	}
}
