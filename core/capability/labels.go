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

// Implementations of the four capability families a driver is composed from. Each works purely
// from label lookups and ephemeris queries made through the driver it's given
package capability

import (
	"errors"
	"fmt"

	"github.com/pixlise/isd-generator/core/driver"
	"github.com/pixlise/isd-generator/core/label"
)

// LabelText and the other Label* constructors read a property from the first of paths present
// in the label
func LabelText(p driver.Property, paths ...string) driver.PropertyFunc {
	return func(d *driver.Driver) (interface{}, error) {
		return d.FindText(p, paths...)
	}
}

func LabelInt(p driver.Property, paths ...string) driver.PropertyFunc {
	return func(d *driver.Driver) (interface{}, error) {
		return d.FindInt(p, paths...)
	}
}

func LabelFloat(p driver.Property, paths ...string) driver.PropertyFunc {
	return func(d *driver.Driver) (interface{}, error) {
		return d.FindFloat(p, paths...)
	}
}

func LabelDuration(p driver.Property, paths ...string) driver.PropertyFunc {
	return func(d *driver.Driver) (interface{}, error) {
		return d.FindDuration(p, paths...)
	}
}

func LabelUTC(p driver.Property, paths ...string) driver.PropertyFunc {
	return func(d *driver.Driver) (interface{}, error) {
		return d.FindUTC(p, paths...)
	}
}

// LabelDurationOr reads a duration from the label, or another property's value if the label doesn't have it
func LabelDurationOr(p driver.Property, fallback driver.Property, paths ...string) driver.PropertyFunc {
	return func(d *driver.Driver) (interface{}, error) {
		secs, err := d.FindDuration(p, paths...)
		if err != nil && errors.Is(err, label.ErrNotFound) {
			return d.Float(fallback)
		}
		return secs, err
	}
}

// LabelIntOr reads an integer from the label, def if the label has none of paths
func LabelIntOr(p driver.Property, def int, paths ...string) driver.PropertyFunc {
	return func(d *driver.Driver) (interface{}, error) {
		n, err := d.FindInt(p, paths...)
		if err != nil && errors.Is(err, label.ErrNotFound) {
			return def, nil
		}
		return n, err
	}
}

// RequiredClock reads a clock count that must be present and not N/A
func RequiredClock(p driver.Property, paths ...string) driver.PropertyFunc {
	return func(d *driver.Driver) (interface{}, error) {
		count, err := d.FindClockCount(p, paths...)
		if err != nil {
			return nil, err
		}
		if count == nil {
			return nil, d.LabelError(p, fmt.Errorf("no clock count: %w", label.ErrNotFound))
		}
		return count, nil
	}
}

// OptionalClock reads a clock count, nil when missing or N/A
func OptionalClock(p driver.Property, paths ...string) driver.PropertyFunc {
	return func(d *driver.Driver) (interface{}, error) {
		return d.FindClockCount(p, paths...)
	}
}

// Pds3Label - PDS3 keyword labels
type Pds3Label struct{}

func (Pds3Label) Name() string {
	return "Pds3Label"
}

func (Pds3Label) Format() label.Format {
	return label.FormatPDS3
}

func (Pds3Label) Open(name string, raw []byte) (label.Label, error) {
	lbl, err := label.OpenPDS3(name, raw)
	if err != nil {
		return nil, err
	}
	return lbl, nil
}

func (Pds3Label) Properties() driver.PropertySet {
	return pds3Properties
}

var pds3Properties = driver.PropertySet{
	driver.InstrumentID:       LabelText(driver.InstrumentID, "INSTRUMENT_ID"),
	driver.InstrumentName:     LabelText(driver.InstrumentName, "INSTRUMENT_NAME"),
	driver.InstrumentHostID:   LabelText(driver.InstrumentHostID, "INSTRUMENT_HOST_ID", "SPACECRAFT_ID"),
	driver.InstrumentHostName: LabelText(driver.InstrumentHostName, "INSTRUMENT_HOST_NAME", "SPACECRAFT_NAME"),
	driver.SpacecraftName:     LabelText(driver.SpacecraftName, "SPACECRAFT_NAME", "INSTRUMENT_HOST_NAME"),
	driver.PlatformName:       driver.SameAs(driver.InstrumentHostName),
	driver.SensorName:         driver.SameAs(driver.InstrumentName),
	driver.TargetName:         LabelText(driver.TargetName, "TARGET_NAME"),

	driver.UtcStartTime: LabelUTC(driver.UtcStartTime, "START_TIME"),
	driver.UtcStopTime:  LabelUTC(driver.UtcStopTime, "STOP_TIME"),

	driver.ImageLines:   LabelInt(driver.ImageLines, "IMAGE/LINES"),
	driver.ImageSamples: LabelInt(driver.ImageSamples, "IMAGE/LINE_SAMPLES"),

	driver.SamplingFactor:    LabelIntOr(driver.SamplingFactor, driver.DefaultSumming, "SAMPLING_FACTOR", "SUMMING_MODE"),
	driver.LineSumming:       driver.SameAs(driver.SamplingFactor),
	driver.SampleSumming:     driver.SameAs(driver.SamplingFactor),
	driver.DowntrackSumming:  driver.Constant(driver.DefaultSumming),
	driver.CrosstrackSumming: driver.Constant(driver.DefaultSumming),

	driver.ExposureDuration:     LabelDurationOr(driver.ExposureDuration, driver.LineExposureDuration, "EXPOSURE_DURATION"),
	driver.LineExposureDuration: LabelDuration(driver.LineExposureDuration, "LINE_EXPOSURE_DURATION"),

	driver.SpacecraftClockStartCount: RequiredClock(driver.SpacecraftClockStartCount, "SPACECRAFT_CLOCK_START_COUNT"),
	driver.SpacecraftClockStopCount:  OptionalClock(driver.SpacecraftClockStopCount, "SPACECRAFT_CLOCK_STOP_COUNT"),

	driver.FilterNumber: LabelInt(driver.FilterNumber, "FILTER_NUMBER"),
}

// IsisLabel - ISIS cube labels
type IsisLabel struct{}

func (IsisLabel) Name() string {
	return "IsisLabel"
}

func (IsisLabel) Format() label.Format {
	return label.FormatISIS
}

func (IsisLabel) Open(name string, raw []byte) (label.Label, error) {
	lbl, err := label.OpenISIS(name, raw)
	if err != nil {
		return nil, err
	}
	return lbl, nil
}

func (IsisLabel) Properties() driver.PropertySet {
	return isisLabelProperties
}

const isisInstrument = "IsisCube/Instrument/"

var isisLabelProperties = driver.PropertySet{
	driver.InstrumentID:       LabelText(driver.InstrumentID, isisInstrument+"InstrumentId"),
	driver.InstrumentName:     LabelText(driver.InstrumentName, isisInstrument+"InstrumentName", isisInstrument+"InstrumentId"),
	driver.SpacecraftName:     LabelText(driver.SpacecraftName, isisInstrument+"SpacecraftName"),
	driver.InstrumentHostID:   driver.SameAs(driver.SpacecraftName),
	driver.InstrumentHostName: driver.SameAs(driver.SpacecraftName),
	driver.PlatformName:       driver.SameAs(driver.SpacecraftName),
	driver.SensorName:         driver.SameAs(driver.InstrumentName),
	driver.TargetName:         LabelText(driver.TargetName, isisInstrument+"TargetName"),

	driver.UtcStartTime: LabelUTC(driver.UtcStartTime, isisInstrument+"StartTime"),
	driver.UtcStopTime:  LabelUTC(driver.UtcStopTime, isisInstrument+"StopTime"),

	driver.ImageLines:   LabelInt(driver.ImageLines, "IsisCube/Core/Dimensions/Lines"),
	driver.ImageSamples: LabelInt(driver.ImageSamples, "IsisCube/Core/Dimensions/Samples"),

	driver.SamplingFactor:    LabelIntOr(driver.SamplingFactor, driver.DefaultSumming, isisInstrument+"SummingMode"),
	driver.LineSumming:       driver.SameAs(driver.SamplingFactor),
	driver.SampleSumming:     driver.SameAs(driver.SamplingFactor),
	driver.DowntrackSumming:  driver.Constant(driver.DefaultSumming),
	driver.CrosstrackSumming: driver.Constant(driver.DefaultSumming),

	driver.ExposureDuration:     LabelDurationOr(driver.ExposureDuration, driver.LineExposureDuration, isisInstrument+"ExposureDuration"),
	driver.LineExposureDuration: LabelDuration(driver.LineExposureDuration, isisInstrument+"LineExposureDuration"),

	driver.SpacecraftClockStartCount: RequiredClock(driver.SpacecraftClockStartCount, isisInstrument+"SpacecraftClockStartCount"),
	driver.SpacecraftClockStopCount:  OptionalClock(driver.SpacecraftClockStopCount, isisInstrument+"SpacecraftClockStopCount"),

	driver.FilterNumber: LabelInt(driver.FilterNumber, "IsisCube/BandBin/FilterNumber"),
}

// Pds4Label - PDS4 XML labels, paths use the prefixes in label.PDS4Namespaces
type Pds4Label struct{}

func (Pds4Label) Name() string {
	return "Pds4Label"
}

func (Pds4Label) Format() label.Format {
	return label.FormatPDS4
}

func (Pds4Label) Open(name string, raw []byte) (label.Label, error) {
	lbl, err := label.OpenPDS4(name, raw)
	if err != nil {
		return nil, err
	}
	return lbl, nil
}

func (Pds4Label) Properties() driver.PropertySet {
	return pds4Properties
}

const (
	pds4Instrument = ".//pds:Observing_System_Component[pds:type='Instrument']"
	pds4Host       = ".//pds:Observing_System_Component[pds:type='Host']"
	pds4Mission    = ".//psa:Mission_Information"
)

var pds4Properties = driver.PropertySet{
	driver.InstrumentID:       LabelText(driver.InstrumentID, pds4Instrument+"/pds:name"),
	driver.InstrumentName:     LabelText(driver.InstrumentName, pds4Instrument+"/pds:description"),
	driver.InstrumentHostID:   LabelText(driver.InstrumentHostID, pds4Host+"/pds:name"),
	driver.InstrumentHostName: LabelText(driver.InstrumentHostName, pds4Host+"/pds:description"),
	driver.SpacecraftName:     LabelText(driver.SpacecraftName, ".//pds:Investigation_Area[pds:type='Mission']/pds:name"),
	driver.PlatformName:       driver.SameAs(driver.InstrumentHostName),
	driver.SensorName:         driver.SameAs(driver.InstrumentName),
	driver.TargetName:         LabelText(driver.TargetName, ".//pds:Target_Identification/pds:name"),

	driver.UtcStartTime: LabelUTC(driver.UtcStartTime, ".//pds:Time_Coordinates/pds:start_date_time"),
	driver.UtcStopTime:  LabelUTC(driver.UtcStopTime, ".//pds:Time_Coordinates/pds:stop_date_time"),

	driver.ImageLines:   LabelInt(driver.ImageLines, ".//pds:Array_2D_Image/pds:Axis_Array[pds:axis_name='Line']/pds:elements"),
	driver.ImageSamples: LabelInt(driver.ImageSamples, ".//pds:Array_2D_Image/pds:Axis_Array[pds:axis_name='Sample']/pds:elements"),

	// PDS4 labels don't describe downsampling yet, so all summing is the placeholder default
	driver.SamplingFactor:    driver.Constant(driver.DefaultSumming),
	driver.LineSumming:       driver.SameAs(driver.SamplingFactor),
	driver.SampleSumming:     driver.SameAs(driver.SamplingFactor),
	driver.DowntrackSumming:  driver.Constant(driver.DefaultSumming),
	driver.CrosstrackSumming: driver.Constant(driver.DefaultSumming),

	driver.ExposureDuration:     LabelDuration(driver.ExposureDuration, ".//img:Exposure/img:exposure_duration"),
	driver.LineExposureDuration: driver.Constant(0.0),

	driver.SpacecraftClockStartCount: RequiredClock(driver.SpacecraftClockStartCount, pds4Mission+"/psa:spacecraft_clock_start_count"),
	driver.SpacecraftClockStopCount:  OptionalClock(driver.SpacecraftClockStopCount, pds4Mission+"/psa:spacecraft_clock_stop_count"),

	driver.FilterNumber: LabelInt(driver.FilterNumber, ".//img:Optical_Filter/img:filter_number"),
}
