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

package capability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pixlise/isd-generator/core/driver"
	"github.com/pixlise/isd-generator/core/ephemeris"
)

// Body code of the name held in another property
func bodyCodeOf(name driver.Property) driver.PropertyFunc {
	return func(d *driver.Driver) (interface{}, error) {
		text, err := d.Text(name)
		if err != nil {
			return nil, err
		}
		p, err := d.Ephemeris()
		if err != nil {
			return nil, err
		}
		return p.BodyCode(text)
	}
}

func frameCodeOf(name driver.Property) driver.PropertyFunc {
	return func(d *driver.Driver) (interface{}, error) {
		text, err := d.Text(name)
		if err != nil {
			return nil, err
		}
		p, err := d.Ephemeris()
		if err != nil {
			return nil, err
		}
		return p.FrameCode(text)
	}
}

// InstrumentValue reads item idx of INS<ikid>_<key>
func InstrumentValue(key string, idx int) driver.PropertyFunc {
	return func(d *driver.Driver) (interface{}, error) {
		values, err := d.InstrumentPool(key, idx+1)
		if err != nil {
			return nil, err
		}
		return values[idx], nil
	}
}

// InstrumentValues reads the first count items of INS<ikid>_<key>
func InstrumentValues(key string, count int) driver.PropertyFunc {
	return func(d *driver.Driver) (interface{}, error) {
		values, err := d.InstrumentPool(key, count)
		if err != nil {
			return nil, err
		}
		return append([]float64{}, values[:count]...), nil
	}
}

func clockStartTime(d *driver.Driver) (interface{}, error) {
	clock, err := d.Text(driver.SpacecraftClockStartCount)
	if err != nil {
		return nil, err
	}
	spacecraft, err := d.Int(driver.SpacecraftID)
	if err != nil {
		return nil, err
	}
	p, err := d.Ephemeris()
	if err != nil {
		return nil, err
	}
	return p.SclkToEt(spacecraft, clock)
}

// NaifSpice - ids, instrument parameters and times from the furnished kernel pool
type NaifSpice struct{}

func (NaifSpice) Name() string {
	return "NaifSpice"
}

func (NaifSpice) Provider(d *driver.Driver) (ephemeris.Provider, error) {
	return d.Kernels()
}

func (NaifSpice) Properties() driver.PropertySet {
	return naifProperties
}

var naifProperties = driver.PropertySet{
	driver.Ikid:          bodyCodeOf(driver.InstrumentID),
	driver.SpacecraftID:  bodyCodeOf(driver.SpacecraftName),
	driver.TargetID:      bodyCodeOf(driver.TargetName),
	driver.SensorFrameID: frameCodeOf(driver.InstrumentID),

	driver.FocalLength:          InstrumentValue("FOCAL_LENGTH", 0),
	driver.PixelSize:            InstrumentValue("PIXEL_SIZE", 0),
	driver.DetectorCenterSample: InstrumentValue("BORESIGHT_SAMPLE", 0),
	driver.DetectorCenterLine:   InstrumentValue("BORESIGHT_LINE", 0),
	driver.Focal2PixelSamples:   InstrumentValues("ITRANSS", 3),
	driver.Focal2PixelLines:     InstrumentValues("ITRANSL", 3),
	driver.DetectorStartLine:    driver.Constant(0.0),
	driver.DetectorStartSample:  driver.Constant(0.0),

	driver.EphemerisStartTime: clockStartTime,
}

// IsisSpice - like NaifSpice, but queries the NaifKeywords object spiceinit wrote into an ISIS
// cube label, and takes times and frames from the label's tables
type IsisSpice struct{}

func (IsisSpice) Name() string {
	return "IsisSpice"
}

func (IsisSpice) Provider(d *driver.Driver) (ephemeris.Provider, error) {
	lbl, err := d.Label()
	if err != nil {
		return nil, err
	}

	lister, ok := lbl.(ephemeris.KeywordLister)
	if !ok {
		return nil, d.LabelError("NaifKeywords", errors.New("label can't list keywords"))
	}

	p, err := ephemeris.LabelKeywords(lister)
	if err != nil {
		return nil, d.LabelError("NaifKeywords", err)
	}
	return p, nil
}

func (IsisSpice) Properties() driver.PropertySet {
	return isisSpiceProperties
}

const pointingTable = "Table[InstrumentPointing]/"

func pointingFrame(d *driver.Driver) (interface{}, error) {
	v, err := d.Find(driver.SensorFrameID, pointingTable+"ConstantFrames", pointingTable+"TimeDependentFrames")
	if err != nil {
		return nil, err
	}

	first := v.Text
	if len(v.Items) > 0 {
		first = v.Items[0]
	}
	code, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return nil, d.LabelError(driver.SensorFrameID, fmt.Errorf("bad frame code \"%v\"", first))
	}
	return code, nil
}

// BODY_CODE as written by spiceinit, or the target name's code
func isisTargetID(d *driver.Driver) (interface{}, error) {
	p, err := d.Ephemeris()
	if err != nil {
		return nil, err
	}

	if kp, ok := p.(*ephemeris.KeywordProvider); ok {
		code, err := kp.Int("BODY_CODE")
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, ephemeris.ErrNotLoaded) {
			return nil, err
		}
	}
	return bodyCodeOf(driver.TargetName)(d)
}

var isisSpiceProperties = naifProperties.Merge(driver.PropertySet{
	driver.Ikid:               LabelInt(driver.Ikid, "IsisCube/Kernels/NaifIkCode", "IsisCube/Kernels/NaifFrameCode"),
	driver.TargetID:           isisTargetID,
	driver.SensorFrameID:      pointingFrame,
	driver.EphemerisStartTime: LabelFloat(driver.EphemerisStartTime, pointingTable+"CkTableStartTime"),
})
