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

package missions

import (
	"fmt"

	"github.com/pixlise/isd-generator/core/capability"
	"github.com/pixlise/isd-generator/core/driver"
)

const (
	janusInstrument = "JANUS"
	janusTickLength = ".//juice_janus:Onground_Processing/juice_janus:asw_tick_len"
)

// Pixel size is in microns, focal length in mm
func janusFocal2Pixel(axis int) driver.PropertyFunc {
	return func(d *driver.Driver) (interface{}, error) {
		pixelSize, err := d.Float(driver.PixelSize)
		if err != nil {
			return nil, err
		}
		if pixelSize == 0 {
			return nil, fmt.Errorf("%v is zero", driver.PixelSize)
		}
		return focal2Pixel(axis, 1000/pixelSize), nil
	}
}

// JANUS labels don't name the instrument or host the way the kernels do, and its focal length
// and line timing are fixed
var janusOverrides = driver.PropertySet{
	driver.InstrumentID:         driver.Constant("JUICE_JANUS"),
	driver.InstrumentName:       driver.Constant("JUICE_JANUS"),
	driver.InstrumentHostID:     driver.Constant("JUICE_SPACECRAFT"),
	driver.InstrumentHostName:   driver.Constant("JUICE_SPACECRAFT"),
	driver.LineExposureDuration: driver.Constant(0.2215002 * 1e-3),
	driver.FocalLength:          driver.Constant(467.0),
	driver.DetectorCenterSample: capability.InstrumentValue("CCD_CENTER", 0),
	driver.DetectorCenterLine:   capability.InstrumentValue("CCD_CENTER", 1),
	driver.Focal2PixelLines:     janusFocal2Pixel(1),
	driver.Focal2PixelSamples:   janusFocal2Pixel(2),
	driver.SensorModelVersion:   driver.Constant(1),
}

func isJanus(d *driver.Driver) error {
	_, err := genericTextIn(d, driver.InstrumentID, janusInstrument)
	return err
}

// JuiceJanusFramer - JANUS full frame images
func JuiceJanusFramer() *driver.Composition {
	return &driver.Composition{
		Name:       "juice-janus-framer",
		Label:      capability.Pds4Label{},
		Ephemeris:  capability.NaifSpice{},
		Geometry:   capability.Framer{},
		Distortion: capability.NoDistortion{},
		Overrides:  janusOverrides,
		Accept: func(d *driver.Driver) error {
			if err := isJanus(d); err != nil {
				return err
			}
			if d.Has(janusTickLength) {
				return fmt.Errorf("label has asw_tick_len, it's a push frame image")
			}
			return nil
		},
	}
}

// JuiceJanusPushFrame - JANUS images built from framelets, asw_tick_len apart
func JuiceJanusPushFrame() *driver.Composition {
	return &driver.Composition{
		Name:       "juice-janus-pushframe",
		Label:      capability.Pds4Label{},
		Ephemeris:  capability.NaifSpice{},
		Geometry:   capability.PushFrame{},
		Distortion: capability.NoDistortion{},
		Overrides: janusOverrides.Merge(driver.PropertySet{
			driver.InterframeDelay: capability.LabelDuration(driver.InterframeDelay, janusTickLength),
		}),
		Accept: func(d *driver.Driver) error {
			if err := isJanus(d); err != nil {
				return err
			}
			_, err := d.Float(driver.InterframeDelay)
			return err
		},
	}
}
