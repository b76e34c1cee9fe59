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
	"strings"

	"github.com/pixlise/isd-generator/core/capability"
	"github.com/pixlise/isd-generator/core/driver"
)

const seleneMission = "SELENE"

var (
	terrainCameras = []string{"TC1", "TC2"}
	multibandCams  = []string{"MI-VIS", "MI-NIR"}
)

func isSelene(d *driver.Driver) bool {
	mission, err := d.FindText("mission_name", "MISSION_NAME")
	return err == nil && mission == seleneMission
}

// Terrain camera ids are LISM_<camera>_<processing><swath>, for example LISM_TC1_STF for a TC1
// stereo full swath product
func tcInstrumentID(productSetPath string, swathPath string) driver.PropertyFunc {
	return func(d *driver.Driver) (interface{}, error) {
		camera, err := genericTextIn(d, driver.InstrumentID, terrainCameras...)
		if err != nil {
			return nil, err
		}

		productSet, err := d.FindText(driver.InstrumentID, productSetPath)
		if err != nil {
			return nil, err
		}
		swath, err := d.FindText(driver.InstrumentID, swathPath)
		if err != nil {
			return nil, err
		}
		if len(productSet) < 4 || len(swath) < 1 {
			return nil, d.LabelError(driver.InstrumentID, fmt.Errorf("can't form id from product set %v, swath %v", productSet, swath))
		}

		return fmt.Sprintf("LISM_%v_%vT%v", camera, strings.ToUpper(productSet[3:4]), strings.ToUpper(swath[0:1])), nil
	}
}

// The kernels name the camera itself, not the processed product
func lismCode(frame bool, suffix string) driver.PropertyFunc {
	return func(d *driver.Driver) (interface{}, error) {
		camera, err := d.Generic(driver.InstrumentID)
		if err != nil {
			return nil, err
		}
		p, err := d.Ephemeris()
		if err != nil {
			return nil, err
		}

		name := fmt.Sprintf("LISM_%v%v", camera, suffix)
		if frame {
			return p.FrameCode(name)
		}
		return p.BodyCode(name)
	}
}

// CENTER in the instrument kernel is 1 based
func lismCenter(idx int) driver.PropertyFunc {
	return func(d *driver.Driver) (interface{}, error) {
		values, err := d.InstrumentPool("CENTER", 2)
		if err != nil {
			return nil, err
		}
		return values[idx] - 0.5, nil
	}
}

func lismPixelScale(d *driver.Driver) (float64, error) {
	pixelSize, err := d.Float(driver.PixelSize)
	if err != nil {
		return 0, err
	}
	return driver.DirectionalScale(pixelSize, 1)
}

func lismFocal2PixelSamples(d *driver.Driver) (interface{}, error) {
	scale, err := lismPixelScale(d)
	if err != nil {
		return nil, err
	}
	return focal2Pixel(2, -scale), nil
}

// Terrain camera lines are flipped when the spacecraft flies backwards
func tcFocal2PixelLines(d *driver.Driver) (interface{}, error) {
	pixelSize, err := d.Float(driver.PixelSize)
	if err != nil {
		return nil, err
	}
	direction, err := d.Int(driver.SpacecraftDirection)
	if err != nil {
		return nil, err
	}
	scale, err := driver.DirectionalScale(pixelSize, direction)
	if err != nil {
		return nil, err
	}
	return focal2Pixel(1, scale), nil
}

func miFocal2PixelLines(d *driver.Driver) (interface{}, error) {
	scale, err := lismPixelScale(d)
	if err != nil {
		return nil, err
	}
	return focal2Pixel(1, scale), nil
}

var lismCommon = driver.PropertySet{
	driver.DetectorCenterSample: lismCenter(0),
	driver.DetectorCenterLine:   lismCenter(1),
	driver.Focal2PixelSamples:   lismFocal2PixelSamples,
}

// KaguyaTcPds3 - terrain camera level 2B products with PDS3 labels, kernels furnished by the caller
func KaguyaTcPds3() *driver.Composition {
	return &driver.Composition{
		Name:       "kaguya-tc-pds3",
		Label:      capability.Pds3Label{},
		Ephemeris:  capability.NaifSpice{},
		Geometry:   capability.LineScanner{},
		Distortion: capability.KaguyaLism{},
		Overrides: lismCommon.Merge(driver.PropertySet{
			driver.InstrumentID:   tcInstrumentID("PRODUCT_SET_ID", "SWATH_MODE_ID"),
			driver.Ikid:           lismCode(false, ""),
			driver.SensorFrameID:  lismCode(true, "_HEAD"),
			driver.SpacecraftName: driver.Constant(seleneMission),

			driver.SpacecraftClockStartCount: capability.RequiredClock(driver.SpacecraftClockStartCount, "CORRECTED_SC_CLOCK_START_COUNT"),
			driver.SpacecraftClockStopCount:  capability.OptionalClock(driver.SpacecraftClockStopCount, "CORRECTED_SC_CLOCK_STOP_COUNT"),
			driver.UtcStartTime:              capability.LabelUTC(driver.UtcStartTime, "CORRECTED_START_TIME"),
			driver.UtcStopTime:               capability.LabelUTC(driver.UtcStopTime, "CORRECTED_STOP_TIME"),
			driver.LineExposureDuration:      capability.LabelDuration(driver.LineExposureDuration, "CORRECTED_SAMPLING_INTERVAL"),
			driver.SpacecraftDirection:       capability.LabelInt(driver.SpacecraftDirection, "SATELLITE_MOVING_DIRECTION"),
			driver.Focal2PixelLines:          tcFocal2PixelLines,
		}),
		Accept: func(d *driver.Driver) error {
			if !isSelene(d) {
				return fmt.Errorf("MISSION_NAME is not %v", seleneMission)
			}
			_, err := genericTextIn(d, driver.InstrumentID, terrainCameras...)
			return err
		},
	}
}

const (
	isisArchive = "IsisCube/Archive/"
	isisInst    = "IsisCube/Instrument/"
)

// First detector sample read out in each swath mode
var tcSwathStartSample = map[string]float64{
	"FULL":    0.5,
	"NOMINAL": 296.5,
	"HALF":    1171.5,
}

func tcDetectorStartSample(d *driver.Driver) (interface{}, error) {
	swath, err := d.FindText(driver.DetectorStartSample, isisInst+"SwathModeId")
	if err != nil {
		return nil, err
	}
	start, ok := tcSwathStartSample[strings.ToUpper(swath)]
	if !ok {
		return nil, d.LabelError(driver.DetectorStartSample, fmt.Errorf("unknown swath mode %v", swath))
	}
	return start, nil
}

// KaguyaTcIsis - spiceinit'ed terrain camera cubes, everything comes from the cube label
func KaguyaTcIsis() *driver.Composition {
	return &driver.Composition{
		Name:       "kaguya-tc-isis",
		Label:      capability.IsisLabel{},
		Ephemeris:  capability.IsisSpice{},
		Geometry:   capability.LineScanner{},
		Distortion: capability.KaguyaLism{},
		Overrides: lismCommon.Merge(driver.PropertySet{
			driver.InstrumentID:         tcInstrumentID(isisArchive+"ProductSetId", isisInst+"SwathModeId"),
			driver.LineExposureDuration: capability.LabelDuration(driver.LineExposureDuration, isisInst+"CorrectedSamplingInterval"),
			driver.SpacecraftDirection:  capability.LabelInt(driver.SpacecraftDirection, isisInst+"SatelliteMovingDirection"),
			driver.Focal2PixelLines:     tcFocal2PixelLines,
			driver.DetectorStartLine:    driver.Constant(1.0),
			driver.DetectorStartSample:  tcDetectorStartSample,
			driver.SensorModelVersion:   driver.Constant(2),
		}),
		Accept: func(d *driver.Driver) error {
			if _, err := genericTextIn(d, driver.InstrumentID, terrainCameras...); err != nil {
				return err
			}
			// Cubes that weren't spiceinit'ed have no keywords to read
			_, err := d.Ephemeris()
			return err
		},
	}
}

// Multiband imager ids add the band number, LISM_MI-NIR1 for BaseBand MN1
func miInstrumentID(d *driver.Driver) (interface{}, error) {
	camera, err := genericTextIn(d, driver.InstrumentID, multibandCams...)
	if err != nil {
		return nil, err
	}
	band, err := d.FindText(driver.InstrumentID, "IsisCube/BandBin/BaseBand")
	if err != nil {
		return nil, err
	}
	if len(band) < 3 {
		return nil, d.LabelError(driver.InstrumentID, fmt.Errorf("bad base band %v", band))
	}
	return "LISM_" + camera + band[2:], nil
}

// Frames are LISM_MI_V_HEAD and LISM_MI_N_HEAD
func miSensorFrame(d *driver.Driver) (interface{}, error) {
	camera, err := genericTextIn(d, driver.InstrumentID, multibandCams...)
	if err != nil {
		return nil, err
	}
	p, err := d.Ephemeris()
	if err != nil {
		return nil, err
	}
	return p.FrameCode("LISM_MI_" + camera[3:4] + "_HEAD")
}

// KaguyaMiIsis - multiband imager cubes, kernels furnished by the caller
func KaguyaMiIsis() *driver.Composition {
	return &driver.Composition{
		Name:       "kaguya-mi-isis",
		Label:      capability.IsisLabel{},
		Ephemeris:  capability.NaifSpice{},
		Geometry:   capability.LineScanner{},
		Distortion: capability.KaguyaLism{},
		Overrides: lismCommon.Merge(driver.PropertySet{
			driver.InstrumentID:         miInstrumentID,
			driver.SensorFrameID:        miSensorFrame,
			driver.LineExposureDuration: capability.LabelDuration(driver.LineExposureDuration, isisInst+"CorrectedSamplingInterval"),
			driver.SpacecraftDirection:  capability.LabelInt(driver.SpacecraftDirection, isisInst+"SatelliteMovingDirection"),
			driver.Focal2PixelLines:     miFocal2PixelLines,
		}),
		Accept: func(d *driver.Driver) error {
			_, err := genericTextIn(d, driver.InstrumentID, multibandCams...)
			return err
		},
	}
}
