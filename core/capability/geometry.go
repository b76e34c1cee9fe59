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
	"fmt"
	"math"

	"github.com/pixlise/isd-generator/core/driver"
)

const (
	FrameSensorModel       = "USGS_ASTRO_FRAME_SENSOR_MODEL"
	PushFrameSensorModel   = "USGS_ASTRO_PUSH_FRAME_SENSOR_MODEL"
	LineScannerSensorModel = "USGS_ASTRO_LINE_SCANNER_SENSOR_MODEL"
)

// Properties every geometry needs in an ISD
var commonGeometryRequired = []driver.Property{
	driver.FocalLength,
	driver.DetectorCenterLine,
	driver.DetectorCenterSample,
	driver.DetectorStartLine,
	driver.DetectorStartSample,
	driver.Focal2PixelLines,
	driver.Focal2PixelSamples,
	driver.EphemerisStartTime,
	driver.EphemerisStopTime,
	driver.CenterEphemerisTime,
	driver.EphemerisTimes,
}

func required(extra ...driver.Property) []driver.Property {
	return append(append([]driver.Property{}, commonGeometryRequired...), extra...)
}

func floats(d *driver.Driver, props ...driver.Property) ([]float64, error) {
	result := make([]float64, 0, len(props))
	for _, p := range props {
		v, err := d.Float(p)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

func centerTime(d *driver.Driver) (interface{}, error) {
	times, err := floats(d, driver.EphemerisStartTime, driver.EphemerisStopTime)
	if err != nil {
		return nil, err
	}
	return (times[0] + times[1]) / 2, nil
}

func geometryProperties(model string, props driver.PropertySet) driver.PropertySet {
	return driver.PropertySet{
		driver.NameModel:           driver.Constant(model),
		driver.SensorModelVersion:  driver.Constant(1),
		driver.CenterEphemerisTime: centerTime,
	}.Merge(props)
}

// Framer - the whole image is exposed at once
type Framer struct{}

func (Framer) Name() string {
	return "Framer"
}

func (Framer) ModelName() string {
	return FrameSensorModel
}

func (Framer) Required() []driver.Property {
	return required(driver.ExposureDuration)
}

func (Framer) Properties() driver.PropertySet {
	return framerProperties
}

var framerProperties = geometryProperties(FrameSensorModel, driver.PropertySet{
	driver.EphemerisStopTime: func(d *driver.Driver) (interface{}, error) {
		v, err := floats(d, driver.EphemerisStartTime, driver.ExposureDuration)
		if err != nil {
			return nil, err
		}
		return v[0] + v[1], nil
	},
	driver.EphemerisTimes: func(d *driver.Driver) (interface{}, error) {
		center, err := d.Float(driver.CenterEphemerisTime)
		if err != nil {
			return nil, err
		}
		return []float64{center}, nil
	},
})

// LineScanner - one detector line, image lines exposed one after another
type LineScanner struct{}

func (LineScanner) Name() string {
	return "LineScanner"
}

func (LineScanner) ModelName() string {
	return LineScannerSensorModel
}

func (LineScanner) Required() []driver.Property {
	return required(driver.ExposureDuration, driver.LineExposureDuration, driver.LineScanRate, driver.SpacecraftDirection)
}

func (LineScanner) Properties() driver.PropertySet {
	return lineScannerProperties
}

var lineScannerProperties = geometryProperties(LineScannerSensorModel, driver.PropertySet{
	driver.EphemerisStopTime: func(d *driver.Driver) (interface{}, error) {
		v, err := floats(d, driver.EphemerisStartTime, driver.ImageLines, driver.LineExposureDuration)
		if err != nil {
			return nil, err
		}
		return v[0] + v[1]*v[2], nil
	},
	driver.LineScanRate: func(d *driver.Driver) (interface{}, error) {
		v, err := floats(d, driver.EphemerisStartTime, driver.CenterEphemerisTime, driver.LineExposureDuration)
		if err != nil {
			return nil, err
		}
		return [][]float64{{0.5, v[0] - v[1], v[2]}}, nil
	},
	driver.EphemerisTimes: func(d *driver.Driver) (interface{}, error) {
		v, err := floats(d, driver.EphemerisStartTime, driver.EphemerisStopTime)
		if err != nil {
			return nil, err
		}
		lines, err := d.Int(driver.ImageLines)
		if err != nil {
			return nil, err
		}
		return Linspace(v[0], v[1], lines+1), nil
	},
})

// RollingShutter - a line scanner whose line times and jitter have no generic model. Missions
// must override them for an ISD to be produced
type RollingShutter struct{}

func (RollingShutter) Name() string {
	return "RollingShutter"
}

func (RollingShutter) ModelName() string {
	return LineScannerSensorModel
}

func (RollingShutter) Required() []driver.Property {
	return append(LineScanner{}.Required(), driver.LineTimes, driver.SampleJitterCoefficients, driver.LineJitterCoefficients)
}

func (RollingShutter) Properties() driver.PropertySet {
	return rollingShutterProperties
}

var rollingShutterProperties = lineScannerProperties.Merge(driver.PropertySet{
	driver.LineTimes:                driver.Unsupported(driver.LineTimes),
	driver.SampleJitterCoefficients: driver.Unsupported(driver.SampleJitterCoefficients),
	driver.LineJitterCoefficients:   driver.Unsupported(driver.LineJitterCoefficients),
})

// PushFrame - the image is built from framelets exposed interframe_delay apart
type PushFrame struct{}

func (PushFrame) Name() string {
	return "PushFrame"
}

func (PushFrame) ModelName() string {
	return PushFrameSensorModel
}

func (PushFrame) Required() []driver.Property {
	return required(
		driver.ExposureDuration,
		driver.InterframeDelay,
		driver.FrameletHeight,
		driver.NumFrames,
		driver.FrameletOrderReversed,
		driver.FrameletsFlipped,
		driver.NumLinesOverlap,
	)
}

func (PushFrame) Properties() driver.PropertySet {
	return pushFrameProperties
}

var pushFrameProperties = geometryProperties(PushFrameSensorModel, driver.PropertySet{
	driver.FrameletHeight:        driver.Constant(1),
	driver.FrameletOrderReversed: driver.Constant(false),
	driver.FrameletsFlipped:      driver.Constant(false),
	driver.NumLinesOverlap:       driver.Constant(0),
	driver.NumFrames: func(d *driver.Driver) (interface{}, error) {
		lines, err := d.Int(driver.ImageLines)
		if err != nil {
			return nil, err
		}
		height, err := d.Int(driver.FrameletHeight)
		if err != nil {
			return nil, err
		}
		if height <= 0 {
			return nil, fmt.Errorf("framelet height %v", height)
		}
		return lines / height, nil
	},
	driver.EphemerisStopTime: func(d *driver.Driver) (interface{}, error) {
		v, err := floats(d, driver.EphemerisStartTime, driver.InterframeDelay, driver.NumFrames, driver.ExposureDuration)
		if err != nil {
			return nil, err
		}
		return v[0] + v[1]*(v[2]-1) + v[3], nil
	},
	driver.EphemerisTimes: func(d *driver.Driver) (interface{}, error) {
		v, err := floats(d, driver.EphemerisStartTime, driver.EphemerisStopTime, driver.InterframeDelay, driver.ExposureDuration)
		if err != nil {
			return nil, err
		}
		return Arange(v[0]+0.5*v[3], v[1]+v[2], v[2])
	},
})

// Linspace returns count evenly spaced values from start to stop inclusive
func Linspace(start float64, stop float64, count int) []float64 {
	if count <= 0 {
		return []float64{}
	}
	if count == 1 {
		return []float64{start}
	}

	result := make([]float64, count)
	step := (stop - start) / float64(count-1)
	for c := range result {
		result[c] = start + float64(c)*step
	}
	result[count-1] = stop
	return result
}

// Arange returns values from start, step apart, stopping before stop
func Arange(start float64, stop float64, step float64) ([]float64, error) {
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %v", step)
	}

	count := int(math.Ceil((stop - start) / step))
	if count < 0 {
		count = 0
	}

	result := make([]float64, count)
	for c := range result {
		result[c] = start + float64(c)*step
	}
	return result, nil
}
