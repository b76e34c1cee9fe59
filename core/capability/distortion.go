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
	"github.com/pixlise/isd-generator/core/driver"
)

// NoDistortion - reported as radial distortion with zero coefficients
type NoDistortion struct{}

func (NoDistortion) Name() string {
	return "NoDistortion"
}

func (NoDistortion) Kind() string {
	return "radial"
}

func (NoDistortion) Required() []driver.Property {
	return []driver.Property{driver.RadialCoefficients}
}

func (NoDistortion) Fields() map[string]driver.Property {
	return map[string]driver.Property{"coefficients": driver.RadialCoefficients}
}

func (NoDistortion) Properties() driver.PropertySet {
	return noDistortionProperties
}

var noDistortionProperties = driver.PropertySet{
	driver.RadialCoefficients: func(d *driver.Driver) (interface{}, error) {
		return []float64{0, 0, 0}, nil
	},
}

// Radial - coefficients from INS<ikid>_OD_K
type Radial struct{}

func (Radial) Name() string {
	return "Radial"
}

func (Radial) Kind() string {
	return "radial"
}

func (Radial) Required() []driver.Property {
	return []driver.Property{driver.RadialCoefficients}
}

func (Radial) Fields() map[string]driver.Property {
	return map[string]driver.Property{"coefficients": driver.RadialCoefficients}
}

func (Radial) Properties() driver.PropertySet {
	return radialProperties
}

var radialProperties = driver.PropertySet{
	driver.RadialCoefficients: InstrumentValues("OD_K", 3),
}

// KaguyaLism - LISM camera distortion. Each axis is the boresight offset followed by the
// INS<ikid>_DISTORTION_COEF_X/Y polynomial
type KaguyaLism struct{}

func (KaguyaLism) Name() string {
	return "KaguyaLism"
}

func (KaguyaLism) Kind() string {
	return "kaguyalism"
}

func (KaguyaLism) Required() []driver.Property {
	return []driver.Property{driver.DistortionX, driver.DistortionY, driver.BoresightX, driver.BoresightY}
}

func (KaguyaLism) Fields() map[string]driver.Property {
	return map[string]driver.Property{
		"x":           driver.DistortionX,
		"y":           driver.DistortionY,
		"boresight_x": driver.BoresightX,
		"boresight_y": driver.BoresightY,
	}
}

func (KaguyaLism) Properties() driver.PropertySet {
	return kaguyaLismProperties
}

func lismAxis(boresight driver.Property, key string) driver.PropertyFunc {
	return func(d *driver.Driver) (interface{}, error) {
		offset, err := d.Float(boresight)
		if err != nil {
			return nil, err
		}
		coeffs, err := d.InstrumentPool(key, 4)
		if err != nil {
			return nil, err
		}
		return append([]float64{offset}, coeffs[:4]...), nil
	}
}

var kaguyaLismProperties = driver.PropertySet{
	driver.BoresightX:  InstrumentValue("BORESIGHT", 0),
	driver.BoresightY:  InstrumentValue("BORESIGHT", 1),
	driver.DistortionX: lismAxis(driver.BoresightX, "DISTORTION_COEF_X"),
	driver.DistortionY: lismAxis(driver.BoresightY, "DISTORTION_COEF_Y"),
}
