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
	"github.com/pixlise/isd-generator/core/ephemeris"
	"github.com/pixlise/isd-generator/core/label"
)

// LabelSource - reads the normalised properties out of one label format
type LabelSource interface {
	Name() string
	Format() label.Format
	Open(name string, raw []byte) (label.Label, error)
	Properties() PropertySet
}

// EphemerisSource - properties that need NAIF ids, kernel pool values or time conversions.
// Provider returns what those queries run against for a given driver
type EphemerisSource interface {
	Name() string
	Provider(d *Driver) (ephemeris.Provider, error)
	Properties() PropertySet
}

// SensorGeometry - how image rows map to exposure times. Required lists every property an ISD
// for this kind of sensor must contain
type SensorGeometry interface {
	Name() string
	ModelName() string
	Required() []Property
	Properties() PropertySet
}

// DistortionModel - optical distortion parameters. Fields maps the ISD key of each
// coefficient set to the property supplying it
type DistortionModel interface {
	Name() string
	Kind() string
	Required() []Property
	Fields() map[string]Property
	Properties() PropertySet
}
