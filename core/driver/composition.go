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
	"errors"
	"fmt"
	"strings"

	"github.com/pixlise/isd-generator/core/ephemeris"
)

// Composition - one implementation of each capability family plus the mission's overrides. A
// Composition is stateless, Drivers made from it hold the per-input state
type Composition struct {
	Name string

	Label      LabelSource
	Ephemeris  EphemerisSource
	Geometry   SensorGeometry
	Distortion DistortionModel

	// Applied on top of the capability values. An override can read the value it replaces
	// with Driver.Generic
	Overrides PropertySet

	// Property read to check the composition can handle an input, instrument_id if not set
	Probe Property

	// Optional extra check run after the probe property was read successfully
	Accept func(d *Driver) error
}

// ProbeResult - outcome of offering an input to a composition. Exactly one of Driver and Err
// is set
type ProbeResult struct {
	Composition string
	Driver      *Driver
	Err         error
}

func (r ProbeResult) OK() bool {
	return r.Driver != nil && r.Err == nil
}

// NewDriver creates a driver for one input. kernels may be nil if nothing furnished any, in
// which case properties needing them fail when read
func (c *Composition) NewDriver(input string, raw []byte, kernels ephemeris.Provider) *Driver {
	return &Driver{
		comp:    c,
		input:   input,
		raw:     raw,
		kernels: kernels,
		values:  map[Property]propertyResult{},
		active:  map[string]bool{},
	}
}

func (c *Composition) probeProperty() Property {
	if len(c.Probe) > 0 {
		return c.Probe
	}
	return InstrumentID
}

// TryAdopt parses the input with this composition's label format and reads the probe property.
// Any failure rejects the input, nothing here panics or returns errors for control flow
func (c *Composition) TryAdopt(input string, raw []byte, kernels ephemeris.Provider) ProbeResult {
	result := ProbeResult{Composition: c.Name}

	d := c.NewDriver(input, raw, kernels)
	if _, err := d.Label(); err != nil {
		result.Err = err
		return result
	}

	probe := c.probeProperty()
	v, err := d.Value(probe)
	if err != nil {
		result.Err = err
		return result
	}

	if s, ok := v.(string); v == nil || (ok && len(strings.TrimSpace(s)) == 0) {
		result.Err = fmt.Errorf("%v probe %v is empty", c.Name, probe)
		return result
	}

	if c.Accept != nil {
		if err := c.Accept(d); err != nil {
			result.Err = err
			return result
		}
	}

	result.Driver = d
	return result
}

// Layers in lookup order. Overrides first, then sensor geometry, distortion, ephemeris, label
func (c *Composition) layers(withOverrides bool) []PropertySet {
	result := []PropertySet{}
	if withOverrides && c.Overrides != nil {
		result = append(result, c.Overrides)
	}
	if c.Geometry != nil {
		result = append(result, c.Geometry.Properties())
	}
	if c.Distortion != nil {
		result = append(result, c.Distortion.Properties())
	}
	if c.Ephemeris != nil {
		result = append(result, c.Ephemeris.Properties())
	}
	if c.Label != nil {
		result = append(result, c.Label.Properties())
	}
	return result
}

func (c *Composition) find(p Property, withOverrides bool) PropertyFunc {
	for _, layer := range c.layers(withOverrides) {
		if fn, ok := layer[p]; ok {
			return fn
		}
	}
	return nil
}

// Validate checks every family is filled in
func (c *Composition) Validate() error {
	missing := []string{}
	if c.Label == nil {
		missing = append(missing, "label")
	}
	if c.Ephemeris == nil {
		missing = append(missing, "ephemeris")
	}
	if c.Geometry == nil {
		missing = append(missing, "sensor geometry")
	}
	if c.Distortion == nil {
		missing = append(missing, "distortion")
	}
	if len(c.Name) == 0 {
		return errors.New("composition has no name")
	}
	if len(missing) > 0 {
		return fmt.Errorf("composition %v has no %v", c.Name, strings.Join(missing, ", "))
	}
	return nil
}

// Describe lists the capability names, as used in logs and the drivers listing
func (c *Composition) Describe() string {
	parts := []string{}
	if c.Label != nil {
		parts = append(parts, c.Label.Name())
	}
	if c.Ephemeris != nil {
		parts = append(parts, c.Ephemeris.Name())
	}
	if c.Geometry != nil {
		parts = append(parts, c.Geometry.Name())
	}
	if c.Distortion != nil {
		parts = append(parts, c.Distortion.Name())
	}
	return strings.Join(parts, "+")
}
