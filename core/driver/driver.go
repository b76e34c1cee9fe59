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
	"github.com/pixlise/isd-generator/core/label"
)

// ErrNoKernels - a property needed kernel pool queries but the driver was made without a
// provider
var ErrNoKernels = errors.New("no kernels furnished")

type propertyResult struct {
	value interface{}
	err   error
}

// Driver - a composition applied to one input. The label is parsed at most once, and every
// property is computed at most once, so repeated reads return identical values. Not safe for
// use from several goroutines
type Driver struct {
	comp    *Composition
	input   string
	raw     []byte
	kernels ephemeris.Provider

	lbl    label.Label
	lblErr error
	parsed bool

	provider    ephemeris.Provider
	providerErr error
	providerSet bool

	values map[Property]propertyResult
	active map[string]bool
}

// Name of the composition this driver was made from
func (d *Driver) Name() string {
	return d.comp.Name
}

func (d *Driver) Composition() *Composition {
	return d.comp
}

// Input is the label name or path the driver was made for
func (d *Driver) Input() string {
	return d.input
}

// Label returns the parsed label, parsing it on first use
func (d *Driver) Label() (label.Label, error) {
	if !d.parsed {
		d.parsed = true
		d.lbl, d.lblErr = d.comp.Label.Open(d.input, d.raw)
		if d.lblErr != nil {
			d.lbl = nil
		}
	}
	return d.lbl, d.lblErr
}

// Kernels returns the provider over furnished kernels
func (d *Driver) Kernels() (ephemeris.Provider, error) {
	if d.kernels == nil {
		return nil, ErrNoKernels
	}
	return d.kernels, nil
}

// Ephemeris returns the provider chosen by the composition's ephemeris source, created on first
// use
func (d *Driver) Ephemeris() (ephemeris.Provider, error) {
	if !d.providerSet {
		d.providerSet = true
		if d.comp.Ephemeris == nil {
			d.providerErr = &UnsupportedPropertyError{Driver: d.Name(), Property: "ephemeris"}
		} else {
			d.provider, d.providerErr = d.comp.Ephemeris.Provider(d)
		}
	}
	return d.provider, d.providerErr
}

// Value returns a property, looking through the overrides then each capability layer
func (d *Driver) Value(p Property) (interface{}, error) {
	if r, ok := d.values[p]; ok {
		return r.value, r.err
	}

	v, err := d.resolve(p, true)
	d.values[p] = propertyResult{value: v, err: err}
	return v, err
}

// Generic returns the value a property has without the composition's overrides. Overrides use
// it to adjust the capability value rather than replace it
func (d *Driver) Generic(p Property) (interface{}, error) {
	return d.resolve(p, false)
}

func (d *Driver) resolve(p Property, withOverrides bool) (interface{}, error) {
	fn := d.comp.find(p, withOverrides)
	if fn == nil {
		return nil, &UnsupportedPropertyError{Driver: d.Name(), Property: p}
	}

	key := string(p)
	if !withOverrides {
		key = "generic:" + key
	}
	if d.active[key] {
		return nil, fmt.Errorf("driver %v: %v depends on itself", d.Name(), p)
	}
	d.active[key] = true
	defer delete(d.active, key)

	return fn(d)
}

// Supported lists every property some layer of the driver implements
func (d *Driver) Supported() []Property {
	all := PropertySet{}
	for _, layer := range d.comp.layers(true) {
		for p, fn := range layer {
			if _, ok := all[p]; !ok {
				all[p] = fn
			}
		}
	}
	return all.Names()
}

// LabelError reports a value-level failure for a property in the same form as a parse failure
func (d *Driver) LabelError(p Property, err error) error {
	var already *label.InvalidLabelError
	if errors.As(err, &already) && len(already.Property) > 0 {
		return err
	}

	format := label.Format("")
	if d.comp.Label != nil {
		format = d.comp.Label.Format()
	}
	return &label.InvalidLabelError{Format: format, Input: d.input, Property: string(p), Err: err}
}

// Find returns the first of paths present in the label. Failures are InvalidLabelError naming
// the property, and still match label.ErrNotFound with errors.Is if nothing was found
func (d *Driver) Find(p Property, paths ...string) (label.Value, error) {
	lbl, err := d.Label()
	if err != nil {
		return label.Value{}, err
	}

	lastErr := fmt.Errorf("no label path given: %w", label.ErrNotFound)
	for _, path := range paths {
		v, err := lbl.Find(path)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if !errors.Is(err, label.ErrNotFound) {
			break
		}
	}
	return label.Value{}, d.LabelError(p, lastErr)
}

// Has reports whether path exists in the label
func (d *Driver) Has(path string) bool {
	lbl, err := d.Label()
	if err != nil {
		return false
	}
	_, err = lbl.Find(path)
	return err == nil
}

func (d *Driver) FindText(p Property, paths ...string) (string, error) {
	v, err := d.Find(p, paths...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(v.Text), nil
}

func (d *Driver) FindFloat(p Property, paths ...string) (float64, error) {
	v, err := d.Find(p, paths...)
	if err != nil {
		return 0, err
	}
	f, err := v.Float()
	if err != nil {
		return 0, d.LabelError(p, err)
	}
	return f, nil
}

func (d *Driver) FindInt(p Property, paths ...string) (int, error) {
	v, err := d.Find(p, paths...)
	if err != nil {
		return 0, err
	}
	n, err := v.Int()
	if err != nil {
		return 0, d.LabelError(p, err)
	}
	return n, nil
}

// FindDuration reads a duration in seconds, see DurationSeconds
func (d *Driver) FindDuration(p Property, paths ...string) (float64, error) {
	v, err := d.Find(p, paths...)
	if err != nil {
		return 0, err
	}
	secs, err := DurationSeconds(v)
	if err != nil {
		return 0, d.LabelError(p, err)
	}
	return secs, nil
}

// FindUTC reads a time and returns it as RFC3339 UTC
func (d *Driver) FindUTC(p Property, paths ...string) (string, error) {
	text, err := d.FindText(p, paths...)
	if err != nil {
		return "", err
	}
	utc, err := NormaliseUTC(text)
	if err != nil {
		return "", d.LabelError(p, err)
	}
	return utc, nil
}

// FindClockCount reads a spacecraft clock string. A missing field or N/A gives a nil value
func (d *Driver) FindClockCount(p Property, paths ...string) (interface{}, error) {
	v, err := d.Find(p, paths...)
	if err != nil {
		if errors.Is(err, label.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	count, ok := ClockCount(v.Text)
	if !ok {
		return nil, nil
	}
	return count, nil
}

// InstrumentPool reads INS<ikid>_<key> through the ephemeris provider, requiring at least count
// values
func (d *Driver) InstrumentPool(key string, count int) ([]float64, error) {
	ikid, err := d.Int(Ikid)
	if err != nil {
		return nil, err
	}

	p, err := d.Ephemeris()
	if err != nil {
		return nil, err
	}

	keyword := ephemeris.InstrumentKeyword(ikid, key)
	values, err := p.Pool(keyword)
	if err != nil {
		return nil, err
	}
	if len(values) < count {
		return nil, fmt.Errorf("%v has %v values, expected %v", keyword, len(values), count)
	}
	return values, nil
}
