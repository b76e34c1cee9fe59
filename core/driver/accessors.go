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

func typed[T any](d *Driver, p Property, want string) (T, error) {
	var zero T

	v, err := d.Value(p)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, &AbsentPropertyError{Driver: d.Name(), Property: p}
	}

	result, ok := v.(T)
	if !ok {
		return zero, &WrongTypeError{Driver: d.Name(), Property: p, Value: v, Want: want}
	}
	return result, nil
}

func (d *Driver) Text(p Property) (string, error) {
	return typed[string](d, p, "text")
}

func (d *Driver) Int(p Property) (int, error) {
	return typed[int](d, p, "an integer")
}

func (d *Driver) Bool(p Property) (bool, error) {
	return typed[bool](d, p, "a boolean")
}

func (d *Driver) Floats(p Property) ([]float64, error) {
	return typed[[]float64](d, p, "a list of numbers")
}

// Float also accepts integer valued properties
func (d *Driver) Float(p Property) (float64, error) {
	v, err := d.Value(p)
	if err != nil {
		return 0, err
	}

	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case nil:
		return 0, &AbsentPropertyError{Driver: d.Name(), Property: p}
	}
	return 0, &WrongTypeError{Driver: d.Name(), Property: p, Value: v, Want: "a number"}
}

// OptionalText returns nil for an absent property
func (d *Driver) OptionalText(p Property) (*string, error) {
	v, err := d.Value(p)
	if err != nil || v == nil {
		return nil, err
	}

	s, ok := v.(string)
	if !ok {
		return nil, &WrongTypeError{Driver: d.Name(), Property: p, Value: v, Want: "text"}
	}
	return &s, nil
}

func (d *Driver) InstrumentID() (string, error) {
	return d.Text(InstrumentID)
}

func (d *Driver) InstrumentName() (string, error) {
	return d.Text(InstrumentName)
}

func (d *Driver) SpacecraftName() (string, error) {
	return d.Text(SpacecraftName)
}

func (d *Driver) TargetName() (string, error) {
	return d.Text(TargetName)
}

func (d *Driver) ImageLines() (int, error) {
	return d.Int(ImageLines)
}

func (d *Driver) ImageSamples() (int, error) {
	return d.Int(ImageSamples)
}

func (d *Driver) ExposureDuration() (float64, error) {
	return d.Float(ExposureDuration)
}

func (d *Driver) LineExposureDuration() (float64, error) {
	return d.Float(LineExposureDuration)
}

func (d *Driver) FocalLength() (float64, error) {
	return d.Float(FocalLength)
}

func (d *Driver) Focal2PixelLines() ([]float64, error) {
	return d.Floats(Focal2PixelLines)
}

func (d *Driver) Focal2PixelSamples() ([]float64, error) {
	return d.Floats(Focal2PixelSamples)
}

func (d *Driver) SpacecraftClockStartCount() (string, error) {
	return d.Text(SpacecraftClockStartCount)
}

// SpacecraftClockStopCount is nil when the label doesn't give one
func (d *Driver) SpacecraftClockStopCount() (*string, error) {
	return d.OptionalText(SpacecraftClockStopCount)
}

func (d *Driver) Ikid() (int, error) {
	return d.Int(Ikid)
}

func (d *Driver) EphemerisStartTime() (float64, error) {
	return d.Float(EphemerisStartTime)
}

func (d *Driver) EphemerisStopTime() (float64, error) {
	return d.Float(EphemerisStopTime)
}
