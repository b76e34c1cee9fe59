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

// Mission compositions: which capabilities each mission's products use, and the properties a
// mission knows better than the generic label readers
package missions

import (
	"fmt"

	"github.com/pixlise/isd-generator/core/driver"
)

// Default returns every composition, in the order the resolver should try them
func Default() []*driver.Composition {
	return []*driver.Composition{
		JuiceJanusPushFrame(),
		JuiceJanusFramer(),
		KaguyaTcPds3(),
		KaguyaTcIsis(),
		KaguyaMiIsis(),
		GenericPds3Framer(),
	}
}

// Generic value of a text property, which has to be one of allowed
func genericTextIn(d *driver.Driver, p driver.Property, allowed ...string) (string, error) {
	v, err := d.Generic(p)
	if err != nil {
		return "", err
	}

	text, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%v is %T", p, v)
	}

	for _, a := range allowed {
		if text == a {
			return text, nil
		}
	}
	return "", fmt.Errorf("%v %v is not one of %v", p, text, allowed)
}

// A focal plane to pixel transform with a single non-zero term
func focal2Pixel(axis int, scale float64) []float64 {
	result := []float64{0, 0, 0}
	result[axis] = scale
	return result
}
