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

// GenericPds3Framer - any PDS3 framing camera image whose instrument kernel follows the usual
// INS<ikid>_ conventions. Products a mission composition claims are left to it
func GenericPds3Framer() *driver.Composition {
	return &driver.Composition{
		Name:       "generic-pds3-framer",
		Label:      capability.Pds3Label{},
		Ephemeris:  capability.NaifSpice{},
		Geometry:   capability.Framer{},
		Distortion: capability.Radial{},
		Accept: func(d *driver.Driver) error {
			if isSelene(d) {
				return fmt.Errorf("%v products have their own drivers", seleneMission)
			}

			id, err := d.InstrumentID()
			if err != nil {
				return err
			}
			claimed := append(append([]string{}, terrainCameras...), multibandCams...)
			for _, c := range claimed {
				if id == c {
					return fmt.Errorf("instrument %v has its own driver", id)
				}
			}
			return nil
		},
	}
}
