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

// Ephemeris access for drivers. Everything a driver needs from SPICE-style kernels goes through
// Provider: name to id lookups, the kernel pool, and clock conversion
package ephemeris

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Provider - the queries a driver makes against loaded kernels
type Provider interface {
	// NAIF body id for a body, spacecraft or instrument name
	BodyCode(name string) (int, error)
	// NAIF frame id for a frame name
	FrameCode(name string) (int, error)
	// Numeric values of a kernel pool variable, for example INS-131351_FOCAL_LENGTH
	Pool(keyword string) ([]float64, error)
	// Ephemeris time (TDB seconds past J2000) of a spacecraft clock string
	SclkToEt(spacecraftID int, clock string) (float64, error)
}

// UtcConverter is implemented by providers that have leap seconds available
type UtcConverter interface {
	UtcToEt(utc string) (float64, error)
}

// ErrNotLoaded - the thing asked for isn't defined by any loaded kernel
var ErrNotLoaded = errors.New("not defined by loaded kernels")

// InstrumentKeyword forms the INS<ikid>_<name> keyword instrument kernels use
func InstrumentKeyword(ikid int, name string) string {
	return fmt.Sprintf("INS%v_%v", ikid, name)
}

// Bodies known without a kernel defining them
var builtinBodies = map[string]int{
	"SUN":      10,
	"MERCURY":  199,
	"VENUS":    299,
	"EARTH":    399,
	"MOON":     301,
	"MARS":     499,
	"PHOBOS":   401,
	"DEIMOS":   402,
	"JUPITER":  599,
	"IO":       501,
	"EUROPA":   502,
	"GANYMEDE": 503,
	"CALLISTO": 504,
	"SATURN":   699,
	"TITAN":    606,
	"SELENE":   -131,
	"KAGUYA":   -131,
	"JUICE":    -28,
	"CASSINI":  -82,
	"MRO":      -74,
	"MSL":      -76,
}

var builtinFrames = map[string]int{
	"J2000":      1,
	"ECLIPJ2000": 17,
	"IAU_MOON":   10020,
	"IAU_MARS":   10014,
}

// Names compare case-insensitively with runs of spaces collapsed
func normaliseName(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), " "))
}

// A name that is itself an integer is its own code
func integerName(name string) (int, bool) {
	code, err := strconv.Atoi(strings.TrimSpace(name))
	return code, err == nil
}

func clockKeyword(kind string, spacecraftID int) string {
	id := spacecraftID
	if id < 0 {
		id = -id
	}
	return fmt.Sprintf("SCLK01_%v_%v", kind, id)
}
