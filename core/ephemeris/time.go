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

package ephemeris

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joshuaferrara/go-satellite"
)

const j2000JulianDate = 2451545.0
const secondsPerDay = 86400.0

func secondsPastJ2000(t time.Time) float64 {
	t = t.UTC()
	jd := satellite.JDay(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
	return (jd-j2000JulianDate)*secondsPerDay + float64(t.Nanosecond())/1e9
}

var utcLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-002T15:04:05.999999999Z07:00",
	"2006-002T15:04:05.999999999",
	"2006-01-02",
}

// ParseUTC reads the UTC time formats labels use, including day-of-year (2007-205T13:06:25.473)
func ParseUTC(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	for _, layout := range utcLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised UTC time \"%v\"", text)
}

// utcToEt converts using DELTET/DELTA_AT (pairs of leap second count, date) and DELTET/DELTA_T_A.
// The periodic TDB-TT terms (under 2ms) are ignored
func utcToEt(utc string, pool func(string) ([]float64, error)) (float64, error) {
	t, err := ParseUTC(utc)
	if err != nil {
		return 0, err
	}

	deltaAt, err := pool("DELTET/DELTA_AT")
	if err != nil {
		return 0, fmt.Errorf("no leap seconds loaded: %w", err)
	}
	deltaTA, err := pool("DELTET/DELTA_T_A")
	if err != nil {
		return 0, fmt.Errorf("no leap seconds loaded: %w", err)
	}

	if len(deltaAt) < 2 || len(deltaAt)%2 != 0 || len(deltaTA) != 1 {
		return 0, fmt.Errorf("malformed leap second table")
	}

	utcSec := secondsPastJ2000(t)
	leapSec := 0.0
	found := false
	for c := 0; c < len(deltaAt); c += 2 {
		if deltaAt[c+1] > utcSec {
			break
		}
		leapSec = deltaAt[c]
		found = true
	}

	if !found {
		return 0, fmt.Errorf("%v is before the first leap second entry", utc)
	}

	return utcSec + leapSec + deltaTA[0], nil
}

// sclkToEt evaluates a type 1 clock: SCLK01_COEFFICIENTS_<id> holds (clock, ET, rate) triples
// in increasing clock order. A partition prefix (1/...) is ignored. If SCLK01_MODULI_<id> has a
// second field, the part after the separator counts ticks of that modulus, otherwise the clock
// string is decimal seconds
func sclkToEt(spacecraftID int, clock string, pool func(string) ([]float64, error)) (float64, error) {
	coeffs, err := pool(clockKeyword("COEFFICIENTS", spacecraftID))
	if err != nil {
		return 0, fmt.Errorf("no clock for spacecraft %v: %w", spacecraftID, err)
	}
	if len(coeffs) < 3 || len(coeffs)%3 != 0 {
		return 0, fmt.Errorf("malformed clock coefficients for spacecraft %v", spacecraftID)
	}

	moduli, err := pool(clockKeyword("MODULI", spacecraftID))
	if err != nil {
		moduli = nil
	}

	ticks, err := clockSeconds(clock, moduli)
	if err != nil {
		return 0, err
	}

	row := 0
	for c := 0; c < len(coeffs); c += 3 {
		if coeffs[c] > ticks {
			break
		}
		row = c
	}

	return coeffs[row+1] + coeffs[row+2]*(ticks-coeffs[row]), nil
}

func clockSeconds(clock string, moduli []float64) (float64, error) {
	text := strings.TrimSpace(clock)
	if slash := strings.Index(text, "/"); slash >= 0 {
		text = text[slash+1:]
	}

	if len(moduli) >= 2 {
		sep := strings.IndexAny(text, ".:")
		if sep >= 0 {
			secs, err := strconv.ParseFloat(text[:sep], 64)
			if err != nil {
				return 0, fmt.Errorf("bad clock \"%v\"", clock)
			}
			ticks, err := strconv.ParseFloat(text[sep+1:], 64)
			if err != nil || moduli[1] <= 0 {
				return 0, fmt.Errorf("bad clock \"%v\"", clock)
			}
			return secs + ticks/moduli[1], nil
		}
	}

	secs, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("bad clock \"%v\"", clock)
	}
	return secs, nil
}
