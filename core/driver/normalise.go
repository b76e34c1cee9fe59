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
	"fmt"
	"strings"
	"time"

	"github.com/pixlise/isd-generator/core/ephemeris"
	"github.com/pixlise/isd-generator/core/label"
)

// DefaultSumming is the line, sample, downtrack and crosstrack summing reported when a label
// has no downsampling metadata. It is a placeholder, not derived from anything: PDS4 labels
// don't yet say how data was downsampled
const DefaultSumming = 1

// DurationSeconds converts a label duration to seconds. ms, msec and millisecond (any case) are
// scaled by 0.001, any other unit is taken as seconds, and no unit at all means milliseconds
func DurationSeconds(v label.Value) (float64, error) {
	value, err := v.Float()
	if err != nil {
		return 0, fmt.Errorf("bad duration \"%v\": %v", v.Text, err)
	}

	if !v.HasUnit() {
		return value * 0.001, nil
	}

	switch strings.ToLower(strings.TrimSpace(v.Unit)) {
	case "ms", "msec", "millisecond":
		return value * 0.001, nil
	}
	return value, nil
}

// ClockCount normalises a spacecraft clock string. An empty value or the literal N/A is absent
func ClockCount(text string) (string, bool) {
	count := strings.TrimSpace(text)
	if len(count) == 0 || count == "N/A" {
		return "", false
	}
	return count, true
}

// DirectionalScale returns the focal plane to pixel scale for a pixel pitch. The pitch is taken
// as positive, and the scale is negated when direction is negative
func DirectionalScale(pitch float64, direction int) (float64, error) {
	if pitch == 0 {
		return 0, fmt.Errorf("pixel pitch is zero")
	}

	scale := 1 / pitch
	if scale < 0 {
		scale = -scale
	}
	if direction < 0 {
		scale = -scale
	}
	return scale, nil
}

// NormaliseUTC reformats any time ParseUTC accepts as RFC3339 in UTC
func NormaliseUTC(text string) (string, error) {
	t, err := ephemeris.ParseUTC(text)
	if err != nil {
		return "", err
	}
	return t.Format(time.RFC3339Nano), nil
}
