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
	"testing"

	"github.com/pixlise/isd-generator/core/label"
	"github.com/stretchr/testify/assert"
)

func Example_durationSeconds() {
	for _, v := range []label.Value{
		{Text: "200"},
		{Text: "200", Unit: "ms"},
		{Text: "5", Unit: "MSEC"},
		{Text: "3", Unit: "millisecond"},
		{Text: "2.5", Unit: "s"},
		{Text: "1.5", Unit: "min"},
		{Text: "fast", Unit: "s"},
	} {
		secs, err := DurationSeconds(v)
		fmt.Printf("%v <%v>: %.4f|%v\n", v.Text, v.Unit, secs, err)
	}

	// Output:
	// 200 <>: 0.2000|<nil>
	// 200 <ms>: 0.2000|<nil>
	// 5 <MSEC>: 0.0050|<nil>
	// 3 <millisecond>: 0.0030|<nil>
	// 2.5 <s>: 2.5000|<nil>
	// 1.5 <min>: 1.5000|<nil>
	// fast <s>: 0.0000|bad duration "fast": strconv.ParseFloat: parsing "fast": invalid syntax
}

func Test_ClockCount(t *testing.T) {
	for _, text := range []string{"", "  ", "N/A"} {
		_, ok := ClockCount(text)
		assert.False(t, ok, "%q", text)
	}

	count, ok := ClockCount(" 1/0123456789.000 ")
	assert.True(t, ok)
	assert.Equal(t, "1/0123456789.000", count)
}

func Test_DirectionalScale(t *testing.T) {
	scale, err := DirectionalScale(0.5, 1)
	assert.NoError(t, err)
	assert.Equal(t, 2.0, scale)

	scale, err = DirectionalScale(-0.5, 1)
	assert.NoError(t, err)
	assert.Equal(t, 2.0, scale)

	scale, err = DirectionalScale(0.5, -1)
	assert.NoError(t, err)
	assert.Equal(t, -2.0, scale)

	_, err = DirectionalScale(0, 1)
	assert.EqualError(t, err, "pixel pitch is zero")
}

func Test_NormaliseUTC(t *testing.T) {
	utc, err := NormaliseUTC("2009-04-05T20:09:53.607478")
	assert.NoError(t, err)
	assert.Equal(t, "2009-04-05T20:09:53.607478Z", utc)

	utc, err = NormaliseUTC("2007-205T13:06:25.473")
	assert.NoError(t, err)
	assert.Equal(t, "2007-07-24T13:06:25.473Z", utc)

	_, err = NormaliseUTC("yesterday")
	assert.Error(t, err)
}
