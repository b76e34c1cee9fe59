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

package endpoints

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/pixlise/isd-generator/core/logger"
	"github.com/pixlise/isd-generator/internal/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ISDPostLabelInBody(t *testing.T) {
	router := MakeRouter(makeTestServices(&logger.NullLogger{}))

	url := "/isd?name=" + fixtures.KaguyaTcPds3 + kernelQuery(fixtures.KaguyaKernels)
	resp := executeRequest(newRequest("POST", url, bytes.NewReader(fixtures.Read(fixtures.KaguyaTcPds3))), router.Router)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	assert.Equal(t, "application/json", resp.Header().Get("Content-Type"))
	assert.Equal(t, "kaguya-tc-pds3", resp.Header().Get(driverHeader))
	assert.Equal(t, "false", resp.Header().Get(memoisedHeader))

	doc := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &doc))
	assert.Equal(t, "USGS_ASTRO_LINE_SCANNER_SENSOR_MODEL", doc["name_model"])
}

func Test_ISDPostStoredLabel(t *testing.T) {
	router := MakeRouter(makeTestServices(&logger.NullLogger{}))

	url := "/isd?label=s3://" + labelBucket + "/cassini/" + fixtures.CassiniIssPds3 + kernelQuery(fixtures.CassiniKernels)
	resp := executeRequest(newRequest("POST", url, nil), router.Router)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "generic-pds3-framer", resp.Header().Get(driverHeader))

	doc := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &doc))
	assert.Equal(t, "USGS_ASTRO_FRAME_SENSOR_MODEL", doc["name_model"])
}

func Test_ISDPostFailures(t *testing.T) {
	router := MakeRouter(makeTestServices(&logger.NullLogger{}))
	kaguya := string(fixtures.Read(fixtures.KaguyaTcPds3))

	for _, tc := range []struct {
		name   string
		url    string
		body   string
		status int
		msg    string
	}{
		{"no label", "/isd", "", http.StatusBadRequest, "No label given"},
		{"label twice", "/isd?label=s3://isd-labels/a.lbl", kaguya, http.StatusBadRequest, "Label given in body and as a url"},
		{"bad url", "/isd?label=isd-labels/a.lbl", "", http.StatusBadRequest, "not an S3 url: isd-labels/a.lbl"},
		{"no driver", "/isd?name=mystery.lbl", "PDS_VERSION_ID = PDS3\nEND\n", http.StatusUnprocessableEntity, "mystery.lbl"},
		{"missing label", "/isd?label=s3://isd-labels/a.lbl", "", http.StatusNotFound, "Failed to read label: isd-labels/a.lbl"},
		{"missing kernel", "/isd?kernel=naif/none.tsc", kaguya, http.StatusNotFound, "failed to read kernel naif/none.tsc"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			resp := executeRequest(newRequest("POST", tc.url, strings.NewReader(tc.body)), router.Router)
			assert.Equal(t, tc.status, resp.Code)
			assert.Contains(t, resp.Body.String(), tc.msg)
			assert.Empty(t, resp.Header().Get(driverHeader))
		})
	}
}
