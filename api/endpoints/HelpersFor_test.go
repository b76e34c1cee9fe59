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
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/gorilla/mux"
	"github.com/pixlise/isd-generator/api/config"
	"github.com/pixlise/isd-generator/api/services"
	"github.com/pixlise/isd-generator/core/fileaccess"
	"github.com/pixlise/isd-generator/core/logger"
	"github.com/pixlise/isd-generator/internal/fixtures"
)

const (
	labelBucket  = "isd-labels"
	kernelBucket = "isd-kernels"
)

func makeTestServices(log logger.ILogger) *services.GeneratorServices {
	fs := fileaccess.NewMemoryAccess()
	fs.WriteObject(labelBucket, "cassini/"+fixtures.CassiniIssPds3, fixtures.Read(fixtures.CassiniIssPds3))

	for _, kernels := range [][]string{fixtures.KaguyaKernels, fixtures.CassiniKernels} {
		for _, k := range kernels {
			fs.WriteObject(kernelBucket, "naif/"+k, fixtures.Read(k))
		}
	}

	cfg := config.GeneratorConfig{
		EnvironmentName: "unit-test",
		KernelBucket:    kernelBucket,
		KernelPaths:     []string{"naif/" + fixtures.LeapSeconds},
	}

	gen, err := services.NewGenerator(cfg, fs, nil, log)
	if err != nil {
		panic(err)
	}
	return &services.GeneratorServices{Config: cfg, Log: log, FS: fs, Generator: gen}
}

func executeRequest(req *http.Request, router *mux.Router) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func newRequest(method string, url string, body io.Reader) *http.Request {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		panic(err)
	}
	return req
}

// Query string asking for the kernels, after the configured leap seconds
func kernelQuery(names []string) string {
	result := ""
	for _, n := range names {
		if n == fixtures.LeapSeconds {
			continue
		}
		result += "&kernel=naif/" + n
	}
	return result
}
