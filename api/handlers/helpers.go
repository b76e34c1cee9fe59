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

package handlers

import (
	"net/http"
	"path"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pixlise/isd-generator/core/errorwithstatus"
	"github.com/pixlise/isd-generator/core/logger"
)

func MakeEndpointPath(pathPrefix string, pathParamNames ...string) string {
	vals := []string{"/" + pathPrefix}

	for _, param := range pathParamNames {
		vals = append(vals, "{"+strings.Trim(param, "/")+"}")
	}

	return path.Join(vals...)
}

// Path params, plus the first value of each query param. Repeated query params have to be read
// from the request
func makePathParams(r *http.Request) map[string]string {
	pathParams := mux.Vars(r)
	if pathParams == nil {
		pathParams = map[string]string{}
	}

	for q, v := range r.URL.Query() {
		if len(v) > 0 {
			pathParams[q] = v[0]
		}
	}

	return pathParams
}

func logHandlerErrors(err error, log logger.ILogger, w http.ResponseWriter, r *http.Request) {
	e := errorwithstatus.FromGenerationError(err)
	log.Errorf("Request: %v (%v), Result: status=%v, error=%v", r.URL, r.Method, e.Status(), e)
	http.Error(w, e.Error(), e.Status())
}
