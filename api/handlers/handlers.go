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

	"github.com/pixlise/isd-generator/api/services"
	"github.com/pixlise/isd-generator/core/api"
)

type ApiHandlerParams struct {
	Svcs       *services.GeneratorServices
	PathParams map[string]string
	Writer     http.ResponseWriter
	Request    *http.Request
}

// ApiHandlerFunc returns what to send back as JSON
type ApiHandlerFunc func(ApiHandlerParams) (interface{}, error)

// ApiHandlerGenericFunc writes its own response
type ApiHandlerGenericFunc func(ApiHandlerParams) error

type ApiHandlerJSON struct {
	*services.GeneratorServices
	Handler ApiHandlerFunc
}

func (h ApiHandlerJSON) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result, err := h.Handler(ApiHandlerParams{h.GeneratorServices, makePathParams(r), w, r})
	if err != nil {
		logHandlerErrors(err, h.Log, w, r)
		return
	}

	if err := api.ToJSON(w, result); err != nil {
		h.Log.Errorf("Request: %v (%v), failed to write response: %v", r.URL, r.Method, err)
	}
}

type ApiHandlerGeneric struct {
	*services.GeneratorServices
	Handler ApiHandlerGenericFunc
}

func (h ApiHandlerGeneric) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := h.Handler(ApiHandlerParams{h.GeneratorServices, makePathParams(r), w, r})
	if err != nil {
		logHandlerErrors(err, h.Log, w, r)
	}
}
