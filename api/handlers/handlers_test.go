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
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/gorilla/mux"
	"github.com/pixlise/isd-generator/api/services"
	"github.com/pixlise/isd-generator/core/errorwithstatus"
	"github.com/pixlise/isd-generator/core/logger"
)

func Example_makeEndpointPath() {
	fmt.Println(MakeEndpointPath("isd"))
	fmt.Println(MakeEndpointPath("drivers", "name/"))

	// Output:
	// /isd
	// /drivers/{name}
}

func Example_makePathParams() {
	r := httptest.NewRequest("POST", "/isd?name=a.lbl&kernel=lsk/naif0012.tls&kernel=sclk/selene.tsc", nil)
	fmt.Println(makePathParams(r))

	var got map[string]string
	router := mux.NewRouter()
	router.HandleFunc("/drivers/{name}", func(w http.ResponseWriter, r *http.Request) { got = makePathParams(r) })
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/drivers/kaguya-tc-pds3?verbose=1", nil))
	fmt.Println(got)

	// Output:
	// map[kernel:lsk/naif0012.tls name:a.lbl]
	// map[name:kaguya-tc-pds3 verbose:1]
}

func Example_handlers() {
	svcs := &services.GeneratorServices{Log: &logger.NullLogger{}}

	json := ApiHandlerJSON{svcs, func(params ApiHandlerParams) (interface{}, error) {
		if params.PathParams["fail"] == "1" {
			return nil, errorwithstatus.MakeBadRequestError(errors.New("bad things"))
		}
		return []string{params.PathParams["name"]}, nil
	}}

	w := httptest.NewRecorder()
	json.ServeHTTP(w, httptest.NewRequest("GET", "/?name=a", nil))
	fmt.Printf("%v|%v", w.Code, w.Body.String())

	w = httptest.NewRecorder()
	json.ServeHTTP(w, httptest.NewRequest("GET", "/?fail=1", nil))
	fmt.Printf("%v|%v", w.Code, w.Body.String())

	generic := ApiHandlerGeneric{svcs, func(params ApiHandlerParams) error {
		return errors.New("it broke")
	}}
	w = httptest.NewRecorder()
	generic.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	fmt.Printf("%v|%v", w.Code, w.Body.String())

	// Output:
	// 200|[
	//     "a"
	// ]
	// 400|bad things
	// 500|it broke
}
