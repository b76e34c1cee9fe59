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

package api

import (
	"fmt"
	"net/http/httptest"
)

func Example_toJSON() {
	w := httptest.NewRecorder()
	err := ToJSON(w, map[string]int{"lines": 4657})
	fmt.Printf("%v|%v|%v", err, w.Header().Get("Content-Type"), w.Body.String())

	w = httptest.NewRecorder()
	err = ToJSON(w, nil)
	fmt.Printf("%v|%v\n", err, w.Body.Len())

	w = httptest.NewRecorder()
	err = WriteJSONBytes(w, []byte(`{"ikid":-82360}`))
	fmt.Printf("%v|%v\n", err, w.Body.String())

	// Output:
	// <nil>|application/json|{
	//     "lines": 4657
	// }
	// <nil>|0
	// <nil>|{"ikid":-82360}
}
