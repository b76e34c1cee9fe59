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
	"encoding/json"
	"fmt"

	"github.com/pixlise/isd-generator/core/logger"
)

func Example_driversGet() {
	router := MakeRouter(makeTestServices(&logger.NullLogger{}))

	resp := executeRequest(newRequest("GET", "/drivers", nil), router.Router)
	fmt.Println(resp.Code)

	drivers := []DriverSummary{}
	err := json.Unmarshal(resp.Body.Bytes(), &drivers)
	fmt.Println(err)
	for _, d := range drivers {
		fmt.Printf("%v: %v\n", d.Name, d.Capabilities)
	}

	resp = executeRequest(newRequest("DELETE", "/drivers", nil), router.Router)
	fmt.Println(resp.Code)

	// Output:
	// 200
	// <nil>
	// juice-janus-pushframe: Pds4Label+NaifSpice+PushFrame+NoDistortion
	// juice-janus-framer: Pds4Label+NaifSpice+Framer+NoDistortion
	// kaguya-tc-pds3: Pds3Label+NaifSpice+LineScanner+KaguyaLism
	// kaguya-tc-isis: IsisLabel+IsisSpice+LineScanner+KaguyaLism
	// kaguya-mi-isis: IsisLabel+NaifSpice+LineScanner+KaguyaLism
	// generic-pds3-framer: Pds3Label+NaifSpice+Framer+Radial
	// 405
}
