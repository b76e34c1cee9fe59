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
	"github.com/pixlise/isd-generator/api/handlers"
	apiRouter "github.com/pixlise/isd-generator/api/router"
)

// DriverSummary - a registered driver composition, listed in probe order
type DriverSummary struct {
	Name         string `json:"name"`
	Capabilities string `json:"capabilities"`
}

func registerDriversHandler(router *apiRouter.ApiObjectRouter) {
	router.AddJSONHandler(handlers.MakeEndpointPath("drivers"), "GET", driversGet)
}

func driversGet(params handlers.ApiHandlerParams) (interface{}, error) {
	result := []DriverSummary{}
	for _, c := range params.Svcs.Generator.Drivers() {
		result = append(result, DriverSummary{Name: c.Name, Capabilities: c.Describe()})
	}
	return result, nil
}
