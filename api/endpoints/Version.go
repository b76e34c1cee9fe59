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
	"fmt"

	"github.com/pixlise/isd-generator/api/handlers"
	apiRouter "github.com/pixlise/isd-generator/api/router"
	"github.com/pixlise/isd-generator/api/services"
)

////////////////////////////////////////////////////////////////////////////////////////////////////////////
// Getting component versions

type ComponentVersion struct {
	Component string `json:"component"`
	Version   string `json:"version"`
}

type ComponentVersionsGetResponse struct {
	Components []ComponentVersion `json:"components"`
}

func getAPIVersion() string {
	ver := services.ApiVersion
	if len(services.ApiVersion) <= 0 {
		ver = "(Local build)"
	}

	if len(services.GitHash) > 0 {
		hashEnd := 8
		if len(services.GitHash) < 8 {
			hashEnd = len(services.GitHash)
		}
		ver += "-" + services.GitHash[0:hashEnd]
	}

	return ver
}

func registerVersionHandler(router *apiRouter.ApiObjectRouter) {
	// User goes to root of API, returns HTML
	router.AddGenericHandler("/", "GET", rootRequest)

	router.AddJSONHandler("/version", "GET", componentVersionsGet)
}

func componentVersionsGet(params handlers.ApiHandlerParams) (interface{}, error) {
	return ComponentVersionsGetResponse{
		Components: []ComponentVersion{
			{
				Component: "API",
				Version:   getAPIVersion(),
			},
		},
	}, nil
}

////////////////////////////////////////////////////////////////////////////////////////////////////////////
// Root request, which shows the version

func rootRequest(params handlers.ApiHandlerParams) error {
	params.Writer.Header().Add("Content-Type", "text/html")

	var start string = `<!DOCTYPE html>
<html lang="en"><head></head>
<body style="font-family: Arial, Helvetica, sans-serif">
<center>`
	var mid = fmt.Sprintf("<h1>ISD Generator API</h1><p>Version %s</p>", getAPIVersion())
	var end string = `
</center>
</body>
</html>`

	_, err := params.Writer.Write([]byte(start + mid + end))
	return err
}
