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
	"strconv"

	"github.com/pixlise/isd-generator/api/handlers"
	"github.com/pixlise/isd-generator/api/isdgen"
	apiRouter "github.com/pixlise/isd-generator/api/router"
	"github.com/pixlise/isd-generator/core/api"
	"github.com/pixlise/isd-generator/core/errorwithstatus"
	"github.com/pixlise/isd-generator/core/fileaccess"
	"github.com/pkg/errors"
)

////////////////////////////////////////////////////////////////////////////////////////////////////////////
// Generating ISDs

const (
	// Repeated, in load order
	kernelParam = "kernel"
	// Bucket kernels are read from, if not the configured one
	kernelBucketParam = "kernelbucket"
	// Name of a label sent in the body
	nameParam = "name"
	// s3:// url of a stored label, instead of sending it in the body
	labelParam = "label"

	driverHeader   = "X-ISD-Driver"
	memoisedHeader = "X-ISD-Memoised"

	maxLabelBytes = 16 * 1024 * 1024
)

func registerISDHandler(router *apiRouter.ApiObjectRouter) {
	router.AddGenericHandler(handlers.MakeEndpointPath("isd"), "POST", isdPost)
}

func isdRequest(params handlers.ApiHandlerParams) (isdgen.Request, error) {
	req := isdgen.Request{
		KernelBucket: params.PathParams[kernelBucketParam],
		Kernels:      params.Request.URL.Query()[kernelParam],
	}

	var body []byte
	if params.Request.Body != nil {
		var err error
		body, err = io.ReadAll(http.MaxBytesReader(params.Writer, params.Request.Body, maxLabelBytes))
		if err != nil {
			return req, errorwithstatus.MakeBadRequestError(errors.Wrap(err, "Failed to read label"))
		}
	}

	labelUrl := params.PathParams[labelParam]
	if len(labelUrl) <= 0 {
		if len(body) <= 0 {
			return req, errorwithstatus.MakeBadRequestError(errors.New("No label given"))
		}

		req.Content = body
		req.Path = params.PathParams[nameParam]
		if len(req.Path) <= 0 {
			req.Path = "label"
		}
		return req, nil
	}

	if len(body) > 0 {
		return req, errorwithstatus.MakeBadRequestError(errors.New("Label given in body and as a url"))
	}

	var err error
	req.Bucket, req.Path, err = fileaccess.SplitS3Url(labelUrl)
	if err != nil {
		return req, errorwithstatus.MakeBadRequestError(err)
	}
	return req, nil
}

func isdPost(params handlers.ApiHandlerParams) error {
	req, err := isdRequest(params)
	if err != nil {
		return err
	}

	result, err := params.Svcs.Generator.Generate(params.Request.Context(), req)
	if err != nil {
		// Stored labels and kernels
		if params.Svcs.FS.IsNotFoundError(errors.Cause(err)) {
			return errorwithstatus.MakeStatusError(http.StatusNotFound, err)
		}
		return err
	}

	params.Writer.Header().Set(driverHeader, result.Driver)
	params.Writer.Header().Set(memoisedHeader, strconv.FormatBool(result.Memoised))
	return api.WriteJSONBytes(params.Writer, result.JSON)
}
