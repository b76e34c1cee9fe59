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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/pixlise/isd-generator/api/isdgen"
	"github.com/pixlise/isd-generator/api/services"
	"github.com/pixlise/isd-generator/core/fileaccess"
)

const s3Prefix = "s3://"

// A local path or s3:// url. Local paths have a blank bucket
type location struct {
	bucket string
	path   string
	s3     bool
}

func parseLocation(loc string) (location, error) {
	if !strings.HasPrefix(loc, s3Prefix) {
		return location{path: loc}, nil
	}

	bucket, key, err := fileaccess.SplitS3Url(loc)
	if err != nil {
		return location{}, err
	}
	return location{bucket: bucket, path: key, s3: true}, nil
}

func (l location) String() string {
	if l.s3 {
		return s3Prefix + path.Join(l.bucket, l.path)
	}
	return l.path
}

// Builds the request, checking the label and kernels are all local or all in one S3 bucket
func makeRequest(labelLoc string, kernelLocs []string) (isdgen.Request, error) {
	if len(labelLoc) <= 0 {
		return isdgen.Request{}, errors.New("No label given, use -label")
	}

	label, err := parseLocation(labelLoc)
	if err != nil {
		return isdgen.Request{}, err
	}

	req := isdgen.Request{Bucket: label.bucket, Path: label.path}
	for c, k := range kernelLocs {
		kernel, err := parseLocation(k)
		if err != nil {
			return req, err
		}
		if kernel.s3 != label.s3 {
			return req, fmt.Errorf("Kernel %v and label %v must both be local or both in S3", k, labelLoc)
		}
		if c > 0 && kernel.bucket != req.KernelBucket {
			return req, fmt.Errorf("Kernels must all be in one bucket, found %v and %v", req.KernelBucket, kernel.bucket)
		}

		req.KernelBucket = kernel.bucket
		req.Kernels = append(req.Kernels, kernel.path)
	}
	return req, nil
}

func run(ctx context.Context, svcs *services.GeneratorServices, labelLoc string, kernelLocs []string, outLoc string, stdout io.Writer) error {
	req, err := makeRequest(labelLoc, kernelLocs)
	if err != nil {
		return err
	}

	if len(outLoc) <= 0 {
		result, err := svcs.Generator.Generate(ctx, req)
		if err != nil {
			return err
		}

		var out bytes.Buffer
		if err := json.Indent(&out, result.JSON, "", "    "); err != nil {
			return err
		}
		out.WriteString("\n")
		_, err = out.WriteTo(stdout)
		return err
	}

	out, err := parseLocation(outLoc)
	if err != nil {
		return err
	}
	if out.s3 != strings.HasPrefix(labelLoc, s3Prefix) {
		return fmt.Errorf("Output %v and label %v must both be local or both in S3", outLoc, labelLoc)
	}

	result, written, err := svcs.Generator.GenerateToFile(ctx, req, out.bucket, out.path)
	if err != nil {
		return err
	}

	out.path = written
	fmt.Fprintf(stdout, "Wrote ISD from %v to %v\n", result.Driver, out)
	return nil
}
