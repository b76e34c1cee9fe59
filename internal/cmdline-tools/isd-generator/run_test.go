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
	"fmt"
	"os"
	"testing"

	"github.com/pixlise/isd-generator/api/config"
	"github.com/pixlise/isd-generator/api/services"
	"github.com/pixlise/isd-generator/core/fileaccess"
	"github.com/pixlise/isd-generator/core/logger"
	"github.com/pixlise/isd-generator/internal/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeServices(fs fileaccess.FileAccess) *services.GeneratorServices {
	gen, err := services.NewGenerator(config.GeneratorConfig{}, fs, nil, &logger.NullLogger{})
	if err != nil {
		panic(err)
	}
	return &services.GeneratorServices{FS: fs, Log: &logger.NullLogger{}, Generator: gen}
}

func kernelPaths(dir string, names []string) []string {
	result := []string{}
	for _, n := range names {
		result = append(result, dir+"/"+n)
	}
	return result
}

func Example_parseLocation() {
	for _, loc := range []string{"data/label.lbl", "s3://isd-labels/kaguya/label.lbl", "s3://isd-labels"} {
		l, err := parseLocation(loc)
		fmt.Printf("%v|%v|%v\n", l, l.s3, err)
	}

	// Output:
	// data/label.lbl|false|<nil>
	// s3://isd-labels/kaguya/label.lbl|true|<nil>
	// |false|S3 url needs a bucket and a key: s3://isd-labels
}

func Example_makeRequest() {
	req, err := makeRequest("s3://labels/a.lbl", []string{"s3://kernels/lsk/naif0012.tls", "s3://kernels/ck/a.tsc"})
	fmt.Printf("%v|%v|%v|%v|%v\n", req.Bucket, req.Path, req.KernelBucket, req.Kernels, err)

	_, err = makeRequest("s3://labels/a.lbl", []string{"s3://kernels/lsk/naif0012.tls", "s3://other/ck/a.tsc"})
	fmt.Println(err)

	_, err = makeRequest("a.lbl", []string{"s3://kernels/lsk/naif0012.tls"})
	fmt.Println(err)

	_, err = makeRequest("", nil)
	fmt.Println(err)

	// Output:
	// labels|a.lbl|kernels|[lsk/naif0012.tls ck/a.tsc]|<nil>
	// Kernels must all be in one bucket, found kernels and other
	// Kernel s3://kernels/lsk/naif0012.tls and label a.lbl must both be local or both in S3
	// No label given, use -label
}

func Test_RunPrintsISD(t *testing.T) {
	fs := fileaccess.NewMemoryAccess()
	fs.WriteObject("", "data/"+fixtures.KaguyaTcPds3, fixtures.Read(fixtures.KaguyaTcPds3))
	for _, k := range fixtures.KaguyaKernels {
		fs.WriteObject("", "kernels/"+k, fixtures.Read(k))
	}

	var out bytes.Buffer
	err := run(context.Background(), makeServices(fs), "data/"+fixtures.KaguyaTcPds3, kernelPaths("kernels", fixtures.KaguyaKernels), "", &out)
	require.NoError(t, err)

	doc := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "USGS_ASTRO_LINE_SCANNER_SENSOR_MODEL", doc["name_model"])
	assert.Contains(t, out.String(), "\n    \"name_model\"")
}

func Test_RunWritesLocalFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range append([]string{fixtures.CassiniIssPds3}, fixtures.CassiniKernels...) {
		require.NoError(t, os.WriteFile(dir+"/"+name, fixtures.Read(name), 0644))
	}

	fs := &fileaccess.FSAccess{}
	var out bytes.Buffer
	err := run(context.Background(), makeServices(fs), dir+"/"+fixtures.CassiniIssPds3, kernelPaths(dir, fixtures.CassiniKernels), dir+"/out/cassini.json", &out)
	require.NoError(t, err)
	assert.Equal(t, "Wrote ISD from generic-pds3-framer to "+dir+"/out/cassini.json\n", out.String())

	data, err := os.ReadFile(dir + "/out/cassini.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ikid":-82360`)
}

func Test_RunFailures(t *testing.T) {
	fs := fileaccess.NewMemoryAccess()
	svcs := makeServices(fs)
	var out bytes.Buffer

	err := run(context.Background(), svcs, "missing.lbl", nil, "", &out)
	assert.ErrorContains(t, err, "Failed to read label")

	err = run(context.Background(), svcs, "label.lbl", nil, "s3://output/isd.json", &out)
	assert.EqualError(t, err, "Output s3://output/isd.json and label label.lbl must both be local or both in S3")
	assert.Empty(t, out.String())
}
