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

package fileaccess

import (
	"fmt"
	"os"
)

type testData struct {
	Name        string `json:"name"`
	Value       int    `json:"value"`
	Description string `json:"description"`
}

func runTest(fs FileAccess, bucket string) {
	// Write pretty printed JSON
	fmt.Printf("JSON: %v\n", fs.WriteJSON(bucket, "the-files/pretty.json", testData{Name: "Hello", Value: 778, Description: "World"}))
	fmt.Printf("JSON subdir: %v\n", fs.WriteJSON(bucket, "the-files/subdir/isd.json", testData{Name: "ISD", Value: 1, Description: "Generated"}))

	// Write binary data
	fmt.Printf("Binary: %v\n", fs.WriteObject(bucket, "the-files/data.bin", []byte{250, 130, 10, 0, 33}))
	fmt.Printf("Label: %v\n", fs.WriteObject(bucket, "the-files/subdir/image.lbl", []byte("PDS_VERSION_ID = PDS3\nEND\n")))

	// Read each back/verify their contents
	var contents testData
	err := fs.ReadJSON(bucket, "the-files/pretty.json", &contents, false)
	fmt.Printf("Read JSON: %v, %v\n", err, contents)

	data, err := fs.ReadObject(bucket, "the-files/data.bin")
	fmt.Printf("Read Binary: %v, %v\n", err, data)

	// Read bad path, then check that this is a not found error
	_, err = fs.ReadObject(bucket, "the-files/missing.lbl")
	fmt.Printf("Read bad path, got not found error: %v\n", fs.IsNotFoundError(err))

	// Missing JSON can be treated as empty
	contents = testData{Name: "Unchanged"}
	err = fs.ReadJSON(bucket, "the-files/prettyzzz.json", &contents, true)
	fmt.Printf("Read missing JSON as empty: %v, %v\n", err, contents)

	err = fs.ReadJSON(bucket, "the-files/prettyzzz.json", &contents, false)
	fmt.Printf("Read missing JSON, got not found error: %v\n", fs.IsNotFoundError(err))

	// Read the binary file as JSON, should fail to deserialise and get a different error code
	err = fs.ReadJSON(bucket, "the-files/data.bin", &contents, false)
	fmt.Printf("Read bad JSON: %v\n", err)
	fmt.Printf("Not a \"not found\" error: %v\n", !fs.IsNotFoundError(err))

	// List files
	listing, err := fs.ListObjects(bucket, "the-files/")
	fmt.Printf("Listing: %v, %v\n", err, listing)

	listing, err = fs.ListObjects(bucket, "the-files/subdir")
	fmt.Printf("Listing subdir: %v, %v\n", err, listing)

	listing, err = fs.ListObjects(bucket, "the-files/subdir/im")
	fmt.Printf("Listing with prefix: %v, %v\n", err, listing)

	listing, err = fs.ListObjects(bucket, "the-files/non-existant-path/ug")
	fmt.Printf("Listing bad path: %v, %v\n", err, listing)

	// Delete
	fmt.Printf("Delete bin: %v\n", fs.DeleteObject(bucket, "the-files/data.bin"))
	fmt.Printf("Delete again, got not found error: %v\n", fs.IsNotFoundError(fs.DeleteObject(bucket, "the-files/data.bin")))

	listing, err = fs.ListObjects(bucket, "")
	fmt.Printf("Listing2: %v, %v\n", err, listing)
}

func Example_localFileSystem() {
	// First, clear any files we may have there already
	fmt.Printf("Setup: %v\n", os.RemoveAll("./test-output/"))

	runTest(&FSAccess{}, "./test-output")

	// Output:
	// Setup: <nil>
	// JSON: <nil>
	// JSON subdir: <nil>
	// Binary: <nil>
	// Label: <nil>
	// Read JSON: <nil>, {Hello 778 World}
	// Read Binary: <nil>, [250 130 10 0 33]
	// Read bad path, got not found error: true
	// Read missing JSON as empty: <nil>, {Unchanged 0 }
	// Read missing JSON, got not found error: true
	// Read bad JSON: invalid character 'ú' looking for beginning of value
	// Not a "not found" error: true
	// Listing: <nil>, [the-files/data.bin the-files/pretty.json the-files/subdir/image.lbl the-files/subdir/isd.json]
	// Listing subdir: <nil>, [the-files/subdir/image.lbl the-files/subdir/isd.json]
	// Listing with prefix: <nil>, [the-files/subdir/image.lbl]
	// Listing bad path: <nil>, []
	// Delete bin: <nil>
	// Delete again, got not found error: true
	// Listing2: <nil>, [the-files/pretty.json the-files/subdir/image.lbl the-files/subdir/isd.json]
}

func Example_memory() {
	runTest(NewMemoryAccess(), "memory")

	// Output:
	// JSON: <nil>
	// JSON subdir: <nil>
	// Binary: <nil>
	// Label: <nil>
	// Read JSON: <nil>, {Hello 778 World}
	// Read Binary: <nil>, [250 130 10 0 33]
	// Read bad path, got not found error: true
	// Read missing JSON as empty: <nil>, {Unchanged 0 }
	// Read missing JSON, got not found error: true
	// Read bad JSON: invalid character 'ú' looking for beginning of value
	// Not a "not found" error: true
	// Listing: <nil>, [the-files/data.bin the-files/pretty.json the-files/subdir/image.lbl the-files/subdir/isd.json]
	// Listing subdir: <nil>, [the-files/subdir/image.lbl the-files/subdir/isd.json]
	// Listing with prefix: <nil>, [the-files/subdir/image.lbl]
	// Listing bad path: <nil>, []
	// Delete bin: <nil>
	// Delete again, got not found error: true
	// Listing2: <nil>, [the-files/pretty.json the-files/subdir/image.lbl the-files/subdir/isd.json]
}

func Example_splitS3Url() {
	for _, url := range []string{"s3://kernels-bucket/naif/lsk/naif0012.tls", "s3://kernels-bucket", "s3://kernels-bucket/", "/local/naif0012.tls"} {
		bucket, key, err := SplitS3Url(url)
		fmt.Printf("%v|%v|%v\n", bucket, key, err)
	}

	// Output:
	// kernels-bucket|naif/lsk/naif0012.tls|<nil>
	// ||S3 url needs a bucket and a key: s3://kernels-bucket
	// ||S3 url needs a bucket and a key: s3://kernels-bucket/
	// ||not an S3 url: /local/naif0012.tls
}

func Example_iSDPathForLabel() {
	fmt.Println(ISDPathForLabel("labels/TC1S2B0_01_06691S820E0465.cub.lbl"))
	fmt.Println(ISDPathForLabel("s3-in/juice_janus_push.xml"))
	fmt.Println(ISDPathForLabel("Hope \"this\" isn't $expensive!.LBL"))
	fmt.Println(ISDPathForLabel("CN1563716744_1.lbl"))

	// Output:
	// isd/TC1S2B0_01_06691S820E0465.json
	// isd/juice_janus_push.json
	// isd/Hope this isnt expensive.json
	// isd/CN1563716744_1.json
}
