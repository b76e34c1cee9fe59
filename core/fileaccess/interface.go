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

// Reading and writing labels, kernels and ISD documents. A "bucket" is an S3 bucket name or a
// local root directory, so the rest of the code doesn't care where the files live
package fileaccess

import (
	"fmt"
	"path"
	"strings"
)

type FileAccess interface {
	// Paths of everything under prefix, relative to the bucket
	ListObjects(bucket string, prefix string) ([]string, error)

	ReadObject(bucket string, path string) ([]byte, error)
	WriteObject(bucket string, path string, data []byte) error

	// Reads and decodes JSON. If emptyIfNotFound, a missing file leaves itemsPtr untouched
	ReadJSON(bucket string, path string, itemsPtr interface{}, emptyIfNotFound bool) error
	WriteJSON(bucket string, path string, itemsPtr interface{}) error

	DeleteObject(bucket string, path string) error

	IsNotFoundError(err error) bool
}

const jsonIndent = "    "

// SplitS3Url turns s3://bucket/some/key into bucket and key
func SplitS3Url(url string) (string, string, error) {
	trimmed := strings.TrimPrefix(url, "s3://")
	if trimmed == url {
		return "", "", fmt.Errorf("not an S3 url: %v", url)
	}

	slashPos := strings.Index(trimmed, "/")
	if slashPos <= 0 || slashPos == len(trimmed)-1 {
		return "", "", fmt.Errorf("S3 url needs a bucket and a key: %v", url)
	}

	return trimmed[0:slashPos], trimmed[slashPos+1:], nil
}

// ISDPathForLabel is where the ISD generated from a label gets written, relative to an output
// root: isd/<label name without extension>.json. Characters S3 keys choke on are removed
func ISDPathForLabel(labelPath string) string {
	name := path.Base(labelPath)
	for {
		ext := path.Ext(name)
		if len(ext) == 0 || ext == name {
			break
		}
		name = strings.TrimSuffix(name, ext)
	}

	name = strings.NewReplacer("?", "", "$", "", "#", "", "!", "", "'", "", "\"", "", "\\", "_").Replace(name)
	if len(name) == 0 {
		name = "label"
	}
	return path.Join("isd", name+".json")
}
