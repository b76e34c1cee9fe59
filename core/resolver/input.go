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

package resolver

import (
	"path"

	"github.com/pixlise/isd-generator/core/ephemeris"
	"github.com/pixlise/isd-generator/core/fileaccess"
	"github.com/pkg/errors"
)

// Input - a label to resolve. Name identifies it in errors and logs, Kernels may be nil when
// nothing was furnished
type Input struct {
	Name    string
	Content []byte
	Kernels ephemeris.Provider
}

// InputFromFile reads a label through file access. The input is named by the label path
func InputFromFile(fs fileaccess.FileAccess, bucket string, labelPath string, kernels ephemeris.Provider) (Input, error) {
	data, err := fs.ReadObject(bucket, labelPath)
	if err != nil {
		return Input{}, errors.Wrapf(err, "Failed to read label: %v", path.Join(bucket, labelPath))
	}
	return Input{Name: labelPath, Content: data, Kernels: kernels}, nil
}
