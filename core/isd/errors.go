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

package isd

import (
	"fmt"
)

// AssemblyError - a property the driver's sensor geometry, distortion model or the ISD itself
// requires couldn't be read. Unlike a probe rejection during resolution, this is fatal
type AssemblyError struct {
	Driver   string
	Property string
	Err      error
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("driver %v can't assemble ISD, %v failed: %v", e.Driver, e.Property, e.Err)
}

func (e *AssemblyError) Unwrap() error {
	return e.Err
}
