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
	"fmt"
	"strings"
)

// Attempt - a composition that rejected the input, and why
type Attempt struct {
	Composition string
	Reason      error
}

// NoDriverFoundError - no registered composition could adopt the input. The individual
// rejections are kept for diagnostics but aren't part of the message
type NoDriverFoundError struct {
	Input    string
	Attempts []Attempt
}

func (e *NoDriverFoundError) Error() string {
	names := []string{}
	for _, a := range e.Attempts {
		names = append(names, a.Composition)
	}
	return fmt.Sprintf("no driver found for \"%v\" (tried %v)", e.Input, strings.Join(names, ", "))
}
