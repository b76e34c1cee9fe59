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

package driver

import (
	"fmt"
)

// UnsupportedPropertyError - no layer of a driver implements the property, or a capability
// deliberately left it unimplemented
type UnsupportedPropertyError struct {
	Driver   string
	Property Property
}

func (e *UnsupportedPropertyError) Error() string {
	return fmt.Sprintf("driver %v does not support %v", e.Driver, e.Property)
}

// WrongTypeError - a property was read through a typed accessor that doesn't match its value
type WrongTypeError struct {
	Driver   string
	Property Property
	Value    interface{}
	Want     string
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("driver %v: %v is %T, expected %v", e.Driver, e.Property, e.Value, e.Want)
}

// AbsentPropertyError - a property was read as required but the driver reports it as absent
type AbsentPropertyError struct {
	Driver   string
	Property Property
}

func (e *AbsentPropertyError) Error() string {
	return fmt.Sprintf("driver %v: %v is absent", e.Driver, e.Property)
}
