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

// Labels and text kernels shared by tests across packages
package fixtures

import (
	"embed"
	"path"
)

//go:embed test-data
var files embed.FS

const (
	KaguyaTcPds3   = "TC1S2B0_01_06691S820E0465.lbl"
	KaguyaTcIsis   = "TC1S2B0_01_06691S820E0465.cub.lbl"
	KaguyaMiIsis   = "MNA_2B2_01_04192S136E3573.cub.lbl"
	JanusFramer    = "juice_janus_framer.xml"
	JanusPush      = "juice_janus_push.xml"
	CassiniIssPds3 = "CN1563716744_1.lbl"

	LeapSeconds  = "naif0012.tls"
	SeleneFrames = "selene.tf"
	SeleneIK     = "selene_tc_mi.ti"
	SeleneClock  = "selene.tsc"
	JanusIK      = "juice_janus.ti"
	JuiceClock   = "juice.tsc"
	CassiniIK    = "cassini.ti"
	CassiniClock = "cassini.tsc"
)

// Kernel sets, in load order, needed by each label
var (
	KaguyaKernels  = []string{LeapSeconds, SeleneFrames, SeleneIK, SeleneClock}
	JanusKernels   = []string{LeapSeconds, JanusIK, JuiceClock}
	CassiniKernels = []string{LeapSeconds, CassiniIK, CassiniClock}
)

// Read returns the named file, panicking if it doesn't exist
func Read(name string) []byte {
	data, err := files.ReadFile(path.Join("test-data", name))
	if err != nil {
		panic(err)
	}
	return data
}

// ReadAll reads several files in order
func ReadAll(names []string) [][]byte {
	result := [][]byte{}
	for _, name := range names {
		result = append(result, Read(name))
	}
	return result
}
