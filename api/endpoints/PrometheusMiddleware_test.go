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
	"testing"

	"github.com/pixlise/isd-generator/core/logger"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestCount(t *testing.T, path string) float64 {
	m := &dto.Metric{}
	require.NoError(t, httpRequests.WithLabelValues(path).Write(m))
	return m.GetCounter().GetValue()
}

func Test_PrometheusMiddleware(t *testing.T) {
	router := MakeRouter(makeTestServices(&logger.NullLogger{}))

	before := requestCount(t, "/drivers")
	executeRequest(newRequest("GET", "/drivers", nil), router.Router)
	executeRequest(newRequest("GET", "/drivers?x=1", nil), router.Router)

	assert.Equal(t, before+2, requestCount(t, "/drivers"))
}
