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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeResolved = "resolved"
	outcomeNoDriver = "no_driver"
	noDriver        = "none"
)

var (
	resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "isd_resolutions_total",
		Help: "Inputs resolved to a driver, by driver and outcome.",
	}, []string{"driver", "outcome"})
	probeRejects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "isd_probe_rejects_total",
		Help: "Inputs a composition was offered and rejected.",
	}, []string{"driver"})
	resolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "isd_resolve_duration_seconds",
		Help: "Time taken to resolve an input to a driver.",
	})
)
