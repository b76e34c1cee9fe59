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

package isdgen

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "isd_generation_duration_seconds",
		Help:    "Time to produce an ISD, including memoised ones.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	}, []string{"outcome"})

	memoLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "isd_memo_lookups_total",
		Help: "Memoised ISD lookups.",
	}, []string{"result"})
)
