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

// Picks the driver composition able to read an input. Compositions are offered the input in
// registration order and the first to adopt it wins, so order settles ties between
// compositions that could read the same kind of label
package resolver

import (
	"fmt"
	"strings"
	"time"

	"github.com/pixlise/isd-generator/core/driver"
	"github.com/pixlise/isd-generator/core/logger"
)

// State of one resolution
type State int

const (
	Probing State = iota
	Resolved
)

func (s State) String() string {
	if s == Resolved {
		return "RESOLVED"
	}
	return "PROBING"
}

// Resolver - an ordered registry of compositions
type Resolver struct {
	compositions []*driver.Composition
	log          logger.ILogger
}

// New checks every composition is complete and uniquely named
func New(log logger.ILogger, compositions ...*driver.Composition) (*Resolver, error) {
	names := map[string]bool{}
	for _, c := range compositions {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if names[c.Name] {
			return nil, fmt.Errorf("composition %v registered twice", c.Name)
		}
		names[c.Name] = true
	}

	if len(compositions) == 0 {
		return nil, fmt.Errorf("no compositions registered")
	}

	return &Resolver{compositions: compositions, log: log}, nil
}

// Compositions in the order they're tried
func (r *Resolver) Compositions() []*driver.Composition {
	return append([]*driver.Composition{}, r.compositions...)
}

// Resolution - what happened while resolving one input
type Resolution struct {
	State    State
	Driver   *driver.Driver
	Attempts []Attempt
}

// Resolve offers the input to each composition until one adopts it. Rejections are logged at
// debug level, only NoDriverFoundError is returned if nothing adopts the input
func (r *Resolver) Resolve(in Input) (*driver.Driver, error) {
	res := r.Trace(in)
	if res.State != Resolved {
		return nil, &NoDriverFoundError{Input: in.Name, Attempts: res.Attempts}
	}
	return res.Driver, nil
}

// Trace resolves an input and returns every rejection along the way, for diagnostics
func (r *Resolver) Trace(in Input) Resolution {
	start := time.Now()
	res := Resolution{State: Probing, Attempts: []Attempt{}}

	for _, c := range r.compositions {
		result := c.TryAdopt(in.Name, in.Content, in.Kernels)
		if result.OK() {
			res.State = Resolved
			res.Driver = result.Driver

			r.log.Infof("%v: %v by %v (%v) after %v rejections", in.Name, res.State, c.Name, c.Describe(), len(res.Attempts))
			resolutions.WithLabelValues(c.Name, outcomeResolved).Inc()
			resolveDuration.Observe(time.Since(start).Seconds())
			return res
		}

		res.Attempts = append(res.Attempts, Attempt{Composition: c.Name, Reason: result.Err})
		probeRejects.WithLabelValues(c.Name).Inc()
		r.log.Debugf("%v: %v rejected: %v", in.Name, c.Name, result.Err)
	}

	names := []string{}
	for _, a := range res.Attempts {
		names = append(names, a.Composition)
	}
	r.log.Infof("%v: no driver found, tried %v", in.Name, strings.Join(names, ", "))
	resolutions.WithLabelValues(noDriver, outcomeNoDriver).Inc()
	resolveDuration.Observe(time.Since(start).Seconds())
	return res
}
