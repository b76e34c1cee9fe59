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

package ephemeris

import (
	"fmt"
	"path"
	"sync"

	"github.com/pixlise/isd-generator/core/fileaccess"
	"github.com/pixlise/isd-generator/core/logger"
	"github.com/pkg/errors"
)

type loadedKernel struct {
	id          int
	name        string
	assignments []assignment
}

// KernelPool - text kernels loaded in order. A variable's value comes from replaying every loaded
// kernel's assignments in load order, so a later kernel shadows an earlier one and unloading it
// brings the earlier value back. There is one pool per process, access it through a Session
type KernelPool struct {
	log    logger.ILogger
	mutex  sync.Mutex
	loaded []loadedKernel
	nextID int
	values map[string][]kernelValue
}

func NewKernelPool(log logger.ILogger) *KernelPool {
	return &KernelPool{log: log, values: map[string][]kernelValue{}}
}

// Loaded lists kernel names in load order
func (p *KernelPool) Loaded() []string {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	result := []string{}
	for _, k := range p.loaded {
		result = append(result, k.name)
	}
	return result
}

func (p *KernelPool) load(name string, raw []byte) (int, error) {
	assignments, err := parseKernel(string(raw))
	if err != nil {
		return 0, errors.Wrapf(err, "failed to parse kernel %v", name)
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.nextID++
	p.loaded = append(p.loaded, loadedKernel{id: p.nextID, name: name, assignments: assignments})
	p.rebuild()

	p.log.Debugf("Loaded kernel %v (%v variables)", name, len(assignments))
	return p.nextID, nil
}

func (p *KernelPool) unload(ids []int) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	remove := map[int]bool{}
	for _, id := range ids {
		remove[id] = true
	}

	kept := []loadedKernel{}
	for _, k := range p.loaded {
		if remove[k.id] {
			p.log.Debugf("Unloaded kernel %v", k.name)
		} else {
			kept = append(kept, k)
		}
	}
	p.loaded = kept
	p.rebuild()
}

func (p *KernelPool) rebuild() {
	values := map[string][]kernelValue{}
	for _, k := range p.loaded {
		for _, a := range k.assignments {
			if a.append {
				values[a.name] = append(values[a.name], a.values...)
			} else {
				values[a.name] = append([]kernelValue{}, a.values...)
			}
		}
	}
	p.values = values
}

func (p *KernelPool) lookup(keyword string) ([]kernelValue, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	v, ok := p.values[keyword]
	return v, ok
}

// Open starts a session with nothing extra loaded. Kernels can be added with Load, and go away
// again when the session closes
func (p *KernelPool) Open() *Session {
	return &Session{pool: p}
}

// Furnish reads the kernels at paths (in order) and loads them into a new session. If any fails
// to load, the ones already loaded are unloaded again
func (p *KernelPool) Furnish(fs fileaccess.FileAccess, bucket string, paths ...string) (*Session, error) {
	s := p.Open()

	for _, kernelPath := range paths {
		data, err := fs.ReadObject(bucket, kernelPath)
		if err != nil {
			s.Close()
			return nil, errors.Wrapf(err, "failed to read kernel %v", kernelPath)
		}

		if err := s.Load(path.Base(kernelPath), data); err != nil {
			s.Close()
			return nil, err
		}
	}

	return s, nil
}

// WithKernels furnishes the given kernels, runs fn with them available, then unloads them,
// whatever fn returns (or if it panics)
func (p *KernelPool) WithKernels(fs fileaccess.FileAccess, bucket string, paths []string, fn func(Provider) error) error {
	s, err := p.Furnish(fs, bucket, paths...)
	if err != nil {
		return err
	}
	defer s.Close()

	return fn(s)
}

// Session - a scoped handle on the kernel pool. It answers Provider queries from everything
// loaded in the pool, and Close unloads exactly the kernels it loaded itself
type Session struct {
	pool   *KernelPool
	ids    []int
	closed bool
}

func (s *Session) Load(name string, raw []byte) error {
	if s.closed {
		return fmt.Errorf("session closed, can't load %v", name)
	}

	id, err := s.pool.load(name, raw)
	if err != nil {
		return err
	}

	s.ids = append(s.ids, id)
	return nil
}

// Close unloads this session's kernels. Calling it again does nothing
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.pool.unload(s.ids)
	s.ids = nil
}

func (s *Session) values(keyword string) ([]kernelValue, error) {
	if s.closed {
		return nil, fmt.Errorf("%v: session closed", keyword)
	}

	v, ok := s.pool.lookup(keyword)
	if !ok {
		return nil, fmt.Errorf("%v: %w", keyword, ErrNotLoaded)
	}
	return v, nil
}

func (s *Session) Pool(keyword string) ([]float64, error) {
	values, err := s.values(keyword)
	if err != nil {
		return nil, err
	}

	result := make([]float64, 0, len(values))
	for _, v := range values {
		if v.isString {
			return nil, fmt.Errorf("%v holds text, not numbers", keyword)
		}
		result = append(result, v.number)
	}
	return result, nil
}

// BodyCode checks kernel defined names (NAIF_BODY_NAME/NAIF_BODY_CODE, latest wins), then the
// built in table. A name that's an integer is returned as is
func (s *Session) BodyCode(name string) (int, error) {
	if s.closed {
		return 0, fmt.Errorf("body %v: session closed", name)
	}

	want := normaliseName(name)
	names, namesErr := s.values("NAIF_BODY_NAME")
	codes, codesErr := s.values("NAIF_BODY_CODE")

	if namesErr == nil && codesErr == nil && len(names) == len(codes) {
		for c := len(names) - 1; c >= 0; c-- {
			if normaliseName(names[c].text) == want && !codes[c].isString {
				return int(codes[c].number), nil
			}
		}
	}

	if code, ok := builtinBodies[want]; ok {
		return code, nil
	}

	if code, ok := integerName(name); ok {
		return code, nil
	}

	return 0, fmt.Errorf("body \"%v\": %w", name, ErrNotLoaded)
}

// FrameCode reads FRAME_<name>, falling back to a few built in inertial and body frames
func (s *Session) FrameCode(name string) (int, error) {
	if s.closed {
		return 0, fmt.Errorf("frame %v: session closed", name)
	}

	want := normaliseName(name)
	values, err := s.values("FRAME_" + want)
	if err == nil && len(values) == 1 && !values[0].isString {
		return int(values[0].number), nil
	}

	if code, ok := builtinFrames[want]; ok {
		return code, nil
	}

	return 0, fmt.Errorf("frame \"%v\": %w", name, ErrNotLoaded)
}

func (s *Session) SclkToEt(spacecraftID int, clock string) (float64, error) {
	return sclkToEt(spacecraftID, clock, s.Pool)
}

func (s *Session) UtcToEt(utc string) (float64, error) {
	return utcToEt(utc, s.Pool)
}
