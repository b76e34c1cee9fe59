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

// Generating ISDs end to end: read the label, find the driver for it, furnish kernels, assemble
// and memoise the document
package isdgen

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"

	"github.com/pixlise/isd-generator/api/isdstore"
	"github.com/pixlise/isd-generator/core/driver"
	"github.com/pixlise/isd-generator/core/ephemeris"
	"github.com/pixlise/isd-generator/core/fileaccess"
	"github.com/pixlise/isd-generator/core/isd"
	"github.com/pixlise/isd-generator/core/logger"
	"github.com/pixlise/isd-generator/core/resolver"
	"github.com/pkg/errors"
)

// Request - one label to generate an ISD for. If Content is set it's the label and Path only
// names it, otherwise the label is read from Path in Bucket
type Request struct {
	Bucket  string
	Path    string
	Content []byte

	// Furnished after the generator's default kernels, so they shadow those
	KernelBucket string
	Kernels      []string
}

type Result struct {
	Driver   string
	Document *isd.Document
	JSON     []byte
	Memoised bool
}

type Generator struct {
	FS       fileaccess.FileAccess
	Pool     *ephemeris.KernelPool
	Resolver *resolver.Resolver
	Store    *isdstore.Store // nil to not memoise
	Log      logger.ILogger

	// Furnished for every request
	DefaultKernelBucket string
	DefaultKernels      []string

	// The kernel pool is shared, so one generation at a time gets to furnish into it
	mutex sync.Mutex
}

// Kernels from one bucket, furnished together
type kernelGroup struct {
	bucket string
	paths  []string
}

func (g *Generator) kernelsFor(req Request) []kernelGroup {
	result := []kernelGroup{}
	if len(g.DefaultKernels) > 0 {
		result = append(result, kernelGroup{g.DefaultKernelBucket, g.DefaultKernels})
	}

	if len(req.Kernels) > 0 {
		bucket := req.KernelBucket
		if len(bucket) <= 0 {
			bucket = g.DefaultKernelBucket
		}
		result = append(result, kernelGroup{bucket, req.Kernels})
	}
	return result
}

func (g *Generator) readLabel(req Request) ([]byte, error) {
	if len(req.Content) > 0 {
		return req.Content, nil
	}
	if len(req.Path) <= 0 {
		return nil, errors.New("No label given")
	}

	data, err := g.FS.ReadObject(req.Bucket, req.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read label: %v", path.Join(req.Bucket, req.Path))
	}
	return data, nil
}

// Generate produces the ISD for a label, from the store if it was generated before with the
// same kernels
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	result, err := g.generate(ctx, req)

	outcome := "failed"
	if err == nil {
		outcome = "generated"
		if result.Memoised {
			outcome = "memoised"
		}
	}
	generationDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	return result, err
}

func (g *Generator) generate(ctx context.Context, req Request) (*Result, error) {
	content, err := g.readLabel(req)
	if err != nil {
		return nil, err
	}

	kernels := g.kernelsFor(req)
	kernelNames := []string{}
	for _, group := range kernels {
		for _, p := range group.paths {
			kernelNames = append(kernelNames, path.Join(group.bucket, p))
		}
	}
	key := isdstore.Key(content, kernelNames)

	if result, err := g.memoised(ctx, key, req.Path); err != nil || result != nil {
		return result, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := g.assemble(req.Path, content, kernels)
	if err != nil {
		return nil, err
	}

	if err := g.Store.Put(ctx, key, req.Path, isdstore.Entry{Driver: result.Driver, Document: result.JSON}); err != nil {
		// Not fatal, the ISD is still good
		g.Log.Errorf("%v", err)
	}
	return result, nil
}

func (g *Generator) memoised(ctx context.Context, key string, name string) (*Result, error) {
	entry, err := g.Store.Get(ctx, key)
	if err != nil {
		g.Log.Errorf("%v", err)
		return nil, nil
	}
	if entry == nil {
		if g.Store != nil {
			memoLookups.WithLabelValues("miss").Inc()
		}
		return nil, nil
	}
	memoLookups.WithLabelValues("hit").Inc()

	doc := &isd.Document{}
	if err := json.Unmarshal(entry.Document, doc); err != nil {
		return nil, errors.Wrapf(err, "Failed to decode memoised ISD for %v", name)
	}

	g.Log.Infof("%v: memoised ISD from %v", name, entry.Driver)
	return &Result{Driver: entry.Driver, Document: doc, JSON: entry.Document, Memoised: true}, nil
}

func (g *Generator) assemble(name string, content []byte, kernels []kernelGroup) (*Result, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	// No kernels leaves the provider nil, so drivers needing them fail saying so. Any session
	// sees everything loaded in the pool, so the last one does
	var provider ephemeris.Provider
	for _, group := range kernels {
		session, err := g.Pool.Furnish(g.FS, group.bucket, group.paths...)
		if err != nil {
			return nil, err
		}
		defer session.Close()
		provider = session
	}

	d, err := g.Resolver.Resolve(resolver.Input{Name: name, Content: content, Kernels: provider})
	if err != nil {
		return nil, err
	}

	doc, err := isd.Assemble(d)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to encode ISD for %v", name)
	}

	return &Result{Driver: d.Name(), Document: doc, JSON: data}, nil
}

// GenerateToFile generates the ISD and writes it to outPath in outBucket. A blank outPath puts
// it at the default path for the label
func (g *Generator) GenerateToFile(ctx context.Context, req Request, outBucket string, outPath string) (*Result, string, error) {
	result, err := g.Generate(ctx, req)
	if err != nil {
		return nil, "", err
	}

	if len(outPath) <= 0 {
		outPath = fileaccess.ISDPathForLabel(req.Path)
	}

	if err := g.FS.WriteObject(outBucket, outPath, result.JSON); err != nil {
		return nil, "", errors.Wrapf(err, "Failed to write ISD: %v", path.Join(outBucket, outPath))
	}

	g.Log.Infof("%v: wrote ISD from %v to %v", req.Path, result.Driver, path.Join(outBucket, outPath))
	return result, outPath, nil
}

// Drivers lists the registered compositions in probe order
func (g *Generator) Drivers() []*driver.Composition {
	return g.Resolver.Compositions()
}
