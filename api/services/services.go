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

package services

import (
	"os"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/getsentry/sentry-go"
	"github.com/pixlise/isd-generator/api/config"
	"github.com/pixlise/isd-generator/api/isdgen"
	"github.com/pixlise/isd-generator/api/isdstore"
	"github.com/pixlise/isd-generator/core/awsutil"
	"github.com/pixlise/isd-generator/core/ephemeris"
	"github.com/pixlise/isd-generator/core/fileaccess"
	"github.com/pixlise/isd-generator/core/logger"
	"github.com/pixlise/isd-generator/core/missions"
	"github.com/pixlise/isd-generator/core/mongoDBConnection"
	"github.com/pixlise/isd-generator/core/resolver"
	"github.com/pixlise/isd-generator/core/timestamper"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// Set at build time with -ldflags "-X github.com/pixlise/isd-generator/api/services.ApiVersion=..."
var ApiVersion string
var GitHash string

const databaseName = "isdgen"

// GeneratorServices - everything the command line tool, lambda and API share. Instead of
// globals, this gets passed around so tests can swap in memory file access and mock DBs
type GeneratorServices struct {
	// Configuration read in on startup
	Config config.GeneratorConfig

	Log logger.ILogger

	// Nil if running on local files only
	AWSSession *session.Session

	// Labels, kernels and ISD output
	FS fileaccess.FileAccess

	// Nil if ISDs aren't memoised
	Mongo *mongo.Client
	Store *isdstore.Store

	Generator *isdgen.Generator
}

// MemoisationConfigured - memoising needs a remote DB secret, or LOCAL_MONGO_URI pointing at a
// local one
func MemoisationConfigured(cfg config.GeneratorConfig) bool {
	_, localDB := os.LookupEnv("LOCAL_MONGO_URI")
	return len(cfg.MongoSecret) > 0 || localDB
}

// InitServices connects to what cfg says to. If fs is nil, files are accessed in S3
func InitServices(cfg config.GeneratorConfig, fs fileaccess.FileAccess, iLog logger.ILogger) (*GeneratorServices, error) {
	svcs := &GeneratorServices{Config: cfg, Log: iLog, FS: fs}

	if fs == nil || len(cfg.MongoSecret) > 0 {
		sess, err := awsutil.GetSession()
		if err != nil {
			return nil, errors.Wrap(err, "Failed to create AWS session")
		}
		svcs.AWSSession = sess
	}

	if svcs.FS == nil {
		svcs.FS = fileaccess.MakeS3Access(awsutil.GetS3(svcs.AWSSession))
	}

	if MemoisationConfigured(cfg) {
		client, err := mongoDBConnection.Connect(svcs.AWSSession, cfg.MongoSecret, iLog)
		if err != nil {
			return nil, errors.Wrap(err, "Failed to connect to mongo")
		}
		svcs.Mongo = client

		db := client.Database(mongoDBConnection.GetDatabaseName(databaseName, cfg.EnvironmentName))
		svcs.Store = isdstore.New(db, &timestamper.UnixTimeNowStamper{}, iLog)
	} else {
		iLog.Infof("No DB configured, ISDs won't be memoised")
	}

	gen, err := NewGenerator(cfg, svcs.FS, svcs.Store, iLog)
	if err != nil {
		return nil, err
	}
	svcs.Generator = gen

	return svcs, nil
}

// NewGenerator makes a generator over every mission driver, furnishing cfg's kernels for all
// requests. store can be nil
func NewGenerator(cfg config.GeneratorConfig, fs fileaccess.FileAccess, store *isdstore.Store, iLog logger.ILogger) (*isdgen.Generator, error) {
	r, err := resolver.New(iLog, missions.Default()...)
	if err != nil {
		return nil, err
	}

	return &isdgen.Generator{
		FS:                  fs,
		Pool:                ephemeris.NewKernelPool(iLog),
		Resolver:            r,
		Store:               store,
		Log:                 iLog,
		DefaultKernelBucket: cfg.KernelBucket,
		DefaultKernels:      cfg.KernelPaths,
	}, nil
}

// InitSentry - does nothing if no endpoint is configured
func InitSentry(cfg config.GeneratorConfig, iLog logger.ILogger) {
	if len(cfg.SentryEndpoint) <= 0 {
		return
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryEndpoint,
		Environment: cfg.EnvironmentName,
		Release:     ApiVersion,
	}); err != nil {
		iLog.Errorf("Sentry initialization failed: %v", err)
	}
}
