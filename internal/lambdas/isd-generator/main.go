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

package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/pixlise/isd-generator/api/config"
	"github.com/pixlise/isd-generator/api/isdgen"
	"github.com/pixlise/isd-generator/api/services"
	"github.com/pixlise/isd-generator/core/awsutil"
	"github.com/pixlise/isd-generator/core/logger"
	"github.com/pkg/errors"
)

// Set up once per lambda instance, reused across invocations
var svcs *services.GeneratorServices

// Where generated ISDs go in the output bucket. Puts under here don't trigger generation, in case
// the output bucket is also the label bucket
const isdPrefix = "isd/"

func HandleRequest(ctx context.Context, event awsutil.Event) (string, error) {
	defer logger.HandlePanicWithLog(svcs.Log)
	return handleEvent(ctx, svcs, event)
}

func handleEvent(ctx context.Context, svcs *services.GeneratorServices, event awsutil.Event) (string, error) {
	objects, err := event.Objects()
	if err != nil {
		return "", err
	}
	if len(objects) <= 0 {
		return "", errors.New("Event refers to no S3 objects")
	}

	outBucket := svcs.Config.OutputBucket
	written := []string{}
	for _, obj := range objects {
		if obj.Bucket == outBucket && strings.HasPrefix(obj.Key, isdPrefix) {
			svcs.Log.Debugf("Skipping generated ISD: %v/%v", obj.Bucket, obj.Key)
			continue
		}

		req := isdgen.Request{Bucket: obj.Bucket, Path: obj.Key}
		_, outPath, err := svcs.Generator.GenerateToFile(ctx, req, outBucket, "")
		if err != nil {
			return "", errors.Wrapf(err, "Failed to generate ISD for s3://%v/%v", obj.Bucket, obj.Key)
		}
		written = append(written, fmt.Sprintf("s3://%v/%v", outBucket, outPath))
	}

	if svcs.Store != nil {
		deleted, err := svcs.Store.CollectGarbage(ctx, svcs.Config.MemoMaxAgeSec)
		if err != nil {
			svcs.Log.Errorf("%v", err)
		} else if deleted > 0 {
			svcs.Log.Infof("Removed %v memoised ISDs not read in %v sec", deleted, svcs.Config.MemoMaxAgeSec)
		}
	}

	return strings.Join(written, ","), nil
}

func main() {
	cfg, err := config.Init("")
	if err != nil {
		log.Fatalf("Failed to read config: %v", err)
	}

	iLog := &logger.StdOutLogger{}
	iLog.SetLogLevel(cfg.LogLevel)

	services.InitSentry(cfg, iLog)

	if len(cfg.OutputBucket) <= 0 {
		log.Fatalf("No output bucket configured, set %vOutputBucket", config.EnvPrefix)
	}

	// No file access given, so labels and kernels are read from S3
	svcs, err = services.InitServices(cfg, nil, iLog)
	if err != nil {
		log.Fatalf("%v", err)
	}

	lambda.Start(HandleRequest)
}
