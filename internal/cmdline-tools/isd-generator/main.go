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
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pixlise/isd-generator/api/config"
	"github.com/pixlise/isd-generator/api/services"
	"github.com/pixlise/isd-generator/core/fileaccess"
	"github.com/pixlise/isd-generator/core/logger"
)

func main() {
	// Stdout may be the ISD itself, so everything else goes to stderr
	fmt.Fprintln(os.Stderr, "==============================")
	fmt.Fprintln(os.Stderr, "=  ISD generator             =")
	fmt.Fprintln(os.Stderr, "==============================")

	var argLabel = flag.String("label", "", "Path or s3:// url of the label to generate an ISD for")
	var argKernels = flag.String("kernels", "", "Comma-separated paths or s3:// urls of kernels to furnish, in load order")
	var argOut = flag.String("out", "", "Path or s3:// url to write the ISD to. If blank, it's printed")
	var argConfig = flag.String("config", "", "Config file. If blank, config comes from env vars")

	flag.Parse()

	iLog := logger.NewStdErrLogger()
	defer logger.HandlePanicWithLog(iLog)

	cfg, err := config.Init(*argConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
		printFail()
		os.Exit(1)
	}
	iLog.SetLogLevel(cfg.LogLevel)

	kernels := []string{}
	for _, k := range strings.Split(*argKernels, ",") {
		if k = strings.TrimSpace(k); len(k) > 0 {
			kernels = append(kernels, k)
		}
	}

	inS3 := strings.HasPrefix(*argLabel, s3Prefix)
	var fs fileaccess.FileAccess
	if !inS3 {
		fs = &fileaccess.FSAccess{}
	}

	svcs, err := services.InitServices(cfg, fs, iLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialise: %v\n", err)
		printFail()
		os.Exit(1)
	}

	if err := run(context.Background(), svcs, *argLabel, kernels, *argOut, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		printFail()
		os.Exit(1)
	}
}

func printFail() {
	fmt.Fprintln(os.Stderr, "=====================")
	fmt.Fprintln(os.Stderr, "=  FAILED           =")
	fmt.Fprintln(os.Stderr, "=====================")
}
