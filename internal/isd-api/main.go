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
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/pixlise/isd-generator/api/config"
	"github.com/pixlise/isd-generator/api/endpoints"
	"github.com/pixlise/isd-generator/api/services"
	"github.com/pixlise/isd-generator/core/api"
	"github.com/pixlise/isd-generator/core/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const memoGarbageCollectInterval = time.Hour

func main() {
	var argConfig = flag.String("config", "", "Config file. If blank, config comes from env vars")
	flag.Parse()

	cfg := loadConfig(*argConfig)

	iLog := &logger.StdOutLogger{}
	iLog.SetLogLevel(cfg.LogLevel)
	defer logger.HandlePanicWithLog(iLog)

	services.InitSentry(cfg, iLog)

	// No file access given, so labels and kernels are read from S3
	svcs, err := services.InitServices(cfg, nil, iLog)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// This is for prometheus
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		http.ListenAndServe(fmt.Sprintf(":%v", cfg.MetricsPort), nil)
	}()

	if svcs.Store != nil {
		go collectGarbage(svcs)
	}

	router := endpoints.MakeRouter(svcs)

	svcs.Log.Infof("API version \"%v\" started on port %v...", services.ApiVersion, cfg.APIPort)

	log.Fatal(
		http.ListenAndServe(fmt.Sprintf(":%v", cfg.APIPort),
			handlers.CORS(
				handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type"}),
				handlers.AllowedMethods([]string{"GET", "POST", "HEAD", "OPTIONS"}),
				handlers.ExposedHeaders([]string{"X-ISD-Driver", "X-ISD-Memoised"}),
				handlers.AllowedOrigins([]string{"*"}))(router.Router)))
}

func loadConfig(configPath string) config.GeneratorConfig {
	cfg, err := config.Init(configPath)
	if err != nil {
		log.Fatalf("Something went wrong with API config. Error: %v\n", err)
	}

	// Show the config
	cfgJSON, err := json.MarshalIndent(cfg, "", api.PrettyPrintIndentForJSON)
	if err != nil {
		log.Fatalf("Error trying to display config\n")
	}

	log.Println(string(cfgJSON))
	return cfg
}

// Drops memoised ISDs nobody has asked for in a while
func collectGarbage(svcs *services.GeneratorServices) {
	ticker := time.NewTicker(memoGarbageCollectInterval)
	defer ticker.Stop()

	for range ticker.C {
		deleted, err := svcs.Store.CollectGarbage(context.Background(), svcs.Config.MemoMaxAgeSec)
		if err != nil {
			svcs.Log.Errorf("%v", err)
			continue
		}
		svcs.Log.Infof("Removed %v memoised ISDs not read in %v sec", deleted, svcs.Config.MemoMaxAgeSec)
	}
}
