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

// Generator configuration as read from a JSON file and ISDGEN_CONFIG_* environment variables
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pixlise/isd-generator/core/logger"
)

////////////////////////////////////////////////////////////////////////////////////////////////////////////
// Configuration for the generator executables

// GeneratorConfig combines env vars and config JSON values
type GeneratorConfig struct {
	EnvironmentName string

	LogLevel logger.LogLevel

	// Where kernels are read from, and the ones furnished for every label on top of any the
	// request names
	KernelBucket string
	KernelPaths  []string

	LabelBucket  string
	OutputBucket string

	// Mongo connection, blank for a local DB. ISD memoisation is off if no DB is configured
	MongoSecret   string
	MemoMaxAgeSec uint32

	SentryEndpoint string

	MetricsPort int32
	APIPort     int32
}

const EnvPrefix = "ISDGEN_CONFIG_"

const (
	defaultEnvironment   = "local"
	defaultMemoMaxAgeSec = 30 * 24 * 60 * 60
	defaultMetricsPort   = 2112
	defaultAPIPort       = 8080
)

func NewConfigFromFile(configFilePath string) (GeneratorConfig, error) {
	var cfg GeneratorConfig

	customConfig, err := os.ReadFile(configFilePath)
	if err != nil {
		return cfg, fmt.Errorf("could not read config file at %s", configFilePath)
	}
	return buildConfig(customConfig)
}

// NewConfigFromEnv - for when there's no file, eg in a lambda. Everything comes from env vars
func NewConfigFromEnv() (GeneratorConfig, error) {
	return buildConfig(nil)
}

func buildConfig(configJson []byte) (GeneratorConfig, error) {
	var cfg GeneratorConfig

	if len(configJson) > 0 {
		err := json.Unmarshal(configJson, &cfg)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse custom config: %v", err)
		}
	}

	// Override Config with any values explicitly set in Env Vars (ISDGEN_CONFIG_*)
	// NOTE: For []string slices, pass in a comma-separated string, for LogLevel the level name
	// also works. Ex: export ISDGEN_CONFIG_KernelPaths="lsk/naif0012.tls,ik/selene_tc_mi.ti"
	reflection := reflect.ValueOf(&cfg).Elem()
	for i := 0; i < reflection.NumField(); i++ {
		fieldName := reflection.Type().Field(i).Name
		field := reflection.Field(i)
		envName := EnvPrefix + fieldName

		val, present := os.LookupEnv(envName)
		if !present {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(val)

		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				slicedVal := []string{}
				for _, item := range strings.Split(val, ",") {
					if item = strings.TrimSpace(item); len(item) > 0 {
						slicedVal = append(slicedVal, item)
					}
				}
				field.Set(reflect.ValueOf(slicedVal))
			}

		case reflect.Int, reflect.Int32:
			n, err := strconv.Atoi(val)
			if err != nil && field.Type() == reflect.TypeOf(cfg.LogLevel) {
				var level logger.LogLevel
				level, err = logger.GetLogLevel(val)
				n = int(level)
			}
			if err != nil {
				return cfg, fmt.Errorf("could not cast value %v=%v to int: %v", envName, val, err)
			}
			field.SetInt(int64(n))

		case reflect.Uint32:
			n, err := strconv.ParseUint(val, 10, 32)
			if err != nil {
				return cfg, fmt.Errorf("could not cast value %v=%v to uint: %v", envName, val, err)
			}
			field.SetUint(n)
		}
	}

	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *GeneratorConfig) {
	if len(cfg.EnvironmentName) <= 0 {
		cfg.EnvironmentName = defaultEnvironment
	}
	if cfg.MemoMaxAgeSec <= 0 {
		cfg.MemoMaxAgeSec = defaultMemoMaxAgeSec
	}
	if cfg.MetricsPort <= 0 {
		cfg.MetricsPort = defaultMetricsPort
	}
	if cfg.APIPort <= 0 {
		cfg.APIPort = defaultAPIPort
	}
	if len(cfg.KernelBucket) <= 0 {
		cfg.KernelBucket = cfg.LabelBucket
	}
}

// Init config. Loads .env files first (just .env in the working dir if none are named), so their
// values are seen as env vars, then reads the config file if one is given
func Init(configFilePath string, envFiles ...string) (GeneratorConfig, error) {
	// Missing .env files are fine
	_ = godotenv.Load(envFiles...)

	if len(configFilePath) > 0 {
		return NewConfigFromFile(configFilePath)
	}
	return NewConfigFromEnv()
}
