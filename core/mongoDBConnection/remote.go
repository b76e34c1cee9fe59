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

package mongoDBConnection

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pixlise/isd-generator/core/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const caBundlePath = "./rds-combined-ca-bundle.pem"

func connectToRemoteMongoDB(endpoint string, username string, password string, iLog logger.ILogger) (*mongo.Client, error) {
	iLog.Infof("Connecting to remote mongo db: %v, user: %v", endpoint, username)

	tlsConfig, err := getCustomTLSConfig(caBundlePath)
	if err != nil {
		return nil, fmt.Errorf("Failed getting TLS configuration: %v", err)
	}

	if strings.Contains(endpoint, "localhost") {
		tlsConfig.InsecureSkipVerify = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx,
		options.Client().
			ApplyURI(fmt.Sprintf("mongodb://%s/", endpoint)).
			SetMonitor(makeMongoCommandMonitor(iLog)).
			SetTLSConfig(tlsConfig).
			SetRetryWrites(false).
			SetDirect(true).
			SetAuth(options.Credential{
				Username:    username,
				Password:    password,
				PasswordSet: true,
				AuthSource:  "admin",
			}))
	if err != nil {
		return nil, fmt.Errorf("Failed to create new mongo DB connection: %v", err)
	}

	if err := ping(client); err != nil {
		return nil, err
	}

	iLog.Infof("Successfully connected to remote mongo db!")
	return client, nil
}

func getCustomTLSConfig(caFile string) (*tls.Config, error) {
	tlsConfig := new(tls.Config)
	certs, err := os.ReadFile(caFile)
	if err != nil {
		return tlsConfig, err
	}

	tlsConfig.RootCAs = x509.NewCertPool()
	if !tlsConfig.RootCAs.AppendCertsFromPEM(certs) {
		return tlsConfig, errors.New("Failed parsing pem file")
	}

	return tlsConfig, nil
}
