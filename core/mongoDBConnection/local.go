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
	"fmt"
	"os"

	"github.com/pixlise/isd-generator/core/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Assumes local mongo running in docker, eg:
// docker run -d --name isdgen-mongo -p 27017:27017 mongo
// LOCAL_MONGO_URI overrides where it's found
func connectToLocalMongoDB(log logger.ILogger) (*mongo.Client, error) {
	mongoUri, set := os.LookupEnv("LOCAL_MONGO_URI")
	if !set {
		mongoUri = "mongodb://localhost"
	}
	log.Infof("Connecting to local mongo db: %v", mongoUri)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoUri).SetMonitor(makeMongoCommandMonitor(log)).SetDirect(true))
	if err != nil {
		return nil, fmt.Errorf("Failed to create new local mongo DB connection: %v", err)
	}

	if err := ping(client); err != nil {
		return nil, err
	}

	log.Infof("Successfully connected to local mongo db!")
	return client, nil
}
