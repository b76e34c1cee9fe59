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

// Connecting to the Mongo DB that memoises generated ISDs, locally in Docker or remotely with
// credentials from AWS Secrets Manager
package mongoDBConnection

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/pixlise/isd-generator/core/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
)

const connectTimeout = 10 * time.Second

// Connect - with a blank mongoSecret, connects to a local DB with no auth (sess can be nil).
// Otherwise the connection details are read from the named secret
func Connect(sess *session.Session, mongoSecret string, iLog logger.ILogger) (*mongo.Client, error) {
	if len(mongoSecret) <= 0 {
		return connectToLocalMongoDB(iLog)
	}

	info, err := readConnectionInfo(sess, mongoSecret)
	if err != nil {
		return nil, fmt.Errorf("Failed to read mongo secret \"%v\" info from secrets cache: %v", mongoSecret, err)
	}

	return connectToRemoteMongoDB(info.Address(), info.Username, info.Password, iLog)
}

// GetDatabaseName - one DB per environment, eg isdgen-prod
func GetDatabaseName(dbName string, envName string) string {
	return dbName + "-" + envName
}

func ping(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	var result bson.M
	return client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Decode(&result)
}

func makeMongoCommandMonitor(log logger.ILogger) *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(_ context.Context, evt *event.CommandStartedEvent) {
			log.Debugf("Mongo request: %v %v", evt.CommandName, evt.DatabaseName)
		},
		Failed: func(_ context.Context, evt *event.CommandFailedEvent) {
			log.Errorf("Mongo FAIL: %v %v", evt.CommandName, evt.Failure)
		},
	}
}
