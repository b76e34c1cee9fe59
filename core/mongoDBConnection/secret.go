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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-secretsmanager-caching-go/secretcache"
)

// MongoConnectionInfo - the fields we use from a DocumentDB secret as its rotation writes them
type MongoConnectionInfo struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Address - host:port, the host alone if it already names a port or no port is given
func (i MongoConnectionInfo) Address() string {
	if len(i.Port) <= 0 || strings.Contains(i.Host, ":") {
		return i.Host
	}
	return i.Host + ":" + i.Port
}

func readConnectionInfo(sess *session.Session, secretName string) (MongoConnectionInfo, error) {
	cache, err := secretcache.New(func(c *secretcache.Cache) { c.Client = secretsmanager.New(sess) })
	if err != nil {
		return MongoConnectionInfo{}, err
	}

	secretValue, err := cache.GetSecretString(secretName)
	if err != nil {
		return MongoConnectionInfo{}, err
	}

	return parseConnectionInfo(secretName, secretValue)
}

func parseConnectionInfo(secretName string, secretValue string) (MongoConnectionInfo, error) {
	var info MongoConnectionInfo
	if err := json.Unmarshal([]byte(secretValue), &info); err != nil {
		return info, fmt.Errorf("failed to parse secret: %v", secretName)
	}
	if len(info.Host) <= 0 {
		return info, fmt.Errorf("secret %v has no host", secretName)
	}
	return info, nil
}
