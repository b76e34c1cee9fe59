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

package awsutil

import (
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

////////////////////////////////////////////////////////////////////////////////////////////////////////////
// AWS SDK Utils
// Sessions are safe to use concurrently as long as the Session is not being modified, so the
// executables get one on startup and pass it around

const defaultRegion = "us-east-1"

// GetSession - returns an AWS session for the region in AWS_DEFAULT_REGION (or AWS_REGION,
// which lambdas set)
func GetSession() (*session.Session, error) {
	region := os.Getenv("AWS_DEFAULT_REGION")
	if len(region) <= 0 {
		region = os.Getenv("AWS_REGION")
	}
	if len(region) <= 0 {
		region = defaultRegion
	}
	return GetSessionWithRegion(region)
}

// GetSessionWithRegion - returns an AWS session for the given region
func GetSessionWithRegion(region string) (*session.Session, error) {
	return session.NewSession(&aws.Config{Region: aws.String(region)})
}

// GetS3 - returns an S3 client for labels, kernels and ISD output
func GetS3(sess *session.Session) s3iface.S3API {
	return s3.New(sess)
}
