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

package fileaccess

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3Access - FileAccess on AWS S3
type S3Access struct {
	s3Api s3iface.S3API
}

func MakeS3Access(s3Api s3iface.S3API) S3Access {
	return S3Access{s3Api: s3Api}
}

// ListObjects keeps calling ListObjectsV2 while it returns continuation tokens. Kernel directories
// can easily exceed a single page
func (a S3Access) ListObjects(bucket string, prefix string) ([]string, error) {
	result := []string{}
	params := s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	}

	for {
		listing, err := a.s3Api.ListObjectsV2(&params)
		if err != nil {
			return []string{}, err
		}

		for _, item := range listing.Contents {
			// "Directories" made in the web console show up as empty objects ending in /
			if item.Key != nil && !strings.HasSuffix(*item.Key, "/") {
				result = append(result, *item.Key)
			}
		}

		if listing.IsTruncated == nil || !*listing.IsTruncated || listing.NextContinuationToken == nil {
			break
		}
		params.ContinuationToken = listing.NextContinuationToken
	}

	return result, nil
}

func (a S3Access) ReadObject(bucket string, path string) ([]byte, error) {
	result, err := a.s3Api.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return nil, err
	}
	defer result.Body.Close()

	return io.ReadAll(result.Body)
}

func (a S3Access) WriteObject(bucket string, path string, data []byte) error {
	_, err := a.s3Api.PutObject(&s3.PutObjectInput{
		Body:   bytes.NewReader(data),
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	})
	return err
}

func (a S3Access) ReadJSON(bucket string, path string, itemsPtr interface{}, emptyIfNotFound bool) error {
	data, err := a.ReadObject(bucket, path)
	if err != nil {
		if emptyIfNotFound && a.IsNotFoundError(err) {
			return nil
		}
		return err
	}

	return json.Unmarshal(data, itemsPtr)
}

func (a S3Access) WriteJSON(bucket string, path string, itemsPtr interface{}) error {
	data, err := json.MarshalIndent(itemsPtr, "", jsonIndent)
	if err != nil {
		return err
	}

	return a.WriteObject(bucket, path, data)
}

func (a S3Access) DeleteObject(bucket string, path string) error {
	_, err := a.s3Api.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	})
	return err
}

func (a S3Access) IsNotFoundError(err error) bool {
	if aerr, ok := err.(awserr.Error); ok {
		return aerr.Code() == s3.ErrCodeNoSuchKey || aerr.Code() == "NotFound"
	}
	return false
}
