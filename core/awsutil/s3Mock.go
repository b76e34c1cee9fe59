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
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// MockS3Client - S3 for unit tests. Set up the requests expected (in order) and the responses
// to return for each, then defer FinishTest() to check every expected call was made. A nil
// response makes the call fail (GetObject fails with NoSuchKey)
type MockS3Client struct {
	mutex sync.Mutex

	s3iface.S3API

	ExpListObjectsV2Input []s3.ListObjectsV2Input
	ExpGetObjectInput     []s3.GetObjectInput
	ExpPutObjectInput     []s3.PutObjectInput
	ExpDeleteObjectInput  []s3.DeleteObjectInput

	QueuedListObjectsV2Output []*s3.ListObjectsV2Output
	QueuedGetObjectOutput     []*s3.GetObjectOutput
	QueuedPutObjectOutput     []*s3.PutObjectOutput
	QueuedDeleteObjectOutput  []*s3.DeleteObjectOutput
}

const ErrNoMoreInputsExpected = "No more inputs expected for "
const ErrWrongInput = "Incorrect input in "
const ErrNothingToReturn = "Nothing to return from "
const ErrReturningError = "Returning error from "

// FinishTest prints (for Example tests) and returns an error if any expected call wasn't made
func (m *MockS3Client) FinishTest() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	remaining := map[string]int{
		"ListObjectsV2 calls":  len(m.ExpListObjectsV2Input),
		"GetObject calls":      len(m.ExpGetObjectInput),
		"PutObject calls":      len(m.ExpPutObjectInput),
		"DeleteObject calls":   len(m.ExpDeleteObjectInput),
		"ListObjectsV2 output": len(m.QueuedListObjectsV2Output),
		"GetObject output":     len(m.QueuedGetObjectOutput),
		"PutObject output":     len(m.QueuedPutObjectOutput),
		"DeleteObject output":  len(m.QueuedDeleteObjectOutput),
	}

	for _, what := range []string{"ListObjectsV2 calls", "GetObject calls", "PutObject calls", "DeleteObject calls", "ListObjectsV2 output", "GetObject output", "PutObject output", "DeleteObject output"} {
		if remaining[what] > 0 {
			err := fmt.Errorf("Test expected %v more %v", remaining[what], what)
			fmt.Println(err)
			return err
		}
	}

	return nil
}

// Pops the next expected input and queued output, checking the input matches. Inputs are
// compared by their String() form, which is how the SDK pretty prints them
func nextCall[I fmt.Stringer, O any](name string, input I, expected *[]I, outputs *[]*O) (*O, error) {
	if len(*expected) <= 0 {
		return nil, errors.New(ErrNoMoreInputsExpected + name)
	}

	exp := (*expected)[0]
	*expected = (*expected)[1:]

	if exp.String() != input.String() {
		return nil, fmt.Errorf("%v expected: \"%v\" S3 recvd: \"%v\"", ErrWrongInput+name, exp.String(), input.String())
	}

	if len(*outputs) <= 0 {
		return nil, errors.New(ErrNothingToReturn + name)
	}

	result := (*outputs)[0]
	*outputs = (*outputs)[1:]
	return result, nil
}

func (m *MockS3Client) ListObjectsV2(input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result, err := nextCall("ListObjectsV2", *input, &m.ExpListObjectsV2Input, &m.QueuedListObjectsV2Output)
	if err == nil && result == nil {
		err = errors.New(ErrReturningError + "ListObjectsV2")
	}
	return result, err
}

func (m *MockS3Client) GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result, err := nextCall("GetObject", *input, &m.ExpGetObjectInput, &m.QueuedGetObjectOutput)
	if err == nil && result == nil {
		err = awserr.New(s3.ErrCodeNoSuchKey, ErrReturningError+"GetObject", nil)
	}
	return result, err
}

func (m *MockS3Client) DeleteObject(input *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result, err := nextCall("DeleteObject", *input, &m.ExpDeleteObjectInput, &m.QueuedDeleteObjectOutput)
	if err == nil && result == nil {
		err = errors.New(ErrReturningError + "DeleteObject")
	}
	return result, err
}

// PutObject compares bucket, key and body text. On a body mismatch the first differing line is
// reported, ISD JSON is long
func (m *MockS3Client) PutObject(input *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	name := "PutObject"
	if len(m.ExpPutObjectInput) <= 0 {
		return nil, errors.New(ErrNoMoreInputsExpected + name)
	}

	exp := m.ExpPutObjectInput[0]
	m.ExpPutObjectInput = m.ExpPutObjectInput[1:]

	if *input.Bucket != *exp.Bucket || *input.Key != *exp.Key {
		return nil, fmt.Errorf("%v expected: \"%v/%v\" S3 recvd: \"%v/%v\"", ErrWrongInput+name, *exp.Bucket, *exp.Key, *input.Bucket, *input.Key)
	}

	inpLines := strings.Split(readAll(input.Body), "\n")
	expLines := strings.Split(readAll(exp.Body), "\n")
	for c := 0; c < len(inpLines) || c < len(expLines); c++ {
		inpLine, expLine := "", ""
		if c < len(inpLines) {
			inpLine = inpLines[c]
		}
		if c < len(expLines) {
			expLine = expLines[c]
		}
		if c >= len(inpLines) || c >= len(expLines) || inpLine != expLine {
			return nil, fmt.Errorf("%v body line %v\nexpected: \"%v\"\nS3 recvd: \"%v\"", ErrWrongInput+name, c+1, expLine, inpLine)
		}
	}

	if len(m.QueuedPutObjectOutput) <= 0 {
		return nil, errors.New(ErrNothingToReturn + name)
	}

	result := m.QueuedPutObjectOutput[0]
	m.QueuedPutObjectOutput = m.QueuedPutObjectOutput[1:]
	if result == nil {
		return nil, errors.New(ErrReturningError + name)
	}
	return result, nil
}

func readAll(r io.Reader) string {
	if r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "ERROR GETTING DATA"
	}
	return string(data)
}
