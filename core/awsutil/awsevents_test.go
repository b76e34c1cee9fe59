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
	"encoding/json"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const s3PutEvent = `{
    "Records": [
        {
            "eventVersion": "2.1",
            "eventSource": "aws:s3",
            "awsRegion": "us-east-1",
            "eventTime": "2024-06-22T14:36:07.988Z",
            "eventName": "ObjectCreated:Put",
            "s3": {
                "s3SchemaVersion": "1.0",
                "bucket": {
                    "name": "isd-labels",
                    "arn": "arn:aws:s3:::isd-labels"
                },
                "object": {
                    "key": "kaguya/TC1S2B0_01_06691S820E0465.lbl",
                    "size": 8130
                }
            }
        },
        {
            "eventVersion": "2.1",
            "eventSource": "aws:s3",
            "awsRegion": "us-east-1",
            "eventName": "ObjectCreated:Put",
            "s3": {
                "bucket": {
                    "name": "isd-labels",
                    "arn": "arn:aws:s3:::isd-labels"
                },
                "object": {
                    "key": "cassini/narrow+angle/CN1563716744_1.lbl"
                }
            }
        }
    ]
}`

func Example_getEventType() {
	var e Event
	t, err := e.getEventType([]byte(s3PutEvent))
	fmt.Printf("%v|%v\n", t, err)

	t, err = e.getEventType([]byte(`{"Records": [{"EventSource": "aws:sns"}]}`))
	fmt.Printf("%v|%v\n", t, err)

	t, err = e.getEventType([]byte(`{"Records": [{"eventSource": "aws:sqs"}]}`))
	fmt.Printf("%v|%v\n", t, err)

	t, err = e.getEventType([]byte(`{"Records": []}`))
	fmt.Printf("%v|%v\n", t, err)

	t, err = e.getEventType([]byte(`{"Records": [{"eventSource": "aws:kinesis"}]}`))
	fmt.Printf("%v|%v\n", t, err)

	// Output:
	// 1|<nil>
	// 2|<nil>
	// 3|<nil>
	// 0|Event has no records
	// 0|Unknown event source: "aws:kinesis"
}

func Example_s3EventObjects() {
	var e Event
	err := json.Unmarshal([]byte(s3PutEvent), &e)
	fmt.Printf("%v|%v|%v\n", err, len(e.Records), e.Records[0].EventSource)

	objs, err := e.Objects()
	fmt.Printf("%v\n", err)
	for _, obj := range objs {
		fmt.Printf("%v: %v\n", obj.Bucket, obj.Key)
	}

	// Output:
	// <nil>|2|aws:s3
	// <nil>
	// isd-labels: kaguya/TC1S2B0_01_06691S820E0465.lbl
	// isd-labels: cassini/narrow angle/CN1563716744_1.lbl
}

func Test_SQSEventObjects(t *testing.T) {
	event := fmt.Sprintf(`{
    "Records": [
        {
            "messageId": "059f36b4-87a3-44ab-83d2-661975830a7d",
            "body": %v,
            "eventSource": "aws:sqs",
            "eventSourceARN": "arn:aws:sqs:us-east-1:123456789012:isd-labels",
            "awsRegion": "us-east-1"
        }
    ]
}`, strconv.Quote(s3PutEvent))

	var e Event
	require.NoError(t, json.Unmarshal([]byte(event), &e))
	require.Len(t, e.Records, 2)
	assert.Equal(t, "arn:aws:sqs:us-east-1:123456789012:isd-labels", e.Records[1].EventSourceArn)

	objs, err := e.Objects()
	require.NoError(t, err)
	assert.Equal(t, []ObjectRef{
		{Bucket: "isd-labels", Key: "kaguya/TC1S2B0_01_06691S820E0465.lbl"},
		{Bucket: "isd-labels", Key: "cassini/narrow angle/CN1563716744_1.lbl"},
	}, objs)
}

func Test_SQSEventWithBadBody(t *testing.T) {
	var e Event
	err := json.Unmarshal([]byte(`{"Records": [{"eventSource": "aws:sqs", "body": "{\"Records\": []}"}]}`), &e)
	assert.EqualError(t, err, "S3 Event Records is empty")

	err = json.Unmarshal([]byte(`{"Records": [{"eventSource": "aws:sqs", "body": "label.lbl"}]}`), &e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to decode sqs body to an S3 event")
}

func Test_SNSEventObjects(t *testing.T) {
	event := fmt.Sprintf(`{
    "Records": [
        {
            "EventSource": "aws:sns",
            "EventVersion": "1.0",
            "Sns": {
                "Type": "Notification",
                "TopicArn": "arn:aws:sns:eu-west-1:123456789012:isd-labels",
                "Message": %v
            }
        }
    ]
}`, strconv.Quote(s3PutEvent))

	var e Event
	require.NoError(t, json.Unmarshal([]byte(event), &e))
	require.Len(t, e.Records, 1)
	assert.Equal(t, "eu-west-1", e.Records[0].AWSRegion)

	objs, err := e.Objects()
	require.NoError(t, err)
	assert.Len(t, objs, 2)
	assert.Equal(t, "kaguya/TC1S2B0_01_06691S820E0465.lbl", objs[0].Key)
}

func Test_SNSEventWithBadTopic(t *testing.T) {
	var e Event
	err := json.Unmarshal([]byte(`{"Records": [{"EventSource": "aws:sns", "Sns": {"TopicArn": "isd-labels"}}]}`), &e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad SNS topic ARN: isd-labels")
}

func Test_EventWithoutObject(t *testing.T) {
	var e Event
	require.NoError(t, json.Unmarshal([]byte(`{"Records": [{"eventSource": "aws:s3", "s3": {"bucket": {"name": "isd-labels"}}}]}`), &e))

	_, err := e.Objects()
	assert.EqualError(t, err, "Event record from aws:s3 has no S3 object")
}
