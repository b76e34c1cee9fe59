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
	"net/url"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go/aws/arn"
	"github.com/pkg/errors"
)

// Decoding of the events that trigger ISD generation: a label put into S3, either directly or
// relayed through SNS or SQS

type eventType int

const (
	unknownEventType eventType = iota
	s3EventType
	snsEventType
	sqsEventType
)

type Record struct {
	EventSource    string
	EventSourceArn string
	AWSRegion      string
	S3             events.S3Entity
	SQS            events.SQSMessage
	SNS            events.SNSEntity
}

type Event struct {
	Records []Record
}

// ObjectRef - an S3 object an event refers to, with the key URL-decoded
type ObjectRef struct {
	Bucket string
	Key    string
}

// getEventType - Get the event type from the source of the first record
func (event *Event) getEventType(data []byte) (eventType, error) {
	temp := struct {
		Records []map[string]interface{}
	}{}
	if err := json.Unmarshal(data, &temp); err != nil {
		return unknownEventType, errors.Wrap(err, "Failed to decode event")
	}
	if len(temp.Records) == 0 {
		return unknownEventType, errors.New("Event has no records")
	}

	record := temp.Records[0]
	eventSource, _ := record["EventSource"].(string)
	if len(eventSource) <= 0 {
		eventSource, _ = record["eventSource"].(string)
	}

	switch eventSource {
	case "aws:s3":
		return s3EventType, nil
	case "aws:sns":
		return snsEventType, nil
	case "aws:sqs":
		return sqsEventType, nil
	}

	return unknownEventType, errors.Errorf("Unknown event source: \"%v\"", eventSource)
}

func (event *Event) mapS3EventRecords(s3Event *events.S3Event) {
	event.Records = make([]Record, 0)

	for _, s3Record := range s3Event.Records {
		event.Records = append(event.Records, Record{
			EventSource:    s3Record.EventSource,
			EventSourceArn: s3Record.S3.Bucket.Arn,
			AWSRegion:      s3Record.AWSRegion,
			S3:             s3Record.S3,
		})
	}
}

// mapSNSEventRecords - the message is kept as is, Objects() decodes the S3 event it carries
func (event *Event) mapSNSEventRecords(snsEvent *events.SNSEvent) error {
	event.Records = make([]Record, 0)

	for _, snsRecord := range snsEvent.Records {
		topicArn, err := arn.Parse(snsRecord.SNS.TopicArn)
		if err != nil {
			return errors.Wrapf(err, "Bad SNS topic ARN: %v", snsRecord.SNS.TopicArn)
		}

		event.Records = append(event.Records, Record{
			EventSource:    snsRecord.EventSource,
			EventSourceArn: snsRecord.SNS.TopicArn,
			AWSRegion:      topicArn.Region,
			SNS:            snsRecord.SNS,
		})
	}

	return nil
}

// mapSQSEventRecords - each message body is an S3 event, one record per S3 record in it
func (event *Event) mapSQSEventRecords(sqsEvent *events.SQSEvent) error {
	event.Records = make([]Record, 0)

	for _, sqsRecord := range sqsEvent.Records {
		s3Event := &events.S3Event{}
		err := json.Unmarshal([]byte(sqsRecord.Body), s3Event)
		if err != nil {
			return errors.Wrap(err, "Failed to decode sqs body to an S3 event")
		}

		if len(s3Event.Records) == 0 {
			return errors.New("S3 Event Records is empty")
		}

		for _, s3Record := range s3Event.Records {
			event.Records = append(event.Records, Record{
				EventSource:    sqsRecord.EventSource,
				EventSourceArn: sqsRecord.EventSourceARN,
				AWSRegion:      sqsRecord.AWSRegion,
				SQS:            sqsRecord,
				S3:             s3Record.S3,
			})
		}
	}

	return nil
}

// UnmarshalJSON - Decode the JSON to the correct Event type
func (event *Event) UnmarshalJSON(data []byte) error {
	eType, err := event.getEventType(data)
	if err != nil {
		return err
	}

	switch eType {
	case s3EventType:
		s3Event := &events.S3Event{}
		if err := json.Unmarshal(data, s3Event); err != nil {
			return errors.Wrap(err, "Failed to decode S3 event")
		}
		event.mapS3EventRecords(s3Event)
		return nil

	case snsEventType:
		snsEvent := &events.SNSEvent{}
		if err := json.Unmarshal(data, snsEvent); err != nil {
			return errors.Wrap(err, "Failed to decode SNS event")
		}
		return event.mapSNSEventRecords(snsEvent)
	}

	sqsEvent := &events.SQSEvent{}
	if err := json.Unmarshal(data, sqsEvent); err != nil {
		return errors.Wrap(err, "Failed to decode SQS event")
	}
	return event.mapSQSEventRecords(sqsEvent)
}

// Objects lists the S3 objects the event is about, in record order
func (event *Event) Objects() ([]ObjectRef, error) {
	result := []ObjectRef{}
	for _, record := range event.Records {
		entities := []events.S3Entity{record.S3}

		if record.EventSource == "aws:sns" {
			s3Event := &events.S3Event{}
			if err := json.Unmarshal([]byte(record.SNS.Message), s3Event); err != nil {
				return nil, errors.Wrap(err, "Failed to decode sns message to an S3 event")
			}
			entities = []events.S3Entity{}
			for _, s3Record := range s3Event.Records {
				entities = append(entities, s3Record.S3)
			}
		}

		for _, entity := range entities {
			// S3 event keys are URL encoded, spaces as +
			key, err := url.QueryUnescape(entity.Object.Key)
			if err != nil {
				return nil, errors.Wrapf(err, "Bad object key in event: %v", entity.Object.Key)
			}
			if len(entity.Bucket.Name) <= 0 || len(key) <= 0 {
				return nil, errors.Errorf("Event record from %v has no S3 object", record.EventSource)
			}
			result = append(result, ObjectRef{Bucket: entity.Bucket.Name, Key: key})
		}
	}
	return result, nil
}
