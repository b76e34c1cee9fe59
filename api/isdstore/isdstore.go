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

// Memoised ISD documents in Mongo. An ISD only depends on the label bytes and the kernels
// furnished, so those make up the key
package isdstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"

	"github.com/pixlise/isd-generator/core/logger"
	"github.com/pixlise/isd-generator/core/timestamper"
	pkgErrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "isdDocuments"

type storedISD struct {
	ID              string `bson:"_id"`
	Label           string `bson:"label"`
	Driver          string `bson:"driver"`
	Document        string `bson:"document"`
	CreatedUnixSec  int64  `bson:"createdUnixSec"`
	LastReadUnixSec int64  `bson:"lastReadUnixSec"`
}

// Entry - a memoised ISD, the document as JSON
type Entry struct {
	Driver   string
	Document []byte
}

// Store - a nil *Store is valid and memoises nothing
type Store struct {
	coll        *mongo.Collection
	timeStamper timestamper.ITimeStamper
	log         logger.ILogger
}

func New(db *mongo.Database, timeStamper timestamper.ITimeStamper, log logger.ILogger) *Store {
	return &Store{coll: db.Collection(CollectionName), timeStamper: timeStamper, log: log}
}

// Key - sha256 of the label, then a digest of the kernel paths. Order of kernels doesn't matter
func Key(label []byte, kernels []string) string {
	labelSum := sha256.Sum256(label)

	sorted := append([]string{}, kernels...)
	sort.Strings(sorted)
	kernelSum := sha256.Sum256([]byte(strings.Join(sorted, "\n")))

	return hex.EncodeToString(labelSum[:]) + "-" + hex.EncodeToString(kernelSum[:8])
}

// Get returns nil with no error if nothing is stored under key. Hits refresh the entry's last
// read time, which is what garbage collection goes by
func (s *Store) Get(ctx context.Context, key string) (*Entry, error) {
	if s == nil {
		return nil, nil
	}

	result := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key}})
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, pkgErrors.Wrapf(err, "Failed to read memoised ISD %v", key)
	}

	stored := storedISD{}
	if err := result.Decode(&stored); err != nil {
		return nil, pkgErrors.Wrapf(err, "Failed to decode memoised ISD %v", key)
	}

	now := s.timeStamper.GetTimeNowSec()
	_, err := s.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: key}}, bson.D{{Key: "$set", Value: bson.D{{Key: "lastReadUnixSec", Value: now}}}})
	if err != nil {
		// Still a hit, it'll just be collected sooner
		s.log.Errorf("Failed to update last read time of memoised ISD %v: %v", key, err)
	}

	return &Entry{Driver: stored.Driver, Document: []byte(stored.Document)}, nil
}

func (s *Store) Put(ctx context.Context, key string, labelName string, entry Entry) error {
	if s == nil {
		return nil
	}

	now := s.timeStamper.GetTimeNowSec()
	stored := storedISD{
		ID:              key,
		Label:           labelName,
		Driver:          entry.Driver,
		Document:        string(entry.Document),
		CreatedUnixSec:  now,
		LastReadUnixSec: now,
	}

	_, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: key}}, stored, options.Replace().SetUpsert(true))
	if err != nil {
		return pkgErrors.Wrapf(err, "Failed to memoise ISD for %v", labelName)
	}
	return nil
}

// CollectGarbage deletes entries not read for maxAgeSec, returning how many went
func (s *Store) CollectGarbage(ctx context.Context, maxAgeSec uint32) (int64, error) {
	if s == nil {
		return 0, nil
	}

	cutoff := timestamper.CutoffSec(s.timeStamper, maxAgeSec)
	result, err := s.coll.DeleteMany(ctx, bson.D{{Key: "lastReadUnixSec", Value: bson.D{{Key: "$lt", Value: cutoff}}}})
	if err != nil {
		return 0, pkgErrors.Wrap(err, "Failed to delete old memoised ISDs")
	}

	if result.DeletedCount > 0 {
		s.log.Infof("Deleted %v memoised ISDs not read since %v", result.DeletedCount, cutoff)
	}
	return result.DeletedCount, nil
}
