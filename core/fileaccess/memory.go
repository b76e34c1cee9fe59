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
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
)

// MemoryAccess - FileAccess held in a map, for tests and for labels posted to the API that
// never touch disk
type MemoryAccess struct {
	mutex sync.Mutex
	files map[string][]byte
}

func NewMemoryAccess() *MemoryAccess {
	return &MemoryAccess{files: map[string][]byte{}}
}

func memoryKey(bucket string, path string) string {
	return bucket + "|" + strings.TrimPrefix(path, "/")
}

func (a *MemoryAccess) ListObjects(bucket string, prefix string) ([]string, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	result := []string{}
	start := memoryKey(bucket, prefix)
	for key := range a.files {
		if strings.HasPrefix(key, start) {
			result = append(result, strings.TrimPrefix(key, bucket+"|"))
		}
	}
	sort.Strings(result)
	return result, nil
}

func (a *MemoryAccess) ReadObject(bucket string, path string) ([]byte, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	data, ok := a.files[memoryKey(bucket, path)]
	if !ok {
		return nil, fmt.Errorf("%v/%v: %w", bucket, path, fs.ErrNotExist)
	}
	return append([]byte{}, data...), nil
}

func (a *MemoryAccess) WriteObject(bucket string, path string, data []byte) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.files[memoryKey(bucket, path)] = append([]byte{}, data...)
	return nil
}

func (a *MemoryAccess) ReadJSON(bucket string, path string, itemsPtr interface{}, emptyIfNotFound bool) error {
	data, err := a.ReadObject(bucket, path)
	if err != nil {
		if emptyIfNotFound && a.IsNotFoundError(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, itemsPtr)
}

func (a *MemoryAccess) WriteJSON(bucket string, path string, itemsPtr interface{}) error {
	data, err := json.MarshalIndent(itemsPtr, "", jsonIndent)
	if err != nil {
		return err
	}
	return a.WriteObject(bucket, path, data)
}

func (a *MemoryAccess) DeleteObject(bucket string, path string) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	key := memoryKey(bucket, path)
	if _, ok := a.files[key]; !ok {
		return fmt.Errorf("%v/%v: %w", bucket, path, fs.ErrNotExist)
	}
	delete(a.files, key)
	return nil
}

func (a *MemoryAccess) IsNotFoundError(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
