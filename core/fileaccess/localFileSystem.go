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
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FSAccess - FileAccess on the local file system, bucket is the root directory
type FSAccess struct {
}

// ListObjects behaves like an S3 prefix listing: prefix doesn't have to end on a directory, and a
// prefix matching nothing returns an empty list
func (a *FSAccess) ListObjects(rootPath string, prefix string) ([]string, error) {
	result := []string{}

	rootOnly := path.Join(rootPath)
	walkFrom := a.filePath(rootPath, prefix)
	if len(prefix) > 0 && !strings.HasSuffix(prefix, "/") {
		walkFrom = path.Dir(walkFrom)
	}
	wantPrefix := strings.TrimPrefix(path.Clean("/"+prefix), "/")
	if strings.HasSuffix(prefix, "/") {
		wantPrefix += "/"
	}

	err := filepath.Walk(walkFrom, func(pathFound string, info os.FileInfo, err error) error {
		if err != nil {
			if pathFound == walkFrom && errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !info.IsDir() {
			relPath := strings.TrimPrefix(filepath.ToSlash(pathFound), rootOnly+"/")
			if strings.HasPrefix(relPath, wantPrefix) {
				result = append(result, relPath)
			}
		}
		return nil
	})

	return result, err
}

func (a *FSAccess) ReadObject(rootPath string, filePath string) ([]byte, error) {
	return os.ReadFile(a.filePath(rootPath, filePath))
}

func (a *FSAccess) WriteObject(rootPath string, filePath string, data []byte) error {
	fullPath := a.filePath(rootPath, filePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0777); err != nil {
		return err
	}

	return os.WriteFile(fullPath, data, 0666)
}

func (a *FSAccess) ReadJSON(rootPath string, filePath string, itemsPtr interface{}, emptyIfNotFound bool) error {
	data, err := a.ReadObject(rootPath, filePath)
	if err != nil {
		if emptyIfNotFound && a.IsNotFoundError(err) {
			return nil
		}
		return err
	}

	return json.Unmarshal(data, itemsPtr)
}

func (a *FSAccess) WriteJSON(rootPath string, filePath string, itemsPtr interface{}) error {
	data, err := json.MarshalIndent(itemsPtr, "", jsonIndent)
	if err != nil {
		return err
	}

	return a.WriteObject(rootPath, filePath, data)
}

func (a *FSAccess) DeleteObject(rootPath string, filePath string) error {
	return os.Remove(a.filePath(rootPath, filePath))
}

func (a *FSAccess) IsNotFoundError(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func (a *FSAccess) filePath(rootPath string, filePath string) string {
	return path.Join(rootPath, filePath)
}
