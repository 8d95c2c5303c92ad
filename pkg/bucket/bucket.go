// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bucket maps file names to the destination subfolder they sort into.
package bucket

import (
	"path/filepath"
	"strings"
)

// 🗂️ Other is the bucket for files without an extension
const Other = "other"

// 🔍 Ext returns the final suffix of name without its leading dot.
//
// A name with no dot, a dot only in first position (".bashrc") or a trailing
// dot ("name.") has no extension and yields "". Case is preserved.
func Ext(name string) string {
	name = filepath.Base(name)
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i+1:]
}

// 🎯 For returns the bucket name for a file
func For(name string) string {
	if ext := Ext(name); ext != "" {
		return ext
	}
	return Other
}

// 📍 Target returns the path a file is copied to under destRoot
func Target(destRoot, source string) (dir string, target string) {
	name := filepath.Base(source)
	dir = filepath.Join(destRoot, For(name))
	return dir, filepath.Join(dir, name)
}
