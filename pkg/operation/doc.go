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

/*
Package operation implements the concurrent copy that sorts files by extension.

	+--------------+
	|  Dispatcher  |
	|  (scan, fan  |
	|   out, join) |
	+------+-------+
	       | one per file
	+------+-------+
	|    Copier    |
	| (mkdir, read,|
	|    write)    |
	+--------------+

🎯 Purpose:
- Lists every regular file under the source folder
- Copies each one to <dest>/<ext>/<name>, or <dest>/other/<name>
- Keeps each file's failure local to that file

🔄 Flow:
1. Dispatcher checks the source folder exists and is a directory
2. Dispatcher walks the tree and starts one copy per file on an errgroup
3. Copier creates the bucket directory, reads the file, writes the target
4. Copier logs one info line on success or one error line on failure
5. Dispatcher waits for all copies and returns a Report

⚡ Concurrency:
Copies are independent and unordered. By default nothing caps how many run at
once; config.Options.Concurrency sets a ceiling. Two sources with the same
name and extension race for one target and the last write wins.

🔍 Example:

	ctx := logger.WithContext(context.Background())
	report := operation.NewDispatcher(nil).Run(ctx, "src", "out")
	_ = report.Failed()
*/
package operation
