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
Package config loads the options that tune an extsort run.

	            +-------------+
	            |   Options   |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +-----+-----+
	|   YAML    | |   HCL   | |   JSON    |
	|  Parser   | | Parser  | |  Parser   |
	+-----------+ +---------+ +-----------+

🎯 Purpose:
- Parses an optional options file picked with --config
- Validates concurrency and ignore globs
- Leaves every value at its zero default when no file is given

🔄 Flow:
1. Reads the file
2. Picks a parser by extension (.yaml/.yml, .hcl, .json)
3. Decodes, rejecting unknown fields
4. Validates and normalizes

🔍 Example:

	# extsort.yaml
	concurrency: 16
	ignore:
	  - ".git/**"
	  - "cache/*.tmp"

	# extsort.hcl
	concurrency = cpus * 2
	ignore      = ["node_modules/**"]

Flags given on the command line win over values from the file.
*/
package config
