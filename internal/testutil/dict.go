// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// MakeTempDing writes lines (already in "German :: English" form) joined
// by "\n" to a temporary file and returns its path. It is the DING
// analogue of a temp .dict file: the byte-exact source the indexer streams
// and lookup later reads candidate lines out of.
func MakeTempDing(t *testing.T, lines []string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dict.txt")
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("MakeTempDing: %v", err)
	}
	return path
}
