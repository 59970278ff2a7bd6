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

package lookup

import (
	"context"
	"os"
	"testing"

	"github.com/dingsearch/deen/internal/testutil"
)

func openDataFile(t *testing.T, path string) *os.File {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening %q: %v", path, err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

// TestRun_ExactMatch looks up a headword that matches exactly.
func TestRun_ExactMatch(t *testing.T) {
	t.Parallel()

	path := testutil.MakeTempDing(t, []string{"Haus :: house"})
	s := testutil.MakeInstalledStore(t, path)
	f := openDataFile(t, path)

	results, err := Run(context.Background(), s, f, "haus", 10)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Run; want: 1 result, got: %d", len(results))
	}
	if results[0].German != "Haus" || results[0].English != "house" {
		t.Fatalf("Run; want: Haus/house, got: %s/%s", results[0].German, results[0].English)
	}
}

// TestRun_UmlautRecovery verifies that when the first pass finds nothing,
// the umlaut-recovery retry succeeds.
func TestRun_UmlautRecovery(t *testing.T) {
	t.Parallel()

	path := testutil.MakeTempDing(t, []string{"Straße :: street"})
	s := testutil.MakeInstalledStore(t, path)
	f := openDataFile(t, path)

	results, err := Run(context.Background(), s, f, "strasse", 10)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Run; want: 1 result after umlaut recovery, got: %d", len(results))
	}
	if results[0].German != "Straße" {
		t.Fatalf("Run; want: Straße, got: %s", results[0].German)
	}
}

// TestRun_ExactOutranksSubstring verifies an exact match outranks an entry
// where the query only matches as a substring of a longer word.
func TestRun_ExactOutranksSubstring(t *testing.T) {
	t.Parallel()

	path := testutil.MakeTempDing(t, []string{
		"Apfelbaum :: apple tree",
		"Apfel :: apple",
	})
	s := testutil.MakeInstalledStore(t, path)
	f := openDataFile(t, path)

	results, err := Run(context.Background(), s, f, "apfel", 10)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Run; want: 2 results, got: %d", len(results))
	}

	top, err := Run(context.Background(), s, f, "apfel", 1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(top) != 1 || top[0].German != "Apfel" {
		t.Fatalf("Run with maxResults=1; want: Apfel, got: %+v", top)
	}
}

// TestRun_CommonWordYieldsNoResults verifies a query consisting only of a
// common word yields no results.
func TestRun_CommonWordYieldsNoResults(t *testing.T) {
	t.Parallel()

	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, "Haus :: house")
	}
	path := testutil.MakeTempDing(t, lines)
	s := testutil.MakeInstalledStore(t, path)
	f := openDataFile(t, path)

	results, err := Run(context.Background(), s, f, "der", 10)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Run(\"der\"); want: 0 results, got: %d", len(results))
	}
}
