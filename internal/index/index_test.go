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

package index

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// word is a minimal fmt.Stringer wrapper, standing in for the commonWord
// type internal/text actually indexes with this package.
type word string

func (w word) String() string {
	return string(w)
}

func TestIndex_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		members  []word
		query    string
		expected []word
	}{
		{
			name:     "single result",
			members:  []word{"APFEL", "DER", "UND", "DIE"},
			query:    "APFEL",
			expected: []word{"APFEL"},
		},
		{
			name:     "duplicate members collapse into one run",
			members:  []word{"DER", "UND", "DIE", "UND"},
			query:    "UND",
			expected: []word{"UND", "UND"},
		},
		{
			name:     "no match",
			members:  []word{"DER", "UND", "DIE"},
			query:    "APFEL",
			expected: nil,
		},
		{
			name:     "empty index",
			members:  nil,
			query:    "DER",
			expected: nil,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			idx := NewIndex(test.members, strings.Compare)

			if diff := cmp.Diff(test.expected, idx.Search(test.query)); diff != "" {
				t.Fatalf("Search (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestNewIndex_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	members := []word{"UND", "APFEL", "DER"}
	original := append([]word(nil), members...)

	NewIndex(members, strings.Compare)

	if diff := cmp.Diff(original, members); diff != "" {
		t.Fatalf("NewIndex mutated its input slice (-want, +got):\n%s", diff)
	}
}
