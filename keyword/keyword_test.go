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

package keyword

import (
	"testing"
)

func (s *Set) strings() []string {
	out := make([]string, s.Len())
	for i := 0; i < s.Len(); i++ {
		out[i] = string(s.At(i))
	}
	return out
}

// TestSet_AddFromString tests Set.AddFromString.
func TestSet_AddFromString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "basic",
			input: "haus",
			want:  []string{"HAUS"},
		},
		{
			name:  "drops common words",
			input: "der Haus",
			want:  []string{"HAUS"},
		},
		{
			name:  "longest first",
			input: "apfelbaum apfel",
			want:  []string{"APFELBAUM"},
		},
		{
			name:  "prefix dropped reverse order",
			input: "apfel apfelbaum",
			want:  []string{"APFELBAUM"},
		},
		{
			name:  "two independent keywords ordered by length then lex",
			input: "katze hund",
			want:  []string{"KATZE", "HUND"},
		},
		{
			name:  "equal length ties broken lexicographically",
			input: "hund baum",
			want:  []string{"BAUM", "HUND"},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			s := New()
			s.AddFromString(test.input)
			got := s.strings()
			if len(got) != len(test.want) {
				t.Fatalf("AddFromString(%q); want: %v, got: %v", test.input, test.want, got)
			}
			for i := range test.want {
				if got[i] != test.want[i] {
					t.Fatalf("AddFromString(%q)[%d]; want: %q, got: %q", test.input, i, test.want[i], got[i])
				}
			}
		})
	}
}

// TestSet_PrefixFreedom verifies that no member of the resulting set is a
// byte-prefix of another member, across a variety of inputs.
func TestSet_PrefixFreedom(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"apfel apfelbaum apfelkuchen",
		"haus hausfrau hausfrauen",
		"der die das Apfel Apfelbaum",
		"katze hund baum strasse",
	}

	for _, in := range inputs {
		s := New()
		s.AddFromString(in)
		for i := 0; i < s.Len(); i++ {
			for j := 0; j < s.Len(); j++ {
				if i == j {
					continue
				}
				a, b := s.At(i), s.At(j)
				n := len(a)
				if len(b) < n {
					n = len(b)
				}
				if n > 0 && string(a[:n]) == string(b[:n]) && len(a) != len(b) {
					t.Fatalf("prefix-freedom violated for %q: %q is a prefix of %q", in, a, b)
				}
			}
		}
	}
}

// TestSet_Adjust tests Set.Adjust (umlaut recovery), including the
// STRASSE -> STRAßE substitution.
func TestSet_Adjust(t *testing.T) {
	t.Parallel()

	s := New()
	s.AddFromString("strasse")
	if got := s.strings(); len(got) != 1 || got[0] != "STRASSE" {
		t.Fatalf("before Adjust; want: [STRASSE], got: %v", got)
	}

	if adjusted := s.Adjust(); !adjusted {
		t.Fatal("Adjust; want: true, got: false")
	}
	if got := s.strings(); len(got) != 1 || got[0] != "STRAßE" {
		t.Fatalf("after Adjust; want: [STRAßE], got: %v", got)
	}

	// Idempotence: applying Adjust a second time makes no further change.
	if adjusted := s.Adjust(); adjusted {
		t.Fatal("second Adjust; want: false, got: true")
	}
}

// TestSet_AllPresent tests Set.AllPresent.
func TestSet_AllPresent(t *testing.T) {
	t.Parallel()

	s := New()
	s.AddFromString("apfel baum")

	if !s.AllPresent([]byte("der apfelbaum im garten")) {
		t.Fatal("AllPresent; want: true, got: false")
	}
	if s.AllPresent([]byte("der apfel im garten")) {
		t.Fatal("AllPresent; want: false, got: true")
	}

	empty := New()
	if !empty.AllPresent([]byte("")) {
		t.Fatal("AllPresent on empty set; want: true, got: false")
	}
}

// TestSet_LongestKeyword tests Set.LongestKeyword.
func TestSet_LongestKeyword(t *testing.T) {
	t.Parallel()

	s := New()
	s.AddFromString("apfel apfelbaum")
	if want, got := len("APFELBAUM"), s.LongestKeyword(); want != got {
		t.Fatalf("LongestKeyword; want: %d, got: %d", want, got)
	}

	if got := New().LongestKeyword(); got != 0 {
		t.Fatalf("LongestKeyword on empty set; want: 0, got: %d", got)
	}
}
