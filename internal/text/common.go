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

package text

import (
	"strings"

	"github.com/dingsearch/deen/internal/index"
)

// commonWord is a common-word set member. It exists only to satisfy
// fmt.Stringer for index.Index.
type commonWord string

func (w commonWord) String() string {
	return string(w)
}

// commonWordList is the fixed German/English common-word set: articles,
// pronouns, conjunctions and auxiliaries that carry no search value and are
// excluded from both indexing and query keywords. It is intentionally small
// and not a general-purpose NLP stopword list.
var commonWordList = []commonWord{
	// German.
	"DER", "DIE", "DAS", "DEM", "DEN", "DES",
	"EIN", "EINE", "EINEN", "EINEM", "EINER", "EINES",
	"UND", "ODER", "ABER", "DOCH", "DENN",
	"ICH", "DU", "ER", "SIE", "ES", "WIR", "IHR",
	"MIR", "DIR", "IHM", "IHN", "IHNEN", "UNS", "EUCH",
	"IST", "SIND", "WAR", "WAREN", "BIN", "BIST", "SEID",
	"HAT", "HABEN", "HATTE", "HATTEN",
	"ZU", "ZUM", "ZUR", "IN", "IM", "AN", "AM", "AUF", "AUS",
	"MIT", "VON", "VOM", "BEI", "NACH", "UEBER", "UNTER", "VOR",
	"NICHT", "AUCH", "NUR", "SO", "WIE", "WAS", "WER",

	// English.
	"A", "AN", "THE",
	"AND", "OR", "BUT", "NOR",
	"I", "YOU", "HE", "SHE", "IT", "WE", "THEY",
	"ME", "HIM", "HER", "US", "THEM",
	"IS", "ARE", "WAS", "WERE", "BE", "BEEN", "AM",
	"HAS", "HAVE", "HAD",
	"TO", "OF", "IN", "ON", "AT", "BY", "FOR", "WITH",
	"FROM", "UP", "ABOUT", "INTO", "OVER", "AFTER",
	"NOT", "SO", "AS", "THAT", "THIS", "THESE", "THOSE",
}

var commonWordIndex = index.NewIndex(commonWordList, strings.Compare)

// IsCommonWord reports whether s (already upper-cased) is an exact member
// of the fixed common-word set.
func IsCommonWord(s []byte) bool {
	return len(commonWordIndex.Search(string(s))) > 0
}
