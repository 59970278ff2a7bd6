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
	"bufio"
	"io"
)

// isWordByte reports whether b is part of a word: anything but whitespace
// and ASCII control characters.
func isWordByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return false
	default:
		return b >= 0x20 && b != 0x7F
	}
}

// Word is a single word found in a buffer or a file: the raw bytes, and
// (when found via WordsInFile) the ref of the line it belongs to.
type Word struct {
	// Bytes are the raw, unmodified bytes of the word.
	Bytes []byte

	// Ref is the offset of the first byte following the most recent
	// newline at the point this word was found (the indexing "ref").
	Ref int64

	// Progress is bytes consumed / total size, set by WordIterator when the
	// total size is known (WordsInFile always knows it).
	Progress float64
}

// EachWord invokes fn once for every maximal run of non-whitespace,
// non-control bytes in s. fn returns false to stop iteration early; EachWord
// then returns false.
func EachWord(s []byte, fn func(w Word) bool) bool {
	i := 0
	for i < len(s) {
		for i < len(s) && !isWordByte(s[i]) {
			i++
		}
		start := i
		for i < len(s) && isWordByte(s[i]) {
			i++
		}
		if i > start {
			if !fn(Word{Bytes: s[start:i]}) {
				return false
			}
		}
	}
	return true
}

// WordAt returns the maximal run of word bytes in s containing offset pos,
// used by scoring to recover the whole word a keyword match landed inside of
// (for the edit-distance component of the score). If pos falls on a
// non-word byte, it returns the next word starting at or after pos, or nil
// if there isn't one.
func WordAt(s []byte, pos int) []byte {
	if pos < 0 || pos > len(s) {
		return nil
	}

	start, end := pos, pos
	for start > 0 && isWordByte(s[start-1]) {
		start--
	}
	for end < len(s) && isWordByte(s[end]) {
		end++
	}
	if start != end {
		return s[start:end]
	}

	for end < len(s) && !isWordByte(s[end]) {
		end++
	}
	start = end
	for end < len(s) && isWordByte(s[end]) {
		end++
	}
	if start == end {
		return nil
	}
	return s[start:end]
}

// WordIterator pulls words one at a time from an io.Reader, tracking the
// running ref (the offset following the most recently seen newline) and the
// fraction of the file consumed so far. It re-expresses the C
// implementation's callback-driven deen_for_each_word_from_file as a
// pull-style iterator: the caller polls cancellation and reports progress
// between calls to Next, instead of the iterator invoking callbacks itself.
type WordIterator struct {
	s        *bufio.Scanner
	size     int64
	consumed int64
	ref      int64
	err      error
}

// NewWordIterator returns a WordIterator over r. size is the total size of
// the underlying data in bytes, used to compute Word.Progress; pass 0 if
// unknown (Progress will then always read 0).
func NewWordIterator(r io.Reader, size int64) *WordIterator {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	it := &WordIterator{s: s, size: size}
	s.Split(it.splitWord)
	return it
}

// Err returns the first error encountered by the iterator, if any.
func (it *WordIterator) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.s.Err()
}

// Next advances to the next word and returns it along with true, or a zero
// Word and false at EOF or on error (check Err to distinguish the two).
func (it *WordIterator) Next() (Word, bool) {
	if !it.s.Scan() {
		return Word{}, false
	}
	b := it.s.Bytes()
	w := Word{
		Bytes: append([]byte(nil), b...),
		Ref:   it.ref,
	}
	if it.size > 0 {
		w.Progress = float64(it.consumed) / float64(it.size)
	}
	return w, true
}

// splitWord is a bufio.SplitFunc that emits one token per word while
// tracking the running ref and consumed-byte count as it skips whitespace.
// Words that straddle a block boundary are naturally kept whole by
// bufio.Scanner's buffering, which re-requests data via ErrFinalToken's
// sibling path (request more data) until a full token is available.
func (it *WordIterator) splitWord(data []byte, atEOF bool) (advance int, token []byte, err error) {
	i := 0
	for i < len(data) && !isWordByte(data[i]) {
		if data[i] == '\n' {
			it.ref = it.consumed + int64(i) + 1
		}
		i++
	}

	if i == len(data) {
		if atEOF {
			it.consumed += int64(i)
			return i, nil, nil
		}
		// Request more data; nothing consumed yet so the ref bookkeeping
		// above would be re-done — instead we commit it now and report
		// advance so the scanner doesn't re-scan these bytes.
		it.consumed += int64(i)
		return i, nil, nil
	}

	start := i
	for i < len(data) && isWordByte(data[i]) {
		i++
	}

	if i == len(data) && !atEOF {
		// The word may continue in the next block; ask for more without
		// consuming what we've matched so far.
		if start > 0 {
			it.consumed += int64(start)
			return start, nil, nil
		}
		return 0, nil, nil
	}

	tok := data[start:i]
	it.consumed += int64(i)
	return i, tok, nil
}
