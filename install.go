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

package deen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dingsearch/deen/indexer"
	"github.com/dingsearch/deen/internal/text"
	"github.com/dingsearch/deen/store"
)

// checkDingBufferSize is the number of leading bytes of a candidate DING
// file that CheckForDingFormat inspects.
const checkDingBufferSize = 4096

// FormatCheckResult is the outcome of CheckForDingFormat.
type FormatCheckResult int

const (
	// FormatOK means the file looks like a DING file and can be installed.
	FormatOK FormatCheckResult = iota
	// FormatIsCompressed means the file name ends in .gz.
	FormatIsCompressed
	// FormatIOProblem means the file could not be opened or read.
	FormatIOProblem
	// FormatTooSmall means the file is under checkDingBufferSize bytes.
	FormatTooSmall
	// FormatBadFormat means no valid data line was found in the leading
	// buffer.
	FormatBadFormat
)

// String implements fmt.Stringer.
func (r FormatCheckResult) String() string {
	switch r {
	case FormatOK:
		return "OK"
	case FormatIsCompressed:
		return "IS_COMPRESSED"
	case FormatIOProblem:
		return "IO_PROBLEM"
	case FormatTooSmall:
		return "TOO_SMALL"
	case FormatBadFormat:
		return "BAD_FORMAT"
	default:
		return "UNKNOWN"
	}
}

// CheckForDingFormat inspects path and reports whether it looks like an
// installable DING file: a .gz suffix is rejected outright, files under
// 4 KiB are rejected, and within the leading 4 KiB the first complete,
// non-comment, non-blank line must contain "::".
func CheckForDingFormat(path string) (FormatCheckResult, error) {
	if strings.HasSuffix(path, ".gz") {
		return FormatIsCompressed, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return FormatIOProblem, fmt.Errorf("deen: opening %q: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, checkDingBufferSize)
	n, err := io.ReadFull(f, buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return FormatTooSmall, nil
		}
		return FormatIOProblem, fmt.Errorf("deen: reading %q: %w", path, err)
	}
	buf = buf[:n]

	return scanForDingLine(buf), nil
}

// scanForDingLine walks buf line by line: a line only counts if a newline
// terminates it before the buffer runs out, so a trailing fragment with no
// newline at the end of buf is discarded rather than inspected for "::".
// Comment lines (leading "#") and blank lines are skipped; the first line
// that is neither must contain "::" or the file is rejected outright -
// scanning does not continue past it.
func scanForDingLine(buf []byte) FormatCheckResult {
	upto := 0
	for upto < len(buf) {
		start := upto
		for upto < len(buf) && buf[upto] != '\n' {
			upto++
		}
		if upto >= len(buf) {
			break
		}
		line := buf[start:upto]
		upto++

		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte("::")) {
			return FormatOK
		}
		return FormatBadFormat
	}
	return FormatBadFormat
}

// State is a stage in the install state machine delivered through
// ProgressFunc.
type State int

const (
	// StateIdle is the state before install starts and the state reported
	// after a cancelled install returns.
	StateIdle State = iota
	// StateStarting is reported once, before the copy and indexing begin.
	StateStarting
	// StateIndexing is reported repeatedly during indexing, with Fraction
	// advancing from 0 to 1.
	StateIndexing
	// StateCompleted is reported once indexing finishes and the
	// transaction commits.
	StateCompleted
	// StateError is reported if installation fails for any reason other
	// than cancellation.
	StateError
)

// Progress is delivered to a ProgressFunc during Install.
type Progress struct {
	State    State
	Fraction float64
}

// ProgressFunc observes install progress. It may be nil.
type ProgressFunc func(Progress)

// CancelFunc is polled during indexing; returning true aborts the install.
// It may be nil.
type CancelFunc func() bool

// ErrCancelled is returned by Install when cancel reported true. It is not
// treated as an install failure: no data is left behind under rootDir, and
// the final progress state reported is StateIdle.
var ErrCancelled = errors.New("deen: install cancelled")

// Install copies dingPath byte-for-byte into rootDir and builds its prefix
// index in a single transaction. Cancellation and failure both remove any
// partially written files before returning.
func Install(ctx context.Context, rootDir, dingPath string, progress ProgressFunc, cancel CancelFunc) error {
	emit := func(p Progress) {
		if progress != nil {
			progress(p)
		}
	}

	emit(Progress{State: StateStarting})

	check, err := CheckForDingFormat(dingPath)
	if err != nil {
		emit(Progress{State: StateError})
		return err
	}
	if check != FormatOK {
		emit(Progress{State: StateError})
		return fmt.Errorf("deen: %s: %s", dingPath, check)
	}

	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		emit(Progress{State: StateError})
		return fmt.Errorf("deen: creating %q: %w", rootDir, err)
	}

	dPath, sPath := dataPath(rootDir), storePath(rootDir)
	os.Remove(dPath)
	os.Remove(sPath)

	if err := copyFile(dingPath, dPath); err != nil {
		os.Remove(dPath)
		emit(Progress{State: StateError})
		return fmt.Errorf("deen: copying %q: %w", dingPath, err)
	}

	if err := runIndexing(ctx, dPath, sPath, progress, cancel); err != nil {
		os.Remove(dPath)
		os.Remove(sPath)
		if err == indexer.ErrCancelled {
			emit(Progress{State: StateIdle})
			return ErrCancelled
		}
		emit(Progress{State: StateError})
		return err
	}

	emit(Progress{State: StateCompleted})
	return nil
}

// runIndexing opens the store and the just-copied data file, runs the
// indexer inside one transaction, and commits. On any error (including
// cancellation) the transaction is rolled back and the store is closed
// before returning; the caller is responsible for removing the data files.
func runIndexing(ctx context.Context, dataPath, storePath string, progress ProgressFunc, cancel CancelFunc) error {
	st, err := store.Open(storePath)
	if err != nil {
		return fmt.Errorf("deen: opening store: %w", err)
	}
	defer st.Close()

	tx, err := st.Begin(ctx)
	if err != nil {
		return fmt.Errorf("deen: beginning transaction: %w", err)
	}

	it, closeFile, err := text.WordsInFile(dataPath)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer closeFile()

	indexProgress := func(pct int) {
		if progress != nil {
			progress(Progress{State: StateIndexing, Fraction: float64(pct) / 100})
		}
	}

	if err := indexer.Run(ctx, it, tx, indexProgress, indexer.CancelFunc(cancel)); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("deen: committing index: %w", err)
	}
	return nil
}

// copyFile copies src to dst byte-for-byte.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
