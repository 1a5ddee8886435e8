// Copyright 2026 The ntfs-parse Authors.
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

package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// AsyncLogger decouples log writes from the (possibly slow, rotating) file
// write by buffering them on a channel and draining it on one goroutine.
// Messages are dropped rather than blocking the parsing pipeline when the
// buffer is full.
type AsyncLogger struct {
	w       io.Writer
	ch      chan []byte
	done    chan struct{}
	wg      sync.WaitGroup
	closeMu sync.Mutex
	closed  bool
}

// NewAsyncLogger starts a goroutine draining into w through a channel of the
// given buffer size.
func NewAsyncLogger(w io.Writer, bufferSize int) *AsyncLogger {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	al := &AsyncLogger{
		w:    w,
		ch:   make(chan []byte, bufferSize),
		done: make(chan struct{}),
	}
	al.wg.Add(1)
	go al.run()
	return al
}

func (al *AsyncLogger) run() {
	defer al.wg.Done()
	for msg := range al.ch {
		if _, err := al.w.Write(msg); err != nil {
			fmt.Fprintf(os.Stderr, "asynclogger: write error: %v\n", err)
		}
	}
}

// Write implements io.Writer. p is copied before being enqueued since the
// caller may reuse its buffer.
func (al *AsyncLogger) Write(p []byte) (int, error) {
	buf := make([]byte, len(p))
	copy(buf, p)

	select {
	case al.ch <- buf:
	default:
		fmt.Fprintln(os.Stderr, "asynclogger: log buffer is full, dropping message.")
	}
	return len(p), nil
}

// Close drains any buffered messages and stops the writer goroutine. It does
// not close the underlying writer.
func (al *AsyncLogger) Close() error {
	al.closeMu.Lock()
	defer al.closeMu.Unlock()
	if al.closed {
		return nil
	}
	al.closed = true
	close(al.ch)
	al.wg.Wait()
	return nil
}
