// Copyright © 2026 dropbox-data-science authors
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

package folder

import (
	"errors"
	"fmt"
)

var (
	// ErrDeleted is returned by State methods called after Delete.
	ErrDeleted = errors.New("folder state is deleted")

	// ErrAlreadyRunning is returned by Monitor.Run when the monitor is
	// already polling.
	ErrAlreadyRunning = errors.New("monitor is already running")
)

// FileError wraps a storage failure during a Handle operation.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// FolderError wraps a storage failure during a State operation.
type FolderError struct {
	Op   string
	Path string
	Err  error
}

func (e *FolderError) Error() string {
	return fmt.Sprintf("folder %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FolderError) Unwrap() error { return e.Err }

// ReconcileError marks an unrecoverable reconciliation failure, such as a
// cursor the backend no longer recognizes. Retrying the same refresh
// cannot succeed; the caller must rebuild the state from a full listing.
type ReconcileError struct {
	Path string
	Err  error
}

func (e *ReconcileError) Error() string {
	return fmt.Sprintf("reconcile %s: %v", e.Path, e.Err)
}

func (e *ReconcileError) Unwrap() error { return e.Err }
