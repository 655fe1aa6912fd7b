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
	"context"
	"errors"
	"path"
	"sort"

	"github.com/AjitisAjit/dropbox-data-science/pkg/dropbox"
)

// State tracks the direct child files of one remote directory through an
// opaque change cursor. An empty cursor means the folder has never been
// listed; the first Refresh performs a full listing, later ones fetch only
// the changes recorded since. Not safe for concurrent use: a refresh
// read-modify-writes the cursor/snapshot pair.
type State struct {
	client    dropbox.Client
	path      string
	cursor    string
	snapshot  map[string]*Handle
	batchSize int
	deleted   bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithBatchSize sets the page size requested from list_folder.
// Dropbox accepts 1-2000.
func WithBatchSize(n int) StateOption {
	return func(s *State) { s.batchSize = n }
}

// NewState creates an uninitialized State for folderPath. No network
// calls are made until Refresh.
func NewState(client dropbox.Client, folderPath string, opts ...StateOption) *State {
	s := &State{
		client:   client,
		path:     normalizePath(folderPath),
		snapshot: make(map[string]*Handle),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the normalized directory path this state tracks.
func (s *State) Path() string { return s.path }

// Cursor returns the current change cursor; empty until the first
// successful Refresh.
func (s *State) Cursor() string { return s.cursor }

// Snapshot returns the tracked files as a fresh path-sorted slice. The
// returned slice is a point-in-time copy; later refreshes never mutate it.
func (s *State) Snapshot() []*Handle {
	handles := make([]*Handle, 0, len(s.snapshot))
	for _, h := range s.snapshot {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i].path < handles[j].path })
	return handles
}

// Create requests creation of the tracked directory. Provider failures
// (already exists, permission denied) are surfaced, never swallowed.
func (s *State) Create(ctx context.Context) error {
	if s.deleted {
		return &FolderError{Op: "create", Path: s.path, Err: ErrDeleted}
	}
	if err := s.client.CreateFolder(ctx, s.path); err != nil {
		return &FolderError{Op: "create", Path: s.path, Err: err}
	}
	return nil
}

// Delete removes the remote directory and marks the state terminal.
// Subsequent Refresh/Create calls fail fast with ErrDeleted.
func (s *State) Delete(ctx context.Context) error {
	if s.deleted {
		return &FolderError{Op: "delete", Path: s.path, Err: ErrDeleted}
	}
	if err := s.client.Delete(ctx, s.path); err != nil {
		return &FolderError{Op: "delete", Path: s.path, Err: err}
	}

	s.deleted = true
	s.cursor = ""
	s.snapshot = make(map[string]*Handle)
	return nil
}

// Refresh brings the snapshot up to date. Without a cursor it performs a
// full listing; with one it fetches and reconciles the delta. All pages
// of a batch are accumulated before reconciling, since a later page may
// delete an entry introduced by an earlier one.
func (s *State) Refresh(ctx context.Context) error {
	if s.deleted {
		return &FolderError{Op: "refresh", Path: s.path, Err: ErrDeleted}
	}

	var (
		entries []dropbox.Entry
		cursor  string
		err     error
	)
	if s.cursor == "" {
		entries, cursor, err = s.listAll(ctx)
	} else {
		entries, cursor, err = s.listChanges(ctx)
	}
	if err != nil {
		if errors.Is(err, dropbox.ErrExpiredCursor) {
			return &ReconcileError{Path: s.path, Err: err}
		}
		return &FolderError{Op: "refresh", Path: s.path, Err: err}
	}

	s.snapshot = s.reconcile(entries)
	s.cursor = cursor
	return nil
}

// listAll performs a full non-recursive listing of the folder.
func (s *State) listAll(ctx context.Context) ([]dropbox.Entry, string, error) {
	entries, cursor, hasMore, err := s.client.ListFolder(ctx, s.path, false, s.batchSize)
	if err != nil {
		return nil, "", err
	}
	return s.drain(ctx, entries, cursor, hasMore)
}

// listChanges fetches every change recorded since the current cursor.
func (s *State) listChanges(ctx context.Context) ([]dropbox.Entry, string, error) {
	entries, cursor, hasMore, err := s.client.ListFolderContinue(ctx, s.cursor)
	if err != nil {
		return nil, "", err
	}
	return s.drain(ctx, entries, cursor, hasMore)
}

// drain exhausts the pagination, concatenating entries until the backend
// reports no more pages. Cancellation is checked between pages.
func (s *State) drain(ctx context.Context, entries []dropbox.Entry, cursor string, hasMore bool) ([]dropbox.Entry, string, error) {
	for hasMore {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		var page []dropbox.Entry
		var err error
		page, cursor, hasMore, err = s.client.ListFolderContinue(ctx, cursor)
		if err != nil {
			return nil, "", err
		}
		entries = append(entries, page...)
	}
	return entries, cursor, nil
}

// reconcile merges a batch of change records into a new snapshot map.
// Starting from the surviving old members, records apply in delivery
// order: the last record for a path wins, so a deletion on a later page
// cancels a file introduced on an earlier one and a re-add after a
// deletion restores it. Folder records are ignored.
func (s *State) reconcile(entries []dropbox.Entry) map[string]*Handle {
	next := make(map[string]*Handle, len(s.snapshot)+len(entries))
	for p, h := range s.snapshot {
		if s.inScope(p) {
			next[p] = h
		}
	}

	for _, entry := range entries {
		p := normalizePath(entryPath(entry))
		switch {
		case entry.IsDeleted():
			delete(next, p)
		case entry.IsFile() && s.inScope(p):
			next[p] = newHandleFromEntry(s.client, entry)
		}
	}

	return next
}

// inScope reports whether p is a direct child of the tracked folder.
// Entries in nested subfolders never enter the snapshot, even when the
// backend reports them.
func (s *State) inScope(p string) bool {
	return path.Dir(p) == s.path
}
