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
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/AjitisAjit/dropbox-data-science/pkg/dropbox"
)

// timeFormat prefixes uploaded file names when timestamping is requested.
// Sortable: lexical order equals chronological order.
const timeFormat = "20060102_15:04"

// timeNow is swapped in tests.
var timeNow = time.Now

// Handle identifies one remote file by its normalized path. Identity is
// the path alone; the modification time and content hash are a cache,
// populated from listing entries or lazily on first access. A Handle is
// owned by a single State and is not safe for concurrent use.
type Handle struct {
	client       dropbox.Client
	path         string
	lastModified time.Time
	contentHash  string
}

// NewHandle creates a Handle from a bare path. Metadata is resolved from
// the backend on first access.
func NewHandle(client dropbox.Client, filePath string) *Handle {
	return &Handle{client: client, path: normalizePath(filePath)}
}

func newHandleFromEntry(client dropbox.Client, entry dropbox.Entry) *Handle {
	return &Handle{
		client:       client,
		path:         normalizePath(entryPath(entry)),
		lastModified: entry.ClientModified,
		contentHash:  entry.ContentHash,
	}
}

// Path returns the normalized path identifying this handle.
func (h *Handle) Path() string { return h.path }

// Equal reports whether two handles identify the same remote file.
// Cached metadata does not participate.
func (h *Handle) Equal(other *Handle) bool {
	return other != nil && h.path == other.path
}

func (h *Handle) String() string {
	return fmt.Sprintf("Handle(path=%s, last_modified=%s, content_hash=%s)", h.path, h.lastModified, h.contentHash)
}

// Exists checks whether the file is present on the backend. A not-found
// answer is a normal outcome, not an error; any other failure is wrapped.
func (h *Handle) Exists(ctx context.Context) (bool, error) {
	err := h.resolveMetadata(ctx)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, dropbox.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// LastModified returns the cached modification time, resolving metadata
// from the backend if the cache is empty.
func (h *Handle) LastModified(ctx context.Context) (time.Time, error) {
	if !h.lastModified.IsZero() {
		return h.lastModified, nil
	}
	if err := h.resolveMetadata(ctx); err != nil {
		return time.Time{}, err
	}
	return h.lastModified, nil
}

// ContentHash returns the cached content hash, resolving metadata from
// the backend if the cache is empty.
func (h *Handle) ContentHash(ctx context.Context) (string, error) {
	if h.contentHash != "" {
		return h.contentHash, nil
	}
	if err := h.resolveMetadata(ctx); err != nil {
		return "", err
	}
	return h.contentHash, nil
}

// Upload overwrites the remote file with data. When timestamped is true
// the handle's path is first rewritten to dir/<UTC timestamp>basename, so
// repeated uploads produce distinct, sortable names. The metadata cache
// is refreshed from the server response.
func (h *Handle) Upload(ctx context.Context, data []byte, timestamped bool) error {
	if timestamped {
		name := timeNow().UTC().Format(timeFormat) + path.Base(h.path)
		h.path = path.Join(path.Dir(h.path), name)
	}

	entry, err := h.client.Upload(ctx, h.path, data)
	if err != nil {
		return &FileError{Op: "upload", Path: h.path, Err: err}
	}

	h.cacheFrom(entry)
	return nil
}

// Download fetches the file content through a short-lived direct link.
func (h *Handle) Download(ctx context.Context) ([]byte, error) {
	link, err := h.client.GetTemporaryLink(ctx, h.path)
	if err != nil {
		return nil, &FileError{Op: "download", Path: h.path, Err: err}
	}

	data, err := h.client.FetchLink(ctx, link)
	if err != nil {
		return nil, &FileError{Op: "download", Path: h.path, Err: err}
	}

	return data, nil
}

// Move renames the remote file and rebinds the handle to the new path,
// re-resolving metadata from the server response.
func (h *Handle) Move(ctx context.Context, dest string) error {
	entry, err := h.client.Move(ctx, h.path, normalizePath(dest))
	if err != nil {
		return &FileError{Op: "move", Path: h.path, Err: err}
	}

	h.cacheFrom(entry)
	return nil
}

// Copy duplicates the remote file at dest. The handle itself is not
// mutated; the copy is an independent remote object.
func (h *Handle) Copy(ctx context.Context, dest string) error {
	if _, err := h.client.Copy(ctx, h.path, normalizePath(dest)); err != nil {
		return &FileError{Op: "copy", Path: h.path, Err: err}
	}
	return nil
}

// Delete removes the remote file. The handle keeps its path and stale
// cache; further operations will fail against the backend.
func (h *Handle) Delete(ctx context.Context) error {
	if err := h.client.Delete(ctx, h.path); err != nil {
		return &FileError{Op: "delete", Path: h.path, Err: err}
	}
	return nil
}

// resolveMetadata fetches current metadata and refreshes the path casing
// and cached fields in one round trip.
func (h *Handle) resolveMetadata(ctx context.Context) error {
	entry, err := h.client.GetMetadata(ctx, h.path)
	if err != nil {
		return &FileError{Op: "metadata", Path: h.path, Err: err}
	}

	h.cacheFrom(entry)
	return nil
}

func (h *Handle) cacheFrom(entry dropbox.Entry) {
	if p := entryPath(entry); p != "" {
		h.path = normalizePath(p)
	}
	h.lastModified = entry.ClientModified
	h.contentHash = entry.ContentHash
}

// entryPath prefers the backend's canonical lower-cased path.
func entryPath(entry dropbox.Entry) string {
	if entry.PathLower != "" {
		return entry.PathLower
	}
	return entry.PathDisplay
}

// normalizePath case-folds and cleans a remote path, guaranteeing a
// leading slash. Dropbox paths are case-insensitive; the lower-cased form
// is the identity key everywhere in this package.
func normalizePath(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
