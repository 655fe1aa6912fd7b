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

package dropbox

import (
	"context"
	"time"
)

// Client is the set of Dropbox operations the rest of the module depends
// on. Implemented by HTTPClient; replaced with MockClient in tests.
type Client interface {
	// ListFolder returns metadata for the contents of path along with a
	// cursor and a flag indicating whether more pages are available.
	// Docs: https://www.dropbox.com/developers/documentation/http/documentation#files-list_folder
	ListFolder(ctx context.Context, path string, recursive bool, limit int) ([]Entry, string, bool, error)

	// ListFolderContinue retrieves additional results from a previous
	// ListFolder call, or the changes recorded since the given cursor.
	// Docs: https://www.dropbox.com/developers/documentation/http/documentation#files-list_folder-continue
	ListFolderContinue(ctx context.Context, cursor string) ([]Entry, string, bool, error)

	// Longpoll blocks until the folder behind cursor changes or the
	// timeout elapses.
	// Docs: https://www.dropbox.com/developers/documentation/http/documentation#files-list_folder-longpoll
	Longpoll(ctx context.Context, cursor string, timeout time.Duration) (bool, error)

	// CreateFolder creates an empty folder at path.
	CreateFolder(ctx context.Context, path string) error

	// Delete removes the file or folder at path. Deleting a folder
	// removes its contents as well.
	Delete(ctx context.Context, path string) error

	// GetMetadata resolves the current metadata for a single path.
	// Returns an error wrapping ErrNotFound when the path does not exist.
	GetMetadata(ctx context.Context, path string) (Entry, error)

	// GetTemporaryLink returns a short-lived direct download URL for a file.
	GetTemporaryLink(ctx context.Context, path string) (string, error)

	// FetchLink downloads the content behind a link previously returned
	// by GetTemporaryLink.
	FetchLink(ctx context.Context, link string) ([]byte, error)

	// Upload writes data to path, overwriting any existing file, and
	// returns the resulting metadata.
	Upload(ctx context.Context, path string, data []byte) (Entry, error)

	// Move renames fromPath to toPath and returns the new metadata.
	Move(ctx context.Context, fromPath, toPath string) (Entry, error)

	// Copy duplicates fromPath at toPath and returns the new metadata.
	Copy(ctx context.Context, fromPath, toPath string) (Entry, error)
}
