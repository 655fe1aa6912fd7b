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

import "time"

// Tags identifying the kind of a listing entry.
const (
	TagFile    = "file"
	TagFolder  = "folder"
	TagDeleted = "deleted"
)

// Entry represents metadata for files, folders, or deleted items as
// returned by the list_folder family of endpoints. Deleted entries carry
// only the tag, name and paths.
// Docs: https://www.dropbox.com/developers/documentation/http/documentation#files-list_folder
type Entry struct {
	Tag            string    `json:".tag"`
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	PathLower      string    `json:"path_lower"`
	PathDisplay    string    `json:"path_display"`
	ClientModified time.Time `json:"client_modified"`
	ServerModified time.Time `json:"server_modified"`
	Size           uint64    `json:"size,omitempty"`
	ContentHash    string    `json:"content_hash,omitempty"`
}

// IsFile reports whether the entry describes an existing file.
func (e Entry) IsFile() bool { return e.Tag == TagFile }

// IsDeleted reports whether the entry marks a removed path.
func (e Entry) IsDeleted() bool { return e.Tag == TagDeleted }

// temporaryLinkResponse is returned by files/get_temporary_link.
type temporaryLinkResponse struct {
	Metadata Entry  `json:"metadata"`
	Link     string `json:"link"`
}

// relocationResponse is returned by files/move_v2 and files/copy_v2.
type relocationResponse struct {
	Metadata Entry `json:"metadata"`
}
