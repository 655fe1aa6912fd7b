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
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matryer/is"
)

func testClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewHTTPClient("test-token", 0)
	if err != nil {
		t.Fatal(err)
	}
	client.api = srv.URL
	client.content = srv.URL
	client.notify = srv.URL
	return client
}

func TestNewHTTPClient_RequiresToken(t *testing.T) {
	is := is.New(t)

	_, err := NewHTTPClient("", 0)
	is.True(errors.Is(err, ErrEmptyAccessToken))
}

func TestListFolder(t *testing.T) {
	is := is.New(t)

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.URL.Path, "/files/list_folder")
		is.Equal(r.Header.Get("Authorization"), "Bearer test-token")

		var req struct {
			Path      string `json:"path"`
			Recursive bool   `json:"recursive"`
		}
		is.NoErr(json.NewDecoder(r.Body).Decode(&req))
		is.Equal(req.Path, "/docs")
		is.Equal(req.Recursive, false)

		io.WriteString(w, `{
			"entries": [
				{".tag": "file", "name": "a.txt", "path_lower": "/docs/a.txt", "content_hash": "h1"},
				{".tag": "folder", "name": "sub", "path_lower": "/docs/sub"}
			],
			"cursor": "c1",
			"has_more": true
		}`)
	})

	entries, cursor, hasMore, err := client.ListFolder(context.Background(), "/docs", false, 0)
	is.NoErr(err)
	is.Equal(len(entries), 2)
	is.True(entries[0].IsFile())
	is.Equal(entries[1].Tag, TagFolder)
	is.Equal(cursor, "c1")
	is.True(hasMore)
}

func TestListFolder_RootMapsToEmptyPath(t *testing.T) {
	is := is.New(t)

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Path string `json:"path"`
		}
		is.NoErr(json.NewDecoder(r.Body).Decode(&req))
		is.Equal(req.Path, "")

		io.WriteString(w, `{"entries": [], "cursor": "c1", "has_more": false}`)
	})

	_, _, _, err := client.ListFolder(context.Background(), "/", false, 0)
	is.NoErr(err)
}

func TestParseError_NotFound(t *testing.T) {
	is := is.New(t)

	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		io.WriteString(w, `{"error_summary": "path/not_found/.."}`)
	})

	_, err := client.GetMetadata(context.Background(), "/docs/missing.txt")
	is.True(errors.Is(err, ErrNotFound))
}

func TestParseError_ResetCursor(t *testing.T) {
	is := is.New(t)

	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		io.WriteString(w, `{"error_summary": "reset/.."}`)
	})

	_, _, _, err := client.ListFolderContinue(context.Background(), "stale-cursor")
	is.True(errors.Is(err, ErrExpiredCursor))
}

func TestParseError_Other(t *testing.T) {
	is := is.New(t)

	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error_summary": "too_many_requests/.."}`)
	})

	_, err := client.GetMetadata(context.Background(), "/docs/a.txt")
	is.True(errors.Is(err, ErrDropboxAPI))
}

func TestUpload(t *testing.T) {
	is := is.New(t)

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.URL.Path, "/files/upload")
		is.Equal(r.Header.Get("Content-Type"), "application/octet-stream")

		var arg struct {
			Path string `json:"path"`
			Mode string `json:"mode"`
		}
		is.NoErr(json.Unmarshal([]byte(r.Header.Get("Dropbox-API-Arg")), &arg))
		is.Equal(arg.Path, "/docs/a.txt")
		is.Equal(arg.Mode, "overwrite")

		body, err := io.ReadAll(r.Body)
		is.NoErr(err)
		is.Equal(body, []byte("payload"))

		// files/upload returns FileMetadata without a .tag field.
		io.WriteString(w, `{"name": "a.txt", "path_lower": "/docs/a.txt", "content_hash": "h1"}`)
	})

	entry, err := client.Upload(context.Background(), "/docs/a.txt", []byte("payload"))
	is.NoErr(err)
	is.True(entry.IsFile())
	is.Equal(entry.ContentHash, "h1")
}

func TestGetTemporaryLinkAndFetch(t *testing.T) {
	is := is.New(t)

	var srvURL string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/files/get_temporary_link":
			io.WriteString(w, `{"metadata": {"name": "a.txt"}, "link": "`+srvURL+`/dl/abc"}`)
		case "/dl/abc":
			io.WriteString(w, "contents")
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})
	srvURL = client.api

	link, err := client.GetTemporaryLink(context.Background(), "/docs/a.txt")
	is.NoErr(err)

	data, err := client.FetchLink(context.Background(), link)
	is.NoErr(err)
	is.Equal(data, []byte("contents"))
}

func TestLongpoll(t *testing.T) {
	is := is.New(t)

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.URL.Path, "/files/list_folder/longpoll")
		// The notify endpoint takes no Authorization header.
		is.Equal(r.Header.Get("Authorization"), "")

		var req struct {
			Cursor  string `json:"cursor"`
			Timeout int    `json:"timeout"`
		}
		is.NoErr(json.NewDecoder(r.Body).Decode(&req))
		is.Equal(req.Cursor, "c1")
		is.Equal(req.Timeout, 30)

		io.WriteString(w, `{"changes": true}`)
	})

	changes, err := client.Longpoll(context.Background(), "c1", 30*time.Second)
	is.NoErr(err)
	is.True(changes)
}
