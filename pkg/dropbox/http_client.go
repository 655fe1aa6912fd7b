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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrEmptyAccessToken = errors.New("access token is required")
	ErrExpiredCursor    = errors.New("dropbox: expired cursor")
	ErrNotFound         = errors.New("dropbox: path not found")
	ErrDropboxAPI       = errors.New("dropbox API error")
)

const (
	apiURL     = "https://api.dropboxapi.com/2"
	contentURL = "https://content.dropboxapi.com/2"
	notifyURL  = "https://notify.dropboxapi.com/2"
)

type HTTPClient struct {
	accessToken string
	httpClient  *http.Client

	api     string
	content string
	notify  string
}

// NewHTTPClient creates a Dropbox client authenticated with a static access
// token. The HTTP timeout covers the longpoll window plus a 90-second
// buffer for Dropbox's jitter on longpoll requests.
// Docs: https://www.dropbox.com/developers/documentation/http/documentation#files-list_folder-longpoll
func NewHTTPClient(accessToken string, longpollTimeout time.Duration) (*HTTPClient, error) {
	if accessToken == "" {
		return nil, ErrEmptyAccessToken
	}

	return &HTTPClient{
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: longpollTimeout + 90*time.Second},
		api:         apiURL,
		content:     contentURL,
		notify:      notifyURL,
	}, nil
}

// NewHTTPClientFrom creates a Dropbox client on top of an existing
// *http.Client, typically one whose transport injects OAuth credentials
// (see the auth package). The caller owns the client's timeout.
func NewHTTPClientFrom(httpClient *http.Client) *HTTPClient {
	return &HTTPClient{
		httpClient: httpClient,
		api:        apiURL,
		content:    contentURL,
		notify:     notifyURL,
	}
}

func (c *HTTPClient) ListFolder(ctx context.Context, path string, recursive bool, limit int) ([]Entry, string, bool, error) {
	reqBody := struct {
		Path      string `json:"path"`
		Recursive bool   `json:"recursive"`
		Limit     int    `json:"limit,omitempty"`
	}{apiPath(path), recursive, limit}

	var parsed struct {
		Entries []Entry `json:"entries"`
		Cursor  string  `json:"cursor"`
		HasMore bool    `json:"has_more"`
	}

	if err := c.rpc(ctx, c.api+"/files/list_folder", reqBody, &parsed); err != nil {
		return nil, "", false, err
	}

	return parsed.Entries, parsed.Cursor, parsed.HasMore, nil
}

func (c *HTTPClient) ListFolderContinue(ctx context.Context, cursor string) ([]Entry, string, bool, error) {
	reqBody := struct {
		Cursor string `json:"cursor"`
	}{cursor}

	var parsed struct {
		Entries []Entry `json:"entries"`
		Cursor  string  `json:"cursor"`
		HasMore bool    `json:"has_more"`
	}

	if err := c.rpc(ctx, c.api+"/files/list_folder/continue", reqBody, &parsed); err != nil {
		return nil, "", false, err
	}

	return parsed.Entries, parsed.Cursor, parsed.HasMore, nil
}

func (c *HTTPClient) Longpoll(ctx context.Context, cursor string, timeout time.Duration) (bool, error) {
	reqBody := struct {
		Cursor  string `json:"cursor"`
		Timeout int    `json:"timeout"`
	}{cursor, int(timeout.Seconds())}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return false, fmt.Errorf("marshal request failed: %w", err)
	}

	// No Authorization required for the notify endpoint.
	headers := map[string]string{"Content-Type": "application/json"}

	resp, err := c.makeRequest(ctx, http.MethodPost, c.notify+"/files/list_folder/longpoll", headers, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	var parsed struct {
		Changes bool `json:"changes"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return false, fmt.Errorf("decode response failed: %w", err)
	}

	return parsed.Changes, nil
}

func (c *HTTPClient) CreateFolder(ctx context.Context, path string) error {
	reqBody := struct {
		Path       string `json:"path"`
		Autorename bool   `json:"autorename"`
	}{path, false}

	var parsed struct {
		Metadata Entry `json:"metadata"`
	}

	return c.rpc(ctx, c.api+"/files/create_folder_v2", reqBody, &parsed)
}

func (c *HTTPClient) Delete(ctx context.Context, path string) error {
	reqBody := struct {
		Path string `json:"path"`
	}{path}

	var parsed struct {
		Metadata Entry `json:"metadata"`
	}

	return c.rpc(ctx, c.api+"/files/delete_v2", reqBody, &parsed)
}

func (c *HTTPClient) GetMetadata(ctx context.Context, path string) (Entry, error) {
	reqBody := struct {
		Path string `json:"path"`
	}{path}

	var entry Entry
	if err := c.rpc(ctx, c.api+"/files/get_metadata", reqBody, &entry); err != nil {
		return Entry{}, err
	}

	return entry, nil
}

func (c *HTTPClient) GetTemporaryLink(ctx context.Context, path string) (string, error) {
	reqBody := struct {
		Path string `json:"path"`
	}{path}

	var parsed temporaryLinkResponse
	if err := c.rpc(ctx, c.api+"/files/get_temporary_link", reqBody, &parsed); err != nil {
		return "", err
	}

	return parsed.Link, nil
}

func (c *HTTPClient) FetchLink(ctx context.Context, link string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w (status %d)", ErrDropboxAPI, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (c *HTTPClient) Upload(ctx context.Context, path string, data []byte) (Entry, error) {
	argHeader, err := json.Marshal(struct {
		Path string `json:"path"`
		Mode string `json:"mode"`
		Mute bool   `json:"mute"`
	}{path, "overwrite", true})
	if err != nil {
		return Entry{}, fmt.Errorf("marshal dropbox-api-arg failed: %w", err)
	}

	headers := map[string]string{
		"Dropbox-API-Arg": string(argHeader),
		"Content-Type":    "application/octet-stream",
	}
	c.authorize(headers)

	resp, err := c.makeRequest(ctx, http.MethodPost, c.content+"/files/upload", headers, bytes.NewReader(data))
	if err != nil {
		return Entry{}, err
	}
	defer resp.Body.Close()

	var entry Entry
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		return Entry{}, fmt.Errorf("decode response failed: %w", err)
	}

	// files/upload returns FileMetadata without a .tag field.
	entry.Tag = TagFile
	return entry, nil
}

func (c *HTTPClient) Move(ctx context.Context, fromPath, toPath string) (Entry, error) {
	return c.relocate(ctx, "/files/move_v2", fromPath, toPath)
}

func (c *HTTPClient) Copy(ctx context.Context, fromPath, toPath string) (Entry, error) {
	return c.relocate(ctx, "/files/copy_v2", fromPath, toPath)
}

func (c *HTTPClient) relocate(ctx context.Context, endpoint, fromPath, toPath string) (Entry, error) {
	reqBody := struct {
		FromPath string `json:"from_path"`
		ToPath   string `json:"to_path"`
	}{fromPath, toPath}

	var parsed relocationResponse
	if err := c.rpc(ctx, c.api+endpoint, reqBody, &parsed); err != nil {
		return Entry{}, err
	}

	return parsed.Metadata, nil
}

// rpc performs an authorized JSON-in JSON-out call against an RPC-style
// endpoint.
func (c *HTTPClient) rpc(ctx context.Context, url string, reqBody, respBody any) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request failed: %w", err)
	}

	headers := map[string]string{"Content-Type": "application/json"}
	c.authorize(headers)

	resp, err := c.makeRequest(ctx, http.MethodPost, url, headers, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("decode response failed: %w", err)
	}

	return nil
}

func (c *HTTPClient) authorize(headers map[string]string) {
	// With NewHTTPClientFrom the transport injects credentials itself.
	if c.accessToken != "" {
		headers["Authorization"] = "Bearer " + c.accessToken
	}
}

func (c *HTTPClient) makeRequest(ctx context.Context, method, url string, headers map[string]string, reqBody io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	for header, value := range headers {
		req.Header.Set(header, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, parseError(resp)
	}

	return resp, nil
}

// apiPath maps the conventional root "/" onto the empty string the
// list_folder endpoint expects.
func apiPath(path string) string {
	if path == "/" {
		return ""
	}
	return path
}

func parseError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read error response: %w", err)
	}

	var jsonErr struct {
		ErrorSummary string `json:"error_summary"`
	}
	if err := json.Unmarshal(body, &jsonErr); err == nil && jsonErr.ErrorSummary != "" {
		switch {
		case strings.HasPrefix(jsonErr.ErrorSummary, "reset/"):
			return ErrExpiredCursor
		case strings.Contains(jsonErr.ErrorSummary, "not_found/"):
			return fmt.Errorf("%w: %s", ErrNotFound, jsonErr.ErrorSummary)
		default:
			return fmt.Errorf("%w: %s", ErrDropboxAPI, jsonErr.ErrorSummary)
		}
	}

	return fmt.Errorf("%w (status %d): %s", ErrDropboxAPI, resp.StatusCode, string(body))
}
