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

package config

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingCredentials     = errors.New("either an access token or app key/refresh token credentials are required")
	ErrInvalidPath            = errors.New("path must be absolute, starting with '/'")
	ErrInvalidBatchSize       = errors.New("batch size is out of allowed range [1-2000]")
	ErrInvalidPollingPeriod   = errors.New("polling period must be at least 1s")
	ErrInvalidLongpollTimeout = errors.New("longpoll timeout is out of allowed range [30s-480s]")
)

// Config holds the settings for watching one Dropbox folder.
type Config struct {
	// Dropbox access token. Takes precedence over the refresh credentials.
	Token string
	// OAuth app credentials plus refresh token, used when Token is empty.
	AppKey       string
	AppSecret    string
	RefreshToken string

	// Folder to track, as an absolute Dropbox path.
	Path string
	// Delay between poll iterations.
	PollingPeriod time.Duration
	// Timeout for longpoll requests; zero disables longpolling.
	LongpollTimeout time.Duration
	// Consecutive refresh failures tolerated before the monitor stops.
	// Negative means unlimited.
	Retries int
	// Page size for listing requests; zero lets the backend choose.
	BatchSize int
}

// Validate checks credentials and Dropbox API limits.
// Docs: https://www.dropbox.com/developers/documentation/http/documentation#files-list_folder
func (c *Config) Validate() error {
	if c.Token == "" && (c.AppKey == "" || c.RefreshToken == "") {
		return ErrMissingCredentials
	}
	if c.Path == "" || !strings.HasPrefix(c.Path, "/") {
		return ErrInvalidPath
	}
	if c.BatchSize != 0 && (c.BatchSize < 1 || c.BatchSize > 2000) {
		return ErrInvalidBatchSize
	}
	if c.PollingPeriod != 0 && c.PollingPeriod < time.Second {
		return ErrInvalidPollingPeriod
	}
	if c.LongpollTimeout != 0 && (c.LongpollTimeout < 30*time.Second || c.LongpollTimeout > 480*time.Second) {
		return ErrInvalidLongpollTimeout
	}
	return nil
}
