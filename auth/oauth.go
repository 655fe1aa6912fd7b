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

// Package auth builds authenticated HTTP clients for the Dropbox API and
// stores credentials in the system keyring.
package auth

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// Endpoint is Dropbox's OAuth2 endpoint.
var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://www.dropbox.com/oauth2/authorize",
	TokenURL: "https://api.dropboxapi.com/oauth2/token",
}

// NewClient returns an *http.Client whose transport exchanges the refresh
// token for short-lived access tokens and renews them transparently.
// Dropbox issues refresh tokens that never expire; the access token is
// marked stale so the first request triggers an exchange.
func NewClient(ctx context.Context, appKey, appSecret, refreshToken string) *http.Client {
	conf := &oauth2.Config{
		ClientID:     appKey,
		ClientSecret: appSecret,
		Endpoint:     Endpoint,
	}

	stale := &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Minute),
	}

	return conf.Client(ctx, stale)
}
