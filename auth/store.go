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

package auth

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// ErrNoCredentials is returned by Load when no credentials are stored for
// the profile.
var ErrNoCredentials = errors.New("no stored credentials for profile")

const serviceName = "dropbox-data-science"

// Credentials is what the CLI persists per profile. Either Token or the
// AppKey/AppSecret/RefreshToken triple is set.
type Credentials struct {
	Token        string `json:"token,omitempty"`
	AppKey       string `json:"app_key,omitempty"`
	AppSecret    string `json:"app_secret,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Store persists credentials in the system keyring, one entry per
// profile.
type Store struct {
	service string
}

// NewStore creates a keyring-backed credential store.
func NewStore() *Store {
	return &Store{service: serviceName}
}

func (s *Store) Save(profile string, creds Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := keyring.Set(s.service, profile, string(data)); err != nil {
		return fmt.Errorf("store credentials in keyring: %w", err)
	}
	return nil
}

func (s *Store) Load(profile string) (Credentials, error) {
	data, err := keyring.Get(s.service, profile)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return Credentials{}, fmt.Errorf("%w: %s", ErrNoCredentials, profile)
		}
		return Credentials{}, fmt.Errorf("read credentials from keyring: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(data), &creds); err != nil {
		return Credentials{}, fmt.Errorf("unmarshal credentials: %w", err)
	}
	return creds, nil
}

func (s *Store) Delete(profile string) error {
	if err := keyring.Delete(s.service, profile); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNoCredentials, profile)
		}
		return fmt.Errorf("delete credentials from keyring: %w", err)
	}
	return nil
}
