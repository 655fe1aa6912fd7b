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

// Package cli implements the dropwatch command line interface.
package cli

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/AjitisAjit/dropbox-data-science/auth"
	"github.com/AjitisAjit/dropbox-data-science/pkg/dropbox"
)

// tokenEnvVar is honored when no flag or stored profile provides
// credentials.
const tokenEnvVar = "DROPBOX_API_TOKEN"

var (
	flagProfile string
	flagToken   string
	flagVerbose bool

	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dropwatch",
	Short: "Watch and manage Dropbox folders from the command line",
	Long: `dropwatch tracks the contents of Dropbox folders through change
cursors, reporting new, changed and deleted files without re-listing the
folder on every poll. It also provides basic file operations (get, put,
mkdir, rm) against the same credentials.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		level := zerolog.InfoLevel
		if flagVerbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(level).
			With().Timestamp().Logger()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "default", "Credential profile to use")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Dropbox access token (overrides stored credentials)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newClient builds a Dropbox client from the flag, environment or stored
// profile credentials, in that order of precedence.
func newClient(ctx context.Context, longpollTimeout time.Duration) (dropbox.Client, error) {
	creds, err := resolveCredentials()
	if err != nil {
		return nil, err
	}
	return clientFromCredentials(ctx, creds, longpollTimeout)
}

func clientFromCredentials(ctx context.Context, creds auth.Credentials, longpollTimeout time.Duration) (dropbox.Client, error) {
	if creds.Token != "" {
		return dropbox.NewHTTPClient(creds.Token, longpollTimeout)
	}

	httpClient := auth.NewClient(ctx, creds.AppKey, creds.AppSecret, creds.RefreshToken)
	httpClient.Timeout = longpollTimeout + 90*time.Second
	return dropbox.NewHTTPClientFrom(httpClient), nil
}

func resolveCredentials() (auth.Credentials, error) {
	if flagToken != "" {
		return auth.Credentials{Token: flagToken}, nil
	}
	if token := os.Getenv(tokenEnvVar); token != "" {
		return auth.Credentials{Token: token}, nil
	}
	return auth.NewStore().Load(flagProfile)
}
