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

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AjitisAjit/dropbox-data-science/auth"
)

var errNoLoginCredentials = errors.New("provide --access-token or the --app-key/--app-secret/--refresh-token triple")

var (
	loginToken        string
	loginAppKey       string
	loginAppSecret    string
	loginRefreshToken string
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage stored Dropbox credentials",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store credentials for a profile in the system keyring",
	RunE: func(cmd *cobra.Command, _ []string) error {
		creds := auth.Credentials{
			Token:        loginToken,
			AppKey:       loginAppKey,
			AppSecret:    loginAppSecret,
			RefreshToken: loginRefreshToken,
		}
		if creds.Token == "" && (creds.AppKey == "" || creds.RefreshToken == "") {
			return errNoLoginCredentials
		}

		if err := auth.NewStore().Save(flagProfile, creds); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "credentials stored for profile %q\n", flagProfile)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove a profile's credentials from the system keyring",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := auth.NewStore().Delete(flagProfile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "credentials removed for profile %q\n", flagProfile)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginToken, "access-token", "", "Static access token")
	loginCmd.Flags().StringVar(&loginAppKey, "app-key", "", "OAuth app key")
	loginCmd.Flags().StringVar(&loginAppSecret, "app-secret", "", "OAuth app secret")
	loginCmd.Flags().StringVar(&loginRefreshToken, "refresh-token", "", "OAuth refresh token")

	authCmd.AddCommand(loginCmd, logoutCmd)
	rootCmd.AddCommand(authCmd)
}
