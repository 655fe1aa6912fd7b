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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AjitisAjit/dropbox-data-science/folder"
)

var (
	getOutput    string
	putTimestamp bool
)

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Download a file to stdout or a local file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client, err := newClient(ctx, 0)
		if err != nil {
			return err
		}

		data, err := folder.NewHandle(client, args[0]).Download(ctx)
		if err != nil {
			return err
		}

		if getOutput == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		return os.WriteFile(getOutput, data, 0o644)
	},
}

var putCmd = &cobra.Command{
	Use:   "put <local> <path>",
	Short: "Upload a local file, overwriting the remote path",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		client, err := newClient(ctx, 0)
		if err != nil {
			return err
		}

		handle := folder.NewHandle(client, args[1])
		if err := handle.Upload(ctx, data, putTimestamp); err != nil {
			return err
		}

		// The final path differs from the argument when timestamping.
		fmt.Fprintln(cmd.OutOrStdout(), handle.Path())
		return nil
	},
}

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <path>",
	Short: "Create an empty folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client, err := newClient(ctx, 0)
		if err != nil {
			return err
		}

		return folder.NewState(client, args[0]).Create(ctx)
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Delete a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client, err := newClient(ctx, 0)
		if err != nil {
			return err
		}

		return folder.NewHandle(client, args[0]).Delete(ctx)
	},
}

var rmdirCmd = &cobra.Command{
	Use:   "rmdir <path>",
	Short: "Delete a folder and its contents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client, err := newClient(ctx, 0)
		if err != nil {
			return err
		}

		return folder.NewState(client, args[0]).Delete(ctx)
	},
}

func init() {
	getCmd.Flags().StringVarP(&getOutput, "output", "o", "", "Write to this local file instead of stdout")
	putCmd.Flags().BoolVar(&putTimestamp, "timestamp", false, "Prefix the uploaded name with a UTC timestamp")

	rootCmd.AddCommand(getCmd, putCmd, mkdirCmd, rmCmd, rmdirCmd)
}
