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
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/AjitisAjit/dropbox-data-science/folder"
)

var lsCmd = &cobra.Command{
	Use:   "ls <path>",
	Short: "List the files directly inside a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client, err := newClient(ctx, 0)
		if err != nil {
			return err
		}

		state := folder.NewState(client, args[0])
		if err := state.Refresh(ctx); err != nil {
			return err
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Path", "Modified", "Content Hash"})
		table.SetBorder(false)

		for _, h := range state.Snapshot() {
			modified, err := h.LastModified(ctx)
			if err != nil {
				return err
			}
			hash, err := h.ContentHash(ctx)
			if err != nil {
				return err
			}
			if len(hash) > 12 {
				hash = hash[:12]
			}
			table.Append([]string{h.Path(), modified.UTC().Format(time.RFC3339), hash})
		}

		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
