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
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AjitisAjit/dropbox-data-science/config"
	"github.com/AjitisAjit/dropbox-data-science/folder"
	"github.com/AjitisAjit/dropbox-data-science/metrics"
)

var (
	watchInterval    time.Duration
	watchLongpoll    time.Duration
	watchRetries     int
	watchBatchSize   int
	watchMetricsAddr string
	watchFull        bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <path>",
	Short: "Poll a folder and report new files as they appear",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := resolveCredentials()
		if err != nil {
			return err
		}

		cfg := config.Config{
			Token:           creds.Token,
			AppKey:          creds.AppKey,
			AppSecret:       creds.AppSecret,
			RefreshToken:    creds.RefreshToken,
			Path:            args[0],
			PollingPeriod:   watchInterval,
			LongpollTimeout: watchLongpoll,
			Retries:         watchRetries,
			BatchSize:       watchBatchSize,
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		client, err := clientFromCredentials(ctx, creds, watchLongpoll)
		if err != nil {
			return err
		}

		if watchMetricsAddr != "" {
			go func() {
				logger.Info().Str("addr", watchMetricsAddr).Msg("serving metrics")
				if err := http.ListenAndServe(watchMetricsAddr, metrics.Handler()); err != nil {
					logger.Error().Err(err).Msg("metrics server stopped")
				}
			}()
		}

		state := folder.NewState(client, args[0], folder.WithBatchSize(watchBatchSize))

		var prev []*folder.Handle
		sink := folder.SinkFunc(func(_ context.Context, snapshot []*folder.Handle, cursor string) error {
			if watchFull {
				for _, h := range snapshot {
					fmt.Fprintln(cmd.OutOrStdout(), h.Path())
				}
				fmt.Fprintln(cmd.OutOrStdout(), "--", cursor)
			} else {
				for _, h := range folder.Diff(prev, snapshot) {
					fmt.Fprintln(cmd.OutOrStdout(), h.Path())
				}
			}
			prev = snapshot
			return nil
		})

		opts := []folder.MonitorOption{
			folder.WithLogger(logger),
			folder.WithInterval(watchInterval),
			folder.WithRetries(watchRetries),
		}
		if watchLongpoll > 0 {
			opts = append(opts, folder.WithLongpoll(watchLongpoll))
		}

		return folder.NewMonitor(state, sink, opts...).Run(ctx)
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 10*time.Second, "Delay between polls")
	watchCmd.Flags().DurationVar(&watchLongpoll, "longpoll", 0, "Longpoll timeout; 0 disables longpolling")
	watchCmd.Flags().IntVar(&watchRetries, "retries", -1, "Consecutive failures tolerated; negative for unlimited")
	watchCmd.Flags().IntVar(&watchBatchSize, "batch-size", 0, "Listing page size (1-2000); 0 lets Dropbox choose")
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	watchCmd.Flags().BoolVar(&watchFull, "full", false, "Print the full snapshot each poll instead of only new paths")

	rootCmd.AddCommand(watchCmd)
}
