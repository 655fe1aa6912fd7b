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

// Package metrics provides Prometheus metrics for folder monitoring.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	refreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dropboxds_refreshes_total",
			Help: "Total number of folder refresh attempts",
		},
		[]string{"status"},
	)

	refreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dropboxds_refresh_duration_seconds",
			Help:    "Time to refresh a folder snapshot",
			Buckets: prometheus.DefBuckets,
		},
	)

	snapshotSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dropboxds_snapshot_size",
			Help: "Number of files in the tracked folder snapshot",
		},
		[]string{"path"},
	)

	snapshotsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dropboxds_snapshots_published_total",
			Help: "Total number of snapshots delivered to the sink",
		},
	)
)

// RefreshSucceeded records one successful refresh and its duration.
func RefreshSucceeded(d time.Duration) {
	refreshesTotal.WithLabelValues("success").Inc()
	refreshDuration.Observe(d.Seconds())
}

// RefreshFailed records one failed refresh.
func RefreshFailed() {
	refreshesTotal.WithLabelValues("error").Inc()
}

// SetSnapshotSize records the current snapshot size for a folder.
func SetSnapshotSize(path string, n int) {
	snapshotSize.WithLabelValues(path).Set(float64(n))
}

// SnapshotPublished records one snapshot handed to a sink.
func SnapshotPublished() {
	snapshotsPublished.Inc()
}

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
