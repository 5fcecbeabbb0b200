package migration

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics for monitoring service.
var (
	// migratedHeight prometheus metric.
	migratedHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Help:      "Last migrated block height",
			Name:      "migrated_height",
			Namespace: "unitrie",
		},
	)
	// migratedAccounts prometheus metric.
	migratedAccounts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Number of converted legacy account records",
			Name:      "migrated_accounts_total",
			Namespace: "unitrie",
		},
	)
	// skippedAccounts prometheus metric.
	skippedAccounts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Number of legacy account records left intact since the previous block",
			Name:      "skipped_accounts_total",
			Namespace: "unitrie",
		},
	)
	// migratedCells prometheus metric.
	migratedCells = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Number of converted contract storage cells",
			Name:      "migrated_storage_cells_total",
			Namespace: "unitrie",
		},
	)
	// verifiedRoots prometheus metric.
	verifiedRoots = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Number of state roots checked against legacy ones",
			Name:      "verified_roots_total",
			Namespace: "unitrie",
		},
	)
)

func init() {
	prometheus.MustRegister(
		migratedHeight,
		migratedAccounts,
		skippedAccounts,
		migratedCells,
		verifiedRoots,
	)
}

func updateMigratedHeightMetric(h uint64) {
	migratedHeight.Set(float64(h))
}
