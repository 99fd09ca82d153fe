package keeper

import (
	"math/big"
	"sync"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PoolManagerMetrics holds all Prometheus metrics for the pool manager module
type PoolManagerMetrics struct {
	// Swap metrics
	SwapsTotal        *prometheus.CounterVec
	SwapVolume        *prometheus.CounterVec
	SwapSpread        prometheus.Histogram
	SwapFeesCollected *prometheus.CounterVec

	// Liquidity metrics
	LiquidityOps  *prometheus.CounterVec
	PoolReserves  *prometheus.GaugeVec
	ShareSupply   *prometheus.GaugeVec
	DonatedAssets *prometheus.CounterVec

	// Pool metrics
	PoolsCreated prometheus.Counter

	// Guard and flash loan metrics
	GuardRejections *prometheus.CounterVec
	FlashLoans      *prometheus.CounterVec
}

var (
	poolManagerMetricsOnce sync.Once
	poolManagerMetrics     *PoolManagerMetrics
)

// NewPoolManagerMetrics creates and registers the metrics (singleton pattern)
func NewPoolManagerMetrics() *PoolManagerMetrics {
	poolManagerMetricsOnce.Do(func() {
		poolManagerMetrics = &PoolManagerMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "liquidityhub",
					Subsystem: "poolmanager",
					Name:      "swaps_total",
					Help:      "Total number of swaps by outcome",
				},
				[]string{"pool_id", "offer_denom", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "liquidityhub",
					Subsystem: "poolmanager",
					Name:      "swap_volume_total",
					Help:      "Total offered amount in base units",
				},
				[]string{"pool_id", "denom"},
			),
			SwapSpread: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "liquidityhub",
					Subsystem: "poolmanager",
					Name:      "swap_spread_ratio",
					Help:      "Spread of committed swaps relative to the pre-spread return",
					Buckets:   []float64{0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.25},
				},
			),
			SwapFeesCollected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "liquidityhub",
					Subsystem: "poolmanager",
					Name:      "swap_fees_collected_total",
					Help:      "Total fees charged on swaps",
				},
				[]string{"pool_id", "denom", "kind"},
			),
			LiquidityOps: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "liquidityhub",
					Subsystem: "poolmanager",
					Name:      "liquidity_operations_total",
					Help:      "Liquidity deposits and withdrawals by outcome",
				},
				[]string{"pool_id", "operation", "status"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "liquidityhub",
					Subsystem: "poolmanager",
					Name:      "pool_reserves",
					Help:      "Current pool reserves",
				},
				[]string{"pool_id", "denom"},
			),
			ShareSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "liquidityhub",
					Subsystem: "poolmanager",
					Name:      "share_supply",
					Help:      "Outstanding liquidity shares per pool",
				},
				[]string{"pool_id"},
			),
			DonatedAssets: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "liquidityhub",
					Subsystem: "poolmanager",
					Name:      "donated_assets_total",
					Help:      "Surplus of disproportionate deposits left in pools",
				},
				[]string{"pool_id", "denom"},
			),
			PoolsCreated: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "liquidityhub",
					Subsystem: "poolmanager",
					Name:      "pools_created_total",
					Help:      "Total number of pools created",
				},
			),
			GuardRejections: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "liquidityhub",
					Subsystem: "poolmanager",
					Name:      "guard_rejections_total",
					Help:      "Operations rejected by spread, slippage or loan guards",
				},
				[]string{"pool_id", "guard"},
			),
			FlashLoans: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "liquidityhub",
					Subsystem: "poolmanager",
					Name:      "flash_loans_total",
					Help:      "Flash loans by outcome",
				},
				[]string{"pool_id", "denom", "status"},
			),
		}
	})
	return poolManagerMetrics
}

// toFloat converts an amount for gauges; precision loss above 2^53 is acceptable there.
func toFloat(amount math.Int) float64 {
	if amount.IsNil() {
		return 0
	}
	f, _ := new(big.Float).SetInt(amount.BigInt()).Float64()
	return f
}
