package tint

import (
	"log/slog"
	"runtime"
	"time"
)

// DeviceTier is a coarse performance classification driving engine
// parameter defaults.
type DeviceTier int

const (
	// TierBasic is low-end hardware: shallow history, narrow brush
	// range, pressure response and advanced effects disabled.
	TierBasic DeviceTier = iota
	// TierAdvanced is mid-range hardware with pressure response.
	TierAdvanced
	// TierPremium is high-end hardware with all features enabled.
	TierPremium
)

// String returns the tier name.
func (t DeviceTier) String() string {
	switch t {
	case TierBasic:
		return "basic"
	case TierAdvanced:
		return "advanced"
	case TierPremium:
		return "premium"
	default:
		return "unknown"
	}
}

// BrushSizeRange bounds the brush width in pixels for a tier.
type BrushSizeRange struct {
	Min, Max float64
}

// Capabilities is the immutable engine configuration derived from the
// device tier. Compute it once per session with DetectCapabilities and
// pass it explicitly to component constructors; there is no global
// lookup.
type Capabilities struct {
	Tier                    DeviceTier
	MaxHistorySteps         int
	BrushSize               BrushSizeRange
	SupportsPressure        bool
	SupportsAdvancedEffects bool

	// FillBudget is the flood fill wall-clock budget for this tier.
	FillBudget time.Duration
	// FillDownscale is the flood fill sampling factor for this tier.
	FillDownscale int
}

// frameBudget is the per-frame time target the benchmark scores
// against.
const frameBudget = 16 * time.Millisecond

// benchmarkIterations is the fixed work size of the calibration loop.
const benchmarkIterations = 400_000

// DetectCapabilities classifies the running device and derives the
// engine configuration. Static heuristics (CPU count, architecture)
// pick a provisional tier; a fixed-iteration micro-benchmark measured
// against the 16ms frame budget then corrects it by at most one tier,
// because static identifiers are an unreliable proxy for actual
// throughput on emulators and throttled devices.
func DetectCapabilities() Capabilities {
	static := staticTier()
	score := runBenchmark()
	tier := adjustTier(static, score)

	Logger().Info("device tier selected",
		slog.String("static", static.String()),
		slog.Duration("benchmark", score),
		slog.String("tier", tier.String()))

	return CapabilitiesForTier(tier)
}

// CapabilitiesForTier returns the fixed configuration for a tier,
// bypassing detection. Hosts with out-of-band device knowledge (and
// tests) use this directly.
func CapabilitiesForTier(tier DeviceTier) Capabilities {
	switch tier {
	case TierPremium:
		return Capabilities{
			Tier:                    TierPremium,
			MaxHistorySteps:         30,
			BrushSize:               BrushSizeRange{Min: 1, Max: 64},
			SupportsPressure:        true,
			SupportsAdvancedEffects: true,
			FillBudget:              30 * time.Millisecond,
			FillDownscale:           1,
		}
	case TierAdvanced:
		return Capabilities{
			Tier:             TierAdvanced,
			MaxHistorySteps:  20,
			BrushSize:        BrushSizeRange{Min: 2, Max: 48},
			SupportsPressure: true,
			FillBudget:       30 * time.Millisecond,
			FillDownscale:    2,
		}
	default:
		return Capabilities{
			Tier:            TierBasic,
			MaxHistorySteps: 10,
			BrushSize:       BrushSizeRange{Min: 4, Max: 24},
			FillBudget:      30 * time.Millisecond,
			FillDownscale:   3,
		}
	}
}

// ClampBrushWidth restricts a requested brush width to the tier's
// range.
func (c Capabilities) ClampBrushWidth(width float64) float64 {
	if width < c.BrushSize.Min {
		return c.BrushSize.Min
	}
	if width > c.BrushSize.Max {
		return c.BrushSize.Max
	}
	return width
}

// staticTier classifies the device from platform heuristics alone.
func staticTier() DeviceTier {
	cpus := runtime.NumCPU()
	switch {
	case cpus >= 8:
		return TierPremium
	case cpus >= 4:
		return TierAdvanced
	default:
		return TierBasic
	}
}

// benchSink keeps the compiler from eliding the benchmark loop.
var benchSink float64

// runBenchmark times a fixed-iteration CPU-bound numeric loop shaped
// like the fill hot path (integer distance math and a branch).
func runBenchmark() time.Duration {
	start := time.Now()
	acc := 0.0
	x := 1.0
	for i := 0; i < benchmarkIterations; i++ {
		x = x*1.0000001 + 0.3
		if x > 2 {
			x -= 1.5
		}
		acc += x
	}
	benchSink = acc
	return time.Since(start)
}

// adjustTier corrects the static classification by at most one tier
// based on the benchmark score. Finishing well inside the frame budget
// upgrades; overrunning it downgrades.
func adjustTier(tier DeviceTier, score time.Duration) DeviceTier {
	switch {
	case score < frameBudget/8 && tier < TierPremium:
		return tier + 1
	case score > frameBudget && tier > TierBasic:
		return tier - 1
	default:
		return tier
	}
}
