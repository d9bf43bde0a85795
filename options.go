package tint

// SessionOption configures a Session during creation.
// Use functional options to customize Session behavior.
//
// Example:
//
//	// Detect capabilities automatically
//	s := tint.NewSession(art)
//
//	// Pin a tier (dependency injection for hosts and tests)
//	s := tint.NewSession(art,
//	    tint.WithCapabilities(tint.CapabilitiesForTier(tint.TierBasic)))
type SessionOption func(*sessionOptions)

// sessionOptions holds optional configuration for Session creation.
type sessionOptions struct {
	caps         Capabilities
	capsSet      bool
	fillOpts     FillOptions
	fillOptsSet  bool
	historyDepth int
}

// defaultSessionOptions returns the default session options.
func defaultSessionOptions() sessionOptions {
	return sessionOptions{}
}

// WithCapabilities supplies a precomputed device configuration instead
// of running detection. Hosts that classify devices out of band (or
// tests that need a fixed tier) use this.
func WithCapabilities(caps Capabilities) SessionOption {
	return func(o *sessionOptions) {
		o.caps = caps
		o.capsSet = true
	}
}

// WithFillOptions overrides the tier-derived flood fill tuning.
//
// Example:
//
//	s := tint.NewSession(art, tint.WithFillOptions(tint.FillOptions{
//	    Tolerance:       48,
//	    MaxDuration:     30 * time.Millisecond,
//	    DownscaleFactor: 2,
//	}))
func WithFillOptions(opts FillOptions) SessionOption {
	return func(o *sessionOptions) {
		o.fillOpts = opts
		o.fillOptsSet = true
	}
}

// WithHistoryDepth overrides the tier-derived undo depth. Values below
// 1 fall back to the capability default.
func WithHistoryDepth(depth int) SessionOption {
	return func(o *sessionOptions) {
		o.historyDepth = depth
	}
}
