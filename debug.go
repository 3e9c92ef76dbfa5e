package drift

import (
	"fmt"
	"os"
	"time"
)

// warnf prints a diagnostic warning to stderr. Warnings never abort the
// operation that raised them; the library favors availability over
// strictness.
func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[drift] warning: "+format+"\n", args...)
}

// debugStats holds per-tick simulation metrics.
// Only populated when the canvas is in debug mode.
type debugStats struct {
	stepTime      time.Duration
	layerCount    int
	instanceCount int
	mode          Mode
}

// debugLog prints per-tick stats to stderr.
func (c *Canvas) debugLog(stats debugStats) {
	if !c.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[drift] step: %v | layers: %d | instances: %d | mode: %d\n",
		stats.stepTime, stats.layerCount, stats.instanceCount, stats.mode)
}
