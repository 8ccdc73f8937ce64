// Package lifecycle holds shared lifecycle constants for graceful start and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds startup probes and graceful shutdown of long-lived resources.
const DefaultTimeout = 10 * time.Second
