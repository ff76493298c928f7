// Package timeouts defines shared timeout constants used by the sheet binaries.
package timeouts

import "time"

// Shutdown limits how long telemetry may flush pending spans on exit.
const Shutdown = 5 * time.Second

// StoreBusy is how long SQLite waits on a locked database before failing.
const StoreBusy = 5 * time.Second
