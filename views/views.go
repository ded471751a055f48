// Package views holds the long-lived per-dashboard projections. Each view
// owns the slices its dashboard renders, loads them concurrently on open,
// and reloads the affected slice whenever the change feed fires. Reloads
// always refetch authoritative state; feed events are triggers, not diffs.
// Concurrent reloads of the same slice resolve last-completion-wins.
package views

import "boothmarket-backend/apperr"

// ErrNotConfirmed is returned by destructive operations when the caller
// did not pass the confirmation gate. No store access happens in that case.
var ErrNotConfirmed = apperr.Invalid("destructive action not confirmed")
