package views

import (
	"testing"
	"time"

	"boothmarket-backend/models"
)

func newBooth(number, name string) *models.Booth {
	return &models.Booth{BoothNumber: number, BoothName: name}
}

// waitFor polls until the condition holds or the deadline passes. View
// initial loads run in the background, so tests wait for them the way a
// dashboard waits for its loading flag.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
