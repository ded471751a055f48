// services/resync.go
package services

import (
	"log"

	"boothmarket-backend/store"

	"github.com/robfig/cron/v3"
)

// ResyncService periodically publishes a sync event for every watched
// table. Views treat a sync event like any other change trigger and refetch
// authoritative state, which heals any staleness window left by reloads
// that raced each other.
type ResyncService struct {
	store    store.Store
	schedule string
	cron     *cron.Cron
}

func NewResyncService(st store.Store, schedule string) *ResyncService {
	return &ResyncService{store: st, schedule: schedule}
}

func (s *ResyncService) Start() error {
	c := cron.New()
	if _, err := c.AddFunc(s.schedule, s.Sweep); err != nil {
		return err
	}
	c.Start()
	s.cron = c
	log.Printf("Resync scheduler started (%s)", s.schedule)
	return nil
}

// Sweep republishes one sync event per table.
func (s *ResyncService) Sweep() {
	feed := s.store.Feed()
	for _, table := range []string{store.TableBooths, store.TableProducts, store.TableOrders, store.TableMessages} {
		feed.Publish(store.Event{Table: table, Action: store.ActionSync})
	}
	log.Printf("Resync sweep published to %d subscribers", feed.SubscriberCount())
}

func (s *ResyncService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
