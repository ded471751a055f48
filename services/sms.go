// services/sms.go
package services

import (
	"log"

	"boothmarket-backend/config"
	"boothmarket-backend/models"
	"boothmarket-backend/store"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSService forwards new admin messages to booth staff phones. It watches
// the messages feed: a targeted message goes to that booth's staff, a
// broadcast to every assigned staff with a phone number on file. Delivery
// failures are logged and never propagate; the in-app message is the
// source of truth either way.
type SMSService struct {
	store  store.Store
	client *twilio.RestClient
	from   string
	unsub  func()
}

func NewSMSService(st store.Store, cfg *config.Config) *SMSService {
	return &SMSService{
		store: st,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
		from: cfg.TwilioFromNumber,
	}
}

func (s *SMSService) Start() {
	s.unsub = s.store.Feed().Subscribe(store.TableMessages, store.Filter{}, func(e store.Event) {
		if e.Action != store.ActionInsert {
			return
		}
		s.forwardLatest(e)
	})
	log.Println("SMS forwarding started")
}

// forwardLatest refetches the newest unread message for the event's scope;
// the event itself carries no row data.
func (s *SMSService) forwardLatest(e store.Event) {
	messages, err := s.store.ListAllMessages()
	if err != nil || len(messages) == 0 {
		return
	}
	message := messages[0] // newest first

	booths, err := s.store.ListBooths()
	if err != nil {
		log.Printf("SMS forward: failed to list booths: %v", err)
		return
	}

	for _, booth := range booths {
		if !message.VisibleTo(booth.ID) || booth.StaffID == nil {
			continue
		}
		profile, err := s.store.GetProfile(*booth.StaffID)
		if err != nil || profile.Phone == "" {
			continue
		}
		s.send(profile.Phone, message)
	}
}

func (s *SMSService) send(to string, message models.Message) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(message.Message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send SMS to %s: %v", to, err)
		return
	}
	if resp.Sid != nil {
		log.Printf("SMS sent to %s, SID: %s", to, *resp.Sid)
	}
}

func (s *SMSService) Stop() {
	if s.unsub != nil {
		s.unsub()
	}
}
