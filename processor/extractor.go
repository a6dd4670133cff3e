package processor

import (
	"regexp"

	"github.com/NextMind-AI/chat-sentiment/livechat"
)

var uuidPattern = regexp.MustCompile(`[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}`)

// UUIDAuthorDetector treats an author id containing a UUID as a customer.
// Agents are identified by e-mail addresses and bots by short ids in the
// archive feed.
type UUIDAuthorDetector struct{}

func (UUIDAuthorDetector) IsCustomerAuthored(event livechat.Event, _ []livechat.User) bool {
	return uuidPattern.MatchString(event.AuthorID)
}

// ExtractChat pulls identity, thread metadata and customer messages out of
// one record. Missing fields fall back to sentinels; it never fails.
func ExtractChat(record livechat.ChatRecord, detector CustomerDetector) Extraction {
	extraction := Extraction{
		ThreadID:    notAvailable,
		CreatedAt:   notAvailable,
		ClientName:  notAvailable,
		ClientEmail: notAvailable,
	}

	for _, user := range record.Users {
		if user.Type != customerType {
			continue
		}
		extraction.ClientName = valueOr(user.Name, anonymousName)
		extraction.ClientEmail = valueOr(user.Email, notAvailable)
		break
	}

	thread := record.Thread
	if thread == nil {
		return extraction
	}
	extraction.ThreadID = valueOr(thread.ID, notAvailable)
	extraction.CreatedAt = valueOr(thread.CreatedAt, notAvailable)

	for _, event := range thread.Events {
		if event.Type != messageType {
			continue
		}
		if detector.IsCustomerAuthored(event, record.Users) {
			extraction.Messages = append(extraction.Messages, event.Text)
		}
	}

	return extraction
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
