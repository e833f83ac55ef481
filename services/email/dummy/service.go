// Package dummymail records sent messages for inspection in tests.
package dummymail

import (
	"sync"

	"github.com/trezcool/darasa/core"
)

type Service struct {
	mu           sync.Mutex
	sentMessages []core.EmailMessage
}

var _ core.EmailService = (*Service)(nil)

func NewService() *Service {
	return &Service{sentMessages: make([]core.EmailMessage, 0)}
}

// SendMessages renders and records messages synchronously.
func (svc *Service) SendMessages(messages ...*core.EmailMessage) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	for _, msg := range messages {
		if err := msg.Render(); err != nil {
			continue
		}
		if msg.HasRecipients() && msg.HasContent() {
			svc.sentMessages = append(svc.sentMessages, *msg)
		}
	}
}

func (svc *Service) SentMessages() []core.EmailMessage {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	msgs := make([]core.EmailMessage, len(svc.sentMessages))
	copy(msgs, svc.sentMessages)
	return msgs
}

func (svc *Service) Clear() {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.sentMessages = svc.sentMessages[:0]
}
