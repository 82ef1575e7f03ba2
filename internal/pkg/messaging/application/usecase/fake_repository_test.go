package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	messaging "github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/application/domain"
	repository "github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/persistence/repository/port"
)

// fakeMessagingRepository is an in-memory MessagingRepository that mimics the
// uniqueness on application_id the real adapter relies on. Call counters let
// tests assert which operations actually ran.
type fakeMessagingRepository struct {
	applications  map[string]messaging.ApplicationRef
	conversations map[string]messaging.Conversation // keyed by conversation ID
	byApplication map[string]string                 // applicationID -> conversation ID
	messages      []messaging.Message

	saveMessageCalls int
	failWith         error
}

func newFakeMessagingRepository() *fakeMessagingRepository {
	return &fakeMessagingRepository{
		applications:  make(map[string]messaging.ApplicationRef),
		conversations: make(map[string]messaging.Conversation),
		byApplication: make(map[string]string),
	}
}

var _ repository.MessagingRepository = (*fakeMessagingRepository)(nil)

func (f *fakeMessagingRepository) UpsertConversation(_ context.Context, c messaging.Conversation) (messaging.Conversation, error) {
	if f.failWith != nil {
		return messaging.Conversation{}, f.failWith
	}
	if id, ok := f.byApplication[c.ApplicationID]; ok {
		return f.conversations[id], nil
	}
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()
	f.conversations[c.ID] = c
	f.byApplication[c.ApplicationID] = c.ID
	return c, nil
}

func (f *fakeMessagingRepository) GetConversation(_ context.Context, conversationID string) (messaging.Conversation, error) {
	if f.failWith != nil {
		return messaging.Conversation{}, f.failWith
	}
	c, ok := f.conversations[conversationID]
	if !ok {
		return messaging.Conversation{}, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeMessagingRepository) ListConversationViews(_ context.Context, userID string) ([]messaging.ConversationView, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var views []messaging.ConversationView
	for _, c := range f.conversations {
		if c.UserID != userID && c.CompanyOwnerID != userID {
			continue
		}
		views = append(views, messaging.ConversationView{Conversation: c})
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	return views, nil
}

func (f *fakeMessagingRepository) SaveMessage(_ context.Context, m messaging.Message) (messaging.Message, error) {
	f.saveMessageCalls++
	if f.failWith != nil {
		return messaging.Message{}, f.failWith
	}
	m.ID = uuid.NewString()
	f.messages = append(f.messages, m)
	return m, nil
}

func (f *fakeMessagingRepository) GetMessagesByConversation(_ context.Context, conversationID string, limit int, offset int) ([]messaging.Message, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []messaging.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeMessagingRepository) GetApplicationRef(_ context.Context, applicationID string) (messaging.ApplicationRef, error) {
	if f.failWith != nil {
		return messaging.ApplicationRef{}, f.failWith
	}
	ref, ok := f.applications[applicationID]
	if !ok {
		return messaging.ApplicationRef{}, repository.ErrNotFound
	}
	return ref, nil
}
