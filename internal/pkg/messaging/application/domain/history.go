package messaging

import "sort"

// History is the in-memory message sequence for one conversation. It keeps
// messages sorted by CreatedAt ascending and drops duplicate message IDs, so
// a row that arrives both as an insert response and as a push echo is stored
// once. Not safe for concurrent use; callers own the synchronization.
type History struct {
	messages []Message
	seen     map[string]struct{}
}

// NewHistory builds a History from a loaded batch. The batch is re-sorted so
// the ascending invariant holds even if the source ordering is off.
func NewHistory(loaded []Message) *History {
	h := &History{seen: make(map[string]struct{}, len(loaded))}
	for _, m := range loaded {
		h.Insert(m)
	}
	return h
}

// Insert adds m keeping the sequence ordered by CreatedAt ascending. Inserting
// a message ID that is already present is a no-op; the return reports whether
// the message was actually added.
func (h *History) Insert(m Message) bool {
	if m.ID != "" {
		if _, dup := h.seen[m.ID]; dup {
			return false
		}
		h.seen[m.ID] = struct{}{}
	}

	i := sort.Search(len(h.messages), func(i int) bool {
		return h.messages[i].CreatedAt.After(m.CreatedAt)
	})
	h.messages = append(h.messages, Message{})
	copy(h.messages[i+1:], h.messages[i:])
	h.messages[i] = m
	return true
}

// Messages returns the ordered sequence. The slice is shared; callers must
// not mutate it.
func (h *History) Messages() []Message {
	return h.messages
}

// Len returns the number of stored messages.
func (h *History) Len() int {
	return len(h.messages)
}

// Latest returns the newest message, or false when the history is empty.
func (h *History) Latest() (Message, bool) {
	if len(h.messages) == 0 {
		return Message{}, false
	}
	return h.messages[len(h.messages)-1], true
}
