package realtime

import (
	"sync"
)

// Hub coordinates websocket sessions and per-conversation rooms. It keeps one
// active Connection per user, and at most one room membership per session: a
// client viewing thread A and then thread B holds a single live subscription,
// never an accumulation of stale listeners.
type Hub struct {
	mu           sync.RWMutex
	sessions     map[string]*Connection            // sessionID -> connection
	userSessions map[string]string                 // userID -> sessionID
	rooms        map[string]map[string]*Connection // conversationID -> sessionID -> connection
	sessionRoom  map[string]string                 // sessionID -> conversationID currently subscribed
}

// NewHub constructs an initialized Hub.
func NewHub() *Hub {
	return &Hub{
		sessions:     make(map[string]*Connection),
		userSessions: make(map[string]string),
		rooms:        make(map[string]map[string]*Connection),
		sessionRoom:  make(map[string]string),
	}
}

// Attach registers a connection for the given user. If a previous session
// exists, it is removed and closed after the swap to enforce one active
// socket per user.
func (h *Hub) Attach(conn *Connection) {
	var previous *Connection

	h.mu.Lock()
	if existingID, ok := h.userSessions[conn.UserID]; ok {
		if existing := h.sessions[existingID]; existing != nil {
			previous = existing
			h.detachLocked(existingID)
		}
	}

	h.sessions[conn.ID] = conn
	h.userSessions[conn.UserID] = conn.ID
	h.mu.Unlock()

	conn.Start()

	if previous != nil {
		previous.Close(4001, "session replaced")
	}
}

// Detach removes a connection if it is still tracked, leaving its room.
func (h *Hub) Detach(conn *Connection) {
	h.mu.Lock()
	h.detachLocked(conn.ID)
	h.mu.Unlock()
}

// Subscribe moves the session into the conversation room. Any previous room
// membership is dropped first, so switching threads never leaks a listener.
func (h *Hub) Subscribe(conversationID string, conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[conn.ID]; !ok {
		return
	}

	if current, ok := h.sessionRoom[conn.ID]; ok {
		if current == conversationID {
			return
		}
		h.leaveLocked(current, conn.ID)
	}

	room := h.rooms[conversationID]
	if room == nil {
		room = make(map[string]*Connection)
		h.rooms[conversationID] = room
	}
	room[conn.ID] = conn
	h.sessionRoom[conn.ID] = conversationID
}

// Unsubscribe removes the session from its current room, if any.
func (h *Hub) Unsubscribe(conn *Connection) {
	h.mu.Lock()
	if current, ok := h.sessionRoom[conn.ID]; ok {
		h.leaveLocked(current, conn.ID)
	}
	h.mu.Unlock()
}

// Subscription reports the conversation the session is currently in.
func (h *Hub) Subscription(conn *Connection) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	id, ok := h.sessionRoom[conn.ID]
	return id, ok
}

// InRoom reports whether the user's current session is subscribed to the
// conversation. Callers use it to avoid sending a room frame and a direct
// user frame for the same event.
func (h *Hub) InRoom(conversationID string, userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sessionID, ok := h.userSessions[userID]
	if !ok {
		return false
	}
	return h.sessionRoom[sessionID] == conversationID
}

// RoomSize returns the number of sessions subscribed to the conversation.
func (h *Hub) RoomSize(conversationID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[conversationID])
}

// Broadcast writes payload to all members in the conversation room.
// excludeUserID, when non-empty, prevents delivering to that user; the sender
// already holds the row from their own send response.
func (h *Hub) Broadcast(conversationID string, payload []byte, excludeUserID string) int {
	h.mu.RLock()
	room := h.rooms[conversationID]
	if len(room) == 0 {
		h.mu.RUnlock()
		return 0
	}

	delivered := 0
	for _, conn := range room {
		if excludeUserID != "" && conn.UserID == excludeUserID {
			continue
		}
		if err := conn.Send(payload); err == nil {
			delivered++
		}
	}
	h.mu.RUnlock()
	return delivered
}

// NotifyUser delivers payload to the current connection of the given user.
func (h *Hub) NotifyUser(userID string, payload []byte) bool {
	h.mu.RLock()
	sessionID, ok := h.userSessions[userID]
	if !ok {
		h.mu.RUnlock()
		return false
	}
	conn := h.sessions[sessionID]
	h.mu.RUnlock()
	if conn == nil {
		return false
	}
	return conn.Send(payload) == nil
}

// Close terminates all tracked connections and clears hub state.
func (h *Hub) Close() {
	h.mu.Lock()
	sessions := make([]*Connection, 0, len(h.sessions))
	for _, conn := range h.sessions {
		sessions = append(sessions, conn)
	}
	h.sessions = make(map[string]*Connection)
	h.userSessions = make(map[string]string)
	h.rooms = make(map[string]map[string]*Connection)
	h.sessionRoom = make(map[string]string)
	h.mu.Unlock()

	for _, conn := range sessions {
		conn.Close(1001, "hub shutdown")
	}
}

func (h *Hub) detachLocked(sessionID string) {
	conn, ok := h.sessions[sessionID]
	if !ok {
		return
	}
	delete(h.sessions, sessionID)

	if current, ok := h.userSessions[conn.UserID]; ok && current == sessionID {
		delete(h.userSessions, conn.UserID)
	}

	if roomID, ok := h.sessionRoom[sessionID]; ok {
		h.leaveLocked(roomID, sessionID)
	}
}

func (h *Hub) leaveLocked(conversationID string, sessionID string) {
	room := h.rooms[conversationID]
	if room == nil {
		return
	}
	delete(room, sessionID)
	if len(room) == 0 {
		delete(h.rooms, conversationID)
	}
	delete(h.sessionRoom, sessionID)
}
