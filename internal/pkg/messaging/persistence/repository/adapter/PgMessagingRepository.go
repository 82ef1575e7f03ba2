package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	messaging "github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/application/domain"
	repository "github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/persistence/repository/port"
)

type PgMessagingRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessagingRepository(pool *pgxpool.Pool) *PgMessagingRepository {
	return &PgMessagingRepository{pool: pool}
}

var _ repository.MessagingRepository = (*PgMessagingRepository)(nil)

// UpsertConversation arbitrates on the conversations.application_id unique
// constraint. The no-op DO UPDATE makes a conflicting insert wait for the
// winning transaction and return its row, so even the loser of a concurrent
// race gets the surviving conversation back. A DO NOTHING plus sibling select
// would not: the select keeps the statement snapshot and misses a row
// committed after it was taken.
func (r *PgMessagingRepository) UpsertConversation(ctx context.Context, c messaging.Conversation) (messaging.Conversation, error) {
	if r == nil || r.pool == nil {
		return messaging.Conversation{}, errors.New("PgMessagingRepository: nil pool")
	}
	var out messaging.Conversation
	err := r.pool.QueryRow(ctx, `
		INSERT INTO conversations (application_id, user_id, company_owner_id)
		VALUES ($1::uuid, $2::uuid, $3::uuid)
		ON CONFLICT (application_id) DO UPDATE SET application_id = EXCLUDED.application_id
		RETURNING id::text, application_id::text, user_id::text, company_owner_id::text, created_at
	`, c.ApplicationID, c.UserID, c.CompanyOwnerID).
		Scan(&out.ID, &out.ApplicationID, &out.UserID, &out.CompanyOwnerID, &out.CreatedAt)
	if err != nil {
		return messaging.Conversation{}, err
	}
	return out, nil
}

func (r *PgMessagingRepository) GetConversation(ctx context.Context, conversationID string) (messaging.Conversation, error) {
	if r == nil || r.pool == nil {
		return messaging.Conversation{}, errors.New("PgMessagingRepository: nil pool")
	}
	var out messaging.Conversation
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, application_id::text, user_id::text, company_owner_id::text, created_at
		FROM conversations
		WHERE id = $1::uuid
	`, conversationID).Scan(&out.ID, &out.ApplicationID, &out.UserID, &out.CompanyOwnerID, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return messaging.Conversation{}, repository.ErrNotFound
	}
	if err != nil {
		return messaging.Conversation{}, err
	}
	return out, nil
}

func (r *PgMessagingRepository) ListConversationViews(ctx context.Context, userID string) ([]messaging.ConversationView, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessagingRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT c.id::text, c.application_id::text, c.user_id::text, c.company_owner_id::text, c.created_at,
		       other.id::text,
		       COALESCE(other.full_name, other.username, ''),
		       COALESCE(p.title, ''),
		       lm.last_message_at
		FROM conversations c
		JOIN applications a ON a.id = c.application_id
		JOIN postings p ON p.id = a.posting_id
		JOIN profiles other
		  ON other.id = CASE WHEN c.user_id = $1::uuid THEN c.company_owner_id ELSE c.user_id END
		LEFT JOIN LATERAL (
			SELECT max(m.created_at) AS last_message_at
			FROM messages m
			WHERE m.conversation_id = c.id
		) lm ON true
		WHERE c.user_id = $1::uuid OR c.company_owner_id = $1::uuid
		ORDER BY COALESCE(lm.last_message_at, c.created_at) DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []messaging.ConversationView
	for rows.Next() {
		var v messaging.ConversationView
		if err := rows.Scan(
			&v.ID, &v.ApplicationID, &v.UserID, &v.CompanyOwnerID, &v.CreatedAt,
			&v.OtherPartyID, &v.OtherPartyName, &v.PostingTitle, &v.LastMessageAt,
		); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return views, nil
}

func (r *PgMessagingRepository) SaveMessage(ctx context.Context, m messaging.Message) (messaging.Message, error) {
	if r == nil || r.pool == nil {
		return messaging.Message{}, errors.New("PgMessagingRepository: nil pool")
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, sender_id, content, created_at)
		VALUES ($1::uuid, $2::uuid, $3, $4)
		RETURNING id::text, created_at
	`, m.ConversationID, m.SenderID, m.Content, m.CreatedAt).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return messaging.Message{}, err
	}
	return m, nil
}

func (r *PgMessagingRepository) GetMessagesByConversation(ctx context.Context, conversationID string, limit int, offset int) ([]messaging.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessagingRepository: nil pool")
	}
	if limit <= 0 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, conversation_id::text, sender_id::text, content, created_at
		FROM messages
		WHERE conversation_id = $1::uuid
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`, conversationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []messaging.Message
	for rows.Next() {
		var msg messaging.Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return msgs, nil
}

func (r *PgMessagingRepository) GetApplicationRef(ctx context.Context, applicationID string) (messaging.ApplicationRef, error) {
	if r == nil || r.pool == nil {
		return messaging.ApplicationRef{}, errors.New("PgMessagingRepository: nil pool")
	}
	var ref messaging.ApplicationRef
	err := r.pool.QueryRow(ctx, `
		SELECT a.id::text, a.user_id::text, p.id::text, p.title, co.owner_id::text
		FROM applications a
		JOIN postings p ON p.id = a.posting_id
		JOIN companies co ON co.id = p.company_id
		WHERE a.id = $1::uuid
	`, applicationID).Scan(&ref.ID, &ref.ApplicantID, &ref.PostingID, &ref.PostingTitle, &ref.CompanyOwnerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return messaging.ApplicationRef{}, repository.ErrNotFound
	}
	if err != nil {
		return messaging.ApplicationRef{}, err
	}
	return ref, nil
}
