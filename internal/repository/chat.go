package repository

import (
	"context"

	"github.com/smarterworkco/GPT-UI/internal/domain"
)

func (r *PostgresRepository) GetChatSessions(ctx context.Context, businessID int64) ([]domain.ChatSession, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, agent_type, business_id, created_at
		 FROM chat_sessions WHERE business_id = $1 ORDER BY id`,
		businessID,
	)
	if err != nil {
		return nil, wrapQuery("list chat sessions", err)
	}
	defer rows.Close()

	out := make([]domain.ChatSession, 0)
	for rows.Next() {
		var s domain.ChatSession
		if err := rows.Scan(&s.ID, &s.AgentType, &s.BusinessID, &s.CreatedAt); err != nil {
			return nil, wrapQuery("scan chat session", err)
		}
		out = append(out, s)
	}
	return out, wrapQuery("list chat sessions", rows.Err())
}

func (r *PostgresRepository) GetChatSession(ctx context.Context, id int64) (*domain.ChatSession, error) {
	var s domain.ChatSession
	err := r.db.QueryRow(ctx,
		`SELECT id, agent_type, business_id, created_at FROM chat_sessions WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.AgentType, &s.BusinessID, &s.CreatedAt)
	if err != nil {
		return nil, wrapQuery("get chat session", notFound(err, domain.ErrChatSessionNotFound))
	}
	return &s, nil
}

func (r *PostgresRepository) CreateChatSession(ctx context.Context, in domain.CreateChatSessionInput) (*domain.ChatSession, error) {
	s := domain.NewChatSession(in, r.stamp())
	err := r.db.QueryRow(ctx,
		`INSERT INTO chat_sessions (agent_type, business_id, created_at) VALUES ($1, $2, $3) RETURNING id`,
		s.AgentType, s.BusinessID, s.CreatedAt,
	).Scan(&s.ID)
	if err != nil {
		return nil, wrapQuery("create chat session", err)
	}
	return &s, nil
}

func (r *PostgresRepository) GetChatMessages(ctx context.Context, sessionID int64) ([]domain.ChatMessage, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, session_id, role, content, created_at
		 FROM chat_messages WHERE session_id = $1 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, wrapQuery("list chat messages", err)
	}
	defer rows.Close()

	out := make([]domain.ChatMessage, 0)
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, wrapQuery("scan chat message", err)
		}
		out = append(out, m)
	}
	return out, wrapQuery("list chat messages", rows.Err())
}

func (r *PostgresRepository) CreateChatMessage(ctx context.Context, in domain.CreateChatMessageInput) (*domain.ChatMessage, error) {
	m := domain.NewChatMessage(in, r.stamp())
	err := r.db.QueryRow(ctx,
		`INSERT INTO chat_messages (session_id, role, content, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		m.SessionID, m.Role, m.Content, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return nil, wrapQuery("create chat message", err)
	}
	return &m, nil
}
