package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hbenali/boutique-api/internal/domain/entity"
	"github.com/hbenali/boutique-api/internal/domain/repository"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

// MessageRepo lecture des modèles de messages SMS (table messages).
type MessageRepo struct {
	q Querier
}

// NewMessageRepository construit l'adaptateur de lecture des messages.
func NewMessageRepository(q Querier) *MessageRepo {
	return &MessageRepo{q: q}
}

// GetFirst retourne la première ligne de la table, nil si elle est vide.
func (r *MessageRepo) GetFirst() (*entity.Message, error) {
	query := `SELECT id, COALESCE(msg_welcome, '') FROM messages ORDER BY id LIMIT 1`
	var m entity.Message
	err := r.q.QueryRow(context.Background(), query).Scan(&m.ID, &m.WelcomeText)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get message: %w", err)
	}
	return &m, nil
}
