package repository

import "github.com/hbenali/boutique-api/internal/domain/entity"

// MessageRepository port de lecture des modèles de messages SMS.
type MessageRepository interface {
	// GetFirst retourne la première ligne de la table messages, ou nil si vide.
	GetFirst() (*entity.Message, error)
}
