package documents

import (
	"context"

	"github.com/hbenali/boutique-api/internal/domain/repository"
)

// TxRunner exécute une fonction dans une transaction de BD, en passant des
// repositories attachés à cette transaction. Garantit l'atomicité du moteur
// de réconciliation : toute erreur de fn provoque un rollback intégral.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		productRepo repository.ProductRepository,
		clientRepo repository.ClientRepository,
	) error) error
}

// SMSSender port vers la passerelle de messagerie externe.
// L'envoi est "fire-and-forget" : un échec est journalisé, jamais propagé
// au résultat de l'édition.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}
