package document

import "github.com/hbenali/boutique-api/internal/domain"

// Statuts d'une commande. Les factures n'ont pas de statut.
const (
	StatusNew       = "new"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusShipping  = "shipping"
	StatusShipped   = "shipped"
	StatusCancelled = "cancelled"

	// statusLegacyNew valeur dupliquée présente dans les enregistrements
	// historiques. Alias de StatusNew, jamais un septième état.
	statusLegacyNew = "nouvelle_commande"
)

// chaîne d'avancement d'une commande ; cancelled est atteignable depuis tout
// état non terminal.
var statusOrder = map[string]int{
	StatusNew:       0,
	StatusPreparing: 1,
	StatusReady:     2,
	StatusShipping:  3,
	StatusShipped:   4,
}

// NormalizeStatus ramène un statut stocké à sa forme canonique.
// Retourne ErrInvalidStatus pour toute valeur inconnue.
func NormalizeStatus(s string) (string, error) {
	if s == statusLegacyNew {
		return StatusNew, nil
	}
	switch s {
	case StatusNew, StatusPreparing, StatusReady, StatusShipping, StatusShipped, StatusCancelled:
		return s, nil
	}
	return "", domain.ErrInvalidStatus
}

// IsTerminalStatus indique si le statut interdit toute transition ultérieure.
func IsTerminalStatus(s string) bool {
	return s == StatusShipped || s == StatusCancelled
}

// CanTransition vérifie qu'un passage from → to est autorisé.
// Autorisés : rester sur place, avancer dans la chaîne (les sauts sont permis,
// new → ready est légal), et annuler depuis tout état non terminal.
// Les deux statuts doivent déjà être normalisés.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	if IsTerminalStatus(from) {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	fromRank, okFrom := statusOrder[from]
	toRank, okTo := statusOrder[to]
	return okFrom && okTo && toRank > fromRank
}
