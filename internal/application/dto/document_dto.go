package dto

import "github.com/shopspring/decimal"

// DocumentLineRequest une ligne proposée lors d'une édition ou création de
// document. Les noms de champs reprennent le contrat du formulaire admin.
// Une entrée sans produit_id ou sans qte positive est écartée silencieusement
// (comportement documenté, pas une erreur).
type DocumentLineRequest struct {
	ProduitID    string          `json:"produit_id"`
	Qte          int64           `json:"qte"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire"`
}

// EditDocumentRequest requête de sauvegarde complète d'un document : tous les
// champs d'en-tête et l'ensemble des lignes proposées (jamais un delta).
type EditDocumentRequest struct {
	ClientID string `json:"client_id"`

	// Création de client en ligne ("nouveau client" coché dans l'admin).
	NewClient     bool   `json:"new_client"`
	ClientName    string `json:"client_name"`
	ClientAddress string `json:"client_adresse"`
	ClientPhone   string `json:"client_phone"`
	ClientTaxID   string `json:"client_matricule"`

	Etat              string                `json:"etat"` // commandes uniquement
	Remise            decimal.Decimal       `json:"remise"`
	PourcentageRemise decimal.Decimal       `json:"pourcentage_remise"`
	FraisLivraison    decimal.Decimal       `json:"frais_livraison"` // commandes uniquement
	Note              string                `json:"note"`
	Details           []DocumentLineRequest `json:"details"`
}

// CreateDocumentRequest création d'un document ; numéro généré si absent.
type CreateDocumentRequest struct {
	EditDocumentRequest
	Numero string `json:"numero"`
}

// DocumentLineResponse ligne persistée d'un document.
type DocumentLineResponse struct {
	ID           string          `json:"id"`
	ProduitID    string          `json:"produit_id"`
	Qte          int64           `json:"qte"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire"`
	PrixHT       decimal.Decimal `json:"prix_ht"`
}

// DocumentResponse document complet avec totaux recalculés.
type DocumentResponse struct {
	ID                string                 `json:"id"`
	Kind              string                 `json:"kind"`
	Numero            string                 `json:"numero"`
	ClientID          string                 `json:"client_id"`
	Etat              string                 `json:"etat,omitempty"`
	Remise            decimal.Decimal        `json:"remise"`
	PourcentageRemise decimal.Decimal        `json:"pourcentage_remise"`
	FraisLivraison    decimal.Decimal        `json:"frais_livraison"`
	Note              string                 `json:"note,omitempty"`
	PrixHT            decimal.Decimal        `json:"prix_ht"`
	PrixTTC           decimal.Decimal        `json:"prix_ttc"`
	CreatedAt         string                 `json:"created_at"`
	Details           []DocumentLineResponse `json:"details"`
}
