package entity

import "time"

// Client représente un client de la boutique (facturation et commandes).
// Créé via le flux dédié de gestion clients ou en ligne pendant l'édition
// d'un document ("nouveau client").
type Client struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	TaxID     string // matricule fiscal
	CreatedAt time.Time
	UpdatedAt time.Time
}
