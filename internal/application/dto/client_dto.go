package dto

// CreateClientRequest création d'un client via le flux dédié.
type CreateClientRequest struct {
	Name    string `json:"name"`
	Address string `json:"adresse"`
	Phone   string `json:"phone"`
	TaxID   string `json:"matricule"`
}

// ClientResponse client persisté.
type ClientResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"adresse"`
	Phone   string `json:"phone"`
	TaxID   string `json:"matricule"`
}
