package entity

// Message contient les modèles de messages SMS configurables (table messages).
// Une seule ligne est utilisée en pratique ; WelcomeText peut être vide,
// auquel cas le texte par défaut s'applique.
type Message struct {
	ID          string
	WelcomeText string
}

// DefaultWelcomeText texte de bienvenue envoyé quand la table messages est vide.
const DefaultWelcomeText = "Cher(e) client(e), nous vous remercions de votre confiance et nous serons ravis de vous revoir dans notre boutique."
