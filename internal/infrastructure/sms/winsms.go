// Package sms fournit l'adaptateur vers la passerelle WinSMS utilisée pour
// les SMS de bienvenue. L'envoi est toujours best-effort : un numéro
// inexploitable ou une erreur de la passerelle est journalisé, jamais
// transformé en erreur métier.
package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hbenali/boutique-api/internal/application/documents"
	"github.com/hbenali/boutique-api/pkg/config"
)

var _ documents.SMSSender = (*WinSMSGateway)(nil)

// WinSMSGateway client HTTP de l'API WinSMS.
type WinSMSGateway struct {
	apiURL   string
	apiKey   string
	senderID string
	client   *http.Client
}

// NewWinSMSGateway construit la passerelle. APIKey ou SenderID vide
// désactive l'envoi (utile en développement).
func NewWinSMSGateway(cfg config.SMSConfig) *WinSMSGateway {
	return &WinSMSGateway{
		apiURL:   cfg.APIURL,
		apiKey:   cfg.APIKey,
		senderID: cfg.SenderID,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Send normalise le numéro au format tunisien (216XXXXXXXX) et pousse le
// message vers la passerelle. Un numéro qui ne se normalise pas en 11
// chiffres commençant par 216 est ignoré silencieusement (journalisé).
func (g *WinSMSGateway) Send(ctx context.Context, phone, message string) error {
	to, ok := NormalizePhone(phone)
	if !ok {
		log.Warn().Str("phone", phone).Msg("sms: numéro inexploitable, envoi ignoré")
		return nil
	}
	if g.apiKey == "" || g.senderID == "" {
		log.Debug().Str("to", to).Msg("sms: passerelle non configurée, envoi ignoré")
		return nil
	}

	params := url.Values{}
	params.Set("action", "send-sms")
	params.Set("api_key", g.apiKey)
	params.Set("to", to)
	params.Set("from", g.senderID)
	params.Set("sms", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("sms: construire requête: %w", err)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms: appel passerelle: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sms: passerelle a répondu %d: %s", resp.StatusCode, string(body))
	}
	log.Info().Str("to", to).Msg("sms envoyé")
	return nil
}

// NormalizePhone applique les règles de normalisation des numéros :
// espaces retirés, préfixe "+" ou "00" international retiré, indicatif 216
// ajouté aux numéros locaux à 8 chiffres. Retourne false si le résultat
// n'est pas un numéro tunisien valide (11 chiffres commençant par 216).
func NormalizePhone(phone string) (string, bool) {
	p := strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	p = strings.TrimPrefix(p, "+")
	if strings.HasPrefix(p, "00") {
		p = p[2:]
	}
	if len(p) == 8 {
		p = "216" + p
	}
	if len(p) != 11 || !strings.HasPrefix(p, "216") {
		return "", false
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return p, true
}
