// Package documents implémente le moteur de réconciliation des documents de
// vente : chaque sauvegarde relâche la réservation de stock précédente,
// applique la nouvelle et recalcule les totaux selon la variante du document,
// le tout dans une seule transaction.
package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/hbenali/boutique-api/internal/application/dto"
	"github.com/hbenali/boutique-api/internal/domain"
	"github.com/hbenali/boutique-api/internal/domain/document"
	"github.com/hbenali/boutique-api/internal/domain/entity"
	"github.com/hbenali/boutique-api/internal/domain/repository"
)

// UseCase regroupe les opérations sur les documents de vente. Les lectures de
// validation se font hors transaction ; toute mutation (lignes, stock, totaux,
// client en ligne) passe par le TxRunner.
type UseCase struct {
	txRunner    TxRunner
	docRepo     repository.DocumentRepository
	clientRepo  repository.ClientRepository
	messageRepo repository.MessageRepository
	sms         SMSSender

	// allowNegativeStock autorise la survente (stock négatif, signalé par un
	// warning) au lieu de rejeter l'édition. Comportement historique : true.
	allowNegativeStock bool
}

// NewUseCase construit le cas d'usage.
func NewUseCase(
	txRunner TxRunner,
	docRepo repository.DocumentRepository,
	clientRepo repository.ClientRepository,
	messageRepo repository.MessageRepository,
	sms SMSSender,
	allowNegativeStock bool,
) *UseCase {
	return &UseCase{
		txRunner:           txRunner,
		docRepo:            docRepo,
		clientRepo:         clientRepo,
		messageRepo:        messageRepo,
		sms:                sms,
		allowNegativeStock: allowNegativeStock,
	}
}

// oversell trace une réservation qui a fait passer un stock sous zéro.
type oversell struct {
	productID string
	quantity  int64
	remaining int64
}

// EditDocument remplace l'en-tête et l'intégralité des lignes d'un document
// existant, dans une transaction unique :
//
//  1. création éventuelle du client en ligne (new_client) ;
//  2. application des champs d'en-tête ;
//  3. relâchement de la réservation précédente (stock += qte) et suppression
//     de toutes les lignes ;
//  4. insertion des lignes proposées valides (stock -= qte, instantané du
//     prix unitaire, cumul du prix_ht) ;
//  5. calcul du prix_ttc selon la variante ;
//  6. persistance des totaux.
//
// Le SMS de bienvenue d'un client créé en ligne n'est expédié qu'après le
// commit, afin de ne jamais notifier un client annulé par un rollback.
func (uc *UseCase) EditDocument(ctx context.Context, kind entity.Kind, id string, in dto.EditDocumentRequest) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.Kind != kind {
		return nil, domain.ErrNotFound
	}

	status := doc.Status
	if kind == entity.KindOrder {
		status, err = uc.nextStatus(doc.Status, in.Etat)
		if err != nil {
			return nil, err
		}
	}

	welcomeText := uc.welcomeText()
	now := time.Now()

	var (
		lines     []*entity.DocumentLine
		oversells []oversell
		newPhone  string
	)

	err = uc.txRunner.Run(ctx, func(
		docRepo repository.DocumentRepository,
		productRepo repository.ProductRepository,
		clientRepo repository.ClientRepository,
	) error {
		clientID := in.ClientID
		if in.NewClient {
			client, err := createInlineClient(clientRepo, in, now)
			if err != nil {
				return err
			}
			clientID = client.ID
			newPhone = client.Phone
		}

		// 2) En-tête (hors lignes et hors totaux).
		doc.ClientID = clientID
		doc.Status = status
		doc.DiscountAmount = in.Remise
		doc.DiscountPercent = in.PourcentageRemise
		if kind == entity.KindOrder {
			doc.DeliveryFee = in.FraisLivraison
		}
		doc.Note = in.Note
		doc.UpdatedAt = now
		if err := docRepo.Update(doc); err != nil {
			return err
		}

		// 3) Relâcher la réservation précédente puis supprimer les lignes.
		// L'ordre relâcher-puis-réserver garantit qu'un produit présent dans
		// l'ancien et le nouveau jeu de lignes se compense sans
		// sur-réservation intermédiaire.
		oldLines, err := docRepo.GetLines(doc.ID)
		if err != nil {
			return err
		}
		for _, line := range oldLines {
			if _, err := productRepo.AdjustStock(line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		if err := docRepo.DeleteLines(doc.ID); err != nil {
			return err
		}

		// 4) + 5) + 6) Nouvelle réservation et totaux.
		lines, oversells, err = uc.reserveLines(docRepo, productRepo, doc, in.Details, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.afterCommit(doc, oversells, newPhone, welcomeText)
	return toResponse(doc, lines), nil
}

// CreateDocument crée un document et applique la réservation initiale de
// stock dans la même transaction (même passe que l'édition, sans relâchement).
func (uc *UseCase) CreateDocument(ctx context.Context, kind entity.Kind, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if !in.NewClient && in.ClientID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	doc := &entity.SalesDocument{
		ID:              uuid.New().String(),
		Kind:            kind,
		Number:          in.Numero,
		DiscountAmount:  in.Remise,
		DiscountPercent: in.PourcentageRemise,
		Note:            in.Note,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if doc.Number == "" {
		doc.Number = generateNumber(kind, now)
	}
	if kind == entity.KindOrder {
		doc.DeliveryFee = in.FraisLivraison
		doc.Status = document.StatusNew
		if in.Etat != "" {
			s, err := document.NormalizeStatus(in.Etat)
			if err != nil {
				return nil, err
			}
			doc.Status = s
		}
	}

	welcomeText := uc.welcomeText()

	var (
		lines     []*entity.DocumentLine
		oversells []oversell
		newPhone  string
	)

	err := uc.txRunner.Run(ctx, func(
		docRepo repository.DocumentRepository,
		productRepo repository.ProductRepository,
		clientRepo repository.ClientRepository,
	) error {
		doc.ClientID = in.ClientID
		if in.NewClient {
			client, err := createInlineClient(clientRepo, in.EditDocumentRequest, now)
			if err != nil {
				return err
			}
			doc.ClientID = client.ID
			newPhone = client.Phone
		}
		if err := docRepo.Create(doc); err != nil {
			return err
		}
		var err error
		lines, oversells, err = uc.reserveLines(docRepo, productRepo, doc, in.Details, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.afterCommit(doc, oversells, newPhone, welcomeText)
	return toResponse(doc, lines), nil
}

// DeleteDocument supprime un document en relâchant d'abord la réservation de
// ses lignes, dans la même transaction, pour préserver l'invariant de stock.
func (uc *UseCase) DeleteDocument(ctx context.Context, kind entity.Kind, id string) error {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return err
	}
	if doc == nil || doc.Kind != kind {
		return domain.ErrNotFound
	}

	return uc.txRunner.Run(ctx, func(
		docRepo repository.DocumentRepository,
		productRepo repository.ProductRepository,
		_ repository.ClientRepository,
	) error {
		lines, err := docRepo.GetLines(id)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if _, err := productRepo.AdjustStock(line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		if err := docRepo.DeleteLines(id); err != nil {
			return err
		}
		return docRepo.Delete(id)
	})
}

// GetDocument retourne un document avec ses lignes.
func (uc *UseCase) GetDocument(ctx context.Context, kind entity.Kind, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.Kind != kind {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.docRepo.GetLines(id)
	if err != nil {
		return nil, err
	}
	return toResponse(doc, lines), nil
}

// ListDocuments liste les documents d'une variante (filtres statut/client).
func (uc *UseCase) ListDocuments(ctx context.Context, kind entity.Kind, status, clientID string, page dto.PageRequest) ([]*dto.DocumentResponse, error) {
	page.DefaultPage()
	if status != "" {
		s, err := document.NormalizeStatus(status)
		if err != nil {
			return nil, err
		}
		status = s
	}
	docs, err := uc.docRepo.List(repository.DocumentFilter{
		Kind:     kind,
		Status:   status,
		ClientID: clientID,
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toResponse(d, nil))
	}
	return out, nil
}

// reserveLines insère les lignes proposées valides, décrémente le stock et
// persiste les totaux recalculés. Une entrée sans produit ou sans quantité
// positive est écartée silencieusement et ne contribue pas au prix_ht.
func (uc *UseCase) reserveLines(
	docRepo repository.DocumentRepository,
	productRepo repository.ProductRepository,
	doc *entity.SalesDocument,
	details []dto.DocumentLineRequest,
	now time.Time,
) ([]*entity.DocumentLine, []oversell, error) {
	var (
		lines     []*entity.DocumentLine
		oversells []oversell
		subtotal  decimal.Decimal
	)

	for _, d := range details {
		if d.ProduitID == "" || d.Qte <= 0 {
			continue
		}
		line := &entity.DocumentLine{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			ProductID:  d.ProduitID,
			Quantity:   d.Qte,
			UnitPrice:  d.PrixUnitaire,
		}
		line.Subtotal = line.Extension()
		if err := docRepo.CreateLine(line); err != nil {
			return nil, nil, err
		}
		remaining, err := productRepo.AdjustStock(d.ProduitID, -d.Qte)
		if err != nil {
			return nil, nil, err
		}
		if remaining < 0 {
			if !uc.allowNegativeStock {
				return nil, nil, domain.ErrInsufficientStock
			}
			oversells = append(oversells, oversell{productID: d.ProduitID, quantity: d.Qte, remaining: remaining})
		}
		subtotal = subtotal.Add(line.Subtotal)
		lines = append(lines, line)
	}

	rules := document.RulesFor(doc.Kind)
	doc.Subtotal = subtotal
	doc.Total = rules.Total(subtotal, doc.DiscountAmount, doc.DeliveryFee)
	doc.UpdatedAt = now
	if err := docRepo.UpdateTotals(doc.ID, doc.Subtotal, doc.Total); err != nil {
		return nil, nil, err
	}
	return lines, oversells, nil
}

// nextStatus valide le statut demandé pour une commande : normalisation de
// l'alias historique puis contrôle de transition.
func (uc *UseCase) nextStatus(current, requested string) (string, error) {
	from, err := document.NormalizeStatus(current)
	if err != nil {
		// Valeur historique inconnue déjà en base : on la laisse telle quelle
		// tant que l'opérateur ne demande pas de changement.
		if requested == "" {
			return current, nil
		}
		return "", err
	}
	if requested == "" {
		return from, nil
	}
	to, err := document.NormalizeStatus(requested)
	if err != nil {
		return "", err
	}
	if !document.CanTransition(from, to) {
		return "", domain.ErrInvalidTransition
	}
	return to, nil
}

// welcomeText résout le texte du SMS de bienvenue (table messages, sinon le
// texte par défaut). Lu avant la transaction : la valeur est stable.
func (uc *UseCase) welcomeText() string {
	msg, err := uc.messageRepo.GetFirst()
	if err != nil || msg == nil || msg.WelcomeText == "" {
		return entity.DefaultWelcomeText
	}
	return msg.WelcomeText
}

// afterCommit journalise les surventes et expédie le SMS de bienvenue.
// Rien ici ne peut plus faire échouer l'édition : la transaction est commitée.
func (uc *UseCase) afterCommit(doc *entity.SalesDocument, oversells []oversell, phone, welcomeText string) {
	for _, o := range oversells {
		log.Warn().
			Str("document_id", doc.ID).
			Str("product_id", o.productID).
			Int64("qte", o.quantity).
			Int64("stock_restant", o.remaining).
			Msg("survente : stock négatif après réservation")
	}
	if phone == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := uc.sms.Send(ctx, phone, welcomeText); err != nil {
			log.Warn().Err(err).Str("phone", phone).Msg("envoi du SMS de bienvenue échoué")
		}
	}()
}

// createInlineClient crée le client "nouveau client" dans la transaction
// courante et retourne l'entité (l'ID remplace client_id dans l'en-tête).
func createInlineClient(clientRepo repository.ClientRepository, in dto.EditDocumentRequest, now time.Time) (*entity.Client, error) {
	if in.ClientName == "" {
		return nil, domain.ErrInvalidInput
	}
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      in.ClientName,
		Address:   in.ClientAddress,
		Phone:     in.ClientPhone,
		TaxID:     in.ClientTaxID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := clientRepo.Create(client); err != nil {
		return nil, err
	}
	return client, nil
}

// generateNumber numéro par défaut : préfixe de la variante + horodatage.
func generateNumber(kind entity.Kind, now time.Time) string {
	prefix := "CMD"
	if kind == entity.KindInvoice {
		prefix = "FAC"
	}
	return fmt.Sprintf("%s-%d", prefix, now.Unix())
}

func toResponse(doc *entity.SalesDocument, lines []*entity.DocumentLine) *dto.DocumentResponse {
	// L'alias historique est normalisé en lecture, jamais exposé tel quel.
	status := doc.Status
	if doc.Kind == entity.KindOrder {
		if s, err := document.NormalizeStatus(doc.Status); err == nil {
			status = s
		}
	}
	resp := &dto.DocumentResponse{
		ID:                doc.ID,
		Kind:              string(doc.Kind),
		Numero:            doc.Number,
		ClientID:          doc.ClientID,
		Etat:              status,
		Remise:            doc.DiscountAmount,
		PourcentageRemise: doc.DiscountPercent,
		FraisLivraison:    doc.DeliveryFee,
		Note:              doc.Note,
		PrixHT:            doc.Subtotal,
		PrixTTC:           doc.Total,
		CreatedAt:         doc.CreatedAt.Format(time.RFC3339),
		Details:           make([]dto.DocumentLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Details = append(resp.Details, dto.DocumentLineResponse{
			ID:           l.ID,
			ProduitID:    l.ProductID,
			Qte:          l.Quantity,
			PrixUnitaire: l.UnitPrice,
			PrixHT:       l.Subtotal,
		})
	}
	return resp
}
