package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/hbenali/boutique-api/internal/domain"
	"github.com/hbenali/boutique-api/internal/domain/entity"
	"github.com/hbenali/boutique-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implémentation du port DocumentRepository sur PostgreSQL.
// Les lignes vivent dans document_lines avec suppression en cascade.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construit l'adaptateur de persistance des documents.
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, kind, number, COALESCE(client_id, ''), COALESCE(status, ''), discount_amount, discount_percent, delivery_fee, note, subtotal, total, created_at, updated_at`

// Create persiste l'en-tête d'un document. Les lignes sont insérées
// séparément par CreateLine.
func (r *DocumentRepo) Create(doc *entity.SalesDocument) error {
	query := `
		INSERT INTO sales_documents (id, kind, number, client_id, status, discount_amount, discount_percent, delivery_fee, note, subtotal, total, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, string(doc.Kind), doc.Number, doc.ClientID, doc.Status,
		doc.DiscountAmount, doc.DiscountPercent, doc.DeliveryFee, doc.Note,
		doc.Subtotal, doc.Total, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID retourne un document par ID, nil si absent.
func (r *DocumentRepo) GetByID(id string) (*entity.SalesDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM sales_documents WHERE id = $1`
	var d entity.SalesDocument
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.Kind, &d.Number, &d.ClientID, &d.Status,
		&d.DiscountAmount, &d.DiscountPercent, &d.DeliveryFee, &d.Note,
		&d.Subtotal, &d.Total, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &d, nil
}

// Update écrit les champs d'en-tête (hors totaux, recalculés par UpdateTotals).
func (r *DocumentRepo) Update(doc *entity.SalesDocument) error {
	query := `
		UPDATE sales_documents
		SET client_id = NULLIF($2, ''), status = NULLIF($3, ''), discount_amount = $4, discount_percent = $5, delivery_fee = $6, note = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		doc.ID, doc.ClientID, doc.Status, doc.DiscountAmount, doc.DiscountPercent,
		doc.DeliveryFee, doc.Note, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateTotals persiste prix_ht et prix_ttc recalculés en fin de
// réconciliation.
func (r *DocumentRepo) UpdateTotals(id string, subtotal, total decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sales_documents SET subtotal = $2, total = $3, updated_at = now() WHERE id = $1`,
		id, subtotal, total,
	)
	if err != nil {
		return fmt.Errorf("update totals: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List liste les documents selon le filtre (variante obligatoire, statut et
// client optionnels), du plus récent au plus ancien.
func (r *DocumentRepo) List(filter repository.DocumentFilter) ([]*entity.SalesDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM sales_documents WHERE kind = $1`
	args := []any{string(filter.Kind)}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesDocument
	for rows.Next() {
		var d entity.SalesDocument
		if err := rows.Scan(&d.ID, &d.Kind, &d.Number, &d.ClientID, &d.Status,
			&d.DiscountAmount, &d.DiscountPercent, &d.DeliveryFee, &d.Note,
			&d.Subtotal, &d.Total, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Delete supprime un document. Les lignes partent par cascade ; la relâche
// du stock est faite par le cas d'usage avant cet appel, dans la même tx.
func (r *DocumentRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM sales_documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetLines retourne les lignes du document dans l'ordre d'insertion.
func (r *DocumentRepo) GetLines(documentID string) ([]*entity.DocumentLine, error) {
	query := `
		SELECT id, document_id, product_id, quantity, unit_price, subtotal
		FROM document_lines WHERE document_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, documentID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.DocumentLine
	for rows.Next() {
		var l entity.DocumentLine
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// CreateLine insère une ligne. position est dérivée du nombre de lignes déjà
// présentes, l'insertion étant toujours séquentielle dans la tx.
func (r *DocumentRepo) CreateLine(line *entity.DocumentLine) error {
	query := `
		INSERT INTO document_lines (id, document_id, product_id, quantity, unit_price, subtotal, position)
		VALUES ($1, $2, $3, $4, $5, $6,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM document_lines WHERE document_id = $2))`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.DocumentID, line.ProductID, line.Quantity, line.UnitPrice, line.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert line: %w", err)
	}
	return nil
}

// DeleteLines supprime toutes les lignes du document (remplacement intégral
// à chaque édition).
func (r *DocumentRepo) DeleteLines(documentID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM document_lines WHERE document_id = $1`, documentID)
	if err != nil {
		return fmt.Errorf("delete lines: %w", err)
	}
	return nil
}
