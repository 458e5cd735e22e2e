package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcardenas-dev/gestion-api/internal/domain"
	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
	"github.com/jcardenas-dev/gestion-api/internal/domain/repository"
)

var _ repository.SalesDocumentRepository = (*SalesDocumentRepo)(nil)

// SalesDocumentRepo persiste cotizaciones y pedidos (cabecera + líneas).
type SalesDocumentRepo struct {
	q Querier
}

func NewSalesDocumentRepository(q Querier) *SalesDocumentRepo {
	return &SalesDocumentRepo{q: q}
}

// Create inserta cabecera y líneas. La restricción única (company_id, number)
// es la que hace seguro el reintento de numeración: si dos escritores toman
// el mismo consecutivo, el segundo recibe domain.ErrDuplicate.
func (r *SalesDocumentRepo) Create(ctx context.Context, doc *entity.SalesDocument) error {
	query := `
		INSERT INTO sales_documents (id, company_id, number, type, status, customer_name, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	createdBy := (*string)(nil)
	if doc.CreatedBy != "" {
		createdBy = &doc.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.CompanyID, doc.Number, doc.Type, doc.Status,
		doc.CustomerName, doc.CreatedAt, doc.UpdatedAt, createdBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create sales document: %w", err)
	}
	for i := range doc.Items {
		it := &doc.Items[i]
		itemQuery := `
			INSERT INTO sales_document_items (id, document_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)`
		if _, err := r.q.Exec(ctx, itemQuery, it.ID, it.DocumentID, it.ProductID, it.Quantity, it.UnitPrice); err != nil {
			return fmt.Errorf("create sales document item: %w", err)
		}
	}
	return nil
}

// GetByID carga cabecera y líneas.
func (r *SalesDocumentRepo) GetByID(ctx context.Context, companyID, id string) (*entity.SalesDocument, error) {
	query := `
		SELECT id, company_id, number, type, status, customer_name, created_at, updated_at, COALESCE(created_by::text, '')
		FROM sales_documents
		WHERE company_id = $1 AND id = $2`
	var doc entity.SalesDocument
	err := r.q.QueryRow(ctx, query, companyID, id).Scan(
		&doc.ID, &doc.CompanyID, &doc.Number, &doc.Type, &doc.Status,
		&doc.CustomerName, &doc.CreatedAt, &doc.UpdatedAt, &doc.CreatedBy,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get sales document: %w", err)
	}
	itemsQuery := `
		SELECT id, document_id, product_id, quantity, unit_price
		FROM sales_document_items
		WHERE document_id = $1
		ORDER BY id`
	rows, err := r.q.Query(ctx, itemsQuery, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("list sales document items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SalesDocumentItem
		if err := rows.Scan(&it.ID, &it.DocumentID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan sales document item: %w", err)
		}
		doc.Items = append(doc.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateStatus cambia el estado de la cabecera. Las líneas nunca se tocan.
func (r *SalesDocumentRepo) UpdateStatus(ctx context.Context, companyID, id, status string) error {
	query := `
		UPDATE sales_documents
		SET status = $3, updated_at = NOW()
		WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, companyID, id, status)
	if err != nil {
		return fmt.Errorf("update sales document status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReservedByProducts recalcula la reserva viva escaneando las líneas de
// pedidos en DRAFT/OPEN. Las cotizaciones nunca suman, en ningún estado.
func (r *SalesDocumentRepo) ReservedByProducts(ctx context.Context, companyID string, productIDs []string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT i.product_id, COALESCE(SUM(i.quantity), 0)
		FROM sales_document_items i
		JOIN sales_documents d ON d.id = i.document_id
		WHERE d.company_id = $1
		  AND d.type = 'ORDER'
		  AND d.status IN ('DRAFT', 'OPEN')
		  AND i.product_id = ANY($2)
		GROUP BY i.product_id`
	rows, err := r.q.Query(ctx, query, companyID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("sum reserved quantities: %w", err)
	}
	defer rows.Close()
	out := make(map[string]decimal.Decimal, len(productIDs))
	for rows.Next() {
		var productID string
		var sum decimal.Decimal
		if err := rows.Scan(&productID, &sum); err != nil {
			return nil, fmt.Errorf("scan reserved quantity: %w", err)
		}
		out[productID] = sum
	}
	return out, rows.Err()
}
