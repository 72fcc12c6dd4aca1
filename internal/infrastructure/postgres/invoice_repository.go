package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/approval-hub/approval-hub/internal/domain/invoice"
)

// InvoiceRepository implements invoice.Repository as a read-only view over
// the application's invoice table.
type InvoiceRepository struct {
	pool *pgxpool.Pool
}

func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

func (r *InvoiceRepository) GetByID(ctx context.Context, invoiceID uuid.UUID) (*invoice.Invoice, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, invoice_id, tenant_id, number, vendor_name, amount, currency, disposition, submitted_by, created_at
		FROM invoices
		WHERE invoice_id=$1
	`, invoiceID)
	var inv invoice.Invoice
	if err := row.Scan(&inv.ID, &inv.InvoiceID, &inv.TenantID, &inv.Number, &inv.VendorName,
		&inv.Amount, &inv.Currency, &inv.Disposition, &inv.SubmittedBy, &inv.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepository) Exists(ctx context.Context, invoiceID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM invoices WHERE invoice_id=$1)
	`, invoiceID).Scan(&exists)
	return exists, err
}
