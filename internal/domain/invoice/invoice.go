package invoice

import (
	"time"

	"github.com/google/uuid"
)

// Disposition is the invoice's position in its own lifecycle, owned by the
// surrounding application. The engine only reads it to guard workflow
// creation and to detect orphans.
type Disposition string

const (
	DispositionDraft     Disposition = "DRAFT"
	DispositionSubmitted Disposition = "SUBMITTED"
	DispositionApproved  Disposition = "APPROVED"
	DispositionPaid      Disposition = "PAID"
	DispositionVoided    Disposition = "VOIDED"
)

// Terminal reports whether the invoice can no longer enter approval.
func (d Disposition) Terminal() bool {
	return d == DispositionPaid || d == DispositionVoided
}

// Invoice is the read-only view of the request under approval. Amount and
// currency are already computed upstream; the engine never derives them.
type Invoice struct {
	ID          int64       `json:"id"`
	InvoiceID   uuid.UUID   `json:"invoiceId"`
	TenantID    uuid.UUID   `json:"tenantId"`
	Number      string      `json:"number"`
	VendorName  string      `json:"vendorName"`
	Amount      float64     `json:"amount"`
	Currency    string      `json:"currency"`
	Disposition Disposition `json:"disposition"`
	SubmittedBy string      `json:"submittedBy"`
	CreatedAt   time.Time   `json:"createdAt"`
}
