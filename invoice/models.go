package invoice

// Status is the invoice lifecycle state. Only two values exist; anything
// else is rejected at the form boundary.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// ParseStatus validates a raw form value against the status enum.
func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusPending, StatusPaid:
		return Status(raw), true
	default:
		return "", false
	}
}

// Invoice mirrors the invoices table. Amounts are integer cents; Date is the
// creation day in YYYY-MM-DD and never changes after insert.
type Invoice struct {
	ID          string
	CustomerID  string
	AmountCents int64
	Status      Status
	Date        string
}

// Form is the untrusted string field bag submitted by the invoice form.
// The system assigns id and date, so neither is accepted here.
type Form struct {
	CustomerID string
	Amount     string
	Status     string
}

// FormState reports a rejected mutation back to the form: per-field message
// lists for inline highlighting plus a summary message. It lives for one
// request/response cycle.
type FormState struct {
	Errors  map[string][]string
	Message string
}

// Outcome is the result of a create or update call. Exactly one field is
// set: Form when the mutation was rejected, Redirect when it committed.
type Outcome struct {
	Form     *FormState
	Redirect string
}
