package customer

// Customer captures the subset of customer data the dashboard reads. The
// invoice workflow only ever consumes the identifier; the rest feeds the
// customers page.
type Customer struct {
	ID       string
	Name     string
	Email    string
	ImageURL string
}
