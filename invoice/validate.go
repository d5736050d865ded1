package invoice

import (
	"github.com/shopspring/decimal"
)

// Form-boundary messages. The UI renders these verbatim next to each field.
const (
	msgCustomerRequired = "Please select a customer."
	msgAmountPositive   = "Please enter an amount greater than $0."
	msgStatusInvalid    = "Please select an invoice status."
)

var oneHundred = decimal.NewFromInt(100)

// validated holds the typed fields of a form that passed validation.
type validated struct {
	CustomerID  string
	AmountCents int64
	Status      Status
}

// validate applies every field rule and collects all failures together, so
// the form can highlight each bad field in a single round trip. A nil error
// map means the input is clean.
func validate(form Form) (validated, map[string][]string) {
	fieldErrors := make(map[string][]string)

	if form.CustomerID == "" {
		fieldErrors["customerId"] = append(fieldErrors["customerId"], msgCustomerRequired)
	}

	var cents int64
	amount, err := decimal.NewFromString(form.Amount)
	if err != nil || !amount.IsPositive() {
		fieldErrors["amount"] = append(fieldErrors["amount"], msgAmountPositive)
	} else {
		cents = amount.Mul(oneHundred).Round(0).IntPart()
	}

	status, ok := ParseStatus(form.Status)
	if !ok {
		fieldErrors["status"] = append(fieldErrors["status"], msgStatusInvalid)
	}

	if len(fieldErrors) > 0 {
		return validated{}, fieldErrors
	}

	return validated{
		CustomerID:  form.CustomerID,
		AmountCents: cents,
		Status:      status,
	}, nil
}
