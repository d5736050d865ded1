package invoice

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"invoiceflow/cache"
	"invoiceflow/nav"
)

// Summary messages returned with a rejected mutation.
const (
	msgCreateMissingFields = "Missing Fields. Failed to Create Invoice."
	msgCreateStoreFailure  = "Database Error: Failed to Create Invoice."
	msgUpdateMissingFields = "Missing Fields. Failed to Update Invoice."
	msgUpdateStoreFailure  = "Database Error: Failed to Update Invoice."
)

// Service runs the invoice mutation workflow: validate the untrusted form,
// translate it into one repository call, and keep the cached listing
// consistent with whatever committed.
type Service struct {
	repo  Repository
	cache cache.Invalidator
	log   *zap.Logger
	now   func() time.Time
}

// NewService wires the workflow. A nil logger is replaced with a no-op one.
func NewService(repo Repository, invalidator cache.Invalidator, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:  repo,
		cache: invalidator,
		log:   log,
		now:   time.Now,
	}
}

// Create validates the form and inserts a new invoice. The server assigns
// the id and sets date to the current UTC day. Validation failures come back
// as field errors; a store failure comes back as a bare message and leaves
// nothing behind. On success the listing cache is invalidated and the caller
// is redirected to the listing.
func (s *Service) Create(ctx context.Context, form Form) Outcome {
	fields, fieldErrors := validate(form)
	if fieldErrors != nil {
		return Outcome{Form: &FormState{
			Errors:  fieldErrors,
			Message: msgCreateMissingFields,
		}}
	}

	inv := Invoice{
		ID:          NewID(),
		CustomerID:  fields.CustomerID,
		AmountCents: fields.AmountCents,
		Status:      fields.Status,
		Date:        s.now().UTC().Format("2006-01-02"),
	}

	if err := s.repo.Insert(ctx, inv); err != nil {
		s.log.Error("create invoice", zap.Error(err))
		return Outcome{Form: &FormState{Message: msgCreateStoreFailure}}
	}

	s.invalidateListing(ctx)
	return Outcome{Redirect: nav.RouteInvoiceList}
}

// Update rewrites customerId, amount, and status of an existing invoice; the
// id and date never change. The contract mirrors Create: field errors for
// bad input, a bare message when the store rejects the write, a redirect
// only when the row actually changed.
func (s *Service) Update(ctx context.Context, id string, form Form) Outcome {
	fields, fieldErrors := validate(form)
	if fieldErrors != nil {
		return Outcome{Form: &FormState{
			Errors:  fieldErrors,
			Message: msgUpdateMissingFields,
		}}
	}

	patch := Patch{
		CustomerID:  fields.CustomerID,
		AmountCents: fields.AmountCents,
		Status:      fields.Status,
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		s.log.Error("update invoice", zap.String("id", id), zap.Error(err))
		return Outcome{Form: &FormState{Message: msgUpdateStoreFailure}}
	}

	s.invalidateListing(ctx)
	return Outcome{Redirect: nav.RouteInvoiceList}
}

// Delete removes one invoice by id. A missing id is a no-op success; the
// listing cache is invalidated either way because the caller's view may
// predate the row's disappearance. Store errors are returned to the caller.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("invoice: delete %s: %w", id, err)
	}

	s.invalidateListing(ctx)
	return nil
}

// List returns the current invoice listing for the read side.
func (s *Service) List(ctx context.Context) ([]Invoice, error) {
	return s.repo.SelectAll(ctx)
}

// invalidateListing is the post-commit hook. Failures are logged and
// swallowed: the mutation already committed and the cache entry expires on
// its own TTL.
func (s *Service) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, nav.RouteInvoiceList); err != nil {
		s.log.Warn("invalidate invoice listing", zap.Error(err))
	}
}
