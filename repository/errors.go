package repository

import "errors"

var (
	// ErrNotFound is returned when no row matches the id under the given
	// owner. A row owned by another user is indistinguishable from a
	// missing one.
	ErrNotFound = errors.New("record not found")

	// ErrClientHasInvoices is returned when deleting a client that is
	// still referenced by invoices of the same owner.
	ErrClientHasInvoices = errors.New("client has invoices")
)
