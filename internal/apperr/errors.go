package apperr

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrLocked         = errors.New("locked by another process")
	ErrLedgerDisabled = errors.New("ledger disabled")
)
