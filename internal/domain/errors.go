package domain

import "errors"

var (
	ErrMalformedMoniker = errors.New("malformed package moniker")
	ErrMalformedVersion = errors.New("malformed package version")
	ErrUnknownChannel   = errors.New("unknown release channel")
	ErrDuplicateEntry   = errors.New("ledger entry already recorded")
	ErrSectionNotFound  = errors.New("changelog section not found")
	ErrNoMonitorTargets = errors.New("no monitor targets configured")
)
