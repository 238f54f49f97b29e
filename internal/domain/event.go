package domain

import "github.com/ethereum/go-ethereum/common"

// Event is a registered community event. Events are created once by an admin
// and never renamed or deleted; the slug is derived from the name and is the
// stable key everywhere else in the system.
type Event struct {
	Name string
	Slug string
}

// ExpenseEntry is one member's claimed amount for an event. There is at most
// one live entry per (event, address); resubmission replaces the amount.
type ExpenseEntry struct {
	Address common.Address
	Amount  uint64
}
