package domain

// ActionKind is the closed set of signed message kinds the service accepts.
// The string value is the exact "action" field the signer's wallet displayed,
// so it is part of the wire format and must never change for a deployed chain.
type ActionKind string

const (
	// ActionMemberExpense is a community member claiming their own expense.
	ActionMemberExpense ActionKind = "Event Expense"
	// ActionEventCreate is an admin registering a new event.
	ActionEventCreate ActionKind = "Event Create"
	// ActionEventsShow is an admin listing all registered events.
	ActionEventsShow ActionKind = "Events Show"
	// ActionExpensesShow is an admin listing the expenses of one event.
	ActionExpensesShow ActionKind = "Event Expenses Show"
	// ActionAdminExpense is an admin booking an expense on a member's behalf.
	ActionAdminExpense ActionKind = "Event Expense Admin"
)

// String returns the signed "action" field value.
func (k ActionKind) String() string { return string(k) }

// RequiresMembership reports whether the kind is gated by the community
// membership directory rather than the admin allowlist.
func (k ActionKind) RequiresMembership() bool {
	return k == ActionMemberExpense
}
