package httptransport

import (
	"encoding/json"
	"net/http"

	"events-tracker/internal/domain"
)

// expenseView renders a ledger entry with the checksummed address form the
// frontend displays.
type expenseView struct {
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
}

func toExpenseViews(entries []domain.ExpenseEntry) []expenseView {
	views := make([]expenseView, 0, len(entries))
	for _, e := range entries {
		views = append(views, expenseView{Address: e.Address.Hex(), Amount: e.Amount})
	}
	return views
}

// Response envelopes. Action routes always carry "verified"; business-rule
// failures add a human-readable "message". The read path uses the
// error/event shape the public page consumes.

type verifiedResponse struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message,omitempty"`
}

type memberResponse struct {
	Verified bool `json:"verified"`
	Member   bool `json:"member"`
}

type eventCreatedResponse struct {
	Verified bool   `json:"verified"`
	Created  bool   `json:"created"`
	Slug     string `json:"slug"`
}

type eventsListResponse struct {
	Verified bool     `json:"verified"`
	Events   []string `json:"events"`
}

type expensesListResponse struct {
	Verified bool          `json:"verified"`
	Expenses []expenseView `json:"expenses"`
}

type eventResponse struct {
	Error   bool   `json:"error"`
	Event   string `json:"event,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeUnverified is the generic envelope for malformed input, signature
// mismatches, and unexpected failures. No signature internals are leaked.
func writeUnverified(w http.ResponseWriter, status int) {
	writeJSON(w, status, verifiedResponse{Verified: false})
}

// writeBusinessError surfaces a business-rule failure verbatim with 400, the
// status the public API has always used for them.
func writeBusinessError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, verifiedResponse{Verified: false, Message: message})
}
