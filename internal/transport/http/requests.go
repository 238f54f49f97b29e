package httptransport

// Signed action request bodies. Every mutating route carries the signature
// and the address the caller claims signed it; the remaining fields mirror
// the typed message the wallet displayed.

type memberExpenseRequest struct {
	Signature string `json:"signature"`
	Signer    string `json:"signer"`
	Action    string `json:"action"`
	Event     string `json:"event"`
	Amount    uint64 `json:"amount"`
}

type adminEventCreateRequest struct {
	Signature string `json:"signature"`
	Signer    string `json:"signer"`
	Event     string `json:"event"`
}

type adminEventsListRequest struct {
	Signature string `json:"signature"`
	Signer    string `json:"signer"`
}

type adminExpensesListRequest struct {
	Signature string `json:"signature"`
	Signer    string `json:"signer"`
	Event     string `json:"event"`
}

type adminExpenseAddRequest struct {
	Signature string `json:"signature"`
	Signer    string `json:"signer"`
	Event     string `json:"event"`
	Amount    uint64 `json:"amount"`
	Address   string `json:"address"`
}
