package signing

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"events-tracker/internal/domain"
	dErrors "events-tracker/pkg/domain-errors"
)

// Message carries the action-specific fields of a signed message. Which
// fields are significant depends on the ActionKind's schema; fields outside
// the schema must be zero.
type Message struct {
	Event   string
	Amount  uint64
	Address string
}

// primaryType is the sole struct type in every schema. The field lists below
// are versioned wire format shared with the signing frontend; changing them
// invalidates every signature produced so far.
const primaryType = "Message"

var domainType = []apitypes.Type{
	{Name: "name", Type: "string"},
	{Name: "version", Type: "string"},
	{Name: "chainId", Type: "uint256"},
}

var schemas = map[domain.ActionKind][]apitypes.Type{
	domain.ActionMemberExpense: {
		{Name: "action", Type: "string"},
		{Name: "event", Type: "string"},
		{Name: "amount", Type: "uint256"},
	},
	domain.ActionEventCreate: {
		{Name: "action", Type: "string"},
		{Name: "event", Type: "string"},
	},
	domain.ActionEventsShow: {
		{Name: "action", Type: "string"},
	},
	domain.ActionExpensesShow: {
		{Name: "action", Type: "string"},
		{Name: "event", Type: "string"},
	},
	domain.ActionAdminExpense: {
		{Name: "action", Type: "string"},
		{Name: "event", Type: "string"},
		{Name: "amount", Type: "uint256"},
		{Name: "address", Type: "address"},
	},
}

// typedData assembles the full EIP-712 structure for one action kind, or
// ErrSchemaMismatch when msg does not fit the kind's field list.
func (v *Verifier) typedData(kind domain.ActionKind, msg Message) (apitypes.TypedData, error) {
	schema, ok := schemas[kind]
	if !ok {
		return apitypes.TypedData{}, dErrors.New(dErrors.CodeBadRequest, "unknown action kind")
	}

	fields := apitypes.TypedDataMessage{}
	for _, field := range schema {
		switch field.Name {
		case "action":
			fields["action"] = kind.String()
		case "event":
			if msg.Event == "" {
				return apitypes.TypedData{}, schemaMismatch("event is required")
			}
			fields["event"] = msg.Event
		case "amount":
			if msg.Amount == 0 {
				return apitypes.TypedData{}, schemaMismatch("amount is required")
			}
			fields["amount"] = (*math.HexOrDecimal256)(new(big.Int).SetUint64(msg.Amount))
		case "address":
			if !common.IsHexAddress(msg.Address) {
				return apitypes.TypedData{}, schemaMismatch("address is invalid")
			}
			fields["address"] = common.HexToAddress(msg.Address).Hex()
		}
	}

	// Fields outside the schema signal a caller/schema disagreement.
	if !schemaHas(schema, "event") && msg.Event != "" {
		return apitypes.TypedData{}, schemaMismatch("event not allowed for this action")
	}
	if !schemaHas(schema, "amount") && msg.Amount != 0 {
		return apitypes.TypedData{}, schemaMismatch("amount not allowed for this action")
	}
	if !schemaHas(schema, "address") && msg.Address != "" {
		return apitypes.TypedData{}, schemaMismatch("address not allowed for this action")
	}

	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": domainType,
			primaryType:    schema,
		},
		PrimaryType: primaryType,
		Domain:      v.domain,
		Message:     fields,
	}, nil
}

func schemaHas(schema []apitypes.Type, name string) bool {
	for _, f := range schema {
		if f.Name == name {
			return true
		}
	}
	return false
}
