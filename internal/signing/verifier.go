// Package signing recovers the signer address of domain-separated EIP-712
// messages. It decides nothing about authorization: a syntactically valid
// signature always recovers to some address, and whether that address is
// allowed to act is the gate's problem.
package signing

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"events-tracker/internal/domain"
	dErrors "events-tracker/pkg/domain-errors"
)

var (
	// ErrMalformedSignature marks signatures that cannot be decoded or
	// recovered at all, as opposed to valid signatures by the wrong key.
	ErrMalformedSignature = dErrors.New(dErrors.CodeUnauthorized, "malformed signature")
)

func schemaMismatch(detail string) error {
	return dErrors.New(dErrors.CodeBadRequest, "message does not match action schema: "+detail)
}

// Verifier reconstructs the typed structure a signer was shown and recovers
// the signing address. The domain separator binds signatures to one
// deployment and chain, so a signature captured here cannot be replayed
// against another instance.
type Verifier struct {
	domain apitypes.TypedDataDomain
}

// NewVerifier builds a verifier for the given signing domain.
func NewVerifier(name, version string, chainID int64) *Verifier {
	return &Verifier{
		domain: apitypes.TypedDataDomain{
			Name:    name,
			Version: version,
			ChainId: math.NewHexOrDecimal256(chainID),
		},
	}
}

// Recover returns the address that signed the typed message assembled from
// kind and msg. The signature is the 0x-prefixed 65-byte compact form wallets
// produce; both v in {0,1} and the legacy {27,28} encoding are accepted.
//
// Pure function of its inputs; it performs no I/O.
func (v *Verifier) Recover(kind domain.ActionKind, msg Message, signature string) (common.Address, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil || len(sig) != crypto.SignatureLength {
		return common.Address{}, ErrMalformedSignature
	}

	td, err := v.typedData(kind, msg)
	if err != nil {
		return common.Address{}, err
	}
	sighash, _, err := apitypes.TypedDataAndHash(td)
	if err != nil {
		return common.Address{}, schemaMismatch(err.Error())
	}

	// crypto.SigToPub wants the recovery id in the low form.
	rec := make([]byte, crypto.SignatureLength)
	copy(rec, sig)
	if rec[64] >= 27 {
		rec[64] -= 27
	}
	if rec[64] > 1 {
		return common.Address{}, ErrMalformedSignature
	}

	pub, err := crypto.SigToPub(sighash, rec)
	if err != nil {
		return common.Address{}, ErrMalformedSignature
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// IsMalformed reports whether err is the malformed-signature error, for
// callers that distinguish it from schema mismatches.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedSignature)
}
