package signing

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"events-tracker/internal/domain"
	dErrors "events-tracker/pkg/domain-errors"
)

func newTestVerifier() *Verifier {
	return NewVerifier("BuidlGuidl Events Tracker", "1", 10)
}

// sign produces the compact signature a wallet would for the given action.
func sign(t *testing.T, v *Verifier, key *ecdsa.PrivateKey, kind domain.ActionKind, msg Message) string {
	t.Helper()
	td, err := v.typedData(kind, msg)
	require.NoError(t, err)
	sighash, _, err := apitypes.TypedDataAndHash(td)
	require.NoError(t, err)
	sig, err := crypto.Sign(sighash, key)
	require.NoError(t, err)
	return hexutil.Encode(sig)
}

func TestRecoverRoundTrip(t *testing.T) {
	v := newTestVerifier()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	want := crypto.PubkeyToAddress(key.PublicKey)

	tests := []struct {
		name string
		kind domain.ActionKind
		msg  Message
	}{
		{"member expense", domain.ActionMemberExpense, Message{Event: "ETHDenver 2024", Amount: 120}},
		{"event create", domain.ActionEventCreate, Message{Event: "ETHDenver 2024"}},
		{"events show", domain.ActionEventsShow, Message{}},
		{"expenses show", domain.ActionExpensesShow, Message{Event: "ETHDenver 2024"}},
		{"admin expense", domain.ActionAdminExpense, Message{Event: "ETHDenver 2024", Amount: 75, Address: want.Hex()}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sig := sign(t, v, key, tc.kind, tc.msg)
			got, err := v.Recover(tc.kind, tc.msg, sig)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestRecoverAcceptsLegacyRecoveryID(t *testing.T) {
	v := newTestVerifier()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	want := crypto.PubkeyToAddress(key.PublicKey)

	msg := Message{Event: "ETHDenver 2024", Amount: 50}
	sig, err := hexutil.Decode(sign(t, v, key, domain.ActionMemberExpense, msg))
	require.NoError(t, err)

	// Wallets emit v as 27/28 rather than 0/1.
	sig[64] += 27
	got, err := v.Recover(domain.ActionMemberExpense, msg, hexutil.Encode(sig))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRecoverMutatedSignature(t *testing.T) {
	v := newTestVerifier()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	want := crypto.PubkeyToAddress(key.PublicKey)

	msg := Message{Event: "ETHDenver 2024", Amount: 50}
	raw, err := hexutil.Decode(sign(t, v, key, domain.ActionMemberExpense, msg))
	require.NoError(t, err)

	// Flip one bit in the r component: recovery either fails outright or
	// yields a different address, never the original signer.
	raw[3] ^= 0x01
	got, err := v.Recover(domain.ActionMemberExpense, msg, hexutil.Encode(raw))
	if err != nil {
		assert.ErrorIs(t, err, ErrMalformedSignature)
	} else {
		assert.NotEqual(t, want, got)
	}
}

func TestRecoverMutatedField(t *testing.T) {
	v := newTestVerifier()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	want := crypto.PubkeyToAddress(key.PublicKey)

	sig := sign(t, v, key, domain.ActionMemberExpense, Message{Event: "ETHDenver 2024", Amount: 50})

	got, err := v.Recover(domain.ActionMemberExpense, Message{Event: "ETHDenver 2024", Amount: 51}, sig)
	require.NoError(t, err)
	assert.NotEqual(t, want, got)
}

func TestRecoverMalformedSignatures(t *testing.T) {
	v := newTestVerifier()
	msg := Message{Event: "ETHDenver 2024", Amount: 50}

	for _, sig := range []string{"", "0x", "0xdeadbeef", "zz", "0x" + string(make([]byte, 130))} {
		_, err := v.Recover(domain.ActionMemberExpense, msg, sig)
		assert.ErrorIs(t, err, ErrMalformedSignature, "signature %q", sig)
	}

	// Correct length, impossible recovery id.
	bad := make([]byte, 65)
	bad[64] = 5
	_, err := v.Recover(domain.ActionMemberExpense, msg, hexutil.Encode(bad))
	assert.ErrorIs(t, err, ErrMalformedSignature)
}

func TestRecoverSchemaMismatch(t *testing.T) {
	v := newTestVerifier()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	sig := sign(t, v, key, domain.ActionEventCreate, Message{Event: "ETHDenver 2024"})

	tests := []struct {
		name string
		kind domain.ActionKind
		msg  Message
	}{
		{"missing event", domain.ActionEventCreate, Message{}},
		{"missing amount", domain.ActionMemberExpense, Message{Event: "ETHDenver 2024"}},
		{"amount not in schema", domain.ActionEventCreate, Message{Event: "ETHDenver 2024", Amount: 5}},
		{"event not in schema", domain.ActionEventsShow, Message{Event: "ETHDenver 2024"}},
		{"bad beneficiary address", domain.ActionAdminExpense, Message{Event: "E", Amount: 1, Address: "nope"}},
		{"unknown kind", domain.ActionKind("Event Delete"), Message{Event: "ETHDenver 2024"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := v.Recover(tc.kind, tc.msg, sig)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest), "got %v", err)
		})
	}
}

func TestDomainSeparation(t *testing.T) {
	v := newTestVerifier()
	other := NewVerifier("BuidlGuidl Events Tracker", "1", 1)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	want := crypto.PubkeyToAddress(key.PublicKey)

	msg := Message{Event: "ETHDenver 2024", Amount: 50}
	sig := sign(t, v, key, domain.ActionMemberExpense, msg)

	// Same message on a different chain id recovers a different address.
	got, err := other.Recover(domain.ActionMemberExpense, msg, sig)
	require.NoError(t, err)
	assert.NotEqual(t, want, got)
}
