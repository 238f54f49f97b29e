// Package authz decides whether a recovered signer address may perform an
// action. Consumer actions consult the external membership directory; admin
// actions check a static allowlist injected at construction.
package authz

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"events-tracker/internal/domain"
	dErrors "events-tracker/pkg/domain-errors"
)

// MembershipOracle answers whether an address is a current community member.
// Implementations must return an error on any transport or decode failure so
// the gate can fail closed.
type MembershipOracle interface {
	IsMember(ctx context.Context, addr common.Address) (bool, error)
}

var (
	// ErrNotMember is returned with verified signatures whose signer is not
	// in the membership directory.
	ErrNotMember = dErrors.New(dErrors.CodeForbidden, "Not a member")
	// ErrNotAdmin is returned for admin actions signed by a non-admin key.
	ErrNotAdmin = dErrors.New(dErrors.CodeForbidden, "Not an admin")
)

// Gate applies the per-action authorization policy.
type Gate struct {
	oracle MembershipOracle
	admins map[common.Address]struct{}
	logger *slog.Logger
}

// NewGate builds a gate over the given oracle and admin allowlist. Addresses
// are case-normalized so configuration may use any hex casing.
func NewGate(oracle MembershipOracle, admins []common.Address, logger *slog.Logger) *Gate {
	set := make(map[common.Address]struct{}, len(admins))
	for _, a := range admins {
		set[a] = struct{}{}
	}
	return &Gate{oracle: oracle, admins: set, logger: logger}
}

// Authorize returns nil when addr may perform kind, or a Forbidden error
// otherwise. Oracle unavailability is a denial, never a grant: a dependency
// outage must not let anyone through.
func (g *Gate) Authorize(ctx context.Context, kind domain.ActionKind, addr common.Address) error {
	if kind.RequiresMembership() {
		member, err := g.oracle.IsMember(ctx, addr)
		if err != nil {
			g.logger.WarnContext(ctx, "membership oracle failed, denying",
				"address", addr.Hex(),
				"error", err,
			)
			return ErrNotMember
		}
		if !member {
			return ErrNotMember
		}
		return nil
	}

	if _, ok := g.admins[addr]; !ok {
		return ErrNotAdmin
	}
	return nil
}
