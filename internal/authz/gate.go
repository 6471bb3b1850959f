// Package authz decides whether a principal may perform an action that
// requires one of a set of company roles.
//
// Two strategies exist, selected deterministically by whether a company
// context was resolved for the request: the membership strategy queries the
// company_users table and applies the unconditional owner bypass; the
// legacy strategy compares the principal's single role field. The system
// predates per-company memberships, and requests without a company context
// still carry only the legacy role.
package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/verlyx/hub-server/internal/models"
	"github.com/verlyx/hub-server/internal/storage"
)

// Kind classifies authorization failures
type Kind int

const (
	// KindUnauthenticated means no principal was established
	KindUnauthenticated Kind = iota
	// KindForbidden means the principal lacks a required role
	KindForbidden
)

// Error is an authorization failure. The cause is kept for logs and is
// never exposed to the API consumer.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnauthenticated:
		return "user not authenticated"
	default:
		if e.Cause != nil {
			return fmt.Sprintf("insufficient permissions: %v", e.Cause)
		}
		return "insufficient permissions"
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Principal is the authenticated actor making a request
type Principal struct {
	UserID uuid.UUID
	Email  string
	// LegacyRole is the single pre-membership role field
	LegacyRole string
}

// MembershipChecker resolves membership roles and company ownership
type MembershipChecker interface {
	GetMembershipRole(ctx context.Context, userID, companyID uuid.UUID) (models.Role, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
}

// Gate evaluates role requirements
type Gate struct {
	memberships MembershipChecker
}

// NewGate creates a gate backed by the given membership checker
func NewGate(memberships MembershipChecker) *Gate {
	return &Gate{memberships: memberships}
}

// Require checks that the principal holds one of the required roles.
// companyID may be nil when no company context was resolved.
func (g *Gate) Require(ctx context.Context, principal *Principal, companyID *uuid.UUID, required ...models.Role) error {
	if len(required) == 0 {
		return nil
	}

	if principal == nil {
		return &Error{Kind: KindUnauthenticated}
	}

	if companyID != nil {
		return g.requireMembership(ctx, principal, *companyID, required)
	}

	return g.requireLegacyRole(principal, required)
}

// HasAccess reports whether the principal is an active member or the owner
// of the company. Used by handlers that require membership of any role.
// A membership lookup failure is not distinguished from a missing
// membership; both fall through to the owner check, so a transient store
// error can read as "no access" rather than surfacing.
func (g *Gate) HasAccess(ctx context.Context, principal *Principal, companyID uuid.UUID) (bool, error) {
	if principal == nil {
		return false, &Error{Kind: KindUnauthenticated}
	}

	_, err := g.memberships.GetMembershipRole(ctx, principal.UserID, companyID)
	if err == nil {
		return true, nil
	}

	return g.isOwner(ctx, principal.UserID, companyID)
}

// IsOwner reports whether the principal owns the company
func (g *Gate) IsOwner(ctx context.Context, principal *Principal, companyID uuid.UUID) (bool, error) {
	if principal == nil {
		return false, &Error{Kind: KindUnauthenticated}
	}
	return g.isOwner(ctx, principal.UserID, companyID)
}

// requireMembership is the membership strategy: the member's role must be in
// the required set, or the principal must be the company owner. Owner
// bypass is unconditional and does not consult the company active flag.
func (g *Gate) requireMembership(ctx context.Context, principal *Principal, companyID uuid.UUID, required []models.Role) error {
	role, err := g.memberships.GetMembershipRole(ctx, principal.UserID, companyID)
	if err == nil && roleIn(role, required) {
		return nil
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		// A missing membership is a normal outcome, anything else is a
		// lookup failure collapsed to forbidden at the boundary
		return &Error{Kind: KindForbidden, Cause: err}
	}

	owner, ownerErr := g.isOwner(ctx, principal.UserID, companyID)
	if ownerErr != nil {
		return &Error{Kind: KindForbidden, Cause: ownerErr}
	}
	if owner {
		return nil
	}

	return &Error{Kind: KindForbidden}
}

// requireLegacyRole is the legacy strategy: the single role field must be
// in the required set
func (g *Gate) requireLegacyRole(principal *Principal, required []models.Role) error {
	for _, r := range required {
		if principal.LegacyRole == string(r) {
			return nil
		}
	}
	return &Error{Kind: KindForbidden}
}

func (g *Gate) isOwner(ctx context.Context, userID, companyID uuid.UUID) (bool, error) {
	company, err := g.memberships.GetCompany(ctx, companyID)
	if err != nil {
		return false, fmt.Errorf("resolve company owner: %w", err)
	}
	return company.OwnerUserID == userID, nil
}

func roleIn(role models.Role, set []models.Role) bool {
	for _, r := range set {
		if r == role {
			return true
		}
	}
	return false
}
