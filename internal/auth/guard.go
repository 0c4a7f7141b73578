package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
)

// AdminFinder is the slice of the admin repository the guard needs.
type AdminFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Admin, error)
}

// Principal is the authenticated admin behind a request together with the
// claims of the token that proved it.
type Principal struct {
	Admin  *model.AdminIdentity
	Claims *Claims
}

// Guard resolves the acting admin from a bearer credential.
type Guard struct {
	tokens  *JWTService
	admins  AdminFinder
	revoked RevocationStore
}

// NewGuard creates a guard. revoked may be nil when logout revocation is not wired.
func NewGuard(tokens *JWTService, admins AdminFinder, revoked RevocationStore) *Guard {
	return &Guard{tokens: tokens, admins: admins, revoked: revoked}
}

// BearerToken extracts the credential from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Identify resolves the admin behind header. Any failure means "no identity".
func (g *Guard) Identify(ctx context.Context, header string) (*Principal, bool) {
	p, err := g.Require(ctx, header)
	if err != nil {
		return nil, false
	}
	return p, true
}

// Require resolves the admin behind header or fails. Missing, malformed,
// expired, revoked and orphaned credentials all yield the uniform Unauthorized
// error; only unexpected lookup failures are reported as internal.
func (g *Guard) Require(ctx context.Context, header string) (*Principal, error) {
	token, ok := BearerToken(header)
	if !ok {
		return nil, apperrors.Unauthorized()
	}
	return g.Authenticate(ctx, token)
}

// Authenticate resolves a bare token string.
func (g *Guard) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, ok := g.tokens.Verify(token)
	if !ok {
		return nil, apperrors.Unauthorized()
	}

	if g.revoked != nil {
		revoked, err := g.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, apperrors.Internal("Failed to authenticate", fmt.Errorf("check revocation: %w", err))
		}
		if revoked {
			return nil, apperrors.Unauthorized()
		}
	}

	adminID, err := uuid.Parse(claims.AdminID)
	if err != nil {
		return nil, apperrors.Unauthorized()
	}
	admin, err := g.admins.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized()
		}
		return nil, apperrors.Internal("Failed to authenticate", err)
	}

	return &Principal{Admin: admin.Identity(), Claims: claims}, nil
}
