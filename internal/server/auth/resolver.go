package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/GTBioPortal/BioPortal-Backend/internal/common"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/models"
)

const bearerPrefix = "Bearer "

// Identity is the minimal projection of an authenticated principal handed
// to the rest of the system. It never carries the password hash.
type Identity struct {
	ID    string
	Email string
	Kind  models.PrincipalKind
}

// PrincipalSource looks up a principal of the given kind by id.
// Implementations return common.ErrorNotFound when no such principal exists.
type PrincipalSource interface {
	FindPrincipal(ctx context.Context, kind models.PrincipalKind, id string) (*models.Principal, error)
}

// Resolver turns a raw Authorization header into a resolved Identity.
type Resolver struct {
	codec      *Codec
	principals PrincipalSource
}

func NewResolver(codec *Codec, principals PrincipalSource) *Resolver {
	return &Resolver{codec: codec, principals: principals}
}

// Authenticate extracts the bearer token from authHeader, decodes it for the
// expected principal kind, and loads the principal from that kind's store.
//
// Failure modes: common.ErrMissingToken when the header or the Bearer scheme
// is absent, common.ErrTokenExpired / common.ErrInvalidToken from the codec,
// and common.ErrUnknownPrincipal when the token's subject no longer exists.
func (r *Resolver) Authenticate(ctx context.Context, authHeader string, kind models.PrincipalKind) (*Identity, error) {
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil, common.ErrMissingToken
	}
	tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])
	if tokenString == "" {
		return nil, common.ErrMissingToken
	}

	subjectID, err := r.codec.Decode(tokenString, kind, time.Now())
	if err != nil {
		return nil, err
	}

	principal, err := r.principals.FindPrincipal(ctx, kind, subjectID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnknownPrincipal
		}
		return nil, common.ErrorInternal
	}

	return &Identity{ID: principal.ID, Email: principal.Email, Kind: kind}, nil
}
