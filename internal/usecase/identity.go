package usecase

import (
	"context"
	"fmt"

	"pitch-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IdentityResolver maps an authenticated caller to the identity that owns a
// reservation. Anonymous callers resolve to the shared guest account so
// every booking stays attributable. This is a fallback policy, not an
// authorization decision.
type IdentityResolver interface {
	ResolveOwner(ctx context.Context, callerID *uuid.UUID) (uuid.UUID, error)
}

type identityResolver struct {
	userRepo      repository.UserRepository
	guestUsername string
	log           *zap.Logger
}

func NewIdentityResolver(userRepo repository.UserRepository, guestUsername string, log *zap.Logger) IdentityResolver {
	return &identityResolver{
		userRepo:      userRepo,
		guestUsername: guestUsername,
		log:           log.With(zap.String("service", "identity")),
	}
}

func (r *identityResolver) ResolveOwner(ctx context.Context, callerID *uuid.UUID) (uuid.UUID, error) {
	if callerID != nil && *callerID != uuid.Nil {
		return *callerID, nil
	}

	guest, err := r.userRepo.GetOrCreateGuest(ctx, r.guestUsername)
	if err != nil {
		r.log.Error("Failed to resolve guest identity", zap.Error(err))
		return uuid.Nil, fmt.Errorf("resolve guest identity: %w", err)
	}

	return guest.ID, nil
}
