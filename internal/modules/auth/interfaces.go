package auth

import (
	"context"

	"dieselx/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type OrgRepository interface {
	Create(ctx context.Context, o *domain.Organization) error
	AddMember(ctx context.Context, member *domain.OrgMember) error
	MembershipFor(ctx context.Context, userID string) (*domain.OrgMember, error)
}

type TokenIssuer interface {
	GenerateToken(userID, organizationID, role string) (string, error)
}
