package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"dieselx/internal/domain"
)

type Service struct {
	users  UserRepository
	orgs   OrgRepository
	tokens TokenIssuer
}

func NewService(users UserRepository, orgs OrgRepository, tokens TokenIssuer) *Service {
	return &Service{users: users, orgs: orgs, tokens: tokens}
}

// Register creates an organization with its first user as owner and returns
// a signed token for the new session.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	org := &domain.Organization{Name: req.OrganizationName}
	if err := s.orgs.Create(ctx, org); err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Name:         req.Name,
		Phone:        req.Phone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	member := &domain.OrgMember{
		OrganizationID: org.ID,
		UserID:         user.ID,
		Role:           domain.OrgRoleOwner,
	}
	if err := s.orgs.AddMember(ctx, member); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID, org.ID, string(domain.OrgRoleOwner))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:          token,
		User:           user,
		OrganizationID: org.ID,
		Role:           string(domain.OrgRoleOwner),
	}, nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	member, err := s.orgs.MembershipFor(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID, member.OrganizationID, string(member.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:          token,
		User:           user,
		OrganizationID: member.OrganizationID,
		Role:           string(member.Role),
	}, nil
}

func (s *Service) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// isUniqueViolation matches the postgres unique constraint error. The sqlite
// driver wraps its equivalent differently, so the message is checked too.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}
