package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"

	"github.com/zolagonano/ssh-mgmt-toolkit/internal/creds"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/models"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/repository"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/token"
)

var (
	ErrAdminKeyMissing = errors.New("Admin_Key Missing!")
	ErrAdminKeyInvalid = errors.New("Invalid admin_key")
	ErrUserExists      = errors.New("user already exist")
	ErrUserNotFound    = errors.New("user doesn't exist")
	ErrBadUsername     = errors.New("invalid username")
	ErrBadPassword     = errors.New("password is wrong")
)

// AuthService manages operator accounts and their tokens. Registration is
// gated behind the deployment's admin key.
type AuthService struct {
	logins   *repository.LoginRepository
	issuer   *token.Issuer
	gen      *creds.Generator
	adminKey string
}

func NewAuthService(logins *repository.LoginRepository, issuer *token.Issuer, gen *creds.Generator, adminKey string) *AuthService {
	return &AuthService{
		logins:   logins,
		issuer:   issuer,
		gen:      gen,
		adminKey: adminKey,
	}
}

// Register creates an operator account. Accounts registered through the API
// start unprivileged; privileged ones are provisioned out of band.
func (s *AuthService) Register(ctx context.Context, info *models.LoginInfo) error {
	if info.AdminKey == nil {
		return ErrAdminKeyMissing
	}
	if subtle.ConstantTimeCompare([]byte(*info.AdminKey), []byte(s.adminKey)) != 1 {
		return ErrAdminKeyInvalid
	}

	exists, err := s.logins.Exists(ctx, info.Username)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserExists
	}

	if !creds.IsValidUsername(info.Username) {
		return ErrBadUsername
	}

	hash, err := s.gen.HashPassword(info.Password)
	if err != nil {
		return err
	}

	if _, err := s.logins.Create(ctx, &models.NewLogin{
		Username:     info.Username,
		PasswordHash: hash,
	}); err != nil {
		return err
	}

	log.Printf("[AuthService] Operator %s registered", info.Username)
	return nil
}

// Login checks the password and issues a token carrying the account's role.
func (s *AuthService) Login(ctx context.Context, info *models.LoginInfo) (string, error) {
	login, err := s.logins.GetByUsername(ctx, info.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if !creds.VerifyPassword(info.Password, login.PasswordHash) {
		return "", ErrBadPassword
	}

	role := token.RoleNormal
	if login.Admin {
		role = token.RolePrivileged
	}

	return s.issuer.Issue(role)
}

// Verify validates a token and reports its role.
func (s *AuthService) Verify(tokenString string) (token.Role, error) {
	return s.issuer.Validate(tokenString)
}
