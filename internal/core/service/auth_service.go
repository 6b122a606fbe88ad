package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gourmetcare/platform/internal/core/domain"
	"github.com/gourmetcare/platform/internal/core/ports"
)

const defaultCodeTTL = 10 * time.Minute

// AuthService implements OTP issuance, OTP-verified registration, and login.
// There are no passwords: proving control of the email via the code is the
// whole credential.
type AuthService struct {
	repo    ports.UserRepository
	codes   ports.CodeStore
	sender  ports.CodeSender
	tokens  ports.TokenService
	codeTTL time.Duration
}

func NewAuthService(repo ports.UserRepository, codes ports.CodeStore, sender ports.CodeSender, tokens ports.TokenService, codeTTL time.Duration) *AuthService {
	if codeTTL <= 0 {
		codeTTL = defaultCodeTTL
	}
	return &AuthService{repo: repo, codes: codes, sender: sender, tokens: tokens, codeTTL: codeTTL}
}

func (s *AuthService) SendVerificationCode(ctx context.Context, identifier string) (string, error) {
	if identifier == "" {
		return "", domain.ErrInvalidVerificationCode
	}

	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash code: %w", err)
	}

	entry := domain.VerificationCode{
		Identifier: identifier,
		CodeHash:   string(hash),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.codes.Store(ctx, entry); err != nil {
		return "", fmt.Errorf("store code: %w", err)
	}

	if err := s.sender.Send(ctx, identifier, code); err != nil {
		return "", fmt.Errorf("send code: %w", err)
	}

	return code, nil
}

func (s *AuthService) Register(ctx context.Context, reg ports.Registration) (*domain.User, string, error) {
	if _, err := s.repo.FindByEmail(ctx, reg.Email); err == nil {
		return nil, "", domain.ErrUserExists
	} else if err != domain.ErrUserNotFound {
		return nil, "", err
	}

	if !s.checkCode(ctx, reg.Email, reg.Code) {
		return nil, "", domain.ErrInvalidVerificationCode
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:   reg.FirstName,
		LastName:    reg.LastName,
		Email:       reg.Email,
		PhoneNumber: reg.PhoneNumber,
		Role:        domain.RoleUser,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(created.Email)
	if err != nil {
		return nil, "", err
	}

	return created, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, code string) (*domain.User, string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	if !s.checkCode(ctx, email, code) {
		return nil, "", domain.ErrInvalidVerificationCode
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// checkCode reports whether the submitted code matches the pending entry for
// the identifier. The match is consuming: a successful check deletes the
// entry so the same code cannot be replayed. Failed attempts leave the entry
// in place until it expires or is overwritten.
func (s *AuthService) checkCode(ctx context.Context, identifier, code string) bool {
	if code == "" {
		return false
	}

	entry, err := s.codes.Lookup(ctx, identifier)
	if err != nil {
		return false
	}
	if entry.ExpiredAt(time.Now().UTC(), s.codeTTL) {
		return false
	}
	if bcrypt.CompareHashAndPassword([]byte(entry.CodeHash), []byte(code)) != nil {
		return false
	}

	_ = s.codes.Delete(ctx, identifier)
	return true
}

// generateCode produces a 6-digit numeric code from crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
