// Package auth autentica usuários e emite tokens com papel e escopo.
package auth

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mktfun/gps-rh-api/internal/application/dto"
	"github.com/mktfun/gps-rh-api/internal/domain"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
	"github.com/mktfun/gps-rh-api/internal/domain/repository"
	"github.com/mktfun/gps-rh-api/pkg/config"
	"github.com/mktfun/gps-rh-api/pkg/jwt"
	"github.com/mktfun/gps-rh-api/pkg/logger"
)

// UseCase login e cadastro de usuários.
type UseCase struct {
	users repository.UserRepository
	jwt   config.JWTConfig
	log   *logger.Logger
}

// NewUseCase constrói o caso de uso de autenticação.
func NewUseCase(users repository.UserRepository, jwtCfg config.JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{users: users, jwt: jwtCfg, log: log}
}

// Login valida as credenciais e emite o token. Credencial errada e usuário
// inexistente produzem a mesma resposta, sem vazar qual dos dois falhou.
func (uc *UseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != "active" {
		return nil, fmt.Errorf("credenciais inválidas: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		uc.log.Warn().Str("email", req.Email).Msg("tentativa de login com senha incorreta")
		return nil, fmt.Errorf("credenciais inválidas: %w", domain.ErrUnauthorized)
	}

	token, err := jwt.Generate(uc.jwt.Secret, user.ID, user.Role,
		deref(user.BrokerID), deref(user.CompanyID), uc.jwt.Issuer, uc.jwt.Expiration)
	if err != nil {
		return nil, fmt.Errorf("emissão de token: %w", err)
	}

	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login")
	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

// Register cria um usuário; somente admin. O escopo é obrigatório e acompanha
// o papel: corretora sem broker_id (ou empresa sem company_id) é rejeitada.
func (uc *UseCase) Register(ctx context.Context, actor entity.Actor, req dto.RegisterRequest) (*dto.UserResponse, error) {
	if actor.Role != entity.RoleAdmin {
		return nil, &domain.PermissionDeniedError{Role: actor.Role, Detail: "somente admin cadastra usuários"}
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, fmt.Errorf("email %q: %w", req.Email, domain.ErrInvalidInput)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("senha precisa de ao menos 8 caracteres: %w", domain.ErrInvalidInput)
	}

	user := &entity.User{
		ID:        uuid.New().String(),
		Email:     req.Email,
		Name:      req.Name,
		Role:      req.Role,
		Status:    "active",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	switch req.Role {
	case entity.RoleAdmin:
		// sem escopo
	case entity.RoleCorretora:
		if req.BrokerID == "" {
			return nil, fmt.Errorf("papel corretora exige broker_id: %w", domain.ErrInvalidInput)
		}
		user.BrokerID = &req.BrokerID
	case entity.RoleEmpresa:
		if req.CompanyID == "" {
			return nil, fmt.Errorf("papel empresa exige company_id: %w", domain.ErrInvalidInput)
		}
		user.CompanyID = &req.CompanyID
	default:
		return nil, fmt.Errorf("papel %q desconhecido: %w", req.Role, domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash de senha: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("usuário cadastrado")
	resp := toUserResponse(user)
	return &resp, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		BrokerID:  u.BrokerID,
		CompanyID: u.CompanyID,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
