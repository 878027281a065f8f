package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mktfun/gps-rh-api/internal/application/auth"
	"github.com/mktfun/gps-rh-api/internal/application/dto"
	"github.com/mktfun/gps-rh-api/internal/domain"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
	"github.com/mktfun/gps-rh-api/pkg/config"
	"github.com/mktfun/gps-rh-api/pkg/jwt"
	"github.com/mktfun/gps-rh-api/pkg/logger"
)

type fakeUsers struct {
	byEmail map[string]*entity.User
	created *entity.User
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	if f.byEmail == nil {
		f.byEmail = map[string]*entity.User{}
	}
	if _, dup := f.byEmail[u.Email]; dup {
		return domain.ErrDuplicate
	}
	f.byEmail[u.Email] = u
	f.created = u
	return nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.byEmail[email], nil
}

var jwtCfg = config.JWTConfig{Secret: "segredo-de-teste", Expiration: 60, Issuer: "gps-rh"}

func usuarioCorretora(t *testing.T, email, senha string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	require.NoError(t, err)
	brokerID := "corr-1"
	return &entity.User{
		ID: "u1", Email: email, PasswordHash: string(hash),
		Role: entity.RoleCorretora, BrokerID: &brokerID, Status: "active",
	}
}

func TestLogin_TokenCarregaPapelEEscopo(t *testing.T) {
	users := &fakeUsers{byEmail: map[string]*entity.User{
		"ana@corretora.com.br": usuarioCorretora(t, "ana@corretora.com.br", "senha-forte"),
	}}
	uc := auth.NewUseCase(users, jwtCfg, logger.Nop())

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@corretora.com.br", Password: "senha-forte",
	})
	require.NoError(t, err)

	claims, err := jwt.Parse(jwtCfg.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, entity.RoleCorretora, claims.Role)
	assert.Equal(t, "corr-1", claims.BrokerID)
	assert.Empty(t, claims.CompanyID)
	assert.Equal(t, entity.RoleCorretora, resp.User.Role)
}

// Senha errada e email inexistente produzem o mesmo erro opaco.
func TestLogin_CredenciaisInvalidasOpacas(t *testing.T) {
	users := &fakeUsers{byEmail: map[string]*entity.User{
		"ana@corretora.com.br": usuarioCorretora(t, "ana@corretora.com.br", "senha-forte"),
	}}
	uc := auth.NewUseCase(users, jwtCfg, logger.Nop())

	_, errSenha := uc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@corretora.com.br", Password: "errada",
	})
	_, errEmail := uc.Login(context.Background(), dto.LoginRequest{
		Email: "ninguem@x.com", Password: "tanto-faz",
	})

	assert.ErrorIs(t, errSenha, domain.ErrUnauthorized)
	assert.ErrorIs(t, errEmail, domain.ErrUnauthorized)
	assert.Equal(t, errSenha.Error(), errEmail.Error(), "mensagens idênticas, sem vazar qual falhou")
}

func TestLogin_UsuarioInativoNegado(t *testing.T) {
	u := usuarioCorretora(t, "ana@corretora.com.br", "senha-forte")
	u.Status = "inactive"
	users := &fakeUsers{byEmail: map[string]*entity.User{u.Email: u}}
	uc := auth.NewUseCase(users, jwtCfg, logger.Nop())

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: u.Email, Password: "senha-forte"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegister_SomenteAdmin(t *testing.T) {
	uc := auth.NewUseCase(&fakeUsers{}, jwtCfg, logger.Nop())

	_, err := uc.Register(context.Background(),
		entity.Actor{Role: entity.RoleCorretora, BrokerID: "corr-1"},
		dto.RegisterRequest{Email: "x@y.com", Password: "12345678", Role: entity.RoleEmpresa, CompanyID: "emp-1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegister_EscopoAcompanhaPapel(t *testing.T) {
	admin := entity.Actor{UserID: "adm", Role: entity.RoleAdmin}
	cases := []struct {
		name string
		req  dto.RegisterRequest
		ok   bool
	}{
		{"corretora sem broker_id", dto.RegisterRequest{Email: "a@b.com", Password: "12345678", Role: entity.RoleCorretora}, false},
		{"empresa sem company_id", dto.RegisterRequest{Email: "a@b.com", Password: "12345678", Role: entity.RoleEmpresa}, false},
		{"papel desconhecido", dto.RegisterRequest{Email: "a@b.com", Password: "12345678", Role: "gerente"}, false},
		{"senha curta", dto.RegisterRequest{Email: "a@b.com", Password: "123", Role: entity.RoleAdmin}, false},
		{"email inválido", dto.RegisterRequest{Email: "sem-arroba", Password: "12345678", Role: entity.RoleAdmin}, false},
		{"corretora completa", dto.RegisterRequest{Email: "a@b.com", Password: "12345678", Role: entity.RoleCorretora, BrokerID: "corr-1"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := auth.NewUseCase(&fakeUsers{}, jwtCfg, logger.Nop())
			_, err := uc.Register(context.Background(), admin, tc.req)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			}
		})
	}
}

func TestRegister_SenhaNuncaEmClaro(t *testing.T) {
	users := &fakeUsers{}
	uc := auth.NewUseCase(users, jwtCfg, logger.Nop())

	_, err := uc.Register(context.Background(), entity.Actor{Role: entity.RoleAdmin},
		dto.RegisterRequest{Email: "a@b.com", Password: "super-secreta", Role: entity.RoleAdmin})
	require.NoError(t, err)

	require.NotNil(t, users.created)
	assert.NotContains(t, users.created.PasswordHash, "super-secreta")
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(users.created.PasswordHash), []byte("super-secreta")))
}
