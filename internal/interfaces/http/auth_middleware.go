package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mktfun/gps-rh-api/internal/application/dto"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
	"github.com/mktfun/gps-rh-api/pkg/jwt"
)

// Chave de locals onde o middleware guarda o ator autenticado.
const localActor = "actor"

// AuthMiddleware valida o Bearer Token e carrega o Actor (papel + escopo) em
// c.Locals. A autorização por registro fica no núcleo; aqui só se autentica.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		if claims.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token sem papel"})
		}
		c.Locals(localActor, entity.Actor{
			UserID:    claims.UserID,
			Role:      claims.Role,
			BrokerID:  claims.BrokerID,
			CompanyID: claims.CompanyID,
		})
		return c.Next()
	}
}

// GetActor devolve o ator autenticado (depois do AuthMiddleware).
func GetActor(c *fiber.Ctx) entity.Actor {
	v := c.Locals(localActor)
	if v == nil {
		return entity.Actor{}
	}
	actor, _ := v.(entity.Actor)
	return actor
}

// RequireRole bloqueia a rota para papéis fora da lista. É o corte grosso por
// rota; o gate fino por registro roda no caso de uso.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := GetActor(c)
		if actor.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "ator não autenticado"})
		}
		for _, r := range roles {
			if actor.Role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "papel sem acesso a esta rota"})
	}
}
