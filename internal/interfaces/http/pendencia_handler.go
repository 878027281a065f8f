package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mktfun/gps-rh-api/internal/application/dto"
	"github.com/mktfun/gps-rh-api/internal/application/pendencia"
)

// PendenciaHandler fila de trabalho de pendências.
type PendenciaHandler struct {
	uc *pendencia.UseCase
}

// NewPendenciaHandler constrói o handler.
func NewPendenciaHandler(uc *pendencia.UseCase) *PendenciaHandler {
	return &PendenciaHandler{uc: uc}
}

// List godoc
// @Summary      Listar pendências visíveis ao ator
// @Description  Admin enxerga tudo; corretora só a carteira; empresa só as
// @Description  próprias filiais. A prioridade é derivada do tempo em aberto.
// @Tags         pendencias
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pendente | resolvida | cancelada"
// @Param        limit   query  int     false  "máx. 100"
// @Param        offset  query  int     false  "deslocamento"
// @Success      200  {object}  dto.PendenciaListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/pendencias [get]
func (h *PendenciaHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	out, err := h.uc.List(c.Context(), GetActor(c), c.Query("status"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
