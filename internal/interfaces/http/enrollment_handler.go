package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mktfun/gps-rh-api/internal/application/dto"
	"github.com/mktfun/gps-rh-api/internal/application/enrollment"
)

// EnrollmentHandler expõe o ciclo de vida de matrícula: ativação, solicitação
// e resolução de exclusão, vínculo a planos.
type EnrollmentHandler struct {
	uc *enrollment.UseCase
}

// NewEnrollmentHandler constrói o handler.
func NewEnrollmentHandler(uc *enrollment.UseCase) *EnrollmentHandler {
	return &EnrollmentHandler{uc: uc}
}

// Activate godoc
// @Summary      Ativar funcionário pendente (corretora)
// @Tags         enrollment
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do funcionário"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/activation [post]
func (h *EnrollmentHandler) Activate(c *fiber.Ctx) error {
	if err := h.uc.ActivateEmployee(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ativo"})
}

// RequestRemoval godoc
// @Summary      Solicitar exclusão de funcionário (empresa)
// @Tags         enrollment
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do funcionário"
// @Success      201  {object}  dto.RequestRemovalResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/removal-request [post]
func (h *EnrollmentHandler) RequestRemoval(c *fiber.Ctx) error {
	out, err := h.uc.RequestRemoval(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ResolveRemoval godoc
// @Summary      Aprovar ou negar solicitação de exclusão (corretora)
// @Tags         enrollment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID do funcionário"
// @Param        body  body  dto.ResolveRemovalRequest  true  "approved"
// @Success      200   {object}  dto.ResolveRemovalResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/removal-resolution [post]
func (h *EnrollmentHandler) ResolveRemoval(c *fiber.Ctx) error {
	var in dto.ResolveRemovalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.ResolveRemoval(c.Context(), GetActor(c), c.Params("id"), in.Approved)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddToPlan godoc
// @Summary      Matricular lote de funcionários em um plano
// @Tags         enrollment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID do plano"
// @Param        body  body  dto.AddToPlanRequest  true  "employee_ids"
// @Success      201   {object}  dto.AddToPlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/plans/{id}/employees [post]
func (h *EnrollmentHandler) AddToPlan(c *fiber.Ctx) error {
	var in dto.AddToPlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.AddToPlan(c.Context(), GetActor(c), c.Params("id"), in.EmployeeIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateMatriculationStatus godoc
// @Summary      Mudar o status de uma matrícula plano↔funcionário
// @Tags         enrollment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id          path  string                                true  "ID do plano"
// @Param        employeeId  path  string                                true  "ID do funcionário"
// @Param        body        body  dto.UpdateMatriculationStatusRequest  true  "status"
// @Success      200   {object}  map[string]string
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/plans/{id}/employees/{employeeId}/status [put]
func (h *EnrollmentHandler) UpdateMatriculationStatus(c *fiber.Ctx) error {
	var in dto.UpdateMatriculationStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	err := h.uc.UpdateMatriculationStatus(c.Context(), GetActor(c), c.Params("id"), c.Params("employeeId"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": in.Status})
}
