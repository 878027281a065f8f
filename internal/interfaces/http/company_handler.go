package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mktfun/gps-rh-api/internal/application/dto"
	"github.com/mktfun/gps-rh-api/internal/application/usecase"
)

// CompanyHandler cadastro de empresas clientes e filiais (CNPJs).
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler constrói o handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// CreateCompany godoc
// @Summary      Criar empresa cliente
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "name, broker_id"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) CreateCompany(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.CreateCompany(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetCompany godoc
// @Summary      Carregar empresa
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetCompany(c *fiber.Ctx) error {
	out, err := h.uc.GetCompany(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListCompanies godoc
// @Summary      Listar empresas de uma corretora
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        broker_id  query  string  true  "ID da corretora"
// @Success      200  {object}  dto.CompanyListResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) ListCompanies(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	brokerID := c.Query("broker_id")
	if brokerID == "" {
		// Corretora sem query usa o próprio escopo.
		brokerID = GetActor(c).BrokerID
	}
	out, err := h.uc.ListCompanies(c.Context(), GetActor(c), brokerID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateBranch godoc
// @Summary      Registrar CNPJ sob uma empresa
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBranchRequest  true  "company_id, cnpj, razao_social"
// @Success      201   {object}  dto.BranchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/branches [post]
func (h *CompanyHandler) CreateBranch(c *fiber.Ctx) error {
	var in dto.CreateBranchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.CreateBranch(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBranches godoc
// @Summary      Listar CNPJs de uma empresa
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da empresa"
// @Success      200  {object}  dto.BranchListResponse
// @Router       /api/companies/{id}/branches [get]
func (h *CompanyHandler) ListBranches(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	out, err := h.uc.ListBranches(c.Context(), GetActor(c), c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
