package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/mktfun/gps-rh-api/internal/application/dto"
	"github.com/mktfun/gps-rh-api/internal/application/importer"
	"github.com/mktfun/gps-rh-api/pkg/br"
)

// ImportHandler expõe a validação e o commit da importação em massa de uma
// filial. O fluxo é sempre em duas pernas: validar (GET de resultados, nenhuma
// escrita) e depois commitar (revalida no servidor e insere).
type ImportHandler struct {
	svc         *importer.Service
	concurrency int
}

// NewImportHandler constrói o handler de importação.
func NewImportHandler(svc *importer.Service, concurrency int) *ImportHandler {
	return &ImportHandler{svc: svc, concurrency: concurrency}
}

// Validate godoc
// @Summary      Validar planilha de funcionários
// @Tags         import
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID da filial (CNPJ)"
// @Param        body  body  dto.ValidateImportRequest  true  "mapping coluna→campo e linhas cruas"
// @Success      200   {object}  dto.ValidateImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/branches/{id}/import/validate [post]
func (h *ImportHandler) Validate(c *fiber.Ctx) error {
	var in dto.ValidateImportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	mapping, err := parseMapping(in.Mapping)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	results, err := h.svc.Validate(c.Context(), GetActor(c), c.Params("id"), mapping, in.Rows)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toValidateResponse(results))
}

// Commit godoc
// @Summary      Commitar importação de funcionários
// @Tags         import
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID da filial (CNPJ)"
// @Param        body  body  dto.CommitImportRequest  true  "mapping, linhas cruas, allow_warnings, skip_errors"
// @Success      200   {object}  dto.CommitImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/branches/{id}/import/commit [post]
func (h *ImportHandler) Commit(c *fiber.Ctx) error {
	var in dto.CommitImportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	mapping, err := parseMapping(in.Mapping)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	opts := importer.CommitOptions{
		AllowWarnings: in.AllowWarnings,
		SkipErrors:    in.SkipErrors,
		Concurrency:   h.concurrency,
	}
	result, err := h.svc.Commit(c.Context(), GetActor(c), c.Params("id"), mapping, in.Rows, opts)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCommitResponse(result))
}

// parseMapping converte o mapping JSON (chaves são índices em string) para o
// mapeamento tipado do validador.
func parseMapping(raw map[string]string) (importer.ColumnMapping, error) {
	mapping := make(importer.ColumnMapping, len(raw))
	for k, field := range raw {
		idx, err := strconv.Atoi(k)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("índice de coluna %q inválido", k)
		}
		mapping[idx] = field
	}
	return mapping, nil
}

func toValidateResponse(results []importer.RowResult) dto.ValidateImportResponse {
	resp := dto.ValidateImportResponse{Results: make([]dto.ImportRowResponse, 0, len(results))}
	for _, r := range results {
		row := dto.ImportRowResponse{
			Row:    r.Row,
			Status: string(r.Status),
			Fields: r.Fields,
		}
		for _, issue := range r.Issues {
			row.Issues = append(row.Issues, dto.ImportIssueResponse{
				Field:      issue.Field,
				Severity:   string(issue.Severity),
				Message:    issue.Message,
				Suggestion: issue.Suggestion,
			})
		}
		if r.Existing != nil {
			row.Existing = &dto.ExistingEmployeeRef{
				ID:   r.Existing.ID,
				Nome: r.Existing.Nome,
				CPF:  br.FormatCPF(r.Existing.CPF),
			}
		}
		switch r.Status {
		case importer.SeverityValido:
			resp.Valid++
		case importer.SeverityAviso:
			resp.Warning++
		case importer.SeverityErro:
			resp.Error++
		}
		resp.Results = append(resp.Results, row)
	}
	return resp
}

func toCommitResponse(result *importer.CommitResult) dto.CommitImportResponse {
	resp := dto.CommitImportResponse{
		Imported: result.Imported,
		Skipped:  result.Skipped,
		Failed:   []dto.ImportFailureResponse{},
	}
	for _, f := range result.Failures() {
		resp.Failed = append(resp.Failed, dto.ImportFailureResponse{Row: f.Row, Reason: f.Reason})
	}
	return resp
}
