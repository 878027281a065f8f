package dto

// ValidateImportRequest entrada da validação de planilha. Mapping liga o índice
// da coluna de origem (chave em string por ser JSON) ao campo alvo ou "ignorar".
type ValidateImportRequest struct {
	Mapping map[string]string `json:"mapping"`
	Rows    [][]string        `json:"rows"`
}

// CommitImportRequest entrada do commit. As linhas são revalidadas no servidor;
// o cliente nunca envia dados normalizados de volta.
type CommitImportRequest struct {
	Mapping       map[string]string `json:"mapping"`
	Rows          [][]string        `json:"rows"`
	AllowWarnings bool              `json:"allow_warnings"`
	SkipErrors    bool              `json:"skip_errors"`
}

// ImportIssueResponse um problema de validação em um campo de uma linha.
type ImportIssueResponse struct {
	Field      string `json:"field"`
	Severity   string `json:"severity"` // aviso | erro
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ExistingEmployeeRef referencia o cadastro já existente que colidiu com a
// linha, para a UI desambiguar.
type ExistingEmployeeRef struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
	CPF  string `json:"cpf"`
}

// ImportRowResponse resultado de uma linha, na ordem de entrada.
type ImportRowResponse struct {
	Row      int                   `json:"row"`
	Status   string                `json:"status"` // valido | aviso | erro
	Fields   map[string]string     `json:"fields"` // valores normalizados
	Issues   []ImportIssueResponse `json:"issues,omitempty"`
	Existing *ExistingEmployeeRef  `json:"existing,omitempty"`
}

// ValidateImportResponse resultado da validação completa.
type ValidateImportResponse struct {
	Results []ImportRowResponse `json:"results"`
	Valid   int                 `json:"valid"`
	Warning int                 `json:"warning"`
	Error   int                 `json:"error"`
}

// ImportFailureResponse desfecho de uma linha que não foi inserida.
type ImportFailureResponse struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// CommitImportResponse desfecho agregado do commit: sucesso parcial é sempre
// reportado em contagens, nunca como booleano tudo-ou-nada.
type CommitImportResponse struct {
	Imported int                     `json:"imported"`
	Skipped  int                     `json:"skipped"`
	Failed   []ImportFailureResponse `json:"failed"`
}
