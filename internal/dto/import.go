package dto

import "github.com/fondosar/backoffice_api/internal/csvimport"

// ImportParams defines query parameters for a CSV statement import.
type ImportParams struct {
	DryRun bool `form:"dry_run,default=false"`
}

// ImportRowError reports one failed CSV row by its file line number.
type ImportRowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportResultResponse summarizes a statement import. When rows failed, no
// transactions were written and RowErrors itemizes every failure.
type ImportResultResponse struct {
	DryRun       bool             `json:"dryRun"`
	RowsRead     int              `json:"rowsRead"`
	RowsImported int              `json:"rowsImported"`
	RowErrors    []ImportRowError `json:"rowErrors,omitempty"`
}

// ToImportRowErrors converts parser row errors to DTO.
func ToImportRowErrors(errs []csvimport.RowError) []ImportRowError {
	if len(errs) == 0 {
		return nil
	}
	list := make([]ImportRowError, len(errs))
	for i, e := range errs {
		list[i] = ImportRowError{Line: e.Line, Message: e.Message}
	}
	return list
}
