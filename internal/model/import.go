package model

// ImportError describes one rejected sheet row. Row numbers are the sheet's
// own row numbers so an operator can find the line in Smartsheet.
type ImportError struct {
	Row     int               `json:"row"`
	Message string            `json:"message"`
	Data    map[string]string `json:"data,omitempty"`
}

// ImportResult is the per-run outcome of one sheet import. It is returned to
// the caller and not persisted.
type ImportResult struct {
	Imported int           `json:"imported"`
	Updated  int           `json:"updated"`
	Skipped  int           `json:"skipped"`
	Failed   int           `json:"failed"`
	Errors   []ImportError `json:"errors,omitempty"`
}

// AddError records a per-row failure without aborting the run.
func (r *ImportResult) AddError(row int, message string, data map[string]string) {
	r.Failed++
	r.Errors = append(r.Errors, ImportError{Row: row, Message: message, Data: data})
}

// AllImportResult aggregates the per-kind outcomes of an import-all run.
// A kind that failed at the fetch level appears in Errors instead of Results.
type AllImportResult struct {
	Results map[string]*ImportResult `json:"results"`
	Errors  map[string]string        `json:"errors,omitempty"`
}

// ColumnInfo is one sheet column as reported by the inspection endpoint.
type ColumnInfo struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

type SheetInfo struct {
	Name      string       `json:"name"`
	TotalRows int          `json:"total_rows"`
	Columns   []ColumnInfo `json:"columns"`
}
