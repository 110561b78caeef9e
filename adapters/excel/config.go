package excel

// ExcelConfig holds configuration for the spreadsheet file source
type ExcelConfig struct {
	FilePath  string `json:"file_path"`
	SheetName string `json:"sheet_name"` // xlsx only; empty selects the first sheet
}

// DefaultExcelConfig returns sensible defaults for spreadsheet processing
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		FilePath: "data/questions.csv",
	}
}
