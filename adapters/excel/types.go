package excel

// SheetData is a header row plus positional data rows, as read from a file
type SheetData struct {
	Headers []string   // Column headers
	Rows    [][]string // Data rows, possibly shorter than Headers
}
