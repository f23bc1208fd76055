package internal

type DocumentFormat string

const (
	FormatPDF   DocumentFormat = "pdf"
	FormatXLSX  DocumentFormat = "xlsx"
	FormatDOCX  DocumentFormat = "docx"
	FormatHTML  DocumentFormat = "html"
	FormatImage DocumentFormat = "image"
)

// Table is a grid of cell strings. Rows may be ragged; row 0 is the header
// row when one is present.
type Table [][]string

// ParsedDocument is the uniform output of every format reader. An empty
// document (no text, no tables) is valid and never an error.
type ParsedDocument struct {
	Text   string
	Tables []Table
}

type ClientInfo struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
}

type ShipTo struct {
	Name    *string
	Phone   *string
	Address *string
}

type PODetails struct {
	PONumber     *string
	CreationDate *string
	DueDate      *string
	PaymentTerms *string
	Subtotal     *float64
	Tax          *float64
	Shipping     *float64
	TotalAmount  *float64
	Comments     *string
}

// LineItem is one ordered product entry. Absent numeric fields stay nil,
// never zero.
type LineItem struct {
	ItemCode    *string
	Description *string
	Quantity    *float64
	UnitPrice   *float64
	TotalPrice  *float64
}

// ExtractionRecord is the sole artifact the extraction core produces.
type ExtractionRecord struct {
	ClientInfo ClientInfo
	PODetails  PODetails
	ShipTo     ShipTo
	LineItems  []LineItem
}

// SalesOrder is an ExtractionRecord after the numbering stage.
type SalesOrder struct {
	SONumber string
	SODate   string
	Record   ExtractionRecord
}

type DocumentRow struct {
	ID        int
	Path      string
	Format    string
	Hash      string
	Status    string
	SONumber  *string
	CreatedAt string
	UpdatedAt string
}

type OrderRow struct {
	ID         int
	DocumentID int
	SONumber   string
	SODate     string
	Order      SalesOrder
}
