package entity

// DocumentKind tipos de documento con numeración consecutiva por organización.
type DocumentKind string

const (
	DocQuotation DocumentKind = "quotation"
	DocSale      DocumentKind = "sale"
	DocInvoice   DocumentKind = "invoice"
	DocRental    DocumentKind = "rental"
)

// Prefix devuelve el prefijo del número de documento (COT-, VEN-, FAC-, ALQ-).
func (k DocumentKind) Prefix() string {
	switch k {
	case DocQuotation:
		return "COT"
	case DocSale:
		return "VEN"
	case DocInvoice:
		return "FAC"
	case DocRental:
		return "ALQ"
	}
	return ""
}

// Valid reporta si el tipo de documento es uno de los valores cerrados.
func (k DocumentKind) Valid() bool {
	return k.Prefix() != ""
}
