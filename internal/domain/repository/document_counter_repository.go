package repository

import "github.com/jmarte/equimed-api/internal/domain/entity"

// DocumentCounterRepository puerto del consecutivo de documentos por
// organización y tipo (cotización, venta, factura, alquiler).
type DocumentCounterRepository interface {
	// NextValue incrementa y devuelve el consecutivo, bloqueando la fila del
	// contador (SELECT ... FOR UPDATE) dentro de la transacción en curso para
	// serializar la emisión de números por organización. Si el contador no
	// existe todavía, se siembra con el máximo histórico de los documentos ya
	// emitidos (los números con sufijo no numérico se ignoran).
	NextValue(organizationID string, kind entity.DocumentKind) (int, error)
	// Exists verifica si ya existe un documento de ese tipo con ese número.
	Exists(organizationID string, kind entity.DocumentKind, number string) (bool, error)
}
