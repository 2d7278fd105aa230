// Package numbering emite números de documento únicos por organización con el
// formato PREFIX-YYYYMMDD-NN (COT/VEN/FAC/ALQ). La fecha del prefijo es la del
// día de emisión, pero NN es el consecutivo global de ese tipo de documento en
// la organización: nunca se reinicia por día ni por mes.
package numbering

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmarte/equimed-api/internal/domain"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/domain/repository"
)

// Generator emite números de documento. El consecutivo sale de un contador por
// organización/tipo bloqueado con la fila (FOR UPDATE) dentro de la tx del
// caller, de modo que dos comandos concurrentes nunca obtienen el mismo NN.
type Generator struct{}

// NewGenerator construye el generador.
func NewGenerator() *Generator {
	return &Generator{}
}

// Next produce el siguiente número para la organización y tipo de documento.
// Si el candidato ya existe (números legados emitidos fuera del contador), se
// avanza el contador hasta encontrar uno libre. Nunca deja de producir valor.
func (g *Generator) Next(counters repository.DocumentCounterRepository, organizationID string, kind entity.DocumentKind, now time.Time) (string, error) {
	if !kind.Valid() {
		return "", domain.ErrInvalidInput
	}
	prefix := fmt.Sprintf("%s-%s", kind.Prefix(), now.Format("20060102"))
	for {
		n, err := counters.NextValue(organizationID, kind)
		if err != nil {
			return "", fmt.Errorf("siguiente consecutivo %s: %w", kind, err)
		}
		candidate := fmt.Sprintf("%s-%02d", prefix, n)
		exists, err := counters.Exists(organizationID, kind, candidate)
		if err != nil {
			return "", fmt.Errorf("verificar número %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
	}
}

// ParseSequence extrae el consecutivo NN de un número de documento (la parte
// después del último guión). Devuelve false para números legados o malformados,
// que se ignoran al sembrar el contador desde el histórico.
func ParseSequence(number string) (int, bool) {
	idx := strings.LastIndex(number, "-")
	if idx < 0 || idx == len(number)-1 {
		return 0, false
	}
	n, err := strconv.Atoi(number[idx+1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
