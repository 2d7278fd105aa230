package testutil

import (
	"github.com/jmarte/equimed-api/internal/application/numbering"
	"github.com/jmarte/equimed-api/internal/domain/entity"
)

// FakeCounterRepo contador de documentos en memoria. Issued emula los números
// ya presentes en las tablas de documentos: se consulta en Exists y siembra el
// contador la primera vez, igual que la implementación de PostgreSQL.
type FakeCounterRepo struct {
	values map[string]int
	issued map[string]map[string]bool
}

// NewFakeCounterRepo construye el fake vacío.
func NewFakeCounterRepo() *FakeCounterRepo {
	return &FakeCounterRepo{
		values: make(map[string]int),
		issued: make(map[string]map[string]bool),
	}
}

func counterKey(organizationID string, kind entity.DocumentKind) string {
	return organizationID + "/" + string(kind)
}

// Issue registra un número como ya emitido (documento histórico).
func (r *FakeCounterRepo) Issue(organizationID string, kind entity.DocumentKind, number string) {
	key := counterKey(organizationID, kind)
	if r.issued[key] == nil {
		r.issued[key] = make(map[string]bool)
	}
	r.issued[key][number] = true
}

func (r *FakeCounterRepo) NextValue(organizationID string, kind entity.DocumentKind) (int, error) {
	key := counterKey(organizationID, kind)
	if _, ok := r.values[key]; !ok {
		seed := 0
		for number := range r.issued[key] {
			if n, ok := numbering.ParseSequence(number); ok && n > seed {
				seed = n
			}
		}
		r.values[key] = seed
	}
	r.values[key]++
	return r.values[key], nil
}

func (r *FakeCounterRepo) Exists(organizationID string, kind entity.DocumentKind, number string) (bool, error) {
	return r.issued[counterKey(organizationID, kind)][number], nil
}
