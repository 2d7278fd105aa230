package testutil

import "github.com/jmarte/equimed-api/internal/domain/entity"

// FakeFailureRepo registro de fallas en memoria. List devuelve en orden
// inverso de inserción, como el adaptador real (más recientes primero).
type FakeFailureRepo struct {
	byID  map[string]*entity.SystemFailure
	order []string
}

// NewFakeFailureRepo construye el fake vacío.
func NewFakeFailureRepo() *FakeFailureRepo {
	return &FakeFailureRepo{byID: make(map[string]*entity.SystemFailure)}
}

// Seed registra una falla directamente.
func (r *FakeFailureRepo) Seed(f *entity.SystemFailure) {
	cp := *f
	r.byID[f.ID] = &cp
	r.order = append(r.order, f.ID)
}

func (r *FakeFailureRepo) Create(f *entity.SystemFailure) error {
	r.Seed(f)
	return nil
}

func (r *FakeFailureRepo) GetByID(id string) (*entity.SystemFailure, error) {
	f, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (r *FakeFailureRepo) List(organizationID string, severity entity.FailureSeverity, onlyUnresolved bool, limit, offset int) ([]*entity.SystemFailure, error) {
	var out []*entity.SystemFailure
	for i := len(r.order) - 1; i >= 0; i-- {
		f := r.byID[r.order[i]]
		if f.OrganizationID != organizationID {
			continue
		}
		if severity != "" && f.Severity != severity {
			continue
		}
		if onlyUnresolved && f.IsResolved {
			continue
		}
		cp := *f
		out = append(out, &cp)
	}
	return paginate(out, limit, offset), nil
}

func (r *FakeFailureRepo) Update(f *entity.SystemFailure) error {
	cp := *f
	r.byID[f.ID] = &cp
	return nil
}

func (r *FakeFailureRepo) Delete(id string) error {
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
