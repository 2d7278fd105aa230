package testutil

import "github.com/jmarte/equimed-api/internal/domain/entity"

// FakeSupplierRepo repositorio de proveedores en memoria.
type FakeSupplierRepo struct {
	byID  map[string]*entity.Supplier
	order []string
}

// NewFakeSupplierRepo construye el fake vacío.
func NewFakeSupplierRepo() *FakeSupplierRepo {
	return &FakeSupplierRepo{byID: make(map[string]*entity.Supplier)}
}

// Seed registra un proveedor directamente.
func (r *FakeSupplierRepo) Seed(s *entity.Supplier) {
	cp := *s
	r.byID[s.ID] = &cp
	r.order = append(r.order, s.ID)
}

func (r *FakeSupplierRepo) Create(s *entity.Supplier) error {
	r.Seed(s)
	return nil
}

func (r *FakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *FakeSupplierRepo) GetByName(organizationID, name string) (*entity.Supplier, error) {
	for _, id := range r.order {
		s := r.byID[id]
		if s.OrganizationID == organizationID && s.Name == name {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *FakeSupplierRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, id := range r.order {
		s := r.byID[id]
		if s.OrganizationID == organizationID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *FakeSupplierRepo) Update(s *entity.Supplier) error {
	cp := *s
	r.byID[s.ID] = &cp
	return nil
}

func (r *FakeSupplierRepo) Delete(id string) error {
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
