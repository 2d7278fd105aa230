package testutil

import "github.com/jmarte/equimed-api/internal/domain/entity"

// FakeCategoryRepo repositorio de categorías en memoria.
type FakeCategoryRepo struct {
	byID  map[string]*entity.Category
	order []string
}

// NewFakeCategoryRepo construye el fake vacío.
func NewFakeCategoryRepo() *FakeCategoryRepo {
	return &FakeCategoryRepo{byID: make(map[string]*entity.Category)}
}

// Seed registra una categoría directamente.
func (r *FakeCategoryRepo) Seed(c *entity.Category) {
	cp := *c
	r.byID[c.ID] = &cp
	r.order = append(r.order, c.ID)
}

func (r *FakeCategoryRepo) Create(c *entity.Category) error {
	r.Seed(c)
	return nil
}

func (r *FakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *FakeCategoryRepo) GetByName(organizationID, name string) (*entity.Category, error) {
	for _, id := range r.order {
		c := r.byID[id]
		if c.OrganizationID == organizationID && c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *FakeCategoryRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, id := range r.order {
		c := r.byID[id]
		if c.OrganizationID == organizationID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *FakeCategoryRepo) Update(c *entity.Category) error {
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *FakeCategoryRepo) Delete(id string) error {
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
