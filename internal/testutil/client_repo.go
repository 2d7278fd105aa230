package testutil

import "github.com/jmarte/equimed-api/internal/domain/entity"

// FakeClientRepo repositorio de clientes en memoria.
type FakeClientRepo struct {
	byID  map[string]*entity.Client
	order []string
}

// NewFakeClientRepo construye el fake vacío.
func NewFakeClientRepo() *FakeClientRepo {
	return &FakeClientRepo{byID: make(map[string]*entity.Client)}
}

// Seed registra un cliente directamente.
func (r *FakeClientRepo) Seed(c *entity.Client) {
	cp := *c
	r.byID[c.ID] = &cp
	r.order = append(r.order, c.ID)
}

func (r *FakeClientRepo) Create(c *entity.Client) error {
	r.Seed(c)
	return nil
}

func (r *FakeClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *FakeClientRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, id := range r.order {
		c := r.byID[id]
		if c.OrganizationID == organizationID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *FakeClientRepo) Update(c *entity.Client) error {
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *FakeClientRepo) Deactivate(id string) error {
	if c, ok := r.byID[id]; ok {
		c.IsActive = false
	}
	return nil
}
