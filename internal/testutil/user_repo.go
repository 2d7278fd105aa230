package testutil

import "github.com/jmarte/equimed-api/internal/domain/entity"

// FakeUserRepo repositorio de usuarios en memoria.
type FakeUserRepo struct {
	byID map[string]*entity.User
}

// NewFakeUserRepo construye el fake vacío.
func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{byID: make(map[string]*entity.User)}
}

func (r *FakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *FakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *FakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *FakeUserRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.byID {
		if u.OrganizationID == organizationID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *FakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

// FakeOrganizationRepo repositorio de organizaciones en memoria.
type FakeOrganizationRepo struct {
	byID  map[string]*entity.Organization
	order []string
}

// NewFakeOrganizationRepo construye el fake vacío.
func NewFakeOrganizationRepo() *FakeOrganizationRepo {
	return &FakeOrganizationRepo{byID: make(map[string]*entity.Organization)}
}

func (r *FakeOrganizationRepo) Create(org *entity.Organization) error {
	cp := *org
	r.byID[org.ID] = &cp
	r.order = append(r.order, org.ID)
	return nil
}

func (r *FakeOrganizationRepo) GetByID(id string) (*entity.Organization, error) {
	org, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *org
	return &cp, nil
}

func (r *FakeOrganizationRepo) List(limit, offset int) ([]*entity.Organization, error) {
	var out []*entity.Organization
	for _, id := range r.order {
		cp := *r.byID[id]
		out = append(out, &cp)
	}
	return paginate(out, limit, offset), nil
}

func (r *FakeOrganizationRepo) Update(org *entity.Organization) error {
	cp := *org
	r.byID[org.ID] = &cp
	return nil
}
