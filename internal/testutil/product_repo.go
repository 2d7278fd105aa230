package testutil

import (
	"github.com/jmarte/equimed-api/internal/domain/entity"
)

// FakeProductRepo repositorio de productos en memoria.
type FakeProductRepo struct {
	byID       map[string]*entity.Product
	order      []string
	references map[string]bool
}

// NewFakeProductRepo construye el fake vacío.
func NewFakeProductRepo() *FakeProductRepo {
	return &FakeProductRepo{
		byID:       make(map[string]*entity.Product),
		references: make(map[string]bool),
	}
}

// Seed registra un producto directamente, sin pasar por Create.
func (r *FakeProductRepo) Seed(p *entity.Product) {
	cp := *p
	r.byID[p.ID] = &cp
	r.order = append(r.order, p.ID)
}

// SetReferenced marca el producto como referenciado por documentos.
func (r *FakeProductRepo) SetReferenced(id string) {
	r.references[id] = true
}

func (r *FakeProductRepo) Create(p *entity.Product) error {
	r.Seed(p)
	return nil
}

func (r *FakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *FakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *FakeProductRepo) GetBySKU(organizationID, sku string) (*entity.Product, error) {
	for _, id := range r.order {
		p := r.byID[id]
		if p.OrganizationID == organizationID && p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *FakeProductRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range r.order {
		p := r.byID[id]
		if p.OrganizationID == organizationID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *FakeProductRepo) ListLowStock(organizationID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range r.order {
		p := r.byID[id]
		if p.OrganizationID == organizationID && p.IsActive && p.Stock <= p.MinStock {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Update persiste los campos editables sin tocar los contadores de stock.
func (r *FakeProductRepo) Update(p *entity.Product) error {
	stored, ok := r.byID[p.ID]
	if !ok {
		return nil
	}
	stock, available := stored.Stock, stored.StockAvailable
	cp := *p
	cp.Stock, cp.StockAvailable = stock, available
	r.byID[p.ID] = &cp
	return nil
}

func (r *FakeProductRepo) UpdateStock(id string, stock, stockAvailable int) error {
	if p, ok := r.byID[id]; ok {
		p.Stock = stock
		p.StockAvailable = stockAvailable
	}
	return nil
}

func (r *FakeProductRepo) HasReferences(id string) (bool, error) {
	return r.references[id], nil
}

func (r *FakeProductRepo) Deactivate(id string) error {
	if p, ok := r.byID[id]; ok {
		p.IsActive = false
	}
	return nil
}

func (r *FakeProductRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

func paginate[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
