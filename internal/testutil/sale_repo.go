package testutil

import "github.com/jmarte/equimed-api/internal/domain/entity"

// FakeSaleRepo repositorio de ventas y pagos en memoria.
type FakeSaleRepo struct {
	byID     map[string]*entity.Sale
	order    []string
	items    map[string][]*entity.SaleItem
	payments map[string][]*entity.Payment
}

// NewFakeSaleRepo construye el fake vacío.
func NewFakeSaleRepo() *FakeSaleRepo {
	return &FakeSaleRepo{
		byID:     make(map[string]*entity.Sale),
		items:    make(map[string][]*entity.SaleItem),
		payments: make(map[string][]*entity.Payment),
	}
}

func (r *FakeSaleRepo) Create(s *entity.Sale) error {
	cp := *s
	cp.Items = nil
	r.byID[s.ID] = &cp
	r.order = append(r.order, s.ID)
	return nil
}

func (r *FakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	cp := *item
	r.items[item.SaleID] = append(r.items[item.SaleID], &cp)
	return nil
}

func (r *FakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	cp.Items = r.items[id]
	return &cp, nil
}

func (r *FakeSaleRepo) List(organizationID string, status entity.SaleStatus, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, id := range r.order {
		s := r.byID[id]
		if s.OrganizationID != organizationID {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		cp := *s
		cp.Items = r.items[id]
		out = append(out, &cp)
	}
	return paginate(out, limit, offset), nil
}

func (r *FakeSaleRepo) Update(s *entity.Sale) error {
	cp := *s
	cp.Items = nil
	r.byID[s.ID] = &cp
	return nil
}

func (r *FakeSaleRepo) CreatePayment(p *entity.Payment) error {
	cp := *p
	r.payments[p.SaleID] = append(r.payments[p.SaleID], &cp)
	return nil
}

func (r *FakeSaleRepo) ListPayments(saleID string) ([]*entity.Payment, error) {
	return r.payments[saleID], nil
}
