package testutil

import (
	"time"

	"github.com/jmarte/equimed-api/internal/domain/entity"
)

// FakeQuotationRepo repositorio de cotizaciones en memoria.
type FakeQuotationRepo struct {
	byID  map[string]*entity.Quotation
	order []string
	items map[string][]*entity.QuotationItem
}

// NewFakeQuotationRepo construye el fake vacío.
func NewFakeQuotationRepo() *FakeQuotationRepo {
	return &FakeQuotationRepo{
		byID:  make(map[string]*entity.Quotation),
		items: make(map[string][]*entity.QuotationItem),
	}
}

// Seed registra una cotización con sus items directamente.
func (r *FakeQuotationRepo) Seed(q *entity.Quotation) {
	items := q.Items
	cp := *q
	cp.Items = nil
	r.byID[q.ID] = &cp
	r.order = append(r.order, q.ID)
	for _, item := range items {
		icp := *item
		icp.QuotationID = q.ID
		r.items[q.ID] = append(r.items[q.ID], &icp)
	}
}

func (r *FakeQuotationRepo) Create(q *entity.Quotation) error {
	cp := *q
	cp.Items = nil
	r.byID[q.ID] = &cp
	r.order = append(r.order, q.ID)
	return nil
}

func (r *FakeQuotationRepo) CreateItem(item *entity.QuotationItem) error {
	cp := *item
	r.items[item.QuotationID] = append(r.items[item.QuotationID], &cp)
	return nil
}

func (r *FakeQuotationRepo) GetByID(id string) (*entity.Quotation, error) {
	q, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	cp.Items = r.items[id]
	return &cp, nil
}

func (r *FakeQuotationRepo) List(organizationID string, status entity.QuotationStatus, limit, offset int) ([]*entity.Quotation, error) {
	var out []*entity.Quotation
	for _, id := range r.order {
		q := r.byID[id]
		if q.OrganizationID != organizationID {
			continue
		}
		if status != "" && q.Status != status {
			continue
		}
		cp := *q
		cp.Items = r.items[id]
		out = append(out, &cp)
	}
	return paginate(out, limit, offset), nil
}

func (r *FakeQuotationRepo) Update(q *entity.Quotation) error {
	cp := *q
	cp.Items = nil
	r.byID[q.ID] = &cp
	return nil
}

func (r *FakeQuotationRepo) ReplaceItems(quotationID string, items []*entity.QuotationItem) error {
	r.items[quotationID] = nil
	for _, item := range items {
		cp := *item
		r.items[quotationID] = append(r.items[quotationID], &cp)
	}
	return nil
}

func (r *FakeQuotationRepo) Delete(id string) error {
	delete(r.byID, id)
	delete(r.items, id)
	return nil
}

func (r *FakeQuotationRepo) ExpirePending(organizationID string, now time.Time) (int, error) {
	updated := 0
	for _, q := range r.byID {
		if q.OrganizationID == organizationID && q.Status == entity.QuotationPendiente &&
			q.ValidUntil != nil && q.ValidUntil.Before(now) {
			q.Status = entity.QuotationVencida
			updated++
		}
	}
	return updated, nil
}
