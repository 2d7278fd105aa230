package testutil

import (
	"time"

	"github.com/jmarte/equimed-api/internal/domain/entity"
)

// FakeRentalRepo repositorio de alquileres y pagos en memoria.
type FakeRentalRepo struct {
	byID     map[string]*entity.Rental
	order    []string
	items    map[string][]*entity.RentalItem
	payments map[string][]*entity.RentalPayment
}

// NewFakeRentalRepo construye el fake vacío.
func NewFakeRentalRepo() *FakeRentalRepo {
	return &FakeRentalRepo{
		byID:     make(map[string]*entity.Rental),
		items:    make(map[string][]*entity.RentalItem),
		payments: make(map[string][]*entity.RentalPayment),
	}
}

func (r *FakeRentalRepo) Create(rental *entity.Rental) error {
	cp := *rental
	cp.Items = nil
	r.byID[rental.ID] = &cp
	r.order = append(r.order, rental.ID)
	return nil
}

func (r *FakeRentalRepo) CreateItem(item *entity.RentalItem) error {
	cp := *item
	r.items[item.RentalID] = append(r.items[item.RentalID], &cp)
	return nil
}

func (r *FakeRentalRepo) GetByID(id string) (*entity.Rental, error) {
	rental, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *rental
	cp.Items = r.items[id]
	return &cp, nil
}

func (r *FakeRentalRepo) List(organizationID string, status entity.RentalStatus, limit, offset int) ([]*entity.Rental, error) {
	var out []*entity.Rental
	for _, id := range r.order {
		rental := r.byID[id]
		if rental.OrganizationID != organizationID {
			continue
		}
		if status != "" && rental.Status != status {
			continue
		}
		cp := *rental
		cp.Items = r.items[id]
		out = append(out, &cp)
	}
	return paginate(out, limit, offset), nil
}

func (r *FakeRentalRepo) Update(rental *entity.Rental) error {
	cp := *rental
	cp.Items = nil
	r.byID[rental.ID] = &cp
	return nil
}

func (r *FakeRentalRepo) CreatePayment(p *entity.RentalPayment) error {
	cp := *p
	r.payments[p.RentalID] = append(r.payments[p.RentalID], &cp)
	return nil
}

func (r *FakeRentalRepo) ListPayments(rentalID string) ([]*entity.RentalPayment, error) {
	return r.payments[rentalID], nil
}

func (r *FakeRentalRepo) MarkOverdue(organizationID string, now time.Time) (int, error) {
	updated := 0
	for _, rental := range r.byID {
		if rental.OrganizationID == organizationID && rental.Status == entity.RentalActivo && rental.EndDate.Before(now) {
			rental.Status = entity.RentalVencido
			updated++
		}
	}
	return updated, nil
}
