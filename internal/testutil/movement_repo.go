package testutil

import "github.com/jmarte/equimed-api/internal/domain/entity"

// FakeMovementRepo libro de inventario en memoria (solo inserta y lista).
type FakeMovementRepo struct {
	Entries []*entity.InventoryMovement
}

// NewFakeMovementRepo construye el fake vacío.
func NewFakeMovementRepo() *FakeMovementRepo {
	return &FakeMovementRepo{}
}

func (r *FakeMovementRepo) Create(m *entity.InventoryMovement) error {
	cp := *m
	r.Entries = append(r.Entries, &cp)
	return nil
}

func (r *FakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for i := len(r.Entries) - 1; i >= 0; i-- {
		if r.Entries[i].ProductID == productID {
			out = append(out, r.Entries[i])
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *FakeMovementRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for i := len(r.Entries) - 1; i >= 0; i-- {
		if r.Entries[i].OrganizationID == organizationID {
			out = append(out, r.Entries[i])
		}
	}
	return paginate(out, limit, offset), nil
}

// Last devuelve el último movimiento registrado, o nil si no hay ninguno.
func (r *FakeMovementRepo) Last() *entity.InventoryMovement {
	if len(r.Entries) == 0 {
		return nil
	}
	return r.Entries[len(r.Entries)-1]
}

// ByType filtra los movimientos registrados por tipo.
func (r *FakeMovementRepo) ByType(t entity.MovementType) []*entity.InventoryMovement {
	var out []*entity.InventoryMovement
	for _, m := range r.Entries {
		if m.Type == t {
			out = append(out, m)
		}
	}
	return out
}
