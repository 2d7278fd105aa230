package inventory

import (
	"context"

	"github.com/jmarte/equimed-api/internal/application/ports"
	"github.com/jmarte/equimed-api/internal/domain"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos manuales de inventario
// (entrada, salida, ajuste) de forma transaccional a través del StockLedger.
// Los movimientos venta/alquiler/devolucion los emiten los casos de uso de
// ventas y alquileres dentro de sus propias transacciones.
type RegisterMovementUseCase struct {
	txRunner ports.TxRunner
	ledger   *StockLedger
	movRepo  repository.InventoryMovementRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner ports.TxRunner, ledger *StockLedger, movRepo repository.InventoryMovementRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, ledger: ledger, movRepo: movRepo}
}

// MovementInput entrada para registrar un movimiento manual.
// Para ajuste, Quantity es el nuevo stock total; para entrada/salida, las
// unidades movidas.
type MovementInput struct {
	OrganizationID string
	UserID         string
	ProductID      string
	Type           entity.MovementType
	Quantity       int
	Reason         string
}

// RegisterMovement valida el comando y lo aplica en una transacción.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in MovementInput) (*entity.InventoryMovement, error) {
	switch in.Type {
	case entity.MovementEntrada, entity.MovementSalida, entity.MovementAjuste:
	default:
		// venta/alquiler/devolucion solo nacen de sus transacciones.
		return nil, domain.ErrInvalidMovementType
	}
	if in.ProductID == "" || in.OrganizationID == "" {
		return nil, domain.ErrInvalidInput
	}

	var movement *entity.InventoryMovement
	err := uc.txRunner.Run(ctx, func(r *ports.TxRepos) error {
		var err error
		movement, err = uc.ledger.Apply(r, ApplyInput{
			OrganizationID: in.OrganizationID,
			UserID:         in.UserID,
			ProductID:      in.ProductID,
			Type:           in.Type,
			Quantity:       in.Quantity,
			Reason:         in.Reason,
			Reference:      entity.MovementRef{Type: entity.RefAdjustment},
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// ListByProduct historial de movimientos de un producto, del más reciente al
// más antiguo.
func (uc *RegisterMovementUseCase) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return uc.movRepo.ListByProduct(productID, limit, offset)
}

// ListByOrganization historial de movimientos de la organización.
func (uc *RegisterMovementUseCase) ListByOrganization(organizationID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return uc.movRepo.ListByOrganization(organizationID, limit, offset)
}
