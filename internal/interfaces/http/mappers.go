package http

import (
	"github.com/jmarte/equimed-api/internal/application/dto"
	"github.com/jmarte/equimed-api/internal/domain/entity"
)

func toMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		UserID:        m.UserID,
		Type:          string(m.Type),
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		Reason:        m.Reason,
		CreatedAt:     m.CreatedAt,
	}
}

func toQuotationResponse(q *entity.Quotation) dto.QuotationResponse {
	items := make([]dto.QuotationItemResponse, 0, len(q.Items))
	for _, item := range q.Items {
		items = append(items, dto.QuotationItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			Subtotal:        item.Subtotal,
		})
	}
	return dto.QuotationResponse{
		ID:              q.ID,
		OrganizationID:  q.OrganizationID,
		Number:          q.Number,
		Type:            string(q.Type),
		ClientID:        q.ClientID,
		CreatedBy:       q.CreatedBy,
		Status:          string(q.Status),
		QuotationDate:   q.QuotationDate,
		ValidUntil:      q.ValidUntil,
		StartDate:       q.StartDate,
		EndDate:         q.EndDate,
		Subtotal:        q.Subtotal,
		TaxRate:         q.TaxRate,
		TaxAmount:       q.TaxAmount,
		DiscountPercent: q.DiscountPercent,
		DiscountAmount:  q.DiscountAmount,
		Total:           q.Total,
		PaymentMethod:   q.PaymentMethod,
		Notes:           q.Notes,
		SaleID:          q.SaleID,
		RentalID:        q.RentalID,
		Items:           items,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			Subtotal:        item.Subtotal,
		})
	}
	return dto.SaleResponse{
		ID:               s.ID,
		OrganizationID:   s.OrganizationID,
		Number:           s.Number,
		InvoiceNumber:    s.InvoiceNumber,
		QuotationID:      s.QuotationID,
		ClientID:         s.ClientID,
		CreatedBy:        s.CreatedBy,
		Status:           string(s.Status),
		SaleDate:         s.SaleDate,
		DueDate:          s.DueDate,
		Subtotal:         s.Subtotal,
		TaxRate:          s.TaxRate,
		TaxAmount:        s.TaxAmount,
		DiscountAmount:   s.DiscountAmount,
		Total:            s.Total,
		PaidAmount:       s.PaidAmount,
		Balance:          s.Balance,
		PaymentMethod:    s.PaymentMethod,
		PaymentReference: s.PaymentReference,
		Notes:            s.Notes,
		Items:            items,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:            p.ID,
		SaleID:        p.SaleID,
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		Reference:     p.Reference,
		Notes:         p.Notes,
		PaymentDate:   p.PaymentDate,
	}
}

func toRentalResponse(r *entity.Rental) dto.RentalResponse {
	items := make([]dto.RentalItemResponse, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, dto.RentalItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			RentalDays:  item.RentalDays,
			UnitPrice:   item.UnitPrice,
		})
	}
	return dto.RentalResponse{
		ID:               r.ID,
		OrganizationID:   r.OrganizationID,
		Number:           r.Number,
		QuotationID:      r.QuotationID,
		ClientID:         r.ClientID,
		CreatedBy:        r.CreatedBy,
		Status:           string(r.Status),
		ProductID:        r.ProductID,
		RentalPrice:      r.RentalPrice,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		ActualReturnDate: r.ActualReturnDate,
		Period:           string(r.Period),
		Deposit:          r.Deposit,
		TaxRate:          r.TaxRate,
		Discount:         r.Discount,
		DiscountPercent:  r.DiscountPercent,
		TotalCost:        r.TotalCost,
		PaidAmount:       r.PaidAmount,
		Balance:          r.Balance,
		PaymentStatus:    string(r.PaymentStatus),
		PaymentMethod:    r.PaymentMethod,
		Notes:            r.Notes,
		ConditionOut:     r.ConditionOut,
		ConditionIn:      r.ConditionIn,
		Items:            items,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func toRentalPaymentResponse(p *entity.RentalPayment) dto.RentalPaymentResponse {
	return dto.RentalPaymentResponse{
		ID:            p.ID,
		RentalID:      p.RentalID,
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		Reference:     p.Reference,
		Notes:         p.Notes,
		PaymentDate:   p.PaymentDate,
	}
}
