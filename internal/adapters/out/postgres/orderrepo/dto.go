// Package orderrepo persists the order aggregate. It maps between the domain
// model and the orders table and implements ports.OrderRepository on GORM.
package orderrepo

import (
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database representation of an order aggregate. Monetary
// amounts are stored as whole currency units in bigint columns.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID `gorm:"type:uuid;index"`
	ItemsTotal    int64
	ShippingFee   int64
	GrandTotal    int64
	PaymentMethod string `gorm:"type:varchar(16)"`
	PaymentStatus int
	Status        int `gorm:"index"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		CustomerID:    aggregate.CustomerID().Bytes(),
		ItemsTotal:    aggregate.ItemsTotal().Amount(),
		ShippingFee:   aggregate.ShippingFee().Amount(),
		GrandTotal:    aggregate.GrandTotal().Amount(),
		PaymentMethod: string(aggregate.PaymentMethod()),
		PaymentStatus: int(aggregate.PaymentStatus()),
		Status:        int(aggregate.Status()),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	itemsTotal, err := kernel.NewMoney(dto.ItemsTotal)
	if err != nil {
		return nil, err
	}

	shippingFee, err := kernel.NewMoney(dto.ShippingFee)
	if err != nil {
		return nil, err
	}

	grandTotal, err := kernel.NewMoney(dto.GrandTotal)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		customerID,
		itemsTotal,
		shippingFee,
		grandTotal,
		order.PaymentMethod(dto.PaymentMethod),
		order.PaymentStatus(dto.PaymentStatus),
		order.Status(dto.Status),
	)
}
