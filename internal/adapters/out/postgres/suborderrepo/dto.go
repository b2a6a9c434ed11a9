// Package suborderrepo persists the sub-order aggregate. One row per shop
// split of a marketplace order.
package suborderrepo

import (
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/suborder"

	"github.com/google/uuid"
)

// SubOrderDTO is the database representation of a sub-order aggregate.
type SubOrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID  `gorm:"type:uuid;index"`
	ShopID          uuid.UUID  `gorm:"type:uuid;index"`
	ShipperID       *uuid.UUID `gorm:"type:uuid"`
	Total           int64
	Status          int
	TrackingNumber  string `gorm:"type:varchar(32);index"`
	PickupAddress   string
	DeliveryAddress string
}

// TableName overrides GORM's default naming to use "sub_orders".
func (SubOrderDTO) TableName() string {
	return "sub_orders"
}

func fromDomain(aggregate *suborder.SubOrder) SubOrderDTO {
	var shipperID *uuid.UUID
	if id := aggregate.Shipper(); id != nil {
		raw := id.Bytes()
		shipperID = &raw
	}

	return SubOrderDTO{
		ID:              aggregate.ID().Bytes(),
		OrderID:         aggregate.OrderID().Bytes(),
		ShopID:          aggregate.ShopID().Bytes(),
		ShipperID:       shipperID,
		Total:           aggregate.Total().Amount(),
		Status:          int(aggregate.Status()),
		TrackingNumber:  aggregate.TrackingNumber(),
		PickupAddress:   aggregate.PickupAddress(),
		DeliveryAddress: aggregate.DeliveryAddress(),
	}
}

func toDomain(dto SubOrderDTO) (*suborder.SubOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}

	var shipperID *kernel.UUID
	if dto.ShipperID != nil {
		sID, shipperErr := kernel.UUIDFromBytes((*dto.ShipperID)[:])
		if shipperErr != nil {
			return nil, shipperErr
		}

		shipperID = &sID
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	return suborder.RestoreSubOrder(
		id,
		orderID,
		shopID,
		total,
		suborder.Status(dto.Status),
		shipperID,
		dto.TrackingNumber,
		dto.PickupAddress,
		dto.DeliveryAddress,
	)
}
