// Package shipmentrepo persists the shipment aggregate, including the
// redelivery schedule and the COD collection flags the settlement flow
// depends on.
package shipmentrepo

import (
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO is the database representation of a shipment aggregate.
type ShipmentDTO struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingNumber        string     `gorm:"type:varchar(32);uniqueIndex"`
	SubOrderID            uuid.UUID  `gorm:"type:uuid;index"`
	ShipperID             *uuid.UUID `gorm:"type:uuid;index"`
	Status                int        `gorm:"index"`
	CODAmount             int64
	CODCollected          bool
	DeliveryAttempts      int
	FailureReason         string
	ScheduledRedeliveryAt *time.Time `gorm:"index"`
	ReturnReason          string
	ReturnedAt            *time.Time
	PickupPoint           GeoPointDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	DeliveryPoint         GeoPointDTO `gorm:"embedded;embeddedPrefix:delivery_"`
}

// TableName overrides GORM's default naming to use "shipments".
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// GeoPointDTO stores an embedded coordinate pair in decimal degrees.
type GeoPointDTO struct {
	Latitude  float64
	Longitude float64
}

func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	var shipperID *uuid.UUID
	if id := aggregate.Shipper(); id != nil {
		raw := id.Bytes()
		shipperID = &raw
	}

	return ShipmentDTO{
		ID:                    aggregate.ID().Bytes(),
		TrackingNumber:        aggregate.TrackingNumber(),
		SubOrderID:            aggregate.SubOrderID().Bytes(),
		ShipperID:             shipperID,
		Status:                int(aggregate.Status()),
		CODAmount:             aggregate.CODAmount().Amount(),
		CODCollected:          aggregate.CODCollected(),
		DeliveryAttempts:      aggregate.DeliveryAttempts(),
		FailureReason:         aggregate.FailureReason(),
		ScheduledRedeliveryAt: aggregate.ScheduledRedeliveryAt(),
		ReturnReason:          aggregate.ReturnReason(),
		ReturnedAt:            aggregate.ReturnedAt(),
		PickupPoint: GeoPointDTO{
			Latitude:  aggregate.PickupPoint().Latitude(),
			Longitude: aggregate.PickupPoint().Longitude(),
		},
		DeliveryPoint: GeoPointDTO{
			Latitude:  aggregate.DeliveryPoint().Latitude(),
			Longitude: aggregate.DeliveryPoint().Longitude(),
		},
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	subOrderID, err := kernel.UUIDFromBytes(dto.SubOrderID[:])
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

	codAmount, err := kernel.NewMoney(dto.CODAmount)
	if err != nil {
		return nil, err
	}

	pickupPoint, err := kernel.NewGeoPoint(dto.PickupPoint.Latitude, dto.PickupPoint.Longitude)
	if err != nil {
		return nil, err
	}

	deliveryPoint, err := kernel.NewGeoPoint(dto.DeliveryPoint.Latitude, dto.DeliveryPoint.Longitude)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(
		id,
		dto.TrackingNumber,
		subOrderID,
		shipperID,
		shipment.Status(dto.Status),
		codAmount,
		dto.CODCollected,
		dto.DeliveryAttempts,
		dto.FailureReason,
		dto.ScheduledRedeliveryAt,
		dto.ReturnReason,
		dto.ReturnedAt,
		pickupPoint,
		deliveryPoint,
	)
}
