// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by status and partner assignment to serve the dashboard queries and
// the automatic assignment sweep.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PartnerID    *uuid.UUID `gorm:"type:uuid;index"`
	Items        string
	PrepTime     int
	Status       int       `gorm:"index"`
	CreatedAt    time.Time `gorm:"index"`
	DispatchTime time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including the optional partner assignment.
func fromDomain(aggregate *order.Order) OrderDTO {
	var partnerID *uuid.UUID
	if id := aggregate.Partner(); id != nil {
		raw := id.Bytes()
		partnerID = &raw
	}

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		PartnerID:    partnerID,
		Items:        aggregate.Items(),
		PrepTime:     aggregate.PrepTime(),
		Status:       int(aggregate.Status()),
		CreatedAt:    aggregate.CreatedAt(),
		DispatchTime: aggregate.DispatchTime(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status and partner assignment
// using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.PartnerID != nil {
		pID, partnerErr := kernel.UUIDFromBytes((*dto.PartnerID)[:])
		if partnerErr != nil {
			return nil, partnerErr
		}

		partnerID = &pID
	}

	return order.RestoreOrder(
		id,
		dto.Items,
		dto.PrepTime,
		dto.CreatedAt,
		dto.DispatchTime,
		order.Status(dto.Status),
		partnerID,
	)
}
