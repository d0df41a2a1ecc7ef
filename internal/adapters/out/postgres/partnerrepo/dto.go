// Package partnerrepo provides data transfer objects and mapping functions for
// delivery partner persistence. This package implements the repository pattern
// for the partner domain aggregate, handling the conversion between domain
// entities and database representations.
package partnerrepo

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"

	"github.com/google/uuid"
)

// PartnerDTO represents the database structure for persisting delivery
// partner aggregates. Indexed by availability to serve the automatic
// assignment sweep.
type PartnerDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null"`
	IsAvailable bool      `gorm:"index"`
	ETA         *int      `gorm:"type:int"`
}

// TableName specifies the database table name for partner entities.
// Overrides GORM's default naming convention to use "delivery_partners".
func (PartnerDTO) TableName() string {
	return "delivery_partners"
}

// fromDomain converts a partner domain aggregate to its database representation.
func fromDomain(aggregate *partner.DeliveryPartner) PartnerDTO {
	var eta *int
	if aggregate.ETA() != nil {
		minutes := *aggregate.ETA()
		eta = &minutes
	}

	return PartnerDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		IsAvailable: aggregate.IsAvailable(),
		ETA:         eta,
	}
}

// toDomain converts a database DTO to a partner domain aggregate using
// RestoreDeliveryPartner.
func toDomain(dto PartnerDTO) (*partner.DeliveryPartner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return partner.RestoreDeliveryPartner(id, dto.Name, dto.IsAvailable, dto.ETA)
}
