// Package vendorrepo provides data transfer objects and mapping functions for
// vendor persistence. The fulfillment core only reads vendors; writes exist
// for the vendor management subsystem and for test seeding.
package vendorrepo

import (
	"encoding/json"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/vendor"
)

// VendorDTO represents the database structure for persisting vendor aggregates.
type VendorDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string
	OrderEmail        string
	IsActive          bool   `gorm:"index"`
	SupportedCarriers []byte `gorm:"type:jsonb"`
}

// TableName specifies the database table name for vendor entities.
func (VendorDTO) TableName() string {
	return "vendors"
}

// fromDomain converts a vendor aggregate to its database representation.
func fromDomain(v *vendor.Vendor) (VendorDTO, error) {
	carriers, err := json.Marshal(v.SupportedCarriers())
	if err != nil {
		return VendorDTO{}, err
	}

	return VendorDTO{
		ID:                v.ID().Bytes(),
		Name:              v.Name(),
		OrderEmail:        v.OrderEmail(),
		IsActive:          v.IsActive(),
		SupportedCarriers: carriers,
	}, nil
}

// toDomain converts a database DTO back to a vendor aggregate.
func toDomain(dto VendorDTO) (*vendor.Vendor, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var carriers []string
	if len(dto.SupportedCarriers) > 0 {
		if err = json.Unmarshal(dto.SupportedCarriers, &carriers); err != nil {
			return nil, err
		}
	}

	return vendor.RestoreVendor(id, dto.Name, dto.OrderEmail, dto.IsActive, carriers)
}
