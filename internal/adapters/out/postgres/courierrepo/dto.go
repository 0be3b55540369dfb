// Package courierrepo persists Courier aggregates. Busy state is never
// stored: the read side derives it from active orders.
package courierrepo

import (
	"medmarket/internal/core/domain/model/courier"
	"medmarket/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO is the couriers table row.
type CourierDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"not null"`
	Phone string    `gorm:"not null"`
}

// TableName overrides GORM's default naming.
func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:    aggregate.ID().Bytes(),
		Name:  aggregate.Name(),
		Phone: aggregate.Phone(),
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(id, dto.Name, dto.Phone), nil
}
