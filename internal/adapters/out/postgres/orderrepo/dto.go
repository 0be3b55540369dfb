// Package orderrepo persists Order aggregates. An order spans three tables:
// the orders row itself, its immutable item snapshot and its append-only
// status history.
package orderrepo

import (
	"sort"
	"time"

	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the orders table row.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber     string     `gorm:"uniqueIndex;not null"`
	PatientID       uuid.UUID  `gorm:"type:uuid;index"`
	PharmacyID      uuid.UUID  `gorm:"type:uuid;index"`
	CourierID       *uuid.UUID `gorm:"type:uuid;index"`
	Status          int        `gorm:"index"`
	StockDeducted   bool
	Subtotal        float64
	Tax             float64
	DeliveryFee     float64
	Total           float64
	Address         AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	PaymentMethod   int
	PrescriptionRef string
	DeliveredAt     *time.Time
	CreatedAt       time.Time

	Items   []OrderItemDTO    `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	History []StatusChangeDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is the delivery destination embedded in the orders row.
type AddressDTO struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// OrderItemDTO is one line of the priced item snapshot, keyed by order and
// line position.
type OrderItemDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	LineNo     int       `gorm:"primaryKey"`
	MedicineID uuid.UUID `gorm:"type:uuid;index"`
	Name       string
	Quantity   int
	Price      float64
	Discount   float64
	FinalPrice float64
}

// TableName overrides GORM's default naming.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// StatusChangeDTO is one audit trail entry, keyed by order and sequence.
// Rows are only ever appended; existing sequence numbers never change.
type StatusChangeDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int       `gorm:"primaryKey"`
	Status    int
	UpdatedBy uuid.UUID `gorm:"type:uuid"`
	At        time.Time
	Note      string
}

// TableName overrides GORM's default naming.
func (StatusChangeDTO) TableName() string {
	return "order_status_changes"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:    aggregate.ID().Bytes(),
			LineNo:     i,
			MedicineID: item.MedicineID().Bytes(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			Price:      item.Price(),
			Discount:   item.Discount(),
			FinalPrice: item.FinalPrice(),
		})
	}

	history := make([]StatusChangeDTO, 0, len(aggregate.History()))
	for i, change := range aggregate.History() {
		history = append(history, StatusChangeDTO{
			OrderID:   aggregate.ID().Bytes(),
			Seq:       i,
			Status:    int(change.Status),
			UpdatedBy: change.UpdatedBy.Bytes(),
			At:        change.At,
			Note:      change.Note,
		})
	}

	address := aggregate.DeliveryAddress()
	pricing := aggregate.Pricing()

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		OrderNumber:   aggregate.OrderNumber(),
		PatientID:     aggregate.PatientID().Bytes(),
		PharmacyID:    aggregate.PharmacyID().Bytes(),
		CourierID:     courierID,
		Status:        int(aggregate.Status()),
		StockDeducted: aggregate.StockDeducted(),
		Subtotal:      pricing.Subtotal(),
		Tax:           pricing.Tax(),
		DeliveryFee:   pricing.DeliveryFee(),
		Total:         pricing.Total(),
		Address: AddressDTO{
			Street:     address.Street(),
			City:       address.City(),
			State:      address.State(),
			PostalCode: address.PostalCode(),
			Country:    address.Country(),
		},
		PaymentMethod:   int(aggregate.PaymentMethod()),
		PrescriptionRef: aggregate.PrescriptionRef(),
		DeliveredAt:     aggregate.DeliveredAt(),
		CreatedAt:       aggregate.CreatedAt(),
		Items:           items,
		History:         history,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	patientID, err := kernel.UUIDFromBytes(dto.PatientID[:])
	if err != nil {
		return nil, err
	}
	pharmacyID, err := kernel.UUIDFromBytes(dto.PharmacyID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	sort.Slice(dto.Items, func(i, j int) bool { return dto.Items[i].LineNo < dto.Items[j].LineNo })
	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		medicineID, itemErr := kernel.UUIDFromBytes(itemDTO.MedicineID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, order.RestoreItem(medicineID, itemDTO.Name,
			itemDTO.Quantity, itemDTO.Price, itemDTO.Discount, itemDTO.FinalPrice))
	}

	sort.Slice(dto.History, func(i, j int) bool { return dto.History[i].Seq < dto.History[j].Seq })
	history := make([]order.StatusChange, 0, len(dto.History))
	for _, changeDTO := range dto.History {
		updatedBy, histErr := kernel.UUIDFromBytes(changeDTO.UpdatedBy[:])
		if histErr != nil {
			return nil, histErr
		}
		history = append(history, order.StatusChange{
			Status:    order.Status(changeDTO.Status),
			UpdatedBy: updatedBy,
			At:        changeDTO.At,
			Note:      changeDTO.Note,
		})
	}

	address, err := kernel.NewAddress(dto.Address.Street, dto.Address.City,
		dto.Address.State, dto.Address.PostalCode, dto.Address.Country)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.OrderSnapshot{
		ID:              id,
		OrderNumber:     dto.OrderNumber,
		PatientID:       patientID,
		PharmacyID:      pharmacyID,
		CourierID:       courierID,
		Items:           items,
		Pricing:         order.RestorePricing(dto.Subtotal, dto.Tax, dto.DeliveryFee, dto.Total),
		Status:          order.Status(dto.Status),
		History:         history,
		StockDeducted:   dto.StockDeducted,
		Address:         address,
		PaymentMethod:   order.PaymentMethod(dto.PaymentMethod),
		PrescriptionRef: dto.PrescriptionRef,
		DeliveredAt:     dto.DeliveredAt,
		CreatedAt:       dto.CreatedAt,
	})
}
