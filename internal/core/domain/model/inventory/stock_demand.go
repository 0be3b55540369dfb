package inventory

import (
	"sort"

	"medmarket/internal/core/domain/model/kernel"
)

// StockDemand is the quantity an order requires of one medicine. A batch of
// demands is the unit of atomic stock deduction: either every demand is
// satisfied or none is.
type StockDemand struct {
	MedicineID kernel.UUID
	Quantity   int
}

// MergeDemands collapses duplicate medicine lines into one demand per
// medicine and returns the result ordered by medicine ID. The deterministic
// order keeps concurrent deductions from deadlocking on row locks.
func MergeDemands(demands []StockDemand) []StockDemand {
	merged := make(map[kernel.UUID]int, len(demands))
	for _, d := range demands {
		merged[d.MedicineID] += d.Quantity
	}

	result := make([]StockDemand, 0, len(merged))
	for id, qty := range merged {
		result = append(result, StockDemand{MedicineID: id, Quantity: qty})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].MedicineID.String() < result[j].MedicineID.String()
	})

	return result
}
