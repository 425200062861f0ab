package parking

import "fmt"

// SlotCategory is the kind of vehicle a slot can hold. The values match
// the "type" field of the floor layout file.
type SlotCategory string

const (
	SlotTwoWheeler  SlotCategory = "TwoWheeler"
	SlotFourWheeler SlotCategory = "FourWheeler"
	SlotHeavy       SlotCategory = "Heavy"
)

func ParseSlotCategory(s string) (SlotCategory, error) {
	switch s {
	case "TwoWheeler":
		return SlotTwoWheeler, nil
	case "FourWheeler":
		return SlotFourWheeler, nil
	case "Heavy":
		return SlotHeavy, nil
	}
	return "", fmt.Errorf("unknown slot category: %q", s)
}

// SlotCategoryFor maps a vehicle category to the one slot category it
// may occupy.
func SlotCategoryFor(v VehicleCategory) (SlotCategory, error) {
	switch v {
	case VehicleBike:
		return SlotTwoWheeler, nil
	case VehicleCar:
		return SlotFourWheeler, nil
	case VehicleTruck:
		return SlotHeavy, nil
	}
	return "", fmt.Errorf("no slot category for vehicle category %q", v)
}

type Slot struct {
	ID       string
	Category SlotCategory
	Occupied bool
}

func NewSlot(id string, category SlotCategory) *Slot {
	return &Slot{
		ID:       id,
		Category: category,
		Occupied: false,
	}
}

type Floor struct {
	Number int
	Slots  []*Slot
}

func NewFloor(number int, slots []*Slot) *Floor {
	return &Floor{
		Number: number,
		Slots:  slots,
	}
}

// findFree returns the first unoccupied slot of the given category in
// declaration order, or nil. Caller must hold the lot lock.
func (f *Floor) findFree(category SlotCategory) *Slot {
	for _, slot := range f.Slots {
		if slot.Category == category && !slot.Occupied {
			return slot
		}
	}
	return nil
}
