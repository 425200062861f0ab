package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/anilkruz/ParkingLot-repo/internal/parking"
)

type layoutFile struct {
	Floors []layoutFloor `json:"floors"`
}

type layoutFloor struct {
	FloorNo *int         `json:"floorNo"`
	Slots   []layoutSlot `json:"slots"`
}

type layoutSlot struct {
	ID   *string `json:"id"`
	Type *string `json:"type"`
}

// LoadLayout reads a floor plan document. Every floor needs a number
// and a non-empty slot list; every slot needs an id and a known type.
func LoadLayout(path string) ([]*parking.Floor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: could not open layout file: %w", err)
	}

	var doc layoutFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: invalid layout file %s: %w", path, err)
	}

	if doc.Floors == nil {
		return nil, errors.New(`config: layout missing key "floors"`)
	}
	if len(doc.Floors) == 0 {
		return nil, errors.New("config: layout has zero floors")
	}

	floors := make([]*parking.Floor, 0, len(doc.Floors))
	for _, jf := range doc.Floors {
		if jf.FloorNo == nil {
			return nil, errors.New(`config: floor missing key "floorNo"`)
		}
		if jf.Slots == nil {
			return nil, fmt.Errorf(`config: floor %d missing key "slots"`, *jf.FloorNo)
		}
		if len(jf.Slots) == 0 {
			return nil, fmt.Errorf("config: floor %d has no slots", *jf.FloorNo)
		}

		slots := make([]*parking.Slot, 0, len(jf.Slots))
		for _, js := range jf.Slots {
			if js.ID == nil {
				return nil, fmt.Errorf(`config: slot missing key "id" on floor %d`, *jf.FloorNo)
			}
			if js.Type == nil {
				return nil, fmt.Errorf(`config: slot %s missing key "type"`, *js.ID)
			}

			category, err := parking.ParseSlotCategory(*js.Type)
			if err != nil {
				return nil, fmt.Errorf("config: slot %s: %w", *js.ID, err)
			}
			slots = append(slots, parking.NewSlot(*js.ID, category))
		}

		floors = append(floors, parking.NewFloor(*jf.FloorNo, slots))
	}

	return floors, nil
}
