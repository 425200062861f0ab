package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anilkruz/ParkingLot-repo/internal/parking"
)

func writeLayout(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadLayout(t *testing.T) {
	path := writeLayout(t, `{
		"floors": [
			{
				"floorNo": 1,
				"slots": [
					{"id": "F1-TW1", "type": "TwoWheeler"},
					{"id": "F1-FW1", "type": "FourWheeler"},
					{"id": "F1-HV1", "type": "Heavy"}
				]
			},
			{
				"floorNo": 2,
				"slots": [
					{"id": "F2-TW1", "type": "TwoWheeler"}
				]
			}
		]
	}`)

	floors, err := LoadLayout(path)
	require.NoError(t, err)
	require.Len(t, floors, 2)

	assert.Equal(t, 1, floors[0].Number)
	require.Len(t, floors[0].Slots, 3)
	assert.Equal(t, "F1-TW1", floors[0].Slots[0].ID)
	assert.Equal(t, parking.SlotTwoWheeler, floors[0].Slots[0].Category)
	assert.Equal(t, parking.SlotFourWheeler, floors[0].Slots[1].Category)
	assert.Equal(t, parking.SlotHeavy, floors[0].Slots[2].Category)
	assert.False(t, floors[0].Slots[0].Occupied)

	assert.Equal(t, 2, floors[1].Number)
	require.Len(t, floors[1].Slots, 1)
}

func TestLoadLayoutMissingFile(t *testing.T) {
	_, err := LoadLayout(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorContains(t, err, "could not open layout file")
}

func TestLoadLayoutInvalidJSON(t *testing.T) {
	path := writeLayout(t, `{"floors": [`)
	_, err := LoadLayout(path)
	assert.ErrorContains(t, err, "invalid layout file")
}

func TestLoadLayoutMissingFloorsKey(t *testing.T) {
	path := writeLayout(t, `{}`)
	_, err := LoadLayout(path)
	assert.ErrorContains(t, err, `missing key "floors"`)
}

func TestLoadLayoutZeroFloors(t *testing.T) {
	path := writeLayout(t, `{"floors": []}`)
	_, err := LoadLayout(path)
	assert.ErrorContains(t, err, "zero floors")
}

func TestLoadLayoutFloorMissingNumber(t *testing.T) {
	path := writeLayout(t, `{"floors": [{"slots": [{"id": "S1", "type": "Heavy"}]}]}`)
	_, err := LoadLayout(path)
	assert.ErrorContains(t, err, `missing key "floorNo"`)
}

func TestLoadLayoutFloorMissingSlots(t *testing.T) {
	path := writeLayout(t, `{"floors": [{"floorNo": 1}]}`)
	_, err := LoadLayout(path)
	assert.ErrorContains(t, err, `missing key "slots"`)
}

func TestLoadLayoutFloorWithNoSlots(t *testing.T) {
	path := writeLayout(t, `{"floors": [{"floorNo": 3, "slots": []}]}`)
	_, err := LoadLayout(path)
	assert.ErrorContains(t, err, "floor 3 has no slots")
}

func TestLoadLayoutSlotMissingID(t *testing.T) {
	path := writeLayout(t, `{"floors": [{"floorNo": 1, "slots": [{"type": "Heavy"}]}]}`)
	_, err := LoadLayout(path)
	assert.ErrorContains(t, err, `missing key "id"`)
}

func TestLoadLayoutSlotMissingType(t *testing.T) {
	path := writeLayout(t, `{"floors": [{"floorNo": 1, "slots": [{"id": "F1-X1"}]}]}`)
	_, err := LoadLayout(path)
	assert.ErrorContains(t, err, `missing key "type"`)
}

func TestLoadLayoutUnknownSlotType(t *testing.T) {
	path := writeLayout(t, `{"floors": [{"floorNo": 1, "slots": [{"id": "F1-X1", "type": "Hover"}]}]}`)
	_, err := LoadLayout(path)
	assert.ErrorContains(t, err, "unknown slot category")
}
