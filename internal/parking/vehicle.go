package parking

import "fmt"

// VehicleCategory classifies a vehicle for slot matching and billing.
type VehicleCategory string

const (
	VehicleBike  VehicleCategory = "Bike"
	VehicleCar   VehicleCategory = "Car"
	VehicleTruck VehicleCategory = "Truck"
)

func ParseVehicleCategory(s string) (VehicleCategory, error) {
	switch s {
	case "Bike", "bike":
		return VehicleBike, nil
	case "Car", "car":
		return VehicleCar, nil
	case "Truck", "truck":
		return VehicleTruck, nil
	}
	return "", fmt.Errorf("unknown vehicle category: %q", s)
}

type Vehicle struct {
	Registration string
	Category     VehicleCategory
}

func NewVehicle(registration string, category VehicleCategory) Vehicle {
	return Vehicle{
		Registration: registration,
		Category:     category,
	}
}
