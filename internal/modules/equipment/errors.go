package equipment

import "errors"

var (
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrReadingRegression = errors.New("reading is lower than the current recorded value")
)
