package customers

import "errors"

var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrCustomerHasAssets = errors.New("customer still has equipment assigned")
)
