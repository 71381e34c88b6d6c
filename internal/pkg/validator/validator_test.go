package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type createInput struct {
	Name         string `validate:"required"`
	TrackingUnit string `validate:"required,oneof=hours kilometers"`
}

func TestValidatePasses(t *testing.T) {
	assert.Nil(t, Validate(createInput{Name: "EXC-014", TrackingUnit: "hours"}))
}

func TestValidateReportsFailedRules(t *testing.T) {
	errs := Validate(createInput{TrackingUnit: "miles"})

	assert.Equal(t, "required", errs["Name"])
	assert.Equal(t, "oneof", errs["TrackingUnit"])
}
