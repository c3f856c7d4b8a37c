package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type travellersForm struct {
	Count string `json:"count" validate:"required,travellers"`
}

type contactForm struct {
	Name    string `json:"name" validate:"required,notblank"`
	Email   string `json:"email" validate:"required,email"`
	Contact struct {
		Phone string `json:"phone" validate:"required"`
	} `json:"contact"`
}

func TestValidateTravellers(t *testing.T) {
	for _, value := range []string{"1", "10", "42", "more"} {
		assert.Nil(t, ValidateStruct(travellersForm{Count: value}), value)
	}

	for _, value := range []string{"0", "-1", "lots", "2.5"} {
		errs := ValidateStruct(travellersForm{Count: value})
		assert.Equal(t, `Must be a positive number or "more"`, errs["count"], value)
	}

	errs := ValidateStruct(travellersForm{})
	assert.Equal(t, "This field is required", errs["count"])
}

func TestValidateStructUsesJSONPaths(t *testing.T) {
	form := contactForm{Name: "   ", Email: "not-an-email"}

	errs := ValidateStruct(form)

	assert.Equal(t, "This field is required", errs["name"])
	assert.Equal(t, "Invalid email format", errs["email"])
	assert.Equal(t, "This field is required", errs["contact.phone"])
}

func TestValidateStructValid(t *testing.T) {
	form := contactForm{Name: "Amina", Email: "amina@example.com"}
	form.Contact.Phone = "+8801700000000"

	assert.Nil(t, ValidateStruct(form))
}
