package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Amani", CleanString("  Amani "))
	assert.Equal(t, "amani@test.cd", CleanString(" Amani@Test.cd ", true))
	assert.Equal(t, "", CleanString("   "))
}

func Test_phoneValidation(t *testing.T) {
	type payload struct {
		Phone string `json:"phone" validate:"omitempty,phone_"`
	}

	tests := []struct {
		phone   string
		wantErr bool
	}{
		{phone: ""},
		{phone: "9876543210"},
		{phone: "+919876543210"},
		{phone: "919876543210"},
		{phone: "abc", wantErr: true},
		{phone: "12345", wantErr: true},
		{phone: "+", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			err := Validate.Struct(payload{Phone: tt.phone})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
