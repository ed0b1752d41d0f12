package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserType(t *testing.T) {
	ut, err := ParseUserType("AVENTUREIRO")
	assert.NoError(t, err)
	assert.Equal(t, UserTypeAdventurer, ut)

	_, err = ParseUserType("WIZARD")
	assert.ErrorContains(t, err, "unknown user type")
	assert.ErrorContains(t, err, "AVENTUREIRO", "error should list the valid values")
}

func TestParseProductCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    ProductCategory
		wantErr bool
	}{
		{"ARMAS", CategoryWeapons, false},
		{"ARMADURA_VESTIMENTA", CategoryArmor, false},
		{"POCOES", CategoryPotions, false},
		{"INGREDIENTES_ALQUIMIA", CategoryAlchemy, false},
		{"PERGAMINHOS", CategoryParchments, false},
		{"armas", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseProductCategory(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTransactionStatus(t *testing.T) {
	for _, s := range TransactionStatuses {
		got, err := ParseTransactionStatus(string(s))
		assert.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseTransactionStatus("SHIPPED")
	assert.ErrorContains(t, err, "unknown status")
}
