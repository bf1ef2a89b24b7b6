package services

import (
	"testing"

	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
)

func TestEligibleFlatTypes(t *testing.T) {
	svc := NewEligibilityService()

	tests := []struct {
		name          string
		age           int
		maritalStatus string
		want          []string
	}{
		{"single at 35 gets 2-Room only", 35, models.MaritalSingle, []string{models.FlatTypeTwoRoom}},
		{"single above 35 gets 2-Room only", 60, models.MaritalSingle, []string{models.FlatTypeTwoRoom}},
		{"single at 34 gets nothing", 34, models.MaritalSingle, nil},
		{"single at 21 gets nothing", 21, models.MaritalSingle, nil},
		{"married at 21 gets both types", 21, models.MaritalMarried, []string{models.FlatTypeTwoRoom, models.FlatTypeThreeRoom}},
		{"married at 20 gets nothing", 20, models.MaritalMarried, nil},
		{"married at 35 gets both types", 35, models.MaritalMarried, []string{models.FlatTypeTwoRoom, models.FlatTypeThreeRoom}},
		{"unknown marital status gets nothing", 40, "DIVORCED", nil},
		{"zero age gets nothing", 0, models.MaritalMarried, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.EligibleFlatTypes(tt.age, tt.maritalStatus)
			if tt.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestIsEligible(t *testing.T) {
	svc := NewEligibilityService()

	assert.True(t, svc.IsEligible(35, models.MaritalSingle, models.FlatTypeTwoRoom))
	assert.False(t, svc.IsEligible(35, models.MaritalSingle, models.FlatTypeThreeRoom))
	assert.True(t, svc.IsEligible(21, models.MaritalMarried, models.FlatTypeThreeRoom))
	assert.False(t, svc.IsEligible(30, models.MaritalSingle, models.FlatTypeTwoRoom))
	assert.False(t, svc.IsEligible(20, models.MaritalMarried, models.FlatTypeTwoRoom))
}
