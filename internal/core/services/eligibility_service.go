package services

import (
	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/models"
)

// Age floors for flat eligibility
const (
	MinAgeSingle  = 35
	MinAgeMarried = 21
)

// EligibilityService decides which flat types an applicant may request.
// Pure: no repository access, no side effects. Consulted at submission
// and again at approval and booking time.
type EligibilityService struct{}

// NewEligibilityService creates a new eligibility service
func NewEligibilityService() *EligibilityService {
	return &EligibilityService{}
}

// EligibleFlatTypes returns the flat types an applicant of the given age and
// marital status may apply for. Singles must be 35 or older and may only take
// a 2-Room flat; married applicants must be 21 or older and may take any
// offered type. Everyone else gets an empty set.
func (s *EligibilityService) EligibleFlatTypes(age int, maritalStatus string) []string {
	switch maritalStatus {
	case models.MaritalSingle:
		if age >= MinAgeSingle {
			return []string{models.FlatTypeTwoRoom}
		}
	case models.MaritalMarried:
		if age >= MinAgeMarried {
			return []string{models.FlatTypeTwoRoom, models.FlatTypeThreeRoom}
		}
	}
	return nil
}

// IsEligible reports whether the applicant may request the given flat type
func (s *EligibilityService) IsEligible(age int, maritalStatus, flatType string) bool {
	for _, ft := range s.EligibleFlatTypes(age, maritalStatus) {
		if ft == flatType {
			return true
		}
	}
	return false
}
