package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw    string
		want   Role
		wantOK bool
	}{
		{"user", RoleUser, true},
		{"specialist", RoleSpecialist, true},
		{"admin", RoleAdmin, true},
		{"", "", false},
		{"superadmin", "", false},
		{"User", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseRole(tt.raw)
		assert.Equal(t, tt.wantOK, ok, "ParseRole(%q)", tt.raw)
		assert.Equal(t, tt.want, got, "ParseRole(%q)", tt.raw)
	}
}

func TestCan(t *testing.T) {
	tests := []struct {
		name  string
		role  Role
		op    Operation
		owner bool
		want  bool
	}{
		{"any role submits cases", RoleUser, OpDiseaseSubmit, false, true},
		{"any role lists cases", RoleSpecialist, OpDiseaseList, false, true},
		{"admin lists cases", RoleAdmin, OpDiseaseList, false, true},

		{"farmer views own case", RoleUser, OpDiseaseView, true, true},
		{"farmer cannot view someone else's case", RoleUser, OpDiseaseView, false, false},
		{"specialist views any case", RoleSpecialist, OpDiseaseView, false, true},
		{"admin views any case", RoleAdmin, OpDiseaseView, false, true},

		{"only specialists review", RoleSpecialist, OpDiseaseReview, false, true},
		{"admin cannot review", RoleAdmin, OpDiseaseReview, false, false},
		{"farmer cannot review", RoleUser, OpDiseaseReview, false, false},
		{"only specialists approve cases", RoleSpecialist, OpDiseaseApprove, false, true},
		{"admin cannot approve cases", RoleAdmin, OpDiseaseApprove, false, false},

		{"specialist creates medicines", RoleSpecialist, OpMedicineCreate, false, true},
		{"farmer cannot create medicines", RoleUser, OpMedicineCreate, false, false},
		{"specialist approves medicines", RoleSpecialist, OpMedicineApprove, false, true},
		{"only admin deletes medicines", RoleAdmin, OpMedicineDelete, false, true},
		{"specialist cannot delete medicines", RoleSpecialist, OpMedicineDelete, false, false},

		{"owner mutates own land", RoleUser, OpLandMutate, true, true},
		{"non-owner cannot mutate land", RoleSpecialist, OpLandMutate, false, false},
		{"admin mutates any land", RoleAdmin, OpLandMutate, false, true},

		{"only admin manages users", RoleAdmin, OpUserManage, false, true},
		{"specialist cannot manage users", RoleSpecialist, OpUserManage, false, false},

		{"unknown role is denied everything", Role("ghost"), OpDiseaseList, false, false},
		{"unknown operation is denied", RoleAdmin, Operation("disease:teleport"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.role, tt.op, tt.owner))
		})
	}
}
