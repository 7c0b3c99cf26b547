// Package authz holds the closed role/operation authorization table.
// Every role-gated decision in the API goes through Can, so the whole
// access matrix is testable without HTTP or a database.
package authz

// Role is the closed set of principal roles.
type Role string

const (
	RoleUser       Role = "user"
	RoleSpecialist Role = "specialist"
	RoleAdmin      Role = "admin"
)

// ParseRole maps the raw role string carried by a token onto the
// closed set. Unknown strings yield ok=false and deny everything.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleSpecialist, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Operation names one guarded action.
type Operation string

const (
	OpDiseaseSubmit  Operation = "disease:submit"
	OpDiseaseList    Operation = "disease:list"
	OpDiseaseView    Operation = "disease:view"
	OpDiseaseReview  Operation = "disease:review"
	OpDiseaseApprove Operation = "disease:approve"

	OpMedicineList    Operation = "medicine:list"
	OpMedicineCreate  Operation = "medicine:create"
	OpMedicineUpdate  Operation = "medicine:update"
	OpMedicineApprove Operation = "medicine:approve"
	OpMedicineDelete  Operation = "medicine:delete"

	OpLandMutate Operation = "land:mutate"

	OpUserManage Operation = "user:manage"
)

// Can reports whether a principal with the given role may perform op.
// owner tells whether the principal owns the target resource; it only
// matters for ownership-scoped operations (viewing a disease case,
// mutating a land listing).
func Can(role Role, op Operation, owner bool) bool {
	switch op {
	case OpDiseaseSubmit, OpDiseaseList, OpMedicineList:
		return role == RoleUser || role == RoleSpecialist || role == RoleAdmin

	case OpDiseaseView:
		// Farmers may only see their own cases; the other roles are
		// unrestricted.
		if role == RoleUser {
			return owner
		}
		return role == RoleSpecialist || role == RoleAdmin

	case OpDiseaseReview, OpDiseaseApprove:
		return role == RoleSpecialist

	case OpMedicineCreate, OpMedicineUpdate, OpMedicineApprove:
		return role == RoleSpecialist || role == RoleAdmin

	case OpMedicineDelete, OpUserManage:
		return role == RoleAdmin

	case OpLandMutate:
		return owner || role == RoleAdmin
	}
	return false
}
