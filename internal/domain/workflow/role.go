package workflow

// Role is an opaque organizational role name. The set of roles is open:
// callers supply roles per request and the engine never enumerates them.
type Role string

// Well-known roles referenced by the built-in transition tables.
const (
	RoleMP               Role = "mp"
	RoleCDFCChair        Role = "cdfc_chair"
	RoleTACChair         Role = "tac_chair"
	RolePLGO             Role = "plgo"
	RoleMinistryOfficial Role = "ministry_official"
	RoleFinanceOfficer   Role = "finance_officer"
	RoleSuperAdmin       Role = "super_admin"
)

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// hasAnyRole reports whether required and held intersect. Authorization is
// satisfied by any one matching role, never all.
func hasAnyRole(required []Role, held []Role) bool {
	for _, req := range required {
		for _, h := range held {
			if req == h {
				return true
			}
		}
	}
	return false
}
