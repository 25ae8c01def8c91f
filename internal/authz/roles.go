package authz

// Role ids are spaced so new roles can slot in between.
const (
	RoleComercial = 10 // sales reps, own their opportunities
	RoleOperacoes = 20
	RoleAuditoria = 30 // read-only
	RoleDiretoria = 40
	RoleAdmin     = 50
)

// IsElevated reports whether the role can act on records it does not own
// and manage reference data.
func IsElevated(roleID int) bool {
	return roleID == RoleOperacoes || roleID == RoleDiretoria || roleID == RoleAdmin
}

func IsReadOnly(roleID int) bool {
	return roleID == RoleAuditoria
}
