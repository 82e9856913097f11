package enums

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleCustomer, RoleAdmin:
		return Role(raw), true
	default:
		return "", false
	}
}
