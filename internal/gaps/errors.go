package gaps

import "fmt"

// RoleNotFoundMessage is the error text surfaced in role gap payloads.
const RoleNotFoundMessage = "Role not found"

// RoleNotFoundError is returned when a role has no template in the catalog.
type RoleNotFoundError struct {
	Role string
}

func (e *RoleNotFoundError) Error() string {
	return fmt.Sprintf("role not found: %q", e.Role)
}
