package entity

// Lifecycle estado de vida de una entidad maestra (reemplaza el flag "activo").
// Los listados filtran implícitamente a LifecycleActive.
type Lifecycle string

const (
	LifecycleActive  Lifecycle = "ACTIVE"
	LifecycleRetired Lifecycle = "RETIRED"
)

// IsActive indica si la entidad sigue operativa.
func (l Lifecycle) IsActive() bool { return l == LifecycleActive || l == "" }
