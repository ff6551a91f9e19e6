package acorn

// Lifetime controls how many instances of a registration the container creates.
type Lifetime int

const (
	// PerDependency is the default lifetime. A new instance is constructed for
	// every [Container.Resolve] call and for every dependent that needs one.
	PerDependency Lifetime = iota

	// SingleInstance means the instance is constructed on first resolution and
	// the same value is returned for the lifetime of the container.
	SingleInstance
)

// String returns the human-readable name of the lifetime.
func (l Lifetime) String() string {
	switch l {
	case PerDependency:
		return "per-dependency"
	case SingleInstance:
		return "single-instance"
	default:
		return "unknown"
	}
}

// ParseLifetime is the inverse of [Lifetime.String]. The empty string parses
// as [PerDependency].
func ParseLifetime(s string) (Lifetime, bool) {
	switch s {
	case "", "per-dependency":
		return PerDependency, true
	case "single-instance":
		return SingleInstance, true
	default:
		return 0, false
	}
}
