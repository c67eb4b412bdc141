package domain

// CounterName identifies one of the three persisted activity counters.
type CounterName string

const (
	CounterBuilds      CounterName = "builds"
	CounterScans       CounterName = "scans"
	CounterDeployments CounterName = "deployments"
)

// CounterNames lists every counter in display and trial order.
var CounterNames = []CounterName{CounterBuilds, CounterScans, CounterDeployments}

// StorageKey returns the stable key the counter is persisted under.
// Returns an empty string for unknown counters.
func (c CounterName) StorageKey() string {
	switch c {
	case CounterBuilds:
		return "buildCount"
	case CounterScans:
		return "scanCount"
	case CounterDeployments:
		return "deployCount"
	default:
		return ""
	}
}

// Valid reports whether c is one of the known counters.
func (c CounterName) Valid() bool {
	return c.StorageKey() != ""
}

// Counters holds the current value of every counter.
type Counters struct {
	Builds      int `json:"builds" yaml:"builds"`
	Scans       int `json:"scans" yaml:"scans"`
	Deployments int `json:"deployments" yaml:"deployments"`
}

// Get returns the value of the named counter, or 0 for unknown names.
func (c Counters) Get(name CounterName) int {
	switch name {
	case CounterBuilds:
		return c.Builds
	case CounterScans:
		return c.Scans
	case CounterDeployments:
		return c.Deployments
	default:
		return 0
	}
}

// With returns a copy of c with the named counter set to v.
func (c Counters) With(name CounterName, v int) Counters {
	switch name {
	case CounterBuilds:
		c.Builds = v
	case CounterScans:
		c.Scans = v
	case CounterDeployments:
		c.Deployments = v
	}
	return c
}
