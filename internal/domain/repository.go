package domain

// Repository identifies the git project the dashboard is shown for.
type Repository struct {
	Owner     string
	Name      string
	RemoteURL string
}

// Slug returns "owner/name", or just the name when the owner is unknown.
func (r Repository) Slug() string {
	if r.Owner == "" {
		return r.Name
	}
	return r.Owner + "/" + r.Name
}
