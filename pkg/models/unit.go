package models

// OrganizationUnit is the organizational scope for a taxonomy and its
// aggregated metrics (a faculty, department, or service office).
type OrganizationUnit struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ShortName   string `json:"short_name,omitempty"`
	Description string `json:"description,omitempty"`
}

// UnitByName returns the first unit with the given name, exact and
// case-sensitive.
func UnitByName(units []OrganizationUnit, name string) (OrganizationUnit, bool) {
	for _, u := range units {
		if u.Name == name {
			return u, true
		}
	}
	return OrganizationUnit{}, false
}
