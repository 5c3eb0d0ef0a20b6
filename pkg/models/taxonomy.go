package models

// Category is one top-level classification bucket in a unit's taxonomy.
type Category struct {
	ID          int64  `json:"id"`
	UnitID      int64  `json:"unit_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Subcategory refines a Category. CategoryID must reference a Category in the
// same taxonomy snapshot; a subcategory whose parent is missing is orphaned
// and ignored during reconciliation.
type Subcategory struct {
	ID          int64  `json:"id"`
	CategoryID  int64  `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Taxonomy is an immutable snapshot of a unit's categories and subcategories.
// The analysis pipeline only reads it; persistence owns its lifecycle.
type Taxonomy struct {
	Categories    []Category    `json:"categories"`
	Subcategories []Subcategory `json:"subcategories"`
}

// CategoryByName returns the first category with the given name, exact and
// case-sensitive. Duplicate names are a documented upstream impossibility
// (unique index per unit); first match wins if one slips through.
func (t Taxonomy) CategoryByName(name string) (Category, bool) {
	for _, c := range t.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// SubcategoryByName returns the first subcategory with the given name under
// the given parent category. A name match under a different parent does not
// resolve.
func (t Taxonomy) SubcategoryByName(categoryID int64, name string) (Subcategory, bool) {
	for _, s := range t.Subcategories {
		if s.CategoryID == categoryID && s.Name == name {
			return s, true
		}
	}
	return Subcategory{}, false
}

// Orphans returns subcategories whose CategoryID does not resolve to any
// category in this snapshot.
func (t Taxonomy) Orphans() []Subcategory {
	ids := make(map[int64]struct{}, len(t.Categories))
	for _, c := range t.Categories {
		ids[c.ID] = struct{}{}
	}

	var orphans []Subcategory
	for _, s := range t.Subcategories {
		if _, ok := ids[s.CategoryID]; !ok {
			orphans = append(orphans, s)
		}
	}
	return orphans
}
