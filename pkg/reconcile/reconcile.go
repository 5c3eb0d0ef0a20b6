// Package reconcile maps the model's free-text category, subcategory, and
// unit names back to canonical numeric identifiers from a taxonomy snapshot.
//
// Matching is exact and case-sensitive against canonical names; there is no
// fuzzy matching. An unmatched name resolves the corresponding identifier to
// nil, never to a default or guessed id, and never drops the segment: the
// caller decides how to present unresolved segments (e.g. "Uncategorized").
package reconcile

import (
	"github.com/campus-pulse/insight-engine/pkg/models"
)

// Segments resolves every segment against the taxonomy and unit list.
//
// Resolution rules:
//   - category_id resolves iff category_name exactly matches a category.
//   - subcategory_id resolves iff sub_category_name exactly matches a
//     subcategory whose parent is the resolved category. A name match under
//     the wrong parent does not resolve; neither does any subcategory when
//     the category itself did not resolve.
//   - related_unit_id resolves by exact unit name; unmatched cross-tags are
//     dropped without erroring the segment.
//
// Duplicate names in the taxonomy resolve to the first match (uniqueness is
// guaranteed upstream by the taxonomy store). An empty taxonomy resolves
// every segment to all-nil identifiers.
func Segments(segments []models.Segment, taxonomy models.Taxonomy, units []models.OrganizationUnit) []models.ReconciledSegment {
	out := make([]models.ReconciledSegment, 0, len(segments))
	for _, seg := range segments {
		out = append(out, one(seg, taxonomy, units))
	}
	return out
}

func one(seg models.Segment, taxonomy models.Taxonomy, units []models.OrganizationUnit) models.ReconciledSegment {
	rec := models.ReconciledSegment{Segment: seg}

	cat, found := taxonomy.CategoryByName(seg.CategoryName)
	if !found {
		return resolveUnit(rec, units)
	}
	id := cat.ID
	rec.CategoryID = &id

	if seg.SubCategoryName != "" {
		if sub, ok := taxonomy.SubcategoryByName(cat.ID, seg.SubCategoryName); ok {
			subID := sub.ID
			rec.SubcategoryID = &subID
		}
	}

	return resolveUnit(rec, units)
}

func resolveUnit(rec models.ReconciledSegment, units []models.OrganizationUnit) models.ReconciledSegment {
	if rec.RelatedUnitName == "" {
		return rec
	}
	if unit, ok := models.UnitByName(units, rec.RelatedUnitName); ok {
		id := unit.ID
		rec.RelatedUnitID = &id
	} else {
		// Unmatched cross-tag: drop the tag, keep the segment.
		rec.RelatedUnitName = ""
	}
	return rec
}
