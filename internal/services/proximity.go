package services

import (
	"cmp"
	"slices"

	"ngo-directory-service/internal/domain"
	"ngo-directory-service/internal/geo"
)

// Rank annotates every record with its distance from reference and sorts the
// result ascending by distance.
//
// No record is ever filtered out. Ties keep their input order (stable sort);
// there is no secondary key. The input slice is not modified.
func Rank(reference domain.Coordinate, records []domain.NgoRecord) []domain.RankedNgo {
	ranked := make([]domain.RankedNgo, 0, len(records))
	for _, r := range records {
		ranked = append(ranked, domain.RankedNgo{
			NgoRecord:  r,
			DistanceKm: geo.Distance(reference, r.Location),
		})
	}

	slices.SortStableFunc(ranked, func(a, b domain.RankedNgo) int {
		return cmp.Compare(a.DistanceKm, b.DistanceKm)
	})

	return ranked
}
