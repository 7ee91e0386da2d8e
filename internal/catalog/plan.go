package catalog

import "github.com/finrefdata/secsync/internal/model"

// BuildPlan computes the full outer join between the provider universe and
// the catalog snapshot on external id, partitioning every id into exactly one
// of Renamed, New, Deprecated, or Unchanged.
func BuildPlan(universe []model.SecurityDescriptor, snapshot []model.CatalogRef) model.ReconciliationPlan {
	plan := model.ReconciliationPlan{
		Unchanged: make(map[string]int64),
	}

	byExternalID := make(map[string]model.CatalogRef, len(snapshot))
	for _, ref := range snapshot {
		byExternalID[ref.ExternalID] = ref
	}

	seen := make(map[string]bool, len(universe))
	for _, desc := range universe {
		ref, ok := byExternalID[desc.ExternalID]
		if !ok {
			plan.New = append(plan.New, desc)
			continue
		}
		seen[desc.ExternalID] = true

		if ref.CurrentSymbol != desc.Symbol {
			plan.Renamed = append(plan.Renamed, model.Rename{
				SecurityID: ref.SecurityID,
				OldSymbol:  ref.CurrentSymbol,
				NewSymbol:  desc.Symbol,
			})
		} else {
			plan.Unchanged[desc.Symbol] = ref.SecurityID
		}
	}

	for _, ref := range snapshot {
		if !seen[ref.ExternalID] {
			plan.Deprecated = append(plan.Deprecated, ref.SecurityID)
		}
	}

	return plan
}
