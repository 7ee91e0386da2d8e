package catalog

import (
	"testing"

	"github.com/finrefdata/secsync/internal/model"
)

func desc(externalID, symbol string) model.SecurityDescriptor {
	return model.SecurityDescriptor{ExternalID: externalID, Symbol: symbol, Enabled: true}
}

func ref(id int64, symbol, externalID string) model.CatalogRef {
	return model.CatalogRef{SecurityID: id, CurrentSymbol: symbol, ExternalID: externalID}
}

func TestBuildPlan_Rename(t *testing.T) {
	universe := []model.SecurityDescriptor{desc("ext-1", "AAA"), desc("ext-2", "BBB")}
	snapshot := []model.CatalogRef{ref(1, "AAA", "ext-1"), ref(2, "CCC", "ext-2")}

	plan := BuildPlan(universe, snapshot)

	if len(plan.Renamed) != 1 {
		t.Fatalf("Renamed = %v, want one entry", plan.Renamed)
	}
	rn := plan.Renamed[0]
	if rn.SecurityID != 2 || rn.OldSymbol != "CCC" || rn.NewSymbol != "BBB" {
		t.Errorf("Renamed[0] = %+v, want {2 CCC BBB}", rn)
	}
	if len(plan.New) != 0 || len(plan.Deprecated) != 0 {
		t.Errorf("unexpected New=%v Deprecated=%v", plan.New, plan.Deprecated)
	}
	if plan.Unchanged["AAA"] != 1 || len(plan.Unchanged) != 1 {
		t.Errorf("Unchanged = %v, want {AAA:1}", plan.Unchanged)
	}
}

func TestBuildPlan_NewListing(t *testing.T) {
	universe := []model.SecurityDescriptor{desc("ext-1", "AAA"), desc("ext-3", "DDD")}
	snapshot := []model.CatalogRef{ref(1, "AAA", "ext-1")}

	plan := BuildPlan(universe, snapshot)

	if len(plan.New) != 1 || plan.New[0].Symbol != "DDD" {
		t.Fatalf("New = %v, want one entry for DDD", plan.New)
	}
	if len(plan.Renamed) != 0 || len(plan.Deprecated) != 0 {
		t.Errorf("unexpected Renamed=%v Deprecated=%v", plan.Renamed, plan.Deprecated)
	}
}

func TestBuildPlan_Deprecation(t *testing.T) {
	universe := []model.SecurityDescriptor{desc("ext-1", "AAA")}
	snapshot := []model.CatalogRef{ref(1, "AAA", "ext-1"), ref(4, "EEE", "ext-4")}

	plan := BuildPlan(universe, snapshot)

	if len(plan.Deprecated) != 1 || plan.Deprecated[0] != 4 {
		t.Fatalf("Deprecated = %v, want [4]", plan.Deprecated)
	}
	if _, ok := plan.Unchanged["EEE"]; ok {
		t.Errorf("deprecated symbol must not appear in Unchanged")
	}
}

// Every external id present on either side lands in exactly one partition.
func TestBuildPlan_PartitionsExhaustiveAndDisjoint(t *testing.T) {
	universe := []model.SecurityDescriptor{
		desc("ext-1", "AAA"), // unchanged
		desc("ext-2", "BBB"), // renamed from CCC
		desc("ext-3", "DDD"), // new
	}
	snapshot := []model.CatalogRef{
		ref(1, "AAA", "ext-1"),
		ref(2, "CCC", "ext-2"),
		ref(4, "EEE", "ext-4"), // deprecated
	}

	plan := BuildPlan(universe, snapshot)

	count := make(map[string]int)
	for sym := range plan.Unchanged {
		switch sym {
		case "AAA":
			count["ext-1"]++
		default:
			t.Errorf("unexpected unchanged symbol %q", sym)
		}
	}
	for _, rn := range plan.Renamed {
		if rn.SecurityID == 2 {
			count["ext-2"]++
		}
	}
	for _, d := range plan.New {
		count[d.ExternalID]++
	}
	for _, id := range plan.Deprecated {
		if id == 4 {
			count["ext-4"]++
		}
	}

	for _, extID := range []string{"ext-1", "ext-2", "ext-3", "ext-4"} {
		if count[extID] != 1 {
			t.Errorf("external id %s appears in %d partitions, want 1", extID, count[extID])
		}
	}
}

func TestBuildPlan_EmptySides(t *testing.T) {
	plan := BuildPlan(nil, nil)
	if len(plan.Renamed)+len(plan.New)+len(plan.Deprecated)+len(plan.Unchanged) != 0 {
		t.Errorf("empty join produced mutations: %+v", plan)
	}

	plan = BuildPlan([]model.SecurityDescriptor{desc("ext-9", "ZZZ")}, nil)
	if len(plan.New) != 1 {
		t.Errorf("empty catalog: New = %v, want one entry", plan.New)
	}

	plan = BuildPlan(nil, []model.CatalogRef{ref(7, "GGG", "ext-7")})
	if len(plan.Deprecated) != 1 || plan.Deprecated[0] != 7 {
		t.Errorf("empty universe: Deprecated = %v, want [7]", plan.Deprecated)
	}
}
