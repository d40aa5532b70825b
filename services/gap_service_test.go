package services

import "testing"

func TestAnalyzeGapsKnownScenario(t *testing.T) {
	gaps := AnalyzeGaps(
		map[string]float64{"calories": 1000},
		map[string]float64{"calories": 1800},
	)
	if len(gaps) != 1 {
		t.Fatalf("got %d gaps, want 1", len(gaps))
	}
	g := gaps[0]
	if g.Nutrient != "calories" || g.Current != 1000 || g.Target != 1800 || g.Deficit != 800 {
		t.Errorf("gap = %+v", g)
	}
	if g.Percentage != 56 {
		t.Errorf("percentage = %d, want 56", g.Percentage)
	}
}

func TestAnalyzeGapsZeroTargetDoesNotPanic(t *testing.T) {
	gaps := AnalyzeGaps(map[string]float64{}, map[string]float64{"calories": 0})
	if len(gaps) != 0 {
		t.Fatalf("zero target produced gaps: %+v", gaps)
	}
}

func TestAnalyzeGapsOnlyPositiveDeficitsSortedDescending(t *testing.T) {
	gaps := AnalyzeGaps(
		map[string]float64{"calories": 2000, "protein_g": 10, "fiber_g": 2},
		map[string]float64{"calories": 1800, "protein_g": 60, "fiber_g": 12, "iron_mg": 8},
	)

	for _, g := range gaps {
		if g.Deficit <= 0 {
			t.Errorf("non-positive deficit in result: %+v", g)
		}
		if g.Nutrient == "calories" {
			t.Errorf("overshot nutrient included: %+v", g)
		}
	}
	for i := 1; i < len(gaps); i++ {
		if gaps[i].Deficit > gaps[i-1].Deficit {
			t.Errorf("gaps not sorted: %f after %f", gaps[i].Deficit, gaps[i-1].Deficit)
		}
	}
	if len(gaps) != 3 {
		t.Fatalf("got %d gaps, want 3", len(gaps))
	}
	if gaps[0].Nutrient != "protein_g" {
		t.Errorf("largest deficit should rank first, got %s", gaps[0].Nutrient)
	}
}

func TestAnalyzeGapsDefaultBaseline(t *testing.T) {
	gaps := AnalyzeGaps(map[string]float64{}, nil)
	if len(gaps) != len(baselineTargets) {
		t.Fatalf("got %d gaps, want %d", len(gaps), len(baselineTargets))
	}
	if gaps[0].Nutrient != "calories" {
		t.Errorf("expected calories as the largest baseline deficit, got %s", gaps[0].Nutrient)
	}
	for _, g := range gaps {
		if g.Percentage != 0 {
			t.Errorf("empty intake should read 0%%, got %d for %s", g.Percentage, g.Nutrient)
		}
	}
}

func TestAnalyzeGapsPercentageCapped(t *testing.T) {
	gaps := AnalyzeGaps(
		map[string]float64{"fiber_g": 11.9},
		map[string]float64{"fiber_g": 12},
	)
	if len(gaps) != 1 {
		t.Fatalf("got %d gaps, want 1", len(gaps))
	}
	if gaps[0].Percentage != 99 {
		t.Errorf("percentage = %d, want 99", gaps[0].Percentage)
	}
}
