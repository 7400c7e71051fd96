package sm2

import "testing"

func TestFuzzDeltaSingleBand(t *testing.T) {
	// interval=3 → only [2.5, 7) band: factor=0.15
	// delta = 1.0 + 0.15 * (min(3, 7) - 2.5) = 1.075
	assertFloat(t, "fuzzDelta(3)", fuzzDelta(3.0), 1.075)
}

func TestFuzzDeltaTwoBands(t *testing.T) {
	// band1: 0.15 * 4.5 = 0.675, band2: 0.10 * (10 - 7) = 0.3
	assertFloat(t, "fuzzDelta(10)", fuzzDelta(10.0), 1.975)
}

func TestFuzzDeltaThreeBands(t *testing.T) {
	// 1.0 + 0.675 + 1.3 + 0.05 * (50 - 20)
	assertFloat(t, "fuzzDelta(50)", fuzzDelta(50.0), 4.475)
}

func TestFuzzUnitRange(t *testing.T) {
	for id := int64(-50); id < 50; id++ {
		for n := 0; n < 10; n++ {
			u := fuzzUnit(id, n)
			if u < 0 || u >= 1 {
				t.Fatalf("fuzzUnit(%d, %d) = %v, want [0, 1)", id, n, u)
			}
		}
	}
}

func TestFuzzUnitDeterministic(t *testing.T) {
	if fuzzUnit(7, 3) != fuzzUnit(7, 3) {
		t.Error("fuzzUnit not deterministic")
	}
	if fuzzUnit(7, 3) == fuzzUnit(7, 4) && fuzzUnit(7, 3) == fuzzUnit(8, 3) {
		t.Error("fuzzUnit ignores its inputs")
	}
}

func TestApplyFuzzSmallIntervalUnchanged(t *testing.T) {
	for _, ivl := range []int{1, 2} {
		if got := applyFuzz(ivl, 36500, 0.99); got != ivl {
			t.Errorf("applyFuzz(%d) = %d, want %d", ivl, got, ivl)
		}
	}
}

func TestApplyFuzzBounds(t *testing.T) {
	// interval=10, delta=1.975 → [8, 12]
	if got := applyFuzz(10, 36500, 0); got != 8 {
		t.Errorf("applyFuzz(10, u=0) = %d, want 8", got)
	}
	if got := applyFuzz(10, 36500, 0.999999); got != 12 {
		t.Errorf("applyFuzz(10, u≈1) = %d, want 12", got)
	}
	for i := 0; i < 100; i++ {
		got := applyFuzz(10, 36500, fuzzUnit(int64(i), 2))
		if got < 8 || got > 12 {
			t.Errorf("applyFuzz(10) = %d, expected [8, 12]", got)
		}
	}
}

func TestApplyFuzzMaxIvlClamp(t *testing.T) {
	// interval=50, delta=4.475, maxIvl=48 → [46, 48]
	for i := 0; i < 100; i++ {
		got := applyFuzz(50, 48, fuzzUnit(int64(i), 0))
		if got < 46 || got > 48 {
			t.Errorf("applyFuzz(50, maxIvl=48) = %d, expected [46, 48]", got)
		}
	}
}

func TestApplyFuzzInterval3(t *testing.T) {
	// interval=3, delta=1.075 → [2, 4]
	for i := 0; i < 100; i++ {
		got := applyFuzz(3, 36500, fuzzUnit(int64(i), 1))
		if got < 2 || got > 4 {
			t.Errorf("applyFuzz(3) = %d, expected [2, 4]", got)
		}
	}
}
