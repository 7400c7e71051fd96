package sm2

import (
	"encoding/json"
	"testing"
)

func TestStageOf(t *testing.T) {
	tests := []struct {
		name string
		item ReviewItem
		want Stage
	}{
		{"new item", NewItem(1, t0), Unreviewed},
		{"short interval", ReviewItem{ReviewCount: 2, MasteryLevel: 55, IntervalDays: 6}, Young},
		{"just below mature", ReviewItem{ReviewCount: 4, MasteryLevel: 85, IntervalDays: 20}, Young},
		{"mature", ReviewItem{ReviewCount: 4, MasteryLevel: 85, IntervalDays: 21}, Mature},
		{"mastered wins", ReviewItem{ReviewCount: 5, MasteryLevel: 100, IntervalDays: 3}, Mastered},
		{"mastered unreviewed", ReviewItem{MasteryLevel: 100}, Mastered},
	}
	for _, tt := range tests {
		if got := StageOf(tt.item); got != tt.want {
			t.Errorf("%s: StageOf = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestStageString(t *testing.T) {
	if got := Mature.String(); got != "Mature" {
		t.Errorf("Mature.String() = %q", got)
	}
	if got := Stage(0).String(); got != "Stage(0)" {
		t.Errorf("Stage(0).String() = %q", got)
	}
}

func TestStageJSON(t *testing.T) {
	for _, s := range []Stage{Unreviewed, Young, Mature, Mastered} {
		data, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("json.Marshal(%v): %v", s, err)
		}
		var got Stage
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("json.Unmarshal(%s): %v", data, err)
		}
		if got != s {
			t.Errorf("round trip %v → %v", s, got)
		}
	}
	if _, err := json.Marshal(Stage(9)); err == nil {
		t.Error("json.Marshal(Stage(9)) should fail")
	}
	var s Stage
	if err := json.Unmarshal([]byte(`"Learning"`), &s); err == nil {
		t.Error(`json.Unmarshal("Learning") should fail`)
	}
}
