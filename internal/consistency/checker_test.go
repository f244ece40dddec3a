package consistency

import "testing"

func TestScore(t *testing.T) {
	cases := []struct {
		name    string
		total   int64
		cleared int64
		blocked int64
		want    float64
	}{
		{"all healthy", 100, 100, 0, 2},
		{"no orders", 0, 0, 0, 1.5},
		{"everything blocked", 10, 0, 10, 0.5},
		{"half cleared", 100, 50, 0, 1.75},
	}
	for _, c := range cases {
		if got := Score(c.total, c.cleared, c.blocked); got != c.want {
			t.Fatalf("%s: Score(%d, %d, %d) = %v, want %v", c.name, c.total, c.cleared, c.blocked, got, c.want)
		}
	}
}

func TestScoreClampsToRange(t *testing.T) {
	if got := Score(10, 0, 100); got != 0 {
		t.Fatalf("expected floor at 0, got %v", got)
	}
	if got := Score(10, 10, 0); got != 2 {
		t.Fatalf("expected ceiling at 2, got %v", got)
	}
}
