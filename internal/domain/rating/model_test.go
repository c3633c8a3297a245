package rating

import "testing"

func TestRating_Validate(t *testing.T) {
	t.Parallel()

	base := Rating{LeagueID: "lg", RaterID: "a", PlayerID: "b", Score: 4}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid rating: %v", err)
	}

	self := base
	self.PlayerID = "a"
	if err := self.Validate(); err == nil {
		t.Fatalf("expected self rating to fail")
	}

	for _, score := range []int{0, 6} {
		r := base
		r.Score = score
		if err := r.Validate(); err == nil {
			t.Fatalf("expected score %d to fail", score)
		}
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	got := Summarize("lg", "b", []Rating{
		{LeagueID: "lg", RaterID: "a", PlayerID: "b", Score: 5},
		{LeagueID: "lg", RaterID: "c", PlayerID: "b", Score: 2},
		{LeagueID: "other", RaterID: "c", PlayerID: "b", Score: 1},
	})
	if got.Count != 2 || got.Average != 3.5 {
		t.Fatalf("unexpected summary %+v", got)
	}

	if empty := Summarize("lg", "z", nil); empty.Count != 0 || empty.Average != 0 {
		t.Fatalf("unexpected empty summary %+v", empty)
	}
}
