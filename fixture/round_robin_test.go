package fixture

import (
	"testing"
)

type pair struct {
	a, b int
}

func normalizePair(a, b int) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

func sequence(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i + 1
	}
	return ids
}

func TestRoundRobinCompleteness(t *testing.T) {
	for _, n := range []int{2, 4, 6, 8, 10} {
		plans, err := RoundRobin(sequence(n), false)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}

		wantMatches := n * (n - 1) / 2
		if len(plans) != wantMatches {
			t.Errorf("n=%d: got %d matches, want %d", n, len(plans), wantMatches)
		}

		perRound := make(map[int]int)
		pairs := make(map[pair]int)
		for _, plan := range plans {
			if plan.HomeClubID == nil || plan.AwayClubID == nil {
				t.Fatalf("n=%d: league match has unset side", n)
			}
			perRound[plan.Matchday]++
			pairs[normalizePair(*plan.HomeClubID, *plan.AwayClubID)]++
		}

		if len(perRound) != n-1 {
			t.Errorf("n=%d: got %d rounds, want %d", n, len(perRound), n-1)
		}
		for round, count := range perRound {
			if count != n/2 {
				t.Errorf("n=%d: round %d has %d matches, want %d", n, round, count, n/2)
			}
		}
		for p, count := range pairs {
			if count != 1 {
				t.Errorf("n=%d: pair %v met %d times", n, p, count)
			}
		}
	}
}

func TestRoundRobinDoubleRound(t *testing.T) {
	n := 6
	plans, err := RoundRobin(sequence(n), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plans) != n*(n-1) {
		t.Fatalf("got %d matches, want %d", len(plans), n*(n-1))
	}

	rounds := n - 1
	type fix struct {
		home, away int
	}
	firstPass := make(map[int][]fix)
	for _, plan := range plans {
		if plan.Matchday <= rounds {
			firstPass[plan.Matchday] = append(firstPass[plan.Matchday], fix{*plan.HomeClubID, *plan.AwayClubID})
		}
	}

	for _, plan := range plans {
		if plan.Matchday <= rounds {
			continue
		}
		mirrorRound := plan.Matchday - rounds
		found := false
		for _, m := range firstPass[mirrorRound] {
			if m.home == *plan.AwayClubID && m.away == *plan.HomeClubID {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("matchday %d match %d-%d has no mirrored counterpart in matchday %d",
				plan.Matchday, *plan.HomeClubID, *plan.AwayClubID, mirrorRound)
		}
	}

	if maxDay := plans[len(plans)-1].Matchday; maxDay != 2*rounds {
		t.Errorf("last matchday = %d, want %d", maxDay, 2*rounds)
	}
}

func TestRoundRobinKnownSequence(t *testing.T) {
	// Four clubs, double round: the circle rotation must reproduce this
	// exact pairing order.
	plans, err := RoundRobin([]int{1, 2, 3, 4}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		matchday   int
		home, away int
	}{
		{1, 1, 4}, {1, 2, 3},
		{2, 1, 3}, {2, 4, 2},
		{3, 1, 2}, {3, 3, 4},
		{4, 4, 1}, {4, 3, 2},
		{5, 3, 1}, {5, 2, 4},
		{6, 2, 1}, {6, 4, 3},
	}

	if len(plans) != len(want) {
		t.Fatalf("got %d matches, want %d", len(plans), len(want))
	}
	for i, w := range want {
		got := plans[i]
		if got.Matchday != w.matchday || *got.HomeClubID != w.home || *got.AwayClubID != w.away {
			t.Errorf("match %d: got matchday %d %d-%d, want matchday %d %d-%d",
				i, got.Matchday, *got.HomeClubID, *got.AwayClubID, w.matchday, w.home, w.away)
		}
	}
}

func TestRoundRobinOddParticipants(t *testing.T) {
	// Five clubs: padded with a bye, so five rounds of two matches and
	// every club rests exactly once.
	plans, err := RoundRobin(sequence(5), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plans) != 10 {
		t.Fatalf("got %d matches, want 10", len(plans))
	}

	perRound := make(map[int]int)
	appearances := make(map[int]int)
	pairs := make(map[pair]int)
	for _, plan := range plans {
		perRound[plan.Matchday]++
		appearances[*plan.HomeClubID]++
		appearances[*plan.AwayClubID]++
		pairs[normalizePair(*plan.HomeClubID, *plan.AwayClubID)]++
	}

	if len(perRound) != 5 {
		t.Errorf("got %d rounds, want 5", len(perRound))
	}
	for round, count := range perRound {
		if count != 2 {
			t.Errorf("round %d has %d matches, want 2", round, count)
		}
	}
	for club, count := range appearances {
		if count != 4 {
			t.Errorf("club %d plays %d matches, want 4", club, count)
		}
	}
	for p, count := range pairs {
		if count != 1 {
			t.Errorf("pair %v met %d times", p, count)
		}
	}
}

func TestRoundRobinInvalidInput(t *testing.T) {
	t.Run("too few participants", func(t *testing.T) {
		if _, err := RoundRobin([]int{1}, false); err == nil {
			t.Error("expected error for a single participant")
		}
	})
	t.Run("duplicate participants", func(t *testing.T) {
		if _, err := RoundRobin([]int{1, 2, 2, 3}, false); err == nil {
			t.Error("expected error for duplicate participants")
		}
	})
}
