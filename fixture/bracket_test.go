package fixture

import (
	"errors"
	"testing"

	"github.com/Polilla23/kempes-server/models"
)

func TestBuildBracketOrderingAndPlaceholders(t *testing.T) {
	// Slots deliberately out of order: the builder must sort earlier
	// rounds first regardless of input order.
	slots := []Slot{
		{Round: models.Finals, Position: 1,
			Home: FromMatch(models.SemiFinals, 1, models.SourceWinner),
			Away: FromMatch(models.SemiFinals, 2, models.SourceWinner)},
		{Round: models.SemiFinals, Position: 2,
			Home: FromMatch(models.QuarterFinals, 3, models.SourceWinner),
			Away: FromMatch(models.QuarterFinals, 4, models.SourceWinner)},
		{Round: models.QuarterFinals, Position: 1, Home: Direct(11), Away: FromGroup("GROUP_A_2")},
		{Round: models.QuarterFinals, Position: 2, Home: FromGroup("GROUP_B_1"), Away: Direct(12)},
		{Round: models.QuarterFinals, Position: 3, Home: Direct(13), Away: Direct(14)},
		{Round: models.QuarterFinals, Position: 4, Home: Direct(15), Away: Direct(16)},
		{Round: models.SemiFinals, Position: 1,
			Home: FromMatch(models.QuarterFinals, 1, models.SourceWinner),
			Away: FromMatch(models.QuarterFinals, 2, models.SourceWinner)},
	}

	plans, index, err := BuildBracket(slots)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plans) != len(slots) {
		t.Fatalf("got %d plans, want %d", len(plans), len(slots))
	}

	t.Run("rounds emitted earliest first", func(t *testing.T) {
		lastRank := 1 << 10
		for i, plan := range plans {
			if plan.Matchday > lastRank {
				t.Errorf("plan %d (matchday %d) emitted after a later round (matchday %d)", i, plan.Matchday, lastRank)
			}
			lastRank = plan.Matchday
		}
	})

	t.Run("source references point backwards", func(t *testing.T) {
		for i, plan := range plans {
			if plan.HomeSource != nil && plan.HomeSource.Index >= i {
				t.Errorf("plan %d home source index %d is not strictly earlier", i, plan.HomeSource.Index)
			}
			if plan.AwaySource != nil && plan.AwaySource.Index >= i {
				t.Errorf("plan %d away source index %d is not strictly earlier", i, plan.AwaySource.Index)
			}
		}
	})

	t.Run("index map matches output positions", func(t *testing.T) {
		if len(index) != len(plans) {
			t.Fatalf("index has %d entries, want %d", len(index), len(plans))
		}
		final := plans[index[SlotKey{Round: models.Finals, Position: 1}]]
		sf1 := index[SlotKey{Round: models.SemiFinals, Position: 1}]
		if final.HomeSource == nil || final.HomeSource.Index != sf1 {
			t.Errorf("final home source does not point at semifinal 1")
		}
	})

	t.Run("placeholders and matchdays", func(t *testing.T) {
		qf1 := plans[index[SlotKey{Round: models.QuarterFinals, Position: 1}]]
		if qf1.Matchday != 8 {
			t.Errorf("quarterfinal matchday = %d, want 8", qf1.Matchday)
		}
		if qf1.HomeClubID == nil || *qf1.HomeClubID != 11 {
			t.Errorf("direct side not set on quarterfinal 1")
		}
		if qf1.AwayPlaceholder == nil || *qf1.AwayPlaceholder != "GROUP_A_2" {
			t.Errorf("group placeholder = %v, want GROUP_A_2", qf1.AwayPlaceholder)
		}
		if qf1.AwaySource != nil {
			t.Errorf("group-fed side must not carry a source reference")
		}

		sf1 := plans[index[SlotKey{Round: models.SemiFinals, Position: 1}]]
		if sf1.Matchday != 4 {
			t.Errorf("semifinal matchday = %d, want 4", sf1.Matchday)
		}
		if sf1.HomePlaceholder == nil || *sf1.HomePlaceholder != "WINNER_QUARTER_FINALS_1" {
			t.Errorf("semifinal home placeholder = %v, want WINNER_QUARTER_FINALS_1", sf1.HomePlaceholder)
		}
		if sf1.HomeClubID != nil {
			t.Errorf("match-fed side must not carry a club")
		}

		final := plans[index[SlotKey{Round: models.Finals, Position: 1}]]
		if final.Matchday != 2 {
			t.Errorf("final matchday = %d, want 2", final.Matchday)
		}
	})
}

func TestBuildBracketLoserRoute(t *testing.T) {
	slots := []Slot{
		{Round: models.SemiFinals, Position: 1, Home: Direct(1), Away: Direct(2)},
		{Round: models.SemiFinals, Position: 2, Home: Direct(3), Away: Direct(4)},
		// Third-place playoff fed by the semifinal losers.
		{Round: models.Finals, Position: 2,
			Home: FromMatch(models.SemiFinals, 1, models.SourceLoser),
			Away: FromMatch(models.SemiFinals, 2, models.SourceLoser)},
		{Round: models.Finals, Position: 1,
			Home: FromMatch(models.SemiFinals, 1, models.SourceWinner),
			Away: FromMatch(models.SemiFinals, 2, models.SourceWinner)},
	}

	plans, index, err := BuildBracket(slots)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	third := plans[index[SlotKey{Round: models.Finals, Position: 2}]]
	if third.HomePlaceholder == nil || *third.HomePlaceholder != "LOSER_SEMI_FINALS_1" {
		t.Errorf("third place home placeholder = %v, want LOSER_SEMI_FINALS_1", third.HomePlaceholder)
	}
	if third.HomeSource == nil || third.HomeSource.Position != models.SourceLoser {
		t.Errorf("third place home source position is not loser")
	}
}

func TestBuildBracketConfigurationErrors(t *testing.T) {
	t.Run("missing source slot", func(t *testing.T) {
		slots := []Slot{
			{Round: models.Finals, Position: 1,
				Home: FromMatch(models.SemiFinals, 1, models.SourceWinner),
				Away: Direct(2)},
		}
		_, _, err := BuildBracket(slots)
		if !errors.Is(err, ErrInvalidBracket) {
			t.Errorf("got %v, want ErrInvalidBracket", err)
		}
	})

	t.Run("cycle inside a round", func(t *testing.T) {
		slots := []Slot{
			{Round: models.SemiFinals, Position: 1,
				Home: FromMatch(models.SemiFinals, 2, models.SourceWinner),
				Away: Direct(1)},
			{Round: models.SemiFinals, Position: 2,
				Home: FromMatch(models.SemiFinals, 1, models.SourceWinner),
				Away: Direct(2)},
		}
		_, _, err := BuildBracket(slots)
		if !errors.Is(err, ErrInvalidBracket) {
			t.Errorf("got %v, want ErrInvalidBracket", err)
		}
	})

	t.Run("reference to a later round", func(t *testing.T) {
		slots := []Slot{
			{Round: models.SemiFinals, Position: 1,
				Home: FromMatch(models.Finals, 1, models.SourceLoser),
				Away: Direct(1)},
			{Round: models.Finals, Position: 1, Home: Direct(2), Away: Direct(3)},
		}
		_, _, err := BuildBracket(slots)
		if !errors.Is(err, ErrInvalidBracket) {
			t.Errorf("got %v, want ErrInvalidBracket", err)
		}
	})

	t.Run("unknown round", func(t *testing.T) {
		slots := []Slot{
			{Round: models.KnockoutRound("PRELIMINARY"), Position: 1, Home: Direct(1), Away: Direct(2)},
		}
		_, _, err := BuildBracket(slots)
		if !errors.Is(err, ErrInvalidBracket) {
			t.Errorf("got %v, want ErrInvalidBracket", err)
		}
	})

	t.Run("duplicate slot", func(t *testing.T) {
		slots := []Slot{
			{Round: models.Finals, Position: 1, Home: Direct(1), Away: Direct(2)},
			{Round: models.Finals, Position: 1, Home: Direct(3), Away: Direct(4)},
		}
		_, _, err := BuildBracket(slots)
		if !errors.Is(err, ErrInvalidBracket) {
			t.Errorf("got %v, want ErrInvalidBracket", err)
		}
	})

	t.Run("unset side", func(t *testing.T) {
		slots := []Slot{
			{Round: models.Finals, Position: 1, Home: Direct(1)},
		}
		_, _, err := BuildBracket(slots)
		if !errors.Is(err, ErrInvalidBracket) {
			t.Errorf("got %v, want ErrInvalidBracket", err)
		}
	})

	t.Run("empty slot list", func(t *testing.T) {
		_, _, err := BuildBracket(nil)
		if !errors.Is(err, ErrInvalidBracket) {
			t.Errorf("got %v, want ErrInvalidBracket", err)
		}
	})
}
