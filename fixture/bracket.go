package fixture

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Polilla23/kempes-server/models"
)

type sideKind int

const (
	sideUnset sideKind = iota
	sideDirect
	sideFromGroup
	sideFromMatch
)

// Side describes where one slot of a knockout match gets its club from.
// Exactly one variant is active; use the constructors.
type Side struct {
	kind           sideKind
	clubID         int
	groupRef       string
	sourceRound    models.KnockoutRound
	sourcePosition int
	take           models.SourcePosition
}

// Direct seeds a slot with a club known up front.
func Direct(clubID int) Side {
	return Side{kind: sideDirect, clubID: clubID}
}

// FromGroup seeds a slot with a group-ranking reference such as
// "GROUP_A_1", kept as placeholder text until qualification is fed in.
func FromGroup(ref string) Side {
	return Side{kind: sideFromGroup, groupRef: ref}
}

// FromMatch seeds a slot with the winner or loser of another slot in
// the same bracket.
func FromMatch(round models.KnockoutRound, position int, take models.SourcePosition) Side {
	return Side{kind: sideFromMatch, sourceRound: round, sourcePosition: position, take: take}
}

// Slot is one knockout match to be built. Position is 1-based within
// the round.
type Slot struct {
	Round    models.KnockoutRound
	Position int
	Home     Side
	Away     Side
}

// SlotKey identifies a slot within a bracket.
type SlotKey struct {
	Round    models.KnockoutRound
	Position int
}

// BuildBracket turns slots into Plans ordered so that every from-match
// reference points at an earlier element of the result. The returned
// map resolves (round, position) to the index of the corresponding
// Plan, which the caller needs to substitute persisted ids into later
// Plans' source references. The knockout matchday equals the round
// rank. Any unresolvable reference fails with ErrInvalidBracket before
// anything is emitted for persistence.
func BuildBracket(slots []Slot) ([]*Plan, map[SlotKey]int, error) {
	if len(slots) == 0 {
		return nil, nil, fmt.Errorf("%w: no slots", ErrInvalidBracket)
	}

	ordered := make([]Slot, len(slots))
	copy(ordered, slots)
	for _, slot := range ordered {
		if _, ok := slot.Round.Rank(); !ok {
			return nil, nil, fmt.Errorf("%w: unknown round %q", ErrInvalidBracket, slot.Round)
		}
		if slot.Position < 1 {
			return nil, nil, fmt.Errorf("%w: slot position %d in round %s must be >= 1", ErrInvalidBracket, slot.Position, slot.Round)
		}
	}

	// Earlier rounds first (higher rank), positions ascending within a
	// round. Filling the index map in this order makes any forward or
	// cyclic from-match reference a lookup miss.
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, _ := ordered[i].Round.Rank()
		rj, _ := ordered[j].Round.Rank()
		if ri != rj {
			return ri > rj
		}
		return ordered[i].Position < ordered[j].Position
	})

	index := make(map[SlotKey]int, len(ordered))
	plans := make([]*Plan, 0, len(ordered))

	for _, slot := range ordered {
		key := SlotKey{Round: slot.Round, Position: slot.Position}
		if _, dup := index[key]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate slot %s #%d", ErrInvalidBracket, slot.Round, slot.Position)
		}

		rank, _ := slot.Round.Rank()
		plan := &Plan{
			Stage:    models.StageKnockout,
			Matchday: rank,
		}

		if err := applySide(plan, slot.Home, true, index); err != nil {
			return nil, nil, err
		}
		if err := applySide(plan, slot.Away, false, index); err != nil {
			return nil, nil, err
		}

		index[key] = len(plans)
		plans = append(plans, plan)
	}

	return plans, index, nil
}

func applySide(plan *Plan, side Side, home bool, index map[SlotKey]int) error {
	switch side.kind {
	case sideDirect:
		club := side.clubID
		if home {
			plan.HomeClubID = &club
		} else {
			plan.AwayClubID = &club
		}
	case sideFromGroup:
		if side.groupRef == "" {
			return fmt.Errorf("%w: empty group reference", ErrInvalidBracket)
		}
		ref := side.groupRef
		if home {
			plan.HomePlaceholder = &ref
		} else {
			plan.AwayPlaceholder = &ref
		}
	case sideFromMatch:
		if side.take != models.SourceWinner && side.take != models.SourceLoser {
			return fmt.Errorf("%w: source position must be winner or loser", ErrInvalidBracket)
		}
		srcKey := SlotKey{Round: side.sourceRound, Position: side.sourcePosition}
		srcIndex, ok := index[srcKey]
		if !ok {
			return fmt.Errorf("%w: source match %s #%d not built yet (missing slot or dependency cycle)",
				ErrInvalidBracket, side.sourceRound, side.sourcePosition)
		}
		text := fmt.Sprintf("%s_%s_%d", strings.ToUpper(string(side.take)), side.sourceRound, side.sourcePosition)
		ref := SourceRef{Index: srcIndex, Position: side.take}
		if home {
			plan.HomePlaceholder = &text
			plan.HomeSource = &ref
		} else {
			plan.AwayPlaceholder = &text
			plan.AwaySource = &ref
		}
	default:
		return fmt.Errorf("%w: slot side not specified", ErrInvalidBracket)
	}
	return nil
}
