package handlers

import (
	"fmt"
	"net/http"

	"github.com/Polilla23/kempes-server/fixture"
	"github.com/Polilla23/kempes-server/models"
	"github.com/Polilla23/kempes-server/services"
)

type FixtureHandler struct {
	fixtureService services.FixtureService
}

func NewFixtureHandler(fixtureService services.FixtureService) *FixtureHandler {
	return &FixtureHandler{fixtureService: fixtureService}
}

type createLeagueFixtureInput struct {
	ParticipantIDs []int `json:"participant_ids"`
	DoubleRound    bool  `json:"double_round"`
}

func (h *FixtureHandler) CreateLeagueFixture(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input createLeagueFixtureInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	created, err := h.fixtureService.CreateLeagueFixture(r.Context(), competitionID, input.ParticipantIDs, input.DoubleRound)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches_created": created}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type createGroupFixturesInput struct {
	Groups []services.GroupInput `json:"groups"`
}

func (h *FixtureHandler) CreateGroupStageFixtures(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input createGroupFixturesInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	created, err := h.fixtureService.CreateGroupStageFixtures(r.Context(), competitionID, input.Groups)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches_created": created}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type bracketSideInput struct {
	Type           string  `json:"type"` // direct | from_group | from_match
	ClubID         *int    `json:"club_id,omitempty"`
	GroupRef       *string `json:"group_ref,omitempty"`
	SourceRound    *string `json:"source_round,omitempty"`
	SourcePosition *int    `json:"source_position,omitempty"`
	Take           *string `json:"take,omitempty"` // winner | loser
}

type bracketSlotInput struct {
	Round    string           `json:"round"`
	Position int              `json:"position"`
	Home     bracketSideInput `json:"home"`
	Away     bracketSideInput `json:"away"`
}

type createKnockoutFixtureInput struct {
	Slots []bracketSlotInput `json:"slots"`
}

func (h *FixtureHandler) CreateKnockoutFixture(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input createKnockoutFixtureInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	slots := make([]fixture.Slot, 0, len(input.Slots))
	for i, slotInput := range input.Slots {
		slot, convErr := toBracketSlot(slotInput)
		if convErr != nil {
			badRequestResponse(w, r, fmt.Errorf("slot %d: %w", i+1, convErr))
			return
		}
		slots = append(slots, slot)
	}

	created, err := h.fixtureService.CreateKnockoutFixture(r.Context(), competitionID, slots)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches_created": created}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func toBracketSlot(input bracketSlotInput) (fixture.Slot, error) {
	home, err := toBracketSide(input.Home)
	if err != nil {
		return fixture.Slot{}, fmt.Errorf("home side: %w", err)
	}
	away, err := toBracketSide(input.Away)
	if err != nil {
		return fixture.Slot{}, fmt.Errorf("away side: %w", err)
	}
	return fixture.Slot{
		Round:    models.KnockoutRound(input.Round),
		Position: input.Position,
		Home:     home,
		Away:     away,
	}, nil
}

func toBracketSide(input bracketSideInput) (fixture.Side, error) {
	switch input.Type {
	case "direct":
		if input.ClubID == nil {
			return fixture.Side{}, fmt.Errorf("club_id is required for a direct side")
		}
		return fixture.Direct(*input.ClubID), nil
	case "from_group":
		if input.GroupRef == nil {
			return fixture.Side{}, fmt.Errorf("group_ref is required for a from_group side")
		}
		return fixture.FromGroup(*input.GroupRef), nil
	case "from_match":
		if input.SourceRound == nil || input.SourcePosition == nil {
			return fixture.Side{}, fmt.Errorf("source_round and source_position are required for a from_match side")
		}
		take := models.SourceWinner
		if input.Take != nil {
			switch models.SourcePosition(*input.Take) {
			case models.SourceWinner, models.SourceLoser:
				take = models.SourcePosition(*input.Take)
			default:
				return fixture.Side{}, fmt.Errorf("take must be %q or %q", models.SourceWinner, models.SourceLoser)
			}
		}
		return fixture.FromMatch(models.KnockoutRound(*input.SourceRound), *input.SourcePosition, take), nil
	default:
		return fixture.Side{}, fmt.Errorf("unknown side type %q", input.Type)
	}
}
