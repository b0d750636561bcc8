package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Polilla23/kempes-server/models"
	"github.com/Polilla23/kempes-server/services"
	"github.com/go-chi/chi/v5"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

type finishMatchInput struct {
	HomeGoals *int `json:"home_goals"`
	AwayGoals *int `json:"away_goals"`
}

func (h *MatchHandler) FinishMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input finishMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.HomeGoals == nil || input.AwayGoals == nil {
		badRequestResponse(w, r, errors.New("home_goals and away_goals are required"))
		return
	}

	result, err := h.matchService.FinishMatch(r.Context(), matchID, *input.HomeGoals, *input.AwayGoals)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) ListCompetitionMatches(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var stage *models.MatchStage
	if raw := r.URL.Query().Get("stage"); raw != "" {
		switch models.MatchStage(raw) {
		case models.StageRoundRobin, models.StageKnockout:
			value := models.MatchStage(raw)
			stage = &value
		default:
			badRequestResponse(w, r, fmt.Errorf("unknown stage %q", raw))
			return
		}
	}

	matches, err := h.matchService.ListByCompetition(r.Context(), competitionID, stage)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type assignQualifierInput struct {
	ClubID *int `json:"club_id"`
}

func (h *MatchHandler) AssignGroupQualifier(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	groupRef := chi.URLParam(r, "groupRef")
	if groupRef == "" {
		badRequestResponse(w, r, errors.New("group reference is required"))
		return
	}

	var input assignQualifierInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.ClubID == nil {
		badRequestResponse(w, r, errors.New("club_id is required"))
		return
	}

	updated, err := h.matchService.AssignGroupQualifier(r.Context(), competitionID, groupRef, *input.ClubID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"updated_matches": updated}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
