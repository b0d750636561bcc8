package models

import "time"

type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusFinished MatchStatus = "finished"
)

type MatchStage string

const (
	StageRoundRobin MatchStage = "round_robin"
	StageKnockout   MatchStage = "knockout"
)

// SourcePosition says which side of a finished source match feeds a slot.
type SourcePosition string

const (
	SourceWinner SourcePosition = "winner"
	SourceLoser  SourcePosition = "loser"
)

// Match is one fixture entry of a competition. Each side is either a
// concrete club (HomeClubID/AwayClubID), a textual placeholder, or a
// link to an earlier match whose outcome fills the slot. A side never
// carries a concrete club and a placeholder at the same time.
type Match struct {
	ID            int        `json:"id"`
	CompetitionID int        `json:"competition_id"`
	Stage         MatchStage `json:"stage"`
	Group         *string    `json:"group,omitempty"`

	HomeClubID *int `json:"home_club_id,omitempty"`
	AwayClubID *int `json:"away_club_id,omitempty"`

	HomePlaceholder *string `json:"home_placeholder,omitempty"`
	AwayPlaceholder *string `json:"away_placeholder,omitempty"`

	HomeSourceMatchID  *int            `json:"home_source_match_id,omitempty"`
	AwaySourceMatchID  *int            `json:"away_source_match_id,omitempty"`
	HomeSourcePosition *SourcePosition `json:"home_source_position,omitempty"`
	AwaySourcePosition *SourcePosition `json:"away_source_position,omitempty"`

	Matchday int `json:"matchday"`

	Status    MatchStatus `json:"status"`
	HomeGoals *int        `json:"home_goals,omitempty"`
	AwayGoals *int        `json:"away_goals,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Winner returns the winning club of a finished match, or nil for a
// draw or an unfinished match.
func (m *Match) Winner() *int {
	if m.Status != MatchStatusFinished || m.HomeGoals == nil || m.AwayGoals == nil {
		return nil
	}
	switch {
	case *m.HomeGoals > *m.AwayGoals:
		return m.HomeClubID
	case *m.AwayGoals > *m.HomeGoals:
		return m.AwayClubID
	}
	return nil
}

// Loser mirrors Winner.
func (m *Match) Loser() *int {
	if m.Status != MatchStatusFinished || m.HomeGoals == nil || m.AwayGoals == nil {
		return nil
	}
	switch {
	case *m.HomeGoals > *m.AwayGoals:
		return m.AwayClubID
	case *m.AwayGoals > *m.HomeGoals:
		return m.HomeClubID
	}
	return nil
}
