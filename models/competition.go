package models

import "time"

type CompetitionFormat string

const (
	FormatLeague     CompetitionFormat = "league"
	FormatGroupStage CompetitionFormat = "group_stage"
	FormatKnockout   CompetitionFormat = "knockout"
)

type Competition struct {
	ID        int               `json:"id"`
	Name      string            `json:"name"`
	Season    string            `json:"season"`
	Format    CompetitionFormat `json:"format"`
	CreatedAt time.Time         `json:"created_at"`
}
