package services

import "errors"

// Sentinel errors shared across services and the HTTP error mapping.
var (
	ErrCompetitionNotFound       = errors.New("competition not found")
	ErrCompetitionNameRequired   = errors.New("competition name is required")
	ErrCompetitionSeasonRequired = errors.New("competition season is required")
	ErrCompetitionInvalidFormat  = errors.New("invalid competition format")
	ErrCompetitionNameConflict   = errors.New("competition name already exists for this season")

	ErrMatchNotFound            = errors.New("match not found")
	ErrMatchAlreadyFinished     = errors.New("match is already finished")
	ErrTeamsNotAssigned         = errors.New("match has at least one unassigned side")
	ErrDrawNotAllowedInKnockout = errors.New("draws are not allowed in knockout matches")
	ErrInvalidScore             = errors.New("goals must not be negative")

	ErrFixtureParticipantsRequired = errors.New("fixture requires at least 2 participants")
	ErrInvalidFixtureInput         = errors.New("invalid fixture input")
	ErrGroupReferenceNotFound      = errors.New("no pending match references this group position")
)
