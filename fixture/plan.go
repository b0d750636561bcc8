// Package fixture contains the pure schedule generators: round-robin
// leagues, single round-robin groups, and single-elimination brackets.
// Generators produce Plans; persistence and id assignment happen in the
// service layer.
package fixture

import (
	"errors"

	"github.com/Polilla23/kempes-server/models"
)

// ErrInvalidBracket marks a malformed bracket configuration: an unknown
// round name, a duplicate slot, or a from-match reference that cannot
// be satisfied (missing or cyclic). Builders fail before anything is
// persisted.
var ErrInvalidBracket = errors.New("invalid bracket configuration")

// SourceRef points at an earlier Plan in the same generated slice. The
// index is a temporary key: the caller persisting the slice in order
// replaces it with the real id assigned to that earlier match.
type SourceRef struct {
	Index    int
	Position models.SourcePosition
}

// Plan is one match to be created. At most one of club id, placeholder
// and source is set per side.
type Plan struct {
	Stage    models.MatchStage
	Matchday int
	Group    *string

	HomeClubID *int
	AwayClubID *int

	HomePlaceholder *string
	AwayPlaceholder *string

	HomeSource *SourceRef
	AwaySource *SourceRef
}
