package game

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is wrapped by every rejection a player can cause by acting
// out of turn, out of phase or with a bad index. State is never changed.
var ErrIllegalMove = errors.New("illegal move")

// ErrStaleSelection means a selection referenced a card or player that has
// moved since the request was issued.
var ErrStaleSelection = errors.New("selection is no longer valid")

var (
	ErrNilGame             = errors.New("game is nil")
	ErrGameFull            = fmt.Errorf("%w: game is full", ErrIllegalMove)
	ErrDuplicatePlayer     = fmt.Errorf("%w: player already joined", ErrIllegalMove)
	ErrTooFewPlayers       = fmt.Errorf("%w: not enough players", ErrIllegalMove)
	ErrGameStarted         = fmt.Errorf("%w: game has already started", ErrIllegalMove)
	ErrGameNotInProgress   = fmt.Errorf("%w: game not in progress", ErrIllegalMove)
	ErrNotPlayPhase        = fmt.Errorf("%w: not play phase", ErrIllegalMove)
	ErrNotStabilizePhase   = fmt.Errorf("%w: not stabilize phase", ErrIllegalMove)
	ErrNoCatastrophe       = fmt.Errorf("%w: no catastrophe to acknowledge", ErrIllegalMove)
	ErrActionPending       = fmt.Errorf("%w: resolve action first", ErrIllegalMove)
	ErrPlayerNotFound      = fmt.Errorf("%w: player not found", ErrIllegalMove)
	ErrNotYourTurn         = fmt.Errorf("%w: not your turn", ErrIllegalMove)
	ErrAlreadyPlayed       = fmt.Errorf("%w: already played", ErrIllegalMove)
	ErrInvalidCard         = fmt.Errorf("%w: invalid card", ErrIllegalMove)
	ErrCannotPlay          = fmt.Errorf("%w: cannot play card", ErrIllegalMove)
	ErrHasPlayableCards    = fmt.Errorf("%w: you have playable cards", ErrIllegalMove)
	ErrCannotSkipStabilize = fmt.Errorf("%w: cannot skip stabilization this round", ErrIllegalMove)
	ErrNoPreStabilize      = fmt.Errorf("%w: cannot discard before stabilizing this round", ErrIllegalMove)
	ErrTooManyDiscards     = fmt.Errorf("%w: too many cards selected", ErrIllegalMove)
	ErrPreviewUnavailable  = fmt.Errorf("%w: age preview not available", ErrIllegalMove)
	ErrNoPendingAction     = fmt.Errorf("%w: no pending action", ErrIllegalMove)
	ErrWrongInput          = fmt.Errorf("%w: pending action expects a different input", ErrIllegalMove)
	ErrNotOptional         = fmt.Errorf("%w: action not optional", ErrIllegalMove)
	ErrNoTarget            = fmt.Errorf("%w: no target selected", ErrIllegalMove)
	ErrInvalidSelection    = fmt.Errorf("%w: selection not allowed", ErrIllegalMove)
	ErrColorMismatch       = fmt.Errorf("%w: traits do not meet the color rule", ErrIllegalMove)
	ErrNoReveal            = fmt.Errorf("%w: no reveal in progress", ErrIllegalMove)
	ErrNotParticipant      = fmt.Errorf("%w: you are not a participant in this action", ErrIllegalMove)
	ErrAlreadyResponded    = fmt.Errorf("%w: you have already responded", ErrIllegalMove)
)

// DiscardRequiredError is returned by Stabilize when the number of discard
// indices does not bring the hand down to the target.
type DiscardRequiredError struct {
	Count int
}

func (e *DiscardRequiredError) Error() string {
	return fmt.Sprintf("must discard %d card(s)", e.Count)
}

func (e *DiscardRequiredError) Unwrap() error {
	return ErrIllegalMove
}

func cannotPlay(reason string) error {
	return fmt.Errorf("%w: %s", ErrCannotPlay, reason)
}
