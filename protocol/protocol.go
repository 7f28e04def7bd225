package protocol

import "fmt"

// Cmd represents a command
type Cmd int

const (
	Null Cmd = iota
	NewJoiner
	Leave
	Start
	// turn commands
	PlayCard
	SkipTurn
	DiscardAndDraw
	Stabilize
	SkipStabilization
	PreStabilizeDiscard
	PreviewAge
	AcknowledgeCatastrophe
	// answers to a pending request
	SelectTarget
	SelectCards
	SkipAction
	RevealCard
	PickRevealed
	// outbound only
	State
	Error
	GameOver
)

var CmdNames = map[Cmd]string{
	Null:                   "Null",
	NewJoiner:              "NewJoiner",
	Leave:                  "Leave",
	Start:                  "Start",
	PlayCard:               "PlayCard",
	SkipTurn:               "SkipTurn",
	DiscardAndDraw:         "DiscardAndDraw",
	Stabilize:              "Stabilize",
	SkipStabilization:      "SkipStabilization",
	PreStabilizeDiscard:    "PreStabilizeDiscard",
	PreviewAge:             "PreviewAge",
	AcknowledgeCatastrophe: "AcknowledgeCatastrophe",
	SelectTarget:           "SelectTarget",
	SelectCards:            "SelectCards",
	SkipAction:             "SkipAction",
	RevealCard:             "RevealCard",
	PickRevealed:           "PickRevealed",
	State:                  "State",
	Error:                  "Error",
	GameOver:               "GameOver",
}

var NameToCmd = map[string]Cmd{
	"Null":                   Null,
	"NewJoiner":              NewJoiner,
	"Leave":                  Leave,
	"Start":                  Start,
	"PlayCard":               PlayCard,
	"SkipTurn":               SkipTurn,
	"DiscardAndDraw":         DiscardAndDraw,
	"Stabilize":              Stabilize,
	"SkipStabilization":      SkipStabilization,
	"PreStabilizeDiscard":    PreStabilizeDiscard,
	"PreviewAge":             PreviewAge,
	"AcknowledgeCatastrophe": AcknowledgeCatastrophe,
	"SelectTarget":           SelectTarget,
	"SelectCards":            SelectCards,
	"SkipAction":             SkipAction,
	"RevealCard":             RevealCard,
	"PickRevealed":           PickRevealed,
	"State":                  State,
	"Error":                  Error,
	"GameOver":               GameOver,
}

func (c Cmd) String() string {
	return CmdNames[c]
}

// MarshalText writes the command's name.
func (c Cmd) MarshalText() ([]byte, error) {
	name, ok := CmdNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown command %d", int(c))
	}
	return []byte(name), nil
}

// UnmarshalText reads a command name.
func (c *Cmd) UnmarshalText(b []byte) error {
	cmd, ok := NameToCmd[string(b)]
	if !ok {
		return fmt.Errorf("unknown command %q", string(b))
	}
	*c = cmd
	return nil
}

// Mutates reports whether the command changes the game.
func (c Cmd) Mutates() bool {
	return c >= Start && c <= PickRevealed && c != PreviewAge
}
