package protocol

import (
	"encoding/json"
	"testing"

	utils "github.com/minaorangina/doomlings/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCmdNames(t *testing.T) {
	t.Run("every command has a name both ways", func(t *testing.T) {
		utils.AssertEqual(t, len(CmdNames), len(NameToCmd))
		for cmd, name := range CmdNames {
			utils.AssertEqual(t, NameToCmd[name], cmd)
			utils.AssertEqual(t, cmd.String(), name)
		}
	})

	t.Run("commands travel as names", func(t *testing.T) {
		data, err := json.Marshal(InboundMessage{PlayerID: "ann", Command: PlayCard, CardIndex: 2})
		require.NoError(t, err)
		assert.Contains(t, string(data), `"command":"PlayCard"`)

		var msg InboundMessage
		require.NoError(t, json.Unmarshal([]byte(`{"playerID":"bo","command":"SelectCards","decision":[1,3]}`), &msg))
		utils.AssertEqual(t, msg.Command, SelectCards)
		utils.AssertDeepEqual(t, msg.Decision, []int{1, 3})
	})

	t.Run("unknown names are rejected", func(t *testing.T) {
		var msg InboundMessage
		err := json.Unmarshal([]byte(`{"command":"FlipTable"}`), &msg)
		utils.AssertErrored(t, err)
	})
}

func TestCmdMutates(t *testing.T) {
	tt := []struct {
		cmd  Cmd
		want bool
	}{
		{Null, false},
		{NewJoiner, false},
		{Start, true},
		{PlayCard, true},
		{PreviewAge, false},
		{PickRevealed, true},
		{State, false},
		{Error, false},
	}
	for _, tc := range tt {
		t.Run(tc.cmd.String(), func(t *testing.T) {
			utils.AssertEqual(t, tc.cmd.Mutates(), tc.want)
		})
	}
}
