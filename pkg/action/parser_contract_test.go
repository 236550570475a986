package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlocksSingleAction(t *testing.T) {
	raw := "action:move,requested_action:0,target:0,indirect_target:0,item:0,location:Pharmacy,topic_of_conversation:0"
	envs, err := ParseBlocks(raw)
	require.NoError(t, err)
	require.Len(t, envs, 1)
	assert.Equal(t, KindMove, envs[0].Kind)
	assert.Equal(t, "Pharmacy", envs[0].Location.Raw)
	assert.Equal(t, "", envs[0].Target.Raw)
}

func TestParseBlocksMultiIntentNumberedSequence(t *testing.T) {
	raw := "1. action:pick_up,item:Fire Axe,target:0,indirect_target:0,location:0,topic_of_conversation:0\n" +
		"2. action:move,location:Pharmacy,target:0,indirect_target:0,item:0,topic_of_conversation:0"
	envs, err := ParseBlocks(raw)
	require.NoError(t, err)
	require.Len(t, envs, 2)
	assert.Equal(t, KindPickUp, envs[0].Kind)
	assert.Equal(t, "Fire Axe", envs[0].Item.Raw)
	assert.Equal(t, KindMove, envs[1].Kind)
}

func TestParseBlocksAskActionUsesRequestedAction(t *testing.T) {
	raw := "action:ask_action,requested_action:join_party,target:Lee,indirect_target:0,item:0,location:0,topic_of_conversation:0"
	envs, err := ParseBlocks(raw)
	require.NoError(t, err)
	require.Len(t, envs, 1)
	assert.Equal(t, KindAskAction, envs[0].Kind)
	assert.Equal(t, KindJoinParty, envs[0].RequestedAction)
	assert.Equal(t, "Lee", envs[0].Target.Raw)
}

func TestParseBlocksMissingActionFieldErrors(t *testing.T) {
	_, err := ParseBlocks("target:Lee,item:0")
	assert.Error(t, err)
}
