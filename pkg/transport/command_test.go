package transport

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"transporter-coordinator/pkg/common"
	"transporter-coordinator/pkg/models"
	_ "transporter-coordinator/pkg/testing"
)

func TestCommandsForProjection(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, tr, _, mockRegistry, _ := GetMockTransportWithMemorySqliteDialector(t, false, true, false)
	defer ctrl.Finish()

	mockRegistry.EXPECT().RoutesForMachine(uint(7)).Return([]models.RouteView{
		{
			ID:              3,
			SourceName:      "out_chest",
			SourceMachineID: 7,
			DestName:        "in_chest",
			DestMachineID:   9,
			ItemFilter:      "coal",
			ItemNames:       []string{"coal", "charcoal"},
		},
		{
			ID:              5,
			SourceName:      "in_chest",
			SourceMachineID: 9,
			DestName:        "out_chest",
			DestMachineID:   7,
			ItemNames:       []string{},
		},
	}, nil)

	commands, err := tr.Command.CommandsFor(7)
	require.NoError(t, err)
	require.Len(t, commands, 2)

	// registry order is command order
	assert.Equal(t, uint(3), commands[0].RouteID)
	assert.Equal(t, models.ActionTransfer, commands[0].Action)
	assert.Equal(t, "out_chest", commands[0].Source)
	assert.Equal(t, "in_chest", commands[0].Dest)
	assert.Equal(t, uint(7), commands[0].SourceMachineID)
	assert.Equal(t, uint(9), commands[0].DestMachineID)
	assert.Equal(t, "coal", commands[0].ItemFilter)
	assert.Equal(t, []string{"coal", "charcoal"}, commands[0].ItemNames)

	assert.Equal(t, uint(5), commands[1].RouteID)
	assert.Empty(t, commands[1].ItemFilter)
	assert.NotNil(t, commands[1].ItemNames)
}

func TestCommandsForRegistryError(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, tr, _, mockRegistry, _ := GetMockTransportWithMemorySqliteDialector(t, false, true, false)
	defer ctrl.Finish()

	mockRegistry.EXPECT().RoutesForMachine(gomock.Any()).Return(nil, fmt.Errorf("store down"))

	_, err := tr.Command.CommandsFor(1)
	assert.Error(t, err)
}

func TestCommandsForNoRegistry(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, tr, _, _, _ := GetMockTransportWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	tr.Registry = nil
	_, err := tr.Command.CommandsFor(1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}

func TestCommandsForEndToEnd(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, tr, _, _, _ := GetMockTransportWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	user := seedUser(t, tr)
	source := seedMachine(t, tr, user.ID)
	dest := seedMachine(t, tr, user.ID)
	srcChest := seedPeripheral(t, tr, source.ID, "out_chest")
	dstChest := seedPeripheral(t, tr, dest.ID, "in_chest")

	route, err := tr.Registry.CreateRoute(user.ID, models.CreateRouteInput{
		Name:               "coal run",
		SourcePeripheralID: srcChest.ID,
		DestPeripheralID:   dstChest.ID,
		ItemFilter:         "coal",
	})
	require.NoError(t, err)

	// offline machines still receive commands; the poll is what matters
	require.NoError(t, tr.Liveness.SetStatus(dest.ID, models.MachineStatusOffline))

	commands, err := tr.Command.CommandsFor(dest.ID)
	require.NoError(t, err)
	require.Len(t, commands, 1)
	assert.Equal(t, route.ID, commands[0].RouteID)
	assert.Equal(t, "out_chest", commands[0].Source)
	assert.Equal(t, "in_chest", commands[0].Dest)

	// level-triggered: an unchanged route is re-sent on the next poll
	again, err := tr.Command.CommandsFor(dest.ID)
	require.NoError(t, err)
	assert.Equal(t, commands, again)
}
