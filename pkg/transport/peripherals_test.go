package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transporter-coordinator/pkg/common"
	"transporter-coordinator/pkg/models"
	_ "transporter-coordinator/pkg/testing"
)

func TestUpsertPeripheral(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, tr, _, _, _ := GetMockTransportWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	user := seedUser(t, tr)
	machine := seedMachine(t, tr, user.ID)

	require.NoError(t, tr.Peripherals.Upsert(machine.ID, "chest_main", "inventory", "left"))

	var first models.Peripheral
	require.NoError(t, tr.Db.Conn.First(&first,
		"machine_id = ? AND name = ?", machine.ID, "chest_main").Error)
	assert.Equal(t, "inventory", first.Type)
	assert.Equal(t, "left", first.Location)

	// same (machine, name) refreshes in place instead of duplicating
	require.NoError(t, tr.Peripherals.Upsert(machine.ID, "chest_main", "inventory", "top"))

	var second models.Peripheral
	require.NoError(t, tr.Db.Conn.First(&second,
		"machine_id = ? AND name = ?", machine.ID, "chest_main").Error)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "top", second.Location)
	assert.False(t, second.LastUpdated.Before(first.LastUpdated))

	peripherals, err := tr.Peripherals.ListForMachine(machine.ID)
	require.NoError(t, err)
	assert.Len(t, peripherals, 1)
}

func TestUpsertPeripheralSameNameDifferentMachines(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, tr, _, _, _ := GetMockTransportWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	user := seedUser(t, tr)
	one := seedMachine(t, tr, user.ID)
	two := seedMachine(t, tr, user.ID)

	require.NoError(t, tr.Peripherals.Upsert(one.ID, "chest", "inventory", "left"))
	require.NoError(t, tr.Peripherals.Upsert(two.ID, "chest", "inventory", "right"))

	onePeripherals, err := tr.Peripherals.ListForMachine(one.ID)
	require.NoError(t, err)
	twoPeripherals, err := tr.Peripherals.ListForMachine(two.ID)
	require.NoError(t, err)
	assert.Len(t, onePeripherals, 1)
	assert.Len(t, twoPeripherals, 1)
	assert.NotEqual(t, onePeripherals[0].ID, twoPeripherals[0].ID)
}

func TestListPeripheralsForMachineOrdering(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, tr, _, _, _ := GetMockTransportWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	user := seedUser(t, tr)
	machine := seedMachine(t, tr, user.ID)

	for _, name := range []string{"zulu", "alpha", "mike"} {
		require.NoError(t, tr.Peripherals.Upsert(machine.ID, name, "inventory", "left"))
	}

	peripherals, err := tr.Peripherals.ListForMachine(machine.ID)
	require.NoError(t, err)
	require.Len(t, peripherals, 3)
	assert.Equal(t, "alpha", peripherals[0].Name)
	assert.Equal(t, "mike", peripherals[1].Name)
	assert.Equal(t, "zulu", peripherals[2].Name)
}

func TestListPeripheralsForUser(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, tr, _, _, _ := GetMockTransportWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	user := seedUser(t, tr)
	other := seedUser(t, tr)
	mine := seedMachine(t, tr, user.ID)
	theirs := seedMachine(t, tr, other.ID)

	seedPeripheral(t, tr, mine.ID, "chest")
	seedPeripheral(t, tr, theirs.ID, "their_chest")

	views, err := tr.Peripherals.ListForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "chest", views[0].Name)
	assert.Equal(t, mine.ID, views[0].MachineID)
	assert.Equal(t, mine.Name, views[0].MachineName)
}
