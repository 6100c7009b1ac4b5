package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transporter-coordinator/pkg/common"
	"transporter-coordinator/pkg/models"
	_ "transporter-coordinator/pkg/testing"
)

func TestCreateRoute(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, tr, _, _, _ := GetMockTransportWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	user := seedUser(t, tr)
	machine := seedMachine(t, tr, user.ID)
	src := seedPeripheral(t, tr, machine.ID, "input_chest")
	dst := seedPeripheral(t, tr, machine.ID, "furnace")

	view, err := tr.Registry.CreateRoute(user.ID, models.CreateRouteInput{
		Name:               "smelting",
		SourcePeripheralID: src.ID,
		DestPeripheralID:   dst.ID,
		ItemFilter:         "iron_ore",
		ItemNames:          []string{"iron_ore", "gold_ore"},
	})
	require.NoError(t, err)

	assert.Equal(t, "smelting", view.Name)
	assert.Equal(t, user.ID, view.UserID)
	assert.True(t, view.Enabled)
	assert.Equal(t, "input_chest", view.SourceName)
	assert.Equal(t, "furnace", view.DestName)
	assert.Equal(t, machine.ID, view.SourceMachineID)
	assert.Equal(t, machine.ID, view.DestMachineID)
	assert.Equal(t, []string{"iron_ore", "gold_ore"}, view.ItemNames)
}

func TestCreateRouteInvalidReference(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, tr, _, _, _ := GetMockTransportWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	user := seedUser(t, tr)
	machine := seedMachine(t, tr, user.ID)
	src := seedPeripheral(t, tr, machine.ID, "input_chest")

	_, err := tr.Registry.CreateRoute(user.ID, models.CreateRouteInput{
		Name:               "dangling",
		SourcePeripheralID: src.ID,
		DestPeripheralID:   99999999,
	})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestCreateRouteForbiddenEndpoint(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, tr, _, _, _ := GetMockTransportWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	owner := seedUser(t, tr)
	intruder := seedUser(t, tr)
	machine := seedMachine(t, tr, owner.ID)
	src := seedPeripheral(t, tr, machine.ID, "input_chest")
	dst := seedPeripheral(t, tr, machine.ID, "furnace")

	var before int64
	require.NoError(t, tr.Db.Conn.Model(&models.Route{}).Count(&before).Error)

	_, err := tr.Registry.CreateRoute(intruder.ID, models.CreateRouteInput{
		Name:               "theft",
		SourcePeripheralID: src.ID,
		DestPeripheralID:   dst.ID,
	})
	assert.ErrorIs(t, err, ErrForbidden)

	// a rejected create must leave nothing behind
	var after int64
	require.NoError(t, tr.Db.Conn.Model(&models.Route{}).Count(&after).Error)
	assert.Equal(t, before, after)
}

func TestRoutesForMachine(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, tr, _, _, _ := GetMockTransportWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	user := seedUser(t, tr)
	source := seedMachine(t, tr, user.ID)
	dest := seedMachine(t, tr, user.ID)
	bystander := seedMachine(t, tr, user.ID)

	srcChest := seedPeripheral(t, tr, source.ID, "out_chest")
	dstChest := seedPeripheral(t, tr, dest.ID, "in_chest")
	otherChest := seedPeripheral(t, tr, bystander.ID, "misc_chest")

	first, err := tr.Registry.CreateRoute(user.ID, models.CreateRouteInput{
		Name:               "a",
		SourcePeripheralID: srcChest.ID,
		DestPeripheralID:   dstChest.ID,
	})
	require.NoError(t, err)
	second, err := tr.Registry.CreateRoute(user.ID, models.CreateRouteInput{
		Name:               "b",
		SourcePeripheralID: dstChest.ID,
		DestPeripheralID:   srcChest.ID,
	})
	require.NoError(t, err)
	_, err = tr.Registry.CreateRoute(user.ID, models.CreateRouteInput{
		Name:               "unrelated",
		SourcePeripheralID: otherChest.ID,
		DestPeripheralID:   otherChest.ID,
	})
	require.NoError(t, err)

	disabled, err := tr.Registry.CreateRoute(user.ID, models.CreateRouteInput{
		Name:               "paused",
		SourcePeripheralID: srcChest.ID,
		DestPeripheralID:   dstChest.ID,
	})
	require.NoError(t, err)
	off := false
	_, err = tr.Registry.UpdateRoute(user.ID, disabled.ID, models.UpdateRouteInput{Enabled: &off})
	require.NoError(t, err)

	views, err := tr.Registry.RoutesForMachine(source.ID)
	require.NoError(t, err)

	// both directions count, disabled and unrelated routes do not, and
	// creation order is preserved
	require.Len(t, views, 2)
	assert.Equal(t, first.ID, views[0].ID)
	assert.Equal(t, second.ID, views[1].ID)
}

func TestRoutesForUserIncludesDisabled(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, tr, _, _, _ := GetMockTransportWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	user := seedUser(t, tr)
	machine := seedMachine(t, tr, user.ID)
	chest := seedPeripheral(t, tr, machine.ID, "chest")

	route, err := tr.Registry.CreateRoute(user.ID, models.CreateRouteInput{
		Name:               "loop",
		SourcePeripheralID: chest.ID,
		DestPeripheralID:   chest.ID,
	})
	require.NoError(t, err)
	off := false
	_, err = tr.Registry.UpdateRoute(user.ID, route.ID, models.UpdateRouteInput{Enabled: &off})
	require.NoError(t, err)

	views, err := tr.Registry.RoutesForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.False(t, views[0].Enabled)
	assert.NotNil(t, views[0].ItemNames)
}

func TestUpdateRoute(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, tr, _, _, _ := GetMockTransportWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	user := seedUser(t, tr)
	machine := seedMachine(t, tr, user.ID)
	src := seedPeripheral(t, tr, machine.ID, "src")
	dst := seedPeripheral(t, tr, machine.ID, "dst")
	alt := seedPeripheral(t, tr, machine.ID, "alt")

	route, err := tr.Registry.CreateRoute(user.ID, models.CreateRouteInput{
		Name:               "before",
		SourcePeripheralID: src.ID,
		DestPeripheralID:   dst.ID,
		ItemFilter:         "coal",
		ItemNames:          []string{"coal"},
	})
	require.NoError(t, err)

	name := "after"
	filter := "iron_ingot"
	items := []string{"iron_ingot", "gold_ingot"}
	updated, err := tr.Registry.UpdateRoute(user.ID, route.ID, models.UpdateRouteInput{
		Name:             &name,
		DestPeripheralID: &alt.ID,
		ItemFilter:       &filter,
		ItemNames:        &items,
	})
	require.NoError(t, err)

	assert.Equal(t, "after", updated.Name)
	assert.Equal(t, alt.ID, updated.DestPeripheralID)
	assert.Equal(t, "alt", updated.DestName)
	assert.Equal(t, "iron_ingot", updated.ItemFilter)
	assert.Equal(t, []string{"iron_ingot", "gold_ingot"}, updated.ItemNames)
	// untouched fields survive a partial patch
	assert.Equal(t, src.ID, updated.SourcePeripheralID)
	assert.True(t, updated.Enabled)
}

func TestUpdateRouteClearItemNames(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, tr, _, _, _ := GetMockTransportWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	user := seedUser(t, tr)
	machine := seedMachine(t, tr, user.ID)
	chest := seedPeripheral(t, tr, machine.ID, "chest")

	route, err := tr.Registry.CreateRoute(user.ID, models.CreateRouteInput{
		Name:               "cleared",
		SourcePeripheralID: chest.ID,
		DestPeripheralID:   chest.ID,
		ItemNames:          []string{"dirt", "cobblestone"},
	})
	require.NoError(t, err)

	empty := []string{}
	updated, err := tr.Registry.UpdateRoute(user.ID, route.ID, models.UpdateRouteInput{ItemNames: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.ItemNames)

	var count int64
	require.NoError(t, tr.Db.Conn.Model(&models.RouteItem{}).
		Where("route_id = ?", route.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateRoute_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, tr, _, _, _ := GetMockTransportWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	owner := seedUser(t, tr)
	intruder := seedUser(t, tr)
	machine := seedMachine(t, tr, owner.ID)
	chest := seedPeripheral(t, tr, machine.ID, "chest")

	route, err := tr.Registry.CreateRoute(owner.ID, models.CreateRouteInput{
		Name:               "guarded",
		SourcePeripheralID: chest.ID,
		DestPeripheralID:   chest.ID,
	})
	require.NoError(t, err)

	name := "stolen"
	_, err = tr.Registry.UpdateRoute(intruder.ID, route.ID, models.UpdateRouteInput{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = tr.Registry.UpdateRoute(owner.ID, 99999999, models.UpdateRouteInput{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	missing := uint(99999999)
	_, err = tr.Registry.UpdateRoute(owner.ID, route.ID, models.UpdateRouteInput{SourcePeripheralID: &missing})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestDeleteRoute(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, tr, _, _, _ := GetMockTransportWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	owner := seedUser(t, tr)
	intruder := seedUser(t, tr)
	machine := seedMachine(t, tr, owner.ID)
	chest := seedPeripheral(t, tr, machine.ID, "chest")

	route, err := tr.Registry.CreateRoute(owner.ID, models.CreateRouteInput{
		Name:               "doomed",
		SourcePeripheralID: chest.ID,
		DestPeripheralID:   chest.ID,
		ItemNames:          []string{"sand"},
	})
	require.NoError(t, err)

	err = tr.Registry.DeleteRoute(intruder.ID, route.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, tr.Registry.DeleteRoute(owner.ID, route.ID))

	_, err = tr.Registry.RouteByID(route.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, tr.Db.Conn.Model(&models.RouteItem{}).
		Where("route_id = ?", route.ID).Count(&count).Error)
	assert.Zero(t, count)

	err = tr.Registry.DeleteRoute(owner.ID, route.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRouteCreatedAtOrdering(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, tr, _, _, _ := GetMockTransportWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	user := seedUser(t, tr)
	machine := seedMachine(t, tr, user.ID)
	chest := seedPeripheral(t, tr, machine.ID, "chest")

	var ids []uint
	for _, name := range []string{"one", "two", "three"} {
		view, err := tr.Registry.CreateRoute(user.ID, models.CreateRouteInput{
			Name:               name,
			SourcePeripheralID: chest.ID,
			DestPeripheralID:   chest.ID,
		})
		require.NoError(t, err)
		ids = append(ids, view.ID)
	}

	// force identical created_at so the id tiebreak decides
	now := time.Now().UTC()
	require.NoError(t, tr.Db.Conn.Model(&models.Route{}).
		Where("id IN ?", ids).
		Update("created_at", now).Error)

	views, err := tr.Registry.RoutesForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, ids[0], views[0].ID)
	assert.Equal(t, ids[1], views[1].ID)
	assert.Equal(t, ids[2], views[2].ID)
}
