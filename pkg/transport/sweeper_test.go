package transport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"transporter-coordinator/pkg/common"
	"transporter-coordinator/pkg/models"
	_ "transporter-coordinator/pkg/testing"
)

func TestSweepOnce(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, tr, _, _, _ := GetMockTransportWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	user := seedUser(t, tr)
	machine := seedMachine(t, tr, user.ID)
	require.NoError(t, tr.Db.Conn.Model(machine).
		Update("last_seen", time.Now().UTC().Add(-tr.Cfg.MachineTimeout-time.Minute)).Error)

	sweeper := NewSweeper(tr)
	count, err := sweeper.SweepOnce()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, int64(1))

	var saved models.Machine
	require.NoError(t, tr.Db.Conn.First(&saved, "id = ?", machine.ID).Error)
	assert.Equal(t, models.MachineStatusOffline, saved.Status)
}

func TestSweeperStartStop(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, tr, mockLiveness, _, _ := GetMockTransportWithMemorySqliteDialector(t, true, false, false)
	defer ctrl.Finish()

	tr.Cfg.SweepInterval = 5 * time.Millisecond
	tr.Cfg.MachineTimeout = 42 * time.Second

	mockLiveness.EXPECT().Sweep(42 * time.Second).Return(int64(0), nil).MinTimes(1)

	sweeper := NewSweeper(tr)
	sweeper.Start(context.Background())
	// double Start is a no-op
	sweeper.Start(context.Background())

	time.Sleep(50 * time.Millisecond)
	sweeper.Stop()
	// double Stop is a no-op
	sweeper.Stop()
}

func TestSweeperSurvivesSweepError(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, tr, mockLiveness, _, _ := GetMockTransportWithMemorySqliteDialector(t, true, false, false)
	defer ctrl.Finish()

	tr.Cfg.SweepInterval = 5 * time.Millisecond

	gomock.InOrder(
		mockLiveness.EXPECT().Sweep(gomock.Any()).Return(int64(0), assert.AnError),
		mockLiveness.EXPECT().Sweep(gomock.Any()).Return(int64(0), nil).MinTimes(1),
	)

	sweeper := NewSweeper(tr)
	sweeper.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	sweeper.Stop()
}
