package transport

import (
	"time"

	"go.uber.org/zap"
	"transporter-coordinator/pkg/common"
	"transporter-coordinator/pkg/models"
)

// markOnline refreshes a machine's heartbeat: status online, last_seen now.
// Idempotent; only fails when the machine row does not exist.
func (t *Transport) markOnline(machineID uint) error {
	res := t.Db.Conn.Model(&models.Machine{}).
		Where("id = ?", machineID).
		Updates(map[string]any{
			"status":    models.MachineStatusOnline,
			"last_seen": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// sweep demotes every online machine whose last_seen is older than the
// timeout. Offline machines are never touched, so a sweep can never
// resurrect anything. Returns the number of transitions.
func (t *Transport) sweep(timeout time.Duration) (int64, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameTransportCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryLiveness),
	)

	cutoff := time.Now().UTC().Add(-timeout)
	res := t.Db.Conn.Model(&models.Machine{}).
		Where("status = ? AND last_seen < ?", models.MachineStatusOnline, cutoff).
		Update("status", models.MachineStatusOffline)
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected > 0 {
		logger.Info("Swept stale machines offline",
			zap.Int64("count", res.RowsAffected),
			zap.Duration("timeout", timeout))
	}
	return res.RowsAffected, nil
}

// setStatus is the explicit override used by client self-reports and owner
// disconnects. It also refreshes last_seen.
func (t *Transport) setStatus(machineID uint, status models.MachineStatus) error {
	if status != models.MachineStatusOnline && status != models.MachineStatusOffline {
		return ErrBadStatus
	}

	res := t.Db.Conn.Model(&models.Machine{}).
		Where("id = ?", machineID).
		Updates(map[string]any{
			"status":    status,
			"last_seen": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type ILivenessImpl struct {
	transport *Transport
}

func (il *ILivenessImpl) MarkOnline(machineID uint) error {
	return il.transport.markOnline(machineID)
}

func (il *ILivenessImpl) Sweep(timeout time.Duration) (int64, error) {
	return il.transport.sweep(timeout)
}

func (il *ILivenessImpl) SetStatus(machineID uint, status models.MachineStatus) error {
	return il.transport.setStatus(machineID, status)
}

func (t *Transport) GetILiveness() ILiveness {
	return &ILivenessImpl{transport: t}
}
