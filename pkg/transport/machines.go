package transport

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"transporter-coordinator/pkg/common"
	"transporter-coordinator/pkg/models"
)

// register creates or refreshes the machine record keyed by
// (owner, credential). A re-registering machine keeps its id; name,
// last_seen and status are updated.
func (t *Transport) register(userID uint, apiKeyID uint, name string) (*models.Machine, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameTransportCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryMachine),
	)

	now := time.Now().UTC()

	var machine models.Machine
	err := t.Db.Conn.First(&machine, "user_id = ? AND api_key_id = ?", userID, apiKeyID).Error
	switch {
	case err == nil:
		updates := map[string]any{
			"name":      name,
			"last_seen": now,
			"status":    models.MachineStatusOnline,
		}
		if err := t.Db.Conn.Model(&machine).Updates(updates).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		machine = models.Machine{
			UserID:   userID,
			APIKeyID: &apiKeyID,
			Name:     name,
			LastSeen: now,
			Status:   models.MachineStatusOnline,
		}
		if err := t.Db.Conn.Create(&machine).Error; err != nil {
			return nil, err
		}
		logger.Info("Registered new machine",
			zap.Uint("machine_id", machine.ID),
			zap.String("name", name))
	default:
		return nil, err
	}

	if err := t.Db.Conn.First(&machine, "id = ?", machine.ID).Error; err != nil {
		return nil, err
	}
	return &machine, nil
}

func (t *Transport) getMachine(machineID uint) (*models.Machine, error) {
	var machine models.Machine
	if err := t.Db.Conn.First(&machine, "id = ?", machineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &machine, nil
}

func (t *Transport) listMachinesForUser(userID uint) ([]models.Machine, error) {
	machines := []models.Machine{}
	err := t.Db.Conn.
		Where("user_id = ?", userID).
		Order("last_seen desc").
		Find(&machines).Error
	return machines, err
}

// detach is the owner's forced disconnect: the credential association is
// cleared and the machine goes offline, but the row (and its peripherals)
// survive.
func (t *Transport) detach(userID uint, machineID uint) error {
	machine, err := t.getMachine(machineID)
	if err != nil {
		return err
	}
	if machine.UserID != userID {
		return ErrForbidden
	}

	return t.Db.Conn.Model(machine).Updates(map[string]any{
		"api_key_id": nil,
		"status":     models.MachineStatusOffline,
		"last_seen":  time.Now().UTC(),
	}).Error
}

type IMachinesImpl struct {
	transport *Transport
}

func (im *IMachinesImpl) Register(userID uint, apiKeyID uint, name string) (*models.Machine, error) {
	return im.transport.register(userID, apiKeyID, name)
}

func (im *IMachinesImpl) Get(machineID uint) (*models.Machine, error) {
	return im.transport.getMachine(machineID)
}

func (im *IMachinesImpl) ListForUser(userID uint) ([]models.Machine, error) {
	return im.transport.listMachinesForUser(userID)
}

func (im *IMachinesImpl) Detach(userID uint, machineID uint) error {
	return im.transport.detach(userID, machineID)
}

func (t *Transport) GetIMachines() IMachines {
	return &IMachinesImpl{transport: t}
}
