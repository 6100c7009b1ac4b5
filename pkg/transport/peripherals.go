package transport

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"
	"transporter-coordinator/pkg/common"
	"transporter-coordinator/pkg/models"
)

// upsertPeripheral registers or refreshes a peripheral. Identity is
// (machine, name); a conflict only updates type, location and the
// timestamp.
func (t *Transport) upsertPeripheral(machineID uint, name, peripheralType, location string) error {
	logger := common.GetLoggerWith(
		common.LoggerNameTransportCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryPeripheral),
	)

	peripheral := models.Peripheral{
		MachineID:   machineID,
		Name:        name,
		Type:        peripheralType,
		Location:    location,
		LastUpdated: time.Now().UTC(),
	}

	err := t.Db.Conn.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "machine_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"type", "location", "last_updated",
		}),
	}).Create(&peripheral).Error

	if err == nil {
		logger.Info("Upserted peripheral",
			zap.Uint("machine_id", machineID),
			zap.String("name", name))
	}

	return err
}

func (t *Transport) listPeripheralsForMachine(machineID uint) ([]models.Peripheral, error) {
	peripherals := []models.Peripheral{}
	err := t.Db.Conn.
		Where("machine_id = ?", machineID).
		Order("name").
		Find(&peripherals).Error
	return peripherals, err
}

func (t *Transport) listPeripheralsForUser(userID uint) ([]models.PeripheralView, error) {
	views := []models.PeripheralView{}
	err := t.Db.Conn.Table("peripherals").
		Select("peripherals.id, peripherals.machine_id, peripherals.name, peripherals.type, peripherals.location, peripherals.last_updated, machines.name AS machine_name").
		Joins("JOIN machines ON machines.id = peripherals.machine_id").
		Where("machines.user_id = ?", userID).
		Order("machines.name, peripherals.name").
		Scan(&views).Error
	return views, err
}

type IPeripheralsImpl struct {
	transport *Transport
}

func (ip *IPeripheralsImpl) Upsert(machineID uint, name, peripheralType, location string) error {
	return ip.transport.upsertPeripheral(machineID, name, peripheralType, location)
}

func (ip *IPeripheralsImpl) ListForMachine(machineID uint) ([]models.Peripheral, error) {
	return ip.transport.listPeripheralsForMachine(machineID)
}

func (ip *IPeripheralsImpl) ListForUser(userID uint) ([]models.PeripheralView, error) {
	return ip.transport.listPeripheralsForUser(userID)
}

func (t *Transport) GetIPeripherals() IPeripherals {
	return &IPeripheralsImpl{transport: t}
}
