package transport

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"transporter-coordinator/pkg/common"
	"transporter-coordinator/pkg/models"
)

const routeViewSelect = "routes.id, routes.user_id, routes.name, " +
	"routes.source_peripheral_id, routes.dest_peripheral_id, " +
	"routes.item_filter, routes.enabled, routes.created_at, " +
	"sp.name AS source_name, sp.machine_id AS source_machine_id, " +
	"dp.name AS dest_name, dp.machine_id AS dest_machine_id"

func (t *Transport) routeQuery() *gorm.DB {
	return t.Db.Conn.Table("routes").
		Select(routeViewSelect).
		Joins("JOIN peripherals sp ON sp.id = routes.source_peripheral_id").
		Joins("JOIN peripherals dp ON dp.id = routes.dest_peripheral_id")
}

// attachItemNames loads the explicit item-name sets for a batch of route
// views in one query.
func (t *Transport) attachItemNames(views []models.RouteView) error {
	for i := range views {
		views[i].ItemNames = []string{}
	}
	if len(views) == 0 {
		return nil
	}

	ids := common.Mapper(views, func(v models.RouteView) uint { return v.ID })

	var items []models.RouteItem
	if err := t.Db.Conn.
		Where("route_id IN ?", ids).
		Order("id").
		Find(&items).Error; err != nil {
		return err
	}

	byRoute := make(map[uint][]string, len(views))
	for _, item := range items {
		byRoute[item.RouteID] = append(byRoute[item.RouteID], item.ItemName)
	}
	for i := range views {
		if names, ok := byRoute[views[i].ID]; ok {
			views[i].ItemNames = names
		}
	}
	return nil
}

// routesForMachine returns every enabled route touching the machine as
// source or destination, in creation order.
func (t *Transport) routesForMachine(machineID uint) ([]models.RouteView, error) {
	views := []models.RouteView{}
	err := t.routeQuery().
		Where("(sp.machine_id = ? OR dp.machine_id = ?) AND routes.enabled = ?",
			machineID, machineID, true).
		Order("routes.created_at, routes.id").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	if err := t.attachItemNames(views); err != nil {
		return nil, err
	}
	return views, nil
}

// routesForUser returns all of the user's routes, enabled or not, in
// creation order.
func (t *Transport) routesForUser(userID uint) ([]models.RouteView, error) {
	views := []models.RouteView{}
	err := t.routeQuery().
		Where("routes.user_id = ?", userID).
		Order("routes.created_at, routes.id").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	if err := t.attachItemNames(views); err != nil {
		return nil, err
	}
	return views, nil
}

func (t *Transport) routeByID(routeID uint) (*models.RouteView, error) {
	views := []models.RouteView{}
	err := t.routeQuery().
		Where("routes.id = ?", routeID).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, ErrNotFound
	}
	if err := t.attachItemNames(views); err != nil {
		return nil, err
	}
	return &views[0], nil
}

// checkEndpointOwnership verifies that a peripheral exists and that its
// machine belongs to the given user. A missing peripheral is an invalid
// reference; someone else's peripheral is forbidden.
func (t *Transport) checkEndpointOwnership(userID uint, peripheralID uint) error {
	var peripheral models.Peripheral
	if err := t.Db.Conn.First(&peripheral, "id = ?", peripheralID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidReference
		}
		return err
	}

	var machine models.Machine
	if err := t.Db.Conn.First(&machine, "id = ?", peripheral.MachineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidReference
		}
		return err
	}

	if machine.UserID != userID {
		return ErrForbidden
	}
	return nil
}

func (t *Transport) createRoute(userID uint, input models.CreateRouteInput) (*models.RouteView, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameTransportCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryRegistry),
	)

	if err := t.checkEndpointOwnership(userID, input.SourcePeripheralID); err != nil {
		return nil, err
	}
	if err := t.checkEndpointOwnership(userID, input.DestPeripheralID); err != nil {
		return nil, err
	}

	route := models.Route{
		UserID:             userID,
		Name:               input.Name,
		SourcePeripheralID: input.SourcePeripheralID,
		DestPeripheralID:   input.DestPeripheralID,
		ItemFilter:         input.ItemFilter,
		Enabled:            true,
		CreatedAt:          time.Now().UTC(),
	}

	err := t.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&route).Error; err != nil {
			return err
		}
		for _, itemName := range input.ItemNames {
			if err := tx.Create(&models.RouteItem{RouteID: route.ID, ItemName: itemName}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Created route",
		zap.Uint("route_id", route.ID),
		zap.Uint("user_id", userID),
		zap.String("name", route.Name))

	return t.routeByID(route.ID)
}

func (t *Transport) updateRoute(userID uint, routeID uint, patch models.UpdateRouteInput) (*models.RouteView, error) {
	var route models.Route
	if err := t.Db.Conn.First(&route, "id = ?", routeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if route.UserID != userID {
		return nil, ErrForbidden
	}

	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.SourcePeripheralID != nil {
		if err := t.checkEndpointOwnership(userID, *patch.SourcePeripheralID); err != nil {
			return nil, err
		}
		updates["source_peripheral_id"] = *patch.SourcePeripheralID
	}
	if patch.DestPeripheralID != nil {
		if err := t.checkEndpointOwnership(userID, *patch.DestPeripheralID); err != nil {
			return nil, err
		}
		updates["dest_peripheral_id"] = *patch.DestPeripheralID
	}
	if patch.ItemFilter != nil {
		updates["item_filter"] = *patch.ItemFilter
	}
	if patch.Enabled != nil {
		updates["enabled"] = *patch.Enabled
	}

	err := t.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&route).Updates(updates).Error; err != nil {
				return err
			}
		}
		if patch.ItemNames != nil {
			// replace, not merge
			if err := tx.Where("route_id = ?", routeID).Delete(&models.RouteItem{}).Error; err != nil {
				return err
			}
			for _, itemName := range *patch.ItemNames {
				if err := tx.Create(&models.RouteItem{RouteID: routeID, ItemName: itemName}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return t.routeByID(routeID)
}

func (t *Transport) deleteRoute(userID uint, routeID uint) error {
	var route models.Route
	if err := t.Db.Conn.First(&route, "id = ?", routeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if route.UserID != userID {
		return ErrForbidden
	}

	return t.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("route_id = ?", routeID).Delete(&models.RouteItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&route).Error
	})
}

type IRegistryImpl struct {
	transport *Transport
}

func (ir *IRegistryImpl) RoutesForMachine(machineID uint) ([]models.RouteView, error) {
	return ir.transport.routesForMachine(machineID)
}

func (ir *IRegistryImpl) RoutesForUser(userID uint) ([]models.RouteView, error) {
	return ir.transport.routesForUser(userID)
}

func (ir *IRegistryImpl) RouteByID(routeID uint) (*models.RouteView, error) {
	return ir.transport.routeByID(routeID)
}

func (ir *IRegistryImpl) CreateRoute(userID uint, input models.CreateRouteInput) (*models.RouteView, error) {
	return ir.transport.createRoute(userID, input)
}

func (ir *IRegistryImpl) UpdateRoute(userID uint, routeID uint, patch models.UpdateRouteInput) (*models.RouteView, error) {
	return ir.transport.updateRoute(userID, routeID, patch)
}

func (ir *IRegistryImpl) DeleteRoute(userID uint, routeID uint) error {
	return ir.transport.deleteRoute(userID, routeID)
}

func (t *Transport) GetIRegistry() IRegistry {
	return &IRegistryImpl{transport: t}
}
