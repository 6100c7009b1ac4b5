package transport

import (
	"fmt"

	"transporter-coordinator/pkg/common"
	"transporter-coordinator/pkg/models"
)

// commandsFor projects every enabled route touching the machine into a
// command, in registry order. Commands are re-sent on every poll until the
// route is disabled; the poll itself is what proves liveness, so the
// machine's own online status is never consulted here.
func (t *Transport) commandsFor(machineID uint) ([]models.Command, error) {
	if t.Registry == nil {
		return nil, fmt.Errorf("registry service not available")
	}

	routes, err := t.Registry.RoutesForMachine(machineID)
	if err != nil {
		return nil, err
	}

	return common.Mapper(routes, func(r models.RouteView) models.Command {
		return models.Command{
			RouteID:         r.ID,
			Action:          models.ActionTransfer,
			Source:          r.SourceName,
			Dest:            r.DestName,
			SourceMachineID: r.SourceMachineID,
			DestMachineID:   r.DestMachineID,
			ItemFilter:      r.ItemFilter,
			ItemNames:       r.ItemNames,
		}
	}), nil
}

type ICommandImpl struct {
	transport *Transport
}

func (ic *ICommandImpl) CommandsFor(machineID uint) ([]models.Command, error) {
	return ic.transport.commandsFor(machineID)
}

func (t *Transport) GetICommand() ICommand {
	return &ICommandImpl{transport: t}
}
