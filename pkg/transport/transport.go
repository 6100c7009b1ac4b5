package transport

import (
	"time"

	"transporter-coordinator/pkg/db"
	"transporter-coordinator/pkg/models"
)

type ILiveness interface {
	MarkOnline(machineID uint) error
	Sweep(timeout time.Duration) (int64, error)
	SetStatus(machineID uint, status models.MachineStatus) error
}

type IMachines interface {
	Register(userID uint, apiKeyID uint, name string) (*models.Machine, error)
	Get(machineID uint) (*models.Machine, error)
	ListForUser(userID uint) ([]models.Machine, error)
	Detach(userID uint, machineID uint) error
}

type IPeripherals interface {
	Upsert(machineID uint, name, peripheralType, location string) error
	ListForMachine(machineID uint) ([]models.Peripheral, error)
	ListForUser(userID uint) ([]models.PeripheralView, error)
}

type IRegistry interface {
	RoutesForMachine(machineID uint) ([]models.RouteView, error)
	RoutesForUser(userID uint) ([]models.RouteView, error)
	RouteByID(routeID uint) (*models.RouteView, error)
	CreateRoute(userID uint, input models.CreateRouteInput) (*models.RouteView, error)
	UpdateRoute(userID uint, routeID uint, patch models.UpdateRouteInput) (*models.RouteView, error)
	DeleteRoute(userID uint, routeID uint) error
}

type ICommand interface {
	CommandsFor(machineID uint) ([]models.Command, error)
}

type Transport struct {
	Db  db.DB
	Cfg Config

	Liveness    ILiveness
	Machines    IMachines
	Peripherals IPeripherals
	Registry    IRegistry
	Command     ICommand
}

type ServiceOpts struct {
	Liveness    ILiveness
	Machines    IMachines
	Peripherals IPeripherals
	Registry    IRegistry
	Command     ICommand
}

func (t *Transport) WithServices(opts ServiceOpts) *Transport {
	if opts.Liveness != nil {
		t.Liveness = opts.Liveness
	}
	if opts.Machines != nil {
		t.Machines = opts.Machines
	}
	if opts.Peripherals != nil {
		t.Peripherals = opts.Peripherals
	}
	if opts.Registry != nil {
		t.Registry = opts.Registry
	}
	if opts.Command != nil {
		t.Command = opts.Command
	}
	return t
}
