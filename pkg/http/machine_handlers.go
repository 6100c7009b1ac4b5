package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"transporter-coordinator/pkg/models"
	"transporter-coordinator/pkg/transport"
)

// machineForRequest resolves a machine id claimed by an authenticated key
// and enforces ownership. Missing and not-owned machines get the same 403
// so a key holder cannot probe for other users' machine ids.
func (rs *RestfulServer) machineForRequest(c *gin.Context, machineID uint) (*models.Machine, bool) {
	machine, err := rs.Transport.Machines.Get(machineID)
	if err != nil && !errors.Is(err, transport.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	if err != nil || machine.UserID != currentUser(c).ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid machine"})
		return nil, false
	}
	return machine, true
}

func machineIDFromQuery(c *gin.Context) (uint, bool) {
	machineID, err := strconv.ParseUint(c.Query("machine_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "machine_id required"})
		return 0, false
	}
	return uint(machineID), true
}

type MachineAuthRequest struct {
	Name string `json:"name"`
}

var machineAuthRequestSchema = z.Struct(z.Shape{
	"Name": z.String().Default("Unknown Machine"),
})

func (rs *RestfulServer) MachineAuth(c *gin.Context) {
	var req MachineAuthRequest
	if err := machineAuthRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	machine, err := rs.Transport.Machines.Register(currentUser(c).ID, currentAPIKeyID(c), req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"machine_id": machine.ID,
		"status":     "authenticated",
	})
}

type PeripheralReport struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Location string `json:"location"`
}

type ReportPeripheralsRequest struct {
	MachineID   int                `json:"machine_id"`
	Peripherals []PeripheralReport `json:"peripherals"`
}

var peripheralReportSchema = z.Struct(z.Shape{
	"Name":     z.String().Required(),
	"Type":     z.String(),
	"Location": z.String(),
})

var reportPeripheralsRequestSchema = z.Struct(z.Shape{
	"MachineID":   z.Int().Required(),
	"Peripherals": z.Slice(peripheralReportSchema),
})

func (rs *RestfulServer) MachineReportPeripherals(c *gin.Context) {
	var req ReportPeripheralsRequest
	if err := reportPeripheralsRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	machine, ok := rs.machineForRequest(c, uint(req.MachineID))
	if !ok {
		return
	}

	if !rs.CheckMachineLimiter(machine.ID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	// a report is additive: peripherals absent from it are kept
	for _, peripheral := range req.Peripherals {
		err := rs.Transport.Peripherals.Upsert(
			machine.ID, peripheral.Name, peripheral.Type, peripheral.Location)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "registered": len(req.Peripherals)})
}

func (rs *RestfulServer) MachineGetRoutes(c *gin.Context) {
	machineID, ok := machineIDFromQuery(c)
	if !ok {
		return
	}
	machine, ok := rs.machineForRequest(c, machineID)
	if !ok {
		return
	}

	if !rs.CheckMachineLimiter(machine.ID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	routes, err := rs.Transport.Registry.RoutesForMachine(machine.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, routes)
}

func (rs *RestfulServer) MachineGetCommands(c *gin.Context) {
	machineID, ok := machineIDFromQuery(c)
	if !ok {
		return
	}
	machine, ok := rs.machineForRequest(c, machineID)
	if !ok {
		return
	}

	if !rs.CheckMachineLimiter(machine.ID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	// the poll is the heartbeat: the machine is marked online before the
	// commands are computed
	if err := rs.Transport.Liveness.MarkOnline(machine.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	commands, err := rs.Transport.Command.CommandsFor(machine.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"commands": commands})
}

type UpdateStatusRequest struct {
	MachineID int    `json:"machine_id"`
	Status    string `json:"status"`
}

var updateStatusRequestSchema = z.Struct(z.Shape{
	"MachineID": z.Int().Required(),
	"Status":    z.String().Default(string(models.MachineStatusOnline)),
})

func (rs *RestfulServer) MachineUpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := updateStatusRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	machine, ok := rs.machineForRequest(c, uint(req.MachineID))
	if !ok {
		return
	}

	if !rs.CheckMachineLimiter(machine.ID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	err := rs.Transport.Liveness.SetStatus(machine.ID, models.MachineStatus(req.Status))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, transport.ErrBadStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
