package transport

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"transporter-coordinator/pkg/auth"
	"transporter-coordinator/pkg/db"
	"transporter-coordinator/pkg/models"
	"transporter-coordinator/pkg/transport/mocks"
)

func GetMockTransportWithMemorySqliteDialector(t *testing.T, useMockLiveness, useMockRegistry, useMockCommand bool) (
	*gomock.Controller,
	*Transport,
	*mocks.MockILiveness,
	*mocks.MockIRegistry,
	*mocks.MockICommand,
) {
	ctrl := gomock.NewController(t)

	mockLiveness := mocks.NewMockILiveness(ctrl)
	mockRegistry := mocks.NewMockIRegistry(ctrl)
	mockCommand := mocks.NewMockICommand(ctrl)

	dbInstance := db.GetInstance(db.UseMemorySqliteDialector()) // ensure migrations
	tr := &Transport{Db: *dbInstance, Cfg: DefaultConfig()}

	livenessService := tr.GetILiveness()
	if useMockLiveness {
		livenessService = mockLiveness
	}

	registryService := tr.GetIRegistry()
	if useMockRegistry {
		registryService = mockRegistry
	}

	commandService := tr.GetICommand()
	if useMockCommand {
		commandService = mockCommand
	}

	tr.WithServices(ServiceOpts{
		Liveness:    livenessService,
		Machines:    tr.GetIMachines(),
		Peripherals: tr.GetIPeripherals(),
		Registry:    registryService,
		Command:     commandService,
	})

	return ctrl, tr, mockLiveness, mockRegistry, mockCommand
}

func seedUser(t *testing.T, tr *Transport) *models.User {
	t.Helper()
	user := models.User{
		Username:     uuid.NewString(),
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, tr.Db.Conn.Create(&user).Error)
	return &user
}

func seedMachine(t *testing.T, tr *Transport, userID uint) *models.Machine {
	t.Helper()
	_, apiKey, err := auth.CreateAPIKey(tr.Db.Conn, userID, uuid.NewString())
	require.NoError(t, err)

	machine, err := tr.Machines.Register(userID, apiKey.ID, uuid.NewString())
	require.NoError(t, err)
	return machine
}

func seedPeripheral(t *testing.T, tr *Transport, machineID uint, name string) *models.Peripheral {
	t.Helper()
	require.NoError(t, tr.Peripherals.Upsert(machineID, name, "inventory", "left"))

	var peripheral models.Peripheral
	require.NoError(t, tr.Db.Conn.First(&peripheral, "machine_id = ? AND name = ?", machineID, name).Error)
	return &peripheral
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
