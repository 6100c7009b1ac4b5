package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"transporter-coordinator/pkg/auth"
	"transporter-coordinator/pkg/common"
	"transporter-coordinator/pkg/db"
	tcHttp "transporter-coordinator/pkg/http"
	"transporter-coordinator/pkg/transport"
)

func secondsEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		log.Fatalf("Invalid %s, should be a positive integer of seconds", key)
	}
	return time.Duration(seconds) * time.Second
}

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	tcDbType := os.Getenv(common.EnvKeyTCDBType)
	switch tcDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	case "postgres":
		dbInstance = db.GetInstance(db.UsePostgresDialector())
	default:
		log.Fatal("Unknown TC_DB_TYPE: " + tcDbType)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyTCHttpHostPort))

	jwtSecret := strings.TrimSpace(os.Getenv(common.EnvKeyTCJwtSecret))
	if jwtSecret == "" {
		log.Fatal("TC_JWT_SECRET must be set")
	}

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyTCDefaultRate), 64); err != nil {
		log.Fatal("Invalid TC_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyTCDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid TC_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	cfg := transport.DefaultConfig()
	cfg.MachineTimeout = secondsEnv(common.EnvKeyTCMachineTimeout, cfg.MachineTimeout)
	cfg.SweepInterval = secondsEnv(common.EnvKeyTCSweepInterval, cfg.SweepInterval)
	if raw := strings.TrimSpace(os.Getenv(common.EnvKeyTCFuzzyThreshold)); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil || threshold <= 0 || threshold > 1 {
			log.Fatal("Invalid TC_FUZZY_THRESHOLD, should be a float in (0, 1]")
		}
		cfg.Match.Threshold = threshold
	}

	logger := common.GetLogger()

	core := transport.Transport{
		Db:  *dbInstance,
		Cfg: cfg,
	}
	core.WithServices(transport.ServiceOpts{
		Liveness:    core.GetILiveness(),
		Machines:    core.GetIMachines(),
		Peripherals: core.GetIPeripherals(),
		Registry:    core.GetIRegistry(),
		Command:     core.GetICommand(),
	})

	if err := auth.EnsureDefaultAdmin(core.Db.Conn); err != nil {
		log.Fatalf("failed to ensure default admin: %v", err)
	}

	sweeper := transport.NewSweeper(&core)
	sweeper.Start(context.Background())
	defer sweeper.Stop()

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	logger.Info("Starting HTTP server on port " + httpHostPort)
	rs := &tcHttp.RestfulServer{
		Server:           gin.Default(),
		Transport:        &core,
		RateLimiterStore: transport.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
		JWTSecret:        []byte(jwtSecret),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)),
		zap.Duration("machine_timeout", cfg.MachineTimeout),
		zap.Duration("sweep_interval", cfg.SweepInterval))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
