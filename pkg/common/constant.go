package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyTCDBType string = "TC_DB_TYPE"
	EnvKeyTCDbPath string = "TC_DB_PATH"
	EnvKeyTCDbDSN  string = "TC_DB_DSN"

	EnvKeyTCHttpHostPort string = "TC_HTTP_HOST_PORT"

	EnvKeyTCMachineTimeout string = "TC_MACHINE_TIMEOUT_SECONDS"
	EnvKeyTCSweepInterval  string = "TC_SWEEP_INTERVAL_SECONDS"
	EnvKeyTCFuzzyThreshold string = "TC_FUZZY_THRESHOLD"

	EnvKeyTCJwtSecret string = "TC_JWT_SECRET"

	EnvKeyTCDefaultRate  string = "TC_DEFAULT_RATE"
	EnvKeyTCDefaultBurst string = "TC_DEFAULT_BURST"

	LoggerNameTransportCore  string = "transport_core"
	LoggerNameRestfulServer  string = "restful_server"
	LoggerNameSweeper        string = "sweeper"
	LoggerFieldCategory      string = "category"
	LoggerCategoryLiveness   string = "liveness"
	LoggerCategoryRegistry   string = "registry"
	LoggerCategoryCommand    string = "command"
	LoggerCategoryMachine    string = "machine"
	LoggerCategoryPeripheral string = "peripheral"
	LoggerCategorySweep      string = "sweep"
	LoggerCategoryAuth       string = "auth"
)
