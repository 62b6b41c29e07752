package config

// Store drivers
const (
	StoreDriverMemory   = "memory"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
	StoreDriverNone     = "none"
)

// Environment names
const (
	EnvironmentDev        = "dev"
	EnvironmentProd       = "prod"
	EnvironmentProduction = "production"
)

// Example values shipped in .env.example
const (
	ExampleDBPassword = "change_this_secure_password"
	ExampleAPIKey     = "generate_with_openssl_rand_hex_32"
)

const (
	ErrMsgParseEnv               = "failed to parse environment"
	ErrMsgInvalidConfig          = "invalid configuration"
	ErrMsgTierLevelsNotAscending = "RESOLVER_TIER_LEVELS must be ascending"
)

const (
	WarnExampleDBPassword       = "DB_PASSWORD appears to be using the example value - please use a secure password"
	WarnExampleAPIKey           = "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32"
	WarnMemoryStoreInProduction = "STORE_DRIVER=memory in production - nothing will survive a restart"
	WarnNoStore                 = "STORE_DRIVER=none - every store call will fail with not initialized"
)
