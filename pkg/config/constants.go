package config

const (
	// EnvPrefix is the envconfig prefix shared by every setting.
	EnvPrefix = "greencycle"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "GREENCYCLE_DB_DSN"
	EnvDBHost = "GREENCYCLE_DB_HOST"
	EnvDBUser = "GREENCYCLE_DB_USER"
	EnvDBName = "GREENCYCLE_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
