package config

// Supported values of DB.GormEngine.
const (
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string // database name, or the file path for sqlite
	GormEngine string // mysql, postgres or sqlite
	Debug      bool   // log every sql statement
}
