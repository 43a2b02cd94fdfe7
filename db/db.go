package db

import (
	"time"
	"travelworld/config"

	mysqldriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var Instance *gorm.DB

// Init opens MySQL if it is configured, SQLite otherwise
func Init(log *zap.Logger) {
	var dialector gorm.Dialector
	if dsn := MySQLDSN(); dsn != "" {
		dialector = mysql.Open(dsn)
	} else {
		dialector = sqlite.Open(SQLiteDSN(config.SQLITE_FILE))
	}
	if err := Open(dialector, log); err != nil {
		panic(err)
	}
}

// Open sets Instance to a new connection using the given dialector
func Open(dialector gorm.Dialector, log *zap.Logger) error {
	gLogger := logger.New(
		zap.NewStdLog(log),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
		Logger:                 gLogger,
	})
	if err != nil {
		return err
	}
	Instance = db
	return nil
}

// MySQLDSN returns MYSQL_DSN or assembles one from the other MYSQL_* settings.
// Empty if MySQL is not configured.
func MySQLDSN() string {
	if config.MYSQL_DSN != "" {
		return config.MYSQL_DSN
	}
	if config.MYSQL_DATABASE == "" {
		return ""
	}
	cfg := mysqldriver.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = config.MYSQL_HOST
	cfg.User = config.MYSQL_USER
	cfg.Passwd = config.MYSQL_PASSWORD
	cfg.DBName = config.MYSQL_DATABASE
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

// SQLiteDSN enables foreign keys, otherwise cascades are silently skipped
func SQLiteDSN(file string) string {
	return "file:" + file + "?_foreign_keys=1"
}
