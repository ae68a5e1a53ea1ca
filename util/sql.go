package util

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/bsv-blockchain/utxolock/errors"
	"github.com/bsv-blockchain/utxolock/settings"
	"github.com/bsv-blockchain/utxolock/ulogger"
	"github.com/bsv-blockchain/utxolock/util/usql"
	"github.com/labstack/gommon/random"
	_ "github.com/lib/pq"  // postgres driver
	_ "modernc.org/sqlite" // sqlite driver
)

type SQLEngine string

const (
	Postgres     SQLEngine = "postgres"
	Sqlite       SQLEngine = "sqlite"
	SqliteMemory SQLEngine = "sqlitememory"
)

func InitSQLDB(logger ulogger.Logger, storeURL *url.URL, tSettings *settings.Settings) (*usql.DB, error) {
	switch SQLEngine(storeURL.Scheme) {
	case Postgres:
		return InitPostgresDB(logger, storeURL, tSettings)
	case Sqlite, SqliteMemory:
		return InitSQLiteDB(logger, storeURL, tSettings)
	}

	return nil, errors.NewConfigurationError("db: unknown scheme: %s", storeURL.Scheme)
}

func InitPostgresDB(logger ulogger.Logger, storeURL *url.URL, tSettings *settings.Settings) (*usql.DB, error) {
	dbHost := storeURL.Hostname()
	port := storeURL.Port()
	dbPort, _ := strconv.Atoi(port)

	if dbPort == 0 {
		dbPort = 5432
	}

	dbName := ""
	if len(storeURL.Path) > 1 {
		dbName = storeURL.Path[1:]
	}

	dbUser := ""
	dbPassword := ""

	if storeURL.User != nil {
		dbUser = storeURL.User.Username()
		dbPassword, _ = storeURL.User.Password()
	}

	// Default sslmode to "disable"
	sslMode := "disable"

	queryParams := storeURL.Query()
	if val, ok := queryParams["sslmode"]; ok && len(val) > 0 {
		sslMode = val[0]
	}

	dbInfo := fmt.Sprintf("user=%s password=%s dbname=%s sslmode=%s host=%s port=%d", dbUser, dbPassword, dbName, sslMode, dbHost, dbPort)

	db, err := usql.Open("postgres", dbInfo)
	if err != nil {
		return nil, errors.NewServiceError("failed to open postgres DB", err)
	}

	logger.Infof("Using postgres DB: %s@%s:%d/%s", dbUser, dbHost, dbPort, dbName)

	db.SetMaxIdleConns(tSettings.Vault.PostgresMaxIdleConns)
	db.SetMaxOpenConns(tSettings.Vault.PostgresMaxOpenConns)

	return db, nil
}

func InitSQLiteDB(logger ulogger.Logger, storeURL *url.URL, tSettings *settings.Settings) (*usql.DB, error) {
	var filename string

	var err error

	// BEGIN IMMEDIATE takes the write lock up front, so a selection's scan and claim see the
	// same snapshot and concurrent selections queue on busy_timeout instead of failing on upgrade.
	const pragmas = "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_txlock=immediate"

	if SQLEngine(storeURL.Scheme) == SqliteMemory {
		filename = fmt.Sprintf("file:%s?mode=memory&cache=shared&%s", random.String(16), pragmas)
	} else {
		folder := tSettings.DataFolder
		if err = os.MkdirAll(folder, 0755); err != nil {
			return nil, errors.NewServiceError("failed to create data folder %s", folder, err)
		}

		dbName := "vault"
		if len(storeURL.Path) > 1 {
			dbName = storeURL.Path[1:]
		}

		filename, err = filepath.Abs(path.Join(folder, fmt.Sprintf("%s.db", dbName)))
		if err != nil {
			return nil, errors.NewServiceError("failed to get absolute path for sqlite DB", err)
		}

		filename = fmt.Sprintf("file:%s?%s&_pragma=journal_mode(WAL)", filename, pragmas)
	}

	logger.Infof("Using sqlite DB: %s", filename)

	db, err := usql.Open("sqlite", filename)
	if err != nil {
		return nil, errors.NewServiceError("failed to open sqlite DB", err)
	}

	if SQLEngine(storeURL.Scheme) == SqliteMemory {
		// a shared in-memory database only lives as long as a connection to it, and shared-cache
		// table locks ignore busy_timeout. One connection keeps both problems away.
		db.SetMaxOpenConns(1)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.NewStorageUnavailableError("could not connect to sqlite DB", err)
	}

	return db, nil
}
