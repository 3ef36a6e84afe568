package store

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/antonio-alexander/go-employee-seeder/internal"
	"github.com/antonio-alexander/go-employee-seeder/internal/utilities"

	"github.com/cenkalti/backoff/v5"
	_ "github.com/go-sql-driver/mysql" //import for driver support
	"github.com/pkg/errors"
)

const (
	databaseIsolation = sql.LevelSerializable
	tableRecords      = "records"
	tableRecordIds    = "record_ids"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS ` + tableRecordIds + ` (
		collection VARCHAR(64) NOT NULL PRIMARY KEY,
		id BIGINT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS ` + tableRecords + ` (
		collection VARCHAR(64) NOT NULL,
		id BIGINT NOT NULL,
		body BLOB NOT NULL,
		PRIMARY KEY (collection, id)
	);`,
}

type mysqlStore struct {
	sync.RWMutex
	config struct {
		hostname       string
		port           string
		username       string
		password       string
		database       string
		connectTimeout time.Duration
		queryTimeout   time.Duration
	}
	*sql.DB
	logger utilities.Logger
}

func NewMySql(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	internal.Clearer
	Store
} {
	s := &mysqlStore{}
	for _, parameter := range parameters {
		switch p := parameter.(type) {
		case utilities.Logger:
			s.logger = p
		}
	}
	return s
}

func (s *mysqlStore) info(ctx context.Context, format string, v ...any) {
	if s.logger != nil {
		s.logger.Info(ctx, format, v...)
	}
}

func (s *mysqlStore) Configure(envs map[string]string) error {
	s.config.hostname, s.config.port = "localhost", "3306"
	s.config.database = "employee_management"
	s.config.connectTimeout = 30 * time.Second
	s.config.queryTimeout = 10 * time.Second
	if databaseHost := envs["DATABASE_HOST"]; databaseHost != "" {
		s.config.hostname = databaseHost
	}
	if databasePort := envs["DATABASE_PORT"]; databasePort != "" {
		s.config.port = databasePort
	}
	if database := envs["DATABASE_NAME"]; database != "" {
		s.config.database = database
	}
	if username := envs["DATABASE_USER"]; username != "" {
		s.config.username = username
	}
	if password := envs["DATABASE_PASSWORD"]; password != "" {
		s.config.password = password
	}
	if connectTimeout := envs["DATABASE_CONNECT_TIMEOUT"]; connectTimeout != "" {
		i, err := strconv.ParseInt(connectTimeout, 10, 64)
		if err != nil {
			return errors.Wrap(err, "invalid DATABASE_CONNECT_TIMEOUT")
		}
		s.config.connectTimeout = time.Duration(i) * time.Second
	}
	if queryTimeout := envs["DATABASE_QUERY_TIMEOUT"]; queryTimeout != "" {
		i, err := strconv.ParseInt(queryTimeout, 10, 64)
		if err != nil {
			return errors.Wrap(err, "invalid DATABASE_QUERY_TIMEOUT")
		}
		s.config.queryTimeout = time.Duration(i) * time.Second
	}
	return nil
}

// Open keeps pinging the database until it answers or the connect timeout
// elapses, then creates the tables if they're missing.
func (s *mysqlStore) Open(ctx context.Context) error {
	s.Lock()
	defer s.Unlock()

	dataSourceName := fmt.Sprintf("%s:%s@tcp(%s)/%s",
		s.config.username, s.config.password,
		net.JoinHostPort(s.config.hostname, s.config.port), s.config.database)
	db, err := sql.Open("mysql", dataSourceName)
	if err != nil {
		return err
	}
	if _, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, db.PingContext(ctx)
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(s.config.connectTimeout),
		backoff.WithNotify(func(err error, next time.Duration) {
			s.info(ctx, "database not ready, retrying in %v: %s", next, err)
		}),
	); err != nil {
		_ = db.Close()
		return errors.Wrap(err, "unable to connect to database")
	}
	for _, query := range mysqlSchema {
		if _, err := db.ExecContext(ctx, query); err != nil {
			_ = db.Close()
			return err
		}
	}
	s.DB = db
	return nil
}

func (s *mysqlStore) Close(ctx context.Context) error {
	s.Lock()
	defer s.Unlock()

	if s.DB == nil {
		return nil
	}
	err := s.DB.Close()
	s.DB = nil
	return err
}

func (s *mysqlStore) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.queryTimeout)
	defer cancel()
	for _, table := range []string{tableRecords, tableRecordIds} {
		if _, err := s.ExecContext(ctx, "DELETE FROM "+table+";"); err != nil {
			return err
		}
	}
	return nil
}

func (s *mysqlStore) NextId(ctx context.Context, collection string) (int64, error) {
	var id int64

	ctx, cancel := context.WithTimeout(ctx, s.config.queryTimeout)
	defer cancel()
	tx, err := s.BeginTx(ctx, &sql.TxOptions{Isolation: databaseIsolation})
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()
	if _, err := tx.ExecContext(ctx, `INSERT INTO `+tableRecordIds+` (collection, id)
		VALUES (?, 1) ON DUPLICATE KEY UPDATE id = id + 1;`, collection); err != nil {
		return 0, err
	}
	row := tx.QueryRowContext(ctx, `SELECT id FROM `+tableRecordIds+`
		WHERE collection = ?;`, collection)
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *mysqlStore) RecordWrite(ctx context.Context, collection string, id int64, record []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.queryTimeout)
	defer cancel()
	_, err := s.ExecContext(ctx, `INSERT INTO `+tableRecords+` (collection, id, body)
		VALUES (?, ?, ?) ON DUPLICATE KEY UPDATE body = VALUES(body);`,
		collection, id, record)
	return err
}

func (s *mysqlStore) RecordsRead(ctx context.Context, collection string) ([][]byte, error) {
	var records [][]byte

	ctx, cancel := context.WithTimeout(ctx, s.config.queryTimeout)
	defer cancel()
	rows, err := s.QueryContext(ctx, `SELECT body FROM `+tableRecords+`
		WHERE collection = ? ORDER BY id;`, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var record []byte

		if err := rows.Scan(&record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
