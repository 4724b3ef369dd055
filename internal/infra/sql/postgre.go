package sql

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	maxRetries    = 10
	_queryTimeout = 5 * time.Second
)

func NewPosgreORM(dsn string) (*DB, error) {
	pass, ok := os.LookupEnv("FOODOPS_SERVER_POSTGRES_PASSWORD")
	if ok {
		dsn = fmt.Sprintf("%s password=%s", dsn, pass)
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return &DB{
		DB:                   gormDB,
		autoMigrationEnabled: true,
	}, nil
}

// PostgreDatabase is a thin pgx pool used for readiness probing and raw
// statements that don't go through the ORM.
type PostgreDatabase struct {
	url  string
	Conn *pgxpool.Pool
}

func NewPosgreDatabase(url string) *PostgreDatabase {
	return &PostgreDatabase{url: url}
}

func (d *PostgreDatabase) Open() error {
	for range maxRetries {
		conn, err := pgxpool.New(context.Background(), d.url)
		if err != nil {
			time.Sleep(5 * time.Second)
		} else {
			d.Conn = conn
			return nil
		}
	}

	return fmt.Errorf("imposible to connect to database after %d retries", maxRetries)
}

func (d *PostgreDatabase) Close() {
	d.Conn.Close()
}

func (d *PostgreDatabase) Ping(ctx context.Context) error {
	pingCtx, cancelFn := context.WithTimeout(ctx, _queryTimeout)
	defer cancelFn()

	return d.Conn.Ping(pingCtx)
}

func (d *PostgreDatabase) Command(sql string) error {
	_, err := d.Conn.Exec(context.Background(), sql)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	return nil
}
