package config

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

var (
	DB   *sqlx.DB
	dbMu sync.Mutex
)

// ConnectDB initializes the shared DB connection (idempotent). Startup only:
// a database that cannot be reached at boot is fatal.
func ConnectDB(env Env) *sqlx.DB {
	dbMu.Lock()
	defer dbMu.Unlock()

	db, err := connectLocked(env)
	if err != nil {
		log.Fatalf("Gagal konek ke database: %v", err)
	}
	return db
}

func connectLocked(env Env) (*sqlx.DB, error) {
	if DB != nil {
		return DB, nil
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
		env.DBUser,
		env.DBPass,
		env.DBHost,
		env.DBName,
	)

	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	DB = db
	log.Println("Berhasil konek ke database MySQL")
	return DB, nil
}

// EnsureDB pings the shared connection, reconnecting when it was never opened.
// Unlike ConnectDB this is safe on the request path: failures come back as
// errors.
func EnsureDB(env Env) error {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB == nil {
		_, err := connectLocked(env)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return DB.PingContext(ctx)
}

func CloseDB() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		_ = DB.Close()
		DB = nil
	}
}
