package db

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
)

type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

type Execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// Conn is what schema management needs from a database handle.
type Conn interface {
	QueryRower
	Execer
}

func HasTable(q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)

	if err != nil {
		// kalau bad connection, jangan spam log, cukup false
		if errors.Is(err, driver.ErrBadConn) {
			return false
		}
		return false
	}
	return name.Valid && name.String != ""
}

func HasColumn(q QueryRower, table, column string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		  AND column_name = ?
		LIMIT 1
	`, table, column).Scan(&name)

	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

// EnsureReservationsTable creates the reservations table when missing so a
// fresh database works without manual migration.
func EnsureReservationsTable(c Conn) error {
	if HasTable(c, "reservations") {
		// tabel lama tanpa kolom updated_at perlu migrasi manual
		if !HasColumn(c, "reservations", "updated_at") {
			return errors.New("tabel reservations sudah ada tapi schema-nya lama, jalankan migrasi dulu")
		}
		return nil
	}
	_, err := c.Exec("CREATE TABLE IF NOT EXISTS reservations (" +
		"id CHAR(36) NOT NULL PRIMARY KEY," +
		"name VARCHAR(100) NOT NULL," +
		"last_name VARCHAR(100) NOT NULL," +
		"email VARCHAR(255) NOT NULL," +
		"driver_license VARCHAR(100) NOT NULL," +
		"phone VARCHAR(32) NOT NULL," +
		"trailer_number VARCHAR(64) NOT NULL," +
		"truck_number VARCHAR(64) NOT NULL," +
		"`references` TEXT NOT NULL," +
		"`date` DATE NOT NULL," +
		"`time` VARCHAR(16) NOT NULL," +
		"status ENUM('pending','collect','issue') NOT NULL DEFAULT 'pending'," +
		"created_at DATETIME NOT NULL," +
		"updated_at DATETIME NOT NULL," +
		"KEY idx_reservations_email (email)," +
		"KEY idx_reservations_date (`date`)," +
		"KEY idx_reservations_created_at (created_at)" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4")
	if err != nil {
		return fmt.Errorf("gagal membuat tabel reservations: %w", err)
	}
	return nil
}
