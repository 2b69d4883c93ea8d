package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Params identifies the MySQL database holding the submission audit trail.
type Params struct {
	User string
	Pass string
	Host string
	Port string
	Name string
}

// DSN renders p for the mysql driver.  Times are parsed into time.Time and
// kept in UTC.
func (p Params) DSN() string {
	c := mysql.NewConfig()
	c.User = p.User
	c.Passwd = p.Pass
	c.Net = "tcp"
	c.Addr = fmt.Sprintf("%s:%s", p.Host, p.Port)
	c.DBName = p.Name
	c.ParseTime = true
	c.Loc = time.UTC
	c.Params = map[string]string{"charset": "utf8mb4"}
	return c.FormatDSN()
}

// Open connects to MySQL and verifies the connection.
func Open(p Params) (*sql.DB, error) {
	db, err := sql.Open("mysql", p.DSN())
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

const submissionsDDL = `CREATE TABLE IF NOT EXISTS booking_submissions (
	id             BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	booking_id     VARCHAR(64)    NOT NULL DEFAULT '',
	draft_id       CHAR(36)       NOT NULL,
	user_id        VARCHAR(64)    NOT NULL,
	customer_name  VARCHAR(255)   NOT NULL,
	currency       CHAR(3)        NOT NULL,
	grand_total    DECIMAL(14,4)  NOT NULL,
	balance_due    DECIMAL(14,4)  NOT NULL,
	open_url       VARCHAR(1024)  NOT NULL DEFAULT '',
	submitted_at   DATETIME       NOT NULL,
	created_at     DATETIME       NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uq_booking_submissions_draft (draft_id),
	KEY idx_booking_submissions_booking (booking_id),
	KEY idx_booking_submissions_submitted (submitted_at)
)`

// EnsureSchema creates the tables the desk writes to when they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, submissionsDDL); err != nil {
		return fmt.Errorf("create booking_submissions: %w", err)
	}
	return nil
}
