package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/iliyamo/pizza-order-service/internal/config"
	"github.com/iliyamo/pizza-order-service/internal/utils"
)

// Open connects to MySQL and verifies the connection. The *sql.DB is
// returned even when the ping fails so the process can start in
// degraded mode; callers decide whether the error is fatal.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return db, err
	}
	return db, nil
}

// tableStatements creates the full schema. Every statement is
// IF NOT EXISTS so bootstrap is safe to run against an existing
// database.
var tableStatements = []string{
	`CREATE TABLE IF NOT EXISTS user (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS userRole (
		userId INT NOT NULL,
		role VARCHAR(32) NOT NULL,
		objectId INT NOT NULL DEFAULT 0,
		INDEX (userId),
		INDEX (objectId)
	)`,
	`CREATE TABLE IF NOT EXISTS franchise (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS store (
		id INT AUTO_INCREMENT PRIMARY KEY,
		franchiseId INT NOT NULL,
		name VARCHAR(255) NOT NULL,
		INDEX (franchiseId)
	)`,
	`CREATE TABLE IF NOT EXISTS menuItem (
		id INT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description VARCHAR(255) NOT NULL,
		image VARCHAR(1024) NOT NULL,
		price DECIMAL(10,4) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dinerOrder (
		id INT AUTO_INCREMENT PRIMARY KEY,
		dinerId INT NOT NULL,
		franchiseId INT NOT NULL,
		storeId INT NOT NULL,
		date DATETIME NOT NULL,
		INDEX (dinerId)
	)`,
	`CREATE TABLE IF NOT EXISTS orderItem (
		id INT AUTO_INCREMENT PRIMARY KEY,
		orderId INT NOT NULL,
		menuId INT NOT NULL,
		description VARCHAR(255) NOT NULL,
		price DECIMAL(10,4) NOT NULL,
		INDEX (orderId)
	)`,
	`CREATE TABLE IF NOT EXISTS auth (
		token VARCHAR(512) NOT NULL PRIMARY KEY,
		userId INT NOT NULL,
		INDEX (userId)
	)`,
}

// Bootstrap creates the schema and, when the user table is empty, seeds
// the default admin account. It is tolerant of already-existing tables;
// a failure leaves the process running in degraded mode and is reported
// to the caller for logging only.
func Bootstrap(ctx context.Context, db *sql.DB, cfg config.Config) error {
	for _, stmt := range tableStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return seedAdmin(ctx, db, cfg)
}

// seedAdmin inserts the default admin only when no users exist at all,
// so a wiped database always has a way in.
func seedAdmin(ctx context.Context, db *sql.DB, cfg config.Config) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user`).Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}
	hash, err := utils.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	res, err := db.ExecContext(ctx,
		`INSERT INTO user (name, email, password) VALUES (?, ?, ?)`,
		"admin", cfg.AdminEmail, hash)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO userRole (userId, role, objectId) VALUES (?, ?, 0)`,
		id, "admin"); err != nil {
		return fmt.Errorf("seed admin role: %w", err)
	}
	log.Printf("seeded default admin %s", cfg.AdminEmail)
	return nil
}
