package driver

import (
	"context"
	"database/sql"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
	log "github.com/sirupsen/logrus"

	"school-directory/config"
)

// DSN builds the MySQL data source name for cfg.
func DSN(cfg config.DB) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Name
	mc.TLSConfig = cfg.TLS
	mc.Timeout = cfg.DialTimeout
	mc.ParseTime = true
	return mc.FormatDSN()
}

// ConnectDB opens the connection pool. The connectivity probe only logs on
// failure; the pool keeps retrying connections as requests arrive.
func ConnectDB(ctx context.Context, cfg config.DB) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	fields := log.Fields{
		"host":     cfg.Host,
		"port":     cfg.Port,
		"user":     cfg.User,
		"database": cfg.Name,
		"password": mask(cfg.Password),
	}
	if err := Probe(ctx, db); err != nil {
		log.WithFields(fields).WithError(err).Error("database connection failed")
	} else {
		log.WithFields(fields).Info("connected to database")
	}
	return db, nil
}

// Probe acquires one connection and gives it back.
func Probe(ctx context.Context, db *sql.DB) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return conn.PingContext(ctx)
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "***"
}
