package probe

import (
	"context"
	"database/sql"
	"net"

	"github.com/go-sql-driver/mysql"
	"github.com/mittwald/lcms-probe/internal/config"
	"github.com/mittwald/lcms-probe/internal/helper"
	log "github.com/sirupsen/logrus"
)

type mySQLProbe struct {
	dsn  string
	addr string
}

func NewMySQLProbe(cfg *config.MySQL) *mySQLProbe {
	user := helper.ResolveEnv(cfg.User)
	password := helper.ResolveEnv(cfg.Password)
	hostname := helper.ResolveEnv(cfg.Hostname)
	port := helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Port), "3306", "port", "mysql")
	database := helper.ResolveEnv(cfg.Database)

	connCfg := mysql.NewConfig()
	connCfg.User = user
	connCfg.Passwd = password
	connCfg.Net = "tcp"
	connCfg.Addr = net.JoinHostPort(hostname, port)
	connCfg.DBName = database

	return &mySQLProbe{
		dsn:  connCfg.FormatDSN(),
		addr: connCfg.Addr,
	}
}

func (m *mySQLProbe) Exec(ctx context.Context) error {
	db, err := sql.Open("mysql", m.dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return err
	}

	log.WithFields(log.Fields{"kind": "probe", "name": "mysql", "status": "alive", "host": m.addr}).Debug()
	return nil
}
