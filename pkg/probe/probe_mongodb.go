package probe

import (
	"context"
	"net"
	"net/url"

	"github.com/mittwald/lcms-probe/internal/config"
	"github.com/mittwald/lcms-probe/internal/helper"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mongoDBProbe struct {
	uri  string
	host string
}

func NewMongoDBProbe(cfg *config.MongoDB) *mongoDBProbe {
	if u := helper.ResolveEnv(cfg.URL); u != "" {
		return &mongoDBProbe{uri: u, host: "<url>"}
	}

	hostname := helper.ResolveEnv(cfg.Hostname)
	port := helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Port), "27017", "port", "mongodb")

	u := url.URL{
		Scheme: "mongodb",
		Host:   net.JoinHostPort(hostname, port),
		Path:   "/" + helper.ResolveEnv(cfg.Database),
	}

	user := helper.ResolveEnv(cfg.User)
	password := helper.ResolveEnv(cfg.Password)
	if user != "" {
		u.User = url.UserPassword(user, password)
	}

	return &mongoDBProbe{uri: u.String(), host: u.Host}
}

func (m *mongoDBProbe) Exec(ctx context.Context) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.uri))
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return err
	}

	log.WithFields(log.Fields{"kind": "probe", "name": "mongodb", "status": "alive", "host": m.host}).Debug()
	return nil
}
