package probe

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/mittwald/lcms-probe/internal/config"
	"github.com/mittwald/lcms-probe/internal/helper"
	log "github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

const (
	defaultVirtualHost = "/"
	defaultDialTimeout = 30 * time.Second
)

type amqpProbe struct {
	url  url.URL
	host string
}

func NewAmqpProbe(cfg *config.Amqp) *amqpProbe {
	hostname := helper.ResolveEnv(cfg.Hostname)
	port := helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Port), "5672", "port", "amqp")
	virtualHost := helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.VirtualHost), defaultVirtualHost, "virtualHost", "amqp")

	u := url.URL{
		Scheme: "amqp",
		Host:   net.JoinHostPort(hostname, port),
		Path:   virtualHost,
	}

	user := helper.ResolveEnv(cfg.User)
	password := helper.ResolveEnv(cfg.Password)
	if user != "" && password != "" {
		u.User = url.UserPassword(user, password)
	}

	return &amqpProbe{url: u, host: u.Host}
}

func (a *amqpProbe) Exec(ctx context.Context) error {
	timeout := defaultDialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	conn, err := amqp.DialConfig(a.url.String(), amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial: func(network, addr string) (net.Conn, error) {
			d := net.Dialer{Timeout: timeout}
			return d.DialContext(ctx, network, addr)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to dial amqp at %s: %w", a.url.Redacted(), err)
	}
	defer conn.Close()

	log.WithFields(log.Fields{"kind": "probe", "name": "amqp", "status": "alive", "host": a.host}).Debug()
	return nil
}
