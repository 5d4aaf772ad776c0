package probe

import (
	"fmt"

	"github.com/mittwald/lcms-probe/internal/config"
)

func buildProbesFromConfig(cfg *config.Config) (map[string]Probe, error) {
	result := make(map[string]Probe)
	if cfg == nil {
		return result, nil
	}

	for i := range cfg.Probes {
		p := &cfg.Probes[i]
		if p.Name == "" {
			return nil, fmt.Errorf("probe #%d has no name", i+1)
		}
		if _, ok := result[p.Name]; ok {
			return nil, fmt.Errorf("probe %q is defined more than once", p.Name)
		}

		if n := countServices(p); n > 1 {
			return nil, fmt.Errorf("probe %q configures more than one service", p.Name)
		}

		switch {
		case p.Filesystem != "":
			result[p.Name] = &filesystemProbe{path: p.Filesystem}
		case p.MySQL != nil:
			result[p.Name] = NewMySQLProbe(p.MySQL)
		case p.Redis != nil:
			result[p.Name] = NewRedisProbe(p.Redis)
		case p.MongoDB != nil:
			result[p.Name] = NewMongoDBProbe(p.MongoDB)
		case p.Amqp != nil:
			result[p.Name] = NewAmqpProbe(p.Amqp)
		case p.SMTP != nil:
			result[p.Name] = NewSmtpProbe(p.SMTP)
		case p.HTTP != nil:
			h, err := NewHttpProbe(p.HTTP)
			if err != nil {
				return nil, fmt.Errorf("probe %q: %w", p.Name, err)
			}
			result[p.Name] = h
		default:
			return nil, fmt.Errorf("probe %q does not configure any service", p.Name)
		}
	}

	return result, nil
}

func countServices(p *config.Probe) int {
	n := 0
	for _, set := range []bool{
		p.Filesystem != "",
		p.MySQL != nil,
		p.Redis != nil,
		p.MongoDB != nil,
		p.Amqp != nil,
		p.SMTP != nil,
		p.HTTP != nil,
	} {
		if set {
			n++
		}
	}
	return n
}
