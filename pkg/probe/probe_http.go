package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mittwald/lcms-probe/internal/config"
	"github.com/mittwald/lcms-probe/internal/helper"
	log "github.com/sirupsen/logrus"
)

type httpProbe struct {
	method  string
	url     string
	timeout time.Duration
	status  *regexp.Regexp
	client  HTTPDoer
}

func NewHttpProbe(cfg *config.HTTP) (*httpProbe, error) {
	method := strings.ToUpper(helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Method), http.MethodGet, "method", "http"))
	target := helper.ResolveEnv(cfg.URL)
	timeoutStr := helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Timeout), "5s", "timeout", "http")
	expectStatus := helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.ExpectStatus), `^2\d\d\s`, "expectStatus", "http")

	if u, err := url.Parse(target); err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid http probe url %q", target)
	}

	status, err := regexp.Compile(expectStatus)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP status line regexp: %w", err)
	}

	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration: %w", err)
	}

	return &httpProbe{
		method:  method,
		url:     target,
		timeout: timeout,
		status:  status,
		client:  &http.Client{},
	}, nil
}

func (h *httpProbe) Exec(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, h.method, h.url, nil)
	if err != nil {
		return err
	}

	res, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	// res.Status is "200 OK"; the trailing space lets patterns anchor on the code.
	if !h.status.MatchString(res.Status + " ") {
		return fmt.Errorf("http service %q returned status %q", h.url, res.Status)
	}

	log.WithFields(log.Fields{"kind": "probe", "name": "http", "status": "alive", "host": h.url}).Debug()
	return nil
}
