package probe

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// MaxResponseSize is the largest backend body that is decoded.
const MaxResponseSize = 1 << 20

// HTTPDoer is the subset of *http.Client used to reach the backend.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Payload is the body of a successful backend response.
type Payload struct {
	Message string
	Data    []string
}

type payloadJSON struct {
	Message *string   `json:"message"`
	Data    *[]string `json:"data"`
}

func fetchPayload(ctx context.Context, client HTTPDoer, url string) (*Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ConnectivityFailure{Kind: FailureNetwork, cause: err}
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, &ConnectivityFailure{Kind: FailureNetwork, cause: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, &ConnectivityFailure{
			Kind:       FailureStatus,
			StatusCode: res.StatusCode,
			cause:      errors.Errorf("unexpected status %q", res.Status),
		}
	}

	out, err := io.ReadAll(io.LimitReader(res.Body, MaxResponseSize+1))
	if err != nil {
		return nil, &ConnectivityFailure{Kind: FailureNetwork, StatusCode: res.StatusCode, cause: errors.Wrap(err, "failed to read body")}
	}
	if len(out) > MaxResponseSize {
		return nil, &ConnectivityFailure{Kind: FailureDecode, StatusCode: res.StatusCode, cause: errors.Errorf("body exceeds %d bytes", MaxResponseSize)}
	}

	body := payloadJSON{}
	if err := json.Unmarshal(out, &body); err != nil {
		return nil, &ConnectivityFailure{Kind: FailureDecode, StatusCode: res.StatusCode, cause: errors.Wrap(err, "failed to parse body as JSON")}
	}

	if body.Message == nil {
		return nil, &ConnectivityFailure{Kind: FailureDecode, StatusCode: res.StatusCode, cause: errors.New("field \"message\" is missing")}
	}
	if body.Data == nil {
		return nil, &ConnectivityFailure{Kind: FailureDecode, StatusCode: res.StatusCode, cause: errors.New("field \"data\" is missing")}
	}

	return &Payload{Message: *body.Message, Data: *body.Data}, nil
}
