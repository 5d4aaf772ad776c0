package cli

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/mittwald/lcms-probe/pkg/probe"
)

const DefaultAPIAddress = "http://localhost:9102"

// APIClient talks to the status server of a running "lcms-probe serve".
type APIClient struct {
	apiAddress string
	client     *http.Client
}

func NewAPIClient(apiAddress string) *APIClient {
	return &APIClient{
		apiAddress: apiAddress,
		client:     &http.Client{},
	}
}

func (api *APIClient) Status(ctx context.Context) *TypedAPIResponse[probe.StatusResponse] {
	u, err := api.buildURL("/status")
	if err != nil {
		return &TypedAPIResponse[probe.StatusResponse]{Error: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return &TypedAPIResponse[probe.StatusResponse]{Error: err}
	}

	return NewTypedAPIResponse(probe.StatusResponse{})(api.client.Do(req))
}

func (api *APIClient) Watch() *StreamingAPIResponse {
	dialer, u, err := api.buildWebsocketURL("/v1/watch")
	if err != nil {
		return &StreamingAPIResponse{err: err}
	}

	handler := func(ctx context.Context, conn *websocket.Conn, stateChan chan probe.State, errChan chan error) {
		for {
			state := probe.State{}
			if err := conn.ReadJSON(&state); err != nil {
				select {
				case errChan <- err:
				case <-ctx.Done():
				}
				return
			}

			select {
			case stateChan <- state:
			case <-ctx.Done():
				return
			}
		}
	}

	return NewStreamingAPIResponse(u, dialer, handler)
}
