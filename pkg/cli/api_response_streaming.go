package cli

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/mittwald/lcms-probe/pkg/probe"
)

type StreamingAPIResponseHandler func(ctx context.Context, conn *websocket.Conn, states chan probe.State, err chan error)

// StreamingAPIResponse delivers the states pushed by the watch endpoint.
type StreamingAPIResponse struct {
	url           *url.URL
	dialer        *websocket.Dialer
	streamingFunc StreamingAPIResponseHandler
	err           error
}

func NewStreamingAPIResponse(url *url.URL, dialer *websocket.Dialer, streamingFunc StreamingAPIResponseHandler) *StreamingAPIResponse {
	return &StreamingAPIResponse{
		url:           url,
		dialer:        dialer,
		streamingFunc: streamingFunc,
	}
}

func (resp *StreamingAPIResponse) Err() error {
	return resp.err
}

// Stream calls fn for every received state until the server closes the
// stream, fn returns an error or ctx is done.
func (resp *StreamingAPIResponse) Stream(ctx context.Context, fn func(probe.State) error) error {
	if resp.err != nil {
		return resp.err
	}

	conn, _, err := resp.dialer.DialContext(ctx, resp.url.String(), nil)
	if err != nil {
		return fmt.Errorf("error dialing to %s: %w", resp.url.String(), err)
	}
	defer conn.Close()

	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stateChan := make(chan probe.State)
	errChan := make(chan error)

	go resp.streamingFunc(streamCtx, conn, stateChan, errChan)

	for {
		select {
		case state := <-stateChan:
			if err := fn(state); err != nil {
				return err
			}
		case err := <-errChan:
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
