package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
)

func (api *APIClient) buildURL(path string) (*url.URL, error) {
	u, err := url.Parse(api.apiAddress)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported api address scheme %q", u.Scheme)
	}

	u.Path = strings.TrimRight(u.Path, "/") + path
	return u, nil
}

func (api *APIClient) buildWebsocketURL(path string) (*websocket.Dialer, *url.URL, error) {
	u, err := api.buildURL(path)
	if err != nil {
		return nil, nil, err
	}

	if u.Scheme == "https" {
		u.Scheme = "wss"
	} else {
		u.Scheme = "ws"
	}

	return websocket.DefaultDialer, u, nil
}
