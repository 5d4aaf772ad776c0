package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/mittwald/lcms-probe/internal/config"
	log "github.com/sirupsen/logrus"
)

const defaultProbeTimeout = 1 * time.Second

// Handler serves the state of a connection probe together with the results
// of the configured backing-service probes.
type Handler struct {
	backend      *ConnectionProbe
	probes       map[string]Probe
	probeTimeout time.Duration
	upgrader     websocket.Upgrader
}

func NewHandler(backend *ConnectionProbe, cfg *config.Config) (*Handler, error) {
	probes, err := buildProbesFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	return &Handler{
		backend:      backend,
		probes:       probes,
		probeTimeout: defaultProbeTimeout,
	}, nil
}

func (h *Handler) Router() http.Handler {
	m := mux.NewRouter()
	m.Path("/status").Methods(http.MethodGet).HandlerFunc(h.HandleStatus)
	m.Path("/v1/watch").Methods(http.MethodGet).HandlerFunc(h.HandleWatch)
	return m
}

func (h *Handler) HandleStatus(res http.ResponseWriter, req *http.Request) {
	response := StatusResponse{
		Backend: h.backend.State(),
		Probes:  h.execProbes(req.Context()),
	}

	res.Header().Set("Content-Type", "application/json")

	if !response.Healthy() {
		res.WriteHeader(http.StatusServiceUnavailable)
	}

	_ = json.NewEncoder(res).Encode(&response)
}

func (h *Handler) execProbes(ctx context.Context) map[string]*ProbeResult {
	ctx, cancel := context.WithTimeout(ctx, h.probeTimeout)
	defer cancel()

	results := make(map[string]*ProbeResult, len(h.probes))
	resultChan := make(chan *ProbeResult, len(h.probes))

	for name := range h.probes {
		results[name] = &ProbeResult{Name: name, OK: false, Message: "timed out"}

		go func(p Probe, name string) {
			if err := p.Exec(ctx); err != nil {
				resultChan <- &ProbeResult{Name: name, OK: false, Message: err.Error()}
				return
			}
			resultChan <- &ProbeResult{Name: name, OK: true}
		}(h.probes[name], name)
	}

collect:
	for i := 0; i < len(h.probes); i++ {
		select {
		case result := <-resultChan:
			results[result.Name] = result
			if !result.OK {
				log.WithFields(log.Fields{"kind": "probe", "name": result.Name, "err": result.Message}).Warn("probe failed")
			}
		case <-ctx.Done():
			log.WithFields(log.Fields{"kind": "probe"}).Error("timed out")
			break collect
		}
	}

	return results
}

// HandleWatch streams the backend state over a websocket: the current
// snapshot first and, if it is not terminal yet, the settled one.
func (h *Handler) HandleWatch(res http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(res, req, nil)
	if err != nil {
		log.WithError(err).Error("failed to upgrade watch connection")
		return
	}
	defer conn.Close()

	state := h.backend.State()
	if err := conn.WriteJSON(state); err != nil {
		log.WithError(err).Warn("failed to send probe state")
		return
	}

	// handle client disconnects
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if !state.Terminal() {
		select {
		case <-h.backend.Done():
			if err := conn.WriteJSON(h.backend.State()); err != nil {
				log.WithError(err).Warn("failed to send probe state")
				return
			}
		case <-h.backend.Disposed():
		case <-gone:
			log.WithFields(log.Fields{"kind": "watch"}).Debug("client disconnected")
			return
		case <-req.Context().Done():
			return
		}
	}

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
}

// RunServer serves the handler on the given port until ctx is done.
func RunServer(ctx context.Context, h *Handler, listenPort int) error {
	server := http.Server{
		Addr:    fmt.Sprintf(":%d", listenPort),
		Handler: h.Router(),
	}

	go func() {
		<-ctx.Done()
		log.Info("shutting down status server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	err := server.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
