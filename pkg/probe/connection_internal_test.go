package probe

import (
	"errors"
	"testing"

	"github.com/mittwald/lcms-probe/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettleIsMonotonic(t *testing.T) {
	p, err := NewConnectionProbe(&config.Backend{URL: "http://localhost:5000/api/test"})
	require.NoError(t, err)

	require.True(t, p.settle(successState(&Payload{Message: "ok", Data: []string{"a"}})))

	assert.False(t, p.settle(failureState(&ConnectivityFailure{Kind: FailureNetwork, cause: errors.New("late")})))
	assert.False(t, p.settle(successState(&Payload{Message: "again", Data: nil})))
	assert.False(t, p.settle(loadingState()))

	state := p.State()
	assert.Equal(t, PhaseSuccess, state.Phase)
	assert.Equal(t, "ok", state.Message)
	assert.Equal(t, []string{"a"}, state.Data)
}

func TestSettleFailureIsTerminal(t *testing.T) {
	p, err := NewConnectionProbe(&config.Backend{URL: "http://localhost:5000/api/test"})
	require.NoError(t, err)

	require.True(t, p.settle(failureState(&ConnectivityFailure{Kind: FailureStatus, StatusCode: 502})))
	assert.False(t, p.settle(successState(&Payload{Message: "ok", Data: []string{}})))

	assert.Equal(t, PhaseFailure, p.State().Phase)
	assert.Equal(t, 502, p.State().Err.StatusCode)
}

func TestSettleAfterDisposeIsNoop(t *testing.T) {
	p, err := NewConnectionProbe(&config.Backend{URL: "http://localhost:5000/api/test"})
	require.NoError(t, err)

	p.Dispose()

	assert.False(t, p.settle(successState(&Payload{Message: "ok", Data: []string{}})))
	assert.Equal(t, PhaseLoading, p.State().Phase)

	select {
	case <-p.Done():
		t.Fatal("done channel closed after dispose")
	default:
	}
}

func TestConnectivityFailureMessages(t *testing.T) {
	cause := errors.New("connection refused")

	network := &ConnectivityFailure{Kind: FailureNetwork, cause: cause}
	assert.EqualError(t, network, "backend request failed: connection refused")
	assert.ErrorIs(t, network, cause)

	status := &ConnectivityFailure{Kind: FailureStatus, StatusCode: 503}
	assert.EqualError(t, status, "backend returned status 503")

	decode := &ConnectivityFailure{Kind: FailureDecode, cause: errors.New("field \"data\" is missing")}
	assert.EqualError(t, decode, "backend returned an unexpected body: field \"data\" is missing")
}
