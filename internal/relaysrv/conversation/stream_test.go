package conversation

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguachat/linguachat/internal/relaysrv/upstream"
	"github.com/linguachat/linguachat/internal/relaysrv/upstream/upstreamtest"
)

func TestStreamTurnForwardsDeltasInOrder(t *testing.T) {
	ctx := context.Background()
	stub := &upstreamtest.Client{
		StreamEvents: []upstream.Event{
			{Kind: upstream.EventCreated, ResponseID: "r1"},
			{Kind: upstream.EventDelta, Delta: "Bon"},
			{Kind: upstream.EventDelta, Delta: "jour"},
			{Kind: upstream.EventDone},
		},
	}
	conv := NewStore().Create()
	w := httptest.NewRecorder()

	apperr := streamTurn(ctx, w, stub, conv, frenchPolicy(t), "Hello", 0.3, 128)
	require.Nil(t, apperr)

	// forwarded bytes equal the concatenation of the deltas, which equals
	// the text committed to the session
	assert.Equal(t, "Bonjour", w.Body.String())
	turns := conv.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, Turn{Role: RoleAssistant, Content: "Bonjour"}, turns[1])
	assert.Equal(t, []string{"r1"}, conv.Continuations())
}

func TestStreamTurnErrorEvent(t *testing.T) {
	ctx := context.Background()
	stub := &upstreamtest.Client{
		StreamEvents: []upstream.Event{
			{Kind: upstream.EventCreated, ResponseID: "r1"},
			{Kind: upstream.EventDelta, Delta: "Bon"},
			{Kind: upstream.EventError, Message: "quota exceeded"},
		},
	}
	conv := NewStore().Create()
	w := httptest.NewRecorder()

	apperr := streamTurn(ctx, w, stub, conv, frenchPolicy(t), "Hello", 0.3, 128)
	require.NotNil(t, apperr)
	assert.True(t, errors.Is(apperr, ErrUpstreamFailure))

	// deltas already forwarded stay on the wire, nothing is committed
	assert.Equal(t, "Bon", w.Body.String())
	turns := conv.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, RoleUser, turns[0].Role)
	assert.Empty(t, conv.Continuations())
}

func TestStreamTurnDoneWithoutResponseID(t *testing.T) {
	ctx := context.Background()
	stub := &upstreamtest.Client{
		StreamEvents: []upstream.Event{
			{Kind: upstream.EventDelta, Delta: "Bonjour"},
			{Kind: upstream.EventDone},
		},
	}
	conv := NewStore().Create()
	w := httptest.NewRecorder()

	apperr := streamTurn(ctx, w, stub, conv, frenchPolicy(t), "Hello", 0.3, 128)
	require.Nil(t, apperr)

	// the stream closes cleanly but no assistant turn is recorded, since
	// there is no continuation token to link it to
	assert.Equal(t, "Bonjour", w.Body.String())
	require.Len(t, conv.Turns(), 1)
	assert.Empty(t, conv.Continuations())
}

func TestStreamTurnEndsWithoutTerminalEvent(t *testing.T) {
	ctx := context.Background()
	stub := &upstreamtest.Client{
		StreamEvents: []upstream.Event{
			{Kind: upstream.EventCreated, ResponseID: "r1"},
			{Kind: upstream.EventDelta, Delta: "Bon"},
		},
	}
	conv := NewStore().Create()
	w := httptest.NewRecorder()

	apperr := streamTurn(ctx, w, stub, conv, frenchPolicy(t), "Hello", 0.3, 128)
	require.NotNil(t, apperr)
	assert.True(t, errors.Is(apperr, ErrUpstreamFailure))
	require.Len(t, conv.Turns(), 1)
}

func TestStreamTurnTransportError(t *testing.T) {
	ctx := context.Background()
	stub := &upstreamtest.Client{
		StreamEvents: []upstream.Event{
			{Kind: upstream.EventCreated, ResponseID: "r1"},
		},
		TailErr: fmt.Errorf("connection reset"),
	}
	conv := NewStore().Create()
	w := httptest.NewRecorder()

	apperr := streamTurn(ctx, w, stub, conv, frenchPolicy(t), "Hello", 0.3, 128)
	require.NotNil(t, apperr)
	assert.True(t, errors.Is(apperr, ErrUpstreamFailure))
	require.Len(t, conv.Turns(), 1)
}

func TestStreamTurnOpenFailure(t *testing.T) {
	ctx := context.Background()
	stub := &upstreamtest.Client{
		StreamErr: fmt.Errorf("dial timeout"),
	}
	conv := NewStore().Create()
	w := httptest.NewRecorder()

	apperr := streamTurn(ctx, w, stub, conv, frenchPolicy(t), "Hello", 0.3, 128)
	require.NotNil(t, apperr)
	assert.True(t, errors.Is(apperr, ErrUpstreamFailure))

	// user turn appended at start survives the failure
	require.Len(t, conv.Turns(), 1)
	assert.Equal(t, RoleUser, conv.Turns()[0].Role)
}

func TestStreamTurnCallerDisconnect(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stub := &upstreamtest.Client{
		StreamEvents: []upstream.Event{
			{Kind: upstream.EventCreated, ResponseID: "r1"},
			{Kind: upstream.EventDelta, Delta: "Bon"},
			{Kind: upstream.EventDone},
		},
	}
	conv := NewStore().Create()
	w := httptest.NewRecorder()

	apperr := streamTurn(ctx, w, stub, conv, frenchPolicy(t), "Hello", 0.3, 128)
	require.NotNil(t, apperr)
	assert.True(t, errors.Is(apperr, ErrStreamFailed))

	// upstream consumption was abandoned, nothing was forwarded or committed
	assert.Empty(t, w.Body.String())
	require.Len(t, conv.Turns(), 1)
	assert.Empty(t, conv.Continuations())
}
