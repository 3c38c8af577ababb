package conversation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguachat/linguachat/internal/relaysrv/langpolicy"
	"github.com/linguachat/linguachat/internal/relaysrv/upstream"
	"github.com/linguachat/linguachat/internal/relaysrv/upstream/upstreamtest"
)

func frenchPolicy(t *testing.T) *langpolicy.Policy {
	t.Helper()
	pol, err := langpolicy.Resolve("fr")
	require.NoError(t, err)
	return pol
}

func TestSendTurn(t *testing.T) {
	ctx := context.Background()
	stub := &upstreamtest.Client{
		CompleteResult: &upstream.Result{ID: "r1", Text: "Bonjour"},
	}
	conv := NewStore().Create()

	rsp, apperr := sendTurn(ctx, stub, conv, frenchPolicy(t), "Hello", 0.3, 128)
	require.Nil(t, apperr)
	assert.Equal(t, "Bonjour", rsp.Message)
	assert.Equal(t, "r1", rsp.ResponseID)

	// session gains one user turn and one assistant turn
	turns := conv.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, Turn{Role: RoleUser, Content: "Hello"}, turns[0])
	assert.Equal(t, Turn{Role: RoleAssistant, Content: "Bonjour"}, turns[1])

	last, ok := conv.LastContinuation()
	require.True(t, ok)
	assert.Equal(t, "r1", last)

	// the upstream request carries the policy and the wrapped input
	reqs := stub.Requests()
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].Instructions, "French")
	assert.Contains(t, reqs[0].Input, "Hello")
	assert.Empty(t, reqs[0].PreviousResponseID, "first turn passes no prior context")
	assert.Equal(t, 0.3, reqs[0].Temperature)
	assert.Equal(t, int64(128), reqs[0].MaxOutputTokens)
}

func TestSendTurnChainsContinuation(t *testing.T) {
	ctx := context.Background()
	stub := &upstreamtest.Client{
		CompleteResult: &upstream.Result{ID: "r1", Text: "Bonjour"},
	}
	conv := NewStore().Create()
	pol := frenchPolicy(t)

	_, apperr := sendTurn(ctx, stub, conv, pol, "Hello", 0.3, 128)
	require.Nil(t, apperr)

	stub.CompleteResult = &upstream.Result{ID: "r2", Text: "Très bien"}
	_, apperr = sendTurn(ctx, stub, conv, pol, "How are you?", 0.3, 128)
	require.Nil(t, apperr)

	reqs := stub.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "r1", reqs[1].PreviousResponseID)
	assert.Equal(t, []string{"r1", "r2"}, conv.Continuations())
}

func TestSendTurnUpstreamFailure(t *testing.T) {
	ctx := context.Background()
	stub := &upstreamtest.Client{
		CompleteErr: fmt.Errorf("connection refused"),
	}
	conv := NewStore().Create()

	_, apperr := sendTurn(ctx, stub, conv, frenchPolicy(t), "Hello", 0.3, 128)
	require.NotNil(t, apperr)
	assert.True(t, errors.Is(apperr, ErrUpstreamFailure))

	// the user turn is recorded without a paired reply
	turns := conv.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, RoleUser, turns[0].Role)
	assert.Empty(t, conv.Continuations())
}
