package conversation

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/linguachat/linguachat/internal/common/apperrors"
	"github.com/linguachat/linguachat/internal/relaysrv/config"
	"github.com/linguachat/linguachat/internal/relaysrv/langpolicy"
	"github.com/linguachat/linguachat/internal/relaysrv/upstream"
	"github.com/linguachat/linguachat/pkg/api"
)

var conversationStore *Store

func init() {
	conversationStore = NewStore()
}

// ConversationStore returns the process-wide session store.
func ConversationStore() *Store {
	return conversationStore
}

// upstreamOverride replaces the config-backed client when set. Tests use this
// to substitute scripted stubs.
var upstreamOverride upstream.Client

// SetUpstreamClient overrides the upstream client. Passing nil restores the
// config-backed OpenAI client.
func SetUpstreamClient(c upstream.Client) {
	upstreamOverride = c
}

// getUpstreamClient returns the upstream client for one relay call. The
// upstream credential is verified here, before any call is attempted.
func getUpstreamClient() (upstream.Client, apperrors.Error) {
	if upstreamOverride != nil {
		return upstreamOverride, nil
	}
	cfg := config.Config()
	if cfg.Upstream.APIKey == "" {
		return nil, ErrMissingCredentials
	}
	return upstream.NewOpenAI(upstream.OpenAIOptions{
		APIKey:  cfg.Upstream.APIKey,
		Model:   cfg.Upstream.Model,
		BaseURL: cfg.Upstream.BaseURL,
	}), nil
}

// sendTurn relays one conversational turn synchronously: the user turn is
// appended, the upstream is called once with the last continuation token as
// prior context, and on success the assistant turn is appended with the
// upstream response identifier as the new continuation token.
//
// A failed upstream call leaves the user turn in place without a paired
// reply; the input side of the exchange is always retained.
func sendTurn(ctx context.Context, client upstream.Client, conv *Conversation, pol *langpolicy.Policy, message string, temperature float64, maxTokens int64) (*api.MessageResponse, apperrors.Error) {
	conv.AppendUserTurn(message)
	prev, _ := conv.LastContinuation()

	res, err := client.Complete(ctx, upstream.Request{
		Instructions:       pol.Instructions,
		Input:              pol.WrapInput(message),
		PreviousResponseID: prev,
		Temperature:        temperature,
		MaxOutputTokens:    maxTokens,
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("completion call failed")
		return nil, ErrUpstreamFailure.MsgErr("completion call failed", err)
	}

	conv.AppendAssistantTurn(res.Text, res.ID)
	log.Ctx(ctx).Debug().Str("response_id", res.ID).Msg("turn completed")

	return &api.MessageResponse{
		Message:    res.Text,
		ResponseID: res.ID,
	}, nil
}
