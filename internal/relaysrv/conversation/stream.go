package conversation

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/linguachat/linguachat/internal/common/apperrors"
	"github.com/linguachat/linguachat/internal/relaysrv/langpolicy"
	"github.com/linguachat/linguachat/internal/relaysrv/upstream"
)

// streamState tracks the lifecycle of one streaming relay call:
// started -> receiving -> {completed | failed}.
type streamState int

const (
	streamStarted streamState = iota
	streamReceiving
	streamCompleted
	streamFailed
)

func (s streamState) String() string {
	switch s {
	case streamStarted:
		return "started"
	case streamReceiving:
		return "receiving"
	case streamCompleted:
		return "completed"
	case streamFailed:
		return "failed"
	}
	return "unknown"
}

// streamTurn relays one conversational turn as an incremental stream. Deltas
// are forwarded to the caller as they arrive, one flush per chunk; the
// accumulated text is committed to the session only when the upstream signals
// clean completion and a response identifier was captured. A completion with
// no identifier closes the stream without recording the turn, since there
// would be no linkable continuation token.
//
// Any failure (upstream error event, transport error, caller disconnect, or a
// stream that ends without a terminal event) leaves the session with the user
// turn but no assistant turn.
func streamTurn(ctx context.Context, w http.ResponseWriter, client upstream.Client, conv *Conversation, pol *langpolicy.Policy, message string, temperature float64, maxTokens int64) apperrors.Error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return ErrStreamFailed.Msg("response writer does not support flushing")
	}

	state := streamStarted
	defer func() {
		log.Ctx(ctx).Debug().Str("state", state.String()).Msg("stream finished")
	}()

	conv.AppendUserTurn(message)
	prev, _ := conv.LastContinuation()

	es, err := client.Stream(ctx, upstream.Request{
		Instructions:       pol.Instructions,
		Input:              pol.WrapInput(message),
		PreviousResponseID: prev,
		Temperature:        temperature,
		MaxOutputTokens:    maxTokens,
	})
	if err != nil {
		state = streamFailed
		log.Ctx(ctx).Error().Err(err).Msg("unable to open completion stream")
		return ErrUpstreamFailure.MsgErr("unable to open completion stream", err)
	}
	defer es.Close()

	var buf strings.Builder
	var responseID string

	for es.Next() {
		if cerr := ctx.Err(); cerr != nil {
			// caller went away; abandon upstream consumption without a commit
			state = streamFailed
			log.Ctx(ctx).Info().Msg("caller disconnected, abandoning stream")
			return ErrStreamFailed.MsgErr("caller disconnected", cerr)
		}
		state = streamReceiving

		ev := es.Current()
		switch ev.Kind {
		case upstream.EventCreated:
			responseID = ev.ResponseID
		case upstream.EventDelta:
			buf.WriteString(ev.Delta)
			if _, werr := io.WriteString(w, ev.Delta); werr != nil {
				state = streamFailed
				return ErrStreamFailed.MsgErr("unable to forward chunk", werr)
			}
			flusher.Flush()
		case upstream.EventDone:
			state = streamCompleted
			if responseID == "" {
				log.Ctx(ctx).Warn().Msg("stream completed without a response id, turn not recorded")
				return nil
			}
			conv.AppendAssistantTurn(buf.String(), responseID)
			return nil
		case upstream.EventError:
			state = streamFailed
			log.Ctx(ctx).Error().Str("upstream_error", ev.Message).Msg("upstream stream failed")
			return ErrUpstreamFailure.Msg(ev.Message)
		}
	}

	state = streamFailed
	if err := es.Err(); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("stream terminated")
		return ErrUpstreamFailure.MsgErr("stream terminated", err)
	}
	// the upstream ended the stream without a completion or error event;
	// treat this as a failure so the caller's channel is never left open
	return ErrUpstreamFailure.Msg("stream ended without completion")
}
