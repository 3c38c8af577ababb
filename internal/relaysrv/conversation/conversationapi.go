// Package conversation implements the conversation-continuity core of the
// relay service: the session store, the language-policy-aware completion
// relays (one-shot and streaming), and their HTTP handlers.
package conversation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/linguachat/linguachat/internal/common/apperrors"
	"github.com/linguachat/linguachat/internal/common/httpx"
	"github.com/linguachat/linguachat/internal/relaysrv/langpolicy"
	"github.com/linguachat/linguachat/pkg/api"
)

// Defaults applied when the request omits the optional tuning fields.
const (
	defaultTemperature = 0.3
	defaultMaxTokens   = 128
)

var validate = validator.New()

// startConversation handles POST /api/conversation/start. Creates an empty
// session and returns its identifier.
func startConversation(r *http.Request) (*httpx.Response, error) {
	conv := conversationStore.Create()
	log.Ctx(r.Context()).Info().Str("session_id", conv.ID()).Msg("conversation started")

	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   &api.StartConversationResponse{SessionID: conv.ID()},
	}, nil
}

// postMessage handles POST /api/conversation/message: one synchronous
// request/response round trip against the upstream model.
func postMessage(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()

	req, pol, apperr := parseMessageRequest(r)
	if apperr != nil {
		return nil, apperr
	}
	conv, apperr := conversationStore.Get(req.SessionID)
	if apperr != nil {
		return nil, apperr
	}
	client, apperr := getUpstreamClient()
	if apperr != nil {
		return nil, apperr
	}

	ctx = log.Ctx(ctx).With().Str("session_id", conv.ID()).Logger().WithContext(ctx)
	rsp, apperr := sendTurn(ctx, client, conv, pol, req.Message, temperatureOf(req), maxTokensOf(req))
	if apperr != nil {
		return nil, apperr
	}

	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   rsp,
	}, nil
}

// streamMessage handles POST /api/conversation/message/stream. Validation and
// session lookup happen before the response starts; relay failures after that
// point terminate the byte stream abruptly, with no structured error frame.
func streamMessage(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()

	req, pol, apperr := parseMessageRequest(r)
	if apperr != nil {
		return nil, apperr
	}
	conv, apperr := conversationStore.Get(req.SessionID)
	if apperr != nil {
		return nil, apperr
	}
	client, apperr := getUpstreamClient()
	if apperr != nil {
		return nil, apperr
	}

	return &httpx.Response{
		StatusCode:  http.StatusOK,
		ContentType: "text/plain; charset=utf-8",
		Headers: map[string]string{
			"Cache-Control": "no-cache",
		},
		Chunked: true,
		WriteChunks: func(w http.ResponseWriter) error {
			ctx := log.Ctx(ctx).With().Str("session_id", conv.ID()).Logger().WithContext(ctx)
			return streamTurn(ctx, w, client, conv, pol, req.Message, temperatureOf(req), maxTokensOf(req))
		},
	}, nil
}

// getTranscript handles GET /api/conversation/{sessionID}. Returns the turn
// history of a session.
func getTranscript(r *http.Request) (*httpx.Response, error) {
	conv, apperr := conversationStore.Get(chi.URLParam(r, "sessionID"))
	if apperr != nil {
		return nil, apperr
	}

	turns := conv.Turns()
	rsp := &api.TranscriptResponse{
		SessionID: conv.ID(),
		Turns:     make([]api.TranscriptTurn, 0, len(turns)),
	}
	for _, t := range turns {
		rsp.Turns = append(rsp.Turns, api.TranscriptTurn{
			Role:    string(t.Role),
			Content: t.Content,
		})
	}

	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   rsp,
	}, nil
}

// listLanguages handles GET /api/conversation/languages.
func listLanguages(r *http.Request) (*httpx.Response, error) {
	rsp := &api.ListLanguagesResponse{}
	for _, code := range langpolicy.List() {
		pol, apperr := langpolicy.Resolve(code)
		if apperr != nil {
			return nil, apperr
		}
		rsp.Languages = append(rsp.Languages, api.LanguageInfo{
			Code: pol.Code,
			Name: pol.Name,
		})
	}

	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   rsp,
	}, nil
}

// parseMessageRequest decodes and validates a message request and resolves
// its language policy. All validation happens here, before any session
// mutation or upstream call.
func parseMessageRequest(r *http.Request) (*api.MessageRequest, *langpolicy.Policy, apperrors.Error) {
	req := &api.MessageRequest{}
	if err := httpx.GetRequestData(r, req); err != nil {
		return nil, nil, ErrInvalidRequest.Msg(err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return nil, nil, ErrInvalidRequest.MsgErr("request validation failed", err)
	}
	pol, apperr := langpolicy.Resolve(req.TargetLang)
	if apperr != nil {
		return nil, nil, apperr
	}
	return req, pol, nil
}

func temperatureOf(req *api.MessageRequest) float64 {
	if req.Temperature != nil {
		return *req.Temperature
	}
	return defaultTemperature
}

func maxTokensOf(req *api.MessageRequest) int64 {
	if req.MaxTokens != nil {
		return *req.MaxTokens
	}
	return defaultMaxTokens
}
