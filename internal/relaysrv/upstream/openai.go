package upstream

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

// OpenAI implements Client over the OpenAI Responses API.
type OpenAI struct {
	client openai.Client
	model  string
}

// OpenAIOptions configures the OpenAI-backed client.
type OpenAIOptions struct {
	APIKey  string // API credential, required
	Model   string // model identifier, e.g. "gpt-4o-mini"
	BaseURL string // optional API base URL override
}

// NewOpenAI creates an OpenAI-backed upstream client.
func NewOpenAI(opts OpenAIOptions) *OpenAI {
	reqOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	return &OpenAI{
		client: openai.NewClient(reqOpts...),
		model:  opts.Model,
	}
}

// Complete performs a one-shot completion call.
func (o *OpenAI) Complete(ctx context.Context, req Request) (*Result, error) {
	rsp, err := o.client.Responses.New(ctx, o.buildParams(req))
	if err != nil {
		return nil, err
	}
	return &Result{ID: rsp.ID, Text: rsp.OutputText()}, nil
}

// Stream opens a streaming completion call. Events irrelevant to the relay
// (progress markers, item-level bookkeeping) are filtered out.
func (o *OpenAI) Stream(ctx context.Context, req Request) (EventStream, error) {
	raw := o.client.Responses.NewStreaming(ctx, o.buildParams(req))
	if err := raw.Err(); err != nil {
		raw.Close()
		return nil, err
	}
	return &openaiStream{raw: raw}, nil
}

func (o *OpenAI) buildParams(req Request) responses.ResponseNewParams {
	params := responses.ResponseNewParams{
		Model:           shared.ResponsesModel(o.model),
		Input:           responses.ResponseNewParamsInputUnion{OfString: openai.String(req.Input)},
		Instructions:    openai.String(req.Instructions),
		Temperature:     openai.Float(req.Temperature),
		MaxOutputTokens: openai.Int(req.MaxOutputTokens),
	}
	if req.PreviousResponseID != "" {
		params.PreviousResponseID = openai.String(req.PreviousResponseID)
	}
	return params
}

// openaiStream adapts the SSE event union to the tagged Event set.
type openaiStream struct {
	raw *ssestream.Stream[responses.ResponseStreamEventUnion]
	cur Event
}

func (s *openaiStream) Next() bool {
	for s.raw.Next() {
		if ev, ok := translateEvent(s.raw.Current().AsAny()); ok {
			s.cur = ev
			return true
		}
	}
	return false
}

func (s *openaiStream) Current() Event {
	return s.cur
}

func (s *openaiStream) Err() error {
	return s.raw.Err()
}

func (s *openaiStream) Close() error {
	return s.raw.Close()
}

// translateEvent maps a typed upstream event to the closed Event set. Events
// with no bearing on the relay return false and are skipped.
func translateEvent(v any) (Event, bool) {
	switch ev := v.(type) {
	case responses.ResponseCreatedEvent:
		return Event{Kind: EventCreated, ResponseID: ev.Response.ID}, true
	case responses.ResponseTextDeltaEvent:
		return Event{Kind: EventDelta, Delta: ev.Delta}, true
	case responses.ResponseCompletedEvent:
		return Event{Kind: EventDone}, true
	case responses.ResponseErrorEvent:
		return Event{Kind: EventError, Message: ev.Message}, true
	case responses.ResponseFailedEvent:
		return Event{Kind: EventError, Message: ev.Response.Error.Message}, true
	case responses.ResponseIncompleteEvent:
		return Event{Kind: EventError, Message: "upstream response incomplete"}, true
	}
	return Event{}, false
}
