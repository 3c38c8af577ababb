// Package httpx provides the HTTP request/response plumbing for the relay
// service: JSON body parsing, standardized error envelopes, and response
// wrappers including chunked transfer for streaming handlers.
package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/linguachat/linguachat/internal/common/apperrors"
)

// GetRequestData parses the JSON request body into data. Only POST and PUT
// carry bodies in this API. Returns an error if the body is missing or cannot
// be decoded.
func GetRequestData(r *http.Request, data any) error {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		return ErrReqMethodNotSupported()
	}
	if r.Body == nil {
		log.Ctx(r.Context()).Error().Msg("empty request body")
		return ErrUnableToParseReqData()
	}
	if err := json.NewDecoder(r.Body).Decode(data); err != nil {
		return ErrUnableToParseReqData()
	}
	return nil
}

// WriteChunksFunc writes the body of a chunked response. It is invoked after
// headers have been sent; any error it returns terminates the stream abruptly.
type WriteChunksFunc func(w http.ResponseWriter) error

// Response describes an HTTP response produced by a RequestHandler. When
// Chunked is set, WriteChunks streams the body with chunked transfer encoding
// and Headers are applied before the status line is written.
type Response struct {
	StatusCode  int
	Response    any
	ContentType string
	Headers     map[string]string
	Chunked     bool
	WriteChunks WriteChunksFunc
}

// RequestHandler handles an HTTP request and returns a Response or an error.
type RequestHandler func(r *http.Request) (*Response, error)

// WrapHttpRsp adapts a RequestHandler into an http.HandlerFunc with
// standardized error envelopes and content type handling. Errors returned by
// a handler before the Response is produced map to JSON error responses;
// errors raised while writing chunks only terminate the stream, since the
// status line is already on the wire.
func WrapHttpRsp(handler RequestHandler) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rsp, err := handler(r)
		if err != nil {
			sendHandlerError(w, err)
			return
		}
		if rsp == nil {
			ErrApplicationError().Send(w)
			return
		}
		for k, v := range rsp.Headers {
			w.Header().Set(k, v)
		}
		if rsp.Chunked {
			if rsp.WriteChunks == nil {
				ErrApplicationError("unable to write chunks").Send(w)
				return
			}
			w.Header().Set("Content-Type", rsp.ContentType)
			w.Header().Set("Transfer-Encoding", "chunked")
			w.WriteHeader(rsp.StatusCode)
			if err := rsp.WriteChunks(w); err != nil {
				log.Ctx(r.Context()).Error().Err(err).Msg("error writing chunk")
				return
			}
			return
		}

		if rsp.ContentType == "" {
			rsp.ContentType = "application/json"
		}
		switch rsp.ContentType {
		case "application/json":
			SendJsonRsp(r.Context(), w, rsp.StatusCode, rsp.Response)
		case "text/plain":
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(rsp.StatusCode)
			w.Write([]byte(rsp.Response.(string)))
		default:
			ErrApplicationError("unsupported response type").Send(w)
		}
	})
}

// sendHandlerError maps a handler error to an HTTP error envelope.
func sendHandlerError(w http.ResponseWriter, err error) {
	if httperror, ok := err.(*Error); ok {
		httperror.Send(w)
		return
	}
	if appErr, ok := err.(apperrors.Error); ok {
		statusCode := appErr.StatusCode()
		if statusCode == 0 {
			statusCode = http.StatusInternalServerError
		}
		httperror := &Error{
			StatusCode:  statusCode,
			Description: appErr.ErrorAll(),
		}
		httperror.Send(w)
		return
	}
	ErrApplicationError(err.Error()).Send(w)
}
