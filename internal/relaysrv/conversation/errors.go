package conversation

import (
	"net/http"

	"github.com/linguachat/linguachat/internal/common/apperrors"
)

var (
	// ErrConversationError is the base error for all conversation processing errors.
	ErrConversationError apperrors.Error = apperrors.New("error in processing conversation").SetStatusCode(http.StatusInternalServerError)

	// ErrInvalidRequest is returned for malformed or incomplete requests.
	// Detected before any session mutation or upstream call.
	ErrInvalidRequest apperrors.Error = ErrConversationError.New("invalid request").SetStatusCode(http.StatusBadRequest)

	// ErrSessionNotFound is returned when a session identifier does not
	// resolve to an existing conversation.
	ErrSessionNotFound apperrors.Error = ErrConversationError.New("session not found").SetStatusCode(http.StatusNotFound)

	// ErrMissingCredentials is returned when the upstream API credential is
	// not configured. Raised before any upstream call is attempted.
	ErrMissingCredentials apperrors.Error = ErrConversationError.New("upstream credentials not configured").SetStatusCode(http.StatusInternalServerError)

	// ErrUpstreamFailure is returned when the upstream completion call fails
	// (network, auth, quota, or unexpected payload). Calls are single-attempt;
	// there is no retry.
	ErrUpstreamFailure apperrors.Error = ErrConversationError.New("upstream completion failed").SetStatusCode(http.StatusInternalServerError)

	// ErrStreamFailed is returned when a streaming relay cannot deliver
	// chunks to the caller, including caller disconnects.
	ErrStreamFailed apperrors.Error = ErrConversationError.New("stream failed").SetStatusCode(http.StatusInternalServerError)
)
