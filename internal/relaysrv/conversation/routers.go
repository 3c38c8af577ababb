package conversation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linguachat/linguachat/internal/common/httpx"
)

// ResponseHandlerParam defines the configuration for HTTP route handlers.
type ResponseHandlerParam struct {
	Method  string               // HTTP method
	Path    string               // URL path pattern
	Handler httpx.RequestHandler // handler function for the route
}

var conversationHandlers = []ResponseHandlerParam{
	{
		Method:  http.MethodPost,
		Path:    "/start",
		Handler: startConversation,
	},
	{
		Method:  http.MethodPost,
		Path:    "/message",
		Handler: postMessage,
	},
	{
		Method:  http.MethodPost,
		Path:    "/message/stream",
		Handler: streamMessage,
	},
	{
		Method:  http.MethodGet,
		Path:    "/languages",
		Handler: listLanguages,
	},
	{
		Method:  http.MethodGet,
		Path:    "/{sessionID}",
		Handler: getTranscript,
	},
}

// Router registers the conversation endpoints on the given router.
func Router(r chi.Router) {
	for _, handler := range conversationHandlers {
		r.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
	}
}
