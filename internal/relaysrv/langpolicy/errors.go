package langpolicy

import (
	"net/http"

	"github.com/linguachat/linguachat/internal/common/apperrors"
)

// ErrUnsupportedLanguage is returned when a language code is not in the
// supported set. Callers map this to an invalid-request response.
var ErrUnsupportedLanguage apperrors.Error = apperrors.New("unsupported language").SetStatusCode(http.StatusBadRequest)
