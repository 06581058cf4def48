package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/oukeidos/promise/internal/apperrors"
	"google.golang.org/api/googleapi"
)

// statusKinds maps API status codes to error kinds. Unlisted codes of 500 and
// above are transient; the rest are bad requests.
var statusKinds = map[int]apperrors.Kind{
	http.StatusBadRequest:      apperrors.KindBadRequest,
	http.StatusUnauthorized:    apperrors.KindAuth,
	http.StatusForbidden:       apperrors.KindAuth,
	http.StatusNotFound:        apperrors.KindBadRequest,
	http.StatusTooManyRequests: apperrors.KindRateLimit,
}

func statusMessage(code int) string {
	switch code {
	case http.StatusNotFound:
		return "Gemini model not found or no access (404)."
	case http.StatusBadRequest:
		return "Gemini request rejected (400)."
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Sprintf("Gemini authentication failed (%d).", code)
	case http.StatusTooManyRequests:
		return "Gemini rate limit exceeded (429)."
	}
	if code >= 500 {
		return fmt.Sprintf("Gemini service temporary error (%d).", code)
	}
	return fmt.Sprintf("Gemini API error (%d).", code)
}

// classifyGeminiError turns a genai failure into an apperrors.Error. The
// user-facing message never includes the raw error text.
func classifyGeminiError(err error) error {
	if err == nil {
		return nil
	}
	cause := fmt.Errorf("gemini generate content failed: %w", err)

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		kind, known := statusKinds[gerr.Code]
		if !known {
			kind = apperrors.KindBadRequest
			if gerr.Code >= 500 {
				kind = apperrors.KindTransient
			}
		}
		return apperrors.New(kind, statusMessage(gerr.Code), cause)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.New(apperrors.KindTransient, "Gemini request timed out.", cause)
	}
	return apperrors.New(apperrors.KindTransient, "Gemini request failed due to a network error.", cause)
}
