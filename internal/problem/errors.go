package problem

import (
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"google.golang.org/api/googleapi"
)

// Sentinel errors for the generation pipeline.
var (
	// ErrMalformedResponse marks model output with no decodable JSON object.
	// There is no automatic retry; the caller reports a generation failure.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrEmptySubmission marks an evaluation request with neither code nor
	// a drawing. Rejected before any model call.
	ErrEmptySubmission = errors.New("submission has neither code nor a drawing")
)

// ClassifyUpstreamError converts a model-provider failure into a message
// safe to show users. Raw provider errors never leave the service.
func ClassifyUpstreamError(err error) string {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == 401 || gerr.Code == 403:
			return "The generation service rejected our credentials. Please try again later."
		case gerr.Code == 429:
			return "The generation service is rate limiting requests. Please wait a moment and retry."
		case gerr.Code >= 500:
			return "The generation service is temporarily unavailable. Please retry shortly."
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key"):
		return "The generation service rejected our credentials. Please try again later."
	case strings.Contains(msg, "quota"), strings.Contains(msg, "rate"):
		return "The generation service is rate limiting requests. Please wait a moment and retry."
	}
	return "Problem generation failed. Please try again."
}

// ClassifyStorageError converts a persistence failure into a user-facing
// message for writes that must be surfaced.
func ClassifyStorageError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "42501" {
		return "You don't have permission to save this record."
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return "A network error interrupted the save. Please check your connection and retry."
	}
	return "Saving failed. Please try again."
}
