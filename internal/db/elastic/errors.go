package elastic

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/kailas-cloud/esdocs/internal/db"
)

// errorBody is the Elasticsearch error envelope.
type errorBody struct {
	Error  json.RawMessage `json:"error"`
	Status int             `json:"status"`
}

type errorDetails struct {
	Type      string `json:"type"`
	Reason    string `json:"reason"`
	RootCause []struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"root_cause"`
}

// parseError converts an error response into a *db.Error wrapping the matching sentinel.
func parseError(op string, res *esapi.Response) error {
	data, _ := io.ReadAll(res.Body)
	details := decodeDetails(data)

	var sentinel error
	switch {
	case details.Type == "index_not_found_exception":
		sentinel = db.ErrIndexNotFound
	case details.Type == "resource_already_exists_exception":
		sentinel = db.ErrIndexExists
	case res.StatusCode == http.StatusNotFound:
		sentinel = db.ErrDocumentNotFound
	case res.StatusCode == http.StatusConflict:
		sentinel = db.ErrVersionConflict
	}

	msg := describe(details, data, res.Status())
	if sentinel != nil {
		return &db.Error{Op: op, Status: res.StatusCode, Err: fmt.Errorf("%w: %s", sentinel, msg)}
	}
	return &db.Error{Op: op, Status: res.StatusCode, Err: errors.New(msg)}
}

func decodeDetails(data []byte) errorDetails {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil || len(body.Error) == 0 {
		return errorDetails{}
	}
	var details errorDetails
	if err := json.Unmarshal(body.Error, &details); err != nil {
		// Some endpoints report the error as a plain string.
		var reason string
		if json.Unmarshal(body.Error, &reason) == nil {
			details.Reason = reason
		}
	}
	return details
}

func describe(d errorDetails, raw []byte, status string) string {
	switch {
	case len(d.RootCause) > 0:
		return fmt.Sprintf("type: %s, reason: %s", d.Type, d.RootCause[0].Reason)
	case d.Type != "" || d.Reason != "":
		return fmt.Sprintf("type: %s, reason: %s", d.Type, d.Reason)
	case len(raw) > 0:
		return strings.TrimSpace(string(raw))
	default:
		return status
	}
}
