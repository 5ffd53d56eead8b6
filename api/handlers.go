package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"valuation-calc/decision/valuation"
	verrors "valuation-calc/pkg/errors"
	"valuation-calc/pkg/table"
)

// Error codes of request-level failures.
const (
	ErrCodeInvalidBody  = "INVALID_BODY"
	ErrCodeBodyTooLarge = "BODY_TOO_LARGE"
)

// AnalysisResponse is the body returned by every analysis endpoint.
type AnalysisResponse struct {
	RequestID uuid.UUID        `json:"request_id"`
	Analysis  valuation.Kind   `json:"analysis"`
	Title     string           `json:"title"`
	Table     *table.Table     `json:"table"`
	Details   valuation.Report `json:"details"`
}

// ErrorResponse wraps a failed request.
type ErrorResponse struct {
	RequestID uuid.UUID   `json:"request_id"`
	Error     ErrorDetail `json:"error"`
}

// ErrorDetail describes what went wrong.
type ErrorDetail struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// AnalysisInfo documents one endpoint for /api/v1/analyses.
type AnalysisInfo struct {
	Kind   valuation.Kind `json:"kind"`
	Title  string         `json:"title"`
	Path   string         `json:"path"`
	Labels []string       `json:"labels"`
}

type decodeError struct{ err error }

func (e *decodeError) Error() string { return fmt.Sprintf("invalid request body: %v", e.err) }
func (e *decodeError) Unwrap() error { return e.err }

// analyzer decodes an input record and runs one calculation over it.
type analyzer func(body []byte) (valuation.Report, error)

// analyzerFor rejects bodies that omit any of the required keys, or set them to null.
func analyzerFor[In any, Out valuation.Report](calc func(In) (Out, error), required ...string) analyzer {
	return func(body []byte) (valuation.Report, error) {
		var in In
		if err := decodeStrict(body, &in, true); err != nil {
			return nil, &decodeError{err: err}
		}
		var present map[string]json.RawMessage
		if err := decodeStrict(body, &present, false); err != nil {
			return nil, &decodeError{err: err}
		}
		for _, field := range required {
			if raw, ok := present[field]; !ok || string(raw) == "null" {
				return nil, verrors.NewMissingValueError(field)
			}
		}

		out, err := calc(in)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
}

// decodeStrict decodes exactly one JSON value from body.
func decodeStrict(body []byte, v any, disallowUnknown bool) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	if disallowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON object")
	}
	return nil
}

func (s *Server) handleAnalysis(kind valuation.Kind, run analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := RequestID(r.Context())

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				s.jsonResponse(w, http.StatusRequestEntityTooLarge, ErrorResponse{RequestID: id, Error: ErrorDetail{
					Code: ErrCodeBodyTooLarge, Message: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
				}})
				return
			}
			s.analysisError(w, id, kind, &decodeError{err: err})
			return
		}

		report, err := run(body)
		if err != nil {
			s.analysisError(w, id, kind, err)
			return
		}

		tbl, err := report.Table()
		if err != nil {
			s.analysisError(w, id, kind, err)
			return
		}

		s.jsonResponse(w, http.StatusOK, AnalysisResponse{
			RequestID: id,
			Analysis:  kind,
			Title:     kind.Title(),
			Table:     tbl,
			Details:   report,
		})
	}
}

func (s *Server) analysisError(w http.ResponseWriter, id uuid.UUID, kind valuation.Kind, err error) {
	var de *decodeError
	if invalid, ok := verrors.AsInvalidInput(err); ok {
		s.logger.Warn().Str("analysis", string(kind)).Str("field", invalid.Field).Str("code", invalid.Code).Msg("Rejected analysis input")
		s.jsonResponse(w, http.StatusBadRequest, ErrorResponse{RequestID: id, Error: ErrorDetail{
			Code: invalid.Code, Field: invalid.Field, Message: invalid.Message,
		}})
		return
	}
	if errors.As(err, &de) {
		s.jsonResponse(w, http.StatusBadRequest, ErrorResponse{RequestID: id, Error: ErrorDetail{
			Code: ErrCodeInvalidBody, Message: de.Error(),
		}})
		return
	}

	s.logger.Error().Err(err).Str("analysis", string(kind)).Msg("Analysis failed")
	s.jsonResponse(w, http.StatusInternalServerError, ErrorResponse{RequestID: id, Error: ErrorDetail{
		Code: verrors.ErrCodeComputation, Message: "analysis failed",
	}})
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, []AnalysisInfo{
		{Kind: valuation.KindManagerial, Title: valuation.KindManagerial.Title(), Path: "/api/v1/managerial", Labels: valuation.ManagerialLabels},
		{Kind: valuation.KindCampaign, Title: valuation.KindCampaign.Title(), Path: "/api/v1/campaign", Labels: valuation.CampaignLabels},
		{Kind: valuation.KindUnitEconomics, Title: valuation.KindUnitEconomics.Title(), Path: "/api/v1/unit-economics", Labels: valuation.UnitEconomicsLabels},
	})
}
