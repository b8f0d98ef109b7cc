package errors

// ErrorResponse is a common JSON error envelope
// ({"error": {"code": ..., "message": ...}}). It can be declared as an
// endpoint's error schema with schema.Of[errors.ErrorResponse](schema.Lenient()).
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains the error details of an ErrorResponse.
type ErrorBody struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Retryable bool                   `json:"retryable"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Envelope returns the parsed ErrorResponse of an APIError when its error
// schema produced one.
func Envelope(err error) (ErrorResponse, bool) {
	a, ok := AsAPIError(err)
	if !ok || !a.HasParsed {
		return ErrorResponse{}, false
	}
	switch v := a.ParsedError.(type) {
	case ErrorResponse:
		return v, true
	case *ErrorResponse:
		if v != nil {
			return *v, true
		}
	}
	return ErrorResponse{}, false
}

// ToResponse renders any call error as an ErrorResponse, for services that
// relay upstream failures to their own clients.
func ToResponse(err error) ErrorResponse {
	if env, ok := Envelope(err); ok {
		return env
	}
	body := ErrorBody{Code: "INTERNAL_ERROR", Message: err.Error()}
	if a, ok := AsAPIError(err); ok {
		body.Code = string(a.Code())
		body.Retryable = a.Temporary()
		body.Details = map[string]interface{}{"status": a.Status, "endpoint": a.Key}
	} else if v, ok := AsValidationError(err); ok {
		body.Code = string(v.Code())
		body.Details = map[string]interface{}{"kind": string(v.Kind), "issues": v.Issues.String()}
		if v.Field != "" {
			body.Details["field"] = string(v.Field)
		}
	} else if c, ok := AsContractError(err); ok {
		body.Code = string(c.Code)
		body.Message = c.Message
	}
	return ErrorResponse{Error: body}
}
