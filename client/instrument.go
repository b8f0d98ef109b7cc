package client

import (
	"context"
	stderrors "errors"
	"time"

	apierrors "github.com/kbukum/apicontract/errors"
	"github.com/kbukum/apicontract/logger"
	"github.com/kbukum/apicontract/observability"
)

// Call outcomes recorded on spans, metrics and log records.
const (
	OutcomeOK                 = observability.OutcomeOK
	OutcomeRequestValidation  = "request_validation"
	OutcomeResponseValidation = "response_validation"
	OutcomeAPIError           = "api_error"
	OutcomeContract           = "contract"
	OutcomeCanceled           = "canceled"
	OutcomeError              = "error"
)

// outcomeOf classifies the result of a call.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case apierrors.IsRequestValidation(err):
		return OutcomeRequestValidation
	case apierrors.IsResponseValidation(err):
		return OutcomeResponseValidation
	case apierrors.IsAPIError(err):
		return OutcomeAPIError
	case apierrors.IsContractError(err):
		return OutcomeContract
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}

func (c *Client) logCall(ctx context.Context, key string, state callState, start time.Time, err error) {
	log := c.log.WithContext(ctx)
	if !log.DebugEnabled() {
		return
	}
	fields := logger.MergeWithDuration(logger.Fields(
		logger.FieldEndpoint, key,
		logger.FieldMethod, state.method,
		logger.FieldURL, state.url,
		logger.FieldStatus, state.status,
	), time.Since(start))

	if err == nil {
		log.Debug("call completed", fields)
		return
	}
	fields[logger.FieldErrorKind] = outcomeOf(err)
	log.Debug("call failed", logger.MergeWithError(fields, err))
}
