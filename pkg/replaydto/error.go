package replaydto

type DomainError struct {
	Code      string
	Message   string
	Retryable bool
}

func (e DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return "replay service error"
}

// AnalysisFailed wraps an upstream rejection with a human-readable reason.
func AnalysisFailed(reason string, retryable bool) DomainError {
	return DomainError{Code: "analysis_failed", Message: reason, Retryable: retryable}
}
