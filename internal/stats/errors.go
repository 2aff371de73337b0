package stats

import "fmt"

// InvalidParameterError reports a bad orchestrator argument. It is returned
// before any data is loaded.
type InvalidParameterError struct {
	Param   string
	Value   string
	Allowed string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s %q (allowed: %s)", e.Param, e.Value, e.Allowed)
}

// NoDataError reports that valid parameters produced zero plays after
// filtering.
type NoDataError struct {
	Seasons    []int
	SeasonType SeasonType
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no plays for seasons %v with season_type %s", e.Seasons, e.SeasonType)
}

// UnknownStatCodeError reports an event code outside the recognized
// enumeration. The flagger logs and drops such events; ParseStatCode returns
// this error for callers that want strictness.
type UnknownStatCodeError struct {
	Code int
}

func (e *UnknownStatCodeError) Error() string {
	return fmt.Sprintf("unknown stat code %d", e.Code)
}
