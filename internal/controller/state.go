package controller

import (
	"github.com/yildizm/SentiView/internal/analysis"
)

// Kind identifies which display region a ViewState shows
type Kind int

const (
	KindIdle Kind = iota
	KindLoading
	KindResult
	KindError
)

// String returns the region name
func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindLoading:
		return "loading"
	case KindResult:
		return "result"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// ViewState is the single source of what the view shows. Result is set only
// for KindResult and Message only for KindError.
type ViewState struct {
	Kind    Kind
	Result  *analysis.Result
	Message string
}

// Idle shows none of the loading, result or error regions
func Idle() ViewState {
	return ViewState{Kind: KindIdle}
}

// Loading shows only the loading indicator
func Loading() ViewState {
	return ViewState{Kind: KindLoading}
}

// ShowResult shows only the result panel
func ShowResult(result *analysis.Result) ViewState {
	return ViewState{Kind: KindResult, Result: result}
}

// ShowError shows only the error panel with message
func ShowError(message string) ViewState {
	return ViewState{Kind: KindError, Message: message}
}
