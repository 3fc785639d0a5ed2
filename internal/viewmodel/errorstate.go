package viewmodel

import "github.com/samvad-hq/nyc-schools/pkg/network"

// ErrorState is the user-facing failure category shown by the views.
type ErrorState int

const (
	ErrorNone ErrorState = iota
	ErrorGeneral
	ErrorNeedToUpdateApp
	ErrorNeedToCheckNetworkConnectivity
)

func (e ErrorState) String() string {
	switch e {
	case ErrorNone:
		return "none"
	case ErrorGeneral:
		return "general"
	case ErrorNeedToUpdateApp:
		return "need_to_update_app"
	case ErrorNeedToCheckNetworkConnectivity:
		return "need_to_check_network_connectivity"
	default:
		return "unknown"
	}
}

// Message is the alert text for the state. ErrorNone has none.
func (e ErrorState) Message() string {
	switch e {
	case ErrorNone:
		return ""
	case ErrorNeedToCheckNetworkConnectivity:
		return "Check your network connection"
	case ErrorNeedToUpdateApp:
		return "Update the app to the latest version"
	default:
		return "Something went wrong. Try again later"
	}
}

// ErrorStateFor narrows a pipeline failure into a user category.
func ErrorStateFor(err error) ErrorState {
	if err == nil {
		return ErrorNone
	}
	switch network.KindOf(err) {
	case network.KindNotReachable:
		return ErrorNeedToCheckNetworkConnectivity
	case network.KindDecoding:
		return ErrorNeedToUpdateApp
	default:
		return ErrorGeneral
	}
}

// Status is the fetch lifecycle part shared by every view model state.
type Status struct {
	IsFetchingData       bool
	ErrorState           ErrorState
	ShouldShowErrorState bool
}

// SetErrorState assigns the error state; the alert flag follows it.
func (s *Status) SetErrorState(e ErrorState) {
	s.ErrorState = e
	s.ShouldShowErrorState = e != ErrorNone
}
