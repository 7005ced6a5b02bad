package port

import "github.com/telemock/callsim/internal/core/domain"

// CallHandler is the inbound request surface the call manager drives.
// Attach must be called before any other operation; Detach ends the
// session so a later Attach starts clean.
type CallHandler interface {
	Attach(adapter Adapter) error
	Detach() error

	CheckCompatibility(info domain.CallInfo) error
	PlaceCall(info domain.CallInfo) error
	Abort(id domain.CallID) error
	SetIncomingCall(id domain.CallID, extras map[string]string) error
	Answer(id domain.CallID) error
	Reject(id domain.CallID) error
	Disconnect(id domain.CallID) error
	Hold(id domain.CallID) error
	Unhold(id domain.CallID) error
	PlayDTMFTone(id domain.CallID, digit rune) error
	StopDTMFTone(id domain.CallID) error
	OnAudioRouteChanged(id domain.CallID, route string) error
}
