package port

import "github.com/telemock/callsim/internal/core/domain"

// Adapter is the outbound notification sink toward the orchestrating call
// manager. The engine reports results through it and never waits for an
// acknowledgment.
type Adapter interface {
	ReportCompatibility(id domain.CallID, compatible bool) error
	ReportSuccessfulOutgoingCall(id domain.CallID) error
	ReportIncomingCall(info domain.CallInfo) error
	ReportActive(id domain.CallID) error
	ReportOnHold(id domain.CallID) error
	ReportDisconnected(id domain.CallID, cause domain.DisconnectCause, message string) error
}
