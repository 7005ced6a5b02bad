package domain

import (
	"errors"
	"fmt"
	"strings"
)

// CallID identifies one call for its entire lifetime within this service.
// It is supplied by the call manager, never generated here.
type CallID string

func (id CallID) String() string {
	return string(id)
}

func (id CallID) IsZero() bool {
	return id == ""
}

// Handle is the addressable endpoint of a call, e.g. "tel:5551234".
// Immutable once the call is created.
type Handle struct {
	Scheme string
	Number string
}

func NewHandle(scheme, number string) Handle {
	return Handle{Scheme: scheme, Number: number}
}

// ParseHandle parses a "scheme:number" endpoint string.
func ParseHandle(raw string) (Handle, error) {
	scheme, number, ok := strings.Cut(raw, ":")
	if !ok || scheme == "" || number == "" {
		return Handle{}, fmt.Errorf("malformed handle %q", raw)
	}
	return Handle{Scheme: scheme, Number: number}, nil
}

func (h Handle) IsZero() bool {
	return h.Scheme == "" && h.Number == ""
}

func (h Handle) String() string {
	if h.IsZero() {
		return ""
	}
	return h.Scheme + ":" + h.Number
}

type CallState string

const (
	StateRinging CallState = "ringing"
	StateDialing CallState = "dialing"
	StateActive  CallState = "active"
	StateOnHold  CallState = "on_hold"
)

// DisconnectCause is the reason attached to a disconnect or reject
// notification.
type DisconnectCause string

const (
	CauseLocal            DisconnectCause = "local"
	CauseIncomingRejected DisconnectCause = "incoming_rejected"
)

// CallInfo is the value passed across the manager boundary when a call is
// probed, placed or announced.
type CallInfo struct {
	ID     CallID
	State  CallState
	Handle Handle
}

func NewCallInfo(id CallID, state CallState, handle Handle) (CallInfo, error) {
	if id.IsZero() {
		return CallInfo{}, errors.New("call info requires a call id")
	}
	return CallInfo{ID: id, State: state, Handle: handle}, nil
}
