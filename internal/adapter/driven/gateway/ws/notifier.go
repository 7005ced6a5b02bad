package ws

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/telemock/callsim/internal/core/domain"
	"github.com/telemock/callsim/internal/core/port"
)

// Notifier implements port.Adapter over the call manager's websocket
// connection. Gorilla connections support one concurrent writer, so all
// frames go through a single mutex.
type Notifier struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func NewNotifier(conn *websocket.Conn) *Notifier {
	return &Notifier{conn: conn}
}

type notificationDTO struct {
	Event      string `json:"event"`
	CallID     string `json:"call_id,omitempty"`
	Compatible *bool  `json:"compatible,omitempty"`
	State      string `json:"state,omitempty"`
	Scheme     string `json:"scheme,omitempty"`
	Number     string `json:"number,omitempty"`
	Cause      string `json:"cause,omitempty"`
	Message    string `json:"message,omitempty"`
	Op         string `json:"op,omitempty"`
}

func (n *Notifier) send(dto notificationDTO) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.conn.WriteJSON(dto)
}

func (n *Notifier) ReportCompatibility(id domain.CallID, compatible bool) error {
	return n.send(notificationDTO{Event: "compatibility", CallID: id.String(), Compatible: &compatible})
}

func (n *Notifier) ReportSuccessfulOutgoingCall(id domain.CallID) error {
	return n.send(notificationDTO{Event: "outgoing_call", CallID: id.String()})
}

func (n *Notifier) ReportIncomingCall(info domain.CallInfo) error {
	return n.send(notificationDTO{
		Event:  "incoming_call",
		CallID: info.ID.String(),
		State:  string(info.State),
		Scheme: info.Handle.Scheme,
		Number: info.Handle.Number,
	})
}

func (n *Notifier) ReportActive(id domain.CallID) error {
	return n.send(notificationDTO{Event: "state", CallID: id.String(), State: string(domain.StateActive)})
}

func (n *Notifier) ReportOnHold(id domain.CallID) error {
	return n.send(notificationDTO{Event: "state", CallID: id.String(), State: string(domain.StateOnHold)})
}

func (n *Notifier) ReportDisconnected(id domain.CallID, cause domain.DisconnectCause, message string) error {
	return n.send(notificationDTO{Event: "disconnected", CallID: id.String(), Cause: string(cause), Message: message})
}

// SendError reports a failed request back to the manager. Not part of the
// adapter port; the dispatch loop uses it for precondition violations.
func (n *Notifier) SendError(op string, callID string, err error) error {
	return n.send(notificationDTO{Event: "error", Op: op, CallID: callID, Message: err.Error()})
}

var _ port.Adapter = (*Notifier)(nil)
