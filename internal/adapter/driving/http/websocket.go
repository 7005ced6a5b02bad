package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	wsgw "github.com/telemock/callsim/internal/adapter/driven/gateway/ws"
	"github.com/telemock/callsim/internal/core/domain"
	"github.com/telemock/callsim/internal/core/port"
	"github.com/telemock/callsim/internal/core/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The manager runs next to the simulator in test rigs.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// requestDTO is one lifecycle request frame from the call manager.
type requestDTO struct {
	Op     string            `json:"op"`
	CallID string            `json:"call_id"`
	Scheme string            `json:"scheme,omitempty"`
	Number string            `json:"number,omitempty"`
	Digit  string            `json:"digit,omitempty"`
	Route  string            `json:"route,omitempty"`
	Extras map[string]string `json:"extras,omitempty"`
}

// ServeWS runs one attach/detach session: upgrade, attach a fresh engine
// to a socket-backed adapter, then dispatch request frames until the
// manager disconnects or the handler "crashes".
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("error while upgrading ws")
		return
	}

	sessionID := uuid.NewString()
	l := log.With().Str("session_id", sessionID).Logger()

	engine := h.newEngine()
	notifier := wsgw.NewNotifier(conn)
	if err := engine.Attach(notifier); err != nil {
		l.Error().Err(err).Msg("failed to attach engine")
		conn.Close()
		return
	}

	sess := &Session{ID: sessionID, conn: conn}
	h.sessions.Register(sess)
	l.Info().Msg("call manager connected")

	defer func() {
		h.sessions.Unregister(sess)
		if err := engine.Detach(); err != nil {
			l.Error().Err(err).Msg("error detaching engine")
		}
		conn.Close()
		l.Info().Msg("call manager disconnected")
	}()

	for {
		var req requestDTO
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				l.Error().Err(err).Msg("unexpected close error")
			}
			return
		}

		if err := dispatch(engine, req); err != nil {
			if errors.Is(err, service.ErrSimulatedCrash) {
				// Sever the link without a close handshake so the
				// manager observes a dead call handler.
				l.Error().Err(err).Msg("call handler crashed, severing manager link")
				return
			}
			l.Error().Err(err).Str("op", req.Op).Str("call_id", req.CallID).Msg("request failed")
			if err := notifier.SendError(req.Op, req.CallID, err); err != nil {
				l.Error().Err(err).Msg("failed to send error frame")
				return
			}
		}
	}
}

func dispatch(engine port.CallHandler, req requestDTO) error {
	id := domain.CallID(req.CallID)

	switch req.Op {
	case "check_compatibility":
		return engine.CheckCompatibility(domain.CallInfo{
			ID:     id,
			State:  domain.StateDialing,
			Handle: domain.NewHandle(req.Scheme, req.Number),
		})
	case "place_call":
		return engine.PlaceCall(domain.CallInfo{
			ID:     id,
			State:  domain.StateDialing,
			Handle: domain.NewHandle(req.Scheme, req.Number),
		})
	case "abort":
		return engine.Abort(id)
	case "set_incoming_call":
		return engine.SetIncomingCall(id, req.Extras)
	case "answer":
		return engine.Answer(id)
	case "reject":
		return engine.Reject(id)
	case "disconnect":
		return engine.Disconnect(id)
	case "hold":
		return engine.Hold(id)
	case "unhold":
		return engine.Unhold(id)
	case "play_dtmf":
		var digit rune
		if runes := []rune(req.Digit); len(runes) > 0 {
			digit = runes[0]
		}
		return engine.PlayDTMFTone(id, digit)
	case "stop_dtmf":
		return engine.StopDTMFTone(id)
	case "audio_route_changed":
		return engine.OnAudioRouteChanged(id, req.Route)
	default:
		return fmt.Errorf("unknown op %q", req.Op)
	}
}
