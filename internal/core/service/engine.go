package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/telemock/callsim/internal/core/domain"
	"github.com/telemock/callsim/internal/core/port"
)

// crashNumber makes PlaceCall fail with ErrSimulatedCrash. 555-0340 is
// reserved by the test harness to exercise a dying call backend.
const crashNumber = "5550340"

// defaultIncomingHandle is the synthetic endpoint announced for injected
// incoming calls.
var defaultIncomingHandle = domain.NewHandle("tel", "5551234")

// Engine is the call lifecycle state machine. It tracks which calls are
// live, keeps the audio cue playing exactly while the registry is
// non-empty and reports every transition to the attached adapter.
//
// One mutex covers the adapter reference, the registry and the cue, so
// "last call ended, stop the audio" is an atomic check-and-act even when
// requests for different calls arrive concurrently.
type Engine struct {
	mu       sync.Mutex
	adapter  port.Adapter
	registry *CallRegistry
	cue      *AudioCue

	factory           port.PlayerFactory
	incomingHandle    domain.Handle
	stopAudioOnDetach bool
}

type EngineOption func(*Engine)

// WithIncomingHandle overrides the synthetic endpoint used for injected
// incoming calls.
func WithIncomingHandle(h domain.Handle) EngineOption {
	return func(e *Engine) { e.incomingHandle = h }
}

// WithStopAudioOnDetach controls whether Detach stops and releases a
// still-playing cue. Disabling it reproduces the historical behavior of
// dropping the resource reference while the tone keeps playing.
func WithStopAudioOnDetach(stop bool) EngineOption {
	return func(e *Engine) { e.stopAudioOnDetach = stop }
}

func NewEngine(factory port.PlayerFactory, opts ...EngineOption) *Engine {
	e := &Engine{
		factory:           factory,
		incomingHandle:    defaultIncomingHandle,
		stopAudioOnDetach: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Attach binds the engine to the manager's adapter and resets all call
// state. Attaching again replaces the previous session wholesale.
func (e *Engine) Attach(adapter port.Adapter) error {
	if adapter == nil {
		return errors.New("attach: adapter must not be nil")
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cue != nil {
		e.teardownLocked()
	}
	e.adapter = adapter
	e.registry = NewCallRegistry()
	e.cue = NewAudioCue(e.factory)
	liveCallsGauge.Set(0)
	log.Info().Msg("adapter attached, engine state reset")
	return nil
}

// Detach ends the session. Whether a still-playing cue is stopped first
// is governed by WithStopAudioOnDetach.
func (e *Engine) Detach() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.adapter == nil {
		return nil
	}
	e.teardownLocked()
	liveCallsGauge.Set(0)
	log.Info().Msg("adapter detached")
	return nil
}

func (e *Engine) teardownLocked() {
	if e.stopAudioOnDetach && e.cue != nil {
		if err := e.cue.StopAndRecreate(); err != nil {
			log.Error().Err(err).Msg("failed to stop audio cue on teardown")
		}
	}
	e.adapter = nil
	e.registry = nil
	e.cue = nil
}

// CheckCompatibility answers whether this backend is willing to carry the
// call. Numbers starting with 7 are refused; an arbitrary deterministic
// rule so the manager can exercise the negative path. Pure decision, no
// registry mutation.
func (e *Engine) CheckCompatibility(info domain.CallInfo) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.adapter == nil {
		return fmt.Errorf("check compatibility: %w", ErrNotAttached)
	}
	if info.Handle.IsZero() {
		return fmt.Errorf("check compatibility for call %q: %w", info.ID, ErrMissingHandle)
	}

	compatible := !strings.HasPrefix(info.Handle.Number, "7")
	compatibilityTotal.WithLabelValues(strconv.FormatBool(compatible)).Inc()
	log.Info().Str("call_id", info.ID.String()).Str("handle", info.Handle.String()).
		Bool("compatible", compatible).Msg("compatibility probe")
	return e.adapter.ReportCompatibility(info.ID, compatible)
}

// PlaceCall registers the call as live, starts the audio cue and reports
// a successful outgoing call. Every call connects, except the crash
// sentinel which fails the whole operation before any mutation.
func (e *Engine) PlaceCall(info domain.CallInfo) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.adapter == nil {
		return fmt.Errorf("place call: %w", ErrNotAttached)
	}
	if info.Handle.IsZero() {
		return fmt.Errorf("place call %q: %w", info.ID, ErrMissingHandle)
	}
	if info.Handle.Number == crashNumber {
		simulatedCrashesTotal.Inc()
		return fmt.Errorf("place call %q to %s: %w", info.ID, info.Handle, ErrSimulatedCrash)
	}

	if err := e.createCallLocked(info.ID); err != nil {
		return fmt.Errorf("place call: %w", err)
	}
	callsPlacedTotal.Inc()
	log.Info().Str("call_id", info.ID.String()).Str("handle", info.Handle.String()).Msg("outgoing call placed")
	return e.adapter.ReportSuccessfulOutgoingCall(info.ID)
}

// Abort tears the call down silently. Unlike Disconnect no notification
// is sent.
func (e *Engine) Abort(id domain.CallID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.adapter == nil {
		return fmt.Errorf("abort: %w", ErrNotAttached)
	}
	if err := e.destroyCallLocked(id); err != nil {
		return fmt.Errorf("abort: %w", err)
	}
	log.Info().Str("call_id", id.String()).Msg("call aborted")
	return nil
}

// SetIncomingCall synthesizes a ringing call on the fixed test handle and
// announces it. The call only becomes live on a subsequent Answer, so the
// registry is left untouched. extras is accepted for interface
// compatibility and not consulted.
func (e *Engine) SetIncomingCall(id domain.CallID, extras map[string]string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.adapter == nil {
		return fmt.Errorf("incoming call: %w", ErrNotAttached)
	}
	if id.IsZero() {
		return fmt.Errorf("incoming call: %w", ErrEmptyCallID)
	}

	info := domain.CallInfo{ID: id, State: domain.StateRinging, Handle: e.incomingHandle}
	log.Info().Str("call_id", id.String()).Str("handle", info.Handle.String()).Msg("incoming call injected")
	return e.adapter.ReportIncomingCall(info)
}

// Answer reports the call active and registers it as live. The call need
// not have been announced via SetIncomingCall first.
func (e *Engine) Answer(id domain.CallID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.adapter == nil {
		return fmt.Errorf("answer: %w", ErrNotAttached)
	}
	if id.IsZero() {
		return fmt.Errorf("answer: %w", ErrEmptyCallID)
	}

	if err := e.adapter.ReportActive(id); err != nil {
		return err
	}
	if err := e.createCallLocked(id); err != nil {
		return fmt.Errorf("answer: %w", err)
	}
	log.Info().Str("call_id", id.String()).Msg("call answered")
	return nil
}

// Reject reports the ringing call as disconnected. It was never
// registered, so there is nothing to remove.
func (e *Engine) Reject(id domain.CallID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.adapter == nil {
		return fmt.Errorf("reject: %w", ErrNotAttached)
	}
	if id.IsZero() {
		return fmt.Errorf("reject: %w", ErrEmptyCallID)
	}

	disconnectsTotal.WithLabelValues(string(domain.CauseIncomingRejected)).Inc()
	log.Info().Str("call_id", id.String()).Msg("incoming call rejected")
	return e.adapter.ReportDisconnected(id, domain.CauseIncomingRejected, "")
}

// Disconnect tears the call down and reports it disconnected with the
// local cause.
func (e *Engine) Disconnect(id domain.CallID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.adapter == nil {
		return fmt.Errorf("disconnect: %w", ErrNotAttached)
	}
	if err := e.destroyCallLocked(id); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	disconnectsTotal.WithLabelValues(string(domain.CauseLocal)).Inc()
	log.Info().Str("call_id", id.String()).Msg("call disconnected")
	return e.adapter.ReportDisconnected(id, domain.CauseLocal, "")
}

// Hold relays an on-hold notification. No registry or audio effect.
func (e *Engine) Hold(id domain.CallID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.adapter == nil {
		return fmt.Errorf("hold: %w", ErrNotAttached)
	}
	if id.IsZero() {
		return fmt.Errorf("hold: %w", ErrEmptyCallID)
	}
	return e.adapter.ReportOnHold(id)
}

// Unhold relays an active notification. No registry or audio effect.
func (e *Engine) Unhold(id domain.CallID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.adapter == nil {
		return fmt.Errorf("unhold: %w", ErrNotAttached)
	}
	if id.IsZero() {
		return fmt.Errorf("unhold: %w", ErrEmptyCallID)
	}
	return e.adapter.ReportActive(id)
}

// PlayDTMFTone is accepted and intentionally does nothing.
func (e *Engine) PlayDTMFTone(id domain.CallID, digit rune) error {
	log.Debug().Str("call_id", id.String()).Str("digit", string(digit)).Msg("dtmf tone ignored")
	return nil
}

// StopDTMFTone is accepted and intentionally does nothing.
func (e *Engine) StopDTMFTone(id domain.CallID) error {
	log.Debug().Str("call_id", id.String()).Msg("dtmf stop ignored")
	return nil
}

// OnAudioRouteChanged is accepted and does nothing; audio routing is out
// of scope for the simulator.
func (e *Engine) OnAudioRouteChanged(id domain.CallID, route string) error {
	log.Debug().Str("call_id", id.String()).Str("route", route).Msg("audio route change ignored")
	return nil
}

// Attached reports whether the engine currently has an adapter.
func (e *Engine) Attached() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.adapter != nil
}

// LiveCount is the number of live calls, 0 when detached.
func (e *Engine) LiveCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.registry == nil {
		return 0
	}
	return e.registry.Len()
}

// AudioPlaying reports whether the cue is currently playing.
func (e *Engine) AudioPlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cue != nil && e.cue.Playing()
}

// createCallLocked adds id to the live set and starts the cue if it is
// not already playing. Callers hold e.mu.
func (e *Engine) createCallLocked(id domain.CallID) error {
	if id.IsZero() {
		return ErrEmptyCallID
	}
	e.registry.Add(id)
	liveCallsGauge.Set(float64(e.registry.Len()))
	return e.cue.Start()
}

// destroyCallLocked removes id from the live set and, when the last call
// is gone, stops and replaces the cue. Callers hold e.mu.
func (e *Engine) destroyCallLocked(id domain.CallID) error {
	if id.IsZero() {
		return ErrEmptyCallID
	}
	e.registry.Remove(id)
	liveCallsGauge.Set(float64(e.registry.Len()))
	if e.registry.IsEmpty() {
		return e.cue.StopAndRecreate()
	}
	return nil
}

var _ port.CallHandler = (*Engine)(nil)
