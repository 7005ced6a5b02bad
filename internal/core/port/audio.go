package port

// TonePlayer is the black-box looping tone resource played while calls are
// live. A released player must never be started again.
type TonePlayer interface {
	InstanceID() string
	Start() error
	Stop() error
	Release() error
	IsPlaying() bool
}

// PlayerFactory allocates a fresh TonePlayer instance.
type PlayerFactory func() TonePlayer
