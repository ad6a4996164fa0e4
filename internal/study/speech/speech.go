package speech

// Config selects and tunes a speech engine.
type Config struct {
	Type   string
	Voice  string
	Speed  float64
	Volume float64
}

// Engine reads topic text aloud.
type Engine interface {
	Speak(text string) error
	SetVoice(voice string) error
	SetSpeed(speed float64) error
	SetVolume(volume float64) error
	Stop() error
	Pause() error
	Resume() error
	IsPlaying() bool
	GetAvailableVoices() ([]string, error)
}
