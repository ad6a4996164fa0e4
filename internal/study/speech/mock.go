package speech

import (
	"strings"
	"time"

	"github.com/fatih/color"
)

// MockEngine simulates playback; used in tests and on machines with no
// speech backend installed.
type MockEngine struct {
	playing bool
	paused  bool
	voice   string
	speed   float64
	volume  float64
}

func NewMockEngine(c Config) *MockEngine {
	return &MockEngine{
		voice:  "default",
		speed:  c.Speed,
		volume: c.Volume,
	}
}

func (m *MockEngine) Speak(text string) error {
	m.playing = true
	m.paused = false

	duration := estimateDuration(len(strings.Fields(text)), m.speed)
	color.Yellow("🔊 Reading aloud... (simulated for %v)", duration)

	m.playing = false
	return nil
}

// estimateDuration assumes 150 words per minute at normal speed; a higher
// speed shortens the estimate.
func estimateDuration(words int, speed float64) time.Duration {
	if speed <= 0 {
		speed = 1.0
	}
	seconds := float64(words) / 150.0 * 60.0 / speed
	return time.Duration(seconds * float64(time.Second)).Round(time.Second)
}

func (m *MockEngine) SetVoice(voice string) error {
	m.voice = voice
	return nil
}

func (m *MockEngine) SetSpeed(speed float64) error {
	m.speed = speed
	return nil
}

func (m *MockEngine) SetVolume(volume float64) error {
	m.volume = volume
	return nil
}

func (m *MockEngine) Stop() error {
	m.playing = false
	m.paused = false
	return nil
}

func (m *MockEngine) Pause() error {
	if m.playing {
		m.paused = true
	}
	return nil
}

func (m *MockEngine) Resume() error {
	if m.paused {
		m.paused = false
	}
	return nil
}

func (m *MockEngine) IsPlaying() bool {
	return m.playing && !m.paused
}

func (m *MockEngine) GetAvailableVoices() ([]string, error) {
	return []string{"mock-voice"}, nil
}
