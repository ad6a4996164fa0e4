package speech

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEngineLifecycle(t *testing.T) {
	engine := NewMockEngine(Config{Speed: 1.0, Volume: 1.0})

	require.NoError(t, engine.Speak("short text"))
	assert.False(t, engine.IsPlaying(), "mock playback finishes synchronously")

	require.NoError(t, engine.SetVoice("narrator"))
	require.NoError(t, engine.SetSpeed(1.5))
	require.NoError(t, engine.SetVolume(0.5))
	require.NoError(t, engine.Stop())

	voices, err := engine.GetAvailableVoices()
	require.NoError(t, err)
	assert.Equal(t, []string{"mock-voice"}, voices)
}

func TestNewEngineMock(t *testing.T) {
	engine, err := NewEngine(Config{Type: "mock", Speed: 1.0, Volume: 1.0})
	require.NoError(t, err)
	assert.IsType(t, &MockEngine{}, engine)
}

func TestNewEngineUnknownType(t *testing.T) {
	_, err := NewEngine(Config{Type: "gramophone"})
	assert.Error(t, err)
}

func TestParseESpeakVoices(t *testing.T) {
	output := strings.Join([]string{
		"Pty Language Age/Gender VoiceName          File          Other Languages",
		" 5  en-gb          M  english             en            (en 2)",
		" 5  en-us          M  english-us          en-us         (en 3)",
		"",
	}, "\n")

	voices := parseESpeakVoices(output)
	assert.Equal(t, []string{"english", "english-us"}, voices)
}

func TestSplitIntoChunks(t *testing.T) {
	chunks := splitIntoChunks("abcdefghij", 4)
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, chunks)

	assert.Empty(t, splitIntoChunks("", 4))
}

func TestSplitIntoChunksByteLimit(t *testing.T) {
	// The limit counts bytes, not runes: each "é" is 2 bytes, so 4 runes
	// of multi-byte text already hit a 5-byte limit.
	text := strings.Repeat("é", 8)
	chunks := splitIntoChunks(text, 5)

	var rejoined strings.Builder
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 5)
		assert.True(t, utf8.ValidString(chunk), "chunk must not cut through a rune")
		rejoined.WriteString(chunk)
	}
	assert.Equal(t, text, rejoined.String())
}

func TestEstimateDuration(t *testing.T) {
	assert.Equal(t, time.Minute, estimateDuration(150, 1.0))
	assert.Equal(t, 30*time.Second, estimateDuration(150, 2.0))
	assert.Equal(t, 30*time.Second, estimateDuration(75, 1.0))

	// Zero or negative speed falls back to normal speed.
	assert.Equal(t, time.Minute, estimateDuration(150, 0))
}
