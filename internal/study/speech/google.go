package speech

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"cloud.google.com/go/texttospeech/apiv1"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/sirupsen/logrus"
	texttospeechpb "google.golang.org/genproto/googleapis/cloud/texttospeech/v1"
)

// GoogleEngine synthesizes speech with the Cloud Text-to-Speech API and
// plays it back through beep. Synthesized MP3s are cached on disk keyed by
// a hash of text+voice, so re-reading a topic costs no API calls.
type GoogleEngine struct {
	client    *texttospeech.Client
	ctx       context.Context
	voice     string
	speed     float64
	volume    float64
	cacheDir  string
	isPlaying bool
	ctrl      *beep.Ctrl
	streamer  beep.StreamSeekCloser
	done      chan bool
	mu        sync.Mutex
}

func newGoogleEngine(config Config, cacheDir string) (*GoogleEngine, error) {
	ctx := context.Background()
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS client: %w", err)
	}

	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "crambox", "speech")
	}
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}

	voice := config.Voice
	if voice == "" || voice == "default" {
		voice = "en-US-Neural2-D"
	}

	return &GoogleEngine{
		client:   client,
		ctx:      ctx,
		voice:    voice,
		speed:    config.Speed,
		volume:   config.Volume,
		cacheDir: cacheDir,
	}, nil
}

func (g *GoogleEngine) Speak(text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	contentHash := md5Sum(text + g.voice)[:12]
	chunks := splitIntoChunks(text, 4800) // API limit is 5000 bytes

	for i, chunk := range chunks {
		chunkPath := filepath.Join(g.cacheDir, fmt.Sprintf("%s_%d.mp3", contentHash, i))
		if _, err := os.Stat(chunkPath); os.IsNotExist(err) {
			if err := g.synthesize(chunk, chunkPath); err != nil {
				return fmt.Errorf("failed to synthesize chunk %d: %w", i, err)
			}
		} else {
			logrus.WithField("file", chunkPath).Debug("Using cached audio chunk")
		}
	}

	for i := range chunks {
		chunkPath := filepath.Join(g.cacheDir, fmt.Sprintf("%s_%d.mp3", contentHash, i))
		if err := g.playFile(chunkPath); err != nil {
			return err
		}
	}
	return nil
}

func (g *GoogleEngine) synthesize(text, outPath string) error {
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: "en-US",
			Name:         g.voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  g.speed,
			VolumeGainDb:  g.volume,
		},
	}

	resp, err := g.client.SynthesizeSpeech(g.ctx, req)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, resp.AudioContent, 0644); err != nil {
		return fmt.Errorf("failed to write MP3 to %s: %w", outPath, err)
	}

	logrus.WithField("file", outPath).Debug("Cached synthesized audio")
	return nil
}

func (g *GoogleEngine) playFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open cached MP3 %s: %w", path, err)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to decode MP3 %s: %w", path, err)
	}

	g.streamer = streamer
	g.ctrl = &beep.Ctrl{Streamer: streamer, Paused: false}
	g.done = make(chan bool)

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		streamer.Close()
		return err
	}

	g.isPlaying = true
	speaker.Play(beep.Seq(g.ctrl, beep.Callback(func() {
		g.isPlaying = false
		g.done <- true
	})))

	<-g.done
	streamer.Close()
	return nil
}

func (g *GoogleEngine) SetVoice(voice string) error {
	g.voice = voice
	return nil
}

func (g *GoogleEngine) SetSpeed(speed float64) error {
	g.speed = speed
	return nil
}

func (g *GoogleEngine) SetVolume(volume float64) error {
	g.volume = volume
	return nil
}

func (g *GoogleEngine) Stop() error {
	if g.streamer != nil {
		g.streamer.Close()
	}
	g.isPlaying = false
	return nil
}

func (g *GoogleEngine) Pause() error {
	if g.ctrl != nil {
		speaker.Lock()
		g.ctrl.Paused = true
		speaker.Unlock()
	}
	return nil
}

func (g *GoogleEngine) Resume() error {
	if g.ctrl != nil {
		speaker.Lock()
		g.ctrl.Paused = false
		speaker.Unlock()
	}
	return nil
}

func (g *GoogleEngine) IsPlaying() bool {
	return g.isPlaying
}

func (g *GoogleEngine) GetAvailableVoices() ([]string, error) {
	resp, err := g.client.ListVoices(g.ctx, &texttospeechpb.ListVoicesRequest{})
	if err != nil {
		return nil, err
	}
	voices := []string{}
	for _, v := range resp.Voices {
		voices = append(voices, v.Name)
	}
	return voices, nil
}

// ClearCache removes all cached audio.
func (g *GoogleEngine) ClearCache() error {
	return os.RemoveAll(g.cacheDir)
}

func md5Sum(s string) string {
	h := md5.New()
	io.WriteString(h, s)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// splitIntoChunks splits text into pieces of at most limit bytes without
// cutting through a rune.
func splitIntoChunks(text string, limit int) []string {
	var chunks []string
	var sb strings.Builder
	for _, r := range text {
		if sb.Len()+utf8.RuneLen(r) > limit {
			chunks = append(chunks, sb.String())
			sb.Reset()
		}
		sb.WriteRune(r)
	}
	if sb.Len() > 0 {
		chunks = append(chunks, sb.String())
	}
	return chunks
}
