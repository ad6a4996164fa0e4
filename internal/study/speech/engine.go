package speech

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/viper"
)

type EngineType string

const (
	EngineTypeMock   EngineType = "mock"
	EngineTypeESpeak EngineType = "espeak"
	EngineTypeGoogle EngineType = "google"
	EngineTypeAuto   EngineType = "auto"
)

func (e EngineType) String() string {
	return string(e)
}

// NewEngine creates a speech engine from config, resolving "auto" to the
// best engine available on this machine.
func NewEngine(config Config) (Engine, error) {
	if config.Type == EngineTypeAuto.String() || config.Type == "" {
		config.Type = bestEngineAvailable().String()
	}

	switch config.Type {
	case EngineTypeMock.String():
		return NewMockEngine(config), nil

	case EngineTypeGoogle.String():
		cachePath := viper.GetString("speech.cache_path")
		return newGoogleEngine(config, cachePath)

	case EngineTypeESpeak.String():
		return newESpeakEngine(config)

	default:
		return nil, fmt.Errorf("unsupported speech engine type: %s", config.Type)
	}
}

func bestEngineAvailable() EngineType {
	if hasGoogleCredentials() {
		return EngineTypeGoogle
	}
	if runtime.GOOS == "linux" || runtime.GOOS == "darwin" {
		if _, err := findESpeakExecutable(); err == nil {
			return EngineTypeESpeak
		}
	}
	return EngineTypeMock
}

// AvailableEngines returns the engines usable on this machine.
func AvailableEngines() []EngineType {
	engines := []EngineType{EngineTypeMock}
	if _, err := findESpeakExecutable(); err == nil {
		engines = append(engines, EngineTypeESpeak)
	}
	if hasGoogleCredentials() {
		engines = append(engines, EngineTypeGoogle)
	}
	return engines
}

func hasGoogleCredentials() bool {
	_, ok := os.LookupEnv("GOOGLE_APPLICATION_CREDENTIALS")
	return ok
}
