package app

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config carries every runtime knob. Values come from the environment so
// deployments tune the server without flags or config files.
type Config struct {
	Addr            string   `env:"BACKSTAGE_ADDR" envDefault:":8080"`
	FrameRate       int      `env:"BACKSTAGE_FRAME_RATE" envDefault:"30"`
	CellSize        float64  `env:"BACKSTAGE_CELL_SIZE" envDefault:"5"`
	HistoryLimit    int      `env:"BACKSTAGE_HISTORY_LIMIT" envDefault:"50"`
	CommandCapacity int      `env:"BACKSTAGE_COMMAND_CAPACITY" envDefault:"256"`
	LogSinks        []string `env:"BACKSTAGE_LOG_SINKS" envDefault:"console"`
	LogJSONPath     string   `env:"BACKSTAGE_LOG_JSON_PATH" envDefault:"backstage-events.ndjson"`
	AudioEnabled    bool     `env:"BACKSTAGE_AUDIO" envDefault:"false"`
	AudioSampleRate int      `env:"BACKSTAGE_AUDIO_SAMPLE_RATE" envDefault:"48000"`
	EnablePprof     bool     `env:"BACKSTAGE_ENABLE_PPROF" envDefault:"false"`
}

// LoadConfig reads the environment into a Config.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
