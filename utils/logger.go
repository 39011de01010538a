package utils

import (
	"os"

	"github.com/rs/zerolog"
)

// Log is the process logger. InitLogger replaces it once config is loaded.
var Log = zerolog.New(os.Stdout).With().Timestamp().Logger()

// InitLogger sets the global level; unknown levels fall back to info.
func InitLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	Log = zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
