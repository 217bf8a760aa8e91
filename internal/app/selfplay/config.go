package selfplay

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	EnginePath      string
	BlackEnginePath string
	Hash            int
	Threads         int

	MoveTime time.Duration
	Depth    int
	MaxPlies int

	Fen         string
	OpeningPath string
	PgnOut      string

	Display     string
	DisplayAddr string

	LogLevel    string
	Development bool
}

func LoadConfig(args []string) (Config, error) {
	fs := pflag.NewFlagSet("selfplay", pflag.ContinueOnError)
	envFile := fs.String("env-file", "./configs/selfplay/app.env", "env file with engine settings")
	fs.String("engine", "stockfish", "UCI engine playing white (and black unless --black-engine is set)")
	fs.String("black-engine", "", "UCI engine playing black")
	fs.Int("hash", 0, "engine Hash option in MB (0 keeps the engine default)")
	fs.Int("threads", 0, "engine Threads option (0 keeps the engine default)")
	fs.Duration("movetime", time.Second, "time per move")
	fs.Int("depth", 0, "fixed search depth instead of movetime")
	fs.Int("max-plies", 0, "stop after this many plies (0 plays to the end)")
	fs.String("fen", "", "starting position")
	fs.String("opening", "", "PGN file whose final position starts the game")
	fs.String("pgn-out", "", "write the finished game to this PGN file")
	fs.String("display", "terminal", "board display: terminal, websocket or none")
	fs.String("addr", ":7203", "listen address of the websocket display")
	fs.String("log-level", "info", "log level")
	fs.Bool("dev", false, "human readable logs")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	if err := loadEnvFiles(v, []string{*envFile}); err != nil {
		return Config{}, err
	}
	v.AutomaticEnv()
	bindings := map[string]string{
		"ENGINE_PATH":       "engine",
		"BLACK_ENGINE_PATH": "black-engine",
		"HASH":              "hash",
		"THREADS":           "threads",
		"MOVETIME":          "movetime",
		"DEPTH":             "depth",
		"MAX_PLIES":         "max-plies",
		"FEN":               "fen",
		"OPENING":           "opening",
		"PGN_OUT":           "pgn-out",
		"BOARD_DISPLAY":     "display",
		"DISPLAY_ADDR":      "addr",
		"LOG_LEVEL":         "log-level",
		"LOG_DEV":           "dev",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return Config{}, err
		}
	}

	return Config{
		EnginePath:      v.GetString("ENGINE_PATH"),
		BlackEnginePath: v.GetString("BLACK_ENGINE_PATH"),
		Hash:            v.GetInt("HASH"),
		Threads:         v.GetInt("THREADS"),
		MoveTime:        v.GetDuration("MOVETIME"),
		Depth:           v.GetInt("DEPTH"),
		MaxPlies:        v.GetInt("MAX_PLIES"),
		Fen:             v.GetString("FEN"),
		OpeningPath:     v.GetString("OPENING"),
		PgnOut:          v.GetString("PGN_OUT"),
		Display:         v.GetString("BOARD_DISPLAY"),
		DisplayAddr:     v.GetString("DISPLAY_ADDR"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		Development:     v.GetBool("LOG_DEV"),
	}, nil
}

func loadEnvFiles(v *viper.Viper, filenames []string) error {
	for _, file := range filenames {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		v.SetConfigFile(file)
		v.SetConfigType("env")

		if err := v.MergeInConfig(); err != nil {
			return err
		}
	}
	return nil
}
