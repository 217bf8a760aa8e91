package perftcmp

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/chess-vn/enginebench/internal/domains/entities"
	"github.com/chess-vn/enginebench/internal/perft"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Query     entities.PerftQuery
	SuitePath string

	Reference     string
	StockfishPath string
	CandidatePath string
	Timeout       time.Duration

	LogLevel    string
	Development bool
}

// LoadConfig reads flags from args, then fills tool settings from the
// optional env file and the environment. Flags given explicitly win.
func LoadConfig(args []string) (Config, error) {
	fs := pflag.NewFlagSet("perftcmp", pflag.ContinueOnError)
	depth := fs.Int("depth", 0, "perft depth")
	fen := fs.String("fen", entities.StartFen, "starting position")
	moves := fs.StringSlice("moves", nil, "moves applied after the position (remaining arguments are appended)")
	suite := fs.String("suite", "", "YAML perft suite to run instead of a single position")
	envFile := fs.String("env-file", "./configs/perftcmp/app.env", "env file with tool settings")
	fs.String("reference", "stockfish", "reference tool: stockfish or builtin")
	fs.String("stockfish", "stockfish", "path to the reference UCI engine")
	fs.String("candidate", "./cmake-build-debug/perft", "path to the candidate perft binary")
	fs.Duration("timeout", 0, "abort the comparison after this long (0 disables)")
	fs.String("log-level", "info", "log level")
	fs.Bool("dev", false, "human readable logs")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	if err := loadEnvFiles(v, []string{*envFile}); err != nil {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	v.AutomaticEnv()
	bindings := map[string]string{
		"REFERENCE":      "reference",
		"STOCKFISH_PATH": "stockfish",
		"CANDIDATE_PATH": "candidate",
		"TIMEOUT":        "timeout",
		"LOG_LEVEL":      "log-level",
		"LOG_DEV":        "dev",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		Query: entities.PerftQuery{
			Depth: *depth,
			Fen:   *fen,
			Moves: append(*moves, fs.Args()...),
		},
		SuitePath:     *suite,
		Reference:     v.GetString("REFERENCE"),
		StockfishPath: v.GetString("STOCKFISH_PATH"),
		CandidatePath: v.GetString("CANDIDATE_PATH"),
		Timeout:       v.GetDuration("TIMEOUT"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		Development:   v.GetBool("LOG_DEV"),
	}
	if cfg.SuitePath == "" && cfg.Query.Depth <= 0 {
		return Config{}, fmt.Errorf("--depth: %w", perft.ErrInvalidDepth)
	}
	return cfg, nil
}

// loadEnvFiles merges the given env files into v, skipping missing ones.
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
