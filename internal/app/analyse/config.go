package analyse

import (
	"errors"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var ErrNoInput = errors.New("one of --fen or --pgn is required")

type Config struct {
	StockfishPath string
	MultiPV       int
	Hash          int
	Threads       int
	Depth         int

	Fen     string
	PgnPath string
	JSON    bool

	LogLevel    string
	Development bool
}

func LoadConfig(args []string) (Config, error) {
	fs := pflag.NewFlagSet("analyse", pflag.ContinueOnError)
	envFile := fs.String("env-file", "./configs/analyse/app.env", "env file with engine settings")
	fen := fs.String("fen", "", "position to analyse")
	pgnPath := fs.String("pgn", "", "analyse every position of the games in this PGN file")
	asJSON := fs.Bool("json", false, "print evaluations as JSON lines")
	fs.String("stockfish", "stockfish", "path to the analysing UCI engine")
	fs.Int("multipv", 3, "number of principal variations")
	fs.Int("hash", 128, "engine Hash option in MB")
	fs.Int("threads", 2, "engine Threads option")
	fs.Int("depth", 20, "search depth per position")
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
		"STOCKFISH_PATH": "stockfish",
		"MULTIPV":        "multipv",
		"HASH":           "hash",
		"THREADS":        "threads",
		"DEPTH":          "depth",
		"LOG_LEVEL":      "log-level",
		"LOG_DEV":        "dev",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return Config{}, err
		}
	}

	if *fen == "" && *pgnPath == "" {
		return Config{}, ErrNoInput
	}
	return Config{
		StockfishPath: v.GetString("STOCKFISH_PATH"),
		MultiPV:       v.GetInt("MULTIPV"),
		Hash:          v.GetInt("HASH"),
		Threads:       v.GetInt("THREADS"),
		Depth:         v.GetInt("DEPTH"),
		Fen:           *fen,
		PgnPath:       *pgnPath,
		JSON:          *asJSON,
		LogLevel:      v.GetString("LOG_LEVEL"),
		Development:   v.GetBool("LOG_DEV"),
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
