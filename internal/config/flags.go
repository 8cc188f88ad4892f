package config

import (
	"flag"
	"fmt"
	"io"
	"time"
)

// ParseFlags parses the global flags in args and returns the remaining
// arguments, which start with the subcommand.
//
// Flags:
//
//	-d database DSN
//	-o export output directory
//	-c/-config json file path with configs
//	-log log file path
//	-kdf-iterations PBKDF2 iteration count
//	-short-ttl session lifetime without "remember me" (e.g. "24h")
//	-long-ttl remembered session lifetime (e.g. "720h")
//	-sweep-interval expired session purge interval (e.g. "10m")
//	-skip-card do not embed card.png into exports
func ParseFlags(args []string) (*StructuredConfig, []string, error) {
	var (
		databaseDSN    string
		exportDir      string
		jsonConfigPath string
		logPath        string
		kdfIterations  int
		shortTTL       time.Duration
		longTTL        time.Duration
		sweepInterval  time.Duration
		skipCard       bool
	)

	fs := flag.NewFlagSet("myself", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&exportDir, "o", "", "Export output directory")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&logPath, "log", "", "Log file path")
	fs.IntVar(&kdfIterations, "kdf-iterations", 0, "PBKDF2 iterations")
	fs.DurationVar(&shortTTL, "short-ttl", 0, "Session lifetime (e.g., 24h)")
	fs.DurationVar(&longTTL, "long-ttl", 0, "Remembered session lifetime (e.g., 720h)")
	fs.DurationVar(&sweepInterval, "sweep-interval", 0, "Expired session purge interval (e.g., 10m)")
	fs.BoolVar(&skipCard, "skip-card", false, "Do not embed card.png into exports")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			KDFIterations: kdfIterations,
			LogPath:       logPath,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Session: Session{
			ShortTTL:      shortTTL,
			LongTTL:       longTTL,
			SweepInterval: sweepInterval,
		},
		Export: Export{
			Dir:      exportDir,
			SkipCard: skipCard,
		},
		JSONFilePath: jsonConfigPath,
	}, fs.Args(), nil
}
