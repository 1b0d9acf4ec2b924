package config

import "flag"

// NewFlagSet returns a flag set bound to a fresh [StructuredConfig]. After
// the set has been parsed (directly or through a CLI framework that accepts
// Go flag sets) the returned config holds the flag values and can be passed
// to [GetStructuredConfig].
//
// Flags:
//
//	-d / -dsn     database file path
//	-driver       database/sql driver: sqlite or sqlite3
//	-log-level    log level (debug, info, warn, error)
//	-log-file     log file path
//	-c / -config  json file path with configs
func NewFlagSet(name string) (*flag.FlagSet, *StructuredConfig) {
	cfg := &StructuredConfig{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database file path")
	fs.StringVar(&cfg.Storage.DB.DSN, "dsn", "", "Database file path (alias)")
	fs.StringVar(&cfg.Storage.DB.Driver, "driver", "", "Database driver: sqlite or sqlite3")
	fs.StringVar(&cfg.Log.Level, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Log.File, "log-file", "", "Log file path")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")

	return fs, cfg
}

// ParseFlags parses args with a flag set from [NewFlagSet] and returns the
// resulting config.
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs, cfg := NewFlagSet("vault")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}
