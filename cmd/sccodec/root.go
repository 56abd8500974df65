package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oy3o/sccodec/config"
	"github.com/oy3o/sccodec/logging"
	"github.com/oy3o/sccodec/logging/logruslog"
	"github.com/oy3o/sccodec/logging/zaplog"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log logging.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "sccodec",
		Short: "Encode, decode and store smart-contract values",
		Long: `sccodec converts values between their literal form and the binary
format used at the storage, argument and result boundaries of contracts.

Values are described by type expressions:
  u32, i64, biguint, bytes, string, h256,
  option<T>, list<T>, tuple<T1, T2, ...>

Examples:
  sccodec encode u32 300
  sccodec decode "list<u16>" 00010002
  sccodec transcode "tuple<u8,string>" 01000000026869 --to cbor
  sccodec store set biguint total 1000000000000000000000`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override logging.level")

	root.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newTranscodeCmd(a),
		newStoreCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg := config.DefaultConfig()
	if a.configPath != "" {
		var err error
		if cfg, err = config.Load(a.configPath); err != nil {
			return err
		}
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	a.cfg = cfg

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.log = log
	return nil
}

func newLogger(c config.Logging) (logging.Logger, error) {
	switch c.Backend {
	case "logrus":
		return logruslog.New(c.Level)
	default:
		return zaplog.New(c.Level)
	}
}
