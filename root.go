package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"study-time-allocator/internal/config"
	"study-time-allocator/internal/logging"
)

var version = "dev"

// app carries state shared by subcommands for one invocation.
type app struct {
	viper   *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *logging.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{viper: viper.New()}

	cmd := &cobra.Command{
		Use:   "study-time-allocator",
		Short: "Split a weekly study budget across six subjects",
		Long: `study-time-allocator weighs six subjects by level, grade gap, upcoming
assessments and difficulty, then shares each day's study time between them
in proportion to those weights.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger == nil {
				return nil
			}
			return a.logger.Close()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "Path to a YAML config file")
	flags.String("log-level", "", "Log level: DEBUG, INFO, WARN or ERROR")
	flags.String("log-dir", "", "Directory for the JSON log file (default stderr)")
	flags.Bool("debug", false, "Shorthand for --log-level DEBUG")
	_ = a.viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.viper.BindPFlag("logging.dir", flags.Lookup("log-dir"))

	cmd.AddCommand(newCalculateCommand(a))

	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		a.viper.Set("logging.level", logging.LevelDebug)
	}

	cfg, err := config.Load(a.viper, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func execute() error {
	return newRootCommand().Execute()
}
