package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootCmdConfig struct {
	verbose    bool
	logFile    string
	logger     *zap.SugaredLogger
	ctx        context.Context
	cancelFunc context.CancelFunc
}

func main() {
	config := &rootCmdConfig{}
	err := cliParser(config).Execute()
	config.ContextCancelFunc()()
	config.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func cliParser(config *rootCmdConfig) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bonsai",
		Short: "bonsai is a tool to grow binary decision trees",
		Long:  `A tool to grow binary decision trees from labeled numeric data, test them, and use them to classify new data`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(config.verbose, config.logFile)
			if err != nil {
				return fmt.Errorf("setting up logging: %v", err)
			}
			config.logger = logger
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log progress and debugging information")
	rootCmd.PersistentFlags().StringVar(&(config.logFile), "log-file", "", "path to a file to write logs to, rotated as it grows (defaults to STDERR)")
	rootCmd.AddCommand(
		versionCmd(),
		growCmd(config),
		testCmd(config),
		predictCmd(config),
		treeCmd(config),
		runCmd(config),
		setCmd(config),
	)
	return rootCmd
}

func (rcc *rootCmdConfig) setContextAndCancelFunc() {
	if rcc.ctx == nil {
		rcc.ctx, rcc.cancelFunc = signal.NotifyContext(context.Background(), os.Interrupt)
	}
}

// Context returns a context that is cancelled on interruption.
func (rcc *rootCmdConfig) Context() context.Context {
	rcc.setContextAndCancelFunc()
	return rcc.ctx
}

func (rcc *rootCmdConfig) ContextCancelFunc() context.CancelFunc {
	rcc.setContextAndCancelFunc()
	return rcc.cancelFunc
}

// fail reports the given error and exits with the given code.
func (rcc *rootCmdConfig) fail(code int, err error) {
	if rcc.logger != nil {
		rcc.logger.Debugw("exiting", "code", code, "error", err)
	}
	fmt.Fprintln(os.Stderr, err)
	if rcc.cancelFunc != nil {
		rcc.cancelFunc()
	}
	rcc.Sync()
	os.Exit(code)
}
