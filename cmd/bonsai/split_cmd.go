package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pbanos/bonsai/dataset"
	"github.com/spf13/cobra"
)

type splitCmdConfig struct {
	*setCmdConfig
	splitOutput      string
	splitProbability int
	seed             int64
}

func splitCmd(setConfig *setCmdConfig) *cobra.Command {
	config := &splitCmdConfig{setCmdConfig: setConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set into two sets",
		Long:  `Split a set into an output set and a split set, assigning each record to the split set with the given probability`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.fail(1, err)
			}
			p, _ := parsePercent(config.splitProbability)
			input, closeInput, err := config.openReader(config.Context(), config.setInput, &config.setOptions)
			if err != nil {
				config.fail(2, err)
			}
			defer closeInput()
			output, closeOutput, err := config.openWriter(config.Context(), config.setOutput, &config.setOptions)
			if err != nil {
				config.fail(3, err)
			}
			splitOutput, closeSplitOutput, err := config.openWriter(config.Context(), config.splitOutput, &config.setOptions)
			if err != nil {
				config.fail(4, err)
			}
			seed := config.seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			config.Logf("Splitting input set with seed %d...", seed)
			n, m, err := dataset.Split(config.Context(), input, output, splitOutput, p, rand.New(rand.NewSource(seed)))
			if err != nil {
				config.fail(5, err)
			}
			for _, c := range []closer{closeOutput, closeSplitOutput} {
				if err = c(); err != nil {
					config.fail(6, err)
				}
			}
			config.Logf("Done")
			config.Infof("Input set with %d records was split into sets with %d and %d records", n+m, n, m)
		},
	}
	cmd.Flags().StringVarP(&(config.splitOutput), "split-output", "s", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL to dump the split set (required)")
	cmd.Flags().IntVarP(&(config.splitProbability), "split-probability", "p", 20, "probability as percent integer that a record of the set will be assigned to the split set")
	cmd.Flags().Int64Var(&(config.seed), "seed", 0, "seed for the random assignment of records (defaults to 0: time based)")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if scc.splitOutput == "" {
		return fmt.Errorf("required split-output flag was not set")
	}
	if scc.splitOutput == scc.setOutput || scc.splitOutput == scc.setInput {
		return fmt.Errorf("split-output must differ from the input and output sets")
	}
	if _, err := parsePercent(scc.splitProbability); err != nil {
		return fmt.Errorf("split-probability flag was set to an invalid value: %v", err)
	}
	return scc.setCmdConfig.Validate()
}
