package main

import (
	"fmt"

	"github.com/pbanos/bonsai/dataset"
	"github.com/spf13/cobra"
)

type setCmdConfig struct {
	*rootCmdConfig
	setOptions
	setInput  string
	setOutput string
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Manage sets of data",
		Long:  `Manage sets of data, dumping the input set into the output set`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.fail(1, err)
			}
			input, closeInput, err := config.openReader(config.Context(), config.setInput, &config.setOptions)
			if err != nil {
				config.fail(2, err)
			}
			defer closeInput()
			output, closeOutput, err := config.openWriter(config.Context(), config.setOutput, &config.setOptions)
			if err != nil {
				config.fail(3, err)
			}
			n, err := dataset.Copy(config.Context(), output, input)
			if err != nil {
				config.fail(4, err)
			}
			err = closeOutput()
			if err != nil {
				config.fail(5, err)
			}
			config.Logf("Done: %d records dumped", n)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.setInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.setOutput), "output", "o", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL to dump the output set (defaults to STDOUT in CSV)")
	cmd.PersistentFlags().StringVar(&(config.csvMode), "csv-mode", "labeled", "how to read CSV lines: labeled (attributes followed by an integer label), unlabeled (attributes followed by an ignored value) or attributes (attributes only)")
	cmd.PersistentFlags().BoolVar(&(config.csvHeader), "csv-header", false, "skip the first line of CSV inputs")
	cmd.PersistentFlags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	cmd.AddCommand(splitCmd(config))
	return cmd
}

func (scc *setCmdConfig) Validate() error {
	if scc.setInput != "" && scc.setInput == scc.setOutput {
		return fmt.Errorf("input and output sets must be different")
	}
	return scc.setOptions.Validate()
}
