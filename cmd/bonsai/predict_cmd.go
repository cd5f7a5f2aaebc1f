package main

import (
	"fmt"

	"github.com/pbanos/bonsai"
	"github.com/pbanos/bonsai/dataset/csv"
	"github.com/pbanos/bonsai/prediction"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	setOptions
	treeInput string
	dataInput string
	output    string
	header    string
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Classify a set of data with a tree",
		Long:  `Use a tree to predict the label of every record of a set of data, writing one prediction per record`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.fail(1, err)
			}
			root, err := config.loadTree(config.treeInput)
			if err != nil {
				config.fail(2, err)
			}
			records, err := config.readRecords(config.dataInput, &config.setOptions, false)
			if err != nil {
				config.fail(3, err)
			}
			p, err := bonsai.NewWithTree(root, config.Logger()).Predict(records)
			if err != nil {
				config.fail(4, err)
			}
			n, err := config.writePredictions(p, config.output, config.header, &config.setOptions)
			if err != nil {
				config.fail(5, err)
			}
			config.Logf("Done: %d predictions written", n)
		},
	}
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree will be read and parsed as JSON, or a redis://HOST:PORT/DB/NAME location (required)")
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the data to classify (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL connection URL to write the predictions to (defaults to STDOUT in CSV)")
	cmd.Flags().StringVar(&(config.header), "header", csv.DefaultPredictionHeader, "header line for CSV predictions, empty for none")
	config.setOptions.addFlags(cmd, "attributes")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return pcc.setOptions.Validate()
}

// writePredictions drains the predictions onto the sink at the given
// location and returns how many were written.
func (rcc *rootCmdConfig) writePredictions(p *bonsai.Predictions, location, header string, so *setOptions) (int, error) {
	sink, closeSink, err := rcc.openSink(rcc.Context(), location, header, so)
	if err != nil {
		return 0, fmt.Errorf("opening predictions output: %v", err)
	}
	rcc.Logf("Writing %d predictions...", p.Len())
	n, err := prediction.Drain(rcc.Context(), p.Iter(), sink)
	if cerr := closeSink(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("writing predictions: %v", err)
	}
	return n, nil
}
