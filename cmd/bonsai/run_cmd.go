package main

import (
	"fmt"

	"github.com/pbanos/bonsai"
	"github.com/pbanos/bonsai/dataset/csv"
	"github.com/pbanos/bonsai/tree"
	"github.com/spf13/cobra"
)

type runCmdConfig struct {
	*rootCmdConfig
	trainingInput   string
	predictionInput string
	metadataInput   string
	output          string
	header          string
	trainingSet     setOptions
	predictionSet   setOptions
}

func runCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &runCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Grow a tree and use it right away",
		Long: `Grow a tree from a labeled set of data, print it along with its accuracy
on the training set, and use it to classify another set of data`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.fail(1, err)
			}
			metadata, err := config.loadMetadata(config.metadataInput)
			if err != nil {
				config.fail(2, err)
			}
			trainingSet, err := config.readRecords(config.trainingInput, &config.trainingSet, true)
			if err != nil {
				config.fail(3, err)
			}
			in := bonsai.New(config.Logger())
			root, accuracy, err := config.grow(in, trainingSet, metadata)
			if err != nil {
				config.fail(4, err)
			}
			fmt.Print(tree.Format(root, metadata))
			fmt.Printf("Training accuracy: %.2f%%\n", 100*accuracy)

			records, err := config.readRecords(config.predictionInput, &config.predictionSet, false)
			if err != nil {
				config.fail(5, err)
			}
			p, err := in.Predict(records)
			if err != nil {
				config.fail(6, err)
			}
			n, err := config.writePredictions(p, config.output, config.header, &config.predictionSet)
			if err != nil {
				config.fail(6, err)
			}
			config.Logf("Done: %d predictions written", n)
		},
	}
	cmd.Flags().StringVarP(&(config.trainingInput), "input", "i", "", "path to a labeled CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL to grow the tree from (required)")
	cmd.Flags().StringVarP(&(config.predictionInput), "predict", "p", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the data to classify (required)")
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with the names of the attributes and labels of the data (optional)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL connection URL to write the predictions to (defaults to STDOUT in CSV)")
	cmd.Flags().StringVar(&(config.header), "header", csv.DefaultPredictionHeader, "header line for CSV predictions, empty for none")
	cmd.Flags().StringVar(&(config.predictionSet.csvMode), "predict-csv-mode", "unlabeled", "how to read CSV lines of the data to classify: labeled, unlabeled (attributes followed by an ignored value) or attributes")
	cmd.Flags().BoolVar(&(config.trainingSet.csvHeader), "csv-header", false, "skip the first line of CSV inputs")
	cmd.Flags().IntVar(&(config.trainingSet.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	return cmd
}

func (rc *runCmdConfig) Validate() error {
	if rc.trainingInput == "" {
		return fmt.Errorf("required input flag was not set")
	}
	if rc.predictionInput == "" {
		return fmt.Errorf("required predict flag was not set")
	}
	rc.trainingSet.csvMode = "labeled"
	rc.predictionSet.csvHeader = rc.trainingSet.csvHeader
	rc.predictionSet.maxDBConns = rc.trainingSet.maxDBConns
	return rc.predictionSet.Validate()
}
