package main

import (
	"fmt"

	"github.com/pbanos/bonsai"
	"github.com/pbanos/bonsai/feature"
	"github.com/pbanos/bonsai/feature/yaml"
	"github.com/pbanos/bonsai/record"
	"github.com/pbanos/bonsai/tree"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*rootCmdConfig
	setOptions
	dataInput     string
	metadataInput string
	output        string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a binary decision tree from a set of labeled data and write it in JSON format`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.fail(1, err)
			}
			metadata, err := config.loadMetadata(config.metadataInput)
			if err != nil {
				config.fail(2, err)
			}
			trainingSet, err := config.readRecords(config.dataInput, &config.setOptions, true)
			if err != nil {
				config.fail(3, err)
			}
			in := bonsai.New(config.Logger())
			root, _, err := config.grow(in, trainingSet, metadata)
			if err != nil {
				config.fail(4, err)
			}
			err = config.saveTree(config.Context(), config.output, root)
			if err != nil {
				config.fail(5, fmt.Errorf("writing tree: %v", err))
			}
			config.Logf("Done")
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to use to grow the tree (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with the names of the attributes and labels of the data (optional)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written in JSON format, or a redis://HOST:PORT/DB/NAME location (defaults to STDOUT)")
	config.setOptions.addFlags(cmd, "labeled")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	return gcc.setOptions.Validate()
}

// grow checks the metadata against the given records, trains the
// inducer with them and returns the resulting tree and its accuracy
// on them, logging both.
func (rcc *rootCmdConfig) grow(in *bonsai.Inducer, trainingSet []record.Record, metadata *feature.Metadata) (tree.Node, float64, error) {
	if len(trainingSet) == 0 {
		return nil, 0, fmt.Errorf("growing the tree: %w", record.ErrInvalidInput)
	}
	err := metadata.Check(trainingSet[0].Arity())
	if err != nil {
		return nil, 0, err
	}
	rcc.Logf("Growing tree from a set with %d records and %d attributes...", len(trainingSet), trainingSet[0].Arity())
	err = in.Train(trainingSet)
	if err != nil {
		return nil, 0, fmt.Errorf("growing the tree: %v", err)
	}
	root, err := in.Tree()
	if err != nil {
		return nil, 0, err
	}
	stats := tree.Measure(root)
	rcc.Infof("Grown tree with %d nodes, %d leaves and depth %d", stats.Nodes, stats.Leaves, stats.Depth)
	rcc.Logf("Tree:\n%s", tree.Format(root, metadata))
	accuracy, err := in.Evaluate(trainingSet)
	if err != nil {
		return nil, 0, fmt.Errorf("evaluating the tree on the training set: %v", err)
	}
	rcc.Infof("Training accuracy: %.2f%%", 100*accuracy)
	return root, accuracy, nil
}

// loadMetadata reads the metadata at the given path, returning nil
// metadata if the path is empty.
func (rcc *rootCmdConfig) loadMetadata(path string) (*feature.Metadata, error) {
	if path == "" {
		return nil, nil
	}
	rcc.Logf("Reading metadata from %s...", path)
	return yaml.ReadMetadataFromFile(path)
}
