package main

import (
	"fmt"

	"github.com/pbanos/bonsai"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	setOptions
	treeInput string
	dataInput string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a labeled test data set`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.fail(1, err)
			}
			root, err := config.loadTree(config.treeInput)
			if err != nil {
				config.fail(2, err)
			}
			testingSet, err := config.readRecords(config.dataInput, &config.setOptions, true)
			if err != nil {
				config.fail(3, err)
			}
			config.Logf("Testing tree against test set with %d records...", len(testingSet))
			in := bonsai.NewWithTree(root, config.Logger())
			successRate, err := in.Evaluate(testingSet)
			if err != nil {
				config.fail(4, fmt.Errorf("testing tree: %v", err))
			}
			config.Logf("Done")
			fmt.Printf("%.4f success rate (%d records)\n", successRate, len(testingSet))
		},
	}
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to test will be read and parsed as JSON, or a redis://HOST:PORT/DB/NAME location (required)")
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to test the tree (defaults to STDIN, interpreted as CSV)")
	config.setOptions.addFlags(cmd, "labeled")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return tcc.setOptions.Validate()
}
