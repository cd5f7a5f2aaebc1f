package main

import (
	"fmt"

	"github.com/pbanos/bonsai/tree"
	"github.com/spf13/cobra"
)

type treeCmdConfig struct {
	*rootCmdConfig
	treeInput     string
	metadataInput string
}

func treeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &treeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show a tree",
		Long:  `Show the structure of a tree, naming attributes and labels with the given metadata`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.fail(1, err)
			}
			metadata, err := config.loadMetadata(config.metadataInput)
			if err != nil {
				config.fail(2, err)
			}
			root, err := config.loadTree(config.treeInput)
			if err != nil {
				config.fail(3, err)
			}
			stats := tree.Measure(root)
			config.Logf("Tree with %d nodes, %d leaves and depth %d", stats.Nodes, stats.Leaves, stats.Depth)
			fmt.Print(tree.Format(root, metadata))
		},
	}
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to show will be read and parsed as JSON, or a redis://HOST:PORT/DB/NAME location (required)")
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with the names of the attributes and labels used on the tree (optional)")
	return cmd
}

func (tcc *treeCmdConfig) Validate() error {
	if tcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}
