package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pbanos/bramble"
	"github.com/spf13/cobra"
)

type generateCmdConfig struct {
	*learnCmdConfig
	output string
	count  int
	seed   int64
}

func generateCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &generateCmdConfig{learnCmdConfig: &learnCmdConfig{datasetCmdConfig: &datasetCmdConfig{rootCmdConfig: rootConfig}}}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate synthetic data from a learned bayesian network",
		Long:  `Learn a bayesian network from a dataset and sample new instances from its joint distribution.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx := context.Background()
			bn, _, err := learnNetwork(ctx, config.learnCmdConfig)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			config.Logf("Generating %d instances with seed %d...", config.count, config.seed)
			generated, err := bramble.Generate(ctx, bn, config.count, config.seed)
			if err != nil {
				fmt.Fprintf(os.Stderr, "generating data: %v\n", err)
				os.Exit(3)
			}
			err = writeDataset(ctx, generated, config.output, rootConfig)
			if err != nil {
				fmt.Fprintf(os.Stderr, "writing generated data: %v\n", err)
				os.Exit(4)
			}
			config.Logf("Done")
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL, MongoDB or redis URL with data to learn from (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the different attributes available on the input data (required)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path or URL the generated dataset will be written to, with the same forms as the input (defaults to STDOUT as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.algorithm), "algorithm", "a", algorithmHillClimbing, "structure-learning algorithm to run: hillclimbing, sparse or tan")
	cmd.PersistentFlags().StringVarP(&(config.classAttribute), "class-attribute", "c", "", "name of the class attribute (required by the tan algorithm)")
	cmd.PersistentFlags().IntVarP(&(config.count), "count", "n", 100, "number of instances to generate")
	cmd.PersistentFlags().Int64VarP(&(config.seed), "seed", "s", 0, "seed for the random source used to sample instances")
	cmd.PersistentFlags().IntVar(&(config.maxParents), "max-parents", 0, "cap on the number of parents a node can acquire during search (defaults to 0: no cap)")
	cmd.PersistentFlags().IntVar(&(config.candidateSetSize), "candidates", 0, "number of candidate parents per node for the sparse algorithm (defaults to 0: all)")
	cmd.PersistentFlags().IntVar(&(config.maxRounds), "max-rounds", 0, "cap on restrict/maximize rounds for the sparse algorithm (defaults to 0: bramble's default)")
	cmd.PersistentFlags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	return cmd
}

func (gcc *generateCmdConfig) Validate() error {
	if err := gcc.learnCmdConfig.Validate(); err != nil {
		return err
	}
	if gcc.count < 0 {
		return fmt.Errorf("count flag cannot be negative")
	}
	return nil
}
