package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pbanos/bramble"
	"github.com/pbanos/bramble/attribute"
	"github.com/pbanos/bramble/attribute/yaml"
	"github.com/pbanos/bramble/dataset"
	"github.com/pbanos/bramble/network"
	"github.com/spf13/cobra"
)

type learnCmdConfig struct {
	*datasetCmdConfig
	algorithm        string
	classAttribute   string
	maxParents       int
	candidateSetSize int
	maxRounds        int
}

const (
	algorithmHillClimbing    = "hillclimbing"
	algorithmSparseCandidate = "sparse"
	algorithmTAN             = "tan"
)

func learnCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &learnCmdConfig{datasetCmdConfig: &datasetCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "learn",
		Short: "Learn a bayesian network from a dataset",
		Long:  `Learn the structure and parameters of a bayesian network from a dataset.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx := context.Background()
			bn, ds, err := learnNetwork(ctx, config)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			score, err := bramble.Score(ctx, bn, ds)
			if err != nil {
				fmt.Fprintf(os.Stderr, "scoring the learned network: %v\n", err)
				os.Exit(3)
			}
			fmt.Print(bn)
			fmt.Printf("BIC score: %f\n", score)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL, MongoDB or redis URL with data to learn from (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the different attributes available on the input data (required)")
	cmd.PersistentFlags().StringVarP(&(config.algorithm), "algorithm", "a", algorithmHillClimbing, "structure-learning algorithm to run: hillclimbing, sparse or tan")
	cmd.PersistentFlags().StringVarP(&(config.classAttribute), "class-attribute", "c", "", "name of the class attribute (required by the tan algorithm)")
	cmd.PersistentFlags().IntVar(&(config.maxParents), "max-parents", 0, "cap on the number of parents a node can acquire during search (defaults to 0: no cap)")
	cmd.PersistentFlags().IntVar(&(config.candidateSetSize), "candidates", 0, "number of candidate parents per node for the sparse algorithm (defaults to 0: all)")
	cmd.PersistentFlags().IntVar(&(config.maxRounds), "max-rounds", 0, "cap on restrict/maximize rounds for the sparse algorithm (defaults to 0: bramble's default)")
	cmd.PersistentFlags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	return cmd
}

func (lcc *learnCmdConfig) Validate() error {
	if err := lcc.datasetCmdConfig.Validate(); err != nil {
		return err
	}
	switch lcc.algorithm {
	case algorithmHillClimbing, algorithmSparseCandidate:
	case algorithmTAN:
		if lcc.classAttribute == "" {
			return fmt.Errorf("required class-attribute flag was not set for the tan algorithm")
		}
	default:
		return fmt.Errorf("unknown algorithm '%s': the following are valid: %s, %s, %s", lcc.algorithm, algorithmHillClimbing, algorithmSparseCandidate, algorithmTAN)
	}
	return nil
}

/*
learnNetwork reads the attributes and training dataset the config
points to and learns a network with the config's algorithm, returning
the network together with the training dataset.
*/
func learnNetwork(ctx context.Context, config *learnCmdConfig) (*network.Network, dataset.Dataset, error) {
	config.Logf("Reading attributes from metadata at %s...", config.metadataInput)
	attributes, err := yaml.ReadAttributesFromFile(config.metadataInput)
	if err != nil {
		return nil, nil, err
	}
	ds, err := config.trainingDataset(ctx, attributes)
	if err != nil {
		return nil, nil, err
	}
	count, err := ds.Count(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("counting training instances: %v", err)
	}
	config.Logf("Learning network from a dataset with %d instances and %d attributes with %s...", count, len(attributes), config.algorithm)
	learnConfig := &bramble.Config{
		MaxParents:       config.maxParents,
		CandidateSetSize: config.candidateSetSize,
		MaxRounds:        config.maxRounds,
	}
	if config.verbose {
		learnConfig.Observer = func(op bramble.Operator, parent, child int, score float64) {
			config.Logf("Accepted %v %d->%d (score %f)", op, parent, child, score)
		}
	}
	var bn *network.Network
	switch config.algorithm {
	case algorithmSparseCandidate:
		bn, err = bramble.LearnSparseCandidate(ctx, ds, learnConfig)
	case algorithmTAN:
		var class attribute.Attribute
		class, err = dataset.AttributeByName(attributes, config.classAttribute)
		if err == nil {
			bn, err = bramble.LearnTAN(ctx, ds, class)
		}
	default:
		bn, err = bramble.LearnHillClimbing(ctx, ds, learnConfig)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("learning the network: %v", err)
	}
	config.Logf("Done")
	return bn, ds, nil
}
