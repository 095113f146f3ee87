package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pbanos/bramble/attribute"
	"github.com/pbanos/bramble/dataset"
	"github.com/pbanos/bramble/dataset/csv"
	"github.com/pbanos/bramble/dataset/mongodataset"
	"github.com/pbanos/bramble/dataset/redisdataset"
	"github.com/pbanos/bramble/dataset/sqldataset"
	"github.com/pbanos/bramble/dataset/sqldataset/pgadapter"
	"github.com/pbanos/bramble/dataset/sqldataset/sqlite3adapter"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/redis.v5"
)

/*
datasetCmdConfig gathers the flags every command that reads a training
dataset shares: the data input, the attribute metadata input and the
DB connection cap for database-backed inputs.

The data input is routed on its form: a PostgreSQL connection URL, a
MongoDB connection URL, a redis:// URL with a key prefix fragment, a
path to an SQLite3 .db file, a path to a CSV file or, when empty,
STDIN interpreted as CSV.
*/
type datasetCmdConfig struct {
	*rootCmdConfig
	dataInput     string
	metadataInput string
	maxDBConns    int
}

func (dcc *datasetCmdConfig) Validate() error {
	if dcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	return nil
}

func (dcc *datasetCmdConfig) trainingDataset(ctx context.Context, attributes []attribute.Attribute) (dataset.Dataset, error) {
	switch {
	case strings.HasPrefix(dcc.dataInput, "postgresql://"):
		dcc.Logf("Creating PostgreSQL adapter for url %s to read training dataset...", dcc.dataInput)
		adapter, err := pgadapter.New(dcc.dataInput, dcc.maxDBConns)
		if err != nil {
			return nil, err
		}
		return sqldataset.Open(ctx, adapter, attributes)
	case strings.HasSuffix(dcc.dataInput, ".db"):
		dcc.Logf("Creating SQLite3 adapter for file %s to read training dataset...", dcc.dataInput)
		adapter, err := sqlite3adapter.New(dcc.dataInput, dcc.maxDBConns)
		if err != nil {
			return nil, err
		}
		return sqldataset.Open(ctx, adapter, attributes)
	case strings.HasPrefix(dcc.dataInput, "mongodb://"):
		dcc.Logf("Dialing %s to read training dataset...", dcc.dataInput)
		session, err := mgo.Dial(dcc.dataInput)
		if err != nil {
			return nil, fmt.Errorf("connecting to %s: %v", dcc.dataInput, err)
		}
		return mongodataset.Open(ctx, session, attributes)
	case strings.HasPrefix(dcc.dataInput, "redis://"):
		rc, prefix, err := redisClient(dcc.dataInput)
		if err != nil {
			return nil, err
		}
		dcc.Logf("Reading training dataset from redis at %s...", dcc.dataInput)
		return redisdataset.New(rc, prefix, attributes, nil), nil
	case dcc.dataInput == "":
		dcc.Logf("Reading training dataset from STDIN...")
		return csv.Read(os.Stdin, attributes)
	}
	dcc.Logf("Opening %s to read training dataset...", dcc.dataInput)
	return csv.ReadFromFilePath(dcc.dataInput, attributes)
}

/*
redisClient parses a redis://host:port/prefix URL into a client and the
key prefix datasets on that database are stored under.
*/
func redisClient(url string) (*redis.Client, string, error) {
	addr := strings.TrimPrefix(url, "redis://")
	prefix := "bramble"
	if i := strings.IndexByte(addr, '/'); i >= 0 {
		if p := addr[i+1:]; p != "" {
			prefix = p
		}
		addr = addr[:i]
	}
	if addr == "" {
		return nil, "", fmt.Errorf("invalid redis url %q: no address", url)
	}
	return redis.NewClient(&redis.Options{Addr: addr}), prefix, nil
}

/*
writeDataset routes a generated dataset to an output destination with
the same conventions as training inputs: PostgreSQL, MongoDB or redis
URLs and .db file paths select the corresponding backend (creating the
samples table where needed), anything else is written as CSV to the
given file path or to STDOUT when the path is empty.
*/
func writeDataset(ctx context.Context, ds dataset.Dataset, output string, config *rootCmdConfig) error {
	attributes, err := ds.Attributes(ctx)
	if err != nil {
		return err
	}
	instances, err := ds.Instances(ctx)
	if err != nil {
		return err
	}
	switch {
	case strings.HasPrefix(output, "postgresql://"):
		adapter, err := pgadapter.New(output, 0)
		if err != nil {
			return err
		}
		out, err := sqldataset.Create(ctx, adapter, attributes)
		if err != nil {
			return err
		}
		_, err = out.Write(ctx, instances)
		return err
	case strings.HasSuffix(output, ".db"):
		adapter, err := sqlite3adapter.New(output, 0)
		if err != nil {
			return err
		}
		out, err := sqldataset.Create(ctx, adapter, attributes)
		if err != nil {
			return err
		}
		_, err = out.Write(ctx, instances)
		return err
	case strings.HasPrefix(output, "mongodb://"):
		session, err := mgo.Dial(output)
		if err != nil {
			return fmt.Errorf("connecting to %s: %v", output, err)
		}
		out, err := mongodataset.Open(ctx, session, attributes)
		if err != nil {
			return err
		}
		_, err = out.Write(ctx, instances)
		return err
	case strings.HasPrefix(output, "redis://"):
		rc, prefix, err := redisClient(output)
		if err != nil {
			return err
		}
		_, err = redisdataset.New(rc, prefix, attributes, nil).Write(ctx, instances)
		return err
	case output == "":
		return csv.Write(ctx, os.Stdout, ds)
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating output file %s: %v", output, err)
	}
	defer f.Close()
	return csv.Write(ctx, f, ds)
}
