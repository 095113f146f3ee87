package sqldataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/bramble/attribute"
	"github.com/pbanos/bramble/dataset"
)

/*
Adapter is an interface providing the methods needed to implement a
Dataset with a SQL database backend. Rows are exchanged as slices of
*int with one entry per column, nil encoding a missing value.
*/
type Adapter interface {
	CreateSampleTable(ctx context.Context, columns []string) error
	AddSamples(ctx context.Context, columns []string, rows [][]*int) (int, error)
	IterateOnSamples(ctx context.Context, columns []string, lambda func(int, []*int) (bool, error)) error
	CountSamples(ctx context.Context) (int, error)
	Close() error
}

/*
Dataset is a dataset.Dataset to which instances can be written.
*/
type Dataset interface {
	dataset.Dataset
	Write(context.Context, []dataset.Instance) (int, error)
}

type sqlDataset struct {
	db         Adapter
	attributes []*attribute.NominalAttribute
	columns    []string
	count      *int
}

/*
Open takes an Adapter to a db backend and a slice of attributes and
returns a Dataset backed by the given adapter or an error. This
function expects the samples table to already exist on the database.
*/
func Open(ctx context.Context, dbAdapter Adapter, attributes []attribute.Attribute) (Dataset, error) {
	return newDataset(dbAdapter, attributes)
}

/*
Create takes an Adapter to a db backend and a slice of attributes and
returns a Dataset backed by the given adapter or an error. This
function will ensure the samples table is created on the database.
*/
func Create(ctx context.Context, dbAdapter Adapter, attributes []attribute.Attribute) (Dataset, error) {
	ds, err := newDataset(dbAdapter, attributes)
	if err != nil {
		return nil, err
	}
	err = dbAdapter.CreateSampleTable(ctx, ds.columns)
	if err != nil {
		return nil, fmt.Errorf("creating samples table: %v", err)
	}
	return ds, nil
}

func newDataset(dbAdapter Adapter, attributes []attribute.Attribute) (*sqlDataset, error) {
	nominal := make([]*attribute.NominalAttribute, 0, len(attributes))
	columns := make([]string, 0, len(attributes))
	for _, a := range attributes {
		na, ok := a.(*attribute.NominalAttribute)
		if !ok {
			return nil, fmt.Errorf("attribute %s is not nominal: bramble datasets hold nominal values only", a.Name())
		}
		column, err := columnName(a.Name())
		if err != nil {
			return nil, err
		}
		nominal = append(nominal, na)
		columns = append(columns, column)
	}
	return &sqlDataset{db: dbAdapter, attributes: nominal, columns: columns}, nil
}

func (ss *sqlDataset) Attributes(ctx context.Context) ([]attribute.Attribute, error) {
	attributes := make([]attribute.Attribute, len(ss.attributes))
	for i, a := range ss.attributes {
		attributes[i] = a
	}
	return attributes, nil
}

func (ss *sqlDataset) Count(ctx context.Context) (int, error) {
	if ss.count != nil {
		return *ss.count, nil
	}
	result, err := ss.db.CountSamples(ctx)
	if err == nil {
		ss.count = &result
	}
	return result, err
}

func (ss *sqlDataset) Instances(ctx context.Context) ([]dataset.Instance, error) {
	var instances []dataset.Instance
	err := ss.db.IterateOnSamples(ctx, ss.columns, func(_ int, row []*int) (bool, error) {
		values := make(map[int]int, len(row))
		for i, v := range row {
			if v != nil {
				values[ss.attributes[i].ID()] = *v
			}
		}
		instances = append(instances, dataset.NewInstance(values))
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing samples: %v", err)
	}
	return instances, nil
}

func (ss *sqlDataset) Write(ctx context.Context, instances []dataset.Instance) (int, error) {
	rows := make([][]*int, 0, len(instances))
	for _, instance := range instances {
		row := make([]*int, len(ss.attributes))
		for i, a := range ss.attributes {
			if v, ok := instance.Value(a); ok {
				v := v
				row[i] = &v
			}
		}
		rows = append(rows, row)
	}
	n, err := ss.db.AddSamples(ctx, ss.columns, rows)
	if err == nil {
		ss.count = nil
	}
	return n, err
}

func columnName(attributeName string) (string, error) {
	if attributeName == "id" {
		return "", fmt.Errorf(`'%s' is reserved and cannot be used as attribute name`, attributeName)
	}
	if strings.ContainsAny(attributeName, `"`) {
		return "", fmt.Errorf(`attribute name '%s' contains invalid character '"'`, attributeName)
	}
	return attributeName, nil
}
