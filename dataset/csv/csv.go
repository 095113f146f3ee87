/*
Package csv provides reading and writing of datasets as CSV streams.

The header or first row of the CSV content is expected to consist of
the names of the dataset's attributes. The rest of the rows should
consist of valid value names for the attributes and/or the '?' string
to indicate a missing value.
*/
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/bramble/attribute"
	"github.com/pbanos/bramble/dataset"
)

const missingValueMark = "?"

/*
Read takes an io.Reader for a CSV stream and a slice of attributes and
returns a dataset with the instances parsed from the reader or an
error. Only nominal attributes can be read: bramble instances hold
nominal value codes.
*/
func Read(reader io.Reader, attributes []attribute.Attribute) (dataset.Dataset, error) {
	instances := []dataset.Instance{}
	err := ReadByInstance(reader, attributes, func(_ int, i dataset.Instance) (bool, error) {
		instances = append(instances, i)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return dataset.New(attributes, instances), nil
}

/*
ReadByInstance takes an io.Reader for a CSV stream, a slice of
attributes and a lambda function on an integer and a dataset.Instance
that returns a boolean value. It parses the instances from the reader
and for each it calls the lambda function with the instance and its
index as parameters. If the lambda function returns true, it will
continue processing the next instance, otherwise it will stop. An
error is returned if something goes wrong when reading the stream or
parsing an instance.
*/
func ReadByInstance(reader io.Reader, attributes []attribute.Attribute, lambda func(int, dataset.Instance) (bool, error)) error {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %v", err)
	}
	columns, err := parseAttributesFromCSVHeader(header, attributes)
	if err != nil {
		return err
	}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading body: %v", err)
		}
		instance, err := parseInstanceFromCSVRow(row, columns)
		if err != nil {
			return fmt.Errorf("parsing line %d: %v", l, err)
		}
		ok, err := lambda(l-2, instance)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadFromFilePath takes a filepath string and a slice of attributes,
opens the file the filepath points to (os.Stdin when the filepath is
"") and uses Read to return a dataset read from it or an error.
*/
func ReadFromFilePath(filepath string, attributes []attribute.Attribute) (dataset.Dataset, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading dataset: %v", err)
		}
		defer f.Close()
	}
	ds, err := Read(f, attributes)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return ds, err
}

/*
Write takes a context, an io.Writer and a dataset and dumps the dataset
to the writer in CSV format, with a header row of attribute names,
values by their names and missing values as '?'. It returns an error if
something went wrong when writing or codifying the instances.
*/
func Write(ctx context.Context, writer io.Writer, ds dataset.Dataset) error {
	attributes, err := ds.Attributes(ctx)
	if err != nil {
		return fmt.Errorf("writing CSV dataset: %v", err)
	}
	nominal, err := nominalColumns(attributes)
	if err != nil {
		return fmt.Errorf("writing CSV dataset: %v", err)
	}
	w := csv.NewWriter(writer)
	record := make([]string, len(nominal))
	for i, a := range nominal {
		record[i] = a.Name()
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("writing CSV header: %v", err)
	}
	instances, err := ds.Instances(ctx)
	if err != nil {
		return fmt.Errorf("writing CSV dataset: %v", err)
	}
	for _, instance := range instances {
		for i, a := range nominal {
			code, ok := instance.Value(a)
			if !ok {
				record[i] = missingValueMark
				continue
			}
			record[i], err = a.ValueName(code)
			if err != nil {
				return fmt.Errorf("writing CSV dataset: %v", err)
			}
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing CSV dataset: %v", err)
		}
	}
	w.Flush()
	return w.Error()
}

func parseAttributesFromCSVHeader(header []string, attributes []attribute.Attribute) ([]*attribute.NominalAttribute, error) {
	byName := make(map[string]attribute.Attribute, len(attributes))
	for _, a := range attributes {
		byName[a.Name()] = a
	}
	columns := make([]*attribute.NominalAttribute, 0, len(header))
	for _, name := range header {
		a, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("CSV header column %q does not match any attribute", name)
		}
		na, ok := a.(*attribute.NominalAttribute)
		if !ok {
			return nil, fmt.Errorf("attribute %s is not nominal: bramble datasets hold nominal values only", name)
		}
		columns = append(columns, na)
	}
	return columns, nil
}

func parseInstanceFromCSVRow(row []string, columns []*attribute.NominalAttribute) (dataset.Instance, error) {
	if len(row) != len(columns) {
		return nil, fmt.Errorf("row has %d values, expected %d", len(row), len(columns))
	}
	values := make(map[int]int, len(row))
	for i, v := range row {
		if v == missingValueMark {
			continue
		}
		code, ok := columns[i].ValueCode(v)
		if !ok {
			return nil, fmt.Errorf("attribute %s got unknown value %s", columns[i].Name(), v)
		}
		values[columns[i].ID()] = code
	}
	return dataset.NewInstance(values), nil
}

func nominalColumns(attributes []attribute.Attribute) ([]*attribute.NominalAttribute, error) {
	nominal := make([]*attribute.NominalAttribute, 0, len(attributes))
	for _, a := range attributes {
		na, ok := a.(*attribute.NominalAttribute)
		if !ok {
			return nil, fmt.Errorf("attribute %s is not nominal: bramble datasets hold nominal values only", a.Name())
		}
		nominal = append(nominal, na)
	}
	return nominal, nil
}
