package bramble

import (
	"github.com/pbanos/bramble/attribute"
	"github.com/pbanos/bramble/dataset"
)

// binaryNominals builds binary nominal attributes with ids matching
// their position
func binaryNominals(names ...string) []*attribute.NominalAttribute {
	attrs := make([]*attribute.NominalAttribute, len(names))
	for i, name := range names {
		attrs[i] = attribute.NewNominal(i, name, []string{"no", "yes"})
	}
	return attrs
}

func binaryAttributes(names ...string) []attribute.Attribute {
	nominals := binaryNominals(names...)
	attrs := make([]attribute.Attribute, len(nominals))
	for i, a := range nominals {
		attrs[i] = a
	}
	return attrs
}

// datasetOf builds an in-memory dataset over the given attributes,
// with one instance per row; a negative code marks a missing value
func datasetOf(attrs []attribute.Attribute, rows [][]int) dataset.Dataset {
	instances := make([]dataset.Instance, 0, len(rows))
	for _, row := range rows {
		values := make(map[int]int, len(row))
		for id, code := range row {
			if code >= 0 {
				values[id] = code
			}
		}
		instances = append(instances, dataset.NewInstance(values))
	}
	return dataset.New(attrs, instances)
}

// correlatedDataset builds a dataset over attributes x, y and z where
// y mirrors x exactly and z is independent of both
func correlatedDataset() ([]attribute.Attribute, dataset.Dataset) {
	attrs := binaryAttributes("x", "y", "z")
	rows := make([][]int, 0, 40)
	for i := 0; i < 40; i++ {
		x := 0
		if i >= 20 {
			x = 1
		}
		rows = append(rows, []int{x, x, i % 2})
	}
	return attrs, datasetOf(attrs, rows)
}
