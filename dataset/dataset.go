/*
Package dataset defines the boundary contract between data sources and
the bramble learning algorithms: an ordered attribute schema and a
collection of instances with nominal values coded as small integers.
*/
package dataset

import (
	"context"
	"fmt"

	"github.com/pbanos/bramble/attribute"
)

/*
Dataset represents a collection of instances sharing an attribute
schema.

Its Attributes method returns the schema: the ordered slice of
attributes instances can have values for, with every attribute's ID
being its index in the slice.

Its Instances method returns the instances it contains.

Its Count method returns the number of instances it contains.

All methods take a context.Context as first parameter that
implementations backed by external storage may use to allow timeouts
and cancellations.
*/
type Dataset interface {
	Attributes(context.Context) ([]attribute.Attribute, error)
	Instances(context.Context) ([]Instance, error)
	Count(context.Context) (int, error)
}

type memoryDataset struct {
	attributes []attribute.Attribute
	instances  []Instance
}

/*
New takes a slice of attributes and a slice of instances and returns a
dataset backed by the process memory.
*/
func New(attributes []attribute.Attribute, instances []Instance) Dataset {
	return &memoryDataset{attributes, instances}
}

func (md *memoryDataset) Attributes(ctx context.Context) ([]attribute.Attribute, error) {
	return md.attributes, nil
}

func (md *memoryDataset) Instances(ctx context.Context) ([]Instance, error) {
	return md.instances, nil
}

func (md *memoryDataset) Count(ctx context.Context) (int, error) {
	return len(md.instances), nil
}

/*
Nominals takes a slice of attributes and returns the nominal ones among
them, keeping their order.
*/
func Nominals(attributes []attribute.Attribute) []*attribute.NominalAttribute {
	var nominal []*attribute.NominalAttribute
	for _, a := range attributes {
		if na, ok := a.(*attribute.NominalAttribute); ok {
			nominal = append(nominal, na)
		}
	}
	return nominal
}

/*
AttributeByName takes a slice of attributes and a name and returns the
attribute with the given name or an error if no attribute in the slice
has it.
*/
func AttributeByName(attributes []attribute.Attribute, name string) (attribute.Attribute, error) {
	for _, a := range attributes {
		if a.Name() == name {
			return a, nil
		}
	}
	return nil, fmt.Errorf("attribute %s is not defined", name)
}
