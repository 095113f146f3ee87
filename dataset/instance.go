package dataset

import (
	"fmt"

	"github.com/pbanos/bramble/attribute"
)

/*
Instance represents an observation to learn from or a generated
observation.

Its Value method returns the integer code of the instance's value for
the nominal attribute passed as parameter and a boolean that is false
when the instance has no value for the attribute.
*/
type Instance interface {
	Value(attribute.Attribute) (int, bool)
}

type instance struct {
	values map[int]int
}

/*
NewInstance takes a map of attribute ids to nominal value codes and
returns an instance backed by it. Attributes absent from the map are
missing values.
*/
func NewInstance(values map[int]int) Instance {
	return &instance{values}
}

func (i *instance) Value(a attribute.Attribute) (int, bool) {
	v, ok := i.values[a.ID()]
	return v, ok
}

/*
Values returns the instance's attribute-id to value-code mapping.
Backends that need to encode whole instances, like redisdataset, use
it instead of asking for every attribute.
*/
func (i *instance) Values() map[int]int {
	return i.values
}

func (i *instance) String() string {
	return fmt.Sprintf("[%v]", i.values)
}
