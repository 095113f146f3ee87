package attribute

import "fmt"

/*
Attribute represents a property that instances in a dataset can have a
value for. Every attribute has a stable non-negative integer ID: the
index of its column in the dataset it belongs to.
*/
type Attribute interface {
	ID() int
	Name() string
	Valid(interface{}) (bool, error)
}

/*
NominalAttribute represents a property that can only take a value among
a finite ordered set. Each value name is mapped to a small non-negative
integer code: its index in the value slice.
*/
type NominalAttribute struct {
	id     int
	name   string
	values []string
	codes  map[string]int
}

/*
ContinuousAttribute represents a property that can take any numeric
value. Continuous attributes can belong to a dataset but cannot take
part in a bayesian network, whose nodes are all nominal.
*/
type ContinuousAttribute struct {
	id   int
	name string
}

/*
NewNominal takes an id, a name string and a slice of value name strings
and returns a nominal attribute with the given identity whose value
codes are the indices of the given values.
*/
func NewNominal(id int, name string, values []string) *NominalAttribute {
	codes := make(map[string]int, len(values))
	for i, v := range values {
		codes[v] = i
	}
	return &NominalAttribute{id, name, values, codes}
}

/*
NewContinuous takes an id and a name string and returns a continuous
attribute with the given identity.
*/
func NewContinuous(id int, name string) *ContinuousAttribute {
	return &ContinuousAttribute{id, name}
}

// ID returns the integer id of the attribute
func (na *NominalAttribute) ID() int {
	return na.id
}

/*
Name returns a string with the name of the attribute
*/
func (na *NominalAttribute) Name() string {
	return na.name
}

/*
Valid receives an interface value and returns a boolean and an error.
When the value parameter is one of the value names of the attribute, the
method returns true and nil. Otherwise it returns false and an error
describing the reason.
*/
func (na *NominalAttribute) Valid(value interface{}) (bool, error) {
	if value == nil {
		return true, nil
	}
	vs, ok := value.(string)
	if !ok {
		return false, fmt.Errorf("nominal attribute %s expects string value, got %T value", na.name, value)
	}
	if _, ok = na.codes[vs]; !ok {
		return false, fmt.Errorf("nominal attribute %s got unknown value %s", na.name, vs)
	}
	return true, nil
}

/*
Values returns a string slice with the value names of the attribute, in
code order.
*/
func (na *NominalAttribute) Values() []string {
	return na.values
}

/*
Cardinality returns the number of values in the domain of the attribute
*/
func (na *NominalAttribute) Cardinality() int {
	return len(na.values)
}

/*
ValueCode takes a value name and returns its integer code and a boolean
that is false when the name does not belong to the domain of the
attribute.
*/
func (na *NominalAttribute) ValueCode(name string) (int, bool) {
	code, ok := na.codes[name]
	return code, ok
}

/*
ValueName takes an integer code and returns the name of the value it
encodes or an error if the code is out of the domain of the attribute.
*/
func (na *NominalAttribute) ValueName(code int) (string, error) {
	if code < 0 || code >= len(na.values) {
		return "", fmt.Errorf("nominal attribute %s has no value with code %d", na.name, code)
	}
	return na.values[code], nil
}

func (na *NominalAttribute) String() string {
	return na.name
}

// ID returns the integer id of the attribute
func (ca *ContinuousAttribute) ID() int {
	return ca.id
}

/*
Name returns a string with the name of the attribute
*/
func (ca *ContinuousAttribute) Name() string {
	return ca.name
}

/*
Valid receives an interface value and returns a boolean and an error.
When the value parameter is a float64 it returns true and nil, otherwise
it returns false and an error describing the reason.
*/
func (ca *ContinuousAttribute) Valid(value interface{}) (bool, error) {
	if value == nil {
		return true, nil
	}
	if _, ok := value.(float64); !ok {
		return false, fmt.Errorf("continuous attribute %s expects float64 value, got %T value", ca.name, value)
	}
	return true, nil
}

func (ca *ContinuousAttribute) String() string {
	return ca.name
}
