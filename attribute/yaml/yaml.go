/*
Package yaml provides methods to parse attribute.Attribute
specifications, also known as metadata, from YAML documents.
*/
package yaml

import (
	"fmt"
	"os"
	"sort"

	"github.com/pbanos/bramble/attribute"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadAttributes takes a slice of bytes with an attribute specification in
YML and returns a slice of attributes parsed from it or an error.

The YML is expected to be an object containing an attributes property.
The value for this should be an object with a property for each
attribute with its name and either a string value of 'continuous' for
continuous attributes or a list of valid values for nominal attributes.

Attribute ids are assigned by attribute name in lexicographical order,
so that the same metadata document always yields the same ids.
*/
func ReadAttributes(md []byte) ([]attribute.Attribute, error) {
	metadata := struct {
		Attributes map[string]interface{}
	}{}
	err := yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml attributes: %v", err)
	}
	if metadata.Attributes == nil {
		return nil, fmt.Errorf("metadata file has no attribute information")
	}
	names := make([]string, 0, len(metadata.Attributes))
	for an := range metadata.Attributes {
		names = append(names, an)
	}
	sort.Strings(names)
	attributes := make([]attribute.Attribute, 0, len(names))
	for id, an := range names {
		switch values := metadata.Attributes[an].(type) {
		case string:
			attributes = append(attributes, attribute.NewContinuous(id, an))
		case []interface{}:
			stringVs := make([]string, 0, len(values))
			for _, v := range values {
				stringVs = append(stringVs, fmt.Sprintf("%v", v))
			}
			attributes = append(attributes, attribute.NewNominal(id, an, stringVs))
		case []string:
			attributes = append(attributes, attribute.NewNominal(id, an, values))
		default:
			return nil, fmt.Errorf("invalid attribute declaration of type %T", values)
		}
	}
	return attributes, nil
}

/*
ReadAttributesFromFile takes a filepath string, reads its contents and
uses ReadAttributes to parse it and return a slice of parsed attributes
or an error. If the file indicated by the filepath cannot be opened for
reading an error will be returned.
*/
func ReadAttributesFromFile(filepath string) ([]attribute.Attribute, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading attributes yml file %s: %v", filepath, err)
	}
	attributes, err := ReadAttributes(md)
	if err != nil {
		err = fmt.Errorf("parsing attributes yml file %s: %v", filepath, err)
	}
	return attributes, err
}
