/*
Package yaml provides methods to parse feature.Metadata, the names of
attributes and labels, from YAML documents.
*/
package yaml

import (
	"fmt"
	"os"

	"github.com/pbanos/bonsai/feature"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadMetadata takes a slice of bytes with metadata in YAML and returns the
feature.Metadata parsed from it or an error.

The YAML is expected to be an object with an attributes property holding the
list of attribute names in record order and an optional labels property
mapping integer labels to their names:

	attributes: [sepal_length, sepal_width]
	labels:
	  0: setosa
	  1: versicolor

At least one attribute name must be given.
*/
func ReadMetadata(md []byte) (*feature.Metadata, error) {
	metadata := struct {
		Attributes []string
		Labels     map[int]string
	}{}
	err := yaml.UnmarshalStrict(md, &metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml metadata: %v", err)
	}
	if len(metadata.Attributes) == 0 {
		return nil, fmt.Errorf("metadata has no attribute information")
	}
	for i, name := range metadata.Attributes {
		if name == "" {
			return nil, fmt.Errorf("metadata attribute %d has no name", i)
		}
	}
	return &feature.Metadata{Attributes: metadata.Attributes, Labels: metadata.Labels}, nil
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and uses
ReadMetadata to parse it and return the metadata or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadMetadataFromFile(filepath string) (*feature.Metadata, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata yml file %s: %v", filepath, err)
	}
	metadata, err := ReadMetadata(md)
	if err != nil {
		err = fmt.Errorf("parsing metadata yml file %s: %v", filepath, err)
	}
	return metadata, err
}
