/*
Package feature provides the metadata that gives human readable names to
the attributes and labels of records. Metadata is only used to render
reports and never affects how trees are grown or records classified.
*/
package feature

import "fmt"

/*
Metadata holds the names of the attributes of a dataset, in the same order
as the attribute values of its records, and the names of its labels.

Any attribute or label without a name is referred to as "attribute N" or
"class N".
*/
type Metadata struct {
	Attributes []string
	Labels     map[int]string
}

/*
AttributeName returns the name of the attribute with the given
index.
*/
func (md *Metadata) AttributeName(i int) string {
	if md != nil && i >= 0 && i < len(md.Attributes) && md.Attributes[i] != "" {
		return md.Attributes[i]
	}
	return fmt.Sprintf("attribute %d", i)
}

// LabelName returns the name of the given label.
func (md *Metadata) LabelName(l int) string {
	if md != nil {
		if name, ok := md.Labels[l]; ok && name != "" {
			return name
		}
	}
	return fmt.Sprintf("class %d", l)
}

/*
Check takes the arity of a dataset and returns an error if the metadata
names more attributes than the records have.
*/
func (md *Metadata) Check(arity int) error {
	if md != nil && len(md.Attributes) > arity {
		return fmt.Errorf("metadata names %d attributes but records have %d", len(md.Attributes), arity)
	}
	return nil
}
