/*
Package mongodataset provides an implementation of dataset.Dataset
that uses a MongoDB database as backend.

Instances are stored as documents in a samples collection, with one
integer field per attribute holding the nominal value code and missing
values as absent fields.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/bramble/attribute"
	"github.com/pbanos/bramble/dataset"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

/*
Dataset is a dataset.Dataset to which instances can be written and from
which instances can be sequentially read.
*/
type Dataset interface {
	dataset.Dataset
	Write(context.Context, []dataset.Instance) (int, error)
	Read(context.Context) (<-chan dataset.Instance, <-chan error)
}

type mongodataset struct {
	session    *mgo.Session
	attributes []*attribute.NominalAttribute
}

const (
	samplesCollectionName = "samples"
)

/*
Open takes a MongoDB database session and a slice of attributes and
returns a Dataset that works on the samples collection of the default
database for that session, or an error if the attribute names cannot be
used as document fields or the collection cannot be indexed.
*/
func Open(ctx context.Context, session *mgo.Session, attributes []attribute.Attribute) (Dataset, error) {
	nominal := make([]*attribute.NominalAttribute, 0, len(attributes))
	for _, a := range attributes {
		na, ok := a.(*attribute.NominalAttribute)
		if !ok {
			return nil, fmt.Errorf("attribute %s is not nominal: bramble datasets hold nominal values only", a.Name())
		}
		nominal = append(nominal, na)
	}
	mds := &mongodataset{session, nominal}
	err := mds.ensureIndexes()
	if err != nil {
		return nil, err
	}
	return mds, nil
}

func (mds *mongodataset) Attributes(ctx context.Context) ([]attribute.Attribute, error) {
	attributes := make([]attribute.Attribute, len(mds.attributes))
	for i, a := range mds.attributes {
		attributes[i] = a
	}
	return attributes, nil
}

func (mds *mongodataset) Count(context.Context) (int, error) {
	return mds.samplesCollection().Count()
}

func (mds *mongodataset) Instances(ctx context.Context) ([]dataset.Instance, error) {
	var instances []dataset.Instance
	count, err := mds.Count(ctx)
	if err == nil {
		instances = make([]dataset.Instance, 0, count)
	}
	instanceChan, errs := mds.Read(ctx)
	for instance := range instanceChan {
		instances = append(instances, instance)
	}
	err = <-errs
	return instances, err
}

func (mds *mongodataset) Write(ctx context.Context, instances []dataset.Instance) (int, error) {
	docs := make([]interface{}, 0, len(instances))
	for _, instance := range instances {
		doc := make(bson.M)
		for _, a := range mds.attributes {
			if v, ok := instance.Value(a); ok {
				doc[a.Name()] = v
			}
		}
		docs = append(docs, doc)
	}
	err := mds.samplesCollection().Insert(docs...)
	if err != nil {
		return 0, err
	}
	return len(instances), nil
}

func (mds *mongodataset) Read(ctx context.Context) (<-chan dataset.Instance, <-chan error) {
	instances := make(chan dataset.Instance)
	errs := make(chan error, 1)
	go func() {
		var doc bson.M
		var err error
		iter := mds.samplesCollection().Find(nil).Iter()
		defer iter.Close()
		for iter.Next(&doc) {
			instance, derr := mds.decode(doc)
			if derr != nil {
				err = derr
				break
			}
			select {
			case <-ctx.Done():
				err = ctx.Err()
			case instances <- instance:
			}
			if err != nil {
				break
			}
		}
		if err == nil {
			err = iter.Err()
		}
		if err != nil {
			errs <- err
		}
		close(errs)
		close(instances)
	}()
	return instances, errs
}

func (mds *mongodataset) decode(doc bson.M) (dataset.Instance, error) {
	values := make(map[int]int, len(mds.attributes))
	for _, a := range mds.attributes {
		v, ok := doc[a.Name()]
		if !ok {
			continue
		}
		code, ok := v.(int)
		if !ok {
			return nil, fmt.Errorf("decoding sample: field %s holds a %T instead of an int value code", a.Name(), v)
		}
		values[a.ID()] = code
	}
	return dataset.NewInstance(values), nil
}

func (mds *mongodataset) ensureIndexes() error {
	for _, a := range mds.attributes {
		aName := a.Name()
		if aName == "_id" {
			return fmt.Errorf("invalid attribute name %q: reserved collection field", "_id")
		}
		if strings.ContainsAny(aName, ".$") {
			return fmt.Errorf("invalid attribute name %q: contains reserved characters %q or %q", aName, ".", "$")
		}
		index := mgo.Index{
			Key:        []string{aName},
			Background: true,
			Sparse:     true,
		}
		err := mds.samplesCollection().EnsureIndex(index)
		if err != nil {
			return err
		}
	}
	return nil
}

func (mds *mongodataset) samplesCollection() *mgo.Collection {
	return mds.session.DB("").C(samplesCollectionName)
}
