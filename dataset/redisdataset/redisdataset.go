/*
Package redisdataset provides an implementation of dataset.Dataset
that uses a redis database as backend.

Instances are encoded through an InstanceEncodeDecoder and kept on a
redis list under a configurable key prefix, so several datasets can
share a database.
*/
package redisdataset

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pbanos/bramble/attribute"
	"github.com/pbanos/bramble/dataset"
	"gopkg.in/redis.v5"
)

/*
InstanceEncodeDecoder is an interface for objects that allow encoding
instances into slices of bytes and decoding them back to instances.
*/
type InstanceEncodeDecoder interface {

	//Encode receives a dataset.Instance and returns a slice of
	//bytes with the instance encoded or an error if the encoding
	//could not be performed for some reason.
	Encode(dataset.Instance) ([]byte, error)

	//Decode receives a slice of bytes and returns a
	//dataset.Instance decoded from the slice of bytes or an error
	//if the decoding could not be performed for some reason.
	Decode([]byte) (dataset.Instance, error)
}

/*
Dataset is a dataset.Dataset to which instances can be written.
*/
type Dataset interface {
	dataset.Dataset
	Write(context.Context, []dataset.Instance) (int, error)
}

type redisDataset struct {
	rc         *redis.Client
	prefix     string
	attributes []attribute.Attribute
	iencdec    InstanceEncodeDecoder
}

/*
New takes a redis client, a key prefix, a slice of attributes and an
InstanceEncodeDecoder and returns a Dataset backed by the redis DB. A
nil InstanceEncodeDecoder defaults to JSON encoding of the instances'
attribute-id to value-code mappings.
*/
func New(rc *redis.Client, prefix string, attributes []attribute.Attribute, iencdec InstanceEncodeDecoder) Dataset {
	if iencdec == nil {
		iencdec = &jsonEncodeDecoder{}
	}
	return &redisDataset{rc, prefix, attributes, iencdec}
}

func (rs *redisDataset) Attributes(ctx context.Context) ([]attribute.Attribute, error) {
	return rs.attributes, nil
}

func (rs *redisDataset) Count(ctx context.Context) (int, error) {
	count, err := rs.rc.LLen(rs.samplesKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("counting samples in redis: %v", err)
	}
	return int(count), nil
}

func (rs *redisDataset) Instances(ctx context.Context) ([]dataset.Instance, error) {
	data, err := rs.rc.LRange(rs.samplesKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("retrieving samples from redis: %v", err)
	}
	instances := make([]dataset.Instance, 0, len(data))
	for i, d := range data {
		instance, err := rs.iencdec.Decode([]byte(d))
		if err != nil {
			return nil, fmt.Errorf("retrieving sample %d: decoding %q: %v", i, d, err)
		}
		instances = append(instances, instance)
	}
	return instances, nil
}

func (rs *redisDataset) Write(ctx context.Context, instances []dataset.Instance) (int, error) {
	for i, instance := range instances {
		data, err := rs.iencdec.Encode(instance)
		if err != nil {
			return i, fmt.Errorf("storing sample: encoding instance: %v", err)
		}
		_, err = rs.rc.RPush(rs.samplesKey(), data).Result()
		if err != nil {
			return i, fmt.Errorf("storing sample in redis: %v", err)
		}
		if ctx.Err() != nil {
			return i + 1, ctx.Err()
		}
	}
	return len(instances), nil
}

func (rs *redisDataset) samplesKey() string {
	return fmt.Sprintf("%s:samples", rs.prefix)
}

type jsonEncodeDecoder struct{}

func (jed *jsonEncodeDecoder) Encode(instance dataset.Instance) ([]byte, error) {
	values, ok := valueMap(instance)
	if !ok {
		return nil, fmt.Errorf("instance of type %T does not expose its value map", instance)
	}
	return json.Marshal(values)
}

func (jed *jsonEncodeDecoder) Decode(data []byte) (dataset.Instance, error) {
	values := make(map[int]int)
	err := json.Unmarshal(data, &values)
	if err != nil {
		return nil, err
	}
	return dataset.NewInstance(values), nil
}

// valueMap recovers the attribute-id to value-code mapping of an
// instance through the optional Values method in-memory instances
// implement.
func valueMap(instance dataset.Instance) (map[int]int, bool) {
	v, ok := instance.(interface{ Values() map[int]int })
	if !ok {
		return nil, false
	}
	return v.Values(), true
}
