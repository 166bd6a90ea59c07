package storage

import (
	"context"

	"github.com/redis/rueidis"
)

// RedisBlobStore keeps each collection blob under a namespaced redis key.
type RedisBlobStore struct {
	client    rueidis.Client
	namespace string
}

func NewRedisBlobStore(client rueidis.Client, namespace string) *RedisBlobStore {
	return &RedisBlobStore{
		client:    client,
		namespace: namespace,
	}
}

func (r *RedisBlobStore) key(name string) string {
	return r.namespace + ":" + name
}

func (r *RedisBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := r.client.B().Get().Key(r.key(key)).Build()
	result := r.client.Do(ctx, cmd)

	if err := result.Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}

	return result.AsBytes()
}

func (r *RedisBlobStore) Set(ctx context.Context, key string, value []byte) error {
	cmd := r.client.B().Set().Key(r.key(key)).Value(string(value)).Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisBlobStore) Remove(ctx context.Context, key string) error {
	cmd := r.client.B().Del().Key(r.key(key)).Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisBlobStore) Clear(ctx context.Context) error {
	keysCmd := r.client.B().Keys().Pattern(r.namespace + ":*").Build()
	keys, err := r.client.Do(ctx, keysCmd).AsStrSlice()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	delCmd := r.client.B().Del().Key(keys...).Build()
	return r.client.Do(ctx, delCmd).Error()
}
