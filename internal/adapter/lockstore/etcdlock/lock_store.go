package etcdlock

import (
	"context"
	"fmt"
	"math"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// KeyPrefix namespaces seat locks inside a shared etcd cluster.
const KeyPrefix = "/seatlock/"

// LockStore keeps each seat lock as a key attached to its own lease, so
// etcd drops the key when the hold TTL runs out.
type LockStore struct {
	client *clientv3.Client
}

func NewLockStore(client *clientv3.Client) *LockStore {
	return &LockStore{client: client}
}

// leaseSeconds rounds ttl up to whole seconds, the lease granularity.
func leaseSeconds(ttl time.Duration) int64 {
	secs := int64(math.Ceil(ttl.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

func (s *LockStore) Acquire(ctx context.Context, key, owner string, ttl time.Duration) (bool, error) {
	lease, err := s.client.Grant(ctx, leaseSeconds(ttl))
	if err != nil {
		return false, fmt.Errorf("etcd grant lease for %s: %w", key, err)
	}

	k := KeyPrefix + key
	resp, err := s.client.Txn(ctx).
		If(clientv3.Compare(clientv3.CreateRevision(k), "=", 0)).
		Then(clientv3.OpPut(k, owner, clientv3.WithLease(lease.ID))).
		Commit()
	if err != nil {
		_, _ = s.client.Revoke(context.WithoutCancel(ctx), lease.ID)
		return false, fmt.Errorf("etcd acquire %s: %w", key, err)
	}

	if !resp.Succeeded {
		_, _ = s.client.Revoke(ctx, lease.ID)
		return false, nil
	}

	return true, nil
}

// Release deletes key only while it still belongs to owner. The lease is
// left to expire on its own.
func (s *LockStore) Release(ctx context.Context, key, owner string) error {
	k := KeyPrefix + key
	_, err := s.client.Txn(ctx).
		If(clientv3.Compare(clientv3.Value(k), "=", owner)).
		Then(clientv3.OpDelete(k)).
		Commit()
	if err != nil {
		return fmt.Errorf("etcd release %s: %w", key, err)
	}
	return nil
}

func (s *LockStore) Owner(ctx context.Context, key string) (string, bool, error) {
	resp, err := s.client.Get(ctx, KeyPrefix+key)
	if err != nil {
		return "", false, fmt.Errorf("etcd get %s: %w", key, err)
	}
	if len(resp.Kvs) == 0 {
		return "", false, nil
	}
	return string(resp.Kvs[0].Value), true, nil
}
