package permcache

import (
	"container/list"
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/dmitrymomot/accesskit/pkg/permission"
	"github.com/dmitrymomot/accesskit/pkg/rbac"
)

const (
	// DefaultShards is the default number of lock shards.
	DefaultShards = 16

	// DefaultTTL is the default time-to-live for cache entries,
	// measured from insertion.
	DefaultTTL = 30 * time.Second
)

type cacheKey struct {
	tenant    permission.TenantID
	principal permission.PrincipalID
}

type memoryEntry struct {
	key        cacheKey
	perms      []permission.Permission
	insertedAt time.Time
}

type shard struct {
	mu    sync.Mutex
	items map[cacheKey]*list.Element
	lru   *list.List
}

// Memory is the reference in-memory cache for effective permission sets.
// Entries are spread over a power-of-two number of shards, each with its
// own mutex, map, and LRU list; no global lock exists. TTL is measured
// from insertion and checked on read; expired entries are treated as
// misses and removed opportunistically. When a shard exceeds its share
// of the capacity, the least recently used entry is evicted.
type Memory struct {
	shards      []*shard
	mask        uint64
	ttl         time.Duration
	perShardCap int
	capacity    int
}

var _ rbac.Cache = (*Memory)(nil)

// MemoryOption configures the memory cache.
type MemoryOption func(*Memory)

// WithTTL overrides the entry time-to-live. Zero disables expiry.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(m *Memory) {
		m.ttl = ttl
	}
}

// WithShards overrides the shard count. The value is rounded up to the
// next power of two; values below one fall back to one shard.
func WithShards(n int) MemoryOption {
	return func(m *Memory) {
		m.shards = newShards(nextPowerOfTwo(n))
		m.mask = uint64(len(m.shards) - 1)
		m.perShardCap = perShardCapacity(m.capacity, len(m.shards))
	}
}

// NewMemory creates a cache holding up to capacity entries. A capacity
// of zero disables caching entirely.
func NewMemory(capacity int, opts ...MemoryOption) *Memory {
	if capacity < 0 {
		capacity = 0
	}
	m := &Memory{
		shards:      newShards(DefaultShards),
		mask:        DefaultShards - 1,
		ttl:         DefaultTTL,
		perShardCap: perShardCapacity(capacity, DefaultShards),
		capacity:    capacity,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the cached set for the key, refreshing its LRU position.
func (m *Memory) Get(_ context.Context, tenant permission.TenantID, principal permission.PrincipalID) ([]permission.Permission, bool) {
	if m.capacity == 0 {
		return nil, false
	}

	key := cacheKey{tenant: tenant, principal: principal}
	s := m.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.items[key]
	if !ok {
		return nil, false
	}
	entry := elem.Value.(*memoryEntry)
	if m.expired(entry, time.Now()) {
		s.remove(elem)
		return nil, false
	}
	s.lru.MoveToFront(elem)

	// The engine treats cached sets as read-only; no defensive copy.
	return entry.perms, true
}

// Fill replaces the cached set for the key wholesale.
func (m *Memory) Fill(_ context.Context, tenant permission.TenantID, principal permission.PrincipalID, perms []permission.Permission) {
	if m.capacity == 0 {
		return
	}

	key := cacheKey{tenant: tenant, principal: principal}
	s := m.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if elem, ok := s.items[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.perms = perms
		entry.insertedAt = now
		s.lru.MoveToFront(elem)
		return
	}

	elem := s.lru.PushFront(&memoryEntry{key: key, perms: perms, insertedAt: now})
	s.items[key] = elem

	for s.lru.Len() > m.perShardCap {
		tail := s.lru.Back()
		if tail == nil {
			break
		}
		s.remove(tail)
	}
}

// InvalidatePrincipal drops the entry for one (tenant, principal) key.
func (m *Memory) InvalidatePrincipal(_ context.Context, tenant permission.TenantID, principal permission.PrincipalID) {
	key := cacheKey{tenant: tenant, principal: principal}
	s := m.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.items[key]; ok {
		s.remove(elem)
	}
}

// InvalidateRole drops every entry under the tenant. No reverse index
// from role to principal is maintained, so this is the smallest safe set.
func (m *Memory) InvalidateRole(ctx context.Context, tenant permission.TenantID, _ permission.RoleID) {
	m.InvalidateTenant(ctx, tenant)
}

// InvalidateTenant drops every entry under the tenant.
func (m *Memory) InvalidateTenant(_ context.Context, tenant permission.TenantID) {
	for _, s := range m.shards {
		s.mu.Lock()
		for key, elem := range s.items {
			if key.tenant == tenant {
				s.remove(elem)
			}
		}
		s.mu.Unlock()
	}
}

// Len returns the number of live entries across all shards.
func (m *Memory) Len() int {
	total := 0
	for _, s := range m.shards {
		s.mu.Lock()
		total += s.lru.Len()
		s.mu.Unlock()
	}
	return total
}

func (m *Memory) expired(entry *memoryEntry, now time.Time) bool {
	return m.ttl > 0 && now.Sub(entry.insertedAt) > m.ttl
}

func (m *Memory) shard(key cacheKey) *shard {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key.tenant))
	_, _ = h.Write([]byte{0x1f})
	_, _ = h.Write([]byte(key.principal))
	return m.shards[h.Sum64()&m.mask]
}

// Must be called with the shard lock held.
func (s *shard) remove(elem *list.Element) {
	s.lru.Remove(elem)
	entry := elem.Value.(*memoryEntry)
	delete(s.items, entry.key)
}

func newShards(n int) []*shard {
	shards := make([]*shard, n)
	for i := range shards {
		shards[i] = &shard{
			items: make(map[cacheKey]*list.Element),
			lru:   list.New(),
		}
	}
	return shards
}

func perShardCapacity(capacity, shards int) int {
	if capacity == 0 {
		return 0
	}
	perShard := capacity / shards
	if capacity%shards != 0 {
		perShard++
	}
	if perShard < 1 {
		perShard = 1
	}
	return perShard
}

func nextPowerOfTwo(n int) int {
	if n < 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
