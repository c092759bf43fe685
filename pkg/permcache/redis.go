package permcache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/accesskit/pkg/permission"
	"github.com/dmitrymomot/accesskit/pkg/rbac"
)

// DefaultKeyPrefix namespaces cache keys in a shared Redis.
const DefaultKeyPrefix = "accesskit:perm:"

// Redis caches effective permission sets in Redis, for deployments that
// want invalidation to reach every replica at once. Sets are stored as
// JSON arrays under "<prefix><tenant>:<principal>" with a server-side
// TTL; Redis handles eviction, so there is no LRU bookkeeping here.
// Transport failures degrade to cache misses and are logged, never
// surfaced as authorization errors.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	log    *slog.Logger
}

var _ rbac.Cache = (*Redis)(nil)

// RedisOption configures the Redis cache.
type RedisOption func(*Redis)

// WithRedisTTL overrides the entry time-to-live.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		r.ttl = ttl
	}
}

// WithKeyPrefix overrides the key namespace.
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// WithRedisLogger sets a logger for degraded-mode reporting.
func WithRedisLogger(log *slog.Logger) RedisOption {
	return func(r *Redis) {
		r.log = log
	}
}

// NewRedis creates a Redis-backed cache around an established client.
func NewRedis(client *redis.Client, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		ttl:    DefaultTTL,
		prefix: DefaultKeyPrefix,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) Get(ctx context.Context, tenant permission.TenantID, principal permission.PrincipalID) ([]permission.Permission, bool) {
	data, err := r.client.Get(ctx, r.key(tenant, principal)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.WarnContext(ctx, "permission cache read failed", "error", err)
		}
		return nil, false
	}

	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		r.log.WarnContext(ctx, "permission cache entry corrupt", "error", err)
		return nil, false
	}

	perms := make([]permission.Permission, len(raw))
	for i, s := range raw {
		perms[i] = permission.Permission(s)
	}
	return perms, true
}

func (r *Redis) Fill(ctx context.Context, tenant permission.TenantID, principal permission.PrincipalID, perms []permission.Permission) {
	raw := make([]string, len(perms))
	for i, p := range perms {
		raw[i] = string(p)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		r.log.WarnContext(ctx, "permission cache encode failed", "error", err)
		return
	}

	if err := r.client.Set(ctx, r.key(tenant, principal), data, r.ttl).Err(); err != nil {
		r.log.WarnContext(ctx, "permission cache write failed", "error", err)
	}
}

func (r *Redis) InvalidatePrincipal(ctx context.Context, tenant permission.TenantID, principal permission.PrincipalID) {
	if err := r.client.Del(ctx, r.key(tenant, principal)).Err(); err != nil {
		r.log.WarnContext(ctx, "permission cache invalidation failed", "error", err)
	}
}

// InvalidateRole drops every entry under the tenant; see Memory for the
// reverse-index rationale.
func (r *Redis) InvalidateRole(ctx context.Context, tenant permission.TenantID, _ permission.RoleID) {
	r.InvalidateTenant(ctx, tenant)
}

func (r *Redis) InvalidateTenant(ctx context.Context, tenant permission.TenantID) {
	iter := r.client.Scan(ctx, 0, r.prefix+string(tenant)+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			r.log.WarnContext(ctx, "permission cache invalidation failed", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		r.log.WarnContext(ctx, "permission cache scan failed", "error", err)
	}
}

func (r *Redis) key(tenant permission.TenantID, principal permission.PrincipalID) string {
	return r.prefix + string(tenant) + ":" + string(principal)
}
