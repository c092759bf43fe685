// Package permcache provides cache implementations for the rbac engine's
// effective permission sets.
//
// Memory is the reference process-local cache: entries keyed by
// (tenant, principal) are spread over a power-of-two number of shards,
// each with its own mutex, map, and LRU list. Entries expire a fixed TTL
// after insertion and are evicted least-recently-used when a shard
// exceeds its share of the capacity. All mutation happens under a single
// shard-local lock; invalidation never holds more than one shard at a time.
//
//	cache := permcache.NewMemory(1024,
//	    permcache.WithTTL(time.Minute),
//	    permcache.WithShards(32),
//	)
//	engine := rbac.New(store, rbac.WithCache(cache))
//
// Redis is a shared cache for multi-replica deployments, where an
// invalidation issued on one replica must be visible to all. It degrades
// to a pass-through on transport failures rather than failing requests.
//
//	client, err := permcache.ConnectRedis(ctx, cfg)
//	cache := permcache.NewRedis(client, permcache.WithRedisTTL(time.Minute))
//
// Both implementations satisfy rbac.Cache. Role-level invalidation is
// intentionally coarse (it drops the whole tenant) because no reverse
// index from role to principal is maintained.
package permcache
