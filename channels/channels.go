// Package channels maps the host a request arrived on to a storefront
// channel. Resolver.ChannelID fits storefront.Config.GetChannelID.
package channels

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	libpack_cache "github.com/lukaszraczylo/go-storefront-graphql/cache"
	libpack_logger "github.com/lukaszraczylo/go-storefront-graphql/logging"
)

type hostKey struct{}

// WithHost attaches the request host to ctx for a later ChannelID call.
func WithHost(ctx context.Context, host string) context.Context {
	return context.WithValue(ctx, hostKey{}, host)
}

func HostFromContext(ctx context.Context) string {
	host, _ := ctx.Value(hostKey{}).(string)
	return host
}

// LookupFunc finds the channel serving host. An empty result with a nil
// error means the host is unknown.
type LookupFunc func(ctx context.Context, host string) (string, error)

type Config struct {
	Static map[string]string
	Lookup LookupFunc
	Logger *libpack_logger.Logger
	TTL    time.Duration
}

type Resolver struct {
	static map[string]string
	lookup LookupFunc
	cache  *libpack_cache.Cache[string]
	Logger *libpack_logger.Logger
	ttl    time.Duration
}

func New(cfg Config) *Resolver {
	r := &Resolver{
		static: make(map[string]string, len(cfg.Static)),
		lookup: cfg.Lookup,
		Logger: cfg.Logger,
		ttl:    cfg.TTL,
	}
	for host, channelID := range cfg.Static {
		r.static[normalizeHost(host)] = channelID
	}
	if r.ttl <= 0 {
		r.ttl = 5 * time.Minute
	}
	if r.Logger == nil {
		r.Logger = libpack_logger.New()
	}
	r.cache = libpack_cache.New[string](r.ttl)
	return r
}

// ChannelID resolves the channel for the host stored in ctx. Without a host,
// or when nothing maps it, defaultChannelID is returned. Lookup results are
// cached for the configured TTL; lookup errors are returned as is.
func (r *Resolver) ChannelID(ctx context.Context, defaultChannelID string) (string, error) {
	host := normalizeHost(HostFromContext(ctx))
	if host == "" {
		return defaultChannelID, nil
	}
	if channelID, ok := r.static[host]; ok {
		return channelID, nil
	}
	if channelID, ok := r.cache.Get(host); ok {
		return channelID, nil
	}
	if r.lookup == nil {
		return defaultChannelID, nil
	}

	channelID, err := r.lookup(ctx, host)
	if err != nil {
		return "", fmt.Errorf("channel lookup for %s failed: %w", host, err)
	}
	if channelID == "" {
		r.Logger.Debug(&libpack_logger.LogMessage{
			Message: "No channel for host, using default",
			Pairs:   map[string]interface{}{"host": host, "channel_id": defaultChannelID},
		})
		return defaultChannelID, nil
	}
	r.cache.Set(host, channelID, r.ttl)
	return channelID, nil
}

// Forget drops a cached lookup so the next call asks Lookup again.
func (r *Resolver) Forget(host string) {
	r.cache.Delete(normalizeHost(host))
}

// Close stops the cache cleanup goroutine.
func (r *Resolver) Close() {
	r.cache.Stop()
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.TrimSuffix(host, ".")
}
