package server

import "context"

// pingChecker wraps a ping function for health checks.
type pingChecker struct {
	name string
	ping func(ctx context.Context) error
}

func (p *pingChecker) Name() string                    { return p.name }
func (p *pingChecker) Check(ctx context.Context) error { return p.ping(ctx) }

// NewPingChecker creates a health checker named name that calls ping,
// for example (*cache.RedisCache).Ping.
func NewPingChecker(name string, ping func(ctx context.Context) error) HealthChecker {
	return &pingChecker{name: name, ping: ping}
}
