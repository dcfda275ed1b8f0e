package geo

import (
	"context"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Location is the resolved country of an IP address
type Location struct {
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
}

// Resolver looks up the country of a public IP address. Implementations
// return an error for transport failures and unsuccessful lookups.
type Resolver interface {
	Lookup(ctx context.Context, ip string) (*Location, error)
}

// Cache stores resolved locations by IP
type Cache interface {
	Get(ctx context.Context, ip string) (*Location, bool)
	Set(ctx context.Context, ip string, loc *Location, ttl time.Duration)
}

// Service decides whether a client address may use the API
type Service struct {
	resolver Resolver
	cache    Cache
	ttl      time.Duration
	allowed  map[string]struct{}
	logger   *zap.Logger
}

// NewService creates a geolocation service. An empty allow-list defaults to KR.
func NewService(resolver Resolver, cache Cache, ttl time.Duration, allowedCountries []string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	if len(allowedCountries) == 0 {
		allowedCountries = []string{"KR"}
	}
	allowed := make(map[string]struct{}, len(allowedCountries))
	for _, cc := range allowedCountries {
		allowed[strings.ToUpper(strings.TrimSpace(cc))] = struct{}{}
	}
	return &Service{
		resolver: resolver,
		cache:    cache,
		ttl:      ttl,
		allowed:  allowed,
		logger:   logger,
	}
}

// IsAllowed reports whether requests from ip are accepted. Internal
// addresses skip the lookup; lookup failures let the request through.
func (s *Service) IsAllowed(ctx context.Context, ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		s.logger.Warn("unparseable client address, allowing", zap.String("ip", ip))
		return true
	}
	if isInternal(addr) {
		return true
	}

	loc, err := s.locate(ctx, addr.String())
	if err != nil {
		s.logger.Warn("geolocation lookup failed, allowing", zap.String("ip", ip), zap.Error(err))
		return true
	}
	_, ok := s.allowed[strings.ToUpper(loc.CountryCode)]
	if !ok {
		s.logger.Info("request from disallowed country",
			zap.String("ip", ip),
			zap.String("country_code", loc.CountryCode),
		)
	}
	return ok
}

// CountryInfo describes the country of ip as "Country (CC)", or "Unknown"
func (s *Service) CountryInfo(ctx context.Context, ip string) string {
	addr, err := netip.ParseAddr(ip)
	if err != nil || isInternal(addr) {
		return "Unknown"
	}
	loc, err := s.locate(ctx, addr.String())
	if err != nil || loc.CountryCode == "" {
		return "Unknown"
	}
	return fmt.Sprintf("%s (%s)", loc.Country, loc.CountryCode)
}

func (s *Service) locate(ctx context.Context, ip string) (*Location, error) {
	if s.cache != nil {
		if loc, ok := s.cache.Get(ctx, ip); ok {
			return loc, nil
		}
	}
	loc, err := s.resolver.Lookup(ctx, ip)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, ip, loc, s.ttl)
	}
	return loc, nil
}

func isInternal(addr netip.Addr) bool {
	addr = addr.Unmap()
	return addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast() || addr.IsUnspecified()
}
