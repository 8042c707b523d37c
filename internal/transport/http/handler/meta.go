package handler

import (
	"log/slog"
	"net/http"

	"github.com/yurtapp/account-api/internal/domain"
	"github.com/yurtapp/account-api/internal/infrastructure/geoip"
	"github.com/yurtapp/account-api/internal/pkg/clientip"
	"github.com/yurtapp/account-api/internal/pkg/devicemeta"
)

// deviceMeta assembles what we can observe about the calling device: its IP,
// a display name from the User-Agent, and a best-effort city lookup.
func deviceMeta(r *http.Request, resolver geoip.Resolver) domain.DeviceMetadata {
	ip := clientip.FromRequest(r)
	meta := domain.DeviceMetadata{
		IP:   ip,
		Name: devicemeta.Name(r.UserAgent()),
	}
	if resolver != nil {
		city, err := resolver.CityForIP(r.Context(), ip)
		if err != nil {
			slog.Debug("geoip lookup failed", "ip", ip, "err", err)
		}
		meta.City = city
	}
	return meta
}
