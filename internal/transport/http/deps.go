package http

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yurtapp/account-api/internal/infrastructure/dynamo"
	"github.com/yurtapp/account-api/internal/infrastructure/geoip"
	jwtinfra "github.com/yurtapp/account-api/internal/infrastructure/jwt"
	"github.com/yurtapp/account-api/internal/infrastructure/redis"
	s3infra "github.com/yurtapp/account-api/internal/infrastructure/s3"
	"github.com/yurtapp/account-api/internal/infrastructure/smtp"
	"github.com/yurtapp/account-api/internal/infrastructure/sns"
	"github.com/yurtapp/account-api/internal/metrics"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    *dynamo.UserRepo
	DeviceRepo  *dynamo.DeviceRepo
	CardRepo    *dynamo.CardRepo
	AddressRepo *dynamo.AddressRepo
	Store       *redis.Store
	S3Store     *s3infra.Store
	Mailer      smtp.Mailer
	SMSSender   sns.SMSSender
	JWTProvider *jwtinfra.Provider
	GeoIP       geoip.Resolver
	Metrics     *metrics.Collector
	Gatherer    prometheus.Gatherer
}
