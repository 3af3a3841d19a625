package config

import (
	"os"
	"time"
)

// Network describes one Ethereum network the ethr DID resolver knows about.
type Network struct {
	Name     string
	RPCURL   string
	Registry string
}

// Server captures process-wide startup configuration. The issuer identity is
// part of this object so it can be injected explicitly instead of being read
// from ambient globals; tests construct it with disposable keys.
type Server struct {
	Addr        string
	MetricsAddr string

	// Issuer identity for the DID/VC engine.
	IssuerDID        string
	IssuerPrivateKey string // hex-encoded ECDSA private key material

	// ethr DID resolver configuration.
	Networks           []Network
	RegistryContract   string
	CredentialValidity time.Duration

	// External identity provider token-exchange endpoint.
	IdPUserInfoURL string

	// Backing services; empty values select in-memory fallbacks.
	DatabaseURL  string
	RedisAddr    string
	KafkaBrokers string

	// Verification cache TTL; must stay below CredentialValidity.
	VerifyCacheTTL time.Duration

	// Issuance rate limit, requests per second per client address.
	IssueRateLimit float64
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:               envOr("VCGATE_ADDR", ":8080"),
		MetricsAddr:        envOr("VCGATE_METRICS_ADDR", ""),
		IssuerDID:          os.Getenv("VCGATE_ISSUER_DID"),
		IssuerPrivateKey:   os.Getenv("VCGATE_ISSUER_PRIVATE_KEY"),
		RegistryContract:   envOr("VCGATE_DID_REGISTRY", "0xdca7ef03e98e0dc2b855be647c39abe984fcf21b"),
		IdPUserInfoURL:     os.Getenv("VCGATE_IDP_USERINFO_URL"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		KafkaBrokers:       os.Getenv("KAFKA_BROKERS"),
		CredentialValidity: durationOr("VCGATE_CREDENTIAL_VALIDITY", 24*time.Hour),
		VerifyCacheTTL:     durationOr("VCGATE_VERIFY_CACHE_TTL", 5*time.Minute),
		IssueRateLimit:     5,
	}

	cfg.Networks = []Network{
		{Name: "sepolia", RPCURL: os.Getenv("VCGATE_RPC_SEPOLIA"), Registry: cfg.RegistryContract},
		{Name: "mainnet", RPCURL: os.Getenv("VCGATE_RPC_MAINNET"), Registry: cfg.RegistryContract},
	}

	// The cache must never outlive the credential it fronts.
	if cfg.VerifyCacheTTL > cfg.CredentialValidity {
		cfg.VerifyCacheTTL = cfg.CredentialValidity
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
