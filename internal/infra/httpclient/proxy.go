package httpclient

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// Environment variables holding proxy credentials.
const (
	EnvProxyUser     = "NUTSTOOLS_PROXY_USER"
	EnvProxyPassword = "NUTSTOOLS_PROXY_PASSWORD"
)

// ProxyFunc matches http.Transport.Proxy.
type ProxyFunc func(*http.Request) (*url.URL, error)

// ProxyAuth decorates the transport proxy selection with credentials.
type ProxyAuth interface {
	Name() string
	Wrap(base ProxyFunc) ProxyFunc
}

type noProxyAuth struct{ name string }

func (n noProxyAuth) Name() string                  { return n.name }
func (n noProxyAuth) Wrap(base ProxyFunc) ProxyFunc { return base }

type basicProxyAuth struct {
	user     string
	password string
}

func (basicProxyAuth) Name() string { return "basic" }

// Wrap attaches the credentials to the chosen proxy URL; net/http turns
// them into a Proxy-Authorization header, also for CONNECT tunnels.
func (b basicProxyAuth) Wrap(base ProxyFunc) ProxyFunc {
	return func(req *http.Request) (*url.URL, error) {
		u, err := base(req)
		if err != nil || u == nil || u.User != nil {
			return u, err
		}
		cp := *u
		cp.User = url.UserPassword(b.user, b.password)
		return &cp, nil
	}
}

// SelectProxyAuth picks the proxy authentication strategy once, from the
// environment. A configured proxy without usable credentials is not an
// error: the client proceeds unauthenticated and a warning is logged.
func SelectProxyAuth(getenv func(string) string, log *slog.Logger) ProxyAuth {
	proxy := firstEnv(getenv, "HTTPS_PROXY", "https_proxy", "HTTP_PROXY", "http_proxy")
	if proxy == "" {
		return noProxyAuth{name: "none"}
	}

	if user := getenv(EnvProxyUser); user != "" {
		return basicProxyAuth{user: user, password: getenv(EnvProxyPassword)}
	}

	if u, err := url.Parse(proxy); err == nil && u.User != nil {
		return noProxyAuth{name: "proxy-url"}
	}

	if log != nil {
		log.Warn("proxy.auth_unavailable",
			"proxy", redact(proxy),
			"hint", "set "+EnvProxyUser+" and "+EnvProxyPassword+" if the proxy requires authentication",
		)
	}
	return noProxyAuth{name: "none"}
}

func firstEnv(getenv func(string) string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}
