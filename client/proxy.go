package client

type proxyKind uint8

const (
	proxyNone proxyKind = iota
	proxyHTTP
	proxyHTTPS
	proxySocks4
	proxySocks5
)

// Proxy describes an intermediary to tunnel through. The zero value
// means a direct connection. Immutable once built.
type Proxy struct {
	kind proxyKind
	addr string

	user     string
	password string
}

func NoProxy() Proxy { return Proxy{} }

// HTTPProxy tunnels through an HTTP proxy at addr ("host:port") using
// the CONNECT method.
func HTTPProxy(addr string) Proxy {
	return Proxy{kind: proxyHTTP, addr: addr}
}

// HTTPProxyAuth is HTTPProxy with basic proxy authorization.
func HTTPProxyAuth(addr, user, password string) Proxy {
	return Proxy{kind: proxyHTTP, addr: addr, user: user, password: password}
}

// HTTPSProxy tunnels through an HTTPS proxy at addr using the CONNECT
// method.
func HTTPSProxy(addr string) Proxy {
	return Proxy{kind: proxyHTTPS, addr: addr}
}

func HTTPSProxyAuth(addr, user, password string) Proxy {
	return Proxy{kind: proxyHTTPS, addr: addr, user: user, password: password}
}

// Socks4Proxy tunnels through a SOCKS4 proxy at addr.
func Socks4Proxy(addr string) Proxy {
	return Proxy{kind: proxySocks4, addr: addr}
}

// Socks4ProxyUser is Socks4Proxy with a user id.
func Socks4ProxyUser(addr, user string) Proxy {
	return Proxy{kind: proxySocks4, addr: addr, user: user}
}

// Socks5Proxy tunnels through a SOCKS5 proxy at addr.
func Socks5Proxy(addr string) Proxy {
	return Proxy{kind: proxySocks5, addr: addr}
}

// Socks5ProxyAuth is Socks5Proxy with username/password authentication.
func Socks5ProxyAuth(addr, user, password string) Proxy {
	return Proxy{kind: proxySocks5, addr: addr, user: user, password: password}
}
