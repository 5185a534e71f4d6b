package minfraud

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	pkcs12 "software.sslmate.com/src/go-pkcs12"
)

// newHTTPClient builds the pooled keep-alive HTTP client used for every
// request of a Client.
func newHTTPClient(cfg Config) (*http.Client, error) {
	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}
	if cfg.P12Path != "" {
		cert, err := loadClientCertificate(cfg.P12Path, cfg.P12Password)
		if err != nil {
			return nil, err
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	dialer := &net.Dialer{
		Timeout:   cfg.OpenTimeout,
		KeepAlive: 30 * time.Second,
	}
	writeTimeout := cfg.WriteTimeout

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			return &writeDeadlineConn{Conn: conn, timeout: writeTimeout}, nil
		},
		TLSClientConfig:       tlsConfig,
		TLSHandshakeTimeout:   cfg.OpenTimeout,
		ResponseHeaderTimeout: cfg.ReadTimeout,
		IdleConnTimeout:       cfg.IdleTimeout,
		MaxIdleConns:          cfg.PoolSize,
		MaxIdleConnsPerHost:   cfg.PoolSize,
		MaxConnsPerHost:       cfg.PoolSize,
	}

	return &http.Client{Transport: transport}, nil
}

// writeDeadlineConn bounds every write with a fresh deadline.
type writeDeadlineConn struct {
	net.Conn
	timeout time.Duration
}

func (c *writeDeadlineConn) Write(p []byte) (int, error) {
	if c.timeout > 0 {
		if err := c.Conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Write(p)
}

// loadClientCertificate reads a P12/PFX bundle into a TLS client
// certificate carrying its CA chain.
func loadClientCertificate(p12Path, password string) (tls.Certificate, error) {
	p12Path = expandHome(p12Path)
	p12Data, err := os.ReadFile(p12Path)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("minfraud: read client certificate %s: %w", p12Path, err)
	}

	key, leaf, caCerts, err := pkcs12.DecodeChain(p12Data, password)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("minfraud: decode client certificate: %w", err)
	}

	chain := [][]byte{leaf.Raw}
	for _, ca := range caCerts {
		chain = append(chain, ca.Raw)
	}
	return tls.Certificate{Certificate: chain, PrivateKey: key, Leaf: leaf}, nil
}

func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}
