package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/grandcat/zeroconf"
)

const (
	mdnsService  = "_clipz._tcp"
	mdnsDomain   = "local."
	authPrefix   = "auth:"
	authDeadline = 10 * time.Second
	tokenTTL     = 24 * time.Hour
)

// TCPGateway serves the same line protocol to remote front-ends over
// TCP, announced on mDNS so they can discover the port. When a token
// secret is configured, connections must authenticate before the first
// command.
type TCPGateway struct {
	gateway *Gateway
	secret  string
}

func NewTCPGateway(gateway *Gateway, secret string) *TCPGateway {
	return &TCPGateway{gateway: gateway, secret: secret}
}

// Listen accepts connections on addr until ctx is cancelled. It logs a
// fresh access token at startup when auth is enabled.
func (t *TCPGateway) Listen(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	logger.Info("protocol gateway listening", "addr", ln.Addr().String())

	if server, err := zeroconf.Register("clipz", mdnsService, mdnsDomain, port, []string{"v=1"}, nil); err != nil {
		logger.Warn("mDNS registration failed", "error", err)
	} else {
		defer server.Shutdown()
	}

	if t.secret != "" {
		token, err := newAccessToken(t.secret, tokenTTL)
		if err != nil {
			return fmt.Errorf("failed to mint access token: %w", err)
		}
		logger.Info("gateway requires authentication", "token", token)
	}

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept failed: %w", err)
		}
		go t.handleConn(ctx, conn)
	}
}

func (t *TCPGateway) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	r := bufio.NewReader(conn)
	if t.secret != "" {
		if err := t.authenticate(conn, r); err != nil {
			logger.Warn("connection rejected", "remote", conn.RemoteAddr().String(), "error", err)
			return
		}
	}

	if err := t.gateway.Serve(ctx, r, conn); err != nil {
		logger.Debug("connection closed", "remote", conn.RemoteAddr().String(), "error", err)
	}
}

// authenticate reads the auth line and verifies its token. The caller
// never learns whether the token or the framing was bad.
func (t *TCPGateway) authenticate(conn net.Conn, r *bufio.Reader) error {
	if err := conn.SetReadDeadline(time.Now().Add(authDeadline)); err != nil {
		return err
	}
	line, err := r.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read auth line: %w", err)
	}
	if err := conn.SetReadDeadline(time.Time{}); err != nil {
		return err
	}

	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, authPrefix) {
		return errors.New("missing auth line")
	}
	if err := verifyAccessToken(t.secret, strings.TrimPrefix(line, authPrefix)); err != nil {
		return fmt.Errorf("token rejected: %w", err)
	}
	return nil
}

func newAccessToken(secret string, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    "clipz",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func verifyAccessToken(secret, token string) error {
	parsed, err := jwt.Parse(token, func(tk *jwt.Token) (any, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tk.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !parsed.Valid {
		return errors.New("invalid token")
	}
	return nil
}
