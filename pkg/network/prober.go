package network

import (
	"context"
	"net"
	"strings"
	"time"
)

// DialProber reports connectivity by opening a TCP connection to a target host:port.
// The path is marked expensive when the outgoing interface name starts with a metered prefix.
type DialProber struct {
	Target          string
	Timeout         time.Duration
	MeteredPrefixes []string

	dial       func(ctx context.Context, network, addr string) (net.Conn, error)
	interfaces func() ([]net.Interface, error)
	addrs      func(net.Interface) ([]net.Addr, error)
}

// NewDialProber builds a DialProber using the system dialer and interface table.
func NewDialProber(target string, timeout time.Duration, meteredPrefixes []string) *DialProber {
	d := &net.Dialer{Timeout: timeout}
	return &DialProber{
		Target:          target,
		Timeout:         timeout,
		MeteredPrefixes: meteredPrefixes,
		dial:            d.DialContext,
		interfaces:      net.Interfaces,
		addrs:           func(ifc net.Interface) ([]net.Addr, error) { return ifc.Addrs() },
	}
}

// Probe dials the target once.
func (p *DialProber) Probe(ctx context.Context) Path {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	conn, err := p.dial(ctx, "tcp", p.Target)
	if err != nil {
		return Path{Status: StatusUnsatisfied}
	}
	defer conn.Close()

	name := p.interfaceFor(conn.LocalAddr())
	return Path{
		Status:      StatusSatisfied,
		Interface:   name,
		IsExpensive: p.isMetered(name),
	}
}

func (p *DialProber) interfaceFor(addr net.Addr) string {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok || p.interfaces == nil {
		return ""
	}
	ifaces, err := p.interfaces()
	if err != nil {
		return ""
	}
	for _, ifc := range ifaces {
		addrs, err := p.addrs(ifc)
		if err != nil {
			continue
		}
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.Equal(tcp.IP) {
				return ifc.Name
			}
		}
	}
	return ""
}

func (p *DialProber) isMetered(name string) bool {
	name = strings.ToLower(name)
	if name == "" {
		return false
	}
	for _, prefix := range p.MeteredPrefixes {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
