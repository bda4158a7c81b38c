package config

import (
	"net"
	"net/url"
	"os"
	"sync"
)

var (
	isDockerOnce   sync.Once
	isDockerResult bool
)

// IsRunningInDocker returns true if the client is running inside a Docker container.
// Detection is based on the presence of /.dockerenv. The result is cached after the first call.
func IsRunningInDocker() bool {
	isDockerOnce.Do(func() {
		_, err := os.Stat("/.dockerenv")
		isDockerResult = err == nil
	})
	return isDockerResult
}

// ResolveHostForDocker maps loopback hosts to host.docker.internal inside a container,
// so a backend running on the host machine stays reachable. Other hosts are returned unchanged.
func ResolveHostForDocker(host string) string {
	if !IsRunningInDocker() {
		return host
	}

	if host == "localhost" || host == "127.0.0.1" {
		return "host.docker.internal"
	}

	return host
}

// ResolveURLForDocker returns a copy of u with its host passed through ResolveHostForDocker.
// The port, if any, is preserved.
func ResolveURLForDocker(u *url.URL) *url.URL {
	out := *u
	host, port, err := net.SplitHostPort(u.Host)
	if err != nil {
		out.Host = ResolveHostForDocker(u.Host)
		return &out
	}
	out.Host = net.JoinHostPort(ResolveHostForDocker(host), port)
	return &out
}
