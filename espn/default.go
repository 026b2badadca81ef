package espn

import "sync"

var (
	defaultMu     sync.Mutex
	defaultClient *Client
)

// InitDefault creates the package default client. It must be paired with
// ShutdownDefault; calling it twice without a shutdown is a usage error.
func InitDefault(cfg Config, opts ...Option) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultClient != nil {
		return usageError("default client already initialised")
	}

	c, err := NewClient(cfg, opts...)
	if err != nil {
		return err
	}
	defaultClient = c
	return nil
}

// Default returns the client created by InitDefault
func Default() (*Client, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultClient == nil {
		return nil, usageError("default client not initialised, call InitDefault first")
	}
	return defaultClient, nil
}

// ShutdownDefault closes and forgets the default client. It is a no-op if
// none exists.
func ShutdownDefault() error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultClient == nil {
		return nil
	}
	err := defaultClient.Close()
	defaultClient = nil
	return err
}
