package snmp

import (
	"context"
	"fmt"
	"log"
)

// OIDSysName is SNMPv2-MIB::sysName.0, used to probe whether a credential works.
const OIDSysName = "1.3.6.1.2.1.1.5.0"

type clientFactory func(ctx context.Context, host string, cred Credential, opts Options) (SNMPClient, error)

// Dialer opens sessions by trying each configured credential in order.
type Dialer struct {
	credentials []Credential
	opts        Options
	newClient   clientFactory
}

// NewDialer returns a Dialer over the given credential sets.
func NewDialer(credentials []Credential, opts Options) *Dialer {
	return &Dialer{
		credentials: credentials,
		opts:        opts.withDefaults(),
		newClient:   newSNMPClient,
	}
}

// Dial returns a connected client for the first credential that answers a
// sysName query. The error wraps ErrNoCredentials when none does.
func (d *Dialer) Dial(ctx context.Context, host string) (SNMPClient, error) {
	var lastErr error

	for i := range d.credentials {
		client, err := d.probe(ctx, host, d.credentials[i])
		if err == nil {
			return client, nil
		}

		lastErr = err
	}

	if lastErr == nil {
		return nil, fmt.Errorf("%w for %s", ErrNoCredentials, host)
	}

	return nil, fmt.Errorf("%w for %s: %w", ErrNoCredentials, host, lastErr)
}

func (d *Dialer) probe(ctx context.Context, host string, cred Credential) (SNMPClient, error) {
	client, err := d.newClient(ctx, host, cred, d.opts)
	if err != nil {
		return nil, err
	}

	if err := client.Connect(); err != nil {
		return nil, err
	}

	vars, err := client.Get([]string{OIDSysName})
	if err == nil {
		if _, ok := vars[OIDSysName]; !ok {
			err = ErrNoSysName
		}
	}

	if err != nil {
		if cerr := client.Close(); cerr != nil {
			log.Printf("Failed to close SNMP session to %s: %v", host, cerr)
		}

		return nil, err
	}

	return client, nil
}
