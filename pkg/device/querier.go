/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package device implements the SNMP-backed device facade used by the
// crawler and the MAC tracer.
package device

import (
	"context"
	"net/netip"

	"github.com/carverauto/mnet/pkg/snmp"
	"github.com/carverauto/mnet/pkg/topology"
)

// Dialer opens authenticated SNMP clients.
type Dialer interface {
	Dial(ctx context.Context, host string) (snmp.SNMPClient, error)
}

// Querier opens device sessions over SNMP.
type Querier struct {
	dialer Dialer
}

// NewQuerier returns a Querier that dials through d.
func NewQuerier(d Dialer) *Querier {
	return &Querier{dialer: d}
}

// Open implements topology.Querier.
func (q *Querier) Open(ctx context.Context, addr netip.Addr) (topology.Session, error) {
	client, err := q.dialer.Dial(ctx, addr.String())
	if err != nil {
		return nil, err
	}

	return NewSession(client, addr.String()), nil
}
