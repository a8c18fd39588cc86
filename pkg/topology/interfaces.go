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

// Package topology pkg/topology/interfaces.go

package topology

import (
	"context"
	"net/netip"
)

//go:generate mockgen -destination=mock_topology.go -package=topology github.com/carverauto/mnet/pkg/topology Querier,Session

// Querier opens management sessions to devices.
type Querier interface {
	// Open authenticates against addr; an error means the device is unreachable
	Open(ctx context.Context, addr netip.Addr) (Session, error)
}

// Session is an authenticated connection to one device.
type Session interface {
	// Hostname returns the raw system name
	Hostname(ctx context.Context) (string, error)
	// Query fetches the attributes selected by opts
	Query(ctx context.Context, opts QueryOptions) (DeviceInfo, error)
	// Neighbors returns the neighbor table of one protocol; nil when the
	// device does not run it
	Neighbors(ctx context.Context, protocol Protocol) ([]Neighbor, error)
	Close() error
}
