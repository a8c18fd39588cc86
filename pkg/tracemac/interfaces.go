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

// Package tracemac pkg/tracemac/interfaces.go

package tracemac

import (
	"context"
	"net"

	"github.com/carverauto/mnet/pkg/topology"
)

//go:generate mockgen -destination=mock_tracemac.go -package=tracemac github.com/carverauto/mnet/pkg/tracemac Session

// Location is where a device learned a hardware address.
type Location struct {
	Port string
	VLAN int
}

// Locator searches a device's forwarding table.
type Locator interface {
	// LocateMAC returns the port mac was learned on, or ErrMACNotFound
	LocateMAC(ctx context.Context, mac net.HardwareAddr) (Location, error)
}

// Session is a device session that can also search its forwarding table.
type Session interface {
	topology.Session
	Locator
}
