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

// Package snmp pkg/snmp/interfaces.go

package snmp

//go:generate mockgen -destination=mock_snmp.go -package=snmp github.com/carverauto/mnet/pkg/snmp SNMPClient

// SNMPClient is a session against a single SNMP agent.
type SNMPClient interface {
	// Connect establishes the transport to the agent
	Connect() error
	// Get fetches the given OIDs; instances the agent does not hold are omitted
	Get(oids []string) (map[string]Variable, error)
	// Walk returns every variable below root, in agent order
	Walk(root string) ([]Variable, error)
	// WithVLAN returns an unconnected client scoped to a VLAN's bridge context
	WithVLAN(vlan int) SNMPClient
	// Close releases the transport
	Close() error
}
