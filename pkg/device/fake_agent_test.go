package device

import (
	"sort"
	"strconv"
	"strings"

	"github.com/carverauto/mnet/pkg/snmp"
	"github.com/gosnmp/gosnmp"
)

// fakeAgent serves a static MIB view.
type fakeAgent struct {
	values map[string]snmp.Variable
	vlans  map[int]*fakeAgent
	gets   int
}

func newFakeAgent() *fakeAgent {
	return &fakeAgent{values: make(map[string]snmp.Variable), vlans: make(map[int]*fakeAgent)}
}

func (a *fakeAgent) set(oid string, typ gosnmp.Asn1BER, value interface{}) *fakeAgent {
	a.values[oid] = snmp.Variable{OID: oid, Type: typ, Value: value}
	return a
}

func (a *fakeAgent) str(oid, s string) *fakeAgent {
	return a.set(oid, gosnmp.OctetString, []byte(s))
}

func (a *fakeAgent) num(oid string, n int) *fakeAgent {
	return a.set(oid, gosnmp.Integer, n)
}

func (a *fakeAgent) Connect() error { return nil }

func (a *fakeAgent) Close() error { return nil }

func (a *fakeAgent) Get(oids []string) (map[string]snmp.Variable, error) {
	a.gets++

	out := make(map[string]snmp.Variable)

	for _, oid := range oids {
		if v, ok := a.values[snmp.TrimOID(oid)]; ok {
			out[v.OID] = v
		}
	}

	return out, nil
}

func (a *fakeAgent) Walk(root string) ([]snmp.Variable, error) {
	prefix := snmp.TrimOID(root) + "."

	var out []snmp.Variable

	for oid, v := range a.values {
		if strings.HasPrefix(oid, prefix) {
			out = append(out, v)
		}
	}

	sort.Slice(out, func(i, j int) bool { return oidLess(out[i].OID, out[j].OID) })

	return out, nil
}

func (a *fakeAgent) WithVLAN(vlan int) snmp.SNMPClient {
	if scoped, ok := a.vlans[vlan]; ok {
		return scoped
	}

	return newFakeAgent()
}

func oidLess(a, b string) bool {
	pa, pb := strings.Split(a, "."), strings.Split(b, ".")

	for i := 0; i < len(pa) && i < len(pb); i++ {
		x, _ := strconv.Atoi(pa[i])
		y, _ := strconv.Atoi(pb[i])

		if x != y {
			return x < y
		}
	}

	return len(pa) < len(pb)
}
