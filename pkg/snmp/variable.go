package snmp

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/gosnmp/gosnmp"
)

// Variable is a single value returned by an agent. OID never carries a
// leading dot.
type Variable struct {
	OID   string
	Type  gosnmp.Asn1BER
	Value interface{}
}

func newVariable(pdu gosnmp.SnmpPDU) Variable {
	return Variable{OID: TrimOID(pdu.Name), Type: pdu.Type, Value: pdu.Value}
}

// Exists reports whether the agent returned an actual instance.
func (v Variable) Exists() bool {
	switch v.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView, gosnmp.Null:
		return false
	default:
		return v.Value != nil
	}
}

// String renders the value as text. Binary octet strings are returned as-is.
func (v Variable) String() string {
	switch value := v.Value.(type) {
	case nil:
		return ""
	case []byte:
		return strings.TrimRight(string(value), "\x00")
	case string:
		return value
	default:
		if n, ok := v.Int(); ok {
			return strconv.Itoa(n)
		}

		return fmt.Sprint(value)
	}
}

// Int returns numeric values, and octet strings holding decimal text.
func (v Variable) Int() (int, bool) {
	switch value := v.Value.(type) {
	case nil:
		return 0, false
	case []byte:
		n, err := strconv.Atoi(strings.TrimSpace(string(value)))
		return n, err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		return n, err == nil
	}

	switch v.Type {
	case gosnmp.Integer, gosnmp.Counter32, gosnmp.Gauge32, gosnmp.Counter64,
		gosnmp.TimeTicks, gosnmp.Uinteger32:
		return int(gosnmp.ToBigInt(v.Value).Int64()), true
	default:
		return 0, false
	}
}

// Bytes returns the raw octets of an octet string.
func (v Variable) Bytes() []byte {
	switch value := v.Value.(type) {
	case []byte:
		return value
	case string:
		return []byte(value)
	default:
		return nil
	}
}

// IPv4 decodes IpAddress values and 4-octet binary strings. Octet strings
// that already hold dotted text are parsed as such.
func (v Variable) IPv4() (string, bool) {
	if v.Type == gosnmp.IPAddress {
		s, ok := v.Value.(string)
		return s, ok && s != ""
	}

	// dotted text is at least 7 octets long, so 4 octets are always binary
	b := v.Bytes()
	if len(b) == net.IPv4len {
		return net.IP(b).String(), true
	}

	if ip := net.ParseIP(strings.TrimSpace(string(b))); ip != nil && ip.To4() != nil {
		return ip.String(), true
	}

	return "", false
}

// MAC formats a 6-octet binary string as aa:bb:cc:dd:ee:ff.
func (v Variable) MAC() string {
	b := v.Bytes()
	if len(b) != 6 {
		return v.String()
	}

	return net.HardwareAddr(b).String()
}

// Index returns the instance suffix of the variable below root, or "" when
// the variable is not below root.
func (v Variable) Index(root string) string {
	root = TrimOID(root) + "."
	if !strings.HasPrefix(v.OID, root) {
		return ""
	}

	return v.OID[len(root):]
}

// TrimOID strips surrounding dots from an OID.
func TrimOID(oid string) string {
	return strings.Trim(oid, ".")
}

// IndexParts splits an OID instance suffix into its numeric sub-identifiers.
func IndexParts(index string) ([]int, error) {
	if index == "" {
		return nil, nil
	}

	fields := strings.Split(index, ".")
	parts := make([]int, len(fields))

	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad OID index %q: %w", index, err)
		}

		parts[i] = n
	}

	return parts, nil
}
