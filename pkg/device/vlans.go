package device

import (
	"strconv"
	"strings"
)

// vlanList renders a CISCO-VTP-MIB VLAN bitmap (first bit is VLAN 0) as
// "1-5,10", or "All" when every VLAN the bitmap can express is set.
func vlanList(bitmap []byte) string {
	var (
		vlans []int
		slots int
	)

	for i, b := range bitmap {
		for bit := 0; bit < 8; bit++ {
			vlan := i*8 + bit
			if vlan == 0 || vlan > 4094 {
				continue
			}

			slots++

			if b&(0x80>>bit) != 0 {
				vlans = append(vlans, vlan)
			}
		}
	}

	if len(vlans) == 0 {
		return ""
	}

	if len(vlans) == slots {
		return "All"
	}

	return vlanRanges(vlans)
}

// vlanRanges collapses a sorted VLAN list into ranges.
func vlanRanges(vlans []int) string {
	var b strings.Builder

	for i := 0; i < len(vlans); {
		j := i
		for j+1 < len(vlans) && vlans[j+1] == vlans[j]+1 {
			j++
		}

		if b.Len() > 0 {
			b.WriteByte(',')
		}

		b.WriteString(strconv.Itoa(vlans[i]))

		if j > i {
			b.WriteByte('-')
			b.WriteString(strconv.Itoa(vlans[j]))
		}

		i = j + 1
	}

	return b.String()
}
