package device

import "strconv"

// MIB objects polled by the device facade. Table column OIDs are given
// without an instance suffix.
const (
	// SNMPv2-MIB
	oidSysDescr = "1.3.6.1.2.1.1.1.0"
	oidSysName  = "1.3.6.1.2.1.1.5.0"

	// IF-MIB
	oidIfDescr = "1.3.6.1.2.1.2.2.1.2"
	oidIfName  = "1.3.6.1.2.1.31.1.1.1.1"

	// IP-MIB ipAddrTable
	oidIPForwarding  = "1.3.6.1.2.1.4.1.0"
	oidIPAdEntIfIdx  = "1.3.6.1.2.1.4.20.1.2"
	oidIPAdEntNetMsk = "1.3.6.1.2.1.4.20.1.3"

	// OSPF-MIB, BGP4-MIB
	oidOSPFRouterID  = "1.3.6.1.2.1.14.1.1.0"
	oidOSPFAdminStat = "1.3.6.1.2.1.14.1.2.0"
	oidBGPLocalAS    = "1.3.6.1.2.1.15.2.0"

	// ENTITY-MIB entPhysicalTable
	oidEntPhysicalClass   = "1.3.6.1.2.1.47.1.1.1.1.5"
	oidEntPhysicalSwRev   = "1.3.6.1.2.1.47.1.1.1.1.10"
	oidEntPhysicalSerial  = "1.3.6.1.2.1.47.1.1.1.1.11"
	oidEntPhysicalModel   = "1.3.6.1.2.1.47.1.1.1.1.13"
	entPhysicalClassChass = 3

	// OLD-CISCO-SYS-MIB
	oidSysBootImage = "1.3.6.1.4.1.9.2.1.73.0"

	// CISCO-CDP-MIB cdpCacheTable
	oidCDPCacheAddressType = "1.3.6.1.4.1.9.9.23.1.2.1.1.3"
	oidCDPCacheAddress     = "1.3.6.1.4.1.9.9.23.1.2.1.1.4"
	oidCDPCacheVersion     = "1.3.6.1.4.1.9.9.23.1.2.1.1.5"
	oidCDPCacheDeviceID    = "1.3.6.1.4.1.9.9.23.1.2.1.1.6"
	oidCDPCacheDevicePort  = "1.3.6.1.4.1.9.9.23.1.2.1.1.7"
	oidCDPCachePlatform    = "1.3.6.1.4.1.9.9.23.1.2.1.1.8"
	cdpAddressTypeIP       = 1

	// LLDP-MIB
	oidLLDPLocPortID        = "1.0.8802.1.1.2.1.3.7.1.3"
	oidLLDPRemChassisID     = "1.0.8802.1.1.2.1.4.1.1.5"
	oidLLDPRemPortID        = "1.0.8802.1.1.2.1.4.1.1.7"
	oidLLDPRemPortDesc      = "1.0.8802.1.1.2.1.4.1.1.8"
	oidLLDPRemSysName       = "1.0.8802.1.1.2.1.4.1.1.9"
	oidLLDPRemSysDesc       = "1.0.8802.1.1.2.1.4.1.1.10"
	oidLLDPRemManAddrIfType = "1.0.8802.1.1.2.1.4.2.1.3"
	lldpManAddrIPv4         = 1

	// CISCO-VTP-MIB
	oidVTPVlanState       = "1.3.6.1.4.1.9.9.46.1.3.1.1.2"
	oidTrunkVlansEnabled  = "1.3.6.1.4.1.9.9.46.1.6.1.1.4"
	oidTrunkNativeVlan    = "1.3.6.1.4.1.9.9.46.1.6.1.1.5"
	oidTrunkDynamicStatus = "1.3.6.1.4.1.9.9.46.1.6.1.1.14"
	trunkDynamicStatusOn  = 1

	// CISCO-VLAN-MEMBERSHIP-MIB
	oidVMVlan = "1.3.6.1.4.1.9.9.68.1.2.2.1.2"

	// IEEE8023-LAG-MIB
	oidLAGSelectedAggID = "1.2.840.10006.300.43.1.2.1.1.12"

	// CISCO-HSRP-MIB
	oidHSRPPriority  = "1.3.6.1.4.1.9.9.106.1.2.1.1.3"
	oidHSRPVirtualIP = "1.3.6.1.4.1.9.9.106.1.2.1.1.11"

	// CISCO-STACKWISE-MIB cswSwitchInfoTable
	oidStackNumber   = "1.3.6.1.4.1.9.9.500.1.2.1.1.1"
	oidStackRole     = "1.3.6.1.4.1.9.9.500.1.2.1.1.3"
	oidStackPriority = "1.3.6.1.4.1.9.9.500.1.2.1.1.4"
	oidStackMAC      = "1.3.6.1.4.1.9.9.500.1.2.1.1.7"
	oidStackImage    = "1.3.6.1.4.1.9.9.500.1.2.1.1.8"

	// CISCO-VIRTUAL-SWITCH-MIB
	oidVSSDomain = "1.3.6.1.4.1.9.9.388.1.1.1.0"
	oidVSSMode   = "1.3.6.1.4.1.9.9.388.1.1.4.0"
	vssModeMulti = 2

	// BRIDGE-MIB, Q-BRIDGE-MIB
	oidDot1dBasePortIfIndex = "1.3.6.1.2.1.17.1.4.1.2"
	oidDot1dTpFdbPort       = "1.3.6.1.2.1.17.4.3.1.2"
	oidDot1qTpFdbPort       = "1.3.6.1.2.1.17.7.1.2.2.1.2"
)

var stackRoles = map[int]string{
	1: "master",
	2: "member",
	3: "notMember",
	4: "standby",
}

// oid joins a column OID with an instance suffix.
func oid(column string, index ...int) string {
	s := column
	for _, i := range index {
		s += "." + strconv.Itoa(i)
	}

	return s
}
