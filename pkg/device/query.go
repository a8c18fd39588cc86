package device

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/carverauto/mnet/pkg/topology"
)

type entity struct {
	platform string
	serial   string
	version  string
}

// Query implements topology.Session. Objects the agent does not implement
// leave their fields empty; transport failures are joined into the error
// while the remaining parts are still attempted.
func (s *Session) Query(ctx context.Context, opts topology.QueryOptions) (topology.DeviceInfo, error) {
	var info topology.DeviceInfo

	if err := ctx.Err(); err != nil {
		return info, err
	}

	var errs []error

	chassis, err := s.chassisEntities()
	if err != nil {
		errs = append(errs, err)
	}

	if err := s.queryChassis(&info, chassis, opts); err != nil {
		errs = append(errs, err)
	}

	info.Chassis = topology.Standalone{}

	if opts.Pair {
		pair, err := s.queryPair(chassis, opts.PairDetails)
		if err != nil {
			errs = append(errs, err)
		}

		if pair != nil {
			info.Chassis = pair
		}
	}

	if _, standalone := info.Chassis.(topology.Standalone); standalone && opts.Stack {
		stack, err := s.queryStack(opts.StackDetails)
		if err != nil {
			errs = append(errs, err)
		}

		if stack != nil {
			info.Chassis = stack
		}
	}

	if opts.Routing {
		if err := s.queryRouting(&info); err != nil {
			errs = append(errs, err)
		}
	}

	if opts.HSRP {
		hsrp, err := s.queryHSRP()
		if err != nil {
			errs = append(errs, err)
		}

		info.HSRP = hsrp
	}

	if opts.Loopbacks || opts.SVIs {
		if err := s.queryInterfaces(&info, opts); err != nil {
			errs = append(errs, err)
		}
	}

	return info, errors.Join(errs...)
}

// chassisEntities lists the entPhysicalIndex of every chassis-class entity.
func (s *Session) chassisEntities() ([]int, error) {
	classes, order, err := s.walkIndexed(oidEntPhysicalClass)
	if err != nil {
		return nil, fmt.Errorf("entity table: %w", err)
	}

	var chassis []int

	for _, idx := range order {
		if class, ok := classes[idx].Int(); ok && class == entPhysicalClassChass {
			chassis = append(chassis, idx)
		}
	}

	return chassis, nil
}

func (s *Session) entity(idx int) (entity, error) {
	vars, err := s.get(oid(oidEntPhysicalModel, idx), oid(oidEntPhysicalSerial, idx), oid(oidEntPhysicalSwRev, idx))
	if err != nil {
		return entity{}, err
	}

	return entity{
		platform: vars[oid(oidEntPhysicalModel, idx)].String(),
		serial:   vars[oid(oidEntPhysicalSerial, idx)].String(),
		version:  vars[oid(oidEntPhysicalSwRev, idx)].String(),
	}, nil
}

func (s *Session) queryChassis(info *topology.DeviceInfo, chassis []int, opts topology.QueryOptions) error {
	if len(chassis) > 0 {
		e, err := s.entity(chassis[0])
		if err != nil {
			return fmt.Errorf("chassis: %w", err)
		}

		info.Platform = e.platform
		info.Version = e.version

		if opts.Serials {
			info.Serial = e.serial
		}
	}

	oids := []string{oidSysDescr}
	if opts.BootImage {
		oids = append(oids, oidSysBootImage)
	}

	vars, err := s.get(oids...)
	if err != nil {
		return fmt.Errorf("system: %w", err)
	}

	if info.Version == "" {
		info.Version = parseVersion(vars[oidSysDescr].String())
	}

	info.BootImage = vars[oidSysBootImage].String()

	return nil
}

// queryStack returns nil unless the switch reports two or more stack members.
func (s *Session) queryStack(details bool) (*topology.Stack, error) {
	numbers, order, err := s.walkIndexed(oidStackNumber)
	if err != nil {
		return nil, fmt.Errorf("stack: %w", err)
	}

	if len(order) < 2 {
		return nil, nil
	}

	stack := &topology.Stack{}

	for _, idx := range order {
		num, _ := numbers[idx].Int()

		oids := []string{oid(oidStackRole, idx), oid(oidStackPriority, idx)}
		if details {
			oids = append(oids, oid(oidStackMAC, idx), oid(oidStackImage, idx))
		}

		vars, err := s.get(oids...)
		if err != nil {
			return nil, fmt.Errorf("stack member %d: %w", num, err)
		}

		role, _ := vars[oid(oidStackRole, idx)].Int()
		pri, _ := vars[oid(oidStackPriority, idx)].Int()

		member := topology.StackMember{
			Number:   num,
			Role:     stackRoles[role],
			Priority: pri,
		}

		if details {
			member.MAC = vars[oid(oidStackMAC, idx)].MAC()
			member.Image = vars[oid(oidStackImage, idx)].String()

			e, err := s.entity(idx)
			if err != nil {
				return nil, fmt.Errorf("stack member %d: %w", num, err)
			}

			member.Platform = e.platform
			member.Serial = e.serial
		}

		stack.Members = append(stack.Members, member)
	}

	sort.SliceStable(stack.Members, func(i, j int) bool {
		return stack.Members[i].Number < stack.Members[j].Number
	})

	return stack, nil
}

// queryPair returns nil unless the switch runs as a multi-node virtual switch.
func (s *Session) queryPair(chassis []int, details bool) (*topology.RedundantPair, error) {
	vars, err := s.get(oidVSSMode, oidVSSDomain)
	if err != nil {
		return nil, fmt.Errorf("virtual switch: %w", err)
	}

	if mode, ok := vars[oidVSSMode].Int(); !ok || mode != vssModeMulti {
		return nil, nil
	}

	pair := &topology.RedundantPair{Domain: vars[oidVSSDomain].String()}

	if !details {
		return pair, nil
	}

	for i := 0; i < len(pair.Members) && i < len(chassis); i++ {
		e, err := s.entity(chassis[i])
		if err != nil {
			return pair, fmt.Errorf("virtual switch member %d: %w", i, err)
		}

		pair.Members[i] = topology.PairMember{Platform: e.platform, Serial: e.serial, Version: e.version}
	}

	return pair, nil
}

func (s *Session) queryRouting(info *topology.DeviceInfo) error {
	vars, err := s.get(oidIPForwarding, oidOSPFAdminStat, oidOSPFRouterID, oidBGPLocalAS)
	if err != nil {
		return fmt.Errorf("routing: %w", err)
	}

	forwarding, _ := vars[oidIPForwarding].Int()
	info.Routing.Enabled = forwarding == 1

	if admin, _ := vars[oidOSPFAdminStat].Int(); admin == 1 {
		info.Routing.OSPFRouterID, _ = vars[oidOSPFRouterID].IPv4()
	}

	if as, ok := vars[oidBGPLocalAS].Int(); ok && as > 0 {
		info.Routing.BGPLocalAS = strconv.Itoa(as)
	}

	return nil
}

// queryHSRP reports the first standby group.
func (s *Session) queryHSRP() (*topology.HSRP, error) {
	priorities, err := s.client.Walk(oidHSRPPriority)
	if err != nil {
		return nil, fmt.Errorf("hsrp: %w", err)
	}

	if len(priorities) == 0 {
		return nil, nil
	}

	hsrp := &topology.HSRP{}
	hsrp.Priority, _ = priorities[0].Int()

	vips, err := s.client.Walk(oidHSRPVirtualIP)
	if err != nil {
		return hsrp, fmt.Errorf("hsrp: %w", err)
	}

	if len(vips) > 0 {
		hsrp.VirtualIP, _ = vips[0].IPv4()
	}

	return hsrp, nil
}

func (s *Session) queryInterfaces(info *topology.DeviceInfo, opts topology.QueryOptions) error {
	names, err := s.interfaceNames()
	if err != nil {
		return err
	}

	addrs, err := s.interfaceAddresses()
	if err != nil {
		return err
	}

	indexes := make([]int, 0, len(names))
	for idx := range names {
		indexes = append(indexes, idx)
	}

	sort.Ints(indexes)

	for _, idx := range indexes {
		name := names[idx]
		lower := strings.ToLower(name)

		switch {
		case opts.Loopbacks && strings.HasPrefix(lower, "lo"):
			info.Loopbacks = append(info.Loopbacks, topology.Interface{Name: name, Addresses: addrs[idx]})
		case opts.SVIs && strings.HasPrefix(lower, "vl"):
			vlan, err := strconv.Atoi(strings.TrimLeft(lower, "vlan"))
			if err != nil {
				continue
			}

			info.SVIs = append(info.SVIs, topology.Interface{Name: name, VLAN: vlan, Addresses: addrs[idx]})
		}
	}

	return nil
}
