package topology

// Chassis describes how many physical units make up a device. It is one of
// Standalone, *Stack or *RedundantPair.
type Chassis interface {
	// Units is the number of physical units.
	Units() int
	chassis()
}

// Standalone is a single physical unit.
type Standalone struct{}

// StackMember is one unit of a hardware stack.
type StackMember struct {
	Number   int
	Role     string
	Priority int
	MAC      string
	Platform string
	Image    string
	Serial   string
}

// Stack is a hardware stack of two or more units.
type Stack struct {
	Members []StackMember
}

// PairMember is one chassis of a redundant pair.
type PairMember struct {
	Platform string
	Serial   string
	Version  string
}

// RedundantPair is an active/standby chassis pair (VSS).
type RedundantPair struct {
	Domain  string
	Members [2]PairMember
}

func (Standalone) Units() int       { return 1 }
func (s *Stack) Units() int         { return len(s.Members) }
func (p *RedundantPair) Units() int { return len(p.Members) }

func (Standalone) chassis()     {}
func (*Stack) chassis()         {}
func (*RedundantPair) chassis() {}

// ChassisOf returns d's chassis, treating an unset one as Standalone.
func ChassisOf(d *Device) Chassis {
	if d.Chassis == nil {
		return Standalone{}
	}

	return d.Chassis
}
