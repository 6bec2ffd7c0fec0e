package model

// Principal is the authenticated identity resolved for the current request.
type Principal struct {
	Name   string
	Groups []string
}

// InGroup reports whether the principal carries the named group.
func (p *Principal) InGroup(name string) bool {
	if p == nil {
		return false
	}
	for _, g := range p.Groups {
		if g == name {
			return true
		}
	}
	return false
}
