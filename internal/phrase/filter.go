package phrase

import "fmt"

// Filter narrows repository queries. A nil field means "any".
type Filter struct {
	Stage  *Stage
	Active *bool
}

// All matches every phrase of an owner.
func All() Filter {
	return Filter{}
}

// AtStage matches phrases in exactly stage s.
func AtStage(s Stage) Filter {
	return Filter{Stage: &s}
}

// ActiveOnly matches phrases currently in the active set.
func ActiveOnly() Filter {
	active := true
	return Filter{Active: &active}
}

// Matches reports whether p satisfies the filter.
func (f Filter) Matches(p *Phrase) bool {
	if f.Stage != nil && p.Stage != *f.Stage {
		return false
	}
	if f.Active != nil && p.Active != *f.Active {
		return false
	}
	return true
}

func (f Filter) String() string {
	switch {
	case f.Stage == nil && f.Active == nil:
		return "all"
	case f.Stage != nil && f.Active == nil:
		return fmt.Sprintf("stage=%d", int(*f.Stage))
	case f.Stage == nil:
		return fmt.Sprintf("active=%t", *f.Active)
	default:
		return fmt.Sprintf("stage=%d,active=%t", int(*f.Stage), *f.Active)
	}
}
