package models

// Group represents a set of members who share expenses. The group's member
// list is the member directory for every expense created under it: an
// expense may only reference ids that appear here.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Lake Trip", "Flat 4B").
	Name string

	// Members is the ordered list of member ids in this group. The order
	// is stable (insertion order) and is what makes balance and
	// settle-up output reproducible.
	Members []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether memberID belongs to the group.
func (g *Group) HasMember(memberID string) bool {
	for _, m := range g.Members {
		if m == memberID {
			return true
		}
	}
	return false
}
