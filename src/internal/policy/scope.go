package policy

// Scope restricts read queries to what an actor may see.
type Scope struct {
	DriverID string
	ClientID string
	UserID   string
	// Deny means nothing is visible.
	Deny bool
}

// VisibleTo derives the read scope of an actor. Drivers see rows that reference
// their driver profile, clients rows reachable from their own posts, and any
// other actor sees nothing.
func VisibleTo(actor Actor) Scope {
	switch a := actor.(type) {
	case DriverActor:
		return Scope{DriverID: a.DriverID, UserID: a.User}
	case ClientActor:
		return Scope{ClientID: a.ClientID, UserID: a.User}
	}
	return Scope{Deny: true}
}

func (s Scope) IsDriver() bool { return !s.Deny && s.DriverID != "" }

func (s Scope) IsClient() bool { return !s.Deny && s.ClientID != "" }
