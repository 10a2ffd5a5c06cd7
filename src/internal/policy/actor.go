package policy

import "marketplace-service/src/internal/entity"

// Actor is the caller of an operation, resolved once when the request enters the
// service. The concrete type says which profile the caller acts through.
type Actor interface {
	UserID() string
	Role() entity.Role
}

type DriverActor struct {
	User     string
	DriverID string
}

func (a DriverActor) UserID() string    { return a.User }
func (a DriverActor) Role() entity.Role { return entity.RoleDriver }

type ClientActor struct {
	User     string
	ClientID string
}

func (a ClientActor) UserID() string    { return a.User }
func (a ClientActor) Role() entity.Role { return entity.RoleClient }

// AsDriver narrows actor to a driver or reports a forbidden decision.
func AsDriver(actor Actor) (DriverActor, Decision) {
	if d, ok := actor.(DriverActor); ok {
		return d, Allow()
	}
	return DriverActor{}, Deny("only drivers can perform this action")
}

// AsClient narrows actor to a client or reports a forbidden decision.
func AsClient(actor Actor) (ClientActor, Decision) {
	if c, ok := actor.(ClientActor); ok {
		return c, Allow()
	}
	return ClientActor{}, Deny("only clients can perform this action")
}
