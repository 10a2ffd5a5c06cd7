package policy

import (
	"fmt"
	"slices"

	"marketplace-service/src/internal/entity"
	httpError "marketplace-service/src/pkg/http-error"
)

type Operation string

const (
	CreateJobPost       Operation = "jobpost.create"
	ModifyJobPost       Operation = "jobpost.modify"
	SubmitBid           Operation = "jobbid.create"
	ModifyBid           Operation = "jobbid.modify"
	CreateOffer         Operation = "joboffer.create"
	RecordTrip          Operation = "trip.create"
	ModifyTrip          Operation = "trip.modify"
	RecordPayment       Operation = "payment.create"
	RateDriver          Operation = "rating.create"
	RegisterCar         Operation = "car.create"
	ModifyCar           Operation = "car.modify"
	UploadCarDoc        Operation = "cardoc.create"
	ModifyCarDoc        Operation = "cardoc.modify"
	ModifyDriverProfile Operation = "driver.modify"
	PostMessage         Operation = "chat.post"
	MarkMessageRead     Operation = "chat.mark_read"
	ModifyNotification  Operation = "notification.modify"
)

var requiredRole = map[Operation]entity.Role{
	CreateJobPost:       entity.RoleClient,
	ModifyJobPost:       entity.RoleClient,
	CreateOffer:         entity.RoleClient,
	RecordPayment:       entity.RoleClient,
	RateDriver:          entity.RoleClient,
	SubmitBid:           entity.RoleDriver,
	ModifyBid:           entity.RoleDriver,
	RegisterCar:         entity.RoleDriver,
	ModifyCar:           entity.RoleDriver,
	UploadCarDoc:        entity.RoleDriver,
	ModifyCarDoc:        entity.RoleDriver,
	ModifyDriverProfile: entity.RoleDriver,
}

// Target describes the resource an operation touches. Empty fields are not checked.
type Target struct {
	// ClientID is the client profile owning the resource.
	ClientID string
	// DriverID is the driver profile owning the resource.
	DriverID string
	// UserID is the user owning the resource.
	UserID string
	// Participants are the user ids allowed to act on a shared resource.
	Participants []string
}

type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision { return Decision{Allowed: true} }

func Deny(reason string) Decision { return Decision{Reason: reason} }

// Err converts a denial into the Forbidden error returned to callers.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	errObj := httpError.NewForbidden()
	errObj.Message = d.Reason
	return errObj
}

// Authorize applies the role gate, then ownership, then participation.
func Authorize(actor Actor, op Operation, target Target) Decision {
	if actor == nil {
		return Deny("authentication required")
	}
	if role, ok := requiredRole[op]; ok && actor.Role() != role {
		return Deny(fmt.Sprintf("only %ss may perform %s", role, op))
	}

	switch a := actor.(type) {
	case ClientActor:
		if target.ClientID != "" && target.ClientID != a.ClientID {
			return Deny("resource belongs to another client")
		}
	case DriverActor:
		if target.DriverID != "" && target.DriverID != a.DriverID {
			return Deny("resource belongs to another driver")
		}
	default:
		return Deny("unrecognised actor")
	}

	if target.UserID != "" && target.UserID != actor.UserID() {
		return Deny("resource belongs to another user")
	}
	if len(target.Participants) > 0 && !slices.Contains(target.Participants, actor.UserID()) {
		return Deny("actor is not a participant of this resource")
	}
	return Allow()
}
