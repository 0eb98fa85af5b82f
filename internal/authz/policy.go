package authz

import "github.com/google/uuid"

// Actor is the authenticated identity a predicate judges. Department may be
// empty for admins and students.
type Actor struct {
	ID         uuid.UUID
	Role       Role
	Department string
}

// EventView carries the event attributes the predicates need. CreatorRole is
// the role snapshot taken at creation time, never the creator's current role.
type EventView struct {
	CreatorID   uuid.UUID
	CreatorRole Role
	Department  string
	IsPublic    bool
	Confirmed   bool
}

// OpportunityView mirrors EventView for opportunities.
type OpportunityView struct {
	PostedByID   uuid.UUID
	PostedByRole Role
	Department   string
}

// Decision is the outcome of a predicate. Reason is set on denial and becomes
// the FORBIDDEN detail string.
type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

// departmentMatches treats an unset resource department as unrestricted.
func departmentMatches(resourceDept, actorDept string) bool {
	return resourceDept == "" || resourceDept == actorDept
}

func CanCreateEvent(actor Actor, department string) Decision {
	switch actor.Role {
	case RoleAdmin:
		return Allow()
	case RoleHead:
		if !departmentMatches(department, actor.Department) {
			return Deny("Heads can only create events for their own department.")
		}
		return Allow()
	case RoleEmployee:
		return Allow()
	case RoleStudent:
		return Deny("Students cannot create events.")
	default:
		return Deny("Unknown role.")
	}
}

func CanReadEvent(actor Actor, ev EventView) Decision {
	switch actor.Role {
	case RoleAdmin:
		return Allow()
	case RoleHead:
		if !departmentMatches(ev.Department, actor.Department) {
			return Deny("Not authorized to view events outside your department.")
		}
		return Allow()
	case RoleEmployee:
		if ev.CreatorID != actor.ID {
			return Deny("Not authorized to view this event.")
		}
		return Allow()
	case RoleStudent:
		if !ev.IsPublic && !ev.Confirmed {
			return Deny("Not authorized to view this event.")
		}
		return Allow()
	default:
		return Deny("Unknown role.")
	}
}

func CanUpdateEvent(actor Actor, ev EventView) Decision {
	switch actor.Role {
	case RoleAdmin:
		return Allow()
	case RoleHead:
		if !departmentMatches(ev.Department, actor.Department) {
			return Deny("Heads can only update events in their department.")
		}
		if ev.CreatorID != actor.ID && ev.CreatorRole != RoleEmployee && ev.CreatorRole != RoleStudent {
			return Deny("Heads can only update events created by themselves or lower roles.")
		}
		return Allow()
	case RoleEmployee:
		if ev.CreatorID != actor.ID {
			return Deny("Employees can only update their own events.")
		}
		return Allow()
	case RoleStudent:
		return Deny("Students cannot update events.")
	default:
		return Deny("Unknown role.")
	}
}

// CanDeleteEvent enforces the one global rule first: an admin-authored event
// is immortal, no actor may delete it.
func CanDeleteEvent(actor Actor, ev EventView) Decision {
	if ev.CreatorRole == RoleAdmin {
		return Deny("Events created by Admin cannot be deleted.")
	}
	switch actor.Role {
	case RoleAdmin:
		return Allow()
	case RoleHead:
		if !departmentMatches(ev.Department, actor.Department) {
			return Deny("Heads can only delete events in their department.")
		}
		switch ev.CreatorRole {
		case RoleHead, RoleEmployee, RoleStudent:
			return Allow()
		default:
			return Deny("Heads can only delete events created by themselves or lower roles.")
		}
	case RoleEmployee:
		if ev.CreatorRole != RoleEmployee {
			return Deny("Employees can only delete events created by Employee role.")
		}
		if ev.CreatorID != actor.ID {
			return Deny("Employees can only delete their own events.")
		}
		return Allow()
	case RoleStudent:
		return Deny("Students cannot delete events.")
	default:
		return Deny("Unknown role.")
	}
}

func CanCreateOpportunity(actor Actor, department string) Decision {
	switch actor.Role {
	case RoleAdmin:
		return Allow()
	case RoleHead:
		if !departmentMatches(department, actor.Department) {
			return Deny("Heads can only create opportunities for their own department.")
		}
		return Allow()
	case RoleEmployee:
		return Deny("Opportunities are read-only for employees.")
	case RoleStudent:
		return Deny("Students cannot create opportunities.")
	default:
		return Deny("Unknown role.")
	}
}

func CanReadOpportunity(actor Actor, op OpportunityView) Decision {
	switch actor.Role {
	case RoleAdmin:
		return Allow()
	case RoleHead:
		if !departmentMatches(op.Department, actor.Department) {
			return Deny("Heads can only view opportunities in their department.")
		}
		return Allow()
	case RoleEmployee, RoleStudent:
		return Allow()
	default:
		return Deny("Unknown role.")
	}
}

// CanMutateOpportunity covers update and delete, which share one rule: heads
// must be the original poster, department notwithstanding.
func CanMutateOpportunity(actor Actor, op OpportunityView) Decision {
	switch actor.Role {
	case RoleAdmin:
		return Allow()
	case RoleHead:
		if op.PostedByID != actor.ID {
			return Deny("Not authorized to modify this opportunity.")
		}
		return Allow()
	case RoleEmployee:
		return Deny("Opportunities are read-only for employees.")
	case RoleStudent:
		return Deny("Students cannot modify opportunities.")
	default:
		return Deny("Unknown role.")
	}
}

// CanAccessNotification covers reading a notification and marking it read.
// Notifications belong to their recipient; only admins cross that line.
func CanAccessNotification(actor Actor, recipientID uuid.UUID) Decision {
	switch actor.Role {
	case RoleAdmin:
		return Allow()
	case RoleHead, RoleEmployee, RoleStudent:
		if recipientID != actor.ID {
			return Deny("Not authorized to view this notification.")
		}
		return Allow()
	default:
		return Deny("Unknown role.")
	}
}
