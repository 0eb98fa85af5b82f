// Package authz holds the role model and the per-resource authorization
// predicates. Predicates are pure: they look only at the actor and a snapshot
// view of the resource, never at live storage.
package authz

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHead     Role = "head"
	RoleEmployee Role = "employee"
	RoleStudent  Role = "student"
)

// ParseRole validates an incoming role string against the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleHead, RoleEmployee, RoleStudent:
		return Role(s), true
	}
	return "", false
}

type ConfirmationStatus string

const (
	StatusConfirmed ConfirmationStatus = "confirmed"
	StatusCancelled ConfirmationStatus = "cancelled"
	StatusPending   ConfirmationStatus = "pending"
)

func ParseConfirmationStatus(s string) (ConfirmationStatus, bool) {
	switch ConfirmationStatus(s) {
	case StatusConfirmed, StatusCancelled, StatusPending:
		return ConfirmationStatus(s), true
	}
	return "", false
}

type NotificationType string

const (
	NotificationEvent       NotificationType = "event"
	NotificationOpportunity NotificationType = "opportunity"
	NotificationSystem      NotificationType = "system"
)
