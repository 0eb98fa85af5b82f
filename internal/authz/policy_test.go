package authz

import (
	"testing"

	"github.com/google/uuid"
)

var (
	adminID    = uuid.New()
	headID     = uuid.New()
	employeeID = uuid.New()
	studentID  = uuid.New()
)

func admin() Actor    { return Actor{ID: adminID, Role: RoleAdmin} }
func head() Actor     { return Actor{ID: headID, Role: RoleHead, Department: "CS"} }
func employee() Actor { return Actor{ID: employeeID, Role: RoleEmployee, Department: "CS"} }
func student() Actor  { return Actor{ID: studentID, Role: RoleStudent} }

func TestAdminAuthoredEventCannotBeDeletedByAnyone(t *testing.T) {
	ev := EventView{CreatorID: adminID, CreatorRole: RoleAdmin, Department: "CS"}
	for _, actor := range []Actor{admin(), head(), employee(), student()} {
		if d := CanDeleteEvent(actor, ev); d.Allowed {
			t.Errorf("role %s deleted an admin-authored event", actor.Role)
		}
	}
}

func TestDeleteUsesSnapshotRoleNotCurrentRole(t *testing.T) {
	// The creator was an employee when the event was made; whatever role that
	// user holds today is irrelevant to the stored snapshot.
	ev := EventView{CreatorID: employeeID, CreatorRole: RoleEmployee, Department: "CS"}
	if d := CanDeleteEvent(employee(), ev); !d.Allowed {
		t.Fatalf("employee could not delete own employee-authored event: %s", d.Reason)
	}
	ev.CreatorRole = RoleHead
	if d := CanDeleteEvent(employee(), ev); d.Allowed {
		t.Fatal("employee deleted a head-authored event")
	}
}

func TestHeadEventCreateDepartmentScope(t *testing.T) {
	cases := []struct {
		name       string
		department string
		want       bool
	}{
		{"own department", "CS", true},
		{"unset department", "", true},
		{"other department", "EE", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := CanCreateEvent(head(), tc.department)
			if d.Allowed != tc.want {
				t.Fatalf("department %q: allowed=%v, want %v (%s)", tc.department, d.Allowed, tc.want, d.Reason)
			}
		})
	}
}

func TestHeadEventUpdateRequiresOwnershipOrLowerSnapshot(t *testing.T) {
	otherHead := uuid.New()
	cases := []struct {
		name string
		ev   EventView
		want bool
	}{
		{"own event", EventView{CreatorID: headID, CreatorRole: RoleHead, Department: "CS"}, true},
		{"employee-authored", EventView{CreatorID: employeeID, CreatorRole: RoleEmployee, Department: "CS"}, true},
		{"other head's event", EventView{CreatorID: otherHead, CreatorRole: RoleHead, Department: "CS"}, false},
		{"admin-authored", EventView{CreatorID: adminID, CreatorRole: RoleAdmin, Department: "CS"}, false},
		{"wrong department", EventView{CreatorID: employeeID, CreatorRole: RoleEmployee, Department: "EE"}, false},
		{"unset department", EventView{CreatorID: employeeID, CreatorRole: RoleEmployee}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if d := CanUpdateEvent(head(), tc.ev); d.Allowed != tc.want {
				t.Fatalf("allowed=%v, want %v (%s)", d.Allowed, tc.want, d.Reason)
			}
		})
	}
}

func TestEmployeeEventScope(t *testing.T) {
	own := EventView{CreatorID: employeeID, CreatorRole: RoleEmployee, Department: "CS"}
	foreign := EventView{CreatorID: uuid.New(), CreatorRole: RoleEmployee, Department: "CS"}

	if d := CanReadEvent(employee(), own); !d.Allowed {
		t.Fatalf("employee denied own event read: %s", d.Reason)
	}
	if d := CanReadEvent(employee(), foreign); d.Allowed {
		t.Fatal("employee read a foreign event")
	}
	if d := CanUpdateEvent(employee(), foreign); d.Allowed {
		t.Fatal("employee updated a foreign event")
	}
	// Owning a head-authored event is not enough for deletion.
	adopted := EventView{CreatorID: employeeID, CreatorRole: RoleHead, Department: "CS"}
	if d := CanDeleteEvent(employee(), adopted); d.Allowed {
		t.Fatal("employee deleted a head-authored event they own")
	}
}

func TestStudentNonPublicEventNeedsConfirmation(t *testing.T) {
	ev := EventView{CreatorID: employeeID, CreatorRole: RoleEmployee, IsPublic: false}
	if d := CanReadEvent(student(), ev); d.Allowed {
		t.Fatal("student read a non-public event without confirmation")
	}
	ev.Confirmed = true
	if d := CanReadEvent(student(), ev); !d.Allowed {
		t.Fatalf("confirmed student denied event read: %s", d.Reason)
	}
	ev = EventView{IsPublic: true}
	if d := CanReadEvent(student(), ev); !d.Allowed {
		t.Fatalf("student denied public event read: %s", d.Reason)
	}
}

func TestStudentsAreReadOnlyOnEvents(t *testing.T) {
	ev := EventView{CreatorID: studentID, CreatorRole: RoleStudent, IsPublic: true}
	if CanCreateEvent(student(), "").Allowed {
		t.Fatal("student created an event")
	}
	if CanUpdateEvent(student(), ev).Allowed {
		t.Fatal("student updated an event")
	}
	if CanDeleteEvent(student(), ev).Allowed {
		t.Fatal("student deleted an event")
	}
}

func TestHeadOpportunityMutationIsPosterOnly(t *testing.T) {
	// Department does not matter for mutation, only authorship does.
	own := OpportunityView{PostedByID: headID, PostedByRole: RoleHead, Department: "EE"}
	foreign := OpportunityView{PostedByID: uuid.New(), PostedByRole: RoleHead, Department: "CS"}

	if d := CanMutateOpportunity(head(), own); !d.Allowed {
		t.Fatalf("head denied own opportunity mutation: %s", d.Reason)
	}
	if d := CanMutateOpportunity(head(), foreign); d.Allowed {
		t.Fatal("head mutated a foreign opportunity in own department")
	}
}

func TestOpportunityReadScopes(t *testing.T) {
	op := OpportunityView{PostedByID: headID, PostedByRole: RoleHead, Department: "EE"}
	if d := CanReadOpportunity(head(), op); d.Allowed {
		t.Fatal("head read an opportunity outside their department")
	}
	if d := CanReadOpportunity(employee(), op); !d.Allowed {
		t.Fatalf("employee denied opportunity read: %s", d.Reason)
	}
	if d := CanReadOpportunity(student(), op); !d.Allowed {
		t.Fatalf("student denied opportunity read: %s", d.Reason)
	}
	if d := CanMutateOpportunity(employee(), op); d.Allowed {
		t.Fatal("employee mutated an opportunity")
	}
}

func TestNotificationRecipientOwnership(t *testing.T) {
	if d := CanAccessNotification(student(), studentID); !d.Allowed {
		t.Fatalf("recipient denied own notification: %s", d.Reason)
	}
	if d := CanAccessNotification(student(), uuid.New()); d.Allowed {
		t.Fatal("student read another recipient's notification")
	}
	if d := CanAccessNotification(admin(), uuid.New()); !d.Allowed {
		t.Fatalf("admin denied notification access: %s", d.Reason)
	}
}

func TestParseRoleRejectsUnknownValues(t *testing.T) {
	for _, s := range []string{"admin", "head", "employee", "student"} {
		if _, ok := ParseRole(s); !ok {
			t.Errorf("ParseRole rejected %q", s)
		}
	}
	for _, s := range []string{"", "root", "Admin", "staff"} {
		if _, ok := ParseRole(s); ok {
			t.Errorf("ParseRole accepted %q", s)
		}
	}
}
