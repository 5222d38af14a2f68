package domain

// Role is a member's role within a circle. Roles are ordered:
// VIEWER < CONTRIBUTOR < ADMIN < OWNER.
type Role string

const (
	RoleViewer      Role = "VIEWER"
	RoleContributor Role = "CONTRIBUTOR"
	RoleAdmin       Role = "ADMIN"
	RoleOwner       Role = "OWNER"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleViewer, RoleContributor, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

// rank maps roles onto their ordering. Unknown roles rank below VIEWER.
func (r Role) rank() int {
	switch r {
	case RoleViewer:
		return 1
	case RoleContributor:
		return 2
	case RoleAdmin:
		return 3
	case RoleOwner:
		return 4
	}
	return 0
}

// AtLeast reports whether r grants at least the privileges of min.
func (r Role) AtLeast(min Role) bool { return r.rank() >= min.rank() }

// MemberStatus is the lifecycle state of a circle membership.
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "ACTIVE"
	MemberStatusInactive MemberStatus = "INACTIVE"
)

func (s MemberStatus) String() string { return string(s) }

func (s MemberStatus) IsValid() bool {
	return s == MemberStatusActive || s == MemberStatusInactive
}

// DocumentKind distinguishes the two concrete revisioned-document types.
type DocumentKind string

const (
	DocumentKindHandoff DocumentKind = "HANDOFF"
	DocumentKindBinder  DocumentKind = "BINDER"
)

func (k DocumentKind) String() string { return string(k) }

func (k DocumentKind) IsValid() bool {
	return k == DocumentKindHandoff || k == DocumentKindBinder
}

// DocumentStatus is the lifecycle status of a revisioned document.
// Handoffs move DRAFT -> PUBLISHED; binder items toggle ACTIVE/INACTIVE.
type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "DRAFT"
	DocumentStatusPublished DocumentStatus = "PUBLISHED"
	DocumentStatusActive    DocumentStatus = "ACTIVE"
	DocumentStatusInactive  DocumentStatus = "INACTIVE"
)

func (s DocumentStatus) String() string { return string(s) }

func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusDraft, DocumentStatusPublished, DocumentStatusActive, DocumentStatusInactive:
		return true
	}
	return false
}

// BinderItemType is the content type of a binder item created via triage.
type BinderItemType string

const (
	BinderItemTypeDoc  BinderItemType = "DOC"
	BinderItemTypeNote BinderItemType = "NOTE"
)

func (t BinderItemType) String() string { return string(t) }

func (t BinderItemType) IsValid() bool {
	return t == BinderItemTypeDoc || t == BinderItemTypeNote
}

// InboxKind is the capture type of an inbox item.
type InboxKind string

const (
	InboxKindPhoto InboxKind = "PHOTO"
	InboxKindPDF   InboxKind = "PDF"
	InboxKindAudio InboxKind = "AUDIO"
	InboxKindText  InboxKind = "TEXT"
)

func (k InboxKind) String() string { return string(k) }

func (k InboxKind) IsValid() bool {
	switch k {
	case InboxKindPhoto, InboxKindPDF, InboxKindAudio, InboxKindText:
		return true
	}
	return false
}

// IsFile reports whether the capture carries a file attachment kind.
func (k InboxKind) IsFile() bool {
	return k == InboxKindPhoto || k == InboxKindPDF
}

// InboxStatus is the triage state of an inbox item.
// TRIAGED and ARCHIVED are terminal with respect to destination assignment.
type InboxStatus string

const (
	InboxStatusNew      InboxStatus = "NEW"
	InboxStatusAssigned InboxStatus = "ASSIGNED"
	InboxStatusTriaged  InboxStatus = "TRIAGED"
	InboxStatusArchived InboxStatus = "ARCHIVED"
)

func (s InboxStatus) String() string { return string(s) }

func (s InboxStatus) IsValid() bool {
	switch s {
	case InboxStatusNew, InboxStatusAssigned, InboxStatusTriaged, InboxStatusArchived:
		return true
	}
	return false
}

// Triageable reports whether an item in this status may still be triaged.
func (s InboxStatus) Triageable() bool {
	return s == InboxStatusNew || s == InboxStatusAssigned
}

// TriageDestination is where a triaged inbox item is routed.
type TriageDestination string

const (
	TriageDestinationHandoff TriageDestination = "HANDOFF"
	TriageDestinationTask    TriageDestination = "TASK"
	TriageDestinationBinder  TriageDestination = "BINDER"
	TriageDestinationArchive TriageDestination = "ARCHIVE"
)

func (d TriageDestination) String() string { return string(d) }

func (d TriageDestination) IsValid() bool {
	switch d {
	case TriageDestinationHandoff, TriageDestinationTask, TriageDestinationBinder, TriageDestinationArchive:
		return true
	}
	return false
}

// TaskPriority is the urgency of a task.
type TaskPriority string

const (
	TaskPriorityLow  TaskPriority = "LOW"
	TaskPriorityMed  TaskPriority = "MED"
	TaskPriorityHigh TaskPriority = "HIGH"
)

func (p TaskPriority) String() string { return string(p) }

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMed, TaskPriorityHigh:
		return true
	}
	return false
}

// TaskStatus is the completion state of a task.
type TaskStatus string

const (
	TaskStatusOpen TaskStatus = "OPEN"
	TaskStatusDone TaskStatus = "DONE"
)

func (s TaskStatus) String() string { return string(s) }

func (s TaskStatus) IsValid() bool {
	return s == TaskStatusOpen || s == TaskStatusDone
}

// OutboxStatus is the delivery state of a notification outbox entry.
type OutboxStatus string

const (
	OutboxStatusPending OutboxStatus = "PENDING"
	OutboxStatusSent    OutboxStatus = "SENT"
	OutboxStatusFailed  OutboxStatus = "FAILED"
)

func (s OutboxStatus) String() string { return string(s) }

func (s OutboxStatus) IsValid() bool {
	switch s {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return true
	}
	return false
}

// Resolved reports whether the entry has reached a terminal delivery state.
func (s OutboxStatus) Resolved() bool {
	return s == OutboxStatusSent || s == OutboxStatusFailed
}
