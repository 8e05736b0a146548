package models

// TicketStatus is the closed set of canonical workflow states. The persisted
// identifiers (1,2,3,4,7,8) are only ever touched at the repository boundary;
// business logic compares TicketStatus values, never raw integers.
type TicketStatus string

const (
	StatusPending    TicketStatus = "PENDING"
	StatusInProgress TicketStatus = "IN_PROGRESS"
	StatusResolved   TicketStatus = "RESOLVED"
	StatusCannotFix  TicketStatus = "CANNOT_FIX"
	StatusReferred   TicketStatus = "REFERRED_TO_COMPUTER_CENTER"
	StatusDamaged    TicketStatus = "DAMAGED"
)

// lockedStatusIDs maps canonical states to their seeded row identifiers.
// The gaps (5,6) are historical; custom statuses are created above 100.
var lockedStatusIDs = map[TicketStatus]int64{
	StatusPending:    1,
	StatusInProgress: 2,
	StatusResolved:   3,
	StatusCannotFix:  4,
	StatusReferred:   7,
	StatusDamaged:    8,
}

var statusesByID = func() map[int64]TicketStatus {
	m := make(map[int64]TicketStatus, len(lockedStatusIDs))
	for s, id := range lockedStatusIDs {
		m[id] = s
	}
	return m
}()

// ID returns the persisted identifier for a canonical status
func (s TicketStatus) ID() int64 {
	return lockedStatusIDs[s]
}

// TicketStatusFromID maps a persisted identifier back to a canonical status.
// The second return value is false for custom (non-locked) status rows.
func TicketStatusFromID(id int64) (TicketStatus, bool) {
	s, ok := statusesByID[id]
	return s, ok
}

// IsLockedStatusID reports whether the identifier belongs to the seeded
// canonical set that can never be deleted or renamed away
func IsLockedStatusID(id int64) bool {
	_, ok := statusesByID[id]
	return ok
}

// Open reports whether the status counts as "open" for the equipment
// activation guard and the similar-ticket soft check
func (s TicketStatus) Open() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusReferred
}

// Terminal reports whether no further transitions exist from this status
func (s TicketStatus) Terminal() bool {
	return s == StatusResolved || s == StatusDamaged
}

// Label returns the human-readable name used in notifications and seeds
func (s TicketStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In progress"
	case StatusResolved:
		return "Resolved"
	case StatusCannotFix:
		return "Cannot fix"
	case StatusReferred:
		return "Referred to computer center"
	case StatusDamaged:
		return "Damaged"
	}
	return string(s)
}

// Status defines a taxonomy entry based on the 'statuses' table. The six
// locked rows carry the canonical workflow states; additional rows are
// user-created and purely informational.
type Status struct {
	ID          int64  `json:"id" db:"id" example:"1"`
	Name        string `json:"name" db:"name" example:"Pending"`
	Description string `json:"description" db:"description" example:"Reported, waiting for a technician"`
	Color       string `json:"color" db:"color" example:"#f0ad4e"`
}

// Locked reports whether this taxonomy entry is part of the canonical set
func (s *Status) Locked() bool {
	return IsLockedStatusID(s.ID)
}
