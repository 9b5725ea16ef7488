package schedule

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusBooked    Status = "booked"
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// OccupyingStatuses are the statuses that reserve calendar space. A
// cancelled booking frees its range.
var OccupyingStatuses = []string{
	string(StatusBooked),
	string(StatusPending),
	string(StatusConfirmed),
}

func (s Status) Occupies() bool {
	switch s {
	case StatusBooked, StatusPending, StatusConfirmed:
		return true
	}
	return false
}

func IsKnownStatus(s string) bool {
	switch Status(s) {
	case StatusBooked, StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// InitialStatus is what a patient-submitted reservation starts as.
func InitialStatus() Status {
	return StatusBooked
}
