package session

type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseActive
	PhaseReset
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseActive:
		return "active"
	case PhaseReset:
		return "reset"
	case PhaseClosed:
		return "closed"
	default:
		return "unknown"
	}
}

type Permission int

const (
	NotRequested Permission = iota
	Pending
	Granted
	Denied
)

func (p Permission) String() string {
	switch p {
	case NotRequested:
		return "not requested"
	case Pending:
		return "pending"
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	default:
		return "unknown"
	}
}
