package dashboard

// Status is the health shown in the status badge.
type Status int

const (
	StatusOffline Status = iota
	StatusWarning
	StatusOnline
)

func (s Status) String() string {
	switch s {
	case StatusOnline:
		return "Online"
	case StatusWarning:
		return "Warning"
	default:
		return "Offline"
	}
}

// Class returns the badge style class.
func (s Status) Class() string {
	switch s {
	case StatusOnline:
		return ClassStatusOnline
	case StatusWarning:
		return ClassStatusWarning
	default:
		return ClassStatusOffline
	}
}

// DeriveStatus is Offline without miner data or with no miners connected,
// Warning below half the peak miner count, and Online otherwise.
func DeriveStatus(s Snapshot) Status {
	if s.Miners == nil || s.Miners.Now == 0 {
		return StatusOffline
	}
	if s.Miners.Now < s.Miners.Max*0.5 {
		return StatusWarning
	}
	return StatusOnline
}
