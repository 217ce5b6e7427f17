package arango

import "strconv"

// Status is the load state of a collection.
type Status int

const (
	StatusNewBorn       Status = 1
	StatusUnloaded      Status = 2
	StatusLoaded        Status = 3
	StatusBeingUnloaded Status = 4

	maxUncorrupted Status = 5
)

func (s Status) NewBorn() bool {
	return s == StatusNewBorn
}

func (s Status) Unloaded() bool {
	return s == StatusUnloaded
}

func (s Status) Loaded() bool {
	return s == StatusLoaded
}

func (s Status) BeingUnloaded() bool {
	return s == StatusBeingUnloaded
}

// Corrupted reports codes above the known range.
func (s Status) Corrupted() bool {
	return s > maxUncorrupted
}

func (s Status) String() string {
	switch {
	case s.NewBorn():
		return "new_born"
	case s.Unloaded():
		return "unloaded"
	case s.Loaded():
		return "loaded"
	case s.BeingUnloaded():
		return "being_unloaded"
	case s.Corrupted():
		return "corrupted"
	default:
		return "status_" + strconv.Itoa(int(s))
	}
}
