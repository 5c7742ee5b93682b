package entity

// UnassignedCenterID marks a center whose identifier has not been committed
// to storage yet.
const UnassignedCenterID = -1

// Center is a chapter of the network. CenterID is assigned exactly once by
// the identity allocator and is immutable afterwards.
type Center struct {
	CenterID    int64    `json:"centerID"`
	Location    Location `json:"location"`
	Name        string   `json:"name"`
	MemberCount int64    `json:"memberCount"`
	IsVerified  bool     `json:"isVerified"`
}

// NewCenter returns an unassigned center at the given location.
func NewCenter(loc Location, name string) *Center {
	return &Center{
		CenterID:    UnassignedCenterID,
		Location:    loc,
		Name:        name,
		MemberCount: 0,
		IsVerified:  false,
	}
}
