package rank

// Verification ranks. A user's verificationLevel is always one of these;
// new users start at NormalUser and only the admin principal can raise it.
const (
	NormalUser = 45
	Sevak      = 54
	// SeniorSevak sits between Sevak and Brahmachari; it carries no special
	// privileges today but is a valid verification level.
	SeniorSevak = 63
	Brahmachari = 108
	Swami       = 1008
	GlobalHead  = 1000008
)

// AdminCutoff is the level below which a rank is considered non-administrative.
const AdminCutoff = 107

// EndorserFloor is the minimum verification level required to endorse an event.
const EndorserFloor = Sevak

// TierDescale normalizes raw tier scores into a small floating-point range.
const TierDescale = 1081008

// Id spaces for random identifier allocation. Each entity kind draws from its
// own range, sized so that collisions stay rare relative to the expected
// population. A collision is still possible and is handled by the allocator's
// conditional-create retry loop, never assumed away.
const (
	CenterIDSpace int64 = 9108100899
	// EventIDSpace keeps the original numerology but is clamped into int64 range.
	EventIDSpace int64 = 9108100899100810008
)

// Event categories.
const (
	Satsang = 91
	Bhiksha = 92
)
