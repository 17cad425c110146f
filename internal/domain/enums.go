package domain

// ApplicationStatus is the lifecycle state of a tracked application.
type ApplicationStatus string

const (
	StatusPlanned  ApplicationStatus = "planned"
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// Terminal reports whether no further transition is allowed from s.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransition reports whether moving from s to next is a legal step.
// The only legal steps are planned→pending, pending→approved and
// pending→rejected.
func (s ApplicationStatus) CanTransition(next ApplicationStatus) bool {
	switch s {
	case StatusPlanned:
		return next == StatusPending
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	}
	return false
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ApplicationType classifies the tracked opportunity. The same values are
// used for events spawned from approved applications.
type ApplicationType string

const (
	TypeInternship ApplicationType = "internship"
	TypeHackathon  ApplicationType = "hackathon"
	TypeIdeathon   ApplicationType = "ideathon"
	TypeCareerDay  ApplicationType = "career_day"
	TypeCourse     ApplicationType = "course"
	TypeOther      ApplicationType = "other"
)

// AllApplicationTypes lists the selectable types in form order.
var AllApplicationTypes = []ApplicationType{
	TypeInternship, TypeHackathon, TypeIdeathon, TypeCareerDay, TypeCourse, TypeOther,
}

// Label returns the product's display name for the type. Labels stay in
// Turkish; synthesized event names depend on them.
func (t ApplicationType) Label() string {
	switch t {
	case TypeHackathon:
		return "Hackathon"
	case TypeInternship:
		return "Staj"
	case TypeIdeathon:
		return "İdeathon"
	case TypeCareerDay:
		return "Career Day"
	case TypeCourse:
		return "Eğitim"
	}
	return "Diğer"
}

// Icon returns the emoji shown next to the type.
func (t ApplicationType) Icon() string {
	switch t {
	case TypeHackathon:
		return "🏆"
	case TypeInternship:
		return "💼"
	case TypeIdeathon:
		return "💡"
	case TypeCareerDay:
		return "🤝"
	case TypeCourse:
		return "🎓"
	}
	return "📅"
}

// TodoSize classifies a todo by weight. One unfinished "big" todo is
// surfaced as the day's primary focus; the caps on medium and small are
// display conventions, not storage constraints.
type TodoSize string

const (
	SizeBig    TodoSize = "big"
	SizeMedium TodoSize = "medium"
	SizeSmall  TodoSize = "small"
)

func (s TodoSize) Valid() bool {
	return s == SizeBig || s == SizeMedium || s == SizeSmall
}
