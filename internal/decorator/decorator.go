package decorator

import (
	"fmt"
	"time"
)

// ApplicationStatus is the approval state of a decorator's request to join
// the platform. It is unrelated to a booking's lifecycle status.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch ApplicationStatus(s) {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return ApplicationStatus(s), nil
	default:
		return "", fmt.Errorf("unknown application status: %s", s)
	}
}

type Decorator struct {
	ID                string            `json:"id"`
	UserEmail         string            `json:"userEmail"`
	Name              string            `json:"name,omitempty"`
	PhotoURL          string            `json:"photoUrl,omitempty"`
	Specializations   []string          `json:"specializations"`
	ServiceLocation   string            `json:"serviceLocation"`
	Available         bool              `json:"available"`
	Verified          bool              `json:"verified"`
	Rating            float64           `json:"rating"`
	ReviewCount       int               `json:"reviewCount"`
	ExperienceYears   int               `json:"experienceYears"`
	ApplicationStatus ApplicationStatus `json:"applicationStatus"`
	AppliedAt         time.Time         `json:"appliedAt"`
}
