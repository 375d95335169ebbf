package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/workielk/workie-api/internal/types"
)

// Field names for the job model
const (
	// JobStatusField is the field name for job status
	JobStatusField = "status"
	// JobApplicationsCountField is the field name for the applications counter
	JobApplicationsCountField = "applications_count"
)

// DefaultMaxApplicants is the applicant cap applied when a job does not set one
const DefaultMaxApplicants = 50

// JobStatus represents the current state of a job
type JobStatus string

// Job status constants
const (
	// JobStatusUnknown represents an unknown or invalid job status
	JobStatusUnknown JobStatus = "unknown"
	// JobStatusOpen indicates the job is accepting applications
	JobStatusOpen JobStatus = "open"
	// JobStatusInProgress indicates a worker has been assigned and work is underway
	JobStatusInProgress JobStatus = "in-progress"
	// JobStatusCompleted indicates the work has been finished
	JobStatusCompleted JobStatus = "completed"
	// JobStatusCancelled indicates the job was cancelled
	JobStatusCancelled JobStatus = "cancelled"
	// JobStatusPaused indicates the job is temporarily not accepting applications
	JobStatusPaused JobStatus = "paused"
)

// JobCategory represents one of the fixed service categories
type JobCategory string

// Job category constants
const (
	CategoryPlumbing   JobCategory = "plumbing"
	CategoryElectrical JobCategory = "electrical"
	CategoryCarpentry  JobCategory = "carpentry"
	CategoryPainting   JobCategory = "painting"
	CategoryCleaning   JobCategory = "cleaning"
	CategoryGardening  JobCategory = "gardening"
	CategoryMasonry    JobCategory = "masonry"
	CategoryMoving     JobCategory = "moving"
	CategoryRepairs    JobCategory = "repairs"
	CategoryTutoring   JobCategory = "tutoring"
	CategoryOther      JobCategory = "other"
)

// BudgetType represents how a job's budget is quoted
type BudgetType string

// Budget type constants
const (
	BudgetTypeFixed      BudgetType = "fixed"
	BudgetTypeHourly     BudgetType = "hourly"
	BudgetTypeNegotiable BudgetType = "negotiable"
)

// JobUrgency represents how soon the work is needed
type JobUrgency string

// Urgency constants
const (
	UrgencyLow    JobUrgency = "low"
	UrgencyMedium JobUrgency = "medium"
	UrgencyHigh   JobUrgency = "high"
	UrgencyUrgent JobUrgency = "urgent"
)

// ExperienceLevel represents the experience a job requires of a worker
type ExperienceLevel string

// Experience level constants
const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceExpert       ExperienceLevel = "expert"
	ExperienceAny          ExperienceLevel = "any"
)

// Budget represents how much a client is offering for a job
type Budget struct {
	Amount   float64    `json:"amount"`
	Currency string     `json:"currency"`
	Type     BudgetType `json:"type"`
}

// Location represents where the work takes place
type Location struct {
	Address   string   `json:"address"`
	City      string   `json:"city"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Job represents a unit of work posted by a client
type Job struct {
	gorm.Model
	Title             string          `json:"title" gorm:"not null;index"`
	Description       string          `json:"description" gorm:"type:text"`
	Category          JobCategory     `json:"category" gorm:"not null;index"`
	Budget            Budget          `json:"budget" gorm:"embedded;embeddedPrefix:budget_"`
	Location          Location        `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	StartDate         *time.Time      `json:"start_date,omitempty"`
	EndDate           *time.Time      `json:"end_date,omitempty"`
	Urgency           JobUrgency      `json:"urgency" gorm:"index"`
	ExperienceLevel   ExperienceLevel `json:"experience_level"`
	Status            JobStatus       `json:"status" gorm:"not null;index"`
	ClientID          uint            `json:"client_id" gorm:"not null;index"` // immutable after creation
	AssignedWorkerID  *uint           `json:"assigned_worker_id,omitempty" gorm:"index"`
	ApplicationsCount int             `json:"applications_count" gorm:"not null;default:0"`
	MaxApplicants     int             `json:"max_applicants" gorm:"not null;default:50"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty"`
	IsActive          bool            `json:"is_active" gorm:"not null;default:true;index"`
	CreatedAt         time.Time       `json:"created_at" gorm:"index"`
}

// jobTransitions is the status transition table. Statuses absent from
// the map (completed, cancelled) are terminal.
var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusOpen:       {JobStatusInProgress, JobStatusPaused, JobStatusCancelled},
	JobStatusPaused:     {JobStatusOpen, JobStatusCancelled},
	JobStatusInProgress: {JobStatusCompleted, JobStatusCancelled},
}

// CanTransitionTo reports whether the transition table permits moving
// from the receiver status to next.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, allowed := range jobTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status permits no outgoing transition.
func (s JobStatus) IsTerminal() bool {
	return len(jobTransitions[s]) == 0
}

// ValidateJobTransition checks a requested status change against the
// transition table. The record itself is never touched here.
func ValidateJobTransition(from, to JobStatus) error {
	if from == to {
		return nil
	}
	if !from.CanTransitionTo(to) {
		return &types.InvalidTransitionError{
			Entity: "job",
			From:   from.String(),
			To:     to.String(),
		}
	}
	return nil
}

// String returns the string representation of the job status
func (s JobStatus) String() string {
	return string(s)
}

// ParseJobStatus converts a string to a JobStatus type
func ParseJobStatus(str string) (JobStatus, error) {
	switch JobStatus(str) {
	case JobStatusOpen, JobStatusInProgress, JobStatusCompleted, JobStatusCancelled, JobStatusPaused:
		return JobStatus(str), nil
	default:
		return JobStatusUnknown, fmt.Errorf("invalid job status: %s", str)
	}
}

// UnmarshalJSON implements json.Unmarshaler for JobStatus
func (s *JobStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseJobStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// ParseJobCategory converts a string to a JobCategory type
func ParseJobCategory(str string) (JobCategory, error) {
	switch JobCategory(str) {
	case CategoryPlumbing, CategoryElectrical, CategoryCarpentry, CategoryPainting,
		CategoryCleaning, CategoryGardening, CategoryMasonry, CategoryMoving,
		CategoryRepairs, CategoryTutoring, CategoryOther:
		return JobCategory(str), nil
	default:
		return "", fmt.Errorf("invalid job category: %s", str)
	}
}

// ParseBudgetType converts a string to a BudgetType type
func ParseBudgetType(str string) (BudgetType, error) {
	switch BudgetType(str) {
	case BudgetTypeFixed, BudgetTypeHourly, BudgetTypeNegotiable:
		return BudgetType(str), nil
	default:
		return "", fmt.Errorf("invalid budget type: %s", str)
	}
}

// ParseJobUrgency converts a string to a JobUrgency type
func ParseJobUrgency(str string) (JobUrgency, error) {
	switch JobUrgency(str) {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyUrgent:
		return JobUrgency(str), nil
	default:
		return "", fmt.Errorf("invalid urgency: %s", str)
	}
}

// ParseExperienceLevel converts a string to an ExperienceLevel type
func ParseExperienceLevel(str string) (ExperienceLevel, error) {
	switch ExperienceLevel(str) {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceExpert, ExperienceAny:
		return ExperienceLevel(str), nil
	default:
		return "", fmt.Errorf("invalid experience level: %s", str)
	}
}

// Validate ensures that the job data is valid
func (j *Job) Validate() error {
	if j.Title == "" {
		return fmt.Errorf("job title cannot be empty")
	}
	if j.ClientID == 0 {
		return fmt.Errorf("job client_id cannot be zero")
	}
	if _, err := ParseJobCategory(string(j.Category)); err != nil {
		return err
	}
	if j.Budget.Amount < 0 {
		return fmt.Errorf("job budget amount cannot be negative")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new job
func (j *Job) BeforeCreate(_ *gorm.DB) error {
	if j.Status == "" {
		j.Status = JobStatusOpen
	}
	if j.MaxApplicants == 0 {
		j.MaxApplicants = DefaultMaxApplicants
	}
	if j.Urgency == "" {
		j.Urgency = UrgencyMedium
	}
	if j.ExperienceLevel == "" {
		j.ExperienceLevel = ExperienceAny
	}
	j.IsActive = true
	return j.Validate()
}
