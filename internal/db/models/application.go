package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/workielk/workie-api/internal/types"
)

// Field names for the application model
const (
	// ApplicationStatusField is the field name for application status
	ApplicationStatusField = "status"
)

// ApplicationStatus represents the current state of an application
type ApplicationStatus string

// Application status constants
const (
	// ApplicationStatusUnknown represents an unknown or invalid application status
	ApplicationStatusUnknown ApplicationStatus = "unknown"
	// ApplicationStatusPending indicates the application awaits the client's decision
	ApplicationStatusPending ApplicationStatus = "pending"
	// ApplicationStatusAccepted indicates the client accepted the application
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	// ApplicationStatusRejected indicates the client rejected the application
	ApplicationStatusRejected ApplicationStatus = "rejected"
	// ApplicationStatusWithdrawn indicates the worker withdrew the application
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"
	// ApplicationStatusInProgress indicates the worker has started the work
	ApplicationStatusInProgress ApplicationStatus = "in-progress"
	// ApplicationStatusCompleted indicates the worker has finished the work
	ApplicationStatusCompleted ApplicationStatus = "completed"
	// ApplicationStatusPaymentReleased indicates the client released payment
	ApplicationStatusPaymentReleased ApplicationStatus = "payment-released"
	// ApplicationStatusPaymentConfirmed indicates the worker confirmed receipt of payment
	ApplicationStatusPaymentConfirmed ApplicationStatus = "payment-confirmed"
	// ApplicationStatusReviewed indicates the client submitted a review
	ApplicationStatusReviewed ApplicationStatus = "reviewed"
	// ApplicationStatusClosed indicates the engagement is fully settled
	ApplicationStatusClosed ApplicationStatus = "closed"
)

// PaymentMethod represents how a payment is made
type PaymentMethod string

// Payment method constants
const (
	// PaymentMethodOnline indicates payment through the platform
	PaymentMethodOnline PaymentMethod = "online"
	// PaymentMethodPhysical indicates payment in person
	PaymentMethodPhysical PaymentMethod = "physical"
)

// ProposedPrice represents a worker's bid amount
type ProposedPrice struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Payment is the payment sub-record of an application. A zero Method
// means no payment has been released yet.
type Payment struct {
	Method      PaymentMethod `json:"method,omitempty"`
	Amount      float64       `json:"amount"`
	ReleasedAt  *time.Time    `json:"released_at,omitempty"`
	ConfirmedAt *time.Time    `json:"confirmed_at,omitempty"`
	Notes       string        `json:"notes,omitempty"`
}

// Review is the review sub-record of an application. A zero Rating
// means no review has been submitted yet.
type Review struct {
	Rating      int        `json:"rating"`
	Comment     string     `json:"comment,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// StringSlice stores a list of strings as a JSON column
type StringSlice []string

// Scan implements the sql.Scanner interface for StringSlice
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported type for StringSlice: %T", value)
	}
}

// Value implements the driver.Valuer interface for StringSlice
func (s StringSlice) Value() (interface{}, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Application represents one worker's bid on a job
type Application struct {
	gorm.Model
	JobID             uint              `json:"job_id" gorm:"not null;index:idx_app_job_worker"`
	WorkerID          uint              `json:"worker_id" gorm:"not null;index:idx_app_job_worker"`
	CoverLetter       string            `json:"cover_letter" gorm:"type:text"`
	ProposedPrice     ProposedPrice     `json:"proposed_price" gorm:"embedded;embeddedPrefix:proposed_"`
	EstimatedDuration string            `json:"estimated_duration,omitempty"`
	AvailableFrom     *time.Time        `json:"available_from,omitempty"`
	AvailableTo       *time.Time        `json:"available_to,omitempty"`
	Portfolio         StringSlice       `json:"portfolio,omitempty" gorm:"type:text"`
	Status            ApplicationStatus `json:"status" gorm:"not null;index"`
	RespondedAt       *time.Time        `json:"responded_at,omitempty"`
	Payment           Payment           `json:"payment" gorm:"embedded;embeddedPrefix:payment_"`
	Review            Review            `json:"review" gorm:"embedded;embeddedPrefix:review_"`
	IsActive          bool              `json:"is_active" gorm:"not null;default:true;index"`
	CreatedAt         time.Time         `json:"created_at" gorm:"index"`
}

// ApplicationAction is an actor-triggered lifecycle action
type ApplicationAction string

// Application lifecycle actions
const (
	ActionWithdraw       ApplicationAction = "withdraw"
	ActionReject         ApplicationAction = "reject"
	ActionAccept         ApplicationAction = "accept"
	ActionStartWork      ApplicationAction = "start-work"
	ActionCompleteWork   ApplicationAction = "complete-work"
	ActionReleasePayment ApplicationAction = "release-payment"
	ActionConfirmPayment ApplicationAction = "confirm-payment"
	ActionSubmitReview   ApplicationAction = "submit-review"
	ActionCloseJob       ApplicationAction = "close-job"
)

// actionRule describes which statuses permit an action, which status
// it leads to, and the verb used in error messages.
type actionRule struct {
	verb string
	from []ApplicationStatus
	to   ApplicationStatus
}

var applicationActions = map[ApplicationAction]actionRule{
	ActionWithdraw: {
		verb: "withdraw",
		from: []ApplicationStatus{ApplicationStatusPending},
		to:   ApplicationStatusWithdrawn,
	},
	ActionReject: {
		verb: "reject",
		from: []ApplicationStatus{ApplicationStatusPending},
		to:   ApplicationStatusRejected,
	},
	ActionAccept: {
		verb: "accept",
		from: []ApplicationStatus{ApplicationStatusPending},
		to:   ApplicationStatusAccepted,
	},
	ActionStartWork: {
		verb: "start work",
		from: []ApplicationStatus{ApplicationStatusAccepted},
		to:   ApplicationStatusInProgress,
	},
	ActionCompleteWork: {
		verb: "complete work",
		from: []ApplicationStatus{ApplicationStatusInProgress},
		to:   ApplicationStatusCompleted,
	},
	ActionReleasePayment: {
		verb: "release payment",
		from: []ApplicationStatus{ApplicationStatusCompleted},
		to:   ApplicationStatusPaymentReleased,
	},
	ActionConfirmPayment: {
		verb: "confirm payment",
		from: []ApplicationStatus{ApplicationStatusPaymentReleased},
		to:   ApplicationStatusPaymentConfirmed,
	},
	// The loose predecessor set for reviews accommodates flows where
	// payment confirmation is skipped or delayed.
	ActionSubmitReview: {
		verb: "submit a review",
		from: []ApplicationStatus{
			ApplicationStatusPaymentConfirmed,
			ApplicationStatusCompleted,
			ApplicationStatusInProgress,
		},
		to: ApplicationStatusReviewed,
	},
	ActionCloseJob: {
		verb: "close the job",
		from: []ApplicationStatus{ApplicationStatusReviewed, ApplicationStatusPaymentConfirmed},
		to:   ApplicationStatusClosed,
	},
}

// NextStatus returns the status an action leads to.
func (a ApplicationAction) NextStatus() ApplicationStatus {
	return applicationActions[a].to
}

// ValidateApplicationAction checks whether the application's current
// status permits the action. The returned error names the current
// status so clients can render actionable feedback.
func ValidateApplicationAction(current ApplicationStatus, action ApplicationAction) error {
	rule, ok := applicationActions[action]
	if !ok {
		return fmt.Errorf("unknown application action: %s", action)
	}
	for _, from := range rule.from {
		if from == current {
			return nil
		}
	}

	allowed := make([]string, len(rule.from))
	for i, from := range rule.from {
		allowed[i] = from.String()
	}
	return &types.InvalidTransitionError{
		Entity: "application",
		From:   current.String(),
		To:     rule.to.String(),
		Reason: fmt.Sprintf("Cannot %s on %s applications", rule.verb, strings.Join(allowed, " or ")),
	}
}

// String returns the string representation of the application status
func (s ApplicationStatus) String() string {
	return string(s)
}

// ParseApplicationStatus converts a string to an ApplicationStatus type
func ParseApplicationStatus(str string) (ApplicationStatus, error) {
	switch ApplicationStatus(str) {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected,
		ApplicationStatusWithdrawn, ApplicationStatusInProgress, ApplicationStatusCompleted,
		ApplicationStatusPaymentReleased, ApplicationStatusPaymentConfirmed,
		ApplicationStatusReviewed, ApplicationStatusClosed:
		return ApplicationStatus(str), nil
	default:
		return ApplicationStatusUnknown, fmt.Errorf("invalid application status: %s", str)
	}
}

// UnmarshalJSON implements json.Unmarshaler for ApplicationStatus
func (s *ApplicationStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseApplicationStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// ParsePaymentMethod converts a string to a PaymentMethod type
func ParsePaymentMethod(str string) (PaymentMethod, error) {
	switch PaymentMethod(str) {
	case PaymentMethodOnline, PaymentMethodPhysical:
		return PaymentMethod(str), nil
	default:
		return "", fmt.Errorf("invalid payment method: %s", str)
	}
}

// Validate ensures the application data is valid
func (a *Application) Validate() error {
	if a.JobID == 0 {
		return fmt.Errorf("application job_id cannot be zero")
	}
	if a.WorkerID == 0 {
		return fmt.Errorf("application worker_id cannot be zero")
	}
	if a.ProposedPrice.Amount < 0 {
		return fmt.Errorf("application proposed price cannot be negative")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new application
func (a *Application) BeforeCreate(_ *gorm.DB) error {
	if a.Status == "" {
		a.Status = ApplicationStatusPending
	}
	a.IsActive = true
	return a.Validate()
}
