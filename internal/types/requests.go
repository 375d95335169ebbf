package types

// CreateUserRequest is the payload for registering a user.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// CreateJobRequest is the payload for posting a new job.
type CreateJobRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	BudgetAmount    float64  `json:"budget_amount"`
	BudgetCurrency  string   `json:"budget_currency"`
	BudgetType      string   `json:"budget_type"`
	Address         string   `json:"address"`
	City            string   `json:"city"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	StartDate       string   `json:"start_date,omitempty"`
	EndDate         string   `json:"end_date,omitempty"`
	Urgency         string   `json:"urgency"`
	ExperienceLevel string   `json:"experience_level"`
	MaxApplicants   int      `json:"max_applicants,omitempty"`
}

// UpdateJobRequest is the payload for mutating a job. All fields are
// optional; the status guard decides whether the combination is legal
// for the job's current status.
type UpdateJobRequest struct {
	Title            *string  `json:"title,omitempty"`
	Description      *string  `json:"description,omitempty"`
	Category         *string  `json:"category,omitempty"`
	BudgetAmount     *float64 `json:"budget_amount,omitempty"`
	BudgetCurrency   *string  `json:"budget_currency,omitempty"`
	BudgetType       *string  `json:"budget_type,omitempty"`
	Address          *string  `json:"address,omitempty"`
	City             *string  `json:"city,omitempty"`
	Urgency          *string  `json:"urgency,omitempty"`
	ExperienceLevel  *string  `json:"experience_level,omitempty"`
	Status           *string  `json:"status,omitempty"`
	AssignedWorkerID *uint    `json:"assigned_worker_id,omitempty"`
}

// TouchesRestrictedFields reports whether the update changes any of
// the fields that are frozen while a job is in progress.
func (r *UpdateJobRequest) TouchesRestrictedFields() bool {
	return r.Category != nil ||
		r.BudgetAmount != nil || r.BudgetCurrency != nil || r.BudgetType != nil ||
		r.Address != nil || r.City != nil
}

// AssignWorkerRequest is the payload for assigning a worker to a job.
type AssignWorkerRequest struct {
	WorkerID uint `json:"worker_id"`
}

// ApplyRequest is the payload for a worker applying to a job.
type ApplyRequest struct {
	CoverLetter       string   `json:"cover_letter"`
	ProposedAmount    float64  `json:"proposed_amount"`
	ProposedCurrency  string   `json:"proposed_currency"`
	EstimatedDuration string   `json:"estimated_duration,omitempty"`
	AvailableFrom     string   `json:"available_from,omitempty"`
	AvailableTo       string   `json:"available_to,omitempty"`
	Portfolio         []string `json:"portfolio,omitempty"`
}

// ReleasePaymentRequest is the payload for releasing payment on a
// completed application.
type ReleasePaymentRequest struct {
	PaymentMethod string  `json:"payment_method"`
	Amount        float64 `json:"amount,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// SubmitReviewRequest is the payload for the client's review of the
// worker's engagement.
type SubmitReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}
