// Package models defines the persistent entities of the marketplace
// and the pure status-transition rules that govern them.
package models

const (
	// DefaultLimit is the max number of rows retrieved per listing API call
	DefaultLimit = 50

	// CreatedAtField is the database field name for creation timestamps
	CreatedAtField = "created_at"
)

// ListOptions represents pagination and filtering options for list operations
type ListOptions struct {
	Limit          int  `json:"limit"`  // Number of items to return
	Offset         int  `json:"offset"` // Number of items to skip
	IncludeDeleted bool `json:"include_deleted"`
}

// WithDefaults returns list options with the limit clamped to a sane range.
func (o *ListOptions) WithDefaults() *ListOptions {
	opts := ListOptions{}
	if o != nil {
		opts = *o
	}
	if opts.Limit <= 0 || opts.Limit > DefaultLimit {
		opts.Limit = DefaultLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return &opts
}
