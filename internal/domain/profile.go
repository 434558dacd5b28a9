package domain

import "time"

// ProfileStatus enumerates the admin review lifecycle of a founder profile.
type ProfileStatus string

const (
	ProfileStatusNew       ProfileStatus = "new"
	ProfileStatusReviewed  ProfileStatus = "reviewed"
	ProfileStatusMatched   ProfileStatus = "matched"
	ProfileStatusContacted ProfileStatus = "contacted"
)

// ValidProfileStatus reports whether the value belongs to the fixed status set.
func ValidProfileStatus(value string) bool {
	switch ProfileStatus(value) {
	case ProfileStatusNew, ProfileStatusReviewed, ProfileStatusMatched, ProfileStatusContacted:
		return true
	}
	return false
}

// FounderProfile is the core intake record used for matching and admin review.
type FounderProfile struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Email            string        `json:"email"`
	Phone            string        `json:"phone"`
	IdeaDescription  string        `json:"idea_description"`
	TargetCustomer   string        `json:"target_customer"`
	Stage            string        `json:"stage"`
	Skills           []string      `json:"skills"`
	LookingFor       []string      `json:"looking_for"`
	Location         string        `json:"location"`
	Timeline         string        `json:"timeline"`
	Commitment       string        `json:"commitment"`
	Tagline          *string       `json:"tagline"`
	SeriousnessScore *int          `json:"seriousness_score"`
	Embedding        []float32     `json:"-"`
	Matched          bool          `json:"matched"`
	Status           ProfileStatus `json:"status"`
	AdminNotes       string        `json:"admin_notes"`
	MatchSentAt      *time.Time    `json:"match_sent_at"`
	CreatedAt        time.Time     `json:"created_at"`
}

// PublicProfile is the allow-listed projection safe to expose without auth.
// Contact details and admin fields are intentionally absent.
type PublicProfile struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Tagline         *string   `json:"tagline"`
	IdeaDescription string    `json:"idea_description"`
	TargetCustomer  string    `json:"target_customer"`
	Stage           string    `json:"stage"`
	Skills          []string  `json:"skills"`
	LookingFor      []string  `json:"looking_for"`
	Location        string    `json:"location"`
	Timeline        string    `json:"timeline"`
	Commitment      string    `json:"commitment"`
	CreatedAt       time.Time `json:"created_at"`
}

// Public strips a full profile down to its shareable projection.
func (p FounderProfile) Public() PublicProfile {
	return PublicProfile{
		ID:              p.ID,
		Name:            p.Name,
		Tagline:         p.Tagline,
		IdeaDescription: p.IdeaDescription,
		TargetCustomer:  p.TargetCustomer,
		Stage:           p.Stage,
		Skills:          p.Skills,
		LookingFor:      p.LookingFor,
		Location:        p.Location,
		Timeline:        p.Timeline,
		Commitment:      p.Commitment,
		CreatedAt:       p.CreatedAt,
	}
}

// ProfileUpdate carries the subset of admin-editable fields. Nil means
// "leave unchanged"; an update with all three nil is a rejected no-op.
type ProfileUpdate struct {
	Matched    *bool
	Status     *string
	AdminNotes *string
}

// Empty reports whether the update touches no recognized field.
func (u ProfileUpdate) Empty() bool {
	return u.Matched == nil && u.Status == nil && u.AdminNotes == nil
}
