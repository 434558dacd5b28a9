package domain

import "time"

// MatchStatus enumerates the match-record lifecycle. The transitions between
// these states are driven by an external notification system; this service
// only stores and reports them.
type MatchStatus string

const (
	MatchPending        MatchStatus = "pending"
	MatchNotifiedA      MatchStatus = "notified_a"
	MatchAInterested    MatchStatus = "a_interested"
	MatchNotifiedB      MatchStatus = "notified_b"
	MatchBInterested    MatchStatus = "b_interested"
	MatchBothInterested MatchStatus = "both_interested"
	MatchIntroSent      MatchStatus = "intro_sent"
	MatchADeclined      MatchStatus = "a_declined"
	MatchBDeclined      MatchStatus = "b_declined"
	MatchCompleted      MatchStatus = "completed"
	MatchExpired        MatchStatus = "expired"
)

// CompatibilityLevel buckets a total match score into a coarse label.
type CompatibilityLevel string

const (
	CompatibilityExceptional CompatibilityLevel = "exceptional"
	CompatibilityStrong      CompatibilityLevel = "strong"
	CompatibilityGood        CompatibilityLevel = "good"
	CompatibilityModerate    CompatibilityLevel = "moderate"
	CompatibilityLow         CompatibilityLevel = "low"
)

// LevelForScore derives the compatibility level from a total score.
func LevelForScore(total float64) CompatibilityLevel {
	switch {
	case total >= 85:
		return CompatibilityExceptional
	case total >= 70:
		return CompatibilityStrong
	case total >= 55:
		return CompatibilityGood
	case total >= 40:
		return CompatibilityModerate
	default:
		return CompatibilityLow
	}
}

// DimensionScores holds the seven named compatibility sub-scores.
type DimensionScores struct {
	Skills        float64 `json:"skills"`
	Stage         float64 `json:"stage"`
	Communication float64 `json:"communication"`
	Vision        float64 `json:"vision"`
	Values        float64 `json:"values"`
	Geo           float64 `json:"geo"`
	Advantages    float64 `json:"advantages"`
}

// FounderMatch is a pairwise score record between two profiles.
type FounderMatch struct {
	ID                 string             `json:"id"`
	ProfileA           string             `json:"profile_a"`
	ProfileB           string             `json:"profile_b"`
	Scores             DimensionScores    `json:"scores"`
	TotalScore         float64            `json:"total_score"`
	CompatibilityLevel CompatibilityLevel `json:"compatibility_level"`
	Status             MatchStatus        `json:"status"`
	CreatedAt          time.Time          `json:"created_at"`
}
