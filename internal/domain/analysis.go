package domain

// EmailAnalysis is the structured verdict decoded from an email thread.
// ConfidenceScore buckets: 1-2 pass, 3-4 soft pass, 5-6 lukewarm,
// 7-8 genuine interest, 9-10 high priority.
type EmailAnalysis struct {
	HotTake           *string `json:"hotTake"`
	RealMeaning       string  `json:"realMeaning"`
	ConfidenceScore   int     `json:"confidenceScore"`
	ConfidenceLabel   string  `json:"confidenceLabel"`
	NextMove          string  `json:"nextMove"`
	ShouldFollowUp    bool    `json:"shouldFollowUp"`
	FollowUpReasoning string  `json:"followUpReasoning"`
}

// DeckAnalysis is the structured pitch-deck summary produced upstream and
// threaded into the voice-agent prompt builder. Not persisted here.
type DeckAnalysis struct {
	CompanyName    string   `json:"companyName"`
	Summary        string   `json:"summary"`
	Thesis         string   `json:"thesis"`
	MarketSize     string   `json:"marketSize"`
	ReadinessScore int      `json:"readinessScore"`
	StrongPoints   []string `json:"strongPoints"`
	RedFlags       []string `json:"redFlags"`
	TopQuestions   []string `json:"topQuestions"`
}

// BackfillResult reports the outcome of one tagline backfill run.
// Processed plus Errors always equals Total.
type BackfillResult struct {
	Processed int `json:"processed"`
	Errors    int `json:"errors"`
	Total     int `json:"total"`
}
