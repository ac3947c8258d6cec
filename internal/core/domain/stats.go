package domain

// Stats is the derived report the dashboard consumes. It is recomputed from
// the full session list on every request and never persisted. Nullable
// aggregates are pointers: nil means the underlying field was never present,
// which keeps absence distinct from a legitimate zero.
type Stats struct {
	TotalSessions int `json:"total_sessions"`
	RangeSessions int `json:"range_sessions"`
	RoundsPlayed  int `json:"rounds_played"`

	AvgFeel    *float64 `json:"avg_feel"`
	Streak     int      `json:"streak"`
	TotalBalls int      `json:"total_balls"`

	BestScore   *int `json:"best_score"`
	LatestScore *int `json:"latest_score"`
	BestVsPar   *int `json:"best_vs_par"`

	WeeklyCounts      []WeekCount  `json:"weekly_counts"`
	FeelTrend         []FeelPoint  `json:"feel_trend"`
	FocusDistribution []FocusSlice `json:"focus_distribution"`
	ScoreTrend        []ScorePoint `json:"score_trend"`

	AvgFIR        *float64 `json:"avg_fir"`
	AvgFIRPct     *int     `json:"avg_fir_pct"`
	AvgGIR        *float64 `json:"avg_gir"`
	AvgGIRPct     *int     `json:"avg_gir_pct"`
	AvgPutts      *float64 `json:"avg_putts"`
	AvgPenalties  *float64 `json:"avg_penalties"`
	ScramblingPct *float64 `json:"scrambling_pct"`

	FIRTrend   []RoundStatPoint  `json:"fir_trend"`
	GIRTrend   []RoundStatPoint  `json:"gir_trend"`
	PuttsTrend []RoundStatPoint  `json:"putts_trend"`
	Confidence []ConfidencePoint `json:"confidence_trend"`

	RecurringIssues []string     `json:"recurring_issues"`
	CourseStats     []CourseStat `json:"course_stats"`
}

// WeekCount is one calendar-week bucket. Week identifies the bucket by the
// Monday that starts it, in YYYY-MM-DD form (ISO weeks, Monday start).
type WeekCount struct {
	Week     string `json:"week"`
	Sessions int    `json:"sessions"`
}

type FeelPoint struct {
	Date   string `json:"date"`
	Rating int    `json:"rating"`
}

type FocusSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ScorePoint carries par context when the round recorded a course par.
type ScorePoint struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
	Par   *int   `json:"par,omitempty"`
	VsPar *int   `json:"vs_par,omitempty"`
}

type RoundStatPoint struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

type ConfidencePoint struct {
	Date    string         `json:"date"`
	Ratings map[string]int `json:"ratings"`
}

type CourseStat struct {
	Course    string  `json:"course"`
	Rounds    int     `json:"rounds"`
	AvgScore  float64 `json:"avg_score"`
	BestScore int     `json:"best"`
}
