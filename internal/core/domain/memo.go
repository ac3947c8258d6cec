package domain

// ParsedMemo is the structured session prefill extracted from a transcribed
// voice memo. It mirrors the session form: the client reviews and edits it
// before submitting, so nothing here is persisted directly.
type ParsedMemo struct {
	Type               string         `json:"type"`
	Intention          string         `json:"intention"`
	Areas              []string       `json:"areas"`
	BallCount          *int           `json:"ball_count"`
	FeelRating         *int           `json:"feel_rating"`
	Confidence         map[string]int `json:"confidence,omitempty"`
	NotesSummary       string         `json:"notes_summary"`
	EquipmentNotes     string         `json:"equipment_notes"`
	Course             string         `json:"course"`
	Score              *int           `json:"score"`
	FrontNine          *int           `json:"front_nine"`
	BackNine           *int           `json:"back_nine"`
	TeesPlayed         string         `json:"tees_played"`
	FairwaysHit        *int           `json:"fairways_hit"`
	GreensInRegulation *int           `json:"greens_in_regulation"`
	TotalPutts         *int           `json:"total_putts"`
	Penalties          *int           `json:"penalties"`
	UpAndDowns         *int           `json:"up_and_downs"`
	Conditions         *Conditions    `json:"conditions,omitempty"`
	Highlights         string         `json:"highlights"`
	TroubleSpots       string         `json:"trouble_spots"`
	KeyFocus           string         `json:"key_focus"`
	Positives          []string       `json:"positives"`
	Issues             []string       `json:"issues"`
	SwingThoughts      []string       `json:"swing_thoughts"`
}
