// Package types contains read shapes shared by the service and HTTP layers.
package types

// Visitor is the read shape of one visitor after the pipeline ran.
type Visitor struct {
	Position           int     `json:"position"`
	Email              string  `json:"email"`
	Name               string  `json:"name"`
	MorningBreakout    string  `json:"morning_breakout"`
	AfternoonBreakout  string  `json:"afternoon_breakout"`
	ExactMatch         bool    `json:"exact_match"`
	AssignedToBreakout bool    `json:"assigned_to_breakout"`
	FuzzyEmailMatch    string  `json:"fuzzy_email_match"`
	FuzzyEmailScore    float64 `json:"fuzzy_email_score"`
	QRKey              string  `json:"qr_key"`
}

// Session reports a session's starting and remaining seats.
type Session struct {
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	Remaining int    `json:"remaining"`
}

// Overview summarizes the conference after assignment.
type Overview struct {
	VisitorsCount         int       `json:"visitors_count"`
	VisitorsBreakoutCount int       `json:"visitors_breakout_count"`
	MorningBreakouts      []Session `json:"morning_breakouts"`
	AfternoonBreakouts    []Session `json:"afternoon_breakouts"`
}

// Signup is the read shape of a breakout signup record.
type Signup struct {
	Email     string `json:"email"`
	Date      string `json:"date"`
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
}

// Unlinked lists signups that no visitor claimed.
type Unlinked struct {
	LinkedEmails []string `json:"linked_emails"`
	Signups      []Signup `json:"unlinked_signups"`
}

// Page is one page of visitors.
type Page struct {
	Page     int       `json:"page"`
	PerPage  int       `json:"per_page"`
	Total    int       `json:"total"`
	Visitors []Visitor `json:"visitors"`
}
