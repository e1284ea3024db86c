package sampledata

import "time"

// Output file names, matching the service defaults.
const (
	VisitorsFile = "visitors.csv"
	SignupsFile  = "breakout.csv"
	AliasesFile  = "email_mapping.yaml"
)

// Generator defaults.
const (
	DefaultVisitors    = 120
	DefaultSignupEvery = 3
	DefaultAliasEvery  = 4
	DefaultTypoEvery   = 5
	DefaultTimeout     = 30 * time.Second
)

const (
	visitorDomain = "example.com"
	typoDomain    = "exmaple.com"
	signupDate    = "2024-05-14"
)
