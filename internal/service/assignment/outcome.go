package assignment

// Outcome итог попытки назначения
type Outcome string

const (
	OutcomeAssigned   Outcome = "assigned"
	OutcomeUnassigned Outcome = "unassigned"
	OutcomeLostRace   Outcome = "lost_race"
)
