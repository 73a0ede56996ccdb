package model

const (
	EntityName = "refdata"

	SheetAgents    = "Agents"
	SheetCompanies = "Companies"
)

// Lists holds the dropdown values the booking forms offer. Agents and
// companies come from the reference workbook; the rest are fixed
// vocabularies.
type Lists struct {
	Agents    []string `json:"agents"`
	Companies []string `json:"companies"`
	Plans     []string `json:"plans"`
	Statuses  []string `json:"statuses"`
	RoomTypes []string `json:"room_types"`
	Warnings  []string `json:"warnings,omitempty"`
}
