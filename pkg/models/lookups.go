package models

// Lookup tables for the capture forms and dashboard breakdowns. These mirror
// the DBE's district structure and the DDD programme vocabulary.

// Intervention stages
const (
	StagePlanning  = "Planning"
	StageActive    = "Active"
	StagePaused    = "Paused"
	StageCompleted = "Completed"
	StageCancelled = "Cancelled"
)

// Action statuses
const (
	ActionStatusPlanned    = "Planned"
	ActionStatusInProgress = "In Progress"
	ActionStatusCompleted  = "Completed"
	ActionStatusBlocked    = "Blocked"
)

var Provinces = []string{
	"Eastern Cape", "Free State", "Gauteng", "KwaZulu-Natal", "Limpopo",
	"Mpumalanga", "North West", "Northern Cape", "Western Cape",
}

var Districts = map[string][]string{
	"Eastern Cape": {"Alfred Nzo East", "Alfred Nzo West", "Amathole East", "Amathole West", "Buffalo City", "Chris Hani East", "Chris Hani West", "Joe Gqabi", "Nelson Mandela Metro", "OR Tambo Coastal", "OR Tambo Inland", "Sarah Baartman"},
	"Free State":   {"Fezile Dabi", "Lejweleputswa", "Motheo", "Thabo Mofutsanyana", "Xhariep"},
	"Gauteng":      {"Ekurhuleni North", "Ekurhuleni South", "Gauteng East", "Gauteng North", "Gauteng West", "Johannesburg Central", "Johannesburg East", "Johannesburg North", "Johannesburg South", "Johannesburg West", "Sedibeng East", "Sedibeng West", "Tshwane North", "Tshwane South", "Tshwane West"},
	"KwaZulu-Natal": {"Amajuba", "Harry Gwala", "iLembe", "King Cetshwayo", "Pinetown", "Ugu", "Umgungundlovu", "Umkhanyakude", "Umlazi", "Umzinyathi", "Uthukela", "Zululand"},
	"Limpopo":      {"Capricorn North", "Capricorn South", "Mopani East", "Mopani West", "Sekhukhune East", "Sekhukhune South", "Vhembe East", "Vhembe West", "Waterberg"},
	"Mpumalanga":   {"Bohlabela", "Ehlanzeni", "Gert Sibande", "Nkangala"},
	"North West":   {"Bojanala", "Dr Kenneth Kaunda", "Dr Ruth Segomotsi Mompati", "Ngaka Modiri Molema"},
	"Northern Cape": {"Frances Baard", "John Taolo Gaetsewe", "Namakwa", "Pixley Ka Seme", "ZF Mgcawu"},
	"Western Cape": {"Cape Winelands", "Eden & Central Karoo", "Metro Central", "Metro East", "Metro North", "Metro South", "Overberg", "West Coast"},
}

var InterventionTypes = []string{
	"Underperforming School", "DBE Mentorship", "District Support", "GET Phase", "Reading Literacy",
}

var Stages = []string{StagePlanning, StageActive, StagePaused, StageCompleted, StageCancelled}

var Grades = []string{
	"Foundation", "Intermediate", "Senior", "FET", "GET & FET", "All Grades",
	"Grade 4-7", "Grade 7-9", "Grade 10-12", "Grade 12",
}

var Subjects = []string{
	"All", "Mathematics", "Languages", "LOLT", "Natural Sciences",
	"All FET subjects", "Languages & Mathematics",
}

var Phases = []string{
	"Foundation", "Intermediary", "Senior", "Senior & FET", "FET", "GET", "GET & FET", "All",
}

var Levels = []string{"School", "Circuit", "District", "Province"}

var ConfidenceLevels = []string{"Low", "Medium", "High"}

var ActionStatuses = []string{
	ActionStatusPlanned, ActionStatusInProgress, ActionStatusCompleted, ActionStatusBlocked,
}

var DDDTools = []string{
	"FET Profiling Tool", "Learner Charts", "School Dashboard", "District Dashboard",
	"Subject Analysis", "Attendance Tracker", "Provincial Overview",
	"Circular D3 Reports", "Custom Analysis",
}

// LookupsResponse bundles every enumeration the capture forms need
type LookupsResponse struct {
	Provinces         []string            `json:"provinces"`
	Districts         map[string][]string `json:"districts"`
	InterventionTypes []string            `json:"intervention_types"`
	Stages            []string            `json:"stages"`
	Grades            []string            `json:"grades"`
	Subjects          []string            `json:"subjects"`
	Phases            []string            `json:"phases"`
	Levels            []string            `json:"levels"`
	ConfidenceLevels  []string            `json:"confidence_levels"`
	ActionStatuses    []string            `json:"action_statuses"`
	DDDTools          []string            `json:"ddd_tools"`
}

// Lookups returns the full lookup bundle
func Lookups() LookupsResponse {
	return LookupsResponse{
		Provinces:         Provinces,
		Districts:         Districts,
		InterventionTypes: InterventionTypes,
		Stages:            Stages,
		Grades:            Grades,
		Subjects:          Subjects,
		Phases:            Phases,
		Levels:            Levels,
		ConfidenceLevels:  ConfidenceLevels,
		ActionStatuses:    ActionStatuses,
		DDDTools:          DDDTools,
	}
}
