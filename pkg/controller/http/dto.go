package http

import (
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
	"github.com/secmon-lab/safetydocs/pkg/usecase"
)

type userRequest struct {
	ID        string `json:"id" validate:"omitempty,max=128"`
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"max=200"`
	LastName  string `json:"last_name" validate:"max=200"`
	Role      string `json:"role" validate:"omitempty,role"`
}

func (req *userRequest) input() usecase.UserInput {
	return usecase.UserInput{
		ID:        types.UserID(req.ID),
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      types.Role(req.Role),
	}
}

type projectRequest struct {
	Name          string  `json:"name" validate:"required,max=200"`
	Description   string  `json:"description" validate:"max=5000"`
	Location      string  `json:"location" validate:"max=500"`
	StartDate     *string `json:"start_date"`
	EndDate       *string `json:"end_date"`
	Season        string  `json:"season" validate:"omitempty,season"`
	IndoorOutdoor string  `json:"indoor_outdoor" validate:"omitempty,indoor_outdoor"`
	Status        string  `json:"status" validate:"omitempty,project_status"`
}

func (req *projectRequest) input() (usecase.ProjectInput, error) {
	start, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		return usecase.ProjectInput{}, err
	}
	end, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		return usecase.ProjectInput{}, err
	}

	return usecase.ProjectInput{
		Name:          req.Name,
		Description:   req.Description,
		Location:      req.Location,
		StartDate:     start,
		EndDate:       end,
		Season:        types.Season(req.Season),
		IndoorOutdoor: types.IndoorOutdoor(req.IndoorOutdoor),
		Status:        types.ProjectStatus(req.Status),
	}, nil
}

type memberRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type hazardRequest struct {
	AreaID        string `json:"area_id"`
	Activity      string `json:"activity" validate:"max=1000"`
	Hazard        string `json:"hazard" validate:"max=2000"`
	HazardFactors string `json:"hazard_factors" validate:"max=2000"`
	StressFactors string `json:"stress_factors" validate:"max=2000"`

	Severity    *int `json:"severity" validate:"omitempty,min=1"`
	Probability *int `json:"probability" validate:"omitempty,min=1"`

	Substitution   types.CheckValue `json:"substitution"`
	Technical      types.CheckValue `json:"technical"`
	Organizational types.CheckValue `json:"organizational"`
	Personal       types.CheckValue `json:"personal"`

	Mitigation             string `json:"mitigation" validate:"max=5000"`
	SubstitutionMeasures   string `json:"substitution_measures" validate:"max=5000"`
	TechnicalMeasures      string `json:"technical_measures" validate:"max=5000"`
	OrganizationalMeasures string `json:"organizational_measures" validate:"max=5000"`
	PersonalMeasures       string `json:"personal_measures" validate:"max=5000"`
	EffectivenessReview    string `json:"effectiveness_review" validate:"max=5000"`
	Reporting              string `json:"reporting" validate:"max=5000"`
	Remarks                string `json:"remarks" validate:"max=5000"`
	LegalRegulations       string `json:"legal_regulations" validate:"max=5000"`
	DefectsFixed           bool   `json:"defects_fixed"`

	SortOrder int `json:"sort_order"`
}

func (req *hazardRequest) input() usecase.HazardInput {
	return usecase.HazardInput{
		AreaID:                 types.AreaID(req.AreaID),
		Activity:               req.Activity,
		Description:            req.Hazard,
		HazardFactors:          req.HazardFactors,
		StressFactors:          req.StressFactors,
		Severity:               req.Severity,
		Probability:            req.Probability,
		Substitution:           req.Substitution,
		Technical:              req.Technical,
		Organizational:         req.Organizational,
		Personal:               req.Personal,
		Mitigation:             req.Mitigation,
		SubstitutionMeasures:   req.SubstitutionMeasures,
		TechnicalMeasures:      req.TechnicalMeasures,
		OrganizationalMeasures: req.OrganizationalMeasures,
		PersonalMeasures:       req.PersonalMeasures,
		EffectivenessReview:    req.EffectivenessReview,
		Reporting:              req.Reporting,
		Remarks:                req.Remarks,
		LegalRegulations:       req.LegalRegulations,
		DefectsFixed:           req.DefectsFixed,
		SortOrder:              req.SortOrder,
	}
}

type templateRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Description   string `json:"description" validate:"max=5000"`
	Category      string `json:"category" validate:"max=200"`
	Season        string `json:"season" validate:"omitempty,template_season"`
	IndoorOutdoor string `json:"indoor_outdoor" validate:"omitempty,template_indoor_outdoor"`
	Active        *bool  `json:"active"`
}

func (req *templateRequest) input() usecase.TemplateInput {
	return usecase.TemplateInput{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Season:        types.Season(req.Season),
		IndoorOutdoor: types.IndoorOutdoor(req.IndoorOutdoor),
		Active:        req.Active,
	}
}

type participantRequest struct {
	FirstName string `json:"first_name" validate:"required,max=200"`
	LastName  string `json:"last_name" validate:"required,max=200"`
	Email     string `json:"email" validate:"omitempty,email"`
	Company   string `json:"company" validate:"max=200"`
	Position  string `json:"position" validate:"max=200"`
}

func (req *participantRequest) input() usecase.ParticipantInput {
	return usecase.ParticipantInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Company:   req.Company,
		Position:  req.Position,
	}
}

type signRequest struct {
	SignatureData string `json:"signature_data" validate:"required"`
}

type briefingItemRequest struct {
	Section   string `json:"section" validate:"max=100"`
	Icon      string `json:"icon" validate:"max=50"`
	Text      string `json:"text" validate:"required,max=2000"`
	SortOrder int    `json:"sort_order"`
}

type briefingRequest struct {
	Title              string                `json:"title" validate:"required,max=300"`
	EventName          string                `json:"event_name" validate:"max=300"`
	DateAndLocation    string                `json:"date_and_location" validate:"max=300"`
	Content            string                `json:"content" validate:"max=20000"`
	Organisation       string                `json:"organisation" validate:"max=20000"`
	AllgemeineHinweise string                `json:"allgemeine_hinweise" validate:"max=20000"`
	NotfaelleRaeumung  string                `json:"notfaelle_raeumung" validate:"max=20000"`
	ZusaetzlicheRegeln string                `json:"zusaetzliche_regeln" validate:"max=20000"`
	Items              []briefingItemRequest `json:"items" validate:"omitempty,dive"`
}

// input keeps a missing item list nil, which leaves stored items untouched
func (req *briefingRequest) input() usecase.BriefingInput {
	in := usecase.BriefingInput{
		Title:              req.Title,
		EventName:          req.EventName,
		DateAndLocation:    req.DateAndLocation,
		Content:            req.Content,
		Organisation:       req.Organisation,
		AllgemeineHinweise: req.AllgemeineHinweise,
		NotfaelleRaeumung:  req.NotfaelleRaeumung,
		ZusaetzlicheRegeln: req.ZusaetzlicheRegeln,
	}
	if req.Items != nil {
		in.Items = make([]usecase.BriefingItemInput, len(req.Items))
		for i, item := range req.Items {
			in.Items[i] = usecase.BriefingItemInput{
				Section:   item.Section,
				Icon:      item.Icon,
				Text:      item.Text,
				SortOrder: item.SortOrder,
			}
		}
	}
	return in
}

type areaRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	SortOrder   int    `json:"sort_order"`
}

type areaAssignmentRequest struct {
	AreaID string `json:"area_id" validate:"required"`
	UserID string `json:"user_id" validate:"required"`
	Notes  string `json:"notes" validate:"max=2000"`
}
