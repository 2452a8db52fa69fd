// Package report models the multi-section tender analysis report.
package report

import "time"

// Status is the analysis status of a report.
type Status string

// Analysis statuses.
const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// Report is the full analysis of one tender.
type Report struct {
	ID          string      `json:"id"`
	TenderID    string      `json:"tender_id"`
	Status      Status      `json:"status"`
	AnalyzedAt  time.Time   `json:"analyzed_at"`
	OnePager    OnePager    `json:"one_pager"`
	ScopeOfWork ScopeOfWork `json:"scope_of_work"`
	RFPSections RFPSections `json:"rfp_sections"`
	DataSheet   DataSheet   `json:"data_sheet"`
	Templates   Templates   `json:"templates"`
}

// OnePager is the executive overview.
type OnePager struct {
	ProjectOverview       string       `json:"project_overview"`
	FinancialRequirements []string     `json:"financial_requirements"`
	EligibilityHighlights []string     `json:"eligibility_highlights"`
	ImportantDates        []string     `json:"important_dates"`
	RiskAnalysis          RiskAnalysis `json:"risk_analysis"`
}

// RiskAnalysis summarizes project risks.
type RiskAnalysis struct {
	Summary string `json:"summary"`
}

// ScopeOfWork describes what the contractor delivers.
type ScopeOfWork struct {
	ProjectDetails          ProjectDetails          `json:"project_details"`
	WorkPackages            []WorkPackage           `json:"work_packages"`
	TechnicalSpecifications TechnicalSpecifications `json:"technical_specifications"`
	Deliverables            []Deliverable           `json:"deliverables"`
	Exclusions              []string                `json:"exclusions"`
}

// ProjectDetails are the headline project figures.
type ProjectDetails struct {
	ProjectName   string `json:"project_name"`
	Location      string `json:"location"`
	TotalLength   string `json:"total_length,omitempty"`
	TotalArea     string `json:"total_area,omitempty"`
	Duration      string `json:"duration"`
	ContractValue string `json:"contract_value"`
}

// WorkPackage is a unit of work with its components.
type WorkPackage struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	Components        []Component `json:"components"`
	EstimatedDuration string      `json:"estimated_duration"`
	Dependencies      []string    `json:"dependencies,omitempty"`
}

// Component is a line item of a work package.
type Component struct {
	Item           string   `json:"item"`
	Description    string   `json:"description"`
	Quantity       *float64 `json:"quantity,omitempty"`
	Unit           string   `json:"unit,omitempty"`
	Specifications string   `json:"specifications,omitempty"`
}

// TechnicalSpecifications lists standards and quality requirements.
type TechnicalSpecifications struct {
	Standards              []string   `json:"standards"`
	QualityRequirements    []string   `json:"quality_requirements"`
	MaterialsSpecification []Material `json:"materials_specification"`
	TestingRequirements    []string   `json:"testing_requirements"`
}

// Material is a material specification.
type Material struct {
	Material        string `json:"material"`
	Specification   string `json:"specification"`
	Source          string `json:"source,omitempty"`
	TestingStandard string `json:"testing_standard,omitempty"`
}

// Deliverable is a contract milestone.
type Deliverable struct {
	Item        string `json:"item"`
	Description string `json:"description"`
	Timeline    string `json:"timeline"`
}

// RFPSections breaks the request for proposal into sections.
type RFPSections struct {
	Summary  RFPSummary   `json:"rfp_summary"`
	Sections []RFPSection `json:"sections"`
}

// RFPSummary counts sections and requirements.
type RFPSummary struct {
	TotalSections     int         `json:"total_sections"`
	TotalRequirements int         `json:"total_requirements"`
	Criticality       Criticality `json:"criticality"`
}

// Criticality counts requirements per criticality level.
type Criticality struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// RFPSection is one analyzed section of the RFP.
type RFPSection struct {
	SectionNumber        string   `json:"section_number"`
	SectionName          string   `json:"section_name"`
	Summary              string   `json:"summary"`
	KeyPoints            []string `json:"key_points"`
	CriticalRequirements []string `json:"critical_requirements"`
	Considerations       []string `json:"considerations"`
	Risks                []string `json:"risks"`
	ActionItems          []string `json:"action_items"`
	Documents            []string `json:"documents"`
}

// DataSheet is the tabular fact sheet.
type DataSheet struct {
	ProjectInformation []DataItem `json:"project_information"`
	ContractDetails    []DataItem `json:"contract_details"`
	FinancialDetails   []DataItem `json:"financial_details"`
	TechnicalSummary   []DataItem `json:"technical_summary"`
	ImportantDates     []DataItem `json:"important_dates"`
}

// DataItem is a labelled data sheet row.
type DataItem struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	Type      string `json:"type,omitempty"`
	Highlight bool   `json:"highlight,omitempty"`
}

// Templates groups the document templates of the tender.
type Templates struct {
	BidSubmissionForms []Template `json:"bid_submission_forms"`
	FinancialFormats   []Template `json:"financial_formats"`
	TechnicalDocuments []Template `json:"technical_documents"`
	ComplianceFormats  []Template `json:"compliance_formats"`
}

// Template is a downloadable form.
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Format      string `json:"format"`
	DownloadURL string `json:"downloadUrl"`
	Mandatory   bool   `json:"mandatory"`
	Annex       string `json:"annex,omitempty"`
}

// Sections lists the section keys of a report, in display order.
var Sections = []string{"one_pager", "scope_of_work", "rfp_sections", "data_sheet", "templates"}
