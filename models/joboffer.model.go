package models

import "gorm.io/gorm"

// Job offer statuses. Kept in French to match the published API contract.
const (
	JobStatusPending   = "en_attente"
	JobStatusPublished = "publiee"
	JobStatusCancelled = "annulee"
)

// Candidacy statuses
const (
	CandidacyPending  = "en_attente"
	CandidacyAccepted = "acceptee"
	CandidacyRefused  = "refusee"
)

// JobOffer represents a job posting by a company. Only offers with
// statut "publiee" are visible to applicants.
type JobOffer struct {
	gorm.Model
	CompanyID    uint   `json:"company_id" gorm:"index;not null"`
	Title        string `json:"title"`
	Description  string `json:"description" gorm:"type:text"`
	Localisation string `json:"localisation"`
	Salaire      string `json:"salaire"`
	ContractType string `json:"contract_type"`
	Statut       string `json:"statut" gorm:"default:'en_attente'"` // en_attente, publiee, annulee
	IsDeleted    bool   `gorm:"default:false"`
}

// Candidacy represents a user's application to a job offer
type Candidacy struct {
	gorm.Model
	JobOfferID uint   `json:"job_offer_id" gorm:"index;not null;uniqueIndex:idx_job_user"`
	UserID     uint   `json:"user_id" gorm:"index;not null;uniqueIndex:idx_job_user"`
	Message    string `json:"message" gorm:"type:text"`
	Statut     string `json:"statut" gorm:"default:'en_attente'"` // en_attente, acceptee, refusee
	IsDeleted  bool   `gorm:"default:false"`
}
