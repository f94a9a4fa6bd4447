package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope identifies which entity type a cost record is attached to.
type Scope string

const (
	ScopeTask       Scope = "task"
	ScopeProduct    Scope = "product"
	ScopeShared     Scope = "shared"
	ScopeFeature    Scope = "feature"
	ScopeResource   Scope = "resource"
	ScopeModule     Scope = "module"
	ScopeHardware   Scope = "hardware"
	ScopeSoftware   Scope = "software"
	ScopeDatabase   Scope = "database"
	ScopeConsulting Scope = "consulting"
)

// RequiresScopeID reports whether a cost with this scope must reference a
// concrete entity through ScopeID.
func (s Scope) RequiresScopeID() bool {
	switch s {
	case ScopeTask, ScopeFeature, ScopeResource, ScopeModule:
		return true
	}
	return false
}

// CostCategory describes what kind of spend a cost record represents.
type CostCategory string

const (
	CategoryBuild    CostCategory = "build"
	CategoryRun      CostCategory = "run"
	CategoryMaintain CostCategory = "maintain"
	CategoryScale    CostCategory = "scale"
	CategoryOverhead CostCategory = "overhead"
)

// CostType describes where the money goes.
type CostType string

const (
	CostTypeLabor   CostType = "labor"
	CostTypeInfra   CostType = "infra"
	CostTypeLicense CostType = "license"
	CostTypeVendor  CostType = "vendor"
	CostTypeOther   CostType = "other"
)

// Recurrence describes how often a cost repeats.
type Recurrence string

const (
	RecurrenceOneTime   Recurrence = "one-time"
	RecurrenceMonthly   Recurrence = "monthly"
	RecurrenceQuarterly Recurrence = "quarterly"
	RecurrenceAnnual    Recurrence = "annual"
)

// Classification buckets a cost as keep-the-lights-on spend or new development.
// The empty value means unclassified.
type Classification string

const (
	ClassificationRun    Classification = "run"
	ClassificationChange Classification = "change"
	ClassificationNone   Classification = ""
)

// Cost is a single ledger entry scoped to some entity of a product.
// A blank ModuleID means the cost sits at the product level.
type Cost struct {
	ID                 string         `json:"id" gorm:"type:uuid;primarykey"`
	ProductID          string         `json:"product_id" gorm:"type:uuid;index;not null"`
	ModuleID           string         `json:"module_id,omitempty" gorm:"type:uuid;index"`
	Scope              Scope          `json:"scope" gorm:"type:varchar(20);not null"`
	ScopeID            string         `json:"scope_id,omitempty" gorm:"type:uuid;index"`
	Category           CostCategory   `json:"category" gorm:"type:varchar(20)"`
	CostType           CostType       `json:"cost_type" gorm:"type:varchar(20)"`
	Amount             float64        `json:"amount" gorm:"not null"`
	Currency           string         `json:"currency" gorm:"type:varchar(3)"`
	Recurrence         Recurrence     `json:"recurrence" gorm:"type:varchar(20);not null"`
	AmortizationPeriod int            `json:"amortization_period,omitempty" gorm:"comment:'Months to spread a one-time cost over'"`
	CostClassification Classification `json:"cost_classification,omitempty" gorm:"type:varchar(10)"`
	ResourceID         string         `json:"resource_id,omitempty" gorm:"type:uuid"`
	VendorID           string         `json:"vendor_id,omitempty" gorm:"type:uuid"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// BeforeCreate assigns a fresh UUID when none was supplied.
func (c *Cost) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
