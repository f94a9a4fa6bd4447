package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task is a unit of work, optionally attached to a feature and a module.
// ActualHours of zero means "not tracked yet"; cost views fall back to the
// estimate in that case.
type Task struct {
	ID                 string         `json:"id" gorm:"type:uuid;primarykey"`
	ProductID          string         `json:"product_id" gorm:"type:uuid;index;not null"`
	ModuleID           string         `json:"module_id,omitempty" gorm:"type:uuid;index"`
	FeatureID          string         `json:"feature_id,omitempty" gorm:"type:uuid;index"`
	Name               string         `json:"name" gorm:"type:varchar(255)"`
	EstimatedHours     float64        `json:"estimated_hours"`
	ActualHours        float64        `json:"actual_hours"`
	AssigneeIDs        []string       `json:"assignee_ids" gorm:"serializer:json"`
	CostClassification Classification `json:"cost_classification,omitempty" gorm:"type:varchar(10)"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Feature groups tasks; tasks point back at it through FeatureID.
type Feature struct {
	ID        string         `json:"id" gorm:"type:uuid;primarykey"`
	ProductID string         `json:"product_id" gorm:"type:uuid;index;not null"`
	ModuleID  string         `json:"module_id,omitempty" gorm:"type:uuid;index"`
	Name      string         `json:"name" gorm:"type:varchar(255)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (f *Feature) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// Resource is a person or system with an hourly cost rate.
type Resource struct {
	ID         string         `json:"id" gorm:"type:uuid;primarykey"`
	Name       string         `json:"name" gorm:"type:varchar(255);not null"`
	HourlyRate float64        `json:"hourly_rate"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
