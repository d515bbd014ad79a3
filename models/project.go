package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsvix-api/utils"
	"gorm.io/gorm"
)

// ProjectStatus represents the publication state of a project
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusPublished ProjectStatus = "published"
)

// Valid reports whether s is a known project status
func (s ProjectStatus) Valid() bool {
	return s == ProjectStatusDraft || s == ProjectStatusPublished
}

const (
	MaxProjectTitleLength            = 200
	MaxProjectShortDescriptionLength = 300
)

// Project represents a portfolio entry
type Project struct {
	ID               string        `json:"id" gorm:"primaryKey;type:uuid"`
	Title            string        `json:"title" gorm:"size:200;not null"`
	Slug             string        `json:"slug" gorm:"uniqueIndex;not null"`
	Description      string        `json:"description" gorm:"type:text"`
	ShortDescription string        `json:"shortDescription" gorm:"size:300"`
	Category         string        `json:"category" gorm:"index"`
	Technologies     StringList    `json:"technologies" gorm:"type:text"`
	Thumbnail        Asset         `json:"thumbnail" gorm:"embedded;embeddedPrefix:thumbnail_"`
	Images           AssetList     `json:"images" gorm:"type:text"`
	LiveURL          string        `json:"liveUrl"`
	GithubURL        string        `json:"githubUrl"`
	Featured         bool          `json:"featured" gorm:"not null;default:false"`
	Status           ProjectStatus `json:"status" gorm:"type:varchar(10);not null;default:'published';index"`
	Order            int           `json:"order" gorm:"column:sort_order;not null;default:0"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// TableName sets the table name for Project model
func (Project) TableName() string {
	return "projects"
}

// BeforeCreate assigns an ID and the default status
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = ProjectStatusPublished
	}
	return nil
}

// BeforeSave derives the slug from the title; it is never set directly
func (p *Project) BeforeSave(tx *gorm.DB) error {
	p.Slug = utils.Slugify(p.Title)
	return nil
}

// Assets returns every external asset the project references
func (p *Project) Assets() []Asset {
	assets := make([]Asset, 0, len(p.Images)+1)
	if p.Thumbnail.PublicID != "" {
		assets = append(assets, p.Thumbnail)
	}
	for _, img := range p.Images {
		if img.PublicID != "" {
			assets = append(assets, img)
		}
	}
	return assets
}
