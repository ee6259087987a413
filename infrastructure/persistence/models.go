package persistence

import (
	"time"
)

// MenuItemModel represents a navigation menu item in the database.
type MenuItemModel struct {
	ID             string    `gorm:"column:id;primaryKey;size:36"`
	LabelPrimary   string    `gorm:"column:label_primary;size:255"`
	LabelSecondary string    `gorm:"column:label_secondary;size:255"`
	Path           string    `gorm:"column:path;index;size:512"`
	ParentID       *string   `gorm:"column:parent_id;index;size:36"`
	SortOrder      int       `gorm:"column:sort_order"`
	Location       string    `gorm:"column:location;index;size:32"`
	IsActive       bool      `gorm:"column:is_active"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (MenuItemModel) TableName() string {
	return "navigation_menus"
}

// SlideModel represents a hero slide in the database. Both CTA buttons are
// flattened into text/link columns.
type SlideModel struct {
	ID                        string    `gorm:"column:id;primaryKey;size:36"`
	TitlePrimary              string    `gorm:"column:title_primary;index;size:512"`
	TitleSecondary            string    `gorm:"column:title_secondary;size:512"`
	SubtitlePrimary           string    `gorm:"column:subtitle_primary;type:text"`
	SubtitleSecondary         string    `gorm:"column:subtitle_secondary;type:text"`
	MediaURL                  string    `gorm:"column:media_url;size:1024"`
	MediaType                 string    `gorm:"column:media_type;size:16"`
	PrimaryCTATextPrimary     string    `gorm:"column:primary_cta_text_primary;size:255"`
	PrimaryCTATextSecondary   string    `gorm:"column:primary_cta_text_secondary;size:255"`
	PrimaryCTALink            string    `gorm:"column:primary_cta_link;size:1024"`
	SecondaryCTATextPrimary   string    `gorm:"column:secondary_cta_text_primary;size:255"`
	SecondaryCTATextSecondary string    `gorm:"column:secondary_cta_text_secondary;size:255"`
	SecondaryCTALink          string    `gorm:"column:secondary_cta_link;index;size:1024"`
	SortOrder                 int       `gorm:"column:sort_order"`
	IsActive                  bool      `gorm:"column:is_active"`
	PageBinding               *string   `gorm:"column:page_binding;index;size:512"`
	CreatedAt                 time.Time `gorm:"column:created_at"`
	UpdatedAt                 time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (SlideModel) TableName() string {
	return "hero_slides"
}

// DocumentModel represents an investor document in the database.
type DocumentModel struct {
	ID             string    `gorm:"column:id;primaryKey;size:36"`
	TitlePrimary   string    `gorm:"column:title_primary;size:512"`
	TitleSecondary string    `gorm:"column:title_secondary;size:512"`
	DocumentType   string    `gorm:"column:document_type;index;size:64"`
	Year           int       `gorm:"column:year;index"`
	Quarter        *int      `gorm:"column:quarter"`
	PublishedAt    time.Time `gorm:"column:published_at"`
	FileURL        string    `gorm:"column:file_url;index;size:1024"`
	IsActive       bool      `gorm:"column:is_active"`
	IsPublished    bool      `gorm:"column:is_published"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (DocumentModel) TableName() string {
	return "investor_documents"
}

// BusinessLineModel represents a business line in the database.
type BusinessLineModel struct {
	ID                   string    `gorm:"column:id;primaryKey;size:36"`
	Slug                 string    `gorm:"column:slug;uniqueIndex;size:255"`
	NamePrimary          string    `gorm:"column:name_primary;size:255"`
	NameSecondary        string    `gorm:"column:name_secondary;size:255"`
	DescriptionPrimary   string    `gorm:"column:description_primary;type:text"`
	DescriptionSecondary string    `gorm:"column:description_secondary;type:text"`
	PagePath             string    `gorm:"column:page_path;size:512"`
	SortOrder            int       `gorm:"column:sort_order"`
	IsActive             bool      `gorm:"column:is_active"`
	CreatedAt            time.Time `gorm:"column:created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (BusinessLineModel) TableName() string {
	return "business_lines"
}

// DetailModel is shared by the four business_line_* detail tables. It has
// no TableName; stores set the table per kind.
type DetailModel struct {
	ID             string `gorm:"column:id;primaryKey;size:36"`
	LineID         string `gorm:"column:line_id;index;size:36"`
	TitlePrimary   string `gorm:"column:title_primary;size:512"`
	TitleSecondary string `gorm:"column:title_secondary;size:512"`
	BodyPrimary    string `gorm:"column:body_primary;type:text"`
	BodySecondary  string `gorm:"column:body_secondary;type:text"`
	Value          string `gorm:"column:value;size:255"`
	ImageURL       string `gorm:"column:image_url;size:1024"`
	SortOrder      int    `gorm:"column:sort_order"`
}

// AppliedMigrationModel is one row of the migration ledger.
type AppliedMigrationModel struct {
	ID          string    `gorm:"column:id;primaryKey;size:255"`
	Description string    `gorm:"column:description;type:text"`
	Checksum    string    `gorm:"column:checksum;size:64"`
	AppliedAt   time.Time `gorm:"column:applied_at;index"`
}

// TableName returns the table name.
func (AppliedMigrationModel) TableName() string {
	return "applied_migrations"
}
