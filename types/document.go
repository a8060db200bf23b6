package types

import "time"

// DocumentSection partitions the generic document vault.
type DocumentSection string

const (
	SectionBusiness DocumentSection = "business"
	SectionHR       DocumentSection = "hr"
)

// Document is a file stored in the business or HR vault.
type Document struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Section     DocumentSection `json:"section"`
	Category    string          `json:"category"`
	Path        string          `json:"path"`
	ContentType string          `json:"contentType"`
	Size        int64           `json:"size"`
	ReviewDate  *time.Time      `json:"reviewDate"`
	UploadedBy  int             `json:"uploadedBy"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// DocumentFilter narrows a vault listing. Empty fields match everything.
type DocumentFilter struct {
	Section  DocumentSection
	Category string
}

// YPFolderDocument is a file kept in a resident's folder.
type YPFolderDocument struct {
	ID            int       `json:"id"`
	YoungPersonID int       `json:"youngPersonId"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	Path          string    `json:"path"`
	ContentType   string    `json:"contentType"`
	Size          int64     `json:"size"`
	UploadedBy    int       `json:"uploadedBy"`
	CreatedAt     time.Time `json:"createdAt"`
}

var sectionCategories = map[DocumentSection][]string{
	SectionBusiness: {"insurance", "finances", "legal", "home", "other"},
	SectionHR:       {"onboarding", "compliance", "training", "policy", "other"},
}

// YPFolderCategories lists the categories accepted for resident folders.
var YPFolderCategories = []string{
	"Health & Wellbeing",
	"Financial",
	"Agreements",
	"Education",
	"Care Plans",
	"Risk Assessments",
}

// ParseSection reports whether raw names a vault section.
func ParseSection(raw string) (DocumentSection, bool) {
	section := DocumentSection(raw)
	_, ok := sectionCategories[section]
	return section, ok
}

// SectionCategories returns the categories accepted for a section.
func SectionCategories(section DocumentSection) []string {
	return sectionCategories[section]
}

// IsSectionCategory reports whether category belongs to section.
func IsSectionCategory(section DocumentSection, category string) bool {
	for _, c := range sectionCategories[section] {
		if c == category {
			return true
		}
	}
	return false
}

// IsDocumentCategory reports whether category belongs to any section.
func IsDocumentCategory(category string) bool {
	for section := range sectionCategories {
		if IsSectionCategory(section, category) {
			return true
		}
	}
	return false
}

// IsYPFolderCategory reports whether category is a resident folder category.
func IsYPFolderCategory(category string) bool {
	for _, c := range YPFolderCategories {
		if c == category {
			return true
		}
	}
	return false
}
