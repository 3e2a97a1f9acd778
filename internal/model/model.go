package model

import "time"

type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleEditor     Role = "editor"
)

// KnownRole reports whether r is one of the roles the backend issues.
func KnownRole(r Role) bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleEditor:
		return true
	}
	return false
}

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Login     string    `json:"login,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PageImage is one page of an edition. Position is 1-based and contiguous
// within an edition.
type PageImage struct {
	ID       string `json:"id"`
	Path     string `json:"path"`
	Position int    `json:"position"`
}

type EpaperPDF struct {
	ID   string `json:"id"`
	Path string `json:"path"`
	Size int64  `json:"size,omitempty"`
}

// Epaper is one dated newspaper issue: ordered page images and/or a PDF.
type Epaper struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Date     string `json:"date"` // YYYY-MM-DD
	Status   Status `json:"status"`
	FileType string `json:"fileType,omitempty"`

	Images []PageImage `json:"images,omitempty"`
	PDF    *EpaperPDF  `json:"pdf,omitempty"`

	OwnerID   string    `json:"ownerId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ImageOrder returns the edition's image ids in position order.
func (e *Epaper) ImageOrder() []string {
	out := make([]string, 0, len(e.Images))
	for _, img := range e.Images {
		out = append(out, img.ID)
	}
	return out
}
