package model

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// The backend sends numeric identifiers and a flattened pdf_* field group on
// epaper payloads. Decoding normalizes both: ids become strings, and the
// pdf_* fields fold into a nested EpaperPDF (nil when absent).

// wireID accepts a JSON number or string and normalizes to string.
type wireID string

func (w *wireID) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*w = wireID(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*w = wireID(s)
	return nil
}

func (w wireID) str() string { return strings.TrimSpace(string(w)) }

type userWire struct {
	ID        wireID    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Login     string    `json:"login"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) UnmarshalJSON(b []byte) error {
	var w userWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*u = User{
		ID:        w.ID.str(),
		Name:      w.Name,
		Email:     w.Email,
		Login:     w.Login,
		Role:      w.Role,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
	return nil
}

type pageImageWire struct {
	ID       wireID `json:"id"`
	Path     string `json:"path"`
	Position int    `json:"position"`
}

type epaperWire struct {
	ID        wireID          `json:"id"`
	Name      string          `json:"name"`
	Date      string          `json:"date"`
	Status    Status          `json:"status"`
	FileType  string          `json:"file_type"`
	Images    []pageImageWire `json:"images"`
	PDFID     *wireID         `json:"pdf_id"`
	PDFPath   string          `json:"pdf_path"`
	PDFSize   int64           `json:"pdf_size"`
	CreatedBy *wireID         `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (e *Epaper) UnmarshalJSON(b []byte) error {
	var w epaperWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	out := Epaper{
		ID:        w.ID.str(),
		Name:      w.Name,
		Date:      w.Date,
		Status:    w.Status,
		FileType:  w.FileType,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
	if w.CreatedBy != nil {
		out.OwnerID = w.CreatedBy.str()
	}

	for _, img := range w.Images {
		out.Images = append(out.Images, PageImage{
			ID:       img.ID.str(),
			Path:     img.Path,
			Position: img.Position,
		})
	}
	// Backend order is authoritative, but defend against unsorted payloads.
	sort.SliceStable(out.Images, func(i, j int) bool {
		return out.Images[i].Position < out.Images[j].Position
	})

	if w.PDFID != nil && w.PDFID.str() != "" {
		out.PDF = &EpaperPDF{
			ID:   w.PDFID.str(),
			Path: w.PDFPath,
			Size: w.PDFSize,
		}
	}

	*e = out
	return nil
}
