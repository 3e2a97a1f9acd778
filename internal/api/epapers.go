package api

import (
	"context"
	"fmt"

	"presskit-cli/internal/model"
)

// EpaperFilters narrow a server-side list fetch. All fields optional.
type EpaperFilters struct {
	Search    string
	Status    model.Status
	StartDate string // YYYY-MM-DD
	EndDate   string
}

func (c *Client) ListEpapers(ctx context.Context, f EpaperFilters) ([]model.Epaper, error) {
	req := c.rc.R().SetContext(ctx)
	if f.Search != "" {
		req.SetQueryParam("search", f.Search)
	}
	if f.Status != "" {
		req.SetQueryParam("status", string(f.Status))
	}
	if f.StartDate != "" {
		req.SetQueryParam("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		req.SetQueryParam("endDate", f.EndDate)
	}

	var out listEnvelope[model.Epaper]
	resp, err := req.SetResult(&out).Get("/epapers")
	if err := check(resp, err, "editions"); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) GetEpaper(ctx context.Context, id string) (*model.Epaper, error) {
	var out model.Epaper
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/epapers/%s", id))
	if err := check(resp, err, "edition"); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetEpaperByDate fetches the edition published for date. A missing date
// comes back as *NotFoundError, which the public viewer turns into its
// not-found view.
func (c *Client) GetEpaperByDate(ctx context.Context, date string) (*model.Epaper, error) {
	var out model.Epaper
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParam("date", date).
		SetResult(&out).
		Get("/epapers/by-date")
	if err := check(resp, err, "edition"); err != nil {
		return nil, err
	}
	return &out, nil
}

// LatestDate returns the most recent date with a published edition.
func (c *Client) LatestDate(ctx context.Context) (string, error) {
	var out struct {
		Date string `json:"date"`
	}
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/epapers/latest-date")
	if err := check(resp, err, "edition"); err != nil {
		return "", err
	}
	return out.Date, nil
}

// DateRange returns the dates within [start, end] that have editions.
func (c *Client) DateRange(ctx context.Context, start, end string) ([]string, error) {
	var out struct {
		Dates []string `json:"dates"`
	}
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParam("startDate", start).
		SetQueryParam("endDate", end).
		SetResult(&out).
		Get("/epapers/date-range")
	if err := check(resp, err, "editions"); err != nil {
		return nil, err
	}
	return out.Dates, nil
}

// EpaperUpload is the multipart payload for creating or updating an
// edition. Paths reference local files staged for upload.
type EpaperUpload struct {
	Name     string
	Date     string // YYYY-MM-DD
	FileType string
	Status   model.Status

	ImagePaths []string
	PDFPath    string

	// Update-only knobs.
	RemovePDF      bool
	ReplaceImageID string
}

func (up EpaperUpload) formData() map[string]string {
	form := map[string]string{
		"name":     up.Name,
		"date":     up.Date,
		"fileType": up.FileType,
		"status":   string(up.Status),
	}
	if up.RemovePDF {
		form["removePDF"] = "true"
	}
	if up.ReplaceImageID != "" {
		form["replaceImageId"] = up.ReplaceImageID
	}
	return form
}

func (c *Client) CreateEpaper(ctx context.Context, up EpaperUpload) (*model.Epaper, error) {
	var out model.Epaper
	req := c.rc.R().
		SetContext(ctx).
		SetFormData(up.formData()).
		SetResult(&out)
	for _, p := range up.ImagePaths {
		req.SetFile("images", p)
	}
	if up.PDFPath != "" {
		req.SetFile("pdf", up.PDFPath)
	}

	resp, err := req.Post("/epapers")
	if err := check(resp, err, "edition"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEpaper(ctx context.Context, id string, up EpaperUpload) (*model.Epaper, error) {
	var out model.Epaper
	req := c.rc.R().
		SetContext(ctx).
		SetFormData(up.formData()).
		SetResult(&out)
	for _, p := range up.ImagePaths {
		req.SetFile("images", p)
	}
	if up.PDFPath != "" {
		req.SetFile("pdf", up.PDFPath)
	}

	resp, err := req.Put(fmt.Sprintf("/epapers/%s", id))
	if err := check(resp, err, "edition"); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReorderEpaper replaces the edition's canonical page order.
func (c *Client) ReorderEpaper(ctx context.Context, id string, imageOrder []string) error {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(map[string]any{"imageOrder": imageOrder}).
		Patch(fmt.Sprintf("/epapers/%s/reorder", id))
	return check(resp, err, "edition")
}

func (c *Client) DeleteEpaper(ctx context.Context, id string) error {
	resp, err := c.rc.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/epapers/%s", id))
	return check(resp, err, "edition")
}

func (c *Client) DeleteEpaperImage(ctx context.Context, id, imageID string) error {
	resp, err := c.rc.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/epapers/%s/images/%s", id, imageID))
	return check(resp, err, "page image")
}

// Download fetches a stored file (a page image or the companion PDF) to
// dest. path may be server-relative or absolute.
func (c *Client) Download(ctx context.Context, path, dest string) error {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetOutput(dest).
		Get(path)
	return check(resp, err, "file")
}
