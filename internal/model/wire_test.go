package model

import (
	"encoding/json"
	"testing"
)

func TestEpaperUnmarshal_NormalizesIDsAndPDF(t *testing.T) {
	raw := `{
		"id": 7,
		"name": "Morning Edition",
		"date": "2026-08-24",
		"status": "published",
		"file_type": "image",
		"created_by": 12,
		"images": [
			{"id": 31, "path": "pages/2.png", "position": 2},
			{"id": 30, "path": "pages/1.png", "position": 1}
		],
		"pdf_id": 3,
		"pdf_path": "pdfs/morning.pdf",
		"pdf_size": 1024
	}`

	var e Epaper
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.ID != "7" {
		t.Fatalf("expected string id %q, got %q", "7", e.ID)
	}
	if e.OwnerID != "12" {
		t.Fatalf("expected owner id %q, got %q", "12", e.OwnerID)
	}
	if e.PDF == nil {
		t.Fatalf("expected nested pdf from flat pdf_* fields")
	}
	if e.PDF.ID != "3" || e.PDF.Path != "pdfs/morning.pdf" || e.PDF.Size != 1024 {
		t.Fatalf("unexpected pdf: %+v", e.PDF)
	}
	if len(e.Images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(e.Images))
	}
	// Images come back sorted by position even if the payload isn't.
	if e.Images[0].ID != "30" || e.Images[1].ID != "31" {
		t.Fatalf("expected images sorted by position, got %+v", e.Images)
	}
}

func TestEpaperUnmarshal_NoPDFYieldsNil(t *testing.T) {
	raw := `{"id": "9", "name": "Draft", "date": "2026-01-01", "status": "draft"}`

	var e Epaper
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.PDF != nil {
		t.Fatalf("expected nil pdf when pdf_* fields absent, got %+v", e.PDF)
	}
	if e.ID != "9" {
		t.Fatalf("string ids pass through unchanged, got %q", e.ID)
	}
}

func TestUserUnmarshal_NumericID(t *testing.T) {
	raw := `{"id": 42, "name": "Ada", "email": "ada@example.com", "role": "editor"}`

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if u.ID != "42" {
		t.Fatalf("expected id %q, got %q", "42", u.ID)
	}
	if u.Role != RoleEditor {
		t.Fatalf("expected role editor, got %q", u.Role)
	}
}

func TestImageOrder(t *testing.T) {
	e := Epaper{Images: []PageImage{
		{ID: "a", Position: 1},
		{ID: "b", Position: 2},
		{ID: "c", Position: 3},
	}}
	got := e.ImageOrder()
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch at %d: %q != %q", i, got[i], want[i])
		}
	}
}
