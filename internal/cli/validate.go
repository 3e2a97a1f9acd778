package cli

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"presskit-cli/internal/model"
)

// Local form validation runs before any network call and blocks submission
// entirely, listing all violations at once.

var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLen = 8

type UserForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Role            model.Role

	// Creating requires a password; updates may leave it blank.
	Creating bool
}

func (f UserForm) Validate() []string {
	var problems []string
	if strings.TrimSpace(f.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(f.Email) == "" {
		problems = append(problems, "email is required")
	} else if !emailShape.MatchString(f.Email) {
		problems = append(problems, "email is not a valid address")
	}
	if f.Creating && f.Password == "" {
		problems = append(problems, "password is required")
	}
	if f.Password != "" {
		if len(f.Password) < minPasswordLen {
			problems = append(problems, fmt.Sprintf("password must be at least %d characters", minPasswordLen))
		}
		if f.Password != f.ConfirmPassword {
			problems = append(problems, "passwords do not match")
		}
	}
	if f.Role != "" && !model.KnownRole(f.Role) {
		problems = append(problems, fmt.Sprintf("unknown role %q (superadmin, admin, editor)", f.Role))
	}
	return problems
}

type EpaperForm struct {
	Name   string
	Date   string
	Status model.Status
}

func (f EpaperForm) Validate() []string {
	var problems []string
	if strings.TrimSpace(f.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(f.Date) == "" {
		problems = append(problems, "date is required")
	} else if _, err := time.Parse("2006-01-02", f.Date); err != nil {
		problems = append(problems, "date must be YYYY-MM-DD")
	}
	switch f.Status {
	case "", model.StatusDraft, model.StatusPublished, model.StatusArchived:
	default:
		problems = append(problems, fmt.Sprintf("unknown status %q (draft, published, archived)", f.Status))
	}
	return problems
}

func validationError(problems []string) error {
	return fmt.Errorf("invalid form:\n  - %s", strings.Join(problems, "\n  - "))
}
