package cli

import (
	"errors"
	"fmt"

	"presskit-cli/internal/api"
)

// humanize maps the API error taxonomy onto the messages users see. The
// session-expiry case points at re-login; everything else passes through
// its normalized message.
func humanize(err error) string {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return "session missing or expired; run `presskit login`"
	case errors.Is(err, api.ErrForbidden):
		return "permission denied"
	}

	var nf *api.NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	var ve *api.ValidationError
	if errors.As(err, &ve) {
		return fmt.Sprintf("invalid input: %s", ve.Message)
	}
	return err.Error()
}
