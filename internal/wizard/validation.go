package wizard

import (
	"regexp"
	"strings"
)

// Field identifies an input with inline validation.
type Field string

const (
	FieldSiteName    Field = "siteName"
	FieldDescription Field = "description"
	FieldFullName    Field = "fullName"
)

// Message keys surfaced to the host for translation.
const (
	msgSiteNameRequired    = "order.validation.site_name_required"
	msgSiteNameMin         = "order.validation.site_name_min"
	msgSiteNameMax         = "order.validation.site_name_max"
	msgDescriptionRequired = "order.validation.description_required"
	msgDescriptionMin      = "order.validation.description_min"
	msgDescriptionMax      = "order.validation.description_max"
	msgNameRequired        = "order.validation.name_required"
	msgNameMin             = "order.validation.name_min"
	msgNameMax             = "order.validation.name_max"
	msgEmailInvalid        = "contact.validation.email_invalid"
	msgRefFormat           = "order.error_id_format"
	msgRefTaken            = "order.error_id_taken"
)

var (
	refPattern   = regexp.MustCompile(`^\d{8}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// SetSiteType selects the site category.
func (w *Wizard) SetSiteType(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.SiteType = v
}

// SetSiteTypeOther sets the free-text category used with SiteType "other".
func (w *Wizard) SetSiteTypeOther(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.SiteTypeOther = v
}

// SetSiteName updates the site name and recomputes its inline error.
func (w *Wizard) SetSiteName(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.SiteName = v
	w.validateField(FieldSiteName, v)
}

// SetDescription updates the description and recomputes its inline error.
func (w *Wizard) SetDescription(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Description = v
	w.validateField(FieldDescription, v)
}

// SetFullName updates the full name and recomputes its inline error.
func (w *Wizard) SetFullName(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.FullName = v
	w.validateField(FieldFullName, v)
}

// SetEmail updates the email. Its error is not touched-gated; it clears as
// soon as the value becomes valid or empty.
func (w *Wizard) SetEmail(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Email = v
	if v != "" && !emailPattern.MatchString(v) {
		w.emailError = msgEmailInvalid
	} else {
		w.emailError = ""
	}
}

// SetOrderRef updates the order reference. Non-digits are stripped and the
// value is capped at 8 characters. Any in-flight uniqueness check is
// invalidated.
func (w *Wizard) SetOrderRef(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	v = nonDigits.ReplaceAllString(v, "")
	if len(v) > 8 {
		v = v[:8]
	}
	w.draft.OrderRef = v
	w.refError = ""
	w.refSeq++
}

// SetPrimaryColor sets the primary brand color.
func (w *Wizard) SetPrimaryColor(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.PrimaryColor = v
}

// SetSecondaryColor sets the secondary brand color.
func (w *Wizard) SetSecondaryColor(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.SecondaryColor = v
}

// AddOtherColor appends an extra palette color.
func (w *Wizard) AddOtherColor(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.OtherColors = append(w.draft.OtherColors, v)
}

// RemoveOtherColor drops the extra palette color at i.
func (w *Wizard) RemoveOtherColor(i int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i < 0 || i >= len(w.draft.OtherColors) {
		return
	}
	w.draft.OtherColors = append(w.draft.OtherColors[:i], w.draft.OtherColors[i+1:]...)
}

// AddLogoURL appends an empty logo slot.
func (w *Wizard) AddLogoURL() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.LogoURLs = append(w.draft.LogoURLs, "")
}

// SetLogoURL updates the logo URL at i.
func (w *Wizard) SetLogoURL(i int, v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i < 0 || i >= len(w.draft.LogoURLs) {
		return
	}
	w.draft.LogoURLs[i] = v
}

// RemoveLogoURL drops the logo slot at i, keeping at least one slot.
func (w *Wizard) RemoveLogoURL(i int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.draft.LogoURLs) <= 1 || i < 0 || i >= len(w.draft.LogoURLs) {
		return
	}
	w.draft.LogoURLs = append(w.draft.LogoURLs[:i], w.draft.LogoURLs[i+1:]...)
}

// SetSpecificInstructions sets the optional instructions.
func (w *Wizard) SetSpecificInstructions(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.SpecificInstructions = v
}

// SetBudget sets the optional budget amount.
func (w *Wizard) SetBudget(v *float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Budget = v
}

// SetBudgetText sets the optional budget note.
func (w *Wizard) SetBudgetText(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.BudgetText = v
}

// Touch marks a field as blurred at least once. Errors only surface for
// touched fields.
func (w *Wizard) Touch(f Field) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touched[f] = true
}

// FieldError returns the inline error for f, or "" while the field has not
// been touched. Errors are recomputed on every change regardless.
func (w *Wizard) FieldError(f Field) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.touched[f] {
		return ""
	}
	return w.fieldErrors[f]
}

// EmailError returns the email inline error.
func (w *Wizard) EmailError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.emailError
}

// RefError returns the order-reference inline error (bad format or taken).
func (w *Wizard) RefError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.refError
}

// validateField recomputes the inline error for f. Caller holds w.mu.
func (w *Wizard) validateField(f Field, value string) {
	trimmed := strings.TrimSpace(value)
	var msg string
	switch f {
	case FieldSiteName:
		switch {
		case trimmed == "":
			msg = msgSiteNameRequired
		case len(trimmed) < 2:
			msg = msgSiteNameMin
		case len(trimmed) > 100:
			msg = msgSiteNameMax
		}
	case FieldDescription:
		switch {
		case trimmed == "":
			msg = msgDescriptionRequired
		case len(trimmed) < 20:
			msg = msgDescriptionMin
		case len(trimmed) > 2000:
			msg = msgDescriptionMax
		}
	case FieldFullName:
		switch {
		case trimmed == "":
			msg = msgNameRequired
		case len(trimmed) < 2:
			msg = msgNameMin
		case len(trimmed) > 100:
			msg = msgNameMax
		}
	}
	if msg == "" {
		delete(w.fieldErrors, f)
		return
	}
	w.fieldErrors[f] = msg
}
