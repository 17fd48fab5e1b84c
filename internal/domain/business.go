package domain

// Default brand colors applied when a business does not choose its own.
const (
	DefaultPrimaryColor = "#4F46E5"
	DefaultAccentColor  = "#F59E0B"
)

// Business is the company profile owned by a user
type Business struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	Industry     *string `json:"industry"`
	LogoURL      *string `json:"logoUrl"`
	PrimaryColor string  `json:"primaryColor"`
	AccentColor  string  `json:"accentColor"`
	UserID       int64   `json:"userId"`
}

// CreateBusinessInput carries the fields accepted when creating a business.
// Empty optional strings are stored as absent.
type CreateBusinessInput struct {
	Name         string
	Description  string
	Industry     string
	LogoURL      string
	PrimaryColor string
	AccentColor  string
	UserID       int64
}

// BusinessPatch is a shallow merge over the documented Business fields.
// Nil fields are left untouched.
type BusinessPatch struct {
	Name         *string
	Description  *string
	Industry     *string
	LogoURL      *string
	PrimaryColor *string
	AccentColor  *string
}

// NewBusiness builds a Business from input with defaults applied
func NewBusiness(in CreateBusinessInput) Business {
	return Business{
		Name:         in.Name,
		Description:  optional(in.Description),
		Industry:     optional(in.Industry),
		LogoURL:      optional(in.LogoURL),
		PrimaryColor: withDefault(in.PrimaryColor, DefaultPrimaryColor),
		AccentColor:  withDefault(in.AccentColor, DefaultAccentColor),
		UserID:       in.UserID,
	}
}

// Apply merges the patch onto b
func (p BusinessPatch) Apply(b *Business) {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Description != nil {
		b.Description = optional(*p.Description)
	}
	if p.Industry != nil {
		b.Industry = optional(*p.Industry)
	}
	if p.LogoURL != nil {
		b.LogoURL = optional(*p.LogoURL)
	}
	if p.PrimaryColor != nil {
		b.PrimaryColor = withDefault(*p.PrimaryColor, DefaultPrimaryColor)
	}
	if p.AccentColor != nil {
		b.AccentColor = withDefault(*p.AccentColor, DefaultAccentColor)
	}
}

// Clone returns a copy of b that shares no pointers with it
func (b Business) Clone() Business {
	b.Description = cloneString(b.Description)
	b.Industry = cloneString(b.Industry)
	b.LogoURL = cloneString(b.LogoURL)
	return b
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func withDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
