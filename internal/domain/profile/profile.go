package profile

import (
	"encoding/json"
	"errors"
)

var (
	ErrNotFound = errors.New("user not found")
	ErrNoAbout  = errors.New("no about section found")
)

// About holds the free text used to personalise generated messages.
// Values may be empty strings.
type About struct {
	Background string `json:"background"`
	Dreams     string `json:"dreams"`
	Challenges string `json:"challenges"`
	Values     string `json:"values"`

	// set when decoded from an object with none of the keys, e.g. a hand edited {}
	blank bool
}

func (a *About) UnmarshalJSON(data []byte) error {
	var raw struct {
		Background *string `json:"background"`
		Dreams     *string `json:"dreams"`
		Challenges *string `json:"challenges"`
		Values     *string `json:"values"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*a = About{
		Background: deref(raw.Background),
		Dreams:     deref(raw.Dreams),
		Challenges: deref(raw.Challenges),
		Values:     deref(raw.Values),
		blank:      raw.Background == nil && raw.Dreams == nil && raw.Challenges == nil && raw.Values == nil,
	}
	return nil
}

type Profile struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	About *About `json:"about,omitempty"`
}

// Document is the on-disk shape: either {} or {"user": {...}}.
type Document struct {
	User *Profile `json:"user,omitempty"`
}

// AboutInput is the wire form of About. Every key must be sent; "" is a valid value.
type AboutInput struct {
	Background *string `json:"background" binding:"required"`
	Dreams     *string `json:"dreams" binding:"required"`
	Challenges *string `json:"challenges" binding:"required"`
	Values     *string `json:"values" binding:"required"`
}

func (in *AboutInput) About() *About {
	if in == nil {
		return nil
	}
	return &About{
		Background: deref(in.Background),
		Dreams:     deref(in.Dreams),
		Challenges: deref(in.Challenges),
		Values:     deref(in.Values),
	}
}

// CreateProfileRequest requires every key to be present. Empty strings are accepted.
type CreateProfileRequest struct {
	Name  *string     `json:"name" binding:"required,max=200"`
	Role  *string     `json:"role" binding:"required,max=200"`
	About *AboutInput `json:"about" binding:"required"`
}

func (r CreateProfileRequest) Profile() Profile {
	return Profile{
		Name:  deref(r.Name),
		Role:  deref(r.Role),
		About: r.About.About(),
	}
}

// UpdateProfileRequest is a partial update. A supplied about must carry all four keys.
type UpdateProfileRequest struct {
	Role  string      `json:"role" binding:"omitempty,max=200"`
	About *AboutInput `json:"about"`
}

func (r UpdateProfileRequest) Patch() Patch {
	return Patch{Role: r.Role, About: r.About.About()}
}

// Patch is a validated partial update: empty Role is ignored, a non-nil About
// replaces the whole section.
type Patch struct {
	Role  string
	About *About
}

// Apply returns p with the patch applied. p is not modified.
func (p Profile) Apply(patch Patch) Profile {
	out := p
	out.About = p.About.clone()

	if patch.Role != "" {
		out.Role = patch.Role
	}
	if patch.About != nil {
		out.About = patch.About.clone()
	}
	return out
}

// RequireAbout returns the about section, or ErrNoAbout when it is missing or
// stored as an empty object.
func (p Profile) RequireAbout() (About, error) {
	if p.About == nil || p.About.blank {
		return About{}, ErrNoAbout
	}
	return *p.About, nil
}

func (a *About) clone() *About {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
