package newsportal

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/Wintario/sin-city-sentinels/internal/access"
	"github.com/Wintario/sin-city-sentinels/internal/auth"
	"github.com/Wintario/sin-city-sentinels/internal/domain"
)

var userRoles = []string{string(access.RoleAdmin), string(access.RoleAuthor)}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// urlRule accepts absolute http(s) URLs and site-relative paths such as /uploads/a.png.
var urlRule = validation.By(func(value interface{}) error {
	iv, _ := validation.Indirect(value)
	v, _ := iv.(string)
	if v == "" {
		return nil
	}
	if strings.HasPrefix(v, "/") {
		return is.RequestURI.Validate(v)
	}

	return is.URL.Validate(v)
})

func inRule(values []string) validation.Rule {
	allowed := make([]interface{}, len(values))
	for i, v := range values {
		allowed[i] = v
	}

	return validation.In(allowed...).Error("must be one of: " + strings.Join(values, ", "))
}

// fieldErrors converts ozzo errors into a ValidationError listing every failed field.
// Internal rule errors are passed through.
func fieldErrors(err error) (*domain.ValidationError, error) {
	verr := domain.NewValidationError()
	if err == nil {
		return verr, nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return nil, err
	}

	for field, fe := range errs {
		if fe == nil {
			continue
		}
		var nested validation.Errors
		if errors.As(fe, &nested) {
			for sub, se := range nested {
				verr.Add(field+"."+sub, se.Error())
			}
			continue
		}
		verr.Add(field, fe.Error())
	}

	return verr, nil
}

func validationError(err error) error {
	verr, err := fieldErrors(err)
	if err != nil {
		return err
	}

	return verr.OrNil()
}

func (in *NewsInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	trimPtr(in.Excerpt)
	trimPtr(in.ImageURL)
}

func (in NewsInput) Validate() error {
	return validationError(validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.RuneLength(3, 200)),
		validation.Field(&in.Content, validation.Required, validation.RuneLength(10, 50000)),
		validation.Field(&in.Excerpt, validation.RuneLength(0, 500)),
		validation.Field(&in.ImageURL, urlRule),
	))
}

func (p *NewsPatch) normalize() {
	trimPtr(p.Title)
	trimPtr(p.Content)
	trimPtr(p.Excerpt)
	trimPtr(p.ImageURL)
}

func (p NewsPatch) Validate() error {
	return validationError(validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.NilOrNotEmpty, validation.RuneLength(3, 200)),
		validation.Field(&p.Content, validation.NilOrNotEmpty, validation.RuneLength(10, 50000)),
		validation.Field(&p.Excerpt, validation.RuneLength(0, 500)),
		validation.Field(&p.ImageURL, urlRule),
	))
}

func (in *MemberInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Role = strings.TrimSpace(in.Role)
	in.Status = strings.TrimSpace(in.Status)
	if in.Status == "" {
		in.Status = MemberStatuses[0]
	}
	trimPtr(in.ProfileURL)
	trimPtr(in.AvatarURL)
}

func (in MemberInput) validate(roles []string) (*domain.ValidationError, error) {
	return fieldErrors(validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.RuneLength(2, 100)),
		validation.Field(&in.Role, validation.Required, inRule(roles)),
		validation.Field(&in.Status, validation.Required, inRule(MemberStatuses)),
		validation.Field(&in.ProfileURL, urlRule),
		validation.Field(&in.AvatarURL, urlRule),
	))
}

func (p *MemberPatch) normalize() {
	trimPtr(p.Name)
	trimPtr(p.ProfileURL)
	trimPtr(p.AvatarURL)
}

func (p MemberPatch) validate() (*domain.ValidationError, error) {
	return fieldErrors(validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.NilOrNotEmpty, validation.RuneLength(2, 100)),
		validation.Field(&p.ProfileURL, urlRule),
		validation.Field(&p.AvatarURL, urlRule),
	))
}

func (in *AboutCardInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Style = strings.TrimSpace(in.Style)
	if in.Style == "" {
		in.Style = StyleComicThickFrame
	}
	trimPtr(in.ImageURL)
}

func (in AboutCardInput) Validate() error {
	return validationError(validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&in.Description, validation.Required, validation.RuneLength(1, 5000)),
		validation.Field(&in.ImageURL, urlRule),
		validation.Field(&in.Style, validation.Required, inRule(AboutCardStyles)),
	))
}

func (p *AboutCardPatch) normalize() {
	trimPtr(p.Title)
	trimPtr(p.Description)
	trimPtr(p.ImageURL)
	trimPtr(p.Style)
}

func (p AboutCardPatch) Validate() error {
	return validationError(validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.NilOrNotEmpty, validation.RuneLength(1, 200)),
		validation.Field(&p.Description, validation.NilOrNotEmpty, validation.RuneLength(1, 5000)),
		validation.Field(&p.ImageURL, urlRule),
		validation.Field(&p.Style, validation.NilOrNotEmpty, inRule(AboutCardStyles)),
	))
}

func (in *UserInput) normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Role = strings.TrimSpace(in.Role)
	if in.Role == "" {
		in.Role = string(access.RoleAuthor)
	}
}

func (in UserInput) Validate() error {
	return validationError(validation.ValidateStruct(&in,
		validation.Field(&in.Username, validation.Required, validation.RuneLength(2, 64)),
		validation.Field(&in.Password, validation.Required, validation.Length(auth.MinPasswordLength, auth.MaxPasswordLength)),
		validation.Field(&in.Role, validation.Required, inRule(userRoles)),
	))
}

func (p *UserPatch) normalize() {
	trimPtr(p.Role)
}

func (p UserPatch) Validate() error {
	return validationError(validation.ValidateStruct(&p,
		validation.Field(&p.Password, validation.NilOrNotEmpty, validation.Length(auth.MinPasswordLength, auth.MaxPasswordLength)),
		validation.Field(&p.Role, validation.NilOrNotEmpty, inRule(userRoles)),
	))
}

func (p *BackgroundPatch) normalize() {
	trimPtr(p.ImageURL)
	trimPtr(p.Color)
}

func (p BackgroundPatch) Validate() error {
	return validationError(validation.ValidateStruct(&p,
		validation.Field(&p.ImageURL, urlRule),
		validation.Field(&p.Color, validation.NilOrNotEmpty, validation.Match(hexColor).Error("must be a hex color like #1a1a1a")),
		validation.Field(&p.Opacity, validation.Min(0.0), validation.Max(1.0)),
	))
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
