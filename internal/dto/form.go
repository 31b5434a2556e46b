package dto

import (
	"strconv"

	"github.com/yatube/post-service/internal/model"
)

type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldChoice   FieldKind = "choice"
	FieldPassword FieldKind = "password"
)

type Choice struct {
	Value    string
	Label    string
	Selected bool
}

type FormField struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	Value    string
	Choices  []Choice
	Error    string
}

// Form describes an HTML form: its fields in display order plus
// form-level errors.
type Form struct {
	Order  []string
	Fields map[string]*FormField
	Errors []string
}

func newForm(fields ...*FormField) *Form {
	f := &Form{
		Fields: make(map[string]*FormField, len(fields)),
	}
	for _, field := range fields {
		f.Order = append(f.Order, field.Name)
		f.Fields[field.Name] = field
	}
	return f
}

func (f *Form) Field(name string) *FormField {
	return f.Fields[name]
}

func (f *Form) Ordered() []*FormField {
	fields := make([]*FormField, 0, len(f.Order))
	for _, name := range f.Order {
		fields = append(fields, f.Fields[name])
	}
	return fields
}

func (f *Form) AddError(field string, msg string) {
	if field == "" {
		f.Errors = append(f.Errors, msg)
		return
	}
	if ff, ok := f.Fields[field]; ok {
		ff.Error = msg
	}
}

func (f *Form) Valid() bool {
	if len(f.Errors) > 0 {
		return false
	}
	for _, field := range f.Fields {
		if field.Error != "" {
			return false
		}
	}
	return true
}

// NewPostForm builds the post form. group is the selected group id or "".
func NewPostForm(groups []*model.Group, text string, group string) *Form {
	choices := make([]Choice, 0, len(groups)+1)
	choices = append(choices, Choice{Value: "", Label: "---------", Selected: group == ""})
	for _, g := range groups {
		value := strconv.FormatInt(g.ID, 10)
		choices = append(choices, Choice{
			Value:    value,
			Label:    g.Title,
			Selected: value == group,
		})
	}

	return newForm(
		&FormField{
			Name:     "text",
			Label:    "Текст поста",
			Kind:     FieldText,
			Required: true,
			Value:    text,
		},
		&FormField{
			Name:    "group",
			Label:   "Группа",
			Kind:    FieldChoice,
			Value:   group,
			Choices: choices,
		},
	)
}

// PostFormFrom pre-populates the post form from an existing post.
func PostFormFrom(groups []*model.Group, post model.Post) *Form {
	group := ""
	if post.GroupID != nil {
		group = strconv.FormatInt(*post.GroupID, 10)
	}
	return NewPostForm(groups, post.Text, group)
}

func NewLoginForm(username string) *Form {
	return credentialsForm(username)
}

func NewSignUpForm(username string) *Form {
	return credentialsForm(username)
}

func credentialsForm(username string) *Form {
	return newForm(
		&FormField{Name: "username", Label: "Имя пользователя", Kind: FieldText, Required: true, Value: username},
		&FormField{Name: "password", Label: "Пароль", Kind: FieldPassword, Required: true},
	)
}
