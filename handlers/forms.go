package handlers

import (
	"strings"

	"github.com/dmitrymomot/ryob/forum"
	"github.com/dmitrymomot/ryob/pkg/validator"
)

// registerForm is posted by /register.
type registerForm struct {
	Name     string `form:"user_name" sanitize:"trim"`
	Password string `form:"password"`
	Confirm  string `form:"password_confirm"`
}

func (f registerForm) Validate() error {
	return forum.ValidateRegistration(f.Name, f.Password, f.Confirm)
}

// usersRegisterForm is posted by /users/register. Only the confirmation
// field name differs; the rules are the same.
type usersRegisterForm struct {
	Name     string `form:"user_name" sanitize:"trim"`
	Password string `form:"password"`
	Confirm  string `form:"confirm_password"`
}

func (f usersRegisterForm) Validate() error {
	return forum.ValidateRegistration(f.Name, f.Password, f.Confirm)
}

type loginForm struct {
	Name     string `form:"user_name" sanitize:"trim" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type topicForm struct {
	Title string `form:"title" sanitize:"control,trim,collapse" validate:"required,max=200"`
}

type postForm struct {
	Content string `form:"content" sanitize:"newlines,control,trim" validate:"required,max=20000"`
}

var fieldLabels = map[string]string{
	"user_name": "Name",
	"password":  "Password",
	"title":     "Title",
	"content":   "Reply",
}

// messages turns validation failures into sentences for the form.
func messages(verrs validator.ValidationErrors) []string {
	out := make([]string, 0, len(verrs))
	for _, e := range verrs {
		label, ok := fieldLabels[e.Field]
		switch {
		case !ok:
			out = append(out, e.Message)
		case e.TranslationKey == "validation.required":
			out = append(out, label+" is required")
		case strings.HasPrefix(e.Message, "must"):
			out = append(out, label+" "+e.Message)
		default:
			out = append(out, e.Message)
		}
	}
	return out
}
