package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"Lee_Groups/internal/apperr"
	"Lee_Groups/internal/model"
	"Lee_Groups/internal/pkg"
)

const (
	usernameMaxLen = 150
	emailMaxLen    = 254
	nameMaxLen     = 150
)

var (
	validate      = validator.New()
	usernameChars = regexp.MustCompile(`^[a-z0-9@.+_-]+$`)
)

// fieldErrors 收集字段错误，没有错误时 err() 返回 nil
type fieldErrors struct {
	e *apperr.Error
}

func (f *fieldErrors) add(field, code string) {
	if f.e == nil {
		f.e = &apperr.Error{Kind: apperr.KindValidation, Code: apperr.CodeInvalid}
	}
	f.e.Add(field, code)
}

func (f *fieldErrors) err() error {
	if f.e == nil {
		return nil
	}
	return f.e
}

func checkUsername(f *fieldErrors, username string) {
	switch {
	case username == "":
		f.add("username", apperr.CodeRequired)
	case utf8.RuneCountInString(username) > usernameMaxLen:
		f.add("username", apperr.CodeTooLong)
	case !usernameChars.MatchString(username):
		f.add("username", apperr.CodeInvalidUsernameChar)
	}
}

func checkEmail(f *fieldErrors, email string) {
	switch {
	case email == "":
		f.add("email", apperr.CodeRequired)
	case len(email) > emailMaxLen:
		f.add("email", apperr.CodeTooLong)
	case validate.Var(email, "email") != nil:
		f.add("email", "invalid_email")
	}
}

func checkMax(f *fieldErrors, field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		f.add(field, apperr.CodeTooLong)
	}
}

// checkPassword 先比较两次输入，再检查强度
func checkPassword(password, confirm string, attrs ...string) error {
	if password != confirm {
		return apperr.Validation("password", apperr.CodePasswordMismatch)
	}
	if reasons := pkg.CheckPasswordStrength(password, attrs...); len(reasons) > 0 {
		e := apperr.Validation("password", apperr.CodeWeakPassword)
		for _, r := range reasons {
			e.Add("password", r)
		}
		return e
	}
	return nil
}

func validateRegister(in RegisterInput) error {
	var f fieldErrors
	checkUsername(&f, in.Username)
	checkEmail(&f, in.Email)
	checkMax(&f, "first_name", in.FirstName, nameMaxLen)
	checkMax(&f, "last_name", in.LastName, nameMaxLen)
	return f.err()
}

func validateUser(u *model.User) error {
	var f fieldErrors
	checkUsername(&f, u.Username)
	checkEmail(&f, u.Email)
	checkMax(&f, "first_name", u.FirstName, nameMaxLen)
	checkMax(&f, "last_name", u.LastName, nameMaxLen)
	return f.err()
}

func validateGroup(g *model.Group) error {
	var f fieldErrors
	if strings.TrimSpace(g.Name) == "" {
		f.add("name", apperr.CodeRequired)
	}
	checkMax(&f, "name", g.Name, model.GroupNameMaxLen)
	return f.err()
}

func validatePost(p *model.Post) error {
	var f fieldErrors
	if p.GroupID == 0 {
		f.add("group", apperr.CodeRequired)
	}
	if strings.TrimSpace(p.Content) == "" {
		f.add("content", apperr.CodeRequired)
	}
	checkMax(&f, "title", p.Title, model.PostTitleMaxLen)
	return f.err()
}
