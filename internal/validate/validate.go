package validate

import (
	"regexp"
	"strings"

	"github.com/cookite/cookite-go/internal/domain"
)

var (
	reEmail     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	reNonDigit  = regexp.MustCompile(`\D`)
	rePhoneLead = regexp.MustCompile(`^[1-9]\d`)
)

// deniedDomains are known-fake email domains rejected by the authoritative
// server-side pass only.
var deniedDomains = map[string]struct{}{
	"example.com": {},
	"test.com":    {},
	"fake.com":    {},
	"invalid.com": {},
}

// Digits strips every non-digit character.
func Digits(s string) string {
	return reNonDigit.ReplaceAllString(s, "")
}

// IsValidEmail checks the permissive local@domain.tld shape with no
// embedded whitespace.
func IsValidEmail(s string) bool {
	return reEmail.MatchString(s)
}

// IsValidBrazilianPhone accepts 10-digit landlines and 11-digit mobiles,
// area code first digit 1-9.
func IsValidBrazilianPhone(s string) bool {
	d := Digits(s)
	return len(d) >= 10 && len(d) <= 11 && rePhoneLead.MatchString(d)
}

// DeniedEmailDomain reports whether the email's domain is on the deny-list.
// Malformed input without a domain part counts as denied.
func DeniedEmailDomain(email string) bool {
	_, dom, ok := strings.Cut(email, "@")
	if !ok || dom == "" {
		return true
	}
	_, denied := deniedDomains[strings.ToLower(dom)]
	return denied
}

// FormatPhone applies the Brazilian progressive phone mask: up to 10 digits
// as (XX) XXXX-XXXX, 11 digits as (XX) XXXXX-XXXX. Partial input formats
// partially; input with more than 11 digits is returned as typed.
func FormatPhone(raw string) string {
	d := Digits(raw)
	if len(d) > 11 {
		return raw
	}

	mid := 4
	if len(d) > 10 {
		mid = 5
	}

	area := d
	if len(area) > 2 {
		area = d[:2]
	}
	rest := d[len(area):]
	middle := rest
	if len(middle) > mid {
		middle = rest[:mid]
	}
	tail := rest[len(middle):]

	var b strings.Builder
	if area != "" {
		b.WriteByte('(')
		b.WriteString(area)
	}
	if len(area) == 2 {
		b.WriteString(") ")
	}
	b.WriteString(middle)
	if tail != "" {
		b.WriteByte('-')
		b.WriteString(tail)
	}
	return b.String()
}

// CustomerInput carries the fields to check in one validation pass. A nil
// field means "not checked this pass", which is how incremental per-field
// validation avoids flagging untouched inputs.
type CustomerInput struct {
	Name  *string
	Email *string
	Phone *string
}

// FullCustomer builds an input that checks every field of c.
func FullCustomer(c domain.Customer) CustomerInput {
	return CustomerInput{Name: &c.Name, Email: &c.Email, Phone: &c.Phone}
}

// Customer runs the local (non-authoritative) field checks and accumulates
// every violation.
func Customer(in CustomerInput) []domain.FieldError {
	var errs []domain.FieldError

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		switch {
		case name == "":
			errs = append(errs, domain.FieldError{Field: "name", Message: "Nome é obrigatório"})
		case len([]rune(name)) < 2:
			errs = append(errs, domain.FieldError{Field: "name", Message: "Nome muito curto"})
		}
	}

	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		switch {
		case email == "":
			errs = append(errs, domain.FieldError{Field: "email", Message: "Email é obrigatório"})
		case !IsValidEmail(email):
			errs = append(errs, domain.FieldError{Field: "email", Message: "Email inválido"})
		}
	}

	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		switch {
		case phone == "":
			errs = append(errs, domain.FieldError{Field: "phone", Message: "Telefone é obrigatório"})
		case !IsValidBrazilianPhone(phone):
			errs = append(errs, domain.FieldError{Field: "phone", Message: "Número inválido. Use formato (XX) XXXXX-XXXX"})
		}
	}

	return errs
}
