package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"productlab/studyhub/internal/model"
)

var signupCSVHeader = []string{
	"First Name",
	"Last Name",
	"Email",
	"Role",
	"Company",
	"Company Size",
	"Years Experience",
	"Timezone",
	"Pronouns",
	"Signup Date",
}

// SignupExport is a rendered CSV download.
type SignupExport struct {
	Filename string
	Data     []byte
}

func (s *studyService) ExportSignupsCSV(ctx context.Context, studyID int64) (*SignupExport, error) {
	study, err := s.requireStudy(ctx, studyID)
	if err != nil {
		return nil, err
	}
	signups, err := s.signupRepo.ListByStudyID(ctx, studyID)
	if err != nil {
		return nil, fmt.Errorf("list signups: %w", err)
	}

	data, err := exportSignupsCSV(signups, s.loc)
	if err != nil {
		return nil, fmt.Errorf("render signups csv: %w", err)
	}
	return &SignupExport{
		Filename: fmt.Sprintf("%s-signups-%s.csv", fileSlug(study.Name), s.today()),
		Data:     data,
	}, nil
}

// exportSignupsCSV renders one row per signup; the signup date is the calendar day in loc.
func exportSignupsCSV(signups []model.StudySignup, loc *time.Location) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(signupCSVHeader); err != nil {
		return nil, err
	}
	for _, su := range signups {
		pronouns := ""
		if su.Pronouns != nil {
			pronouns = *su.Pronouns
		}
		rec := []string{
			su.FirstName,
			su.LastName,
			su.Email,
			su.Role,
			su.CompanyName,
			su.CompanySize,
			su.YearsExperience,
			su.Timezone,
			pronouns,
			model.DateOf(su.CreatedAt.In(loc)).String(),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// fileSlug folds name to an ASCII file name: accents are stripped, letters,
// digits, '-' and '_' are kept and whitespace runs become '-'.
func fileSlug(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.TrimSpace(folded) {
		switch {
		case r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'):
			b.WriteRune(r)
			dash = false
		case unicode.IsSpace(r):
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "study"
	}
	return slug
}
