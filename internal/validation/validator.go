package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/breachxpress-api/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AllowedEvidenceExtensions is the allow-list for evidence uploads
var AllowedEvidenceExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".doc":  true,
	".docx": true,
}

const maxMetaDescriptionLen = 160

// ValidateSubmission validates a submission intake payload before any write.
// A non-nil return means nothing was stored.
func ValidateSubmission(in *models.SubmissionInput) models.ValidationErrors {
	var errs models.ValidationErrors

	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, models.FieldError{Field: "title", Message: "title is required"})
	}
	if strings.TrimSpace(in.Summary) == "" {
		errs = append(errs, models.FieldError{Field: "summary", Message: "summary is required"})
	}
	if strings.TrimSpace(in.Story) == "" {
		errs = append(errs, models.FieldError{Field: "story", Message: "story is required"})
	}
	if in.Category == "" {
		errs = append(errs, models.FieldError{Field: "category", Message: "category is required"})
	} else if !models.ValidCategories[in.Category] {
		errs = append(errs, models.FieldError{
			Field:   "category",
			Message: "invalid category, must be one of: user_submitted, corruption, investigative, justice, other",
			Value:   in.Category,
		})
	}
	if len(in.MetaDescription) > maxMetaDescriptionLen {
		errs = append(errs, models.FieldError{
			Field:   "meta_description",
			Message: fmt.Sprintf("must be at most %d characters", maxMetaDescriptionLen),
		})
	}

	return errs
}

// ValidateArticleInput validates an operator article payload
func ValidateArticleInput(in *models.ArticleInput) models.ValidationErrors {
	var errs models.ValidationErrors

	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, models.FieldError{Field: "title", Message: "title is required"})
	}
	if strings.TrimSpace(in.Summary) == "" {
		errs = append(errs, models.FieldError{Field: "summary", Message: "summary is required"})
	}
	if strings.TrimSpace(in.Body) == "" {
		errs = append(errs, models.FieldError{Field: "body", Message: "body is required"})
	}
	if in.Category != "" && !models.ValidCategories[in.Category] {
		errs = append(errs, models.FieldError{
			Field:   "category",
			Message: "invalid category, must be one of: user_submitted, corruption, investigative, justice, other",
			Value:   in.Category,
		})
	}
	if len(in.MetaDescription) > maxMetaDescriptionLen {
		errs = append(errs, models.FieldError{
			Field:   "meta_description",
			Message: fmt.Sprintf("must be at most %d characters", maxMetaDescriptionLen),
		})
	}

	return errs
}

// ValidateContact validates a contact form payload
func ValidateContact(c *models.Contact) models.ValidationErrors {
	var errs models.ValidationErrors

	if c.Email == "" {
		errs = append(errs, models.FieldError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(c.Email) {
		errs = append(errs, models.FieldError{Field: "email", Message: "invalid email format", Value: c.Email})
	}
	if strings.TrimSpace(c.Subject) == "" {
		errs = append(errs, models.FieldError{Field: "subject", Message: "subject is required"})
	}
	if strings.TrimSpace(c.Message) == "" {
		errs = append(errs, models.FieldError{Field: "message", Message: "message is required"})
	}

	return errs
}

// ValidateEvidenceFile checks an uploaded evidence file's name and size
// against the allow-list and size cap before anything is written to disk.
func ValidateEvidenceFile(filename string, size, maxSize int64) models.ValidationErrors {
	var errs models.ValidationErrors

	ext := strings.ToLower(filepath.Ext(filename))
	if !AllowedEvidenceExtensions[ext] {
		errs = append(errs, models.FieldError{
			Field:   "evidence",
			Message: "only PDF, JPG, JPEG, PNG, DOC and DOCX files are allowed",
			Value:   filename,
		})
	}
	if size > maxSize {
		errs = append(errs, models.FieldError{
			Field:   "evidence",
			Message: fmt.Sprintf("file too large, max size is %d MB", maxSize/(1024*1024)),
		})
	}

	return errs
}
