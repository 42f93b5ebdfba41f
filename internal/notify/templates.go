package notify

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"jobportal/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	defaultColor = "#4F46E5"
	supportEmail = "support@jobportal.com"
)

// Renderer turns notification events into HTML bodies.
type Renderer struct {
	clientURL string
	pages     map[string]*template.Template
}

// NewRenderer parses the embedded templates. clientURL prefixes dashboard links.
func NewRenderer(clientURL string) (*Renderer, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"otp", "application", "status", "job_update"} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{clientURL: clientURL, pages: pages}, nil
}

type page struct {
	Title         string
	Color         string
	SupportEmail  string
	DashboardURL  string
	OTP           string
	ValidFor      string
	ApplicantName string
	JobTitle      string
	Company       string
	Status        string
	StatusMessage string
	Deadline      string
}

func (r *Renderer) render(name string, p page) (string, error) {
	if p.Color == "" {
		p.Color = defaultColor
	}
	p.SupportEmail = supportEmail
	var buf bytes.Buffer
	if err := r.pages[name].ExecuteTemplate(&buf, "layout", p); err != nil {
		return "", fmt.Errorf("rendering %s template: %w", name, err)
	}
	return buf.String(), nil
}

func (r *Renderer) OTP(code string, validFor time.Duration) (string, error) {
	return r.render("otp", page{
		Title:    "OTP Verification Email",
		OTP:      code,
		ValidFor: validFor.String(),
	})
}

func (r *Renderer) ApplicationSubmitted(e ApplicationSubmitted) (string, error) {
	return r.render("application", page{
		Title:         "Application Submitted Successfully",
		DashboardURL:  r.clientURL + "/dashboard/jobseeker",
		ApplicantName: e.ApplicantName,
		JobTitle:      e.JobTitle,
		Company:       e.Company,
	})
}

func (r *Renderer) StatusChanged(e StatusChanged) (string, error) {
	msg, color := statusCopy(e.Status)
	return r.render("status", page{
		Title:         "Application Status Update",
		Color:         color,
		DashboardURL:  r.clientURL + "/dashboard/jobseeker",
		ApplicantName: e.ApplicantName,
		JobTitle:      e.JobTitle,
		Company:       e.Company,
		Status:        string(e.Status),
		StatusMessage: msg,
	})
}

func (r *Renderer) JobUpdated(e JobUpdated) (string, error) {
	var deadline string
	if e.Deadline != nil {
		deadline = e.Deadline.Format("January 2, 2006")
	}
	return r.render("job_update", page{
		Title:        "Job Status Update",
		DashboardURL: r.clientURL + "/jobs/" + e.JobID.String(),
		JobTitle:     e.JobTitle,
		Company:      e.Company,
		Status:       string(e.Status),
		Deadline:     deadline,
	})
}

// statusCopy returns the message and accent color shown for an application status.
func statusCopy(s models.ApplicationStatus) (string, string) {
	switch s {
	case models.ApplicationStatusReviewing:
		return "Your application is currently being reviewed by the hiring team.", "#3B82F6"
	case models.ApplicationStatusShortlisted:
		return "Congratulations! You have been shortlisted for the next round. The recruiter may contact you soon for further steps.", "#10B981"
	case models.ApplicationStatusRejected:
		return "We regret to inform you that your application was not selected for this position. We encourage you to apply for other suitable roles.", "#EF4444"
	case models.ApplicationStatusHired:
		return "Congratulations! You have been selected for this position. The recruiter will contact you soon with further details.", "#8B5CF6"
	default:
		return "Your application status has been updated.", defaultColor
	}
}
