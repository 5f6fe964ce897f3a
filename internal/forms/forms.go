// Package forms builds the huh forms shared by the one-shot commands and the
// TUI. Every field validates inline with the same rules the models enforce.
package forms

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/pact/internal/models"
)

// intField adapts an int validator to a text input.
func intField(validate func(int) error) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return errors.New("Enter a whole number")
		}
		return validate(n)
	}
}

func fineField(label string) func(string) error {
	return func(s string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return errors.New(label + " must be a number")
		}
		return models.ValidateFine(label, f)
	}
}

func optionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return models.ValidateDate(s)
}

// Signup asks for the account fields, writing into in.
func Signup(in *models.CreateUserInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&in.Name).Validate(models.ValidateName),
			huh.NewInput().Title("Email").Value(&in.Email).Validate(models.ValidateEmail),
			huh.NewInput().Title("Phone").Value(&in.Phone).Validate(models.ValidatePhone),
		).Title("Create your account"),
	)
}

// PactFields holds the raw text of the pact form.
type PactFields struct {
	Title                string
	Description          string
	MinDaysPerWeek       string
	MaxActivitiesPerUser string
	SkipFine             string
	LeaveFine            string
	StartDate            string
	EndDate              string
}

// NewPactFields returns the form defaults.
func NewPactFields() *PactFields {
	return &PactFields{
		MinDaysPerWeek:       "3",
		MaxActivitiesPerUser: "1",
		SkipFine:             "0",
		LeaveFine:            "0",
	}
}

// Input converts the fields, reporting every field that fails.
func (f PactFields) Input() (models.CreatePactInput, error) {
	in := models.CreatePactInput{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		StartDate:   strings.TrimSpace(f.StartDate),
		EndDate:     strings.TrimSpace(f.EndDate),
	}
	errs := models.ValidationErrors{}
	var err error
	if in.MinDaysPerWeek, err = strconv.Atoi(strings.TrimSpace(f.MinDaysPerWeek)); err != nil {
		errs.Check("minDaysPerWeek", errors.New("Enter a whole number"))
	}
	if in.MaxActivitiesPerUser, err = strconv.Atoi(strings.TrimSpace(f.MaxActivitiesPerUser)); err != nil {
		errs.Check("maxActivitiesPerUser", errors.New("Enter a whole number"))
	}
	if in.SkipFine, err = strconv.ParseFloat(strings.TrimSpace(f.SkipFine), 64); err != nil {
		errs.Check("skipFine", errors.New("Skip fine must be a number"))
	}
	if in.LeaveFine, err = strconv.ParseFloat(strings.TrimSpace(f.LeaveFine), 64); err != nil {
		errs.Check("leaveFine", errors.New("Leave fine must be a number"))
	}
	if len(errs) > 0 {
		return in, errs
	}
	return in, in.Validate()
}

func Pact(f *PactFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&f.Title).Validate(models.ValidateTitle),
			huh.NewText().Title("Description").Value(&f.Description),
		),
		huh.NewGroup(
			huh.NewInput().Title("Minimum days per week").Value(&f.MinDaysPerWeek).
				Validate(intField(models.ValidateMinDaysPerWeek)),
			huh.NewInput().Title("Max activities per member").Value(&f.MaxActivitiesPerUser).
				Validate(intField(models.ValidateMaxActivities)),
			huh.NewInput().Title("Skip fine").Value(&f.SkipFine).Validate(fineField("Skip fine")),
			huh.NewInput().Title("Leave fine").Value(&f.LeaveFine).Validate(fineField("Leave fine")),
		),
		huh.NewGroup(
			huh.NewInput().Title("Start date").Placeholder("YYYY-MM-DD").Value(&f.StartDate).Validate(optionalDate),
			huh.NewInput().Title("End date").Placeholder("YYYY-MM-DD").Value(&f.EndDate).Validate(optionalDate),
		),
	)
}

// ActivityFields holds the raw text of the activity form.
type ActivityFields struct {
	Name         string
	Description  string
	NumberOfDays string
}

func (f ActivityFields) Input(pactID string) (models.CreateActivityInput, error) {
	in := models.CreateActivityInput{
		PactID:      pactID,
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
	}
	n, err := strconv.Atoi(strings.TrimSpace(f.NumberOfDays))
	if err != nil {
		return in, models.ValidationErrors{{Field: "numberOfDays", Message: "Enter a whole number"}}
	}
	in.NumberOfDays = n
	return in, in.Validate()
}

func Activity(f *ActivityFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Activity").Value(&f.Name).Validate(models.ValidateActivityName),
			huh.NewInput().Title("Description").Value(&f.Description),
			huh.NewInput().Title("Days per week").Value(&f.NumberOfDays).
				Validate(intField(models.ValidateNumberOfDays)),
		).Title("Add an activity"),
	)
}

// LogFields holds the raw text of the log form. Files is a comma separated
// list of paths.
type LogFields struct {
	ActivityID string
	Date       string
	Notes      string
	Files      string
}

// Paths splits Files, dropping blanks.
func (f LogFields) Paths() []string {
	var out []string
	for _, p := range strings.Split(f.Files, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Log asks which activity was done and when. activities must not be empty.
func Log(f *LogFields, activities []models.Activity) *huh.Form {
	options := make([]huh.Option[string], 0, len(activities))
	for _, a := range activities {
		options = append(options, huh.NewOption(a.Name, a.ID))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Activity").Options(options...).Value(&f.ActivityID).
				Validate(func(s string) error { return models.ValidateRequired(s, "Select an activity") }),
			huh.NewInput().Title("Date").Placeholder("YYYY-MM-DD").Value(&f.Date).Validate(models.ValidateDate),
			huh.NewText().Title("Notes").Value(&f.Notes),
			huh.NewInput().Title("Photos or videos").Placeholder("comma separated paths").Value(&f.Files),
		).Title("Log activity"),
	)
}
