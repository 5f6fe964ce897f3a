package models

import "slices"

type PactStatus string

const (
	PactStatusActive    PactStatus = "active"
	PactStatusCompleted PactStatus = "completed"
	PactStatusCancelled PactStatus = "cancelled"
)

type Participant struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Pact timestamps stay strings since the backend may send "" for them.
type Pact struct {
	ID                   string        `json:"_id"`
	Title                string        `json:"title"`
	Description          string        `json:"description,omitempty"`
	Participants         []Participant `json:"participants"`
	Status               PactStatus    `json:"status"`
	StartDate            string        `json:"startDate,omitempty"`
	EndDate              string        `json:"endDate,omitempty"`
	MinDaysPerWeek       int           `json:"minDaysPerWeek"`
	MaxActivitiesPerUser int           `json:"maxActivitiesPerUser"`
	SkipFine             float64       `json:"skipFine"`
	LeaveFine            float64       `json:"leaveFine"`
	CreatedAt            string        `json:"createdAt,omitempty"`
	UpdatedAt            string        `json:"updatedAt,omitempty"`
}

// HasParticipant reports whether the user is listed among the pact's participants
func (p Pact) HasParticipant(userID string) bool {
	if userID == "" {
		return false
	}
	return slices.ContainsFunc(p.Participants, func(u Participant) bool {
		return u.ID == userID
	})
}

// SplitByMembership partitions pacts into the ones the user joined and the rest,
// preserving order.
func SplitByMembership(pacts []Pact, userID string) (joined, explore []Pact) {
	for _, p := range pacts {
		if p.HasParticipant(userID) {
			joined = append(joined, p)
		} else {
			explore = append(explore, p)
		}
	}
	return joined, explore
}

type CreatePactInput struct {
	Title                string  `json:"title"`
	Description          string  `json:"description,omitempty"`
	MinDaysPerWeek       int     `json:"minDaysPerWeek"`
	MaxActivitiesPerUser int     `json:"maxActivitiesPerUser"`
	SkipFine             float64 `json:"skipFine"`
	LeaveFine            float64 `json:"leaveFine"`
	StartDate            string  `json:"startDate,omitempty"`
	EndDate              string  `json:"endDate,omitempty"`
}

func (in CreatePactInput) Validate() error {
	errs := ValidationErrors{}
	errs.Check("title", ValidateTitle(in.Title))
	errs.Check("minDaysPerWeek", ValidateMinDaysPerWeek(in.MinDaysPerWeek))
	errs.Check("maxActivitiesPerUser", ValidateMaxActivities(in.MaxActivitiesPerUser))
	errs.Check("skipFine", ValidateFine("Skip fine", in.SkipFine))
	errs.Check("leaveFine", ValidateFine("Leave fine", in.LeaveFine))
	if in.StartDate != "" {
		errs.Check("startDate", ValidateDate(in.StartDate))
	}
	if in.EndDate != "" {
		errs.Check("endDate", ValidateDate(in.EndDate))
	}
	return errs.OrNil()
}
