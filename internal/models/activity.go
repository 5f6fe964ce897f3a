package models

type Activity struct {
	ID           string `json:"_id"`
	PactID       string `json:"pactId"`
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	NumberOfDays int    `json:"numberOfDays"`
	IsPrimary    bool   `json:"isPrimary"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

type CreateActivityInput struct {
	PactID       string `json:"pactId"`
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	NumberOfDays int    `json:"numberOfDays"`
	IsPrimary    bool   `json:"isPrimary"`
}

func (in CreateActivityInput) Validate() error {
	errs := ValidationErrors{}
	errs.Check("name", ValidateActivityName(in.Name))
	errs.Check("numberOfDays", ValidateNumberOfDays(in.NumberOfDays))
	return errs.OrNil()
}

// ActivityIDs returns the ids of the given activities in order
func ActivityIDs(activities []Activity) []string {
	ids := make([]string, 0, len(activities))
	for _, a := range activities {
		ids = append(ids, a.ID)
	}
	return ids
}

// EnrollmentState describes how far a member is through picking activities for a pact.
type EnrollmentState struct {
	Count int
	Max   int
}

func Enrollment(p Pact, activities []Activity) EnrollmentState {
	return EnrollmentState{Count: len(activities), Max: p.MaxActivitiesPerUser}
}

// CanAddActivity is true while the member is below the pact's activity cap
func (e EnrollmentState) CanAddActivity() bool { return e.Count < e.Max }

// ReadyToJoin is true once the member has exactly the allowed number of activities
func (e EnrollmentState) ReadyToJoin() bool { return e.Max > 0 && e.Count == e.Max }

// Remaining is the number of activities the member may still add
func (e EnrollmentState) Remaining() int {
	if e.Count >= e.Max {
		return 0
	}
	return e.Max - e.Count
}
