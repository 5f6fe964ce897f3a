package models

type User struct {
	ID        string `json:"_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

type CreateUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (in CreateUserInput) Validate() error {
	errs := ValidationErrors{}
	errs.Check("name", ValidateName(in.Name))
	errs.Check("email", ValidateEmail(in.Email))
	errs.Check("phone", ValidatePhone(in.Phone))
	return errs.OrNil()
}

type JoinPactInput struct {
	UserID      string   `json:"userId"`
	PactID      string   `json:"pactId"`
	ActivityIDs []string `json:"activityIds"`
}
