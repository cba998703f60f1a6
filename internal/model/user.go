package model

// User is a row of the users table.
//
// Password holds whatever the caller stored, normally a hash; it is never
// serialized.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

// CreateUserPayload is the input of UserRepository.Create.
type CreateUserPayload struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=255"`
}

func (p *CreateUserPayload) Validate() error {
	return validate.Struct(p)
}
