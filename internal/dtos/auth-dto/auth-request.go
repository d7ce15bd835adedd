package auth_dto

// RegisterUserRequest repräsentiert die Daten, die für die Registrierung eines Benutzers benötigt werden.
type RegisterUserRequest struct {
	FullName string `json:"fullname" validate:"required,min=2,max=100"`
	Username string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginUserRequest repräsentiert die Daten, die für die Anmeldung eines Benutzers benötigt werden
type LoginUserRequest struct {
	Identifier string `json:"identifier" validate:"required"` // Es könnte sich um eine E-mail oder einen Benutzernamen handeln.
	Password   string `json:"password" validate:"required"`
}

type LoginMetadata struct {
	UserAgent string
	Device    string
	IP        string
}
