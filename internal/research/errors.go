package research

// MissingCompanyError indicates research was requested without a company name
type MissingCompanyError struct{}

func (e *MissingCompanyError) Error() string {
	return "research requires a company name"
}

// MissingRoleError indicates research was requested without a role title
type MissingRoleError struct{}

func (e *MissingRoleError) Error() string {
	return "research requires a role title"
}
