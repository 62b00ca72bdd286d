package postgres

// PostgreSQL error codes
const (
	// codeUniqueViolation is raised when an insert or update breaks a unique
	// constraint; repositories translate it into the matching domain error.
	codeUniqueViolation = "23505"
)
