package store

// isUniqueViolation reports whether err is a unique constraint failure in
// either supported dialect.
func isUniqueViolation(err error) bool {
	return isPostgresUniqueViolation(err) || isSQLiteUniqueViolation(err)
}

// isForeignKeyViolation reports whether err is a foreign key failure in
// either supported dialect.
func isForeignKeyViolation(err error) bool {
	return isPostgresForeignKeyViolation(err) || isSQLiteForeignKeyViolation(err)
}
