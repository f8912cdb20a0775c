package domain

// Customer is an account-holding user of the bank.
type Customer struct {
	CustomerID   string `json:"customerID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	AuditFields
}
