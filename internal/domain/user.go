package domain

// User is the identity record plus the cumulative points balance. Points are
// only ever mutated through the ledger's atomic increment, never assigned
// directly from handler code.
type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Points    int
}

// ProvisionalIdentity is what sign-up returns before the profile exists.
// The account is unusable until CompleteProfile has run.
type ProvisionalIdentity struct {
	ID    string
	Email string
}

// HealthProfile is the one-to-one medical companion record of a User.
// All fields except UserID are free text supplied by the user.
type HealthProfile struct {
	UserID      string
	DateOfBirth string
	Gender      string
	Conditions  string
	Medications string
	Allergies   string
}

// Profile is the fully assembled session view loaded after OTP verification.
type Profile struct {
	User   User
	Health HealthProfile
}
