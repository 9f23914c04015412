package account

// User-facing messages
const (
	MsgMissingCredentials = "Please enter both email and password"
	MsgInvalidEmail       = "Please enter a valid email address"
	MsgInvalidLogin       = "Invalid email or password. Please try again."
	MsgUserNotFound       = "User not found. Please check your email or sign up."
	MsgBadLoginRequest    = "Invalid login credentials"
	MsgServerError        = "Server error. Please try again later."
	MsgLoginFailed        = "Login failed. Please try again."
	MsgInvalidResponse    = "Invalid response from server. Please try again."
	MsgNetworkError       = "Network error. Please check your connection and try again."

	MsgMissingFields      = "Please fill in all required fields"
	MsgPasswordTooShort   = "Password must be at least 6 characters long"
	MsgPasswordMismatch   = "Passwords do not match"
	MsgEmailTaken         = "This email is already registered. Please use a different email or try logging in."
	MsgBadRegistration    = "Invalid registration data. Please check your information."
	MsgRegistrationFailed = "Registration failed. Please try again."
)

// Error carries the message to show the user and, when there is one, the
// underlying cause
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func fail(message string, cause error) *Error {
	return &Error{Message: message, Err: cause}
}
