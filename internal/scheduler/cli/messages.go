package cli

// User-facing lines. Tests compare output against these.
const (
	msgBanner          = "Welcome to the COVID-19 Vaccine Reservation Scheduling Application!"
	msgCommandsHeader  = "*** Please enter one of the following commands ***"
	msgTryAgain        = "Please try again!"
	msgInvalidCommand  = "Invalid operation name!"
	msgInvalidDate     = "Please enter a valid date! The format should be YYYY-MM-DD."
	msgUsernameTaken   = "Username taken, try again!"
	msgCreateFailed    = "Create failed"
	msgAlreadyLoggedIn = "Already logged-in!"
	msgLoginFailed     = "Error occurred when logging in"
	msgLoginFirst      = "Please login first!"
	msgPatientFirst    = "Please login as a patient first to reserve your appointment!"
	msgCaregiverFirst  = "Please login as a caregiver first!"
	msgNotAvailable    = "%s is not available at this time. Check availability of other vaccines!"
	msgNoCaregiver     = "No caregiver is available on %s. Check the schedule for other dates!"
	msgReserved        = "You have successfully made a reservation with %s!"
	msgAppointmentID   = "Your appointment id is %d."
	msgReserveRetry    = "Reservation could not be completed, please try again!"
	msgReserveFailed   = "Error occurred when reserving appointment"
	msgUploaded        = "Availability uploaded!"
	msgAlreadyUploaded = "Availability already uploaded for this date!"
	msgUploadFailed    = "Error occurred when uploading availability"
	msgDosesUpdated    = "Doses updated!"
	msgAddDosesFailed  = "Error occurred when adding doses"
	msgNoAppointments  = "You have no appointment"
	msgLoggedOut       = "You have logged out successfully."
	msgAlreadyOut      = "Error! User already logged out."
	msgNotImplemented  = "Sorry, operation currently not available."
	msgBye             = "Bye!"
)

var weakPasswordLines = []string{
	"Password is too weak, please follow the following guidelines when creating password!",
	"At least 8 characters and at most 20.",
	"A mixture of both uppercase and lowercase letters.",
	"A mixture of letters and numbers.",
	"Inclusion of at least one special character, e.g. !, @, #, ?.",
}

var commandList = []string{
	"> create_patient <username> <password>",
	"> create_caregiver <username> <password>",
	"> login_patient <username> <password>",
	"> login_caregiver <username> <password>",
	"> search_caregiver_schedule <date>",
	"> reserve <date> <vaccine>",
	"> upload_availability <date>",
	"> cancel <appointment_id>",
	"> add_doses <vaccine> <number>",
	"> show_appointments",
	"> logout",
	"> help",
	"> quit",
}
