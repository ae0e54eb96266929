package dto

// CreateAppointmentRequest lists the fields a caller may supply. Ownership
// keys sent by the client are not bound and are dropped.
type CreateAppointmentRequest struct {
	Doctor          string `json:"doctor"`
	AppointmentType string `json:"appointmentType"`
	PhoneNumber     string `json:"phoneNumber"`
	Email           string `json:"email"`
	Date            string `json:"date"`
	Time            string `json:"time"`
}
