package appointment

import "github.com/BruksfildServices01/care-scheduler/internal/httperr"

var ErrNotFound = httperr.ErrNotFound("appointment_not_found", "Appointment not found.")
