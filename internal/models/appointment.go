package models

import "time"

type Appointment struct {
	ID string `gorm:"primaryKey;size:36" bson:"_id" json:"id"`

	Doctor      string `gorm:"size:64" bson:"doctor" json:"doctor"`
	PatientName string `gorm:"size:100;not null" bson:"patientName" json:"patientName"`
	PhoneNumber string `gorm:"size:10;not null" bson:"phoneNumber" json:"phoneNumber"`
	Email       string `gorm:"size:100;not null" bson:"email" json:"email"`

	// CreatedBy is the owning user's id. It is written once on insert.
	CreatedBy string `gorm:"size:36;index;not null" bson:"createdBy" json:"createdBy"`

	AppointmentType string `gorm:"size:50" bson:"appointmentType" json:"appointmentType"`
	Date            string `gorm:"size:20" bson:"date" json:"date"`
	Time            string `gorm:"size:10" bson:"time" json:"time"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
