package repository

import "testing"

func TestAppointmentMemoryRepository(t *testing.T) {
	testAppointmentRepository(t, NewAppointmentMemoryRepository())
}

func TestUserMemoryRepository(t *testing.T) {
	testUserRepository(t, NewUserMemoryRepository())
}

func TestAuditMemoryRepository(t *testing.T) {
	testAuditStore(t, NewAuditMemoryRepository())
}
