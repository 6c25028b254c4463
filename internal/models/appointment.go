package models

import "time"

// Appointment is a dated engagement owned by a single user.
//
// Constraints: AppointmentID 1-10 chars (immutable after construction),
// Date required and not in the past at creation/update, Description 1-50
// chars. ProjectID and TaskID are optional links.
type Appointment struct {
	AppointmentID string
	Date          time.Time
	Description   string
	ProjectID     string
	TaskID        string
	Archived      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewAppointment validates every field and returns a new appointment with
// fresh timestamps. The date must not be before the current instant.
func NewAppointment(appointmentID string, date time.Time, description string) (*Appointment, error) {
	id, err := validateTrimmedLength(appointmentID, "appointmentId", idMaxLength)
	if err != nil {
		return nil, err
	}

	a := &Appointment{AppointmentID: id}
	if err := a.apply(date, description, "", "", time.Now()); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	return a, nil
}

// ReconstituteAppointment rebuilds an appointment from persisted data. The
// past-date rule is skipped: appointments naturally move into the past and
// must remain readable, updatable, and deletable.
func ReconstituteAppointment(appointmentID string, date time.Time, description, projectID, taskID string, archived bool, createdAt, updatedAt time.Time) (*Appointment, error) {
	id, err := validateTrimmedLength(appointmentID, "appointmentId", idMaxLength)
	if err != nil {
		return nil, err
	}
	if date.IsZero() {
		return nil, invalid("appointmentDate", "must not be null")
	}
	desc, err := validateTrimmedLength(description, "description", descriptionMaxLength)
	if err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, invalid("createdAt", "must not be null")
	}
	if updatedAt.IsZero() {
		return nil, invalid("updatedAt", "must not be null")
	}

	return &Appointment{
		AppointmentID: id,
		Date:          date,
		Description:   desc,
		ProjectID:     trimOptional(projectID),
		TaskID:        trimOptional(taskID),
		Archived:      archived,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}

// Update replaces the mutable fields atomically: both the date and the
// description are validated before any assignment, so an invalid update
// leaves the appointment unchanged.
func (a *Appointment) Update(date time.Time, description, projectID, taskID string, archived bool) error {
	if err := a.apply(date, description, projectID, taskID, time.Now()); err != nil {
		return err
	}
	a.Archived = archived
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (a *Appointment) apply(date time.Time, description, projectID, taskID string, now time.Time) error {
	if err := validateDateNotPast(date, "appointmentDate", now); err != nil {
		return err
	}
	desc, err := validateTrimmedLength(description, "description", descriptionMaxLength)
	if err != nil {
		return err
	}

	a.Date = date
	a.Description = desc
	a.ProjectID = trimOptional(projectID)
	a.TaskID = trimOptional(taskID)
	return nil
}

// Copy returns an independent clone of the appointment.
func (a *Appointment) Copy() *Appointment {
	clone := *a
	return &clone
}
