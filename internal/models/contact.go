package models

import "time"

// Contact is an address-book entry owned by a single user.
//
// Constraints: ContactID 1-10 chars (immutable after construction),
// FirstName and LastName 1-10 chars, Phone exactly 10 digits,
// Address 1-30 chars. All strings are stored trimmed.
type Contact struct {
	ContactID string
	FirstName string
	LastName  string
	Phone     string
	Address   string
	Archived  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewContact validates every field and returns a new contact with fresh
// timestamps. Returns a *ValidationError on the first violated constraint.
func NewContact(contactID, firstName, lastName, phone, address string) (*Contact, error) {
	id, err := validateTrimmedLength(contactID, "contactId", idMaxLength)
	if err != nil {
		return nil, err
	}

	c := &Contact{ContactID: id}
	if err := c.apply(firstName, lastName, phone, address); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	return c, nil
}

// ReconstituteContact rebuilds a contact from persisted data, preserving the
// stored timestamps and archived flag. Field constraints still apply.
func ReconstituteContact(contactID, firstName, lastName, phone, address string, archived bool, createdAt, updatedAt time.Time) (*Contact, error) {
	c, err := NewContact(contactID, firstName, lastName, phone, address)
	if err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, invalid("createdAt", "must not be null")
	}
	if updatedAt.IsZero() {
		return nil, invalid("updatedAt", "must not be null")
	}
	c.Archived = archived
	c.CreatedAt = createdAt
	c.UpdatedAt = updatedAt
	return c, nil
}

// Update replaces the mutable fields atomically: every incoming value is
// validated before any field is assigned, so an invalid update leaves the
// contact unchanged.
func (c *Contact) Update(firstName, lastName, phone, address string, archived bool) error {
	if err := c.apply(firstName, lastName, phone, address); err != nil {
		return err
	}
	c.Archived = archived
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// apply validates all four mutable fields, assigning them only when every
// check passes.
func (c *Contact) apply(firstName, lastName, phone, address string) error {
	first, err := validateTrimmedLength(firstName, "firstName", contactNameMaxLength)
	if err != nil {
		return err
	}
	last, err := validateTrimmedLength(lastName, "lastName", contactNameMaxLength)
	if err != nil {
		return err
	}
	ph, err := validatePhone(phone, "phone")
	if err != nil {
		return err
	}
	addr, err := validateTrimmedLength(address, "address", addressMaxLength)
	if err != nil {
		return err
	}

	c.FirstName = first
	c.LastName = last
	c.Phone = ph
	c.Address = addr
	return nil
}

// Copy returns an independent clone of the contact.
func (c *Contact) Copy() *Contact {
	clone := *c
	return &clone
}
