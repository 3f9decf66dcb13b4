package model

import (
	"time"

	"newsroom/internal/errors"
)

// Paper is a dated edition that articles publish into.
type Paper struct {
	ID            uint      `json:"id"`
	Date          time.Time `json:"date"`
	NamePaper     string    `json:"namePaper"`
	NamePublisher string    `json:"namePublisher"`
	Articles      []Article `json:"articles,omitempty"`
}

// NewPaper builds a validated Paper.
func NewPaper(id uint, date time.Time, namePaper, namePublisher string) (*Paper, error) {
	p := &Paper{ID: id, Date: date, NamePaper: namePaper, NamePublisher: namePublisher}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Paper) Validate() error {
	if p.Date.IsZero() {
		return errors.Validation("date", "valid date is required")
	}
	return nil
}

// Equal compares identity and the edition instant.
func (p *Paper) Equal(other *Paper) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.ID == other.ID && p.Date.Equal(other.Date)
}
