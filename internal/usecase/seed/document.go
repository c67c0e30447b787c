// Package seed loads reference data and accounts from a YAML document and dumps
// the database back into the same format.
package seed

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Date is a calendar day written as YYYY-MM-DD.
type Date struct{ time.Time }

func (d Date) MarshalYAML() (any, error) { return d.Format(dateLayout), nil }

func (d *Date) UnmarshalYAML(n *yaml.Node) error {
	t, err := time.Parse(dateLayout, n.Value)
	if err != nil {
		return fmt.Errorf("line %d: date %q must be YYYY-MM-DD", n.Line, n.Value)
	}
	d.Time = t
	return nil
}

type Entry struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

type Period struct {
	AcademicYear string `yaml:"academic_year"`
	Term         string `yaml:"term"`
	StartDate    Date   `yaml:"start_date"`
	EndDate      Date   `yaml:"end_date"`
	Current      bool   `yaml:"current,omitempty"`
}

// Limit references its status and leave type by code.
type Limit struct {
	Status      string `yaml:"status"`
	Term        string `yaml:"term"`
	LeaveType   string `yaml:"leave_type"`
	AllowedDays int    `yaml:"allowed_days"`
}

// User carries either a plain password (hashed on load) or a bcrypt hash from a dump.
type User struct {
	UserID       string `yaml:"user_id,omitempty"`
	Email        string `yaml:"email"`
	FirstName    string `yaml:"first_name"`
	LastName     string `yaml:"last_name"`
	Role         string `yaml:"role"`
	Department   string `yaml:"department,omitempty"`
	Status       string `yaml:"status,omitempty"`
	Active       *bool  `yaml:"active,omitempty"`
	Password     string `yaml:"password,omitempty"`
	PasswordHash string `yaml:"password_hash,omitempty"`
}

type Document struct {
	Departments []Entry  `yaml:"departments"`
	Statuses    []Entry  `yaml:"statuses"`
	LeaveTypes  []Entry  `yaml:"leave_types"`
	Periods     []Period `yaml:"periods"`
	Limits      []Limit  `yaml:"limits"`
	Users       []User   `yaml:"users"`
}

// Load decodes a document, rejecting unknown keys.
func Load(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return &doc, nil
		}
		return nil, fmt.Errorf("seed: decode: %w", err)
	}
	return &doc, nil
}

func Write(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("seed: encode: %w", err)
	}
	return enc.Close()
}
