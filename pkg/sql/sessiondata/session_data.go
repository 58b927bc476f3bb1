// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package sessiondata

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/util/timeutil"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// SessionData contains the session parameters that influence scalar
// evaluation. They are all user-configurable.
type SessionData struct {
	// User is the name of the user logged into the session.
	User string `yaml:"user"`
	// Database is the "current" database.
	Database string `yaml:"database"`
	// TimeZone is the session time zone. It is resolved into
	// DataConversion.Location by Validate.
	TimeZone string `yaml:"time_zone"`
	// Collation names the collation used for character comparisons.
	// See CollationKind for the accepted forms.
	Collation string `yaml:"collation"`
	// DivisionByZero selects what a division by zero evaluates to.
	DivisionByZero DivisionByZeroMode `yaml:"division_by_zero"`
	// DivPrecisionIncrement is the number of digits by which the scale of
	// the result of a decimal division is increased.
	DivPrecisionIncrement int `yaml:"div_precision_increment"`
	// LikeEscape is the escape character used by LIKE when none is
	// given.
	LikeEscape string `yaml:"like_escape"`
	// MaxWarnings bounds the number of warnings kept per statement.
	MaxWarnings int `yaml:"max_warnings"`
	// DataConversion gives access to the data conversion configuration.
	DataConversion DataConversionConfig `yaml:"data_conversion"`
}

// DataConversionConfig contains the parameters that influence
// the conversion between SQL data types and strings.
type DataConversionConfig struct {
	// Location indicates the current time zone.
	Location *time.Location `yaml:"-"`

	// ExtraFloatDigits indicates the number of digits beyond the
	// standard number to use for float conversions.
	// This must be set to a value between -15 and 3, inclusive.
	ExtraFloatDigits int `yaml:"extra_float_digits"`
}

// GetFloatPrec computes a precision suitable for a call to
// strconv.FormatFloat() or for use with '%.*g' in a printf-like
// function.
func (c *DataConversionConfig) GetFloatPrec() int {
	// 3 means "all the precision needed to reproduce the float
	// exactly", which the Go formatter spells -1.
	if c.ExtraFloatDigits >= 3 {
		return -1
	}
	const StdDoubleDigits = 15
	nDigits := StdDoubleDigits + c.ExtraFloatDigits
	if nDigits < 1 {
		// printf %g does not allow values lower than 1.
		nDigits = 1
	}
	return nDigits
}

// DivisionByZeroMode controls what x / 0 evaluates to.
type DivisionByZeroMode int64

const (
	// DivisionByZeroError raises a division by zero error.
	DivisionByZeroError DivisionByZeroMode = iota
	// DivisionByZeroNull evaluates to NULL and records a warning.
	DivisionByZeroNull
)

func (m DivisionByZeroMode) String() string {
	switch m {
	case DivisionByZeroError:
		return "error"
	case DivisionByZeroNull:
		return "null"
	default:
		return fmt.Sprintf("invalid (%d)", m)
	}
}

// DivisionByZeroModeFromString converts a string into a
// DivisionByZeroMode.
func DivisionByZeroModeFromString(val string) (_ DivisionByZeroMode, ok bool) {
	switch strings.ToUpper(val) {
	case "ERROR":
		return DivisionByZeroError, true
	case "NULL":
		return DivisionByZeroNull, true
	default:
		return 0, false
	}
}

// Set implements pflag.Value.
func (m *DivisionByZeroMode) Set(val string) error {
	v, ok := DivisionByZeroModeFromString(val)
	if !ok {
		return errors.Newf("invalid division by zero mode: %q", val)
	}
	*m = v
	return nil
}

// Type implements pflag.Value.
func (m *DivisionByZeroMode) Type() string { return "mode" }

var _ pflag.Value = (*DivisionByZeroMode)(nil)

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *DivisionByZeroMode) UnmarshalYAML(value *yaml.Node) error {
	return m.Set(value.Value)
}

// MarshalYAML implements yaml.Marshaler.
func (m DivisionByZeroMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

// Default returns the session parameters of a fresh session.
func Default() *SessionData {
	return &SessionData{
		User:                  "root",
		Database:              "test",
		TimeZone:              "UTC",
		Collation:             DefaultCollation,
		DivPrecisionIncrement: 4,
		LikeEscape:            `\`,
		MaxWarnings:           64,
		DataConversion:        DataConversionConfig{Location: time.UTC},
	}
}

// Parse reads YAML session parameters on top of the defaults.
func Parse(data []byte) (*SessionData, error) {
	sd := Default()
	if err := yaml.Unmarshal(data, sd); err != nil {
		return nil, errors.Wrap(err, "parsing session parameters")
	}
	if err := sd.Validate(); err != nil {
		return nil, err
	}
	return sd, nil
}

// LoadFile reads YAML session parameters from a file.
func LoadFile(path string) (*SessionData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return Parse(data)
}

// Validate checks the parameters and resolves the time zone.
func (s *SessionData) Validate() error {
	loc, err := timeutil.TimeZoneStringToLocation(s.TimeZone)
	if err != nil {
		return errors.Wrapf(err, "invalid time_zone")
	}
	s.DataConversion.Location = loc
	if s.DivPrecisionIncrement < 0 || s.DivPrecisionIncrement > 30 {
		return errors.Newf("div_precision_increment must be between 0 and 30, got %d",
			s.DivPrecisionIncrement)
	}
	if n := len([]rune(s.LikeEscape)); n > 1 {
		return errors.Newf("like_escape must be a single character, got %q", s.LikeEscape)
	}
	if d := s.DataConversion.ExtraFloatDigits; d < -15 || d > 3 {
		return errors.Newf("extra_float_digits must be between -15 and 3, got %d", d)
	}
	if _, _, err := ParseCollation(s.Collation); err != nil {
		return err
	}
	if s.MaxWarnings < 0 {
		return errors.Newf("max_warnings must not be negative")
	}
	return nil
}

// Location returns the session time zone, UTC if unresolved.
func (s *SessionData) Location() *time.Location {
	if s == nil || s.DataConversion.Location == nil {
		return time.UTC
	}
	return s.DataConversion.Location
}

// RegisterFlags binds the parameters to command-line flags. Validate
// must be called once the flags are parsed.
func (s *SessionData) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&s.User, "user", s.User, "session user")
	fs.StringVar(&s.Database, "database", s.Database, "current database")
	fs.StringVar(&s.TimeZone, "time-zone", s.TimeZone, "session time zone")
	fs.StringVar(&s.Collation, "collation", s.Collation, "collation for string comparisons")
	fs.Var(&s.DivisionByZero, "division-by-zero", "result of division by zero: error or null")
	fs.IntVar(&s.DivPrecisionIncrement, "div-precision-increment", s.DivPrecisionIncrement,
		"extra digits in the scale of decimal division results")
	fs.StringVar(&s.LikeEscape, "like-escape", s.LikeEscape, "default LIKE escape character")
	fs.IntVar(&s.MaxWarnings, "max-warnings", s.MaxWarnings, "warnings kept per statement")
	fs.IntVar(&s.DataConversion.ExtraFloatDigits, "extra-float-digits",
		s.DataConversion.ExtraFloatDigits, "extra digits when formatting floats")
}
