package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"readiness/internal/readiness/models"
	dErrors "readiness/pkg/domain-errors"
)

type ModelsSuite struct {
	suite.Suite
}

func TestModelsSuite(t *testing.T) {
	suite.Run(t, new(ModelsSuite))
}

// =============================================================================
// Date
// =============================================================================

func (s *ModelsSuite) TestParseDate() {
	s.Run("ISO date", func() {
		s.Equal(models.NewDate(2024, time.March, 5), models.ParseDate("2024-03-05"))
	})

	s.Run("timestamp keeps the calendar day", func() {
		s.Equal(models.NewDate(2024, time.March, 5), models.ParseDate("2024-03-05T23:10:00Z"))
	})

	s.Run("display format", func() {
		s.Equal(models.NewDate(2024, time.March, 5), models.ParseDate("05.03.2024"))
	})

	s.Run("malformed input is absent", func() {
		s.True(models.ParseDate("yesterday").IsZero())
		s.True(models.ParseDate("2024-13-45").IsZero())
		s.True(models.ParseDate("").IsZero())
	})

	s.Run("placeholder year is absent", func() {
		s.True(models.ParseDate("1900-01-01").IsZero())
	})
}

func (s *ModelsSuite) TestDisplayRoundTrip() {
	dates := []models.Date{
		models.NewDate(2024, time.January, 1),
		models.NewDate(2024, time.February, 29),
		models.NewDate(2031, time.December, 31),
		models.NewDate(2025, time.July, 9).AddDays(45),
	}
	for _, d := range dates {
		s.Run(d.ISO(), func() {
			parsed, err := models.ParseDisplay(d.Display())
			s.Require().NoError(err)
			s.True(d.Equal(parsed))
		})
	}

	s.Run("display is zero padded", func() {
		s.Equal("05.03.2024", models.NewDate(2024, time.March, 5).Display())
	})

	s.Run("absent date displays empty", func() {
		s.Equal("", models.Date{}.Display())
	})

	s.Run("strict parse rejects other layouts", func() {
		_, err := models.ParseDisplay("2024-03-05")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ModelsSuite) TestDateArithmetic() {
	base := models.NewDate(2024, time.January, 31)

	s.Run("days", func() {
		s.Equal(models.NewDate(2024, time.February, 10), base.AddDays(10))
		s.Equal(10, base.DaysUntil(base.AddDays(10)))
		s.Equal(-3, base.DaysUntil(base.AddDays(-3)))
	})

	s.Run("months", func() {
		s.Equal(models.NewDate(2025, time.January, 31), base.AddMonths(12))
	})

	s.Run("absent date stays absent", func() {
		s.True(models.Date{}.AddDays(5).IsZero())
		s.True(models.Date{}.AddMonths(5).IsZero())
	})

	s.Run("later date ignores absent", func() {
		s.Equal(base, models.LaterDate(base, models.Date{}))
		s.Equal(base, models.LaterDate(models.Date{}, base))
		s.Equal(base.AddDays(1), models.LaterDate(base, base.AddDays(1)))
	})
}

func (s *ModelsSuite) TestDateScan() {
	var d models.Date
	s.Require().NoError(d.Scan(time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)))
	s.Equal(models.NewDate(2024, time.May, 2), d)

	s.Require().NoError(d.Scan(nil))
	s.True(d.IsZero())

	s.Require().NoError(d.Scan([]byte("2024-05-02")))
	s.Equal(models.NewDate(2024, time.May, 2), d)

	s.Error(d.Scan(42))
}

// =============================================================================
// Color
// =============================================================================

func (s *ModelsSuite) TestColorOrdering() {
	s.True(models.Gray < models.Green)
	s.True(models.Green < models.Yellow)
	s.True(models.Yellow < models.Red)
}

func (s *ModelsSuite) TestParseColor() {
	s.Equal(models.Red, models.ParseColor("red"))
	s.Equal(models.Yellow, models.ParseColor(" Yellow "))
	s.Equal(models.Green, models.ParseColor("green"))
	s.Equal(models.Gray, models.ParseColor("purple"))
	s.Equal(models.Gray, models.ParseColor(""))
}

func (s *ModelsSuite) TestColorJSON() {
	raw, err := json.Marshal(map[string]models.Color{"c": models.Yellow})
	s.Require().NoError(err)
	s.JSONEq(`{"c":"yellow"}`, string(raw))

	var decoded map[string]models.Color
	s.Require().NoError(json.Unmarshal([]byte(`{"c":"unknown"}`), &decoded))
	s.Equal(models.Gray, decoded["c"])
}

// =============================================================================
// Identifiers
// =============================================================================

func (s *ModelsSuite) TestParsePersonID() {
	s.Run("valid", func() {
		raw := uuid.New()
		id, err := models.ParsePersonID(raw.String())
		s.Require().NoError(err)
		s.Equal(raw.String(), id.String())
	})

	s.Run("empty", func() {
		_, err := models.ParsePersonID("  ")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("malformed", func() {
		_, err := models.ParsePersonID("not-a-uuid")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("nil uuid", func() {
		_, err := models.ParsePersonID(uuid.Nil.String())
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

// =============================================================================
// Aggregates
// =============================================================================

func (s *ModelsSuite) TestSummaryAdd() {
	var sum models.Summary
	for _, c := range []models.Color{models.Green, models.Red, models.Gray, models.Green} {
		sum.Add(c)
	}
	s.Equal(models.Summary{Total: 4, Green: 2, Red: 1, Gray: 1}, sum)
}

func (s *ModelsSuite) TestByRequirement() {
	eq := models.EquipmentRef(7)
	readiness := &models.PersonReadiness{
		Conditions:   []models.Section{{Requirement: "day_simple", Items: []models.ExpiryResult{{Requirement: "day_simple", EquipmentID: eq, Color: models.Green}}}},
		AnnualChecks: []models.Section{{Requirement: "navigation", Items: []models.ExpiryResult{{Requirement: "navigation", Color: models.Red}}}},
	}

	flat := readiness.ByRequirement()
	s.Len(flat, 2)
	s.Equal(models.Green, flat["day_simple"][0].Color)
	s.Equal(models.Red, flat["navigation"][0].Color)
}
